package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coe-app/task-api/internal/constants"
	"github.com/coe-app/task-api/internal/models"
	"github.com/coe-app/task-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrUserNameLength       = fmt.Errorf("first and last name must be between %d and %d characters", constants.MinNameLength, constants.MaxNameLength)
)

// bcrypt reads at most 72 bytes of input. Longer passwords are
// truncated the same way on hash and verify so they round-trip.
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > constants.MaxPasswordBytes {
		b = b[:constants.MaxPasswordBytes]
	}
	return b
}

func validName(name string) bool {
	return len(name) >= constants.MinNameLength && len(name) <= constants.MaxNameLength
}

// UserService handles registration, authentication and user lifecycle.
type UserService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *TokenService) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a new user with a hashed password. Email uniqueness
// is not pre-checked; the constraint violation from the database wins
// any races and surfaces as ErrEmailTaken.
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if !validName(firstName) || !validName(lastName) {
		return nil, ErrUserNameLength
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(passwordBytes(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     input.Email,
		Password:  string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// TokenPair holds the tokens minted on a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// Login verifies credentials and mints an access/refresh token pair.
// Unknown email and wrong password both return ErrInvalidCredentials so
// the response never reveals which one failed.
func (s *UserService) Login(email, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), passwordBytes(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constants.TokenTypeBearer,
	}, nil
}

// Refresh validates a refresh token and mints a new access token.
// A token without the refresh discriminator is rejected even when its
// signature is valid.
func (s *UserService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.Decode(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.Type != constants.TokenTypeRefresh {
		return "", ErrInvalidToken
	}

	return s.tokens.IssueAccessToken(claims.UserID)
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateUserInput holds the optional fields of a partial user update.
// Nil fields are left untouched.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// Update applies only the supplied fields. A supplied password is
// re-hashed before storing.
func (s *UserService) Update(id uint64, input UpdateUserInput) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if input.FirstName != nil {
		firstName := strings.TrimSpace(*input.FirstName)
		if !validName(firstName) {
			return ErrUserNameLength
		}
		user.FirstName = firstName
	}
	if input.LastName != nil {
		lastName := strings.TrimSpace(*input.LastName)
		if !validName(lastName) {
			return ErrUserNameLength
		}
		user.LastName = lastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword(passwordBytes(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return ErrFailedToHashPassword
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Delete removes a user. Tasks created by the user are deleted and the
// assignee reference is cleared on tasks they were merely assigned to.
func (s *UserService) Delete(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
