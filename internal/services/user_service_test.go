package services

import (
	"strings"
	"testing"
	"time"

	"github.com/coe-app/task-api/internal/constants"
	"github.com/coe-app/task-api/internal/models"
	"github.com/coe-app/task-api/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Task{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewUserService(repository.NewUserRepository(db), tokens), db
}

func registerTestUser(t *testing.T, svc *UserService, email string) *models.User {
	t.Helper()

	user, err := svc.Register(RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "secret123",
	})
	require.NoError(t, err)
	return user
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, _ := setupUserService(t)
	user := registerTestUser(t, svc, "ada@example.com")
	require.NotZero(t, user.ID)
	require.NotEqual(t, "secret123", user.Password)

	pair, err := svc.Login("ada@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, constants.TokenTypeBearer, pair.TokenType)
}

func TestUserService_LoginSoftFailures(t *testing.T) {
	svc, _ := setupUserService(t)
	registerTestUser(t, svc, "ada@example.com")

	_, err := svc.Login("ada@example.com", "wrongpass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_LongPasswordRoundTrip(t *testing.T) {
	svc, _ := setupUserService(t)

	// Passwords past bcrypt's 72-byte limit still hash and verify
	longPassword := strings.Repeat("p", 100)
	_, err := svc.Register(RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  longPassword,
	})
	require.NoError(t, err)

	pair, err := svc.Login("ada@example.com", longPassword)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)

	_, err = svc.Login("ada@example.com", strings.Repeat("q", 100))
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_UpdateToLongPassword(t *testing.T) {
	svc, _ := setupUserService(t)
	user := registerTestUser(t, svc, "ada@example.com")

	longPassword := strings.Repeat("x", 128)
	require.NoError(t, svc.Update(user.ID, UpdateUserInput{Password: &longPassword}))

	_, err := svc.Login("ada@example.com", longPassword)
	require.NoError(t, err)
}

func TestUserService_BlankNamesRejected(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Register(RegisterInput{
		FirstName: "   ",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret123",
	})
	require.ErrorIs(t, err, ErrUserNameLength)

	user := registerTestUser(t, svc, "ada@example.com")

	blank := "  \t "
	require.ErrorIs(t, svc.Update(user.ID, UpdateUserInput{LastName: &blank}), ErrUserNameLength)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupUserService(t)
	registerTestUser(t, svc, "ada@example.com")

	_, err := svc.Register(RegisterInput{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "ada@example.com",
		Password:  "secret123",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_RegisterTrimsNames(t *testing.T) {
	svc, _ := setupUserService(t)

	user, err := svc.Register(RegisterInput{
		FirstName: "  Ada ",
		LastName:  " Lovelace  ",
		Email:     "ada@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, "Ada", user.FirstName)
	require.Equal(t, "Lovelace", user.LastName)
}

func TestUserService_UpdatePartial(t *testing.T) {
	svc, db := setupUserService(t)
	user := registerTestUser(t, svc, "ada@example.com")

	newName := "Grace"
	err := svc.Update(user.ID, UpdateUserInput{FirstName: &newName})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.Equal(t, "Grace", stored.FirstName)
	require.Equal(t, "Lovelace", stored.LastName)
	require.Equal(t, "ada@example.com", stored.Email)
}

func TestUserService_UpdateRehashesPassword(t *testing.T) {
	svc, db := setupUserService(t)
	user := registerTestUser(t, svc, "ada@example.com")

	newPassword := "newsecret9"
	err := svc.Update(user.ID, UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NotEqual(t, newPassword, stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(newPassword)))
}

func TestUserService_UpdateUnknownUser(t *testing.T) {
	svc, _ := setupUserService(t)

	name := "Grace"
	err := svc.Update(9999, UpdateUserInput{FirstName: &name})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DeleteCascade(t *testing.T) {
	svc, db := setupUserService(t)
	owner := registerTestUser(t, svc, "owner@example.com")
	other := registerTestUser(t, svc, "other@example.com")

	created := &models.Task{
		Name:        "Owned",
		Description: "created by owner",
		CreatedByID: owner.ID,
		DueDate:     models.NewDate(2025, time.June, 1),
		Priority:    models.PriorityLow,
		Status:      models.StatusPending,
	}
	require.NoError(t, db.Create(created).Error)

	assigned := &models.Task{
		Name:        "Assigned",
		Description: "created by other, assigned to owner",
		CreatedByID: other.ID,
		AssigneeID:  &owner.ID,
		DueDate:     models.NewDate(2025, time.June, 1),
		Priority:    models.PriorityLow,
		Status:      models.StatusPending,
	}
	require.NoError(t, db.Create(assigned).Error)

	require.NoError(t, svc.Delete(owner.ID))

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Where("id = ?", created.ID).Count(&count).Error)
	require.Zero(t, count)

	var survivor models.Task
	require.NoError(t, db.First(&survivor, assigned.ID).Error)
	require.Nil(t, survivor.AssigneeID)

	require.ErrorIs(t, svc.Delete(owner.ID), ErrUserNotFound)
}

func TestUserService_Refresh(t *testing.T) {
	svc, _ := setupUserService(t)
	registerTestUser(t, svc, "ada@example.com")

	pair, err := svc.Login("ada@example.com", "secret123")
	require.NoError(t, err)

	accessToken, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)

	// An access token is not accepted in place of a refresh token
	_, err = svc.Refresh(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}
