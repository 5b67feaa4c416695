package dto

import "github.com/coe-app/task-api/internal/models"

// MessageResponse is the generic success envelope
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint64 `json:"userId"`
}

// LoginResponse carries the minted token pair
type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// RefreshResponse carries a freshly minted access token
type RefreshResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

// UserDTO represents the authenticated user in API responses. The
// password hash is never serialized outward.
type UserDTO struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}
