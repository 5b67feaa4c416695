package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coe-app/task-api/internal/constants"
	"github.com/coe-app/task-api/internal/dto"
	apierrors "github.com/coe-app/task-api/internal/errors"
	"github.com/coe-app/task-api/internal/middleware"
	"github.com/coe-app/task-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserHandler coordinates user and authentication HTTP handlers.
type UserHandler struct {
	userService *services.UserService
	tokens      *services.TokenService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, tokens *services.TokenService) *UserHandler {
	return &UserHandler{
		userService: userService,
		tokens:      tokens,
	}
}

// Register creates a new user account.
func (h *UserHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		FirstName string `json:"firstName" binding:"required,min=1,max=50"`
		LastName  string `json:"lastName" binding:"required,min=1,max=50"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8,max=128"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntityWithDetails(c, "Validation failed", err.Error())
		return
	}

	user, err := h.userService.Register(services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserNameLength):
			apierrors.UnprocessableEntity(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to register user")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login authenticates a user and sets the token cookies.
func (h *UserHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8,max=128"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntityWithDetails(c, "Validation failed", err.Error())
		return
	}

	pair, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to authenticate user")
		return
	}

	h.setAuthCookies(c, pair)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:      "User authenticated successfully",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}

// Refresh mints a new access token from the refresh token cookie.
func (h *UserHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(constants.RefreshTokenCookie)
	if err != nil {
		apierrors.Unauthorized(c, "Refresh token missing")
		return
	}

	accessToken, err := h.userService.Refresh(refreshToken)
	if err != nil {
		apierrors.Forbidden(c, "Invalid or expired refresh token")
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(constants.AccessTokenCookie, accessToken,
		int(h.tokens.AccessTTL().Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, dto.RefreshResponse{
		Message:     "Access token refreshed successfully",
		AccessToken: accessToken,
	})
}

// GetCurrentUser returns the authenticated user.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser applies a partial update to a user record.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateUserRequest struct {
		FirstName *string `json:"firstName" binding:"omitempty,min=1,max=50"`
		LastName  *string `json:"lastName" binding:"omitempty,min=1,max=50"`
		Email     *string `json:"email" binding:"omitempty,email"`
		Password  *string `json:"password" binding:"omitempty,min=8,max=128"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntityWithDetails(c, "Validation failed", err.Error())
		return
	}

	err = h.userService.Update(userID, services.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrEmailTaken):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserNameLength):
			apierrors.UnprocessableEntity(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update user")
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User data updated successfully"})
}

// DeleteUser removes a user. Tasks they created are deleted; tasks they
// were assigned to lose the assignee.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User removed successfully"})
}

// Logout clears both token cookies. The tokens themselves stay valid
// until they expire; only the client-side cookies are removed.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(constants.AccessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(constants.RefreshTokenCookie, "", -1, constants.RefreshCookiePath, "", true, true)

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *UserHandler) setAuthCookies(c *gin.Context, pair *services.TokenPair) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(constants.AccessTokenCookie, pair.AccessToken,
		int(h.tokens.AccessTTL().Seconds()), "/", "", true, true)
	c.SetCookie(constants.RefreshTokenCookie, pair.RefreshToken,
		int(h.tokens.RefreshTTL().Seconds()), constants.RefreshCookiePath, "", true, true)
}
