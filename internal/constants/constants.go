package constants

// Cookie names and paths
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	RefreshCookiePath  = "/user/token/refresh"
)

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "current_user"
)

// Token types
const (
	TokenTypeBearer  = "bearer"
	TokenTypeRefresh = "refresh"
)

// Field size limits
const (
	MinNameLength        = 1
	MaxNameLength        = 50
	MinPasswordLength    = 8
	MaxPasswordLength    = 128
	MaxPasswordBytes     = 72
	MaxTaskNameLength    = 128
	MaxDescriptionLength = 20000
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)
