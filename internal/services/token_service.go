package services

import (
	"errors"
	"time"

	"github.com/coe-app/task-api/internal/constants"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature verification,
// is expired, or is malformed.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the payload carried by access and refresh tokens.
// Refresh tokens carry Type = "refresh" so they cannot be mistaken for
// access tokens. Tokens are signed, not encrypted.
type TokenClaims struct {
	UserID uint64 `json:"user_id"`
	Type   string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access token lifetime.
func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime.
func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// IssueAccessToken creates a short-lived access token for a user.
func (s *TokenService) IssueAccessToken(userID uint64) (string, error) {
	return s.issue(userID, "", s.accessTTL)
}

// IssueRefreshToken creates a refresh token tagged with the refresh
// discriminator.
func (s *TokenService) IssueRefreshToken(userID uint64) (string, error) {
	return s.issue(userID, constants.TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) issue(userID uint64, tokenType string, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Decode verifies a token's signature and expiry and returns its claims.
func (s *TokenService) Decode(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
