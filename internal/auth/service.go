package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/internal/db/models"
)

const (
	// CookieName is the cookie carrying the signed auth token.
	CookieName = "token"

	// DefaultTokenTTL is used when no token lifetime is configured.
	DefaultTokenTTL = 24 * time.Hour
)

// Claims is the payload of an issued auth token.
type Claims struct {
	UserID   uint64 `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Service provides authentication functionality.
type Service struct {
	db       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates a new auth service.
func NewService(db *gorm.DB, secret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	return &Service{
		db:       db,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Authenticate resolves a user by username and verifies the password.
// Users without a stored password hash are passwordless and accept any password.
// On success the user's UpdatedAt timestamp is touched.
func (s *Service) Authenticate(username, password string) (*models.User, error) {
	var user models.User

	result := s.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	// touch the login timestamp
	if err := s.db.Model(&user).Update("updated_at", time.Now()).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// IssueToken creates a signed token for the given user with the configured lifetime.
func (s *Service) IssueToken(user *models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// VerifyToken checks signature and expiry of a token and returns its claims.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := new(Claims)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// TokenTTL returns the configured token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}
