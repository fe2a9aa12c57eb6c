package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// MenuPosition represents where the navigation menu is rendered in the dashboard.
type MenuPosition string

const (
	// MenuPositionSide renders the navigation menu as a sidebar.
	MenuPositionSide MenuPosition = "side"
	// MenuPositionTop renders the navigation menu as a top bar.
	MenuPositionTop MenuPosition = "top"
)

// ThemeMode represents the color scheme preference of a user.
type ThemeMode string

const (
	// ThemeModeLight selects the light color scheme.
	ThemeModeLight ThemeMode = "light"
	// ThemeModeDark selects the dark color scheme.
	ThemeModeDark ThemeMode = "dark"
)

// User represents a user account in the system.
// Users authenticate with a local password; an empty password hash means the
// account allows passwordless login. Administrators may mutate groups and
// URLs, regular users only read groups assigned to them and write their own
// settings.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Username is the unique username for login.
	Username string `gorm:"unique;size:100;not null"`
	// PasswordHash is the Argon2id hashed password.
	// Empty means the account has no password and passwordless login is allowed.
	PasswordHash string `gorm:"size:255"`
	// IsAdmin indicates whether the user may mutate groups and URLs.
	IsAdmin bool `gorm:"default:false"`
	// MenuPosition is the user's navigation menu placement preference.
	MenuPosition MenuPosition `gorm:"type:varchar(20);not null;default:'side'"`
	// ThemeMode is the user's color scheme preference.
	ThemeMode ThemeMode `gorm:"type:varchar(20);not null;default:'light'"`
	// LastActiveURLID is the id of the link last shown in the iframe panel,
	// restored on the next visit. Zero means none.
	LastActiveURLID uint64 `gorm:"column:last_active_url_id;default:0"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	// It is touched on every successful login.
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
// This overrides GORM's default pluralized table naming.
func (User) TableName() string {
	return "users"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating or updating user passwords.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// It uses constant-time comparison to prevent timing attacks.
// A user without a stored hash is passwordless and accepts any password.
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return true
	}

	match, err := argon2id.ComparePasswordAndHash(password, u.PasswordHash)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
