// Package models contains database model definitions.
package models

import "time"

// UserSetting represents a per-user preference stored as a JSON-encoded value
// under a known key. The setting controller restricts keys to a closed set
// and handles (de)serialization per key.
type UserSetting struct {
	// ID is the unique identifier for the setting row.
	ID uint64 `gorm:"primaryKey"`
	// UserID is the ID of the user owning this setting.
	UserID uint64 `gorm:"not null;uniqueIndex:idx_user_key"`
	// Key is the setting name. Unique per user.
	Key string `gorm:"size:100;not null;uniqueIndex:idx_user_key"`
	// Value is the JSON-encoded setting value.
	Value []byte `gorm:"type:blob"`
	// User is the associated user (loaded via foreign key).
	// When a user is deleted, all their settings are automatically removed (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the setting was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the setting was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the UserSetting model.
// This overrides GORM's default pluralized table naming.
func (UserSetting) TableName() string {
	return "user_settings"
}
