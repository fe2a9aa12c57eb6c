package models

import "time"

// UrlGroup represents a named, ordered collection of links shown together in
// the dashboard. A group owns zero or more URL memberships; the ordering of
// its members lives on the UrlInGroup join rows.
type UrlGroup struct {
	// ID is the unique identifier for the group.
	ID uint64 `gorm:"primaryKey"`
	// Name is the display name of the group. Required and non-empty.
	Name string `gorm:"size:100;not null"`
	// Description provides a human-readable explanation of the group's purpose.
	Description string `gorm:"size:255"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the UrlGroup model.
// This overrides GORM's default pluralized table naming.
func (UrlGroup) TableName() string {
	return "url_groups"
}
