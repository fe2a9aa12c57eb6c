package models

import "time"

// Url represents an external link rendered inside a managed iframe panel.
// A Url may belong to zero or more groups through the UrlInGroup join entity;
// the design allows reuse, though typical flows create one Url per membership.
type Url struct {
	// ID is the unique identifier for the URL.
	ID uint64 `gorm:"primaryKey"`
	// Title is the display title shown in the navigation menu.
	Title string `gorm:"size:100;not null"`
	// Url is the primary address loaded into the iframe.
	Url string `gorm:"size:2048;not null"`
	// UrlMobile is an optional address variant served to mobile clients.
	UrlMobile string `gorm:"size:2048"`
	// IconPath is an optional path to the icon shown next to the title.
	IconPath string `gorm:"size:255"`
	// IdleTimeoutMinutes unloads the iframe after this many idle minutes.
	// Zero disables idle unloading.
	IdleTimeoutMinutes int `gorm:"default:0"`
	// CreatedAt is the timestamp when the URL was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the URL was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Url model.
// This overrides GORM's default pluralized table naming.
func (Url) TableName() string {
	return "urls"
}
