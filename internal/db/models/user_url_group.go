package models

import "time"

// UserUrlGroup grants a user visibility into a URL group.
// This junction table is independent of membership ordering: it decides which
// groups a regular user can read, not how the links inside them are arranged.
type UserUrlGroup struct {
	// UserID is the ID of the user in this grant.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// GroupID is the ID of the group in this grant.
	GroupID uint64 `gorm:"primaryKey;column:group_id"`
	// User is the associated user (loaded via foreign key).
	// When a user is deleted, all their grants are automatically removed (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Group is the associated group (loaded via foreign key).
	// When a group is deleted, all grants on it are automatically removed (CASCADE).
	Group UrlGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the grant was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the UserUrlGroup model.
// This overrides GORM's default pluralized table naming.
func (UserUrlGroup) TableName() string {
	return "user_url_groups"
}
