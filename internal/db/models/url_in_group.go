package models

// UrlInGroup represents the many-to-many relationship between URLs and groups.
// Each row carries the DisplayOrder of the URL within the group.
//
// Invariant: for a fixed group the DisplayOrder values of its members form a
// contiguous, zero-based, strictly increasing sequence with no gaps or
// duplicates after any mutation completes. The membership controller
// re-establishes this invariant after every add, remove, reorder and move.
type UrlInGroup struct {
	// UrlID is the ID of the URL in this membership.
	UrlID uint64 `gorm:"primaryKey;column:url_id"`
	// GroupID is the ID of the group in this membership.
	GroupID uint64 `gorm:"primaryKey;column:group_id"`
	// DisplayOrder is the zero-based position of the URL within the group.
	DisplayOrder int `gorm:"not null;default:0"`
	// Url is the associated URL (loaded via foreign key).
	// When a URL is deleted, all its memberships are automatically removed (CASCADE).
	Url Url `gorm:"foreignKey:UrlID;constraint:OnDelete:CASCADE"`
	// Group is the associated group (loaded via foreign key).
	// When a group is deleted, all its memberships are automatically removed (CASCADE).
	Group UrlGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the UrlInGroup model.
// This overrides GORM's default pluralized table naming.
func (UrlInGroup) TableName() string {
	return "urls_in_groups"
}
