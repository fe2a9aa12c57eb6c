// Package membership provides ordered URL-group membership operations.
//
// Every mutation runs inside a single database transaction and leaves the
// display order of the group's members as a contiguous, zero-based sequence.
// Concurrent requests against the same group serialize at the database's
// transaction-isolation level; there is no application-level locking.
package membership

import (
	"errors"

	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/internal/db/models"
)

const (
	groupQueryPattern      = "group_id = ?"
	membershipQueryPattern = "group_id = ? AND url_id = ?"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrGroupNotFound is returned when a group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrURLNotFound is returned when a referenced URL does not exist.
	ErrURLNotFound = errors.New("url not found")
	// ErrMembershipNotFound is returned when a URL is not a member of the group.
	ErrMembershipNotFound = errors.New("url is not a member of this group")
	// ErrGroupNameEmpty is returned when a group name is missing or empty.
	ErrGroupNameEmpty = errors.New("group name is required")
	// ErrURLsNotInGroup is returned when a reorder set does not exactly match
	// the group's current membership set.
	ErrURLsNotInGroup = errors.New("one or more URLs are not in this group")
	// ErrDuplicateURLs is returned when a replacement sequence names the same
	// URL id more than once.
	ErrDuplicateURLs = errors.New("duplicate url ids in request")
	// ErrNegativePosition is returned when a move target position is negative.
	ErrNegativePosition = errors.New("display order must be a non-negative integer")
)

// Member is a URL together with its position inside a group.
type Member struct {
	models.Url
	DisplayOrder int
}

// GetGroup retrieves a group by its id.
func GetGroup(db *gorm.DB, groupID uint64) (*models.UrlGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var group models.UrlGroup
	result := db.First(&group, groupID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, result.Error
	}

	return &group, nil
}

// ListGroups returns all groups ordered by name.
func ListGroups(db *gorm.DB) ([]models.UrlGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var groups []models.UrlGroup
	result := db.Order("name ASC").Find(&groups)
	if result.Error != nil {
		return nil, result.Error
	}

	return groups, nil
}

// ListGroupsForUser returns the groups a user may see through visibility
// grants, ordered by name.
func ListGroupsForUser(db *gorm.DB, userID uint64) ([]models.UrlGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var groups []models.UrlGroup
	result := db.
		Joins("JOIN user_url_groups ON user_url_groups.group_id = url_groups.id").
		Where("user_url_groups.user_id = ?", userID).
		Order("url_groups.name ASC").
		Find(&groups)
	if result.Error != nil {
		return nil, result.Error
	}

	return groups, nil
}

// UserHasGrant reports whether a user holds a visibility grant for the group.
func UserHasGrant(db *gorm.DB, userID, groupID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	result := db.Model(&models.UserUrlGroup{}).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// GetGroupWithURLs retrieves a group and its URL members ordered ascending by
// display order.
func GetGroupWithURLs(db *gorm.DB, groupID uint64) (*models.UrlGroup, []Member, error) {
	group, err := GetGroup(db, groupID)
	if err != nil {
		return nil, nil, err
	}

	members, err := groupMembers(db, groupID)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// groupMembers loads the membership rows of a group ordered by display order.
func groupMembers(db *gorm.DB, groupID uint64) ([]Member, error) {
	var rows []models.UrlInGroup
	result := db.Preload("Url").
		Where(groupQueryPattern, groupID).
		Order("display_order ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	members := make([]Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, Member{Url: row.Url, DisplayOrder: row.DisplayOrder})
	}

	return members, nil
}

// CreateGroup validates the name and persists a new group.
func CreateGroup(db *gorm.DB, name, description string) (*models.UrlGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrGroupNameEmpty
	}

	group := &models.UrlGroup{
		Name:        name,
		Description: description,
	}

	result := db.Create(group)
	if result.Error != nil {
		return nil, result.Error
	}

	return group, nil
}

// UpdateGroup updates the name and description of an existing group.
// The description defaults to empty when omitted.
func UpdateGroup(db *gorm.DB, groupID uint64, name, description string) (*models.UrlGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrGroupNameEmpty
	}

	group, err := GetGroup(db, groupID)
	if err != nil {
		return nil, err
	}

	group.Name = name
	group.Description = description

	result := db.Save(group)
	if result.Error != nil {
		return nil, result.Error
	}

	return group, nil
}

// DeleteGroup removes a group together with its memberships and
// user-visibility grants in one transaction.
func DeleteGroup(db *gorm.DB, groupID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := GetGroup(db, groupID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(groupQueryPattern, groupID).Delete(&models.UrlInGroup{}).Error; err != nil {
			return err
		}

		if err := tx.Where(groupQueryPattern, groupID).Delete(&models.UserUrlGroup{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.UrlGroup{}, groupID).Error
	})
}

// AddURLsToGroup appends the given URLs to a group in input order.
// Every supplied URL id must exist. URLs already members are skipped, so the
// operation is idempotent. New members receive the next available display
// order, starting at the current maximum plus one (or 0 on an empty group).
func AddURLsToGroup(db *gorm.DB, groupID uint64, urlIDs []uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := GetGroup(db, groupID); err != nil {
		return err
	}

	if err := verifyURLsExist(db, urlIDs); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		next, err := nextDisplayOrder(tx, groupID)
		if err != nil {
			return err
		}

		for _, urlID := range urlIDs {
			var existing models.UrlInGroup

			err := tx.Where(membershipQueryPattern, groupID, urlID).First(&existing).Error
			if err == nil {
				continue // already a member
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			row := models.UrlInGroup{
				UrlID:        urlID,
				GroupID:      groupID,
				DisplayOrder: next,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}

			next++
		}

		return nil
	})
}

// RemoveURLsFromGroup deletes the given memberships and renumbers the
// surviving members back to a contiguous zero-based sequence.
// Every supplied URL must currently be a member of the group.
func RemoveURLsFromGroup(db *gorm.DB, groupID uint64, urlIDs []uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := GetGroup(db, groupID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, urlID := range urlIDs {
			result := tx.Where(membershipQueryPattern, groupID, urlID).Delete(&models.UrlInGroup{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrMembershipNotFound
			}
		}

		return renumber(tx, groupID)
	})
}

// ReorderGroup rewrites the display order of a group to match the supplied
// URL id sequence. The sequence must exactly match the current membership set
// of the group, same cardinality and same ids, or the call fails with
// ErrURLsNotInGroup.
func ReorderGroup(db *gorm.DB, groupID uint64, urlIDs []uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := GetGroup(db, groupID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var current []models.UrlInGroup
		if err := tx.Where(groupQueryPattern, groupID).Find(&current).Error; err != nil {
			return err
		}

		if !sameMembershipSet(current, urlIDs) {
			return ErrURLsNotInGroup
		}

		return applyOrder(tx, groupID, urlIDs)
	})
}

// MoveURLToPosition removes the moved URL from the current ordered sequence,
// reinserts it at the target index and renumbers the resulting sequence.
// Target positions beyond the end of the list are clamped to the last
// position; negative positions are a validation error.
func MoveURLToPosition(db *gorm.DB, groupID, urlID uint64, position int) error {
	if db == nil {
		return ErrDBNil
	}
	if position < 0 {
		return ErrNegativePosition
	}

	if _, err := GetGroup(db, groupID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var rows []models.UrlInGroup
		if err := tx.Where(groupQueryPattern, groupID).
			Order("display_order ASC").
			Find(&rows).Error; err != nil {
			return err
		}

		sequence := make([]uint64, 0, len(rows))

		found := false
		for _, row := range rows {
			if row.UrlID == urlID {
				found = true
				continue
			}

			sequence = append(sequence, row.UrlID)
		}

		if !found {
			return ErrMembershipNotFound
		}

		if position > len(sequence) {
			position = len(sequence)
		}

		sequence = append(sequence[:position], append([]uint64{urlID}, sequence[position:]...)...)

		return applyOrder(tx, groupID, sequence)
	})
}

// ReplaceGroupURLs makes the supplied URL id sequence the exact membership of
// the group in the supplied order: missing memberships are created, absent
// ones removed and every member renumbered to its index. Reordering the
// current set is the special case where both sets already match.
// A sequence naming the same id twice fails with ErrDuplicateURLs before
// anything is written.
func ReplaceGroupURLs(db *gorm.DB, groupID uint64, urlIDs []uint64) error {
	if db == nil {
		return ErrDBNil
	}
	if hasDuplicates(urlIDs) {
		return ErrDuplicateURLs
	}

	if _, err := GetGroup(db, groupID); err != nil {
		return err
	}

	if err := verifyURLsExist(db, urlIDs); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(groupQueryPattern, groupID).Delete(&models.UrlInGroup{}).Error; err != nil {
			return err
		}

		for index, urlID := range urlIDs {
			row := models.UrlInGroup{
				UrlID:        urlID,
				GroupID:      groupID,
				DisplayOrder: index,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ClearGroupURLs removes all memberships of a group.
func ClearGroupURLs(db *gorm.DB, groupID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := GetGroup(db, groupID); err != nil {
		return err
	}

	return db.Where(groupQueryPattern, groupID).Delete(&models.UrlInGroup{}).Error
}

// CreateURLInGroup persists a new URL and appends it to the group with the
// next available display order, in one transaction.
func CreateURLInGroup(db *gorm.DB, groupID uint64, url *models.Url) (*models.Url, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if _, err := GetGroup(db, groupID); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(url).Error; err != nil {
			return err
		}

		next, err := nextDisplayOrder(tx, groupID)
		if err != nil {
			return err
		}

		row := models.UrlInGroup{
			UrlID:        url.ID,
			GroupID:      groupID,
			DisplayOrder: next,
		}

		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}

	return url, nil
}

// hasDuplicates reports whether a URL id occurs more than once.
func hasDuplicates(urlIDs []uint64) bool {
	seen := make(map[uint64]struct{}, len(urlIDs))
	for _, id := range urlIDs {
		if _, dup := seen[id]; dup {
			return true
		}
		seen[id] = struct{}{}
	}

	return false
}

// verifyURLsExist fails with ErrURLNotFound if any of the given URL ids is unknown.
func verifyURLsExist(db *gorm.DB, urlIDs []uint64) error {
	if len(urlIDs) == 0 {
		return nil
	}

	unique := make(map[uint64]struct{}, len(urlIDs))
	for _, id := range urlIDs {
		unique[id] = struct{}{}
	}

	ids := make([]uint64, 0, len(unique))
	for id := range unique {
		ids = append(ids, id)
	}

	var count int64
	if err := db.Model(&models.Url{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}

	if count != int64(len(ids)) {
		return ErrURLNotFound
	}

	return nil
}

// nextDisplayOrder returns the display order the next appended member receives.
func nextDisplayOrder(tx *gorm.DB, groupID uint64) (int, error) {
	var row models.UrlInGroup

	err := tx.Where(groupQueryPattern, groupID).
		Order("display_order DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return row.DisplayOrder + 1, nil
}

// renumber re-reads the remaining members ordered by their current display
// order and rewrites the orders to 0..n-1, restoring the contiguity invariant.
func renumber(tx *gorm.DB, groupID uint64) error {
	var rows []models.UrlInGroup
	if err := tx.Where(groupQueryPattern, groupID).
		Order("display_order ASC").
		Find(&rows).Error; err != nil {
		return err
	}

	for index, row := range rows {
		if row.DisplayOrder == index {
			continue
		}

		if err := tx.Model(&models.UrlInGroup{}).
			Where(membershipQueryPattern, groupID, row.UrlID).
			Update("display_order", index).Error; err != nil {
			return err
		}
	}

	return nil
}

// applyOrder assigns display order = index for each URL id in the supplied order.
func applyOrder(tx *gorm.DB, groupID uint64, urlIDs []uint64) error {
	for index, urlID := range urlIDs {
		if err := tx.Model(&models.UrlInGroup{}).
			Where(membershipQueryPattern, groupID, urlID).
			Update("display_order", index).Error; err != nil {
			return err
		}
	}

	return nil
}

// sameMembershipSet reports whether the supplied ids exactly match the current
// membership rows, same cardinality and same ids.
func sameMembershipSet(current []models.UrlInGroup, urlIDs []uint64) bool {
	if len(current) != len(urlIDs) {
		return false
	}

	members := make(map[uint64]struct{}, len(current))
	for _, row := range current {
		members[row.UrlID] = struct{}{}
	}

	seen := make(map[uint64]struct{}, len(urlIDs))
	for _, id := range urlIDs {
		if _, ok := members[id]; !ok {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}

	return true
}
