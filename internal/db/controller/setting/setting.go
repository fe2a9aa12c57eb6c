// Package setting provides typed per-user preference storage.
//
// Preferences are stored as JSON-encoded values under a closed set of known
// keys. Restricting the keys and (de)serializing per key keeps the key/value
// table from drifting into stringly-typed blobs.
package setting

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/internal/db/models"
)

const (
	userKeyQueryPattern = "user_id = ? AND key = ?"
	userQueryPattern    = "user_id = ?"
)

// Known setting keys.
const (
	// KeyLastActiveURL stores the id of the link last shown in the iframe panel.
	KeyLastActiveURL = "last_active_url"
	// KeyLastSelectedGroup stores the id of the group last opened in the menu.
	KeyLastSelectedGroup = "last_selected_group"
	// KeyMenuPosition stores the navigation menu placement ("side" or "top").
	KeyMenuPosition = "menu_position"
	// KeyThemeMode stores the color scheme preference ("light" or "dark").
	KeyThemeMode = "theme_mode"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrUnknownKey is returned for keys outside the known set.
	ErrUnknownKey = errors.New("unknown setting key")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// knownKeys is the closed set of accepted setting keys.
var knownKeys = map[string]struct{}{
	KeyLastActiveURL:     {},
	KeyLastSelectedGroup: {},
	KeyMenuPosition:      {},
	KeyThemeMode:         {},
}

// KnownKey reports whether key belongs to the closed set of setting keys.
func KnownKey(key string) bool {
	_, ok := knownKeys[key]
	return ok
}

// Get retrieves a user's setting by key and decodes the JSON value into out.
func Get(db *gorm.DB, userID uint64, key string, out any) error {
	if db == nil {
		return ErrDBNil
	}
	if !KnownKey(key) {
		return ErrUnknownKey
	}

	var row models.UserSetting
	result := db.Where(userKeyQueryPattern, userID, key).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrSettingNotFound
		}
		return result.Error
	}

	return json.Unmarshal(row.Value, out)
}

// GetRaw retrieves a user's setting by key without decoding.
func GetRaw(db *gorm.DB, userID uint64, key string) ([]byte, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if !KnownKey(key) {
		return nil, ErrUnknownKey
	}

	var row models.UserSetting
	result := db.Where(userKeyQueryPattern, userID, key).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return row.Value, nil
}

// Set JSON-encodes the value and creates or updates the user's setting (upsert).
func Set(db *gorm.DB, userID uint64, key string, value any) error {
	if db == nil {
		return ErrDBNil
	}
	if !KnownKey(key) {
		return ErrUnknownKey
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var row models.UserSetting
	result := db.Where(userKeyQueryPattern, userID, key).First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		row = models.UserSetting{
			UserID: userID,
			Key:    key,
			Value:  encoded,
		}

		return db.Create(&row).Error
	}
	if result.Error != nil {
		return result.Error
	}

	row.Value = encoded

	return db.Save(&row).Error
}

// GetAll retrieves all settings of a user keyed by setting name.
func GetAll(db *gorm.DB, userID uint64) (map[string]json.RawMessage, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []models.UserSetting
	result := db.Where(userQueryPattern, userID).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	settings := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		settings[row.Key] = json.RawMessage(row.Value)
	}

	return settings, nil
}

// Delete removes a user's setting by key.
func Delete(db *gorm.DB, userID uint64, key string) error {
	if db == nil {
		return ErrDBNil
	}
	if !KnownKey(key) {
		return ErrUnknownKey
	}

	result := db.Where(userKeyQueryPattern, userID, key).Delete(&models.UserSetting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
