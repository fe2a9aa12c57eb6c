package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.UserSetting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) uint64 {
	t.Helper()

	user := models.User{Username: username}
	require.NoError(t, db.Create(&user).Error)

	return user.ID
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	userID := seedUser(t, db, "alice")

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		seed          any
		expectedError error
		expectedValue uint64
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			key:           KeyLastActiveURL,
			expectedError: ErrDBNil,
		},
		{
			name:          "unknown key",
			dbParam:       db,
			key:           "favorite_color",
			expectedError: ErrUnknownKey,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			key:           KeyLastSelectedGroup,
			expectedError: ErrSettingNotFound,
		},
		{
			name:          "successful get",
			dbParam:       db,
			key:           KeyLastActiveURL,
			seed:          uint64(42),
			expectedValue: 42,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.seed != nil {
				require.NoError(t, Set(db, userID, tc.key, tc.seed))
			}

			var got uint64
			err := Get(tc.dbParam, userID, tc.key, &got)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedValue, got)
			}
		})
	}
}

func TestSetUpsertsPerUser(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, Set(db, alice, KeyThemeMode, "dark"))
	require.NoError(t, Set(db, alice, KeyThemeMode, "light")) // update, not duplicate
	require.NoError(t, Set(db, bob, KeyThemeMode, "dark"))

	var theme string
	require.NoError(t, Get(db, alice, KeyThemeMode, &theme))
	assert.Equal(t, "light", theme)

	require.NoError(t, Get(db, bob, KeyThemeMode, &theme))
	assert.Equal(t, "dark", theme)

	var count int64
	require.NoError(t, db.Model(&models.UserSetting{}).Where("user_id = ?", alice).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.ErrorIs(t, Set(db, alice, "favorite_color", "blue"), ErrUnknownKey)
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)
	userID := seedUser(t, db, "alice")

	require.NoError(t, Set(db, userID, KeyThemeMode, "dark"))
	require.NoError(t, Set(db, userID, KeyLastActiveURL, uint64(7)))

	settings, err := GetAll(db, userID)
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.JSONEq(t, `"dark"`, string(settings[KeyThemeMode]))
	assert.JSONEq(t, `7`, string(settings[KeyLastActiveURL]))
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	userID := seedUser(t, db, "alice")

	require.ErrorIs(t, Delete(db, userID, KeyThemeMode), ErrSettingNotFound)
	require.ErrorIs(t, Delete(db, userID, "favorite_color"), ErrUnknownKey)

	require.NoError(t, Set(db, userID, KeyThemeMode, "dark"))
	require.NoError(t, Delete(db, userID, KeyThemeMode))

	var theme string
	require.ErrorIs(t, Get(db, userID, KeyThemeMode, &theme), ErrSettingNotFound)
}
