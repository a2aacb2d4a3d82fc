package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestAutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"users", "categories", "tags", "links", "link_tags", "reminders"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestUserEmailUnique(t *testing.T) {
	db := setupTestDB(t)

	user := User{Name: "A", Email: "same@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	dup := User{Name: "B", Email: "same@example.com", PasswordHash: "y"}
	assert.Error(t, db.Create(&dup).Error)
}

func TestLinkDefaults(t *testing.T) {
	db := setupTestDB(t)

	user := User{Name: "A", Email: "a@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	link := Link{UserID: user.ID, URL: "https://example.com", Title: "T"}
	require.NoError(t, db.Create(&link).Error)

	var loaded Link
	require.NoError(t, db.First(&loaded, link.ID).Error)
	assert.Equal(t, PriorityMedium, loaded.Priority)
	assert.Equal(t, StatusPending, loaded.Status)
	assert.Nil(t, loaded.Deadline)
	assert.Nil(t, loaded.CategoryID)
}

func TestLinkTagPairUnique(t *testing.T) {
	db := setupTestDB(t)

	user := User{Name: "A", Email: "a@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	link := Link{UserID: user.ID, URL: "https://example.com", Title: "T"}
	require.NoError(t, db.Create(&link).Error)
	tag := Tag{UserID: user.ID, Name: "go"}
	require.NoError(t, db.Create(&tag).Error)

	require.NoError(t, db.Create(&LinkTag{LinkID: link.ID, TagID: tag.ID}).Error)
	assert.Error(t, db.Create(&LinkTag{LinkID: link.ID, TagID: tag.ID}).Error)
}

func TestTagsPreloadThroughJoinModel(t *testing.T) {
	db := setupTestDB(t)

	user := User{Name: "A", Email: "a@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	link := Link{UserID: user.ID, URL: "https://example.com", Title: "T"}
	require.NoError(t, db.Create(&link).Error)
	tag := Tag{UserID: user.ID, Name: "go"}
	require.NoError(t, db.Create(&tag).Error)
	require.NoError(t, db.Create(&LinkTag{LinkID: link.ID, TagID: tag.ID}).Error)

	var loaded Link
	require.NoError(t, db.Preload("Tags").First(&loaded, link.ID).Error)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "go", loaded.Tags[0].Name)
}

func TestValidEnums(t *testing.T) {
	assert.True(t, ValidPriority("Low"))
	assert.True(t, ValidPriority("Medium"))
	assert.True(t, ValidPriority("High"))
	assert.False(t, ValidPriority("Urgent"))
	assert.False(t, ValidPriority(""))

	assert.True(t, ValidStatus("Pending"))
	assert.True(t, ValidStatus("Completed"))
	assert.True(t, ValidStatus("Applied"))
	assert.True(t, ValidStatus("Rejected"))
	assert.False(t, ValidStatus("Archived"))
}

func TestReminderTimestamps(t *testing.T) {
	db := setupTestDB(t)

	user := User{Name: "A", Email: "a@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	link := Link{UserID: user.ID, URL: "https://example.com", Title: "T"}
	require.NoError(t, db.Create(&link).Error)

	when := time.Now().Add(24 * time.Hour)
	reminder := Reminder{UserID: user.ID, LinkID: link.ID, ReminderDate: when}
	require.NoError(t, db.Create(&reminder).Error)

	var loaded Reminder
	require.NoError(t, db.First(&loaded, reminder.ID).Error)
	assert.False(t, loaded.Sent)
	assert.False(t, loaded.CreatedAt.IsZero())
}
