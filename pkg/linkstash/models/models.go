package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: User must be migrated first as other models depend on it
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Tag{},
		&Link{},
		&LinkTag{},
		&Reminder{},
	}
}

// AutoMigrate runs GORM auto-migration for all models.
// The Link<->Tag association uses the explicit LinkTag join model so the
// unique (link_id, tag_id) constraint is enforced at the schema level.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Link{}, "Tags", &LinkTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(AllModels()...)
}
