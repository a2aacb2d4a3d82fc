package models

import "time"

// Category groups a user's links; each link references at most one
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Icon      string    `json:"icon"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Links []Link `gorm:"foreignKey:CategoryID" json:"links,omitempty"`
}
