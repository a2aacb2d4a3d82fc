package models

import "time"

// User represents an account that owns links, categories and tags
type User struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Name               string    `gorm:"not null" json:"name"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `json:"-"`
	EmailVerified      bool      `gorm:"default:false" json:"email_verified"`
	EmailNotifications bool      `gorm:"default:true" json:"email_notifications"`
	PushNotifications  bool      `gorm:"default:true" json:"push_notifications"`

	// Relationships
	Links      []Link     `gorm:"foreignKey:UserID" json:"links,omitempty"`
	Categories []Category `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Tags       []Tag      `gorm:"foreignKey:UserID" json:"tags,omitempty"`
}
