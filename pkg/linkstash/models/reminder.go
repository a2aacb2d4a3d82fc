package models

import "time"

// Reminder schedules a notification for a link. Delivery happens outside
// this service; only the record is managed here.
type Reminder struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	LinkID       uint      `gorm:"not null;index" json:"link_id"`
	ReminderDate time.Time `gorm:"not null" json:"reminder_date"`
	Sent         bool      `gorm:"default:false" json:"sent"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
	Link Link `gorm:"foreignKey:LinkID" json:"link,omitempty"`
}
