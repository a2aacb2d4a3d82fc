package models

import "time"

// LinkPriority represents how important a saved link is
type LinkPriority string

const (
	PriorityLow    LinkPriority = "Low"
	PriorityMedium LinkPriority = "Medium"
	PriorityHigh   LinkPriority = "High"
)

// LinkStatus represents the lifecycle state of a saved link
type LinkStatus string

const (
	StatusPending   LinkStatus = "Pending"
	StatusCompleted LinkStatus = "Completed"
	StatusApplied   LinkStatus = "Applied"
	StatusRejected  LinkStatus = "Rejected"
)

// ValidPriority reports whether s is a recognized priority value
func ValidPriority(s string) bool {
	switch LinkPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is a recognized status value
func ValidStatus(s string) bool {
	switch LinkStatus(s) {
	case StatusPending, StatusCompleted, StatusApplied, StatusRejected:
		return true
	}
	return false
}

// MaxTitleLength is the longest title a link may carry
const MaxTitleLength = 150

// Link represents a saved URL/bookmark
type Link struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	URL         string       `gorm:"not null" json:"url"`
	Title       string       `gorm:"size:150;not null" json:"title"`
	Description string       `json:"description"`
	Favicon     string       `json:"favicon"`
	CategoryID  *uint        `gorm:"index" json:"category_id"`
	Notes       *string      `json:"notes"`
	Deadline    *time.Time   `json:"deadline"`
	Priority    LinkPriority `gorm:"type:varchar(10);default:'Medium'" json:"priority"`
	Status      LinkStatus   `gorm:"type:varchar(10);default:'Pending'" json:"status"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags     []Tag     `gorm:"many2many:link_tags;" json:"tags,omitempty"`
}
