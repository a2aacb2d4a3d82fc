package models

import "time"

// Tag represents a label a user can apply to links
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Links []Link `gorm:"many2many:link_tags;" json:"links,omitempty"`
}

// LinkTag is the join row between a link and a tag.
// The composite unique index rejects duplicate (link_id, tag_id) pairs.
type LinkTag struct {
	ID     uint `gorm:"primarykey" json:"id"`
	LinkID uint `gorm:"not null;index;uniqueIndex:idx_link_tag_pair" json:"link_id"`
	TagID  uint `gorm:"not null;uniqueIndex:idx_link_tag_pair" json:"tag_id"`
}

// TableName keeps the join table name stable for the many2many association
func (LinkTag) TableName() string {
	return "link_tags"
}
