package models

import (
	"time"

	"gorm.io/gorm"
)

type Group struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Avatar string `json:"avatar"`

	Members  []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Messages []Message     `gorm:"many2many:message_groups" json:"-"`
}

type GroupMember struct {
	GroupID  uint      `gorm:"primaryKey" json:"group_id"`
	UserID   uint      `gorm:"primaryKey" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User  User  `gorm:"foreignKey:UserID" json:"user"`
	Group Group `gorm:"foreignKey:GroupID" json:"-"`
}

// GroupSummary is a group row decorated with the caller's unread message
// count, used by the group listing.
type GroupSummary struct {
	Group
	UnreadCount int64 `json:"unread_count"`
}
