package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title   string `gorm:"size:200;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	// Countdown timer in minutes shown to readers; 0 means none.
	Timer int `gorm:"default:0" json:"timer"`

	CreatedByID uint `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID" json:"created_by"`

	Groups []Group       `gorm:"many2many:message_groups" json:"groups,omitempty"`
	Files  []MessageFile `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"files"`
	Reads  []ReadEvent   `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"reads,omitempty"`
}

type MessageFile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	MessageID uint   `gorm:"not null;index" json:"message_id"`
	Name      string `gorm:"not null" json:"name"`
	FileType  string `gorm:"size:40" json:"file_type"`
	// Key of the stored object, assigned at upload time.
	ObjectKey string `json:"object_key"`
}

type MessageResponse struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Timer     int           `json:"timer"`
	CreatedBy MemberEntry   `json:"created_by"`
	Files     []MessageFile `json:"files"`
	CreatedAt time.Time     `json:"created_at"`
}

func (m *Message) ToResponse() MessageResponse {
	files := m.Files
	if files == nil {
		files = []MessageFile{}
	}
	return MessageResponse{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Timer:     m.Timer,
		CreatedBy: m.CreatedBy.ToMemberEntry(),
		Files:     files,
		CreatedAt: m.CreatedAt,
	}
}

// AddressedTo reports whether the message targets the given group.
func (m *Message) AddressedTo(groupID uint) bool {
	for _, g := range m.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}
