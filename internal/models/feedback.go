package models

import (
	"time"

	"gorm.io/gorm"
)

// FeedbackColor is the severity bucket of a safety report.
type FeedbackColor string

const (
	FeedbackRed    FeedbackColor = "red"
	FeedbackYellow FeedbackColor = "yellow"
	FeedbackGreen  FeedbackColor = "green"
)

func (c FeedbackColor) Valid() bool {
	switch c {
	case FeedbackRed, FeedbackYellow, FeedbackGreen:
		return true
	}
	return false
}

type FeedbackStatus string

const (
	FeedbackCreated    FeedbackStatus = "created"
	FeedbackInProgress FeedbackStatus = "inProgress"
	FeedbackClosed     FeedbackStatus = "closed"
)

type Feedback struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Location    string         `gorm:"size:200" json:"location"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Color       FeedbackColor  `gorm:"type:varchar(10);not null" json:"color"`
	Status      FeedbackStatus `gorm:"type:varchar(20);not null;default:created" json:"status"`

	CreatedByID uint `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID" json:"created_by"`

	Assignments []FeedbackAssignment `gorm:"foreignKey:FeedbackID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

type FeedbackAssignment struct {
	FeedbackID uint      `gorm:"primaryKey" json:"feedback_id"`
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	Completed  bool      `gorm:"not null;default:false" json:"completed"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}

// FeedbackDashboard is the per-user count breakdown by color bucket.
type FeedbackDashboard struct {
	Total  int64 `json:"totalFeedbacks"`
	Red    int64 `json:"redFeedbacks"`
	Yellow int64 `json:"yellowFeedbacks"`
	Green  int64 `json:"greenFeedbacks"`
}
