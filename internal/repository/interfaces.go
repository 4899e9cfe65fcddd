package repository

import (
	"github.com/AshokWPD/gold-updated/internal/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Update(user *models.User) error
	UpdateFCMToken(userID uint, token *string) error
	SetActive(userID uint, active bool) error
	SetRole(userID uint, role models.Role) error
	ListByRole(role models.Role) ([]models.User, error)
	AdminTokens() ([]string, error)
	SearchOutsideGroup(groupID uint, query string, limit int) ([]models.User, error)
	SearchUsers(query string, limit int) ([]models.User, error)
	Purge(userID uint) error
}

// GroupRepositoryInterface defines the contract for group repository operations
type GroupRepositoryInterface interface {
	Create(group *models.Group) error
	FindByID(id uint) (*models.Group, error)
	Delete(groupID uint) error
	AddMember(groupID, userID uint) error
	RemoveMember(groupID, userID uint) error
	GetMembers(groupID uint) ([]models.User, error)
	IsMember(groupID, userID uint) (bool, error)
	GetUserGroups(userID uint) ([]models.Group, error)
	MemberTokens(groupID uint) ([]string, error)
}

// MessageRepositoryInterface defines the contract for message repository operations
type MessageRepositoryInterface interface {
	Create(message *models.Message) error
	FindByID(id uint) (*models.Message, error)
	ListByGroup(groupID, userID uint, filter string, offset, limit int) ([]models.Message, error)
	Update(message *models.Message) error
	ReplaceFiles(messageID uint, files []models.MessageFile) error
	Delete(messageID uint) error
	CountUnreadForUser(groupID, userID uint) (int64, error)
}

// ReadEventRepositoryInterface defines the contract for the read ledger.
// Append-only: no update or delete passes through here.
type ReadEventRepositoryInterface interface {
	Append(event *models.ReadEvent) error
	CountByMessageGroupUser(messageID, groupID, userID uint) (int64, error)
	LatestForMessageUser(messageID, userID uint) (*models.ReadEvent, error)
	ListForMessageGroup(messageID, groupID uint) ([]models.ReadEvent, error)
	ListRepliesByMessage(messageID uint) ([]models.ReadEvent, error)
}

// FeedbackRepositoryInterface defines the contract for safety feedback reports
type FeedbackRepositoryInterface interface {
	Create(feedback *models.Feedback) error
	FindByID(id uint) (*models.Feedback, error)
	Dashboard(userID uint) (models.FeedbackDashboard, error)
	Assign(feedbackID, userID uint) error
	ListAssigned(userID uint, offset, limit int) ([]models.Feedback, error)
	CountOpenAssignments(userID uint) (int64, error)
	CompleteAssignment(feedbackID, userID uint) error
	SetStatus(feedbackID uint, status models.FeedbackStatus) error
}
