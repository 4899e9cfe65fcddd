package testutil

import (
	"testing"
	"time"

	"github.com/AshokWPD/gold-updated/internal/models"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(id uint, name, email string) *models.User {
	if id == 0 {
		id = 1
	}
	if name == "" {
		name = "Test User"
	}
	if email == "" {
		email = "test@example.com"
	}

	return &models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: "hashed_password_123",
		Department:   "Deck",
		Role:         models.RoleUser,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// CreateTestGroup creates a test group with default values
func (h *TestHelper) CreateTestGroup(id uint, name string) *models.Group {
	if id == 0 {
		id = 1
	}
	if name == "" {
		name = "Test Group"
	}

	return &models.Group{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CreateTestMessage creates a test message with default values
func (h *TestHelper) CreateTestMessage(id uint, authorID uint, content string) *models.Message {
	if id == 0 {
		id = 1
	}
	if authorID == 0 {
		authorID = 1
	}
	if content == "" {
		content = "Test message"
	}

	return &models.Message{
		ID:          id,
		Title:       "Test title",
		Content:     content,
		CreatedByID: authorID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}
