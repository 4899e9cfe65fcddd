package service

import (
	"errors"
	"fmt"

	"github.com/AshokWPD/gold-updated/internal/cache"
	"github.com/AshokWPD/gold-updated/internal/models"
	"github.com/AshokWPD/gold-updated/internal/notify"
	"github.com/AshokWPD/gold-updated/internal/repository"
	"gorm.io/gorm"
)

type FeedbackService struct {
	feedbackRepo repository.FeedbackRepositoryInterface
	userRepo     repository.UserRepositoryInterface
	dispatcher   *notify.Dispatcher
	directory    *cache.DirectoryCache
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	dispatcher *notify.Dispatcher,
	directory *cache.DirectoryCache,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
		directory:    directory,
	}
}

type CreateFeedbackInput struct {
	Location    string               `json:"location"`
	Description string               `json:"description"`
	Color       models.FeedbackColor `json:"color"`
}

// Create files a safety report and pushes it to the admin set. The push is
// best-effort; the report is filed regardless.
func (s *FeedbackService) Create(userID uint, input CreateFeedbackInput) (*models.Feedback, error) {
	if input.Description == "" || !input.Color.Valid() {
		return nil, ErrInvalidInput
	}

	feedback := &models.Feedback{
		Location:    input.Location,
		Description: input.Description,
		Color:       input.Color,
		Status:      models.FeedbackCreated,
		CreatedByID: userID,
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, err
	}

	tokens := notify.NewTokenSet()
	tokens.Add(s.adminTokens()...)
	s.dispatcher.Dispatch(notify.Notification{
		Title:  fmt.Sprintf("New %s Feedback Reported", input.Color),
		Body:   input.Description,
		Tokens: tokens.Tokens(),
		Data: map[string]string{
			"feedbackId": fmt.Sprintf("%d", feedback.ID),
			"route":      "feedback",
		},
	})

	return s.feedbackRepo.FindByID(feedback.ID)
}

func (s *FeedbackService) adminTokens() []string {
	if tokens, ok := s.directory.GetAdminTokens(); ok {
		return tokens
	}
	tokens, err := s.userRepo.AdminTokens()
	if err != nil {
		return nil
	}
	_ = s.directory.SetAdminTokens(tokens)
	return tokens
}

func (s *FeedbackService) Dashboard(userID uint) (models.FeedbackDashboard, error) {
	return s.feedbackRepo.Dashboard(userID)
}

// DrawerData returns the open-assignment count shown in the client's
// navigation drawer.
func (s *FeedbackService) DrawerData(userID uint) (int64, error) {
	return s.feedbackRepo.CountOpenAssignments(userID)
}

func (s *FeedbackService) Assigned(userID uint, page, limit int) ([]models.Feedback, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.feedbackRepo.ListAssigned(userID, (page-1)*limit, limit)
}

// Assign hands the report to the given users and moves it to inProgress,
// notifying each assignee that has a device token.
func (s *FeedbackService) Assign(feedbackID uint, userIDs []uint) error {
	feedback, err := s.feedbackRepo.FindByID(feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}

	tokens := notify.NewTokenSet()
	for _, userID := range userIDs {
		user, err := s.userRepo.FindByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := s.feedbackRepo.Assign(feedbackID, userID); err != nil {
			return err
		}
		if user.FCMToken != nil {
			tokens.Add(*user.FCMToken)
		}
	}

	if err := s.feedbackRepo.SetStatus(feedbackID, models.FeedbackInProgress); err != nil {
		return err
	}

	s.dispatcher.Dispatch(notify.Notification{
		Title:  "Feedback Assigned To You",
		Body:   feedback.Description,
		Tokens: tokens.Tokens(),
		Data: map[string]string{
			"feedbackId": fmt.Sprintf("%d", feedbackID),
			"route":      "feedback",
		},
	})
	return nil
}

func (s *FeedbackService) CompleteAssignment(feedbackID, userID uint) error {
	if _, err := s.feedbackRepo.FindByID(feedbackID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}
	return s.feedbackRepo.CompleteAssignment(feedbackID, userID)
}

func (s *FeedbackService) Close(feedbackID uint) error {
	if _, err := s.feedbackRepo.FindByID(feedbackID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}
	return s.feedbackRepo.SetStatus(feedbackID, models.FeedbackClosed)
}
