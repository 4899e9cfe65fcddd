package repository

import (
	"github.com/AshokWPD/gold-updated/internal/models"
	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *FeedbackRepository) FindByID(id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.
		Preload("CreatedBy").
		Preload("Assignments.User").
		First(&feedback, id).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *FeedbackRepository) Dashboard(userID uint) (models.FeedbackDashboard, error) {
	var dash models.FeedbackDashboard
	base := func() *gorm.DB {
		return r.db.Model(&models.Feedback{}).Where("created_by_id = ?", userID)
	}
	if err := base().Count(&dash.Total).Error; err != nil {
		return dash, err
	}
	if err := base().Where("color = ?", models.FeedbackRed).Count(&dash.Red).Error; err != nil {
		return dash, err
	}
	if err := base().Where("color = ?", models.FeedbackYellow).Count(&dash.Yellow).Error; err != nil {
		return dash, err
	}
	err := base().Where("color = ?", models.FeedbackGreen).Count(&dash.Green).Error
	return dash, err
}

func (r *FeedbackRepository) Assign(feedbackID, userID uint) error {
	assignment := models.FeedbackAssignment{
		FeedbackID: feedbackID,
		UserID:     userID,
	}
	return r.db.Create(&assignment).Error
}

func (r *FeedbackRepository) ListAssigned(userID uint, offset, limit int) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.
		Joins("JOIN feedback_assignments ON feedback_assignments.feedback_id = feedbacks.id").
		Where("feedback_assignments.user_id = ?", userID).
		Order("feedbacks.created_at DESC").
		Offset(offset).
		Limit(limit).
		Preload("CreatedBy").
		Preload("Assignments.User").
		Find(&feedbacks).Error
	return feedbacks, err
}

func (r *FeedbackRepository) CountOpenAssignments(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FeedbackAssignment{}).
		Where("user_id = ? AND completed = false", userID).
		Count(&count).Error
	return count, err
}

func (r *FeedbackRepository) CompleteAssignment(feedbackID, userID uint) error {
	return r.db.Model(&models.FeedbackAssignment{}).
		Where("feedback_id = ? AND user_id = ?", feedbackID, userID).
		Update("completed", true).Error
}

func (r *FeedbackRepository) SetStatus(feedbackID uint, status models.FeedbackStatus) error {
	return r.db.Model(&models.Feedback{}).
		Where("id = ?", feedbackID).
		Update("status", status).Error
}
