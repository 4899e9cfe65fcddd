package repository

import (
	"github.com/AshokWPD/gold-updated/internal/models"
	"gorm.io/gorm"
)

// ReadEventRepository is the persistence side of the read ledger. The
// ledger is append-only; nothing here updates or deletes rows.
type ReadEventRepository struct {
	db *gorm.DB
}

func NewReadEventRepository(db *gorm.DB) *ReadEventRepository {
	return &ReadEventRepository{db: db}
}

func (r *ReadEventRepository) Append(event *models.ReadEvent) error {
	return r.db.Create(event).Error
}

func (r *ReadEventRepository) CountByMessageGroupUser(messageID, groupID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ReadEvent{}).
		Where("message_id = ? AND group_id = ? AND user_id = ?", messageID, groupID, userID).
		Count(&count).Error
	return count, err
}

// LatestForMessageUser returns the user's most recent event for the
// message across all of its groups, or gorm.ErrRecordNotFound.
func (r *ReadEventRepository) LatestForMessageUser(messageID, userID uint) (*models.ReadEvent, error) {
	var event models.ReadEvent
	err := r.db.
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Order("id DESC").
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListForMessageGroup returns every event for the message in the group,
// highest id first, with the reader loaded. The id ordering stands in for
// insertion order; read_at is not guaranteed monotonic across rows.
func (r *ReadEventRepository) ListForMessageGroup(messageID, groupID uint) ([]models.ReadEvent, error) {
	var events []models.ReadEvent
	err := r.db.
		Preload("User").
		Where("message_id = ? AND group_id = ?", messageID, groupID).
		Order("id DESC").
		Find(&events).Error
	return events, err
}

// ListRepliesByMessage returns the message's events carrying a reply, in
// every group, newest first. Silent acknowledgements are excluded.
func (r *ReadEventRepository) ListRepliesByMessage(messageID uint) ([]models.ReadEvent, error) {
	var events []models.ReadEvent
	err := r.db.
		Preload("User").
		Where("message_id = ? AND reply IS NOT NULL", messageID).
		Order("read_at DESC, id DESC").
		Find(&events).Error
	return events, err
}
