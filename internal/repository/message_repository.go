package repository

import (
	"github.com/AshokWPD/gold-updated/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) FindByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.
		Preload("Groups").
		Preload("Files").
		Preload("CreatedBy").
		First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByGroup returns the group's messages, newest first. filter narrows
// to messages the user has ("read") or has not ("unread") acknowledged in
// this group; anything else returns all.
func (r *MessageRepository) ListByGroup(groupID, userID uint, filter string, offset, limit int) ([]models.Message, error) {
	q := r.db.Model(&models.Message{}).
		Joins("JOIN message_groups ON message_groups.message_id = messages.id").
		Where("message_groups.group_id = ?", groupID)

	readClause := "EXISTS (SELECT 1 FROM read_events WHERE read_events.message_id = messages.id AND read_events.group_id = ? AND read_events.user_id = ?)"
	switch filter {
	case "read":
		q = q.Where(readClause, groupID, userID)
	case "unread":
		q = q.Where("NOT "+readClause, groupID, userID)
	}

	var messages []models.Message
	err := q.Order("messages.created_at DESC").
		Offset(offset).
		Limit(limit).
		Preload("Files").
		Preload("CreatedBy").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) Update(message *models.Message) error {
	return r.db.Model(&models.Message{}).
		Where("id = ?", message.ID).
		Updates(map[string]interface{}{
			"title":   message.Title,
			"content": message.Content,
			"timer":   message.Timer,
		}).Error
}

// ReplaceFiles swaps the message's attached file set.
func (r *MessageRepository) ReplaceFiles(messageID uint, files []models.MessageFile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", messageID).Delete(&models.MessageFile{}).Error; err != nil {
			return err
		}
		for i := range files {
			files[i].ID = 0
			files[i].MessageID = messageID
		}
		if len(files) == 0 {
			return nil
		}
		return tx.Create(&files).Error
	})
}

func (r *MessageRepository) Delete(messageID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", messageID).Delete(&models.ReadEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("message_id = ?", messageID).Delete(&models.MessageFile{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM message_groups WHERE message_id = ?", messageID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Message{}, messageID).Error
	})
}

// CountUnreadForUser counts the group's messages the user has neither
// authored nor acknowledged in this group.
func (r *MessageRepository) CountUnreadForUser(groupID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Joins("JOIN message_groups ON message_groups.message_id = messages.id").
		Where("message_groups.group_id = ?", groupID).
		Where("messages.created_by_id <> ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM read_events WHERE read_events.message_id = messages.id AND read_events.group_id = ? AND read_events.user_id = ?)", groupID, userID).
		Count(&count).Error
	return count, err
}
