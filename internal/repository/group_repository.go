package repository

import (
	"github.com/AshokWPD/gold-updated/internal/models"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

func (r *GroupRepository) FindByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.Preload("Members.User").First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes the group, its memberships and every message addressed to
// it, with the message's files and read events.
func (r *GroupRepository) Delete(groupID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var messageIDs []uint
		if err := tx.Table("message_groups").Where("group_id = ?", groupID).Pluck("message_id", &messageIDs).Error; err != nil {
			return err
		}
		if len(messageIDs) > 0 {
			if err := tx.Where("message_id IN ?", messageIDs).Delete(&models.ReadEvent{}).Error; err != nil {
				return err
			}
			if err := tx.Where("message_id IN ?", messageIDs).Delete(&models.MessageFile{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM message_groups WHERE message_id IN ?", messageIDs).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", messageIDs).Delete(&models.Message{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Group{}, groupID).Error
	})
}

func (r *GroupRepository) AddMember(groupID, userID uint) error {
	member := models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
	}
	return r.db.Create(&member).Error
}

func (r *GroupRepository) RemoveMember(groupID, userID uint) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupMember{}).Error
}

func (r *GroupRepository) GetMembers(groupID uint) ([]models.User, error) {
	var members []models.User
	err := r.db.Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ?", groupID).
		Find(&members).Error
	return members, err
}

func (r *GroupRepository) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GroupRepository) GetUserGroups(userID uint) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at ASC").
		Find(&groups).Error
	return groups, err
}

// MemberTokens returns the device tokens of every group member that has
// one. Duplicate-free sets are the caller's concern.
func (r *GroupRepository) MemberTokens(groupID uint) ([]string, error) {
	var tokens []string
	err := r.db.Model(&models.User{}).
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ? AND users.fcm_token IS NOT NULL", groupID).
		Pluck("users.fcm_token", &tokens).Error
	return tokens, err
}
