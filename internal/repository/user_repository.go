package repository

import (
	"github.com/AshokWPD/gold-updated/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFCMToken(userID uint, token *string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("fcm_token", token).Error
}

func (r *UserRepository) SetActive(userID uint, active bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("active", active).Error
}

func (r *UserRepository) SetRole(userID uint, role models.Role) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error
}

func (r *UserRepository) ListByRole(role models.Role) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", role).Find(&users).Error
	return users, err
}

// AdminTokens returns the device tokens of every admin that has one.
func (r *UserRepository) AdminTokens() ([]string, error) {
	var tokens []string
	err := r.db.Model(&models.User{}).
		Where("role = ? AND fcm_token IS NOT NULL", models.RoleAdmin).
		Pluck("fcm_token", &tokens).Error
	return tokens, err
}

// SearchOutsideGroup finds non-admin users matching the query who are not
// already members of the group, for the add-member picker.
func (r *UserRepository) SearchOutsideGroup(groupID uint, query string, limit int) ([]models.User, error) {
	var users []models.User
	q := "%" + query + "%"
	err := r.db.
		Where("role <> ?", models.RoleAdmin).
		Where("id NOT IN (SELECT user_id FROM group_members WHERE group_id = ?)", groupID).
		Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR phone LIKE ? OR LOWER(department) LIKE LOWER(?) OR employee_number LIKE ?",
			q, q, q, q, q,
		).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) SearchUsers(query string, limit int) ([]models.User, error) {
	var users []models.User
	q := "%" + query + "%"
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR employee_number LIKE ?", q, q, q).
		Limit(limit).
		Find(&users).Error
	return users, err
}

// Purge hard-deletes a user together with everything they own: read
// events, authored messages (with files and reads), group memberships and
// feedback assignments. Used by the bulk admin cleanup only.
func (r *UserRepository) Purge(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.ReadEvent{}).Error; err != nil {
			return err
		}
		var messageIDs []uint
		if err := tx.Model(&models.Message{}).Where("created_by_id = ?", userID).Pluck("id", &messageIDs).Error; err != nil {
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
		if err := tx.Where("user_id = ?", userID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.FeedbackAssignment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, userID).Error
	})
}
