package service

import (
	"errors"

	"github.com/AshokWPD/gold-updated/internal/cache"
	"github.com/AshokWPD/gold-updated/internal/models"
	"github.com/AshokWPD/gold-updated/internal/repository"
	"gorm.io/gorm"
)

// UserService carries the administrative user operations.
type UserService struct {
	userRepo  repository.UserRepositoryInterface
	directory *cache.DirectoryCache
}

func NewUserService(userRepo repository.UserRepositoryInterface, directory *cache.DirectoryCache) *UserService {
	return &UserService{userRepo: userRepo, directory: directory}
}

func (s *UserService) Get(userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Search(query string, limit int) ([]models.User, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.userRepo.SearchUsers(query, limit)
}

func (s *UserService) SetRole(userID uint, role models.Role) error {
	if !role.Valid() {
		return ErrInvalidInput
	}
	if _, err := s.Get(userID); err != nil {
		return err
	}
	if err := s.userRepo.SetRole(userID, role); err != nil {
		return err
	}
	// Role changes can move a user in or out of the admin fan-out set.
	_ = s.directory.InvalidateAdminTokens()
	return nil
}

func (s *UserService) SetActive(userID uint, active bool) error {
	if _, err := s.Get(userID); err != nil {
		return err
	}
	if err := s.userRepo.SetActive(userID, active); err != nil {
		return err
	}
	_ = s.directory.InvalidateAdminTokens()
	return nil
}

// Purge hard-deletes the user and everything they own. Admin-only and
// irreversible.
func (s *UserService) Purge(userID uint) error {
	if _, err := s.Get(userID); err != nil {
		return err
	}
	if err := s.userRepo.Purge(userID); err != nil {
		return err
	}
	_ = s.directory.InvalidateAdminTokens()
	return nil
}
