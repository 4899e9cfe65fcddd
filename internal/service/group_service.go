package service

import (
	"errors"

	"github.com/AshokWPD/gold-updated/internal/cache"
	"github.com/AshokWPD/gold-updated/internal/models"
	"github.com/AshokWPD/gold-updated/internal/repository"
	"gorm.io/gorm"
)

type GroupService struct {
	groupRepo   repository.GroupRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	messageRepo repository.MessageRepositoryInterface
	directory   *cache.DirectoryCache
}

func NewGroupService(
	groupRepo repository.GroupRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	messageRepo repository.MessageRepositoryInterface,
	directory *cache.DirectoryCache,
) *GroupService {
	return &GroupService{
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		directory:   directory,
	}
}

func (s *GroupService) Create(name string, memberIDs []uint) (*models.Group, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}
	group := &models.Group{Name: name}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}
	for _, userID := range memberIDs {
		if err := s.groupRepo.AddMember(group.ID, userID); err != nil {
			return nil, err
		}
	}
	return s.groupRepo.FindByID(group.ID)
}

func (s *GroupService) Get(groupID uint) (*models.Group, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// Delete removes the group and cascades its messages.
func (s *GroupService) Delete(groupID uint) error {
	if _, err := s.Get(groupID); err != nil {
		return err
	}
	if err := s.groupRepo.Delete(groupID); err != nil {
		return err
	}
	_ = s.directory.InvalidateGroup(groupID)
	return nil
}

// MyGroups lists the user's groups with their unread message counts.
func (s *GroupService) MyGroups(userID uint) ([]models.GroupSummary, error) {
	groups, err := s.groupRepo.GetUserGroups(userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.GroupSummary, 0, len(groups))
	for _, g := range groups {
		unread, err := s.messageRepo.CountUnreadForUser(g.ID, userID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.GroupSummary{Group: g, UnreadCount: unread})
	}
	return summaries, nil
}

// Members returns the group's current member list, through the directory
// cache when warm.
func (s *GroupService) Members(groupID uint) ([]models.User, error) {
	if members, ok := s.directory.GetMembers(groupID); ok {
		return members, nil
	}
	if _, err := s.Get(groupID); err != nil {
		return nil, err
	}
	members, err := s.groupRepo.GetMembers(groupID)
	if err != nil {
		return nil, err
	}
	_ = s.directory.SetMembers(groupID, members)
	return members, nil
}

// MembersFor is the member-visible variant: the caller must belong to the
// group.
func (s *GroupService) MembersFor(groupID, userID uint) ([]models.User, error) {
	isMember, err := s.groupRepo.IsMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotAuthorized
	}
	return s.Members(groupID)
}

func (s *GroupService) AddMember(groupID, userID uint) error {
	if _, err := s.Get(groupID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.groupRepo.AddMember(groupID, userID); err != nil {
		return err
	}
	_ = s.directory.InvalidateGroup(groupID)
	return nil
}

// RemoveMember drops the membership row only. The user's historical read
// events in this group are retained deliberately: the ledger is an audit
// trail, not a view of current membership.
func (s *GroupService) RemoveMember(groupID, userID uint) error {
	if _, err := s.Get(groupID); err != nil {
		return err
	}
	if err := s.groupRepo.RemoveMember(groupID, userID); err != nil {
		return err
	}
	_ = s.directory.InvalidateGroup(groupID)
	return nil
}

// SearchUsersToAdd finds candidates for the add-member picker: non-admin
// users outside the group matching the query.
func (s *GroupService) SearchUsersToAdd(groupID, requesterID uint, query string) ([]models.User, error) {
	isMember, err := s.groupRepo.IsMember(groupID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotAuthorized
	}
	return s.userRepo.SearchOutsideGroup(groupID, query, 20)
}
