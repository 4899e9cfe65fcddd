package service

import (
	"errors"

	"github.com/AshokWPD/gold-updated/internal/models"
	"github.com/AshokWPD/gold-updated/internal/repository"
	"gorm.io/gorm"
)

// ReadService owns the read ledger and the aggregations over it.
type ReadService struct {
	messageRepo repository.MessageRepositoryInterface
	groupRepo   repository.GroupRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	readRepo    repository.ReadEventRepositoryInterface
}

func NewReadService(
	messageRepo repository.MessageRepositoryInterface,
	groupRepo repository.GroupRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	readRepo repository.ReadEventRepositoryInterface,
) *ReadService {
	return &ReadService{
		messageRepo: messageRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		readRepo:    readRepo,
	}
}

type RecordReadInput struct {
	Reply *string `json:"reply"`
	Mode  string  `json:"mode"`
}

// RecordRead appends one acknowledgement to the ledger. Returns false when
// nothing was written: sub-admins have idempotent read semantics, so a
// second call for the same (message, group) is a success no-op. Every
// other role appends a fresh row on every call and "current reply" is
// derived from the most recent row, never from an existence check.
func (s *ReadService) RecordRead(messageID, groupID, userID uint, input RecordReadInput) (bool, error) {
	if _, err := s.messageRepo.FindByID(messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrMessageNotFound
		}
		return false, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	if user.Role == models.RoleSubAdmin {
		count, err := s.readRepo.CountByMessageGroupUser(messageID, groupID, userID)
		if err != nil {
			return false, err
		}
		if count > 0 {
			return false, nil
		}
	}

	event := &models.ReadEvent{
		MessageID: messageID,
		GroupID:   groupID,
		UserID:    userID,
		Reply:     input.Reply,
		Mode:      input.Mode,
	}
	if err := s.readRepo.Append(event); err != nil {
		return false, err
	}
	return true, nil
}

// Status partitions the group's members into readers and non-readers of
// the message, from the requester's point of view. The requester is left
// out of both sides, and acknowledgements by admin-role users never count
// as reads. One entry per reader: the highest-id event wins, a proxy for
// insertion order since read_at is not monotonic at insert time.
func (s *ReadService) Status(messageID, groupID, requestingUserID uint) (*models.ReadStatus, error) {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	if !message.AddressedTo(groupID) {
		return nil, ErrGroupNotFound
	}

	events, err := s.readRepo.ListForMessageGroup(messageID, groupID)
	if err != nil {
		return nil, err
	}

	readUsers := []models.ReadUserEntry{}
	seen := make(map[uint]bool)
	for _, ev := range events {
		if ev.UserID == requestingUserID || ev.User.Role == models.RoleAdmin || seen[ev.UserID] {
			continue
		}
		seen[ev.UserID] = true
		readUsers = append(readUsers, models.ReadUserEntry{
			ID:     ev.UserID,
			Avatar: ev.User.Avatar,
			Name:   ev.User.Name,
			Email:  ev.User.Email,
			Mode:   ev.Mode,
			Reply:  ev.Reply,
			ReadAt: ev.ReadAt,
		})
	}

	members, err := s.groupRepo.GetMembers(groupID)
	if err != nil {
		return nil, err
	}

	unreadUsers := []models.MemberEntry{}
	for i := range members {
		if members[i].ID == requestingUserID || seen[members[i].ID] {
			continue
		}
		unreadUsers = append(unreadUsers, members[i].ToMemberEntry())
	}

	return &models.ReadStatus{ReadUsers: readUsers, UnreadUsers: unreadUsers}, nil
}

// ChangesFor returns the full reply trail of a message grouped per user,
// newest first within each user. Unlike Status it is not deduplicated:
// a worker may reply "Need Clarification" and later submit a proper
// acknowledgement, and the admin sees both. Silent acknowledgements
// (nil reply) are excluded.
func (s *ReadService) ChangesFor(messageID uint) ([]models.UserReadHistory, error) {
	if _, err := s.messageRepo.FindByID(messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	events, err := s.readRepo.ListRepliesByMessage(messageID)
	if err != nil {
		return nil, err
	}

	grouped := []models.UserReadHistory{}
	index := make(map[uint]int)
	for _, ev := range events {
		i, ok := index[ev.UserID]
		if !ok {
			i = len(grouped)
			index[ev.UserID] = i
			grouped = append(grouped, models.UserReadHistory{
				UserID: ev.UserID,
				Name:   ev.User.Name,
				Email:  ev.User.Email,
			})
		}
		grouped[i].Reads = append(grouped[i].Reads, ev)
	}
	return grouped, nil
}

// LatestReadByUser returns the user's current acknowledgement of the
// message, or nil if they have not read it.
func (s *ReadService) LatestReadByUser(messageID, userID uint) (*models.ReadEvent, error) {
	event, err := s.readRepo.LatestForMessageUser(messageID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}
