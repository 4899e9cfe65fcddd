package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/AshokWPD/gold-updated/internal/cache"
	"github.com/AshokWPD/gold-updated/internal/models"
	"github.com/AshokWPD/gold-updated/internal/notify"
	"github.com/AshokWPD/gold-updated/internal/repository"
	"github.com/AshokWPD/gold-updated/internal/storage"
	"gorm.io/gorm"
)

type MessageService struct {
	messageRepo repository.MessageRepositoryInterface
	groupRepo   repository.GroupRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	dispatcher  *notify.Dispatcher
	directory   *cache.DirectoryCache
	store       *storage.S3Storage
}

func NewMessageService(
	messageRepo repository.MessageRepositoryInterface,
	groupRepo repository.GroupRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	dispatcher *notify.Dispatcher,
	directory *cache.DirectoryCache,
	store *storage.S3Storage,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
		directory:   directory,
		store:       store,
	}
}

type FileInput struct {
	Name      string `json:"name"`
	FileType  string `json:"file_type"`
	ObjectKey string `json:"object_key"`
}

type CreateMessageInput struct {
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	Timer    int         `json:"timer"`
	GroupIDs []uint      `json:"group_ids"`
	Files    []FileInput `json:"files"`
}

// Create persists the message and fans a push notification out to each
// target group's members and to every admin. Persistence and notification
// are independent steps with no compensating rollback: a dispatch failure
// degrades silently and the message stays created.
func (s *MessageService) Create(authorID uint, input CreateMessageInput) (*models.Message, error) {
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Title == "" || input.Content == "" || len(input.GroupIDs) == 0 {
		return nil, ErrInvalidInput
	}

	groups := make([]models.Group, 0, len(input.GroupIDs))
	for _, groupID := range input.GroupIDs {
		group, err := s.groupRepo.FindByID(groupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
		groups = append(groups, models.Group{ID: group.ID, Name: group.Name})
	}

	message := &models.Message{
		Title:       input.Title,
		Content:     input.Content,
		Timer:       input.Timer,
		CreatedByID: authorID,
		Groups:      groups,
	}
	for _, f := range input.Files {
		message.Files = append(message.Files, models.MessageFile{
			Name:      f.Name,
			FileType:  f.FileType,
			ObjectKey: f.ObjectKey,
		})
	}

	// The author gets an automatic read per target group, except for the
	// userAndSubAdmin role, which acknowledges through the client like
	// everyone else.
	if author.Role != models.RoleUserAndSubAdmin {
		for _, g := range groups {
			message.Reads = append(message.Reads, models.ReadEvent{
				GroupID: g.ID,
				UserID:  authorID,
			})
		}
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	s.fanOut(message, groups)

	return s.messageRepo.FindByID(message.ID)
}

// fanOut dispatches the new-message push: one notification per target
// group to its members, then one to the admin set. Tokens are collected
// into a uniqueness-preserving set before each dispatch; empty sets never
// reach the provider.
func (s *MessageService) fanOut(message *models.Message, groups []models.Group) {
	groupIDs := make([]uint, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}
	idsJSON, _ := json.Marshal(groupIDs)
	data := map[string]string{
		"groupIds": string(idsJSON),
		"route":    "messages",
	}

	for _, g := range groups {
		tokens := notify.NewTokenSet()
		tokens.Add(s.memberTokens(g.ID)...)
		s.dispatcher.Dispatch(notify.Notification{
			Title:  fmt.Sprintf("New Message On Group: %s", g.Name),
			Body:   message.Content,
			Tokens: tokens.Tokens(),
			Data:   data,
		})
	}

	adminTokens := notify.NewTokenSet()
	adminTokens.Add(s.adminTokens()...)
	title := "New Message"
	if len(groups) == 1 {
		title = fmt.Sprintf("New Message On Group: %s", groups[0].Name)
	}
	s.dispatcher.Dispatch(notify.Notification{
		Title:  title,
		Body:   message.Content,
		Tokens: adminTokens.Tokens(),
		Data:   data,
	})
}

func (s *MessageService) memberTokens(groupID uint) []string {
	if tokens, ok := s.directory.GetMemberTokens(groupID); ok {
		return tokens
	}
	tokens, err := s.groupRepo.MemberTokens(groupID)
	if err != nil {
		log.Printf("message: member token lookup failed for group %d: %v", groupID, err)
		return nil
	}
	_ = s.directory.SetMemberTokens(groupID, tokens)
	return tokens
}

func (s *MessageService) adminTokens() []string {
	if tokens, ok := s.directory.GetAdminTokens(); ok {
		return tokens
	}
	tokens, err := s.userRepo.AdminTokens()
	if err != nil {
		log.Printf("message: admin token lookup failed: %v", err)
		return nil
	}
	_ = s.directory.SetAdminTokens(tokens)
	return tokens
}

func (s *MessageService) ListByGroup(groupID, userID uint, filter string, page, limit int) ([]models.Message, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.messageRepo.ListByGroup(groupID, userID, filter, (page-1)*limit, limit)
}

func (s *MessageService) Get(messageID uint) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

type UpdateMessageInput struct {
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Timer   int         `json:"timer"`
	Files   []FileInput `json:"files"`
}

// Update edits title/content/timer and swaps the file set. Only the author
// or an admin may edit; objects no longer referenced are deleted from the
// store best-effort.
func (s *MessageService) Update(messageID, actorID uint, actorRole models.Role, input UpdateMessageInput) error {
	message, err := s.Get(messageID)
	if err != nil {
		return err
	}
	if message.CreatedByID != actorID && actorRole != models.RoleAdmin {
		return ErrNotAuthorized
	}
	if input.Title == "" || input.Content == "" {
		return ErrInvalidInput
	}

	keep := make(map[string]bool, len(input.Files))
	files := make([]models.MessageFile, 0, len(input.Files))
	for _, f := range input.Files {
		keep[f.Name] = true
		files = append(files, models.MessageFile{
			Name:      f.Name,
			FileType:  f.FileType,
			ObjectKey: f.ObjectKey,
		})
	}
	for _, old := range message.Files {
		if !keep[old.Name] {
			s.deleteObject(old.ObjectKey)
		}
	}

	message.Title = input.Title
	message.Content = input.Content
	message.Timer = input.Timer
	if err := s.messageRepo.Update(message); err != nil {
		return err
	}
	return s.messageRepo.ReplaceFiles(messageID, files)
}

// Delete removes the message with its read events and files. Only the
// author or an admin may delete.
func (s *MessageService) Delete(messageID, actorID uint, actorRole models.Role) error {
	message, err := s.Get(messageID)
	if err != nil {
		return err
	}
	if message.CreatedByID != actorID && actorRole != models.RoleAdmin {
		return ErrNotAuthorized
	}
	for _, f := range message.Files {
		s.deleteObject(f.ObjectKey)
	}
	return s.messageRepo.Delete(messageID)
}

func (s *MessageService) deleteObject(key string) {
	if s.store == nil || key == "" {
		return
	}
	if err := s.store.DeleteObject(context.Background(), key); err != nil {
		log.Printf("message: delete object %s: %v", key, err)
	}
}
