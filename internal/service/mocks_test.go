package service

import (
	"sort"
	"strings"
	"time"

	"github.com/AshokWPD/gold-updated/internal/models"
	"gorm.io/gorm"
)

// In-memory repository mocks. They return gorm.ErrRecordNotFound for
// missing rows so the services' errors.Is mapping behaves exactly as it
// does against the real repositories.

type MockUserRepository struct {
	users  map[uint]*models.User
	nextID uint

	// Shared with MockGroupRepository so SearchOutsideGroup can see
	// memberships.
	memberships map[uint]map[uint]bool
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:       make(map[uint]*models.User),
		memberships: make(map[uint]map[uint]bool),
	}
}

func (m *MockUserRepository) Create(user *models.User) error {
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	} else if user.ID > m.nextID {
		m.nextID = user.ID
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *u
	return &found, nil
}

func (m *MockUserRepository) Update(user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) UpdateFCMToken(userID uint, token *string) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.FCMToken = token
	return nil
}

func (m *MockUserRepository) SetActive(userID uint, active bool) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = active
	return nil
}

func (m *MockUserRepository) SetRole(userID uint, role models.Role) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (m *MockUserRepository) ListByRole(role models.Role) ([]models.User, error) {
	var out []models.User
	for _, id := range m.sortedIDs() {
		if m.users[id].Role == role {
			out = append(out, *m.users[id])
		}
	}
	return out, nil
}

func (m *MockUserRepository) AdminTokens() ([]string, error) {
	var tokens []string
	for _, id := range m.sortedIDs() {
		u := m.users[id]
		if u.Role == models.RoleAdmin && u.FCMToken != nil {
			tokens = append(tokens, *u.FCMToken)
		}
	}
	return tokens, nil
}

func (m *MockUserRepository) SearchOutsideGroup(groupID uint, query string, limit int) ([]models.User, error) {
	var out []models.User
	for _, id := range m.sortedIDs() {
		u := m.users[id]
		if u.Role == models.RoleAdmin || m.memberships[groupID][u.ID] {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(u.Name+u.Email), strings.ToLower(query)) {
			continue
		}
		out = append(out, *u)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockUserRepository) SearchUsers(query string, limit int) ([]models.User, error) {
	var out []models.User
	for _, id := range m.sortedIDs() {
		u := m.users[id]
		if query != "" && !strings.Contains(strings.ToLower(u.Name+u.Email), strings.ToLower(query)) {
			continue
		}
		out = append(out, *u)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockUserRepository) Purge(userID uint) error {
	if _, ok := m.users[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, userID)
	for _, members := range m.memberships {
		delete(members, userID)
	}
	return nil
}

func (m *MockUserRepository) sortedIDs() []uint {
	ids := make([]uint, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type MockGroupRepository struct {
	groups  map[uint]*models.Group
	nextID  uint
	users   *MockUserRepository
	members map[uint]map[uint]bool
}

func NewMockGroupRepository(users *MockUserRepository) *MockGroupRepository {
	return &MockGroupRepository{
		groups:  make(map[uint]*models.Group),
		users:   users,
		members: users.memberships,
	}
}

func (m *MockGroupRepository) Create(group *models.Group) error {
	m.nextID++
	group.ID = m.nextID
	stored := *group
	m.groups[group.ID] = &stored
	m.members[group.ID] = make(map[uint]bool)
	return nil
}

func (m *MockGroupRepository) FindByID(id uint) (*models.Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *g
	return &found, nil
}

func (m *MockGroupRepository) Delete(groupID uint) error {
	if _, ok := m.groups[groupID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.groups, groupID)
	delete(m.members, groupID)
	return nil
}

func (m *MockGroupRepository) AddMember(groupID, userID uint) error {
	if _, ok := m.groups[groupID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if m.members[groupID] == nil {
		m.members[groupID] = make(map[uint]bool)
	}
	m.members[groupID][userID] = true
	return nil
}

func (m *MockGroupRepository) RemoveMember(groupID, userID uint) error {
	if _, ok := m.groups[groupID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.members[groupID], userID)
	return nil
}

func (m *MockGroupRepository) GetMembers(groupID uint) ([]models.User, error) {
	out := []models.User{}
	for _, id := range m.users.sortedIDs() {
		if m.members[groupID][id] {
			out = append(out, *m.users.users[id])
		}
	}
	return out, nil
}

func (m *MockGroupRepository) IsMember(groupID, userID uint) (bool, error) {
	return m.members[groupID][userID], nil
}

func (m *MockGroupRepository) GetUserGroups(userID uint) ([]models.Group, error) {
	ids := make([]uint, 0, len(m.groups))
	for id := range m.groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Group
	for _, id := range ids {
		if m.members[id][userID] {
			out = append(out, *m.groups[id])
		}
	}
	return out, nil
}

func (m *MockGroupRepository) MemberTokens(groupID uint) ([]string, error) {
	var tokens []string
	for _, id := range m.users.sortedIDs() {
		u := m.users.users[id]
		if m.members[groupID][id] && u.FCMToken != nil {
			tokens = append(tokens, *u.FCMToken)
		}
	}
	return tokens, nil
}

type MockReadEventRepository struct {
	events []models.ReadEvent
	nextID uint
	users  *MockUserRepository
}

func NewMockReadEventRepository(users *MockUserRepository) *MockReadEventRepository {
	return &MockReadEventRepository{users: users}
}

func (m *MockReadEventRepository) Append(event *models.ReadEvent) error {
	m.nextID++
	event.ID = m.nextID
	if event.ReadAt.IsZero() {
		event.ReadAt = time.Now()
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *MockReadEventRepository) CountByMessageGroupUser(messageID, groupID, userID uint) (int64, error) {
	var count int64
	for _, e := range m.events {
		if e.MessageID == messageID && e.GroupID == groupID && e.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MockReadEventRepository) LatestForMessageUser(messageID, userID uint) (*models.ReadEvent, error) {
	var latest *models.ReadEvent
	for i := range m.events {
		e := &m.events[i]
		if e.MessageID != messageID || e.UserID != userID {
			continue
		}
		if latest == nil || e.ID > latest.ID {
			latest = e
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	found := *latest
	m.attachUser(&found)
	return &found, nil
}

func (m *MockReadEventRepository) ListForMessageGroup(messageID, groupID uint) ([]models.ReadEvent, error) {
	var out []models.ReadEvent
	for _, e := range m.events {
		if e.MessageID == messageID && e.GroupID == groupID {
			m.attachUser(&e)
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockReadEventRepository) ListRepliesByMessage(messageID uint) ([]models.ReadEvent, error) {
	var out []models.ReadEvent
	for _, e := range m.events {
		if e.MessageID == messageID && e.Reply != nil {
			m.attachUser(&e)
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReadAt.Equal(out[j].ReadAt) {
			return out[i].ReadAt.After(out[j].ReadAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MockReadEventRepository) attachUser(e *models.ReadEvent) {
	if u, ok := m.users.users[e.UserID]; ok {
		e.User = *u
	}
}

type MockMessageRepository struct {
	messages map[uint]*models.Message
	nextID   uint
	reads    *MockReadEventRepository
}

func NewMockMessageRepository(reads *MockReadEventRepository) *MockMessageRepository {
	return &MockMessageRepository{
		messages: make(map[uint]*models.Message),
		reads:    reads,
	}
}

func (m *MockMessageRepository) Create(message *models.Message) error {
	m.nextID++
	message.ID = m.nextID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	// Mirror the cascade that persists embedded read events.
	for i := range message.Reads {
		message.Reads[i].MessageID = message.ID
		if m.reads != nil {
			_ = m.reads.Append(&message.Reads[i])
		}
	}
	stored := *message
	m.messages[message.ID] = &stored
	return nil
}

func (m *MockMessageRepository) FindByID(id uint) (*models.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *msg
	return &found, nil
}

func (m *MockMessageRepository) ListByGroup(groupID, userID uint, filter string, offset, limit int) ([]models.Message, error) {
	var out []models.Message
	ids := make([]uint, 0, len(m.messages))
	for id := range m.messages {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	for _, id := range ids {
		msg := m.messages[id]
		if !msg.AddressedTo(groupID) {
			continue
		}
		if filter != "" && m.reads != nil {
			count, _ := m.reads.CountByMessageGroupUser(msg.ID, groupID, userID)
			if filter == "read" && count == 0 {
				continue
			}
			if filter == "unread" && count > 0 {
				continue
			}
		}
		out = append(out, *msg)
	}

	if offset >= len(out) {
		return []models.Message{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockMessageRepository) Update(message *models.Message) error {
	if _, ok := m.messages[message.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *message
	m.messages[message.ID] = &stored
	return nil
}

func (m *MockMessageRepository) ReplaceFiles(messageID uint, files []models.MessageFile) error {
	msg, ok := m.messages[messageID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	msg.Files = files
	return nil
}

func (m *MockMessageRepository) Delete(messageID uint) error {
	if _, ok := m.messages[messageID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.messages, messageID)
	return nil
}

func (m *MockMessageRepository) CountUnreadForUser(groupID, userID uint) (int64, error) {
	var count int64
	for _, msg := range m.messages {
		if !msg.AddressedTo(groupID) || msg.CreatedByID == userID {
			continue
		}
		read := int64(0)
		if m.reads != nil {
			read, _ = m.reads.CountByMessageGroupUser(msg.ID, groupID, userID)
		}
		if read == 0 {
			count++
		}
	}
	return count, nil
}

type assignmentKey struct {
	feedbackID uint
	userID     uint
}

type MockFeedbackRepository struct {
	feedbacks   map[uint]*models.Feedback
	assignments map[assignmentKey]*models.FeedbackAssignment
	nextID      uint
}

func NewMockFeedbackRepository() *MockFeedbackRepository {
	return &MockFeedbackRepository{
		feedbacks:   make(map[uint]*models.Feedback),
		assignments: make(map[assignmentKey]*models.FeedbackAssignment),
	}
}

func (m *MockFeedbackRepository) Create(feedback *models.Feedback) error {
	m.nextID++
	feedback.ID = m.nextID
	stored := *feedback
	m.feedbacks[feedback.ID] = &stored
	return nil
}

func (m *MockFeedbackRepository) FindByID(id uint) (*models.Feedback, error) {
	f, ok := m.feedbacks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *f
	return &found, nil
}

func (m *MockFeedbackRepository) Dashboard(userID uint) (models.FeedbackDashboard, error) {
	var d models.FeedbackDashboard
	for _, f := range m.feedbacks {
		if f.CreatedByID != userID {
			continue
		}
		d.Total++
		switch f.Color {
		case models.FeedbackRed:
			d.Red++
		case models.FeedbackYellow:
			d.Yellow++
		case models.FeedbackGreen:
			d.Green++
		}
	}
	return d, nil
}

func (m *MockFeedbackRepository) Assign(feedbackID, userID uint) error {
	if _, ok := m.feedbacks[feedbackID]; !ok {
		return gorm.ErrRecordNotFound
	}
	key := assignmentKey{feedbackID, userID}
	m.assignments[key] = &models.FeedbackAssignment{FeedbackID: feedbackID, UserID: userID}
	return nil
}

func (m *MockFeedbackRepository) ListAssigned(userID uint, offset, limit int) ([]models.Feedback, error) {
	var out []models.Feedback
	for key := range m.assignments {
		if key.userID == userID {
			if f, ok := m.feedbacks[key.feedbackID]; ok {
				out = append(out, *f)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []models.Feedback{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockFeedbackRepository) CountOpenAssignments(userID uint) (int64, error) {
	var count int64
	for key, a := range m.assignments {
		if key.userID == userID && !a.Completed {
			count++
		}
	}
	return count, nil
}

func (m *MockFeedbackRepository) CompleteAssignment(feedbackID, userID uint) error {
	a, ok := m.assignments[assignmentKey{feedbackID, userID}]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Completed = true
	return nil
}

func (m *MockFeedbackRepository) SetStatus(feedbackID uint, status models.FeedbackStatus) error {
	f, ok := m.feedbacks[feedbackID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Status = status
	return nil
}
