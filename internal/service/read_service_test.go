package service

import (
	"errors"
	"testing"

	"github.com/AshokWPD/gold-updated/internal/models"
)

func strPtr(s string) *string { return &s }

type readFixture struct {
	users    *MockUserRepository
	groups   *MockGroupRepository
	messages *MockMessageRepository
	reads    *MockReadEventRepository
	service  *ReadService
}

func newReadFixture() *readFixture {
	users := NewMockUserRepository()
	groups := NewMockGroupRepository(users)
	reads := NewMockReadEventRepository(users)
	messages := NewMockMessageRepository(reads)
	return &readFixture{
		users:    users,
		groups:   groups,
		messages: messages,
		reads:    reads,
		service:  NewReadService(messages, groups, users, reads),
	}
}

func (f *readFixture) addUser(t *testing.T, name string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", Role: role, Active: true}
	if err := f.users.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *readFixture) addGroup(t *testing.T, name string, memberIDs ...uint) *models.Group {
	t.Helper()
	group := &models.Group{Name: name}
	if err := f.groups.Create(group); err != nil {
		t.Fatalf("create group: %v", err)
	}
	for _, id := range memberIDs {
		if err := f.groups.AddMember(group.ID, id); err != nil {
			t.Fatalf("add member: %v", err)
		}
	}
	return group
}

func (f *readFixture) addMessage(t *testing.T, authorID uint, groupIDs ...uint) *models.Message {
	t.Helper()
	message := &models.Message{Title: "Notice", Content: "Please acknowledge", CreatedByID: authorID}
	for _, id := range groupIDs {
		message.Groups = append(message.Groups, models.Group{ID: id})
	}
	if err := f.messages.Create(message); err != nil {
		t.Fatalf("create message: %v", err)
	}
	return message
}

func TestRecordReadAppendsPerCall(t *testing.T) {
	f := newReadFixture()
	author := f.addUser(t, "author", models.RoleUserAndSubAdmin)
	reader := f.addUser(t, "reader", models.RoleUser)
	group := f.addGroup(t, "Deck", author.ID, reader.ID)
	message := f.addMessage(t, author.ID, group.ID)

	replies := []string{"Understood", "Need Clarification", "Understood now"}
	for _, reply := range replies {
		written, err := f.service.RecordRead(message.ID, group.ID, reader.ID, RecordReadInput{
			Reply: strPtr(reply),
			Mode:  "text",
		})
		if err != nil {
			t.Fatalf("RecordRead: %v", err)
		}
		if !written {
			t.Fatal("RecordRead reported a no-op for a regular user")
		}
	}

	count, _ := f.reads.CountByMessageGroupUser(message.ID, group.ID, reader.ID)
	if count != 3 {
		t.Fatalf("expected 3 ledger rows, got %d", count)
	}

	latest, err := f.service.LatestReadByUser(message.ID, reader.ID)
	if err != nil {
		t.Fatalf("LatestReadByUser: %v", err)
	}
	if latest == nil || latest.Reply == nil || *latest.Reply != "Understood now" {
		t.Fatalf("latest read should carry the most recent reply, got %+v", latest)
	}
}

func TestRecordReadSubAdminIdempotent(t *testing.T) {
	f := newReadFixture()
	author := f.addUser(t, "author", models.RoleAdmin)
	subAdmin := f.addUser(t, "sub", models.RoleSubAdmin)
	group := f.addGroup(t, "Engine", subAdmin.ID)
	message := f.addMessage(t, author.ID, group.ID)

	written, err := f.service.RecordRead(message.ID, group.ID, subAdmin.ID, RecordReadInput{Mode: "text"})
	if err != nil {
		t.Fatalf("first RecordRead: %v", err)
	}
	if !written {
		t.Fatal("first sub-admin read should write")
	}

	written, err = f.service.RecordRead(message.ID, group.ID, subAdmin.ID, RecordReadInput{
		Reply: strPtr("second attempt"),
		Mode:  "text",
	})
	if err != nil {
		t.Fatalf("second RecordRead: %v", err)
	}
	if written {
		t.Fatal("second sub-admin read should be a success no-op")
	}

	count, _ := f.reads.CountByMessageGroupUser(message.ID, group.ID, subAdmin.ID)
	if count != 1 {
		t.Fatalf("expected exactly 1 ledger row for sub-admin, got %d", count)
	}
}

func TestRecordReadSubAdminScopedPerGroup(t *testing.T) {
	f := newReadFixture()
	author := f.addUser(t, "author", models.RoleAdmin)
	subAdmin := f.addUser(t, "sub", models.RoleSubAdmin)
	groupA := f.addGroup(t, "A", subAdmin.ID)
	groupB := f.addGroup(t, "B", subAdmin.ID)
	message := f.addMessage(t, author.ID, groupA.ID, groupB.ID)

	if _, err := f.service.RecordRead(message.ID, groupA.ID, subAdmin.ID, RecordReadInput{}); err != nil {
		t.Fatalf("read in group A: %v", err)
	}
	written, err := f.service.RecordRead(message.ID, groupB.ID, subAdmin.ID, RecordReadInput{})
	if err != nil {
		t.Fatalf("read in group B: %v", err)
	}
	if !written {
		t.Fatal("idempotency is scoped per group; the other group's read should write")
	}
}

func TestRecordReadMessageNotFound(t *testing.T) {
	f := newReadFixture()
	reader := f.addUser(t, "reader", models.RoleUser)

	_, err := f.service.RecordRead(999, 1, reader.ID, RecordReadInput{})
	if !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestStatusPartition(t *testing.T) {
	f := newReadFixture()
	requester := f.addUser(t, "requester", models.RoleSubAdmin)
	alice := f.addUser(t, "alice", models.RoleUser)
	bob := f.addUser(t, "bob", models.RoleUser)
	admin := f.addUser(t, "admin", models.RoleAdmin)
	group := f.addGroup(t, "Deck", requester.ID, alice.ID, bob.ID, admin.ID)
	message := f.addMessage(t, requester.ID, group.ID)

	if _, err := f.service.RecordRead(message.ID, group.ID, alice.ID, RecordReadInput{Reply: strPtr("Done")}); err != nil {
		t.Fatalf("alice read: %v", err)
	}
	// Admin acknowledgements never count as reads.
	if _, err := f.service.RecordRead(message.ID, group.ID, admin.ID, RecordReadInput{}); err != nil {
		t.Fatalf("admin read: %v", err)
	}

	status, err := f.service.Status(message.ID, group.ID, requester.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	if len(status.ReadUsers) != 1 || status.ReadUsers[0].ID != alice.ID {
		t.Fatalf("readUsers should be exactly [alice], got %+v", status.ReadUsers)
	}
	unreadIDs := map[uint]bool{}
	for _, u := range status.UnreadUsers {
		unreadIDs[u.ID] = true
	}
	if !unreadIDs[bob.ID] {
		t.Fatal("bob never read and should be unread")
	}
	if !unreadIDs[admin.ID] {
		t.Fatal("admin reads do not count; admin should appear unread")
	}
	if unreadIDs[requester.ID] {
		t.Fatal("requester must be excluded from both sides")
	}

	// The two sides never share a user.
	for _, r := range status.ReadUsers {
		if unreadIDs[r.ID] {
			t.Fatalf("user %d appears on both sides of the partition", r.ID)
		}
	}
}

func TestStatusTakesLatestEventPerUser(t *testing.T) {
	f := newReadFixture()
	requester := f.addUser(t, "requester", models.RoleSubAdmin)
	alice := f.addUser(t, "alice", models.RoleUser)
	group := f.addGroup(t, "Deck", requester.ID, alice.ID)
	message := f.addMessage(t, requester.ID, group.ID)

	if _, err := f.service.RecordRead(message.ID, group.ID, alice.ID, RecordReadInput{Reply: strPtr(models.ReplyNeedClarification)}); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := f.service.RecordRead(message.ID, group.ID, alice.ID, RecordReadInput{Reply: strPtr("All clear")}); err != nil {
		t.Fatalf("second read: %v", err)
	}

	status, err := f.service.Status(message.ID, group.ID, requester.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.ReadUsers) != 1 {
		t.Fatalf("expected one entry for alice, got %d", len(status.ReadUsers))
	}
	entry := status.ReadUsers[0]
	if entry.Reply == nil || *entry.Reply != "All clear" {
		t.Fatalf("entry should carry the most recent reply, got %+v", entry.Reply)
	}
}

func TestStatusNeedClarification(t *testing.T) {
	f := newReadFixture()
	requester := f.addUser(t, "requester", models.RoleSubAdmin)
	alice := f.addUser(t, "alice", models.RoleUser)
	group := f.addGroup(t, "Deck", requester.ID, alice.ID)
	message := f.addMessage(t, requester.ID, group.ID)

	if _, err := f.service.RecordRead(message.ID, group.ID, alice.ID, RecordReadInput{Reply: strPtr(models.ReplyNeedClarification)}); err != nil {
		t.Fatalf("read: %v", err)
	}

	status, err := f.service.Status(message.ID, group.ID, requester.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.ReadUsers) != 1 {
		t.Fatalf("expected one reader, got %d", len(status.ReadUsers))
	}
	ev := models.ReadEvent{Reply: status.ReadUsers[0].Reply}
	if !ev.NeedsClarification() {
		t.Fatal("entry should classify as needing clarification")
	}
}

func TestStatusWrongGroup(t *testing.T) {
	f := newReadFixture()
	requester := f.addUser(t, "requester", models.RoleSubAdmin)
	group := f.addGroup(t, "Deck", requester.ID)
	other := f.addGroup(t, "Engine", requester.ID)
	message := f.addMessage(t, requester.ID, group.ID)

	if _, err := f.service.Status(message.ID, other.ID, requester.ID); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound for a group the message was not sent to, got %v", err)
	}
}

func TestStatusEmptyLedger(t *testing.T) {
	f := newReadFixture()
	requester := f.addUser(t, "requester", models.RoleSubAdmin)
	alice := f.addUser(t, "alice", models.RoleUser)
	group := f.addGroup(t, "Deck", requester.ID, alice.ID)
	message := f.addMessage(t, requester.ID, group.ID)

	status, err := f.service.Status(message.ID, group.ID, requester.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.ReadUsers == nil || len(status.ReadUsers) != 0 {
		t.Fatalf("readUsers should be an empty non-nil slice, got %#v", status.ReadUsers)
	}
	if len(status.UnreadUsers) != 1 || status.UnreadUsers[0].ID != alice.ID {
		t.Fatalf("unreadUsers should be [alice], got %+v", status.UnreadUsers)
	}
}

func TestChangesForGroupsRepliesPerUser(t *testing.T) {
	f := newReadFixture()
	author := f.addUser(t, "author", models.RoleAdmin)
	alice := f.addUser(t, "alice", models.RoleUser)
	bob := f.addUser(t, "bob", models.RoleUser)
	group := f.addGroup(t, "Deck", alice.ID, bob.ID)
	message := f.addMessage(t, author.ID, group.ID)

	// Alice: silent read, then a clarification request, then a revision.
	if _, err := f.service.RecordRead(message.ID, group.ID, alice.ID, RecordReadInput{}); err != nil {
		t.Fatalf("alice silent read: %v", err)
	}
	if _, err := f.service.RecordRead(message.ID, group.ID, alice.ID, RecordReadInput{Reply: strPtr(models.ReplyNeedClarification)}); err != nil {
		t.Fatalf("alice clarification: %v", err)
	}
	if _, err := f.service.RecordRead(message.ID, group.ID, alice.ID, RecordReadInput{Reply: strPtr("Resolved")}); err != nil {
		t.Fatalf("alice revision: %v", err)
	}
	// Bob: silent read only.
	if _, err := f.service.RecordRead(message.ID, group.ID, bob.ID, RecordReadInput{}); err != nil {
		t.Fatalf("bob silent read: %v", err)
	}

	history, err := f.service.ChangesFor(message.ID)
	if err != nil {
		t.Fatalf("ChangesFor: %v", err)
	}

	if len(history) != 1 {
		t.Fatalf("only alice replied; expected 1 history entry, got %d", len(history))
	}
	entry := history[0]
	if entry.UserID != alice.ID {
		t.Fatalf("history should be alice's, got user %d", entry.UserID)
	}
	if len(entry.Reads) != 2 {
		t.Fatalf("silent reads are excluded; expected 2 replied events, got %d", len(entry.Reads))
	}
	if *entry.Reads[0].Reply != "Resolved" || *entry.Reads[1].Reply != models.ReplyNeedClarification {
		t.Fatalf("reads should be newest first, got %q then %q", *entry.Reads[0].Reply, *entry.Reads[1].Reply)
	}
}

func TestChangesForMessageNotFound(t *testing.T) {
	f := newReadFixture()
	if _, err := f.service.ChangesFor(42); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestLatestReadByUserMissing(t *testing.T) {
	f := newReadFixture()
	event, err := f.service.LatestReadByUser(1, 1)
	if err != nil {
		t.Fatalf("LatestReadByUser: %v", err)
	}
	if event != nil {
		t.Fatalf("expected nil for a user who never read, got %+v", event)
	}
}
