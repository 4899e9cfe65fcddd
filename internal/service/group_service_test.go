package service

import (
	"errors"
	"testing"

	"github.com/AshokWPD/gold-updated/internal/models"
)

type groupFixture struct {
	users    *MockUserRepository
	groups   *MockGroupRepository
	messages *MockMessageRepository
	reads    *MockReadEventRepository
	service  *GroupService
}

func newGroupFixture() *groupFixture {
	users := NewMockUserRepository()
	groups := NewMockGroupRepository(users)
	reads := NewMockReadEventRepository(users)
	messages := NewMockMessageRepository(reads)
	return &groupFixture{
		users:    users,
		groups:   groups,
		messages: messages,
		reads:    reads,
		service:  NewGroupService(groups, users, messages, nil),
	}
}

func (f *groupFixture) addUser(t *testing.T, name string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", Role: role, Active: true}
	if err := f.users.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestGroupCreateWithMembers(t *testing.T) {
	f := newGroupFixture()
	alice := f.addUser(t, "alice", models.RoleUser)
	bob := f.addUser(t, "bob", models.RoleUser)

	group, err := f.service.Create("Deck", []uint{alice.ID, bob.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	members, err := f.service.Members(group.ID)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
}

func TestGroupCreateEmptyName(t *testing.T) {
	f := newGroupFixture()
	if _, err := f.service.Create("", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMyGroupsUnreadCounts(t *testing.T) {
	f := newGroupFixture()
	author := f.addUser(t, "author", models.RoleSubAdmin)
	alice := f.addUser(t, "alice", models.RoleUser)

	group, err := f.service.Create("Deck", []uint{author.ID, alice.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Two messages from the author; alice reads one.
	for i := 0; i < 2; i++ {
		message := &models.Message{
			Title:       "Notice",
			Content:     "Please acknowledge",
			CreatedByID: author.ID,
			Groups:      []models.Group{{ID: group.ID}},
		}
		if err := f.messages.Create(message); err != nil {
			t.Fatalf("create message: %v", err)
		}
		if i == 0 {
			if err := f.reads.Append(&models.ReadEvent{
				MessageID: message.ID,
				GroupID:   group.ID,
				UserID:    alice.ID,
			}); err != nil {
				t.Fatalf("append read: %v", err)
			}
		}
	}

	summaries, err := f.service.MyGroups(alice.ID)
	if err != nil {
		t.Fatalf("MyGroups: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 group, got %d", len(summaries))
	}
	if summaries[0].UnreadCount != 1 {
		t.Fatalf("expected unread count 1, got %d", summaries[0].UnreadCount)
	}

	// The author's own messages never count as unread for them.
	authorSummaries, err := f.service.MyGroups(author.ID)
	if err != nil {
		t.Fatalf("MyGroups for author: %v", err)
	}
	if authorSummaries[0].UnreadCount != 0 {
		t.Fatalf("author unread count should be 0, got %d", authorSummaries[0].UnreadCount)
	}
}

func TestMembersForRequiresMembership(t *testing.T) {
	f := newGroupFixture()
	alice := f.addUser(t, "alice", models.RoleUser)
	outsider := f.addUser(t, "outsider", models.RoleUser)

	group, err := f.service.Create("Deck", []uint{alice.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.service.MembersFor(group.ID, outsider.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for a non-member, got %v", err)
	}
	if _, err := f.service.MembersFor(group.ID, alice.ID); err != nil {
		t.Fatalf("member listing should succeed: %v", err)
	}
}

func TestRemoveMemberKeepsLedger(t *testing.T) {
	f := newGroupFixture()
	author := f.addUser(t, "author", models.RoleSubAdmin)
	alice := f.addUser(t, "alice", models.RoleUser)

	group, err := f.service.Create("Deck", []uint{author.ID, alice.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	message := &models.Message{
		Title:       "Notice",
		Content:     "Please acknowledge",
		CreatedByID: author.ID,
		Groups:      []models.Group{{ID: group.ID}},
	}
	if err := f.messages.Create(message); err != nil {
		t.Fatalf("create message: %v", err)
	}
	if err := f.reads.Append(&models.ReadEvent{
		MessageID: message.ID,
		GroupID:   group.ID,
		UserID:    alice.ID,
	}); err != nil {
		t.Fatalf("append read: %v", err)
	}

	if err := f.service.RemoveMember(group.ID, alice.ID); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}

	count, _ := f.reads.CountByMessageGroupUser(message.ID, group.ID, alice.ID)
	if count != 1 {
		t.Fatalf("removing a member must not touch the ledger, got %d events", count)
	}
}

func TestSearchUsersToAddExcludesMembersAndAdmins(t *testing.T) {
	f := newGroupFixture()
	alice := f.addUser(t, "alice", models.RoleUser)
	bob := f.addUser(t, "bob", models.RoleUser)
	f.addUser(t, "admin", models.RoleAdmin)

	group, err := f.service.Create("Deck", []uint{alice.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	users, err := f.service.SearchUsersToAdd(group.ID, alice.ID, "")
	if err != nil {
		t.Fatalf("SearchUsersToAdd: %v", err)
	}
	if len(users) != 1 || users[0].ID != bob.ID {
		t.Fatalf("expected only bob as a candidate, got %+v", users)
	}

	if _, err := f.service.SearchUsersToAdd(group.ID, bob.ID, ""); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("non-members must not search, got %v", err)
	}
}
