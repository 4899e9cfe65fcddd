package handlers

import (
	"github.com/AshokWPD/gold-updated/internal/httpx"
	"github.com/AshokWPD/gold-updated/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type createGroupInput struct {
	Name      string `json:"name"`
	MemberIDs []uint `json:"member_ids"`
}

func (h *GroupHandler) Create(c *fiber.Ctx) error {
	var input createGroupInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}

	group, err := h.groupService.Create(input.Name, input.MemberIDs)
	if err != nil {
		return fail(c, err)
	}
	return httpx.Created(c, group)
}

func (h *GroupHandler) Get(c *fiber.Ctx) error {
	groupID, err := paramUint(c, "groupId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", "Invalid group id")
	}
	group, err := h.groupService.Get(groupID)
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, group)
}

func (h *GroupHandler) Delete(c *fiber.Ctx) error {
	groupID, err := paramUint(c, "groupId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", "Invalid group id")
	}
	if err := h.groupService.Delete(groupID); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Group deleted successfully")
}

// MyGroups lists the caller's groups with unread counts for the badge UI.
func (h *GroupHandler) MyGroups(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	summaries, err := h.groupService.MyGroups(userID)
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, summaries)
}

func (h *GroupHandler) Members(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	groupID, err := paramUint(c, "groupId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", "Invalid group id")
	}
	members, err := h.groupService.MembersFor(groupID, userID)
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, members)
}

type memberInput struct {
	UserID uint `json:"user_id"`
}

func (h *GroupHandler) AddMember(c *fiber.Ctx) error {
	groupID, err := paramUint(c, "groupId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", "Invalid group id")
	}
	var input memberInput
	if err := c.BodyParser(&input); err != nil || input.UserID == 0 {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	if err := h.groupService.AddMember(groupID, input.UserID); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Member added successfully")
}

func (h *GroupHandler) RemoveMember(c *fiber.Ctx) error {
	groupID, err := paramUint(c, "groupId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", "Invalid group id")
	}
	userID, err := paramUint(c, "userId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_user_id", "Invalid user id")
	}
	if err := h.groupService.RemoveMember(groupID, userID); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Member removed successfully")
}

// SearchUsersToAdd powers the add-member picker.
func (h *GroupHandler) SearchUsersToAdd(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	groupID, err := paramUint(c, "groupId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", "Invalid group id")
	}
	users, err := h.groupService.SearchUsersToAdd(groupID, userID, c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, users)
}
