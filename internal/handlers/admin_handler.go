package handlers

import (
	"github.com/AshokWPD/gold-updated/internal/httpx"
	"github.com/AshokWPD/gold-updated/internal/models"
	"github.com/AshokWPD/gold-updated/internal/service"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	userService *service.UserService
	readService *service.ReadService
}

func NewAdminHandler(userService *service.UserService, readService *service.ReadService) *AdminHandler {
	return &AdminHandler{userService: userService, readService: readService}
}

func (h *AdminHandler) SearchUsers(c *fiber.Ctx) error {
	users, err := h.userService.Search(c.Query("q"), c.QueryInt("limit", 20))
	if err != nil {
		return fail(c, err)
	}
	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return httpx.OK(c, responses)
}

type setRoleInput struct {
	Role models.Role `json:"role"`
}

func (h *AdminHandler) SetRole(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_user_id", "Invalid user id")
	}
	var input setRoleInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	if err := h.userService.SetRole(userID, input.Role); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Role updated successfully")
}

type setActiveInput struct {
	Active bool `json:"active"`
}

func (h *AdminHandler) SetActive(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_user_id", "Invalid user id")
	}
	var input setActiveInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	if err := h.userService.SetActive(userID, input.Active); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "User status updated successfully")
}

// PurgeUser hard-deletes a user with their messages and memberships.
func (h *AdminHandler) PurgeUser(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_user_id", "Invalid user id")
	}
	if err := h.userService.Purge(userID); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "User deleted successfully")
}

// MessageChanges returns the reply trail of a message grouped per user,
// newest first, for the admin review screen.
func (h *AdminHandler) MessageChanges(c *fiber.Ctx) error {
	messageID, err := paramUint(c, "messageId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}
	history, err := h.readService.ChangesFor(messageID)
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, history)
}
