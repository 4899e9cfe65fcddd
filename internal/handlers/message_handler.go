package handlers

import (
	"github.com/AshokWPD/gold-updated/internal/httpx"
	"github.com/AshokWPD/gold-updated/internal/models"
	"github.com/AshokWPD/gold-updated/internal/service"
	"github.com/AshokWPD/gold-updated/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	messageService *service.MessageService
	readService    *service.ReadService
}

func NewMessageHandler(messageService *service.MessageService, readService *service.ReadService) *MessageHandler {
	return &MessageHandler{messageService: messageService, readService: readService}
}

func (h *MessageHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}

	var input service.CreateMessageInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	input.Title = validation.TrimAndLimit(input.Title, validation.MaxTitleLength)
	input.Content = validation.TrimAndLimit(input.Content, validation.MaxContentLength())

	message, err := h.messageService.Create(userID, input)
	if err != nil {
		return fail(c, err)
	}
	return httpx.Created(c, message.ToResponse())
}

// messageListEntry decorates a message with the requesting user's current
// acknowledgement, so the client can render read state without a second
// round trip.
type messageListEntry struct {
	models.MessageResponse
	ReadByUser *models.ReadEvent `json:"messageReadByUser"`
}

func (h *MessageHandler) ListByGroup(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	groupID, err := paramUint(c, "groupId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", "Invalid group id")
	}

	filter := c.Query("filter") // "", "read" or "unread"
	if filter != "" && filter != "read" && filter != "unread" {
		return httpx.BadRequest(c, "invalid_filter", "Filter must be read or unread")
	}
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	messages, err := h.messageService.ListByGroup(groupID, userID, filter, page, limit)
	if err != nil {
		return fail(c, err)
	}

	entries := make([]messageListEntry, 0, len(messages))
	for i := range messages {
		read, err := h.readService.LatestReadByUser(messages[i].ID, userID)
		if err != nil {
			return fail(c, err)
		}
		entries = append(entries, messageListEntry{
			MessageResponse: messages[i].ToResponse(),
			ReadByUser:      read,
		})
	}
	return httpx.OK(c, entries)
}

func (h *MessageHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	messageID, err := paramUint(c, "messageId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}

	message, err := h.messageService.Get(messageID)
	if err != nil {
		return fail(c, err)
	}
	read, err := h.readService.LatestReadByUser(messageID, userID)
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, messageListEntry{MessageResponse: message.ToResponse(), ReadByUser: read})
}

func (h *MessageHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	messageID, err := paramUint(c, "messageId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}

	var input service.UpdateMessageInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	input.Title = validation.TrimAndLimit(input.Title, validation.MaxTitleLength)
	input.Content = validation.TrimAndLimit(input.Content, validation.MaxContentLength())

	role, _ := c.Locals("role").(models.Role)
	if err := h.messageService.Update(messageID, userID, role, input); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Message updated successfully")
}

func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	messageID, err := paramUint(c, "messageId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}

	role, _ := c.Locals("role").(models.Role)
	if err := h.messageService.Delete(messageID, userID, role); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Message deleted successfully")
}

// MarkRead records the caller's acknowledgement of a message within a
// group. For sub-admins a repeat call is a success no-op; the response
// message tells the two cases apart.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	messageID, err := paramUint(c, "messageId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}
	groupID, err := paramUint(c, "groupId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", "Invalid group id")
	}

	var input service.RecordReadInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}

	written, err := h.readService.RecordRead(messageID, groupID, userID, input)
	if err != nil {
		return fail(c, err)
	}
	if !written {
		return httpx.Message(c, "Message already marked as read")
	}
	return httpx.Message(c, "Message marked as read successfully")
}

// ReadStatus returns who has and has not read the message within a group,
// from the caller's point of view.
func (h *MessageHandler) ReadStatus(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	messageID, err := paramUint(c, "id")
	if err != nil {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}
	groupID, err := paramUint(c, "groupId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_group_id", "Invalid group id")
	}

	status, err := h.readService.Status(messageID, groupID, userID)
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, status)
}
