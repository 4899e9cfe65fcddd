package handlers

import (
	"github.com/AshokWPD/gold-updated/internal/httpx"
	"github.com/AshokWPD/gold-updated/internal/service"
	"github.com/gofiber/fiber/v2"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	var input service.CreateFeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	feedback, err := h.feedbackService.Create(userID, input)
	if err != nil {
		return fail(c, err)
	}
	return httpx.Created(c, feedback)
}

func (h *FeedbackHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	dashboard, err := h.feedbackService.Dashboard(userID)
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, dashboard)
}

// DrawerData is polled by the client to badge the navigation drawer with
// the caller's open assignment count.
func (h *FeedbackHandler) DrawerData(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	count, err := h.feedbackService.DrawerData(userID)
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, fiber.Map{"assignedCount": count})
}

func (h *FeedbackHandler) Assigned(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	feedbacks, err := h.feedbackService.Assigned(userID, c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, feedbacks)
}

type assignInput struct {
	UserIDs []uint `json:"user_ids"`
}

func (h *FeedbackHandler) Assign(c *fiber.Ctx) error {
	feedbackID, err := paramUint(c, "feedbackId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_feedback_id", "Invalid feedback id")
	}
	var input assignInput
	if err := c.BodyParser(&input); err != nil || len(input.UserIDs) == 0 {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	if err := h.feedbackService.Assign(feedbackID, input.UserIDs); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Feedback assigned successfully")
}

func (h *FeedbackHandler) Complete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	feedbackID, err := paramUint(c, "feedbackId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_feedback_id", "Invalid feedback id")
	}
	if err := h.feedbackService.CompleteAssignment(feedbackID, userID); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Assignment completed successfully")
}

func (h *FeedbackHandler) Close(c *fiber.Ctx) error {
	feedbackID, err := paramUint(c, "feedbackId")
	if err != nil {
		return httpx.BadRequest(c, "invalid_feedback_id", "Invalid feedback id")
	}
	if err := h.feedbackService.Close(feedbackID); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Feedback closed successfully")
}
