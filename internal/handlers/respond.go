package handlers

import (
	"errors"
	"log"

	"github.com/AshokWPD/gold-updated/internal/httpx"
	"github.com/AshokWPD/gold-updated/internal/service"
	"github.com/gofiber/fiber/v2"
)

// fail maps service sentinel errors onto the HTTP error envelope. Anything
// not recognized is a 500 and gets logged with the request path.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrMessageNotFound):
		return httpx.NotFound(c, "message_not_found", "Message not found")
	case errors.Is(err, service.ErrGroupNotFound):
		return httpx.NotFound(c, "group_not_found", "Group not found")
	case errors.Is(err, service.ErrUserNotFound):
		return httpx.NotFound(c, "user_not_found", "User not found")
	case errors.Is(err, service.ErrFeedbackNotFound):
		return httpx.NotFound(c, "feedback_not_found", "Feedback not found")
	case errors.Is(err, service.ErrNotAuthorized):
		return httpx.Forbidden(c, "not_authorized", "Not Authorized To Access This Route")
	case errors.Is(err, service.ErrInvalidInput):
		return httpx.BadRequest(c, "invalid_input", "Invalid request data")
	case errors.Is(err, service.ErrInvalidCredentials):
		return httpx.Unauthorized(c, "invalid_credentials", "Invalid email or password")
	case errors.Is(err, service.ErrInactiveAccount):
		return httpx.Forbidden(c, "inactive_account", "Account is inactive")
	case errors.Is(err, service.ErrEmailTaken):
		return httpx.BadRequest(c, "email_taken", "Email already registered")
	default:
		log.Printf("handler: %s %s: %v", c.Method(), c.Path(), err)
		return httpx.Internal(c, "internal_error")
	}
}

func currentUserID(c *fiber.Ctx) (uint, error) {
	return httpx.LocalUint(c, "userID")
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := c.ParamsInt(name)
	if err != nil || v < 1 {
		return 0, errors.New("invalid id")
	}
	return uint(v), nil
}
