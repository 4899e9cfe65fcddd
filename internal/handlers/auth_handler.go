package handlers

import (
	"github.com/AshokWPD/gold-updated/internal/httpx"
	"github.com/AshokWPD/gold-updated/internal/service"
	"github.com/AshokWPD/gold-updated/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}

	input.Email = validation.NormalizeEmail(input.Email)
	if input.Name == "" || !validation.ValidateEmail(input.Email) {
		return httpx.BadRequest(c, "invalid_input", "Name and a valid email are required")
	}
	if !validation.ValidatePassword(input.Password) {
		return httpx.BadRequest(c, "weak_password", "Password is too short")
	}

	result, err := h.authService.Register(input)
	if err != nil {
		return fail(c, err)
	}
	return httpx.Created(c, result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}

	input.Email = validation.NormalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return httpx.BadRequest(c, "invalid_input", "Email and password are required")
	}

	result, err := h.authService.Login(input)
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, result)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	if err := h.authService.Logout(userID); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Logged out successfully")
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	user, err := h.userService.Get(userID)
	if err != nil {
		return fail(c, err)
	}
	return httpx.OK(c, user.ToResponse())
}

// Deactivate lets a user switch their own account off. They stay logged in
// until the token expires but cannot log in again.
func (h *AuthHandler) Deactivate(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_session", "Invalid session")
	}
	if err := h.authService.SetInactive(userID); err != nil {
		return fail(c, err)
	}
	return httpx.Message(c, "Account deactivated")
}
