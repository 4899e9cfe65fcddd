package middleware

import (
	"github.com/AshokWPD/gold-updated/internal/httpx"
	"github.com/AshokWPD/gold-updated/internal/models"
	"github.com/AshokWPD/gold-updated/internal/policy"
	"github.com/gofiber/fiber/v2"
)

// RequireAction gates a route on the capability policy. Evaluated once per
// request against the role carried in the JWT.
func RequireAction(action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(models.Role)
		if !policy.Allowed(role, action) {
			return httpx.Forbidden(c, "forbidden", "Not Authorized To Access This Route")
		}
		return c.Next()
	}
}
