package middleware

import (
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired rejects callers whose loaded principal is not an admin. It
// must run after LoadPrincipal. Services repeat the check, so a route left
// outside the admin group still cannot mutate admin-only state.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p.IsAnonymous() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if d := policy.Admin(p); !d.Allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
