package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const principalKey = "principal"

// PrincipalResolver loads the current state of the account behind a token.
type PrincipalResolver interface {
	Principal(accountID uuid.UUID) (policy.Principal, error)
}

// LoadPrincipal resolves the JWT subject against the account directory, so
// role changes and deletions take effect before the token expires.
func LoadPrincipal(resolver PrincipalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := GetAccountID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		p, err := resolver.Principal(accountID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Account no longer exists",
			})
		}
		c.Locals(principalKey, p)
		return c.Next()
	}
}

// GetPrincipal returns the caller loaded by LoadPrincipal, or the anonymous
// principal.
func GetPrincipal(c *fiber.Ctx) policy.Principal {
	if p, ok := c.Locals(principalKey).(policy.Principal); ok {
		return p
	}
	return policy.Principal{}
}

// GetAccountID extracts the account UUID from the JWT claims in context.
func GetAccountID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
