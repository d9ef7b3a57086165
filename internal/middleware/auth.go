// Package middleware provides Fiber authentication and authorization.
package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/services"
)

const callerKey = "caller"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Authenticate rejects requests without a valid bearer token.
func Authenticate(v TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := bearerClaims(c, v)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		c.Locals(callerKey, callerFromClaims(claims))
		return c.Next()
	}
}

// OptionalAuthenticate records the caller when a valid token is present and
// otherwise continues as unauthenticated.
func OptionalAuthenticate(v TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, ok := bearerClaims(c, v); ok {
			c.Locals(callerKey, callerFromClaims(claims))
		}
		return c.Next()
	}
}

// Authorize allows only callers holding one of roles. It must run after
// Authenticate.
func Authorize(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := CallerFrom(c)
		if !caller.Authenticated() || !slices.Contains(roles, caller.Role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return c.Next()
	}
}

// CallerFrom returns the caller stored by the authentication middleware, or
// the unauthenticated zero value.
func CallerFrom(c *fiber.Ctx) services.Caller {
	if caller, ok := c.Locals(callerKey).(services.Caller); ok {
		return caller
	}
	return services.Caller{}
}

func bearerClaims(c *fiber.Ctx, v TokenValidator) (*Claims, bool) {
	parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}
	claims, err := v.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

func callerFromClaims(claims *Claims) services.Caller {
	return services.Caller{UserID: claims.UserID, Role: claims.Role}
}
