package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// userIDKey is the request-local key the authenticated user ID is stored
// under.
const userIDKey = "user_id"

// Auth provides mock Bearer token authentication: the token carries the
// numeric user ID directly. In production this would validate a JWT or call
// an auth service; the session protocol itself is not this service's
// concern.
func Auth() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing Authorization header",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid Authorization header format, expected 'Bearer <token>'",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "empty bearer token",
			})
		}

		userID, err := strconv.Atoi(token)
		if err != nil || userID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid bearer token",
			})
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user ID set by Auth. Zero means the
// request never passed through the middleware.
func UserID(c fiber.Ctx) int {
	if id, ok := c.Locals(userIDKey).(int); ok {
		return id
	}
	return 0
}
