package httpapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rosterhq/roster/internal/common"
	"github.com/rosterhq/roster/internal/schema"
	"github.com/rosterhq/roster/internal/server/auth"
)

// localUserID is the Locals key the middleware stores the authenticated
// user's ID under.
const localUserID = "user_id"

// AuthMiddleware verifies the Bearer access token and stores the caller's
// user ID in c.Locals. Expired tokens answer with the TOKEN_EXPIRED code so
// the client knows to refresh rather than re-login.
func AuthMiddleware(secretKey []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return unauthorized(c, "missing authorization header")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "authorization header must be: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "empty bearer token")
		}

		userID, err := auth.GetUserIDFromToken(tokenString, secretKey)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(schema.ErrorPayload{
					Code:    common.CodeTokenExpired,
					Message: "access token expired",
				})
			}
			return unauthorized(c, "invalid token")
		}

		c.Locals(localUserID, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user's ID, or "" before the middleware
// has run.
func UserID(c *fiber.Ctx) string {
	v := c.Locals(localUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(schema.ErrorPayload{
		Code:    common.CodeUnauthorized,
		Message: msg,
	})
}
