package gate

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

const userIDLocal = "userId"

type userIDKey struct{}

func setUserID(c *fiber.Ctx, userID string) {
	c.Locals(userIDLocal, userID)
	c.SetUserContext(ContextWithUserID(c.UserContext(), userID))
}

// UserID returns the verified user id of the request, or "" outside a
// protected route.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(userIDLocal).(string); ok {
		return v
	}
	return ""
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey{}).(string); ok {
		return v
	}
	return ""
}
