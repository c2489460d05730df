// middleware/auth.go
package middleware

import (
	"log"

	"match-tracker/services"

	"github.com/gofiber/fiber/v2"
)

// SessionReader is the slice of services.SessionStore the gate needs.
type SessionReader interface {
	IsAuthenticated() bool
}

// RequireSession rejects every request while the session is anonymous. It is
// the route gate in front of all match views.
func RequireSession(session SessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !session.IsAuthenticated() {
			log.Printf("🚫 [SESSION] anonymous request to gated route %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": services.MsgNotAuthenticated,
			})
		}
		return c.Next()
	}
}
