// handlers/views.go
package handlers

import (
	"log"
	"strings"
	"time"

	"match-tracker/services"

	"github.com/gofiber/fiber/v2"
)

// Views bundles what every page handler needs.
type Views struct {
	Auth    *services.AuthService
	Matches *services.MatchService
	Session *services.SessionStore
	Export  *services.ExportService
	Locale  *services.Locale
	Now     func() time.Time
}

func (v *Views) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}

// respondNotice logs err and sends the matching user-facing notice.
func respondNotice(c *fiber.Ctx, tag string, err error) error {
	n := services.NoticeFor(err)
	log.Printf("❌ [%s] %s %s: %v", tag, c.Method(), c.Path(), err)
	return c.Status(n.Status).JSON(n)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// filterFromQuery reads ?q= and ?result= the way the history and dashboard pages do.
func filterFromQuery(c *fiber.Ctx) (services.MatchFilter, bool) {
	f := services.MatchFilter{
		Query:  c.Query("q"),
		Result: services.ResultFilter(strings.ToUpper(c.Query("result", string(services.ResultAll)))),
	}
	switch f.Result {
	case services.ResultAll, "WON", "LOST", "TIED":
		return f, true
	}
	return f, false
}
