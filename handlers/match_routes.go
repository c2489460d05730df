// handlers/match_routes.go
package handlers

import (
	"match-tracker/middleware"
	"match-tracker/models"
	"match-tracker/services"

	"github.com/gofiber/fiber/v2"
)

// SetupMatchRoutes registers the session-gated pages. Each page fetches its
// match list on every request and derives its aggregates from that list.
func SetupMatchRoutes(app *fiber.App, v *Views) {
	gate := middleware.RequireSession(v.Session)

	app.Get("/home", gate, func(c *fiber.Ctx) error {
		matches, err := v.Matches.ListAll(c.UserContext())
		if err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		return c.JSON(fiber.Map{
			"user":    v.Session.Session().User,
			"summary": v.Locale.Summarize(matches),
			"rank":    services.RankFor(matches),
			"recent":  v.Locale.Cards(services.RecentForm(matches, services.RecentFormSize)),
		})
	})

	app.Get("/dashboard", gate, func(c *fiber.Ctx) error {
		f, ok := filterFromQuery(c)
		if !ok {
			return badRequest(c, "result must be one of ALL, WON, LOST, TIED")
		}
		f.Year = v.now().In(v.Locale.Location).Year()

		matches, err := v.Matches.ListRecent(c.UserContext())
		if err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		return c.JSON(fiber.Map{
			"user":    v.Session.Session().User,
			"summary": v.Locale.Summarize(matches),
			"rank":    services.RankFor(matches),
			"recent":  v.Locale.Cards(services.RecentForm(matches, services.RecentFormSize)),
			"matches": v.Locale.Cards(v.Locale.Filter(matches, f)),
		})
	})

	app.Get("/history", gate, func(c *fiber.Ctx) error {
		f, ok := filterFromQuery(c)
		if !ok {
			return badRequest(c, "result must be one of ALL, WON, LOST, TIED")
		}
		matches, err := v.Matches.ListAll(c.UserContext())
		if err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		return c.JSON(historyView(v, matches, f))
	})

	// Deleting from the history page prunes the list it already holds instead of refetching.
	app.Delete("/history/:id", gate, func(c *fiber.Ctx) error {
		f, ok := filterFromQuery(c)
		if !ok {
			return badRequest(c, "result must be one of ALL, WON, LOST, TIED")
		}
		id := c.Params("id")

		matches, err := v.Matches.ListAll(c.UserContext())
		if err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		if err := v.Matches.Delete(c.UserContext(), id); err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		return c.JSON(historyView(v, services.RemoveMatch(matches, id), f))
	})

	app.Get("/stats", gate, func(c *fiber.Ctx) error {
		matches, err := v.Matches.ListAll(c.UserContext())
		if err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		return c.JSON(fiber.Map{
			"total":  len(matches),
			"venues": services.GroupByVenue(matches),
		})
	})

	app.Get("/places", gate, func(c *fiber.Ctx) error {
		stats, err := v.Matches.PlaceStats(c.UserContext())
		if err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		if stats == nil {
			stats = []models.PlaceStats{}
		}
		return c.JSON(stats)
	})

	app.Get("/matches/:id", gate, func(c *fiber.Ctx) error {
		m, err := v.Matches.Find(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		return c.JSON(v.Locale.Card(*m))
	})

	app.Post("/matches", gate, func(c *fiber.Ctx) error {
		var in models.MatchInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "invalid request body")
		}
		m, err := v.Matches.Create(c.UserContext(), in)
		if err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		return c.Status(fiber.StatusCreated).JSON(v.Locale.Card(*m))
	})

	// PUT is the edit form: every mutable field is replaced.
	app.Put("/matches/:id", gate, func(c *fiber.Ctx) error {
		var in models.MatchInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := services.ValidateMatchInput(in); err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		m, err := v.Matches.Update(c.UserContext(), c.Params("id"), services.FullPatch(in))
		if err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		return c.JSON(v.Locale.Card(*m))
	})

	app.Patch("/matches/:id", gate, func(c *fiber.Ctx) error {
		var patch models.MatchPatch
		if err := c.BodyParser(&patch); err != nil {
			return badRequest(c, "invalid request body")
		}
		m, err := v.Matches.Update(c.UserContext(), c.Params("id"), patch)
		if err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		return c.JSON(v.Locale.Card(*m))
	})

	app.Delete("/matches/:id", gate, func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := v.Matches.Delete(c.UserContext(), id); err != nil {
			return respondNotice(c, "MATCHES", err)
		}
		return c.JSON(fiber.Map{"deleted": id})
	})

	app.Post("/exports", gate, func(c *fiber.Ctx) error {
		if v.Export == nil {
			return respondNotice(c, "EXPORT", services.ErrExportDisabled)
		}
		res, err := v.Export.ExportHistory(c.UserContext())
		if err != nil {
			return respondNotice(c, "EXPORT", err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})
}

func historyView(v *Views, matches []models.Match, f services.MatchFilter) fiber.Map {
	filtered := v.Locale.Filter(matches, f)
	return fiber.Map{
		"total":   len(matches),
		"shown":   len(filtered),
		"matches": v.Locale.Cards(filtered),
		"months":  v.Locale.GroupByMonth(filtered),
	}
}
