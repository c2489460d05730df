// handlers/auth_routes.go
package handlers

import (
	"strings"

	"match-tracker/middleware"
	"match-tracker/models"
	"match-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, v *Views) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/session", func(c *fiber.Ctx) error {
		sess := v.Session.Session()
		return c.JSON(fiber.Map{
			"user":            sess.User,
			"isAuthenticated": sess.IsAuthenticated,
		})
	})

	app.Post("/auth/login", func(c *fiber.Ctx) error {
		var body struct {
			Identifier string `json:"identifier"`
			Password   string `json:"password"`
		}
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "invalid request body")
		}
		body.Identifier = strings.TrimSpace(body.Identifier)
		if body.Identifier == "" || body.Password == "" {
			return badRequest(c, "identifier and password are required")
		}

		resp, err := v.Auth.Login(c.UserContext(), body.Identifier, body.Password)
		if err != nil {
			return respondNotice(c, "AUTH", err)
		}
		if err := v.Session.SetAuth(c.UserContext(), *resp); err != nil {
			return respondNotice(c, "AUTH", err)
		}

		return c.JSON(fiber.Map{
			"user":    resp.User,
			"message": "welcome back",
		})
	})

	app.Post("/auth/register", func(c *fiber.Ctx) error {
		var in services.SignUpInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "invalid request body")
		}
		in.Username = strings.TrimSpace(in.Username)
		in.Email = strings.TrimSpace(in.Email)
		if in.Username == "" || in.Email == "" || in.Password == "" {
			return badRequest(c, "username, email and password are required")
		}

		resp, err := v.Auth.SignUp(c.UserContext(), in)
		if err != nil {
			return respondNotice(c, "AUTH", err)
		}
		if err := v.Session.SetAuth(c.UserContext(), *resp); err != nil {
			return respondNotice(c, "AUTH", err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"user":    resp.User,
			"message": "account created",
		})
	})

	app.Post("/auth/logout", func(c *fiber.Ctx) error {
		if err := v.Session.Logout(c.UserContext()); err != nil {
			return respondNotice(c, "AUTH", err)
		}
		return c.JSON(fiber.Map{"isAuthenticated": false})
	})

	secured := app.Group("/profile", middleware.RequireSession(v.Session))

	secured.Get("/", func(c *fiber.Ctx) error {
		matches, err := v.Matches.ListAll(c.UserContext())
		if err != nil {
			return respondNotice(c, "PROFILE", err)
		}
		return c.JSON(fiber.Map{
			"user":   v.Session.Session().User,
			"career": services.CareerStats(matches),
		})
	})

	secured.Patch("/", func(c *fiber.Ctx) error {
		var patch models.UserPatch
		if err := c.BodyParser(&patch); err != nil {
			return badRequest(c, "invalid request body")
		}

		if _, err := v.Auth.UpdateProfile(c.UserContext(), patch); err != nil {
			return respondNotice(c, "PROFILE", err)
		}
		if err := v.Session.UpdateUser(c.UserContext(), patch); err != nil {
			return respondNotice(c, "PROFILE", err)
		}
		return c.JSON(fiber.Map{"user": v.Session.Session().User})
	})
}
