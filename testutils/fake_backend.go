// Package testutils runs an in-memory stand-in for the match tracker backend.
package testutils

import (
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"match-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
)

const (
	DemoUsername = "demo"
	DemoPassword = "correct"
	DemoToken    = "demo-token"
)

type account struct {
	user     models.User
	password string
}

// FakeBackend serves /auth and /matches from memory over a real listener.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	accounts map[string]*account // by username
	tokens   map[string]string   // token -> username
	matches  map[string][]models.Match
	requests []string
	payloads []models.MatchPayload
}

// NewFakeBackend starts a backend with the demo account registered. Close it when done.
func NewFakeBackend() *FakeBackend {
	b := &FakeBackend{
		accounts: map[string]*account{},
		tokens:   map[string]string{},
		matches:  map[string][]models.Match{},
	}
	b.accounts[DemoUsername] = &account{
		user: models.User{
			ID:       "u-demo",
			Username: DemoUsername,
			Email:    "demo@example.com",
			Name:     "Demo Player",
			IsActive: true,
		},
		password: DemoPassword,
	}
	b.tokens[DemoToken] = DemoUsername

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(func(c *fiber.Ctx) error {
		b.mu.Lock()
		b.requests = append(b.requests, c.Method()+" "+c.Path())
		b.mu.Unlock()
		return c.Next()
	})
	b.routes(app)

	b.Server = httptest.NewServer(adaptor.FiberApp(app))
	return b
}

func (b *FakeBackend) URL() string { return b.Server.URL }

func (b *FakeBackend) Close() { b.Server.Close() }

// Seed stores matches for username as if they had been created earlier.
func (b *FakeBackend) Seed(username string, matches ...models.Match) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.matches[username] = append(b.matches[username], matches...)
}

// Matches returns a copy of what the backend holds for username.
func (b *FakeBackend) Matches(username string) []models.Match {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Match(nil), b.matches[username]...)
}

// RevokeTokens makes every issued token answer 401.
func (b *FakeBackend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = map[string]string{}
}

// Requests lists "METHOD /path" for every request received, in order.
func (b *FakeBackend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// Payloads lists the decoded bodies of POST and PATCH /matches calls.
func (b *FakeBackend) Payloads() []models.MatchPayload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.MatchPayload(nil), b.payloads...)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized", "statusCode": 401})
}

// authed resolves the bearer token to a username. Callers hold b.mu.
func (b *FakeBackend) authed(c *fiber.Ctx) (string, bool) {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	username, ok := b.tokens[token]
	return username, ok && token != ""
}

func (b *FakeBackend) routes(app *fiber.App) {
	app.Post("/auth/signin", func(c *fiber.Ctx) error {
		var body struct {
			Identifier string `json:"identifier"`
			Password   string `json:"password"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		for _, a := range b.accounts {
			if (a.user.Username == body.Identifier || a.user.Email == body.Identifier) && a.password == body.Password {
				token := "token-" + a.user.Username
				if a.user.Username == DemoUsername {
					token = DemoToken
				}
				b.tokens[token] = a.user.Username
				return c.JSON(fiber.Map{"accessToken": token, "user": a.user})
			}
		}
		return unauthorized(c)
	})

	app.Post("/auth/signup", func(c *fiber.Ctx) error {
		var body struct {
			Username string `json:"username"`
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		for _, a := range b.accounts {
			if a.user.Username == body.Username || a.user.Email == body.Email {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
			}
		}
		a := &account{
			user: models.User{
				ID:       uuid.NewString(),
				Username: body.Username,
				Email:    body.Email,
				Name:     body.Name,
				IsActive: true,
			},
			password: body.Password,
		}
		b.accounts[body.Username] = a
		token := "token-" + body.Username
		b.tokens[token] = body.Username
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"accessToken": token, "user": a.user})
	})

	app.Get("/auth/profile", func(c *fiber.Ctx) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		username, ok := b.authed(c)
		if !ok {
			return unauthorized(c)
		}
		return c.JSON(b.accounts[username].user)
	})

	app.Patch("/auth/profile", func(c *fiber.Ctx) error {
		var patch models.UserPatch
		if err := c.BodyParser(&patch); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		username, ok := b.authed(c)
		if !ok {
			return unauthorized(c)
		}
		a := b.accounts[username]
		patch.Apply(&a.user)
		return c.JSON(a.user)
	})

	app.Get("/matches", func(c *fiber.Ctx) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		username, ok := b.authed(c)
		if !ok {
			return unauthorized(c)
		}
		return c.JSON(b.sorted(username))
	})

	app.Get("/matches/recent", func(c *fiber.Ctx) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		username, ok := b.authed(c)
		if !ok {
			return unauthorized(c)
		}
		list := b.sorted(username)
		if len(list) > 10 {
			list = list[:10]
		}
		return c.JSON(list)
	})

	app.Get("/matches/stats/by-place", func(c *fiber.Ctx) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		username, ok := b.authed(c)
		if !ok {
			return unauthorized(c)
		}
		return c.JSON(placeStats(b.sorted(username)))
	})

	app.Post("/matches", func(c *fiber.Ctx) error {
		var p models.MatchPayload
		if err := c.BodyParser(&p); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		username, ok := b.authed(c)
		if !ok {
			return unauthorized(c)
		}
		b.payloads = append(b.payloads, p)

		now := time.Now().UTC()
		m := models.Match{
			ID:        uuid.NewString(),
			UserID:    b.accounts[username].user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyPayload(&m, p)
		b.matches[username] = append(b.matches[username], m)
		return c.Status(fiber.StatusCreated).JSON(m)
	})

	app.Patch("/matches/:id", func(c *fiber.Ctx) error {
		var p models.MatchPayload
		if err := c.BodyParser(&p); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		username, ok := b.authed(c)
		if !ok {
			return unauthorized(c)
		}
		b.payloads = append(b.payloads, p)

		list := b.matches[username]
		for i := range list {
			if list[i].ID == c.Params("id") {
				applyPayload(&list[i], p)
				list[i].UpdatedAt = time.Now().UTC()
				return c.JSON(list[i])
			}
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Match not found"})
	})

	app.Delete("/matches/:id", func(c *fiber.Ctx) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		username, ok := b.authed(c)
		if !ok {
			return unauthorized(c)
		}

		list := b.matches[username]
		for i := range list {
			if list[i].ID == c.Params("id") {
				b.matches[username] = append(list[:i:i], list[i+1:]...)
				return c.JSON(fiber.Map{"message": "Match deleted"})
			}
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Match not found"})
	})
}

// sorted returns the user's matches newest first. Callers hold b.mu.
func (b *FakeBackend) sorted(username string) []models.Match {
	list := append([]models.Match{}, b.matches[username]...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.After(list[j].Date)
	})
	return list
}

// applyPayload stores what the client sent, result included, without re-deriving anything.
func applyPayload(m *models.Match, p models.MatchPayload) {
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.CourtType != nil {
		m.CourtType = *p.CourtType
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Result != nil {
		m.Result = *p.Result
	}
	if p.GoalsFor != nil {
		m.GoalsFor = *p.GoalsFor
	}
	if p.GoalsAgainst != nil {
		m.GoalsAgainst = *p.GoalsAgainst
	}
	if p.Performance != nil {
		m.Performance = *p.Performance
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	if p.PlaceID != nil {
		m.PlaceID = *p.PlaceID
	}
	if p.PlaceName != nil {
		m.PlaceName = *p.PlaceName
	}
	if p.Address != nil {
		m.Address = *p.Address
	}
	if p.City != nil {
		m.City = *p.City
	}
	if p.Country != nil {
		m.Country = *p.Country
	}
	if p.Latitude != nil {
		m.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		m.Longitude = p.Longitude
	}
}

func placeStats(matches []models.Match) []models.PlaceStats {
	var out []models.PlaceStats
	index := map[string]int{}
	for _, m := range matches {
		i, ok := index[m.PlaceName]
		if !ok {
			i = len(out)
			index[m.PlaceName] = i
			out = append(out, models.PlaceStats{PlaceName: m.PlaceName, LastPlayed: m.Date})
		}
		s := &out[i]
		s.TotalMatches++
		s.GoalsFor += m.GoalsFor
		s.GoalsAgainst += m.GoalsAgainst
		switch m.Result {
		case models.ResultWon:
			s.Wins++
		case models.ResultLost:
			s.Losses++
		default:
			s.Ties++
		}
		if m.Date.After(s.LastPlayed) {
			s.LastPlayed = m.Date
		}
	}
	for i := range out {
		out[i].GoalsDifference = out[i].GoalsFor - out[i].GoalsAgainst
		out[i].WinRate = float64(out[i].Wins) / float64(out[i].TotalMatches) * 100
	}
	return out
}
