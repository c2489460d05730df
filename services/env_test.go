package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"match-tracker/models"
	"match-tracker/testutils"
	"match-tracker/utils"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	backend *testutils.FakeBackend
	storage *utils.FileStorage
	session *SessionStore
	auth    *AuthService
	matches *MatchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := testutils.NewFakeBackend()
	t.Cleanup(backend.Close)

	storage, err := utils.NewFileStorage(filepath.Join(t.TempDir(), "storage.json"))
	require.NoError(t, err)

	session := NewSessionStore(storage)
	api := utils.NewAPIClient(backend.URL(), session, 5*time.Second)
	api.OnUnauthorized = func(ctx context.Context) {
		_ = session.Logout(ctx)
	}

	return &testEnv{
		backend: backend,
		storage: storage,
		session: session,
		auth:    NewAuthService(api),
		matches: NewMatchService(api),
	}
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	resp, err := e.auth.Login(ctx, testutils.DemoUsername, testutils.DemoPassword)
	require.NoError(t, err)
	require.NoError(t, e.session.SetAuth(ctx, *resp))
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 18, 0, 0, 0, time.UTC)
}

func match(id, place string, goalsFor, goalsAgainst int, date time.Time) models.Match {
	return models.Match{
		ID:           id,
		Date:         date,
		CourtType:    models.CourtFive,
		Category:     models.CategoryFriends,
		Result:       models.ResultFor(goalsFor, goalsAgainst),
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
		Performance:  models.PerformanceGood,
		PlaceID:      utils.PlaceSlug(place),
		PlaceName:    place,
	}
}
