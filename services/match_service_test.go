package services

import (
	"context"
	"testing"
	"time"

	"match-tracker/models"
	"match-tracker/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(goalsFor, goalsAgainst int) models.MatchInput {
	return models.MatchInput{
		Date:         time.Date(2026, 10, 10, 20, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
		CourtType:    models.CourtSeven,
		Category:     models.CategoryFriendly,
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
		Performance:  models.PerformanceGood,
		PlaceName:    "  Estadio Peñón Norte ",
	}
}

func TestResultFor(t *testing.T) {
	for gf := 0; gf <= 6; gf++ {
		for ga := 0; ga <= 6; ga++ {
			got := models.ResultFor(gf, ga)
			switch {
			case gf > ga:
				assert.Equal(t, models.ResultWon, got)
			case gf < ga:
				assert.Equal(t, models.ResultLost, got)
			default:
				assert.Equal(t, models.ResultTied, got)
			}
		}
	}
}

func TestValidateMatchInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.MatchInput)
	}{
		{"zero date", func(in *models.MatchInput) { in.Date = time.Time{} }},
		{"blank place", func(in *models.MatchInput) { in.PlaceName = "   " }},
		{"negative goals", func(in *models.MatchInput) { in.GoalsAgainst = -1 }},
		{"unknown court", func(in *models.MatchInput) { in.CourtType = "BEACH" }},
		{"unknown category", func(in *models.MatchInput) { in.Category = "LEAGUE" }},
		{"unknown performance", func(in *models.MatchInput) { in.Performance = "" }},
	}

	require.NoError(t, ValidateMatchInput(validInput(1, 0)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(1, 0)
			tt.mutate(&in)
			assert.ErrorIs(t, ValidateMatchInput(in), ErrInvalidMatch)
		})
	}
}

func TestCreatePayload(t *testing.T) {
	p := CreatePayload(validInput(3, 1))

	require.NotNil(t, p.Result)
	assert.Equal(t, models.ResultWon, *p.Result)
	assert.Equal(t, "Estadio Peñón Norte", *p.PlaceName)
	assert.Equal(t, "estadio-peñón-norte", *p.PlaceID)
	assert.Equal(t, time.UTC, p.Date.Location())
	assert.Equal(t, 18, p.Date.Hour())
	assert.Nil(t, p.Notes)
	assert.Nil(t, p.Latitude)
}

func TestUpdatePayload(t *testing.T) {
	two, one := 2, 1

	_, err := UpdatePayload(models.MatchPatch{GoalsFor: &two})
	assert.ErrorIs(t, err, ErrPartialScore)

	p, err := UpdatePayload(models.MatchPatch{GoalsFor: &one, GoalsAgainst: &two})
	require.NoError(t, err)
	assert.Equal(t, models.ResultLost, *p.Result)
	assert.Nil(t, p.PlaceID)

	place := "Wembley Arena"
	p, err = UpdatePayload(models.MatchPatch{PlaceName: &place})
	require.NoError(t, err)
	assert.Equal(t, "wembley-arena", *p.PlaceID)
	assert.Nil(t, p.Result)

	blank := " "
	_, err = UpdatePayload(models.MatchPatch{PlaceName: &blank})
	assert.ErrorIs(t, err, ErrInvalidMatch)

	bad := models.CourtType("BEACH")
	_, err = UpdatePayload(models.MatchPatch{CourtType: &bad})
	assert.ErrorIs(t, err, ErrInvalidMatch)

	neg := -1
	_, err = UpdatePayload(models.MatchPatch{GoalsFor: &neg, GoalsAgainst: &one})
	assert.ErrorIs(t, err, ErrInvalidMatch)
}

func TestMatchService_createStoresDerivedResult(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ctx := context.Background()

	won, err := env.matches.Create(ctx, validInput(3, 1))
	require.NoError(t, err)
	assert.Equal(t, models.ResultWon, won.Result)
	assert.NotEmpty(t, won.ID)

	tied, err := env.matches.Create(ctx, validInput(1, 1))
	require.NoError(t, err)
	assert.Equal(t, models.ResultTied, tied.Result)

	all, err := env.matches.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	payloads := env.backend.Payloads()
	require.Len(t, payloads, 2)
	assert.Equal(t, models.ResultWon, *payloads[0].Result)
	assert.Equal(t, "estadio-peñón-norte", *payloads[0].PlaceID)
}

func TestMatchService_createRejectsInvalidWithoutCallingBackend(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	_, err := env.matches.Create(context.Background(), validInput(-2, 0))
	assert.ErrorIs(t, err, ErrInvalidMatch)
	assert.NotContains(t, env.backend.Requests(), "POST /matches")
}

func TestMatchService_updateRecomputesResult(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ctx := context.Background()

	m, err := env.matches.Create(ctx, validInput(3, 1))
	require.NoError(t, err)

	zero, four := 0, 4
	updated, err := env.matches.Update(ctx, m.ID, models.MatchPatch{GoalsFor: &zero, GoalsAgainst: &four})
	require.NoError(t, err)
	assert.Equal(t, models.ResultLost, updated.Result)
	assert.Equal(t, m.PlaceID, updated.PlaceID)

	_, err = env.matches.Update(ctx, m.ID, models.MatchPatch{GoalsAgainst: &four})
	assert.ErrorIs(t, err, ErrPartialScore)

	_, err = env.matches.Update(ctx, "nope", models.MatchPatch{GoalsFor: &zero, GoalsAgainst: &four})
	assert.Equal(t, 404, utils.StatusCode(err))
}

func TestMatchService_deleteRemovesExactlyOne(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ctx := context.Background()

	env.backend.Seed("demo",
		match("m1", "A", 1, 0, day(2026, 1, 1)),
		match("m2", "B", 0, 1, day(2026, 1, 2)),
		match("m3", "C", 2, 2, day(2026, 1, 3)),
	)

	require.NoError(t, env.matches.Delete(ctx, "m2"))

	all, err := env.matches.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, m := range all {
		assert.NotEqual(t, "m2", m.ID)
	}

	assert.Equal(t, 404, utils.StatusCode(env.matches.Delete(ctx, "m2")))
	assert.ErrorIs(t, env.matches.Delete(ctx, ""), ErrInvalidMatch)
}

func TestMatchService_find(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ctx := context.Background()
	env.backend.Seed("demo", match("m1", "A", 1, 0, day(2026, 1, 1)))

	m, err := env.matches.Find(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "A", m.PlaceName)

	_, err = env.matches.Find(ctx, "m9")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestMatchService_recentAndPlaceStats(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	ctx := context.Background()
	env.backend.Seed("demo",
		match("m1", "Camp Nou", 1, 0, day(2026, 1, 1)),
		match("m2", "Camp Nou", 0, 1, day(2026, 2, 1)),
		match("m3", "Wembley", 2, 2, day(2026, 3, 1)),
	)

	recent, err := env.matches.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "m3", recent[0].ID)

	stats, err := env.matches.PlaceStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	total := 0
	for _, s := range stats {
		total += s.TotalMatches
	}
	assert.Equal(t, 3, total)
}

func TestMatchService_requiresSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.matches.ListAll(context.Background())
	assert.Equal(t, 401, utils.StatusCode(err))
}
