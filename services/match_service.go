// services/match_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"match-tracker/models"
	"match-tracker/utils"
)

var (
	ErrInvalidMatch  = errors.New("invalid match")
	ErrPartialScore  = errors.New("goalsFor and goalsAgainst must be updated together")
	ErrMatchNotFound = errors.New("match not found")
)

// MatchService wraps the /matches endpoints. Every call is one request; nothing is cached.
type MatchService struct {
	API *utils.APIClient
}

func NewMatchService(api *utils.APIClient) *MatchService {
	return &MatchService{API: api}
}

func (s *MatchService) ListRecent(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := s.API.Get(ctx, "/matches/recent", &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *MatchService) ListAll(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := s.API.Get(ctx, "/matches", &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// Find lists every match and picks id out of it. The backend has no single-match read.
func (s *MatchService) Find(ctx context.Context, id string) (*models.Match, error) {
	matches, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].ID == id {
			return &matches[i], nil
		}
	}
	return nil, ErrMatchNotFound
}

// Create validates the form, derives placeId and result, and submits it.
func (s *MatchService) Create(ctx context.Context, in models.MatchInput) (*models.Match, error) {
	if err := ValidateMatchInput(in); err != nil {
		return nil, err
	}

	var created models.Match
	if err := s.API.Post(ctx, "/matches", CreatePayload(in), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *MatchService) Update(ctx context.Context, id string, patch models.MatchPatch) (*models.Match, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidMatch)
	}
	payload, err := UpdatePayload(patch)
	if err != nil {
		return nil, err
	}

	var updated models.Match
	if err := s.API.Patch(ctx, "/matches/"+url.PathEscape(id), payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MatchService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidMatch)
	}
	return s.API.Delete(ctx, "/matches/"+url.PathEscape(id))
}

func (s *MatchService) PlaceStats(ctx context.Context) ([]models.PlaceStats, error) {
	var stats []models.PlaceStats
	if err := s.API.Get(ctx, "/matches/stats/by-place", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func ValidateMatchInput(in models.MatchInput) error {
	switch {
	case in.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidMatch)
	case strings.TrimSpace(in.PlaceName) == "":
		return fmt.Errorf("%w: placeName is required", ErrInvalidMatch)
	case in.GoalsFor < 0 || in.GoalsAgainst < 0:
		return fmt.Errorf("%w: goals must not be negative", ErrInvalidMatch)
	case !in.CourtType.Valid():
		return fmt.Errorf("%w: unknown courtType %q", ErrInvalidMatch, in.CourtType)
	case !in.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidMatch, in.Category)
	case !in.Performance.Valid():
		return fmt.Errorf("%w: unknown performance %q", ErrInvalidMatch, in.Performance)
	}
	return nil
}

// CreatePayload builds the POST body. The result always comes from the score.
func CreatePayload(in models.MatchInput) models.MatchPayload {
	placeName := strings.TrimSpace(in.PlaceName)
	placeID := utils.PlaceSlug(placeName)
	result := models.ResultFor(in.GoalsFor, in.GoalsAgainst)
	date := in.Date.UTC()

	p := models.MatchPayload{
		Date:         &date,
		CourtType:    &in.CourtType,
		Category:     &in.Category,
		Result:       &result,
		GoalsFor:     &in.GoalsFor,
		GoalsAgainst: &in.GoalsAgainst,
		Performance:  &in.Performance,
		PlaceID:      &placeID,
		PlaceName:    &placeName,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
	}
	if in.Notes != "" {
		p.Notes = &in.Notes
	}
	if in.Address != "" {
		p.Address = &in.Address
	}
	if in.City != "" {
		p.City = &in.City
	}
	if in.Country != "" {
		p.Country = &in.Country
	}
	return p
}

// FullPatch turns an edit form into a patch that replaces every mutable field.
func FullPatch(in models.MatchInput) models.MatchPatch {
	return models.MatchPatch{
		Date:         &in.Date,
		CourtType:    &in.CourtType,
		Category:     &in.Category,
		GoalsFor:     &in.GoalsFor,
		GoalsAgainst: &in.GoalsAgainst,
		Performance:  &in.Performance,
		Notes:        &in.Notes,
		PlaceName:    &in.PlaceName,
		Address:      &in.Address,
		City:         &in.City,
		Country:      &in.Country,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
	}
}

// UpdatePayload builds the PATCH body, recomputing derived fields for whatever changed.
func UpdatePayload(patch models.MatchPatch) (models.MatchPayload, error) {
	if (patch.GoalsFor == nil) != (patch.GoalsAgainst == nil) {
		return models.MatchPayload{}, ErrPartialScore
	}

	p := models.MatchPayload{
		CourtType:   patch.CourtType,
		Category:    patch.Category,
		Performance: patch.Performance,
		Notes:       patch.Notes,
		Address:     patch.Address,
		City:        patch.City,
		Country:     patch.Country,
		Latitude:    patch.Latitude,
		Longitude:   patch.Longitude,
	}

	if patch.Date != nil {
		if patch.Date.IsZero() {
			return models.MatchPayload{}, fmt.Errorf("%w: date is required", ErrInvalidMatch)
		}
		d := patch.Date.UTC()
		p.Date = &d
	}
	if patch.CourtType != nil && !patch.CourtType.Valid() {
		return models.MatchPayload{}, fmt.Errorf("%w: unknown courtType %q", ErrInvalidMatch, *patch.CourtType)
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return models.MatchPayload{}, fmt.Errorf("%w: unknown category %q", ErrInvalidMatch, *patch.Category)
	}
	if patch.Performance != nil && !patch.Performance.Valid() {
		return models.MatchPayload{}, fmt.Errorf("%w: unknown performance %q", ErrInvalidMatch, *patch.Performance)
	}

	if patch.GoalsFor != nil {
		if *patch.GoalsFor < 0 || *patch.GoalsAgainst < 0 {
			return models.MatchPayload{}, fmt.Errorf("%w: goals must not be negative", ErrInvalidMatch)
		}
		result := models.ResultFor(*patch.GoalsFor, *patch.GoalsAgainst)
		p.GoalsFor = patch.GoalsFor
		p.GoalsAgainst = patch.GoalsAgainst
		p.Result = &result
	}

	if patch.PlaceName != nil {
		name := strings.TrimSpace(*patch.PlaceName)
		if name == "" {
			return models.MatchPayload{}, fmt.Errorf("%w: placeName is required", ErrInvalidMatch)
		}
		id := utils.PlaceSlug(name)
		p.PlaceName = &name
		p.PlaceID = &id
	}

	return p, nil
}
