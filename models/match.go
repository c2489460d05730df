package models

import "time"

type CourtType string
type Category string
type MatchResult string
type Performance string

const (
	CourtFive   CourtType = "FIVE"
	CourtSeven  CourtType = "SEVEN"
	CourtEleven CourtType = "ELEVEN"
	CourtOther  CourtType = "OTHER"

	CategoryFriends    Category = "FRIENDS"
	CategoryFriendly   Category = "FRIENDLY"
	CategoryTournament Category = "TOURNAMENT"

	ResultWon  MatchResult = "WON"
	ResultLost MatchResult = "LOST"
	ResultTied MatchResult = "TIED"

	PerformanceVeryBad  Performance = "VERY_BAD"
	PerformanceBad      Performance = "BAD"
	PerformanceNeutral  Performance = "NEUTRAL"
	PerformanceGood     Performance = "GOOD"
	PerformanceVeryGood Performance = "VERY_GOOD"
)

func (c CourtType) Valid() bool {
	switch c {
	case CourtFive, CourtSeven, CourtEleven, CourtOther:
		return true
	}
	return false
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFriends, CategoryFriendly, CategoryTournament:
		return true
	}
	return false
}

func (p Performance) Valid() bool {
	switch p {
	case PerformanceVeryBad, PerformanceBad, PerformanceNeutral, PerformanceGood, PerformanceVeryGood:
		return true
	}
	return false
}

// ResultFor derives the outcome from the score. The backend value is never trusted.
func ResultFor(goalsFor, goalsAgainst int) MatchResult {
	switch {
	case goalsFor > goalsAgainst:
		return ResultWon
	case goalsFor < goalsAgainst:
		return ResultLost
	default:
		return ResultTied
	}
}

// Match is one logged play session as returned by the backend.
type Match struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	Date         time.Time   `json:"date"`
	CourtType    CourtType   `json:"courtType"`
	Category     Category    `json:"category"`
	Result       MatchResult `json:"result"`
	GoalsFor     int         `json:"goalsFor"`
	GoalsAgainst int         `json:"goalsAgainst"`
	Performance  Performance `json:"performance"`
	Notes        string      `json:"notes,omitempty"`

	// Venue
	PlaceID   string   `json:"placeId"`
	PlaceName string   `json:"placeName"`
	Address   string   `json:"address,omitempty"`
	City      string   `json:"city,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MatchInput is the create/edit form. Result and PlaceID are derived on submission.
type MatchInput struct {
	Date         time.Time   `json:"date"`
	CourtType    CourtType   `json:"courtType"`
	Category     Category    `json:"category"`
	GoalsFor     int         `json:"goalsFor"`
	GoalsAgainst int         `json:"goalsAgainst"`
	Performance  Performance `json:"performance"`
	Notes        string      `json:"notes,omitempty"`
	PlaceName    string      `json:"placeName"`
	Address      string      `json:"address,omitempty"`
	City         string      `json:"city,omitempty"`
	Country      string      `json:"country,omitempty"`
	Latitude     *float64    `json:"latitude,omitempty"`
	Longitude    *float64    `json:"longitude,omitempty"`
}

// MatchPatch carries only the fields being changed.
type MatchPatch struct {
	Date         *time.Time   `json:"date,omitempty"`
	CourtType    *CourtType   `json:"courtType,omitempty"`
	Category     *Category    `json:"category,omitempty"`
	GoalsFor     *int         `json:"goalsFor,omitempty"`
	GoalsAgainst *int         `json:"goalsAgainst,omitempty"`
	Performance  *Performance `json:"performance,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	PlaceName    *string      `json:"placeName,omitempty"`
	Address      *string      `json:"address,omitempty"`
	City         *string      `json:"city,omitempty"`
	Country      *string      `json:"country,omitempty"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`
}

// MatchPayload is the body sent to POST /matches and PATCH /matches/:id.
type MatchPayload struct {
	Date         *time.Time   `json:"date,omitempty"`
	CourtType    *CourtType   `json:"courtType,omitempty"`
	Category     *Category    `json:"category,omitempty"`
	Result       *MatchResult `json:"result,omitempty"`
	GoalsFor     *int         `json:"goalsFor,omitempty"`
	GoalsAgainst *int         `json:"goalsAgainst,omitempty"`
	Performance  *Performance `json:"performance,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	PlaceID      *string      `json:"placeId,omitempty"`
	PlaceName    *string      `json:"placeName,omitempty"`
	Address      *string      `json:"address,omitempty"`
	City         *string      `json:"city,omitempty"`
	Country      *string      `json:"country,omitempty"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`
}

// PlaceStats is the per-venue aggregate computed by the backend.
type PlaceStats struct {
	PlaceName       string    `json:"placeName"`
	TotalMatches    int       `json:"totalMatches"`
	Wins            int       `json:"wins"`
	Losses          int       `json:"losses"`
	Ties            int       `json:"ties"`
	GoalsFor        int       `json:"goalsFor"`
	GoalsAgainst    int       `json:"goalsAgainst"`
	WinRate         float64   `json:"winRate"`
	GoalsDifference int       `json:"goalsDifference"`
	LastPlayed      time.Time `json:"lastPlayed"`
}
