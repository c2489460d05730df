// services/stats.go
package services

import (
	"math"
	"sort"
	"strings"

	"match-tracker/models"
	"match-tracker/utils"
)

// RecentFormSize is how many matches the "last games" strip shows.
const RecentFormSize = 5

// RookieThreshold is the match count below which every player is a rookie.
const RookieThreshold = 5

type Summary struct {
	Total         int     `json:"total"`
	Wins          int     `json:"wins"`
	WinRate       int     `json:"winRate"`
	AvgGoals      float64 `json:"avgGoals"`
	AvgGoalsLabel string  `json:"avgGoalsLabel"`
}

type Career struct {
	Total      int `json:"total"`
	Goals      int `json:"goals"`
	Wins       int `json:"wins"`
	Efficiency int `json:"efficiency"`
}

type RankTier string

const (
	TierRookie  RankTier = "ROOKIE"
	TierAmateur RankTier = "AMATEUR"
	TierGold    RankTier = "GOLD"
	TierDiamond RankTier = "DIAMOND"
	TierLegend  RankTier = "LEGEND"
)

type Rank struct {
	Tier  RankTier `json:"tier"`
	Label string   `json:"label"`
	Icon  string   `json:"icon"`
	Level int      `json:"level"`
}

var (
	rankRookie  = Rank{Tier: TierRookie, Label: "Rookie", Icon: "🐣", Level: 0}
	rankAmateur = Rank{Tier: TierAmateur, Label: "Amateur", Icon: "⚽", Level: 1}
	rankGold    = Rank{Tier: TierGold, Label: "Gold", Icon: "🥇", Level: 2}
	rankDiamond = Rank{Tier: TierDiamond, Label: "Diamond", Icon: "💎", Level: 3}
	rankLegend  = Rank{Tier: TierLegend, Label: "Legend", Icon: "👑", Level: 4}
)

type VenueStats struct {
	Name         string `json:"name"`
	Total        int    `json:"total"`
	Wins         int    `json:"wins"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	WinRate      int    `json:"winRate"`
}

type MonthGroup struct {
	Label   string         `json:"label"`
	Wins    int            `json:"wins"`
	Goals   int            `json:"goals"`
	Matches []models.Match `json:"matches"`
}

// ResultFilter is ALL or one of the match results.
type ResultFilter string

const ResultAll ResultFilter = "ALL"

type MatchFilter struct {
	Query  string
	Result ResultFilter
	// Year keeps only matches played in that year (in the locale's zone). 0 keeps all.
	Year int
}

// WinRate is round(wins/total*100), 0 for an empty list.
func WinRate(wins, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(total) * 100))
}

func countWins(matches []models.Match) int {
	wins := 0
	for _, m := range matches {
		if m.Result == models.ResultWon {
			wins++
		}
	}
	return wins
}

func sumGoalsFor(matches []models.Match) int {
	goals := 0
	for _, m := range matches {
		goals += m.GoalsFor
	}
	return goals
}

func (l *Locale) Summarize(matches []models.Match) Summary {
	s := Summary{
		Total: len(matches),
		Wins:  countWins(matches),
	}
	s.WinRate = WinRate(s.Wins, s.Total)
	if s.Total > 0 {
		s.AvgGoals = math.Round(float64(sumGoalsFor(matches))/float64(s.Total)*10) / 10
	}
	s.AvgGoalsLabel = l.Decimal(s.AvgGoals)
	return s
}

func CareerStats(matches []models.Match) Career {
	c := Career{
		Total: len(matches),
		Goals: sumGoalsFor(matches),
		Wins:  countWins(matches),
	}
	c.Efficiency = WinRate(c.Wins, c.Total)
	return c
}

// ClassifyRank checks the highest tier first; fewer than RookieThreshold
// matches is always a rookie regardless of rate.
func ClassifyRank(winRate float64, totalMatches int) Rank {
	switch {
	case totalMatches < RookieThreshold:
		return rankRookie
	case winRate >= 80:
		return rankLegend
	case winRate >= 60:
		return rankDiamond
	case winRate >= 45:
		return rankGold
	default:
		return rankAmateur
	}
}

// RankFor classifies on the unrounded rate.
func RankFor(matches []models.Match) Rank {
	total := len(matches)
	rate := 0.0
	if total > 0 {
		rate = float64(countWins(matches)) / float64(total) * 100
	}
	return ClassifyRank(rate, total)
}

// RecentForm is the first n matches as ordered by the backend (newest first).
func RecentForm(matches []models.Match, n int) []models.Match {
	if n < 0 {
		n = 0
	}
	if n > len(matches) {
		n = len(matches)
	}
	out := make([]models.Match, n)
	copy(out, matches[:n])
	return out
}

func (l *Locale) Filter(matches []models.Match, f MatchFilter) []models.Match {
	query := utils.Fold(strings.TrimSpace(f.Query))
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if f.Year != 0 && m.Date.In(l.Location).Year() != f.Year {
			continue
		}
		if query != "" && !strings.Contains(utils.Fold(m.PlaceName), query) {
			continue
		}
		if f.Result != "" && f.Result != ResultAll && string(m.Result) != string(f.Result) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// GroupByVenue buckets on the case-normalized place name and orders venues by match count.
func GroupByVenue(matches []models.Match) []VenueStats {
	index := map[string]int{}
	groups := []VenueStats{}

	for _, m := range matches {
		key := utils.VenueKey(m.PlaceName)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, VenueStats{Name: key})
		}
		g := &groups[i]
		g.Total++
		g.GoalsFor += m.GoalsFor
		g.GoalsAgainst += m.GoalsAgainst
		if m.Result == models.ResultWon {
			g.Wins++
		}
	}

	for i := range groups {
		groups[i].WinRate = WinRate(groups[i].Wins, groups[i].Total)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})
	return groups
}

// GroupByMonth sorts newest first and buckets by month label, keeping first-seen label order.
func (l *Locale) GroupByMonth(matches []models.Match) []MonthGroup {
	sorted := make([]models.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	index := map[string]int{}
	groups := []MonthGroup{}
	for _, m := range sorted {
		label := l.MonthLabel(m.Date)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, MonthGroup{Label: label})
		}
		g := &groups[i]
		g.Matches = append(g.Matches, m)
		g.Goals += m.GoalsFor
		if m.Result == models.ResultWon {
			g.Wins++
		}
	}
	return groups
}

// RemoveMatch returns matches without id. Other records are copied untouched.
func RemoveMatch(matches []models.Match, id string) []models.Match {
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

type MatchCard struct {
	models.Match
	ResultLetter     string `json:"resultLetter"`
	PerformanceLabel string `json:"performanceLabel"`
	PerformanceIcon  string `json:"performanceIcon"`
	DateLabel        string `json:"dateLabel"`
}

func (l *Locale) Card(m models.Match) MatchCard {
	label, icon := PerformanceLabel(m.Performance)
	return MatchCard{
		Match:            m,
		ResultLetter:     ResultLetter(m.Result),
		PerformanceLabel: label,
		PerformanceIcon:  icon,
		DateLabel:        l.DateLabel(m.Date),
	}
}

func (l *Locale) Cards(matches []models.Match) []MatchCard {
	cards := make([]MatchCard, len(matches))
	for i, m := range matches {
		cards[i] = l.Card(m)
	}
	return cards
}
