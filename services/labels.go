// services/labels.go
package services

import (
	"fmt"
	"time"

	"match-tracker/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedLocales = []language.Tag{language.English, language.Spanish}

var monthNames = [][12]string{
	{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"},
	{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Locale formats view labels (month headers, decimals) for one language and time zone.
// Casers and printers are built per call since neither is safe for concurrent use.
type Locale struct {
	Tag      language.Tag
	Location *time.Location

	months [12]string
}

// NewLocale picks the closest supported language to name; unknown names fall back to English.
func NewLocale(name string, loc *time.Location) *Locale {
	if loc == nil {
		loc = time.Local
	}
	_, idx, _ := localeMatcher.Match(language.Make(name))
	tag := supportedLocales[idx]

	return &Locale{
		Tag:      tag,
		Location: loc,
		months:   monthNames[idx],
	}
}

// MonthLabel renders "October 2026" / "Octubre 2026" in the locale's time zone.
func (l *Locale) MonthLabel(t time.Time) string {
	t = t.In(l.Location)
	return fmt.Sprintf("%s %d", cases.Title(l.Tag).String(l.months[t.Month()-1]), t.Year())
}

// Decimal formats v with one fractional digit using the locale's separator.
func (l *Locale) Decimal(v float64) string {
	return message.NewPrinter(l.Tag).Sprintf("%.1f", v)
}

func (l *Locale) DateLabel(t time.Time) string {
	return t.In(l.Location).Format("2006-01-02 15:04")
}

type performanceLabel struct {
	Label string
	Icon  string
}

var performanceLabels = map[models.Performance]performanceLabel{
	models.PerformanceVeryBad:  {"Horrible", "😫"},
	models.PerformanceBad:      {"Bad", "😕"},
	models.PerformanceNeutral:  {"Normal", "😐"},
	models.PerformanceGood:     {"Good", "🙂"},
	models.PerformanceVeryGood: {"MVP", "🤩"},
}

// PerformanceLabel never fails: unknown or empty ratings render as neutral.
func PerformanceLabel(p models.Performance) (label, icon string) {
	pl, ok := performanceLabels[p]
	if !ok {
		pl = performanceLabels[models.PerformanceNeutral]
	}
	return pl.Label, pl.Icon
}

// ResultLetter is the badge shown on a match card.
func ResultLetter(r models.MatchResult) string {
	switch r {
	case models.ResultWon:
		return "W"
	case models.ResultLost:
		return "L"
	default:
		return "D"
	}
}
