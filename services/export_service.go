// services/export_service.go
package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"match-tracker/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrExportDisabled = errors.New("export storage is not configured")

// ObjectUploader is implemented by utils.R2Uploader.
type ObjectUploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type ExportResult struct {
	Key     string `json:"key"`
	URL     string `json:"url"`
	Matches int    `json:"matches"`
}

type ExportService struct {
	Matches  *MatchService
	Session  *SessionStore
	Uploader ObjectUploader
	Locale   *Locale
	Now      func() time.Time
}

func NewExportService(matches *MatchService, session *SessionStore, uploader ObjectUploader, locale *Locale) *ExportService {
	return &ExportService{
		Matches:  matches,
		Session:  session,
		Uploader: uploader,
		Locale:   locale,
		Now:      time.Now,
	}
}

// ExportHistory uploads the full match history as CSV.
func (s *ExportService) ExportHistory(ctx context.Context) (*ExportResult, error) {
	if s.Uploader == nil {
		return nil, ErrExportDisabled
	}
	sess := s.Session.Session()
	if !sess.IsAuthenticated || sess.User == nil {
		return nil, ErrNotAuthenticated
	}

	matches, err := s.Matches.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for export: %w", err)
	}

	data, err := s.Locale.HistoryCSV(matches)
	if err != nil {
		return nil, err
	}

	key := ExportKey(*sess.User, s.Now(), uuid.NewString())
	link, err := s.Uploader.Upload(ctx, key, "text/csv", data)
	if err != nil {
		return nil, err
	}

	log.Printf("[EXPORT] uploaded %d matches to %s", len(matches), key)
	return &ExportResult{Key: key, URL: link, Matches: len(matches)}, nil
}

// ExportKey names the object: exports/<userId>/<username-slug>-<yyyymmdd>-<id>.csv.
func ExportKey(user models.User, at time.Time, id string) string {
	name := slug.Make(user.Username)
	if name == "" {
		name = "history"
	}
	return fmt.Sprintf("exports/%s/%s-%s-%s.csv", url.PathEscape(user.ID), name, at.UTC().Format("20060102"), id)
}

var historyHeader = []string{
	"date", "place", "court", "category", "goals_for", "goals_against", "result", "performance", "notes",
}

func (l *Locale) HistoryCSV(matches []models.Match) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	if err := w.Write(historyHeader); err != nil {
		return nil, err
	}
	for _, m := range matches {
		perf, _ := PerformanceLabel(m.Performance)
		row := []string{
			l.DateLabel(m.Date),
			m.PlaceName,
			string(m.CourtType),
			string(m.Category),
			strconv.Itoa(m.GoalsFor),
			strconv.Itoa(m.GoalsAgainst),
			string(m.Result),
			perf,
			m.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}
