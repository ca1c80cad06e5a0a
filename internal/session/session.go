package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/processing"
	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/table"
)

const PreviewRows = 5

var ErrNoTable = errors.New("no table has been uploaded yet")

type Deps struct {
	Analyzers     *sentiment.Analyzers
	Pipeline      *Pipeline
	Exporter      *table.Exporter
	InputEncoding string
}

// Session holds the table of one user. A successful upload replaces the
// table; a failed one leaves the previous table in place.
type Session struct {
	ID uuid.UUID

	deps     Deps
	mu       sync.RWMutex
	current  *table.Table
	lastUsed time.Time
}

type RowFailure struct {
	Row    int    `json:"row"`
	Scorer string `json:"scorer"`
	Error  string `json:"error"`
}

type BatchReport struct {
	TableID string           `json:"table_id"`
	Rows    int              `json:"rows"`
	Columns []string         `json:"columns"`
	Failed  []RowFailure     `json:"failed,omitempty"`
	Preview []map[string]any `json:"preview"`
}

func New(deps Deps) *Session {
	return &Session{ID: uuid.New(), deps: deps, lastUsed: time.Now()}
}

// Upload loads a CSV of reviews, scores it and makes it the current table.
func (s *Session) Upload(ctx context.Context, r io.Reader) (*BatchReport, error) {
	s.touch()

	t, err := table.LoadCSV(r, s.deps.InputEncoding, s.deps.Pipeline.ReviewColumn())
	if err != nil {
		slog.Warn("[Session] Upload rejected",
			slog.String("session", s.ID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	reports, err := s.deps.Pipeline.Run(ctx, t)
	if err != nil {
		slog.Error("[Session] Scoring failed, keeping previous table",
			slog.String("session", s.ID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to score upload: %w", err)
	}

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	report := &BatchReport{
		TableID: t.ID().String(),
		Rows:    t.RowCount(),
		Columns: t.Columns(),
		Preview: t.Head(PreviewRows).Rows(),
	}
	for _, r := range reports {
		for _, f := range r.Failed {
			report.Failed = append(report.Failed, RowFailure{Row: f.Row, Scorer: f.Scorer, Error: f.Err.Error()})
		}
	}

	slog.Info("[Session] Upload analyzed",
		slog.String("session", s.ID.String()),
		slog.Int("rows", report.Rows),
		slog.Int("failed", len(report.Failed)))
	return report, nil
}

// Table returns the current table. Callers must not mutate it.
func (s *Session) Table() (*table.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoTable
	}
	return s.current, nil
}

// Preview returns up to n rows of the current table restricted to columns,
// or every column when none are given. A non-empty label keeps only the rows
// whose compound score classifies as that label.
func (s *Session) Preview(n int, label models.Label, columns ...string) ([]map[string]any, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	if label != "" {
		t = t.Filter(func(row int, t *table.Table) bool {
			cell, err := t.Cell(CompoundScoreColumn, row)
			score, ok := cell.(models.Number)
			return err == nil && ok && sentiment.Classify(float64(score)) == label
		})
	}
	if len(columns) > 0 {
		if t, err = t.Select(columns...); err != nil {
			return nil, err
		}
	}
	return t.Head(n).Rows(), nil
}

// PolarityDistribution counts the polarity values of the current table.
func (s *Session) PolarityDistribution() ([]table.ValueCount, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	polarity, err := t.ExtractField(PolarityColumn, models.PolarityField, nil)
	if err != nil {
		return nil, err
	}
	return table.CountValues(polarity), nil
}

// CompoundDistribution counts the flat compound values of the current table.
func (s *Session) CompoundDistribution() ([]table.ValueCount, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	return t.ValueCounts(CompoundScoreColumn)
}

// Export renders the current table for download.
func (s *Session) Export(ctx context.Context) ([]byte, error) {
	s.touch()
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	return s.deps.Exporter.Export(ctx, t)
}

func (s *Session) LastUsed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUsed
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}
