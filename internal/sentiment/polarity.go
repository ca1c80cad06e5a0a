package sentiment

import (
	"context"
	"fmt"
	"math"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/tsawler/prose/v3"
)

const PolarityScorerName = "textblob_sentiment"

// PolarityScorer produces polarity in [-1,1] and subjectivity in [0,1]. A
// negative precision keeps full float precision.
type PolarityScorer struct {
	analyzer  *prose.SentimentAnalyzer
	precision int
}

func NewPolarityScorer() *PolarityScorer {
	cfg := prose.DefaultSentimentConfig()
	return &PolarityScorer{
		analyzer:  prose.NewSentimentAnalyzer(prose.English, cfg),
		precision: -1,
	}
}

// WithPrecision returns a scorer sharing the same analyzer that rounds both
// values to the given number of decimals.
func (s *PolarityScorer) WithPrecision(decimals int) *PolarityScorer {
	return &PolarityScorer{analyzer: s.analyzer, precision: decimals}
}

func (s *PolarityScorer) Name() string { return PolarityScorerName }

func (s *PolarityScorer) Score(ctx context.Context, record models.Record) (models.ScoreResult, error) {
	return s.Analyze(ctx, record.String())
}

func (s *PolarityScorer) Analyze(ctx context.Context, text string) (models.PolaritySubjectivity, error) {
	plain := Normalize(text)
	if plain == "" {
		return models.PolaritySubjectivity{}, nil
	}

	doc, err := prose.NewDocument(plain,
		prose.WithContext(ctx),
		prose.WithExtraction(false))
	if err != nil {
		return models.PolaritySubjectivity{}, fmt.Errorf("failed to build document: %w", err)
	}

	score := s.analyzer.AnalyzeDocument(doc)
	return models.PolaritySubjectivity{
		Polarity:     s.round(clamp(score.Polarity, -1, 1)),
		Subjectivity: s.round(clamp(score.Subjectivity, 0, 1)),
	}, nil
}

func (s *PolarityScorer) round(v float64) float64 {
	if s.precision < 0 {
		return v
	}
	return Round(v, s.precision)
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
