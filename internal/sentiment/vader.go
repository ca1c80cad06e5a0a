package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
	"github.com/spacesedan/sentilens/internal/models"
)

const CompoundScorerName = "nltk_sentiment"

// CompoundScorer produces the VADER neg/neu/pos/compound breakdown.
type CompoundScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewCompoundScorer() *CompoundScorer {
	return &CompoundScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *CompoundScorer) Name() string { return CompoundScorerName }

func (s *CompoundScorer) Score(_ context.Context, record models.Record) (models.ScoreResult, error) {
	return s.Analyze(record.String()), nil
}

func (s *CompoundScorer) Analyze(text string) models.CompoundSentiment {
	scores := s.analyzer.PolarityScores(Normalize(text))
	return models.CompoundSentiment{
		Neg:      scores.Negative,
		Neu:      scores.Neutral,
		Pos:      scores.Positive,
		Compound: scores.Compound,
	}
}
