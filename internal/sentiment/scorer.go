package sentiment

import (
	"context"

	"github.com/spacesedan/sentilens/internal/models"
)

// Scorer wraps one external model behind a uniform contract. Implementations
// must be safe for concurrent use and must not fail on empty text.
type Scorer interface {
	Name() string
	Score(ctx context.Context, record models.Record) (models.ScoreResult, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc struct {
	ScorerName string
	Fn         func(ctx context.Context, record models.Record) (models.ScoreResult, error)
}

func (f ScorerFunc) Name() string { return f.ScorerName }

func (f ScorerFunc) Score(ctx context.Context, record models.Record) (models.ScoreResult, error) {
	return f.Fn(ctx, record)
}
