package session

import (
	"context"
	"fmt"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/processing"
	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/table"
)

const (
	PolarityColumn      = sentiment.PolarityScorerName
	CompoundColumn      = sentiment.CompoundScorerName
	CompoundScoreColumn = "nltk_compound_sentiment"
)

// Pipeline adds the derived sentiment columns to a table of reviews.
type Pipeline struct {
	analyzers    *sentiment.Analyzers
	mapper       *processing.Mapper
	reviewColumn string
}

func NewPipeline(analyzers *sentiment.Analyzers, mapper *processing.Mapper, reviewColumn string) *Pipeline {
	return &Pipeline{analyzers: analyzers, mapper: mapper, reviewColumn: reviewColumn}
}

func (p *Pipeline) ReviewColumn() string { return p.reviewColumn }

// Run scores the review column with every batch scorer and then derives the
// flat compound column. Rows whose structured result is null stay null in the
// flat column too.
func (p *Pipeline) Run(ctx context.Context, t *table.Table) ([]processing.Report, error) {
	records, err := t.Records(p.reviewColumn)
	if err != nil {
		return nil, &table.InputError{
			Reason: fmt.Sprintf("table has no %q column", p.reviewColumn),
			Err:    fmt.Errorf("%w: %w", table.ErrMissingColumn, err),
		}
	}

	scorers := p.analyzers.BatchScorers()
	columns, reports, err := p.mapper.MapAll(ctx, records, scorers...)
	if err != nil {
		return reports, err
	}
	for _, scorer := range scorers {
		if err := t.AddResults(scorer.Name(), columns[scorer.Name()]); err != nil {
			return reports, err
		}
	}

	compound, err := t.ExtractField(CompoundColumn, models.CompoundField, nil)
	if err != nil {
		return reports, err
	}
	if err := t.AddColumn(CompoundScoreColumn, compound); err != nil {
		return reports, err
	}
	return reports, nil
}
