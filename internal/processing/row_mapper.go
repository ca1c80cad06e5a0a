package processing

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/utils"
)

// RowError records a scorer failure for a single row. The row's result is
// left null and the map carries on.
type RowError struct {
	Row    int
	Scorer string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %v", e.Row, e.Scorer, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Report summarizes one Map call.
type Report struct {
	Scorer string
	Rows   int
	Scored int
	Nulls  int
	Failed []*RowError
	// Unreached lists the rows never handed to the scorer because ctx ended.
	Unreached []int
	Elapsed   time.Duration
}

// Mapper applies a scorer to every record using a fixed pool of workers.
type Mapper struct {
	Workers int
}

func NewMapper(workers int) *Mapper {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Mapper{Workers: workers}
}

type rowOutcome struct {
	result models.ScoreResult
	err    *RowError
}

// Map scores every record and returns results in input order, so result[i]
// belongs to records[i]. Null records are not scored and yield a nil result.
// The returned error is only set when ctx ends before every row was scored;
// the rows that were not reached are null.
func (m *Mapper) Map(ctx context.Context, records []models.Record, scorer sentiment.Scorer) ([]models.ScoreResult, Report, error) {
	start := time.Now()
	report := Report{Scorer: scorer.Name(), Rows: len(records)}
	buffer := utils.NewResultBuffer[rowOutcome](len(records))

	workers := m.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(records) {
		workers = len(records)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				buffer.Add(i, scoreRow(ctx, i, records[i], scorer))
			}
		}()
	}

	var ctxErr error
feed:
	for i := range records {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	outcomes := buffer.Ordered()
	results := make([]models.ScoreResult, len(records))
	for i, o := range outcomes {
		results[i] = o.result
		switch {
		case o.err != nil:
			report.Failed = append(report.Failed, o.err)
		case o.result == nil:
			report.Nulls++
		default:
			report.Scored++
		}
	}
	report.Elapsed = time.Since(start)

	if len(report.Failed) > 0 {
		slog.Warn("[RowMapper] Some rows could not be scored",
			slog.String("scorer", report.Scorer),
			slog.Int("failed", len(report.Failed)),
			slog.Int("rows", report.Rows))
	}
	slog.Debug("[RowMapper] Scorer applied",
		slog.String("scorer", report.Scorer),
		slog.Int("rows", report.Rows),
		slog.Int("workers", workers),
		slog.Duration("elapsed", report.Elapsed))

	if ctxErr != nil {
		report.Unreached = buffer.Missing()
		return results, report, fmt.Errorf("mapping %s stopped after %d of %d rows: %w",
			report.Scorer, buffer.Filled(), buffer.Size(), ctxErr)
	}
	return results, report, nil
}

// MapAll applies each scorer in turn and keys the results by scorer name.
func (m *Mapper) MapAll(ctx context.Context, records []models.Record, scorers ...sentiment.Scorer) (map[string][]models.ScoreResult, []Report, error) {
	columns := make(map[string][]models.ScoreResult, len(scorers))
	reports := make([]Report, 0, len(scorers))

	for _, scorer := range scorers {
		results, report, err := m.Map(ctx, records, scorer)
		reports = append(reports, report)
		if err != nil {
			return columns, reports, err
		}
		columns[scorer.Name()] = results
	}
	return columns, reports, nil
}

func scoreRow(ctx context.Context, row int, record models.Record, scorer sentiment.Scorer) (out rowOutcome) {
	if !record.Present {
		return rowOutcome{}
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Warn("[RowMapper] Scorer panicked, row left null",
				slog.Int("row", row),
				slog.String("scorer", scorer.Name()),
				slog.Any("panic", r))
			out = rowOutcome{err: &RowError{Row: row, Scorer: scorer.Name(), Err: fmt.Errorf("panic: %v", r)}}
		}
	}()

	result, err := scorer.Score(ctx, record)
	if err != nil {
		slog.Warn("[RowMapper] Scorer failed, row left null",
			slog.Int("row", row),
			slog.String("scorer", scorer.Name()),
			slog.String("error", err.Error()))
		return rowOutcome{err: &RowError{Row: row, Scorer: scorer.Name(), Err: err}}
	}
	return rowOutcome{result: result}
}
