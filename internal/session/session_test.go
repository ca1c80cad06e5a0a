package session

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/processing"
	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(t *testing.T) Deps {
	t.Helper()
	analyzers, err := sentiment.NewAnalyzers(sentiment.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = analyzers.Close() })

	cache, err := table.NewMemoryCache(8)
	require.NoError(t, err)

	return Deps{
		Analyzers:     analyzers,
		Pipeline:      NewPipeline(analyzers, processing.NewMapper(4), "review"),
		Exporter:      table.NewExporter(cache, "utf-8"),
		InputEncoding: "latin1",
	}
}

func strPtr(s string) *string { return &s }

func TestPipeline_EndToEndWithNulls(t *testing.T) {
	deps := newDeps(t)
	tbl := table.FromRecords("review", models.Records(strPtr("I love this place"), strPtr(""), nil))

	reports, err := deps.Pipeline.Run(context.Background(), tbl)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, []string{"review", PolarityColumn, CompoundColumn, CompoundScoreColumn}, tbl.Columns())

	first, err := tbl.Cell(PolarityColumn, 0)
	require.NoError(t, err)
	assert.Greater(t, first.(models.PolaritySubjectivity).Polarity, 0.0)

	empty, err := tbl.Cell(PolarityColumn, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PolaritySubjectivity{}, empty)

	for _, column := range []string{PolarityColumn, CompoundColumn, CompoundScoreColumn} {
		cell, err := tbl.Cell(column, 2)
		require.NoError(t, err)
		assert.Nil(t, cell, column)
	}

	compound, err := tbl.Cell(CompoundScoreColumn, 1)
	require.NoError(t, err)
	assert.Equal(t, models.Number(0), compound)

	out, err := tbl.ToFlatText("utf-8")
	require.NoError(t, err)
	lines, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, "0", lines[1][0])
	assert.Equal(t, "1", lines[2][0])
	assert.Equal(t, "2", lines[3][0])
}

func TestSession_UploadAndExport(t *testing.T) {
	s := New(newDeps(t))
	ctx := context.Background()

	_, err := s.Export(ctx)
	assert.ErrorIs(t, err, ErrNoTable)

	csvData := "rating,review\n5,I love this place\n1,The fries were cold and the staff was rude\n3,\n"
	report, err := s.Upload(ctx, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Rows)
	assert.Len(t, report.Preview, 3)
	assert.Empty(t, report.Failed)
	assert.Contains(t, report.Columns, CompoundScoreColumn)

	first, err := s.Export(ctx)
	require.NoError(t, err)
	second, err := s.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(string(first), ",rating,review,textblob_sentiment,nltk_sentiment,nltk_compound_sentiment\n0,5,"))

	compound, err := s.CompoundDistribution()
	require.NoError(t, err)
	total := 0
	for _, c := range compound {
		total += c.Count
	}
	assert.Equal(t, 2, total)

	polarity, err := s.PolarityDistribution()
	require.NoError(t, err)
	total = 0
	for _, c := range polarity {
		total += c.Count
	}
	assert.Equal(t, 2, total)

	preview, err := s.Preview(1, "", "review", CompoundScoreColumn)
	require.NoError(t, err)
	require.Len(t, preview, 1)
	assert.Len(t, preview[0], 2)
}

func TestSession_PreviewByLabel(t *testing.T) {
	s := New(newDeps(t))
	_, err := s.Upload(context.Background(),
		strings.NewReader("review\nI love this place\nI hate waiting so long\n\"\"\n"))
	require.NoError(t, err)

	negative, err := s.Preview(10, models.Negative, "review")
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"review": models.Text("I hate waiting so long")}}, negative)

	positive, err := s.Preview(10, models.Positive, "review")
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"review": models.Text("I love this place")}}, positive)

	all, err := s.Preview(10, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSession_FailedUploadKeepsPreviousTable(t *testing.T) {
	s := New(newDeps(t))
	ctx := context.Background()

	_, err := s.Upload(ctx, strings.NewReader("review\ngreat burgers\n"))
	require.NoError(t, err)
	before, err := s.Table()
	require.NoError(t, err)

	_, err = s.Upload(ctx, strings.NewReader("comment\nno review column here\n"))
	var inputErr *table.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.ErrorIs(t, err, table.ErrMissingColumn)

	after, err := s.Table()
	require.NoError(t, err)
	assert.Equal(t, before.ID(), after.ID())
}

func TestSession_CancelledScoringKeepsPreviousTable(t *testing.T) {
	s := New(newDeps(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Upload(ctx, strings.NewReader("review\ngreat burgers\n"))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Table()
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestAnalyzeText_Negative(t *testing.T) {
	deps := newDeps(t)

	report, err := AnalyzeText(context.Background(), deps.Analyzers, "I hate waiting so long")
	require.NoError(t, err)
	assert.LessOrEqual(t, report.Compound, -0.05)
	assert.Equal(t, models.Negative, report.Label)
	assert.Equal(t, "😢", report.Glyph)
	assert.Len(t, report.Emotions, len(models.Emotions))
	assert.Equal(t, "I hate waiting so long", report.Corrected)

	lines := report.Lines()
	assert.Contains(t, lines, "Sentiment: Negative 😢")
	assert.Contains(t, lines, "  Angry: 0.50")
	assert.Equal(t, "Corrected text: I hate waiting so long", lines[len(lines)-1])
}

type stubCorrector struct {
	out string
	err error
}

func (c stubCorrector) Correct(context.Context, string) (string, error) { return c.out, c.err }

func TestAnalyzeText_UsesCorrector(t *testing.T) {
	analyzers, err := sentiment.NewAnalyzers(sentiment.Options{})
	require.NoError(t, err)

	analyzers.Corrector = stubCorrector{out: "The food was delicious"}
	report, err := AnalyzeText(context.Background(), analyzers, "The food was delicous")
	require.NoError(t, err)
	assert.Equal(t, "The food was delicious", report.Corrected)

	analyzers.Corrector = stubCorrector{err: errors.New("model unavailable")}
	_, err = AnalyzeText(context.Background(), analyzers, "The food was delicous")
	assert.ErrorContains(t, err, "spelling: model unavailable")
}

func TestAnalyzeText_Empty(t *testing.T) {
	deps := newDeps(t)
	_, err := AnalyzeText(context.Background(), deps.Analyzers, "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestStore(t *testing.T) {
	st := NewStore(newDeps(t))

	s := st.Create()
	got, ok := st.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Len())

	assert.Zero(t, st.Prune(time.Hour))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, st.Prune(time.Millisecond))
	_, ok = st.Get(s.ID)
	assert.False(t, ok)

	s2 := st.Create()
	st.Delete(s2.ID)
	assert.Zero(t, st.Len())
}
