package table

import (
	"testing"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func reviewTable() *Table {
	return FromRecords("review", models.Records(strPtr("I love this place"), strPtr(""), nil))
}

func TestFromRecords(t *testing.T) {
	tbl := reviewTable()

	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, []string{"review"}, tbl.Columns())

	col, err := tbl.Column("review")
	require.NoError(t, err)
	assert.Equal(t, []models.Value{models.Text("I love this place"), models.Text(""), nil}, col)

	records, err := tbl.Records("review")
	require.NoError(t, err)
	assert.Equal(t, models.NewRecord(""), records[1])
	assert.False(t, records[2].Present)
}

func TestAddColumn(t *testing.T) {
	tbl := reviewTable()
	v0 := tbl.Version()

	err := tbl.AddColumn("short", []models.Value{models.Number(1)})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, v0, tbl.Version())

	require.NoError(t, tbl.AddColumn("n", []models.Value{models.Number(1), models.Number(2), nil}))
	assert.Equal(t, []string{"review", "n"}, tbl.Columns())
	assert.Greater(t, tbl.Version(), v0)

	require.NoError(t, tbl.AddColumn("n", []models.Value{nil, nil, models.Number(3)}))
	assert.Equal(t, []string{"review", "n"}, tbl.Columns())
	cell, err := tbl.Cell("n", 2)
	require.NoError(t, err)
	assert.Equal(t, models.Number(3), cell)
}

func TestAddResults_KeepsNulls(t *testing.T) {
	tbl := reviewTable()
	require.NoError(t, tbl.AddResults("nltk_sentiment", []models.ScoreResult{
		models.CompoundSentiment{Compound: 0.6},
		models.CompoundSentiment{},
		nil,
	}))

	cell, err := tbl.Cell("nltk_sentiment", 2)
	require.NoError(t, err)
	assert.Nil(t, cell)
}

func TestExtractField(t *testing.T) {
	tbl := reviewTable()
	require.NoError(t, tbl.AddResults("nltk_sentiment", []models.ScoreResult{
		models.CompoundSentiment{Compound: 0.6},
		models.CompoundSentiment{Compound: -0.2},
		nil,
	}))

	got, err := tbl.ExtractField("nltk_sentiment", models.CompoundField, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.Value{models.Number(0.6), models.Number(-0.2), nil}, got)

	got, err = tbl.ExtractField("nltk_sentiment", models.CompoundField, models.Number(0))
	require.NoError(t, err)
	assert.Equal(t, models.Number(0), got[2])

	_, err = tbl.ExtractField("nltk_sentiment", models.PolarityField, nil)
	assert.ErrorIs(t, err, models.ErrFieldMismatch)

	_, err = tbl.ExtractField("missing", models.CompoundField, nil)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestValueCounts(t *testing.T) {
	tbl := New(6)
	require.NoError(t, tbl.AddColumn("p", []models.Value{
		models.Number(0.5), models.Number(0), models.Number(0.5), nil, models.Number(-0.25), models.Number(0),
	}))

	counts, err := tbl.ValueCounts("p")
	require.NoError(t, err)
	assert.Equal(t, []ValueCount{
		{Value: "0", Count: 2},
		{Value: "0.5", Count: 2},
		{Value: "-0.25", Count: 1},
	}, counts)

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, 5, total)
}

func TestValueCounts_SumMatchesNonNull(t *testing.T) {
	values := make([]models.Value, 200)
	nonNull := 0
	for i := range values {
		if i%5 == 0 {
			continue
		}
		values[i] = models.Number(float64(i % 7))
		nonNull++
	}

	total := 0
	for _, c := range CountValues(values) {
		total += c.Count
	}
	assert.Equal(t, nonNull, total)
}

func TestFilterHeadSelect(t *testing.T) {
	tbl := reviewTable()
	require.NoError(t, tbl.AddColumn("n", []models.Value{models.Number(1), models.Number(2), models.Number(3)}))

	kept := tbl.Filter(func(row int, t *Table) bool {
		v, _ := t.Cell("review", row)
		return v != nil
	})
	assert.Equal(t, 2, kept.RowCount())
	assert.NotEqual(t, tbl.ID(), kept.ID())
	cell, _ := kept.Cell("n", 1)
	assert.Equal(t, models.Number(2), cell)

	head := tbl.Head(10)
	assert.Equal(t, 3, head.RowCount())
	assert.Equal(t, 1, tbl.Head(1).RowCount())
	assert.Equal(t, 0, tbl.Head(-1).RowCount())

	sel, err := tbl.Select("n")
	require.NoError(t, err)
	assert.Equal(t, []string{"n"}, sel.Columns())
	_, err = tbl.Select("nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestRows(t *testing.T) {
	rows := reviewTable().Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, models.Text("I love this place"), rows[0]["review"])
	assert.Nil(t, rows[2]["review"])
}
