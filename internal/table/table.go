package table

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spacesedan/sentilens/internal/models"
)

// Table is an ordered set of rows with named columns. Rows have no identity
// beyond their position. A Table is not safe for concurrent mutation.
type Table struct {
	id      uuid.UUID
	version uint64
	rows    int
	columns []string
	cells   map[string][]models.Value
}

// ValueCount is one bucket of ValueCounts.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func New(rows int) *Table {
	return &Table{
		id:    uuid.New(),
		rows:  rows,
		cells: make(map[string][]models.Value),
	}
}

// FromRecords builds a one-column table of text records.
func FromRecords(column string, records []models.Record) *Table {
	t := New(len(records))
	values := make([]models.Value, len(records))
	for i, r := range records {
		if r.Present {
			values[i] = models.Text(r.Text)
		}
	}
	t.columns = []string{column}
	t.cells[column] = values
	return t
}

func (t *Table) ID() uuid.UUID { return t.id }

// Version changes every time a column is added or replaced.
func (t *Table) Version() uint64 { return t.version }

func (t *Table) RowCount() int { return t.rows }

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.cells[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]models.Value, error) {
	values, ok := t.cells[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownColumn)
	}
	return append([]models.Value(nil), values...), nil
}

// Records turns a column into scorer input. Null cells become null records,
// non-text cells are coerced through their display form.
func (t *Table) Records(name string) ([]models.Record, error) {
	values, ok := t.cells[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownColumn)
	}

	records := make([]models.Record, len(values))
	for i, v := range values {
		if v != nil {
			records[i] = models.NewRecord(v.Format())
		}
	}
	return records, nil
}

// AddColumn appends the column, or replaces it in place when the name exists.
func (t *Table) AddColumn(name string, values []models.Value) error {
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d values for %d rows: %w", name, len(values), t.rows, ErrLengthMismatch)
	}
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
	t.cells[name] = append([]models.Value(nil), values...)
	t.version++
	return nil
}

// AddResults stores scorer output as a column, keeping nil results null.
func (t *Table) AddResults(name string, results []models.ScoreResult) error {
	values := make([]models.Value, len(results))
	for i, r := range results {
		if r != nil {
			values[i] = r
		}
	}
	return t.AddColumn(name, values)
}

// ExtractField projects one field of a structured column into a flat one.
// Null cells yield def.
func (t *Table) ExtractField(column string, field models.Field, def models.Value) ([]models.Value, error) {
	values, ok := t.cells[column]
	if !ok {
		return nil, fmt.Errorf("%q: %w", column, ErrUnknownColumn)
	}

	out := make([]models.Value, len(values))
	for i, v := range values {
		projected, err := field.Extract(v, def)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", column, i, err)
		}
		out[i] = projected
	}
	return out, nil
}

// ValueCounts counts the distinct non-null values of a column, most frequent
// first and ties by value.
func (t *Table) ValueCounts(column string) ([]ValueCount, error) {
	values, ok := t.cells[column]
	if !ok {
		return nil, fmt.Errorf("%q: %w", column, ErrUnknownColumn)
	}
	return CountValues(values), nil
}

func CountValues(values []models.Value) []ValueCount {
	counts := make(map[string]int)
	for _, v := range values {
		if v == nil {
			continue
		}
		counts[v.Format()]++
	}

	out := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		out = append(out, ValueCount{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Cell returns the value at row i of a column.
func (t *Table) Cell(column string, row int) (models.Value, error) {
	values, ok := t.cells[column]
	if !ok {
		return nil, fmt.Errorf("%q: %w", column, ErrUnknownColumn)
	}
	if row < 0 || row >= t.rows {
		return nil, fmt.Errorf("row %d out of range [0,%d)", row, t.rows)
	}
	return values[row], nil
}

// Filter returns a new table with the rows for which keep returns true. Row
// positions of the result are renumbered from zero.
func (t *Table) Filter(keep func(row int, t *Table) bool) *Table {
	var selected []int
	for i := 0; i < t.rows; i++ {
		if keep(i, t) {
			selected = append(selected, i)
		}
	}
	return t.take(selected)
}

// Head returns the first n rows as a new table.
func (t *Table) Head(n int) *Table {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	selected := make([]int, n)
	for i := range selected {
		selected[i] = i
	}
	return t.take(selected)
}

// Select returns a new table with only the given columns, in the given order.
func (t *Table) Select(columns ...string) (*Table, error) {
	out := New(t.rows)
	for _, name := range columns {
		values, ok := t.cells[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownColumn)
		}
		out.columns = append(out.columns, name)
		out.cells[name] = append([]models.Value(nil), values...)
	}
	return out, nil
}

// Rows returns the table as display maps keyed by column name, null cells as
// nil.
func (t *Table) Rows() []map[string]any {
	out := make([]map[string]any, t.rows)
	for i := range out {
		row := make(map[string]any, len(t.columns))
		for _, name := range t.columns {
			row[name] = t.cells[name][i]
		}
		out[i] = row
	}
	return out
}

func (t *Table) take(rows []int) *Table {
	out := New(len(rows))
	out.columns = t.Columns()
	for _, name := range t.columns {
		src := t.cells[name]
		dst := make([]models.Value, len(rows))
		for i, r := range rows {
			dst[i] = src[r]
		}
		out.cells[name] = dst
	}
	return out
}
