package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/spacesedan/sentilens/internal/models"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadCSV decodes a CSV upload into a table. The first line is the header.
// Empty cells are loaded as nulls. Every name in required must be present.
func LoadCSV(r io.Reader, encodingName string, required ...string) (*Table, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, &InputError{Reason: "cannot read upload", Err: err}
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &InputError{Reason: "cannot read upload", Err: err}
	}
	if enc == unicode.UTF8 {
		if !utf8.Valid(raw) {
			return nil, &InputError{
				Reason: fmt.Sprintf("upload is not valid %s text", encodingName),
				Err:    ErrInvalidText,
			}
		}
	} else if raw, err = enc.NewDecoder().Bytes(raw); err != nil {
		return nil, &InputError{Reason: fmt.Sprintf("upload is not valid %s text", encodingName), Err: err}
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &InputError{Reason: "upload is empty"}
	}
	if err != nil {
		return nil, &InputError{Reason: "upload is not valid CSV", Err: err}
	}
	columns := headerNames(header)

	for _, name := range required {
		if !contains(columns, name) {
			return nil, &InputError{
				Reason: fmt.Sprintf("upload has no %q column (found: %s)", name, strings.Join(columns, ", ")),
				Err:    fmt.Errorf("%q: %w", name, ErrMissingColumn),
			}
		}
	}

	cells := make([][]models.Value, len(columns))
	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &InputError{Reason: "upload is not valid CSV", Err: err}
		}
		if len(record) > len(columns) {
			line, _ := reader.FieldPos(0)
			return nil, &InputError{
				Reason: fmt.Sprintf("line %d has %d fields, header has %d", line, len(record), len(columns)),
			}
		}

		for c := range columns {
			var v models.Value
			if c < len(record) && record[c] != "" {
				v = models.Text(record[c])
			}
			cells[c] = append(cells[c], v)
		}
		rows++
	}

	t := New(rows)
	for c, name := range columns {
		t.columns = append(t.columns, name)
		values := cells[c]
		if values == nil {
			values = []models.Value{}
		}
		t.cells[name] = values
	}

	slog.Info("[Table] CSV loaded",
		slog.Int("rows", rows),
		slog.Int("columns", len(columns)),
		slog.String("encoding", encodingName))

	return t, nil
}

// headerNames fills blank names and disambiguates repeated ones so every
// column can be addressed by name. A generated suffix never reuses a name
// that appears anywhere in the header.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		if names[i] == "" {
			names[i] = fmt.Sprintf("Unnamed: %d", i)
		}
		taken[names[i]] = true
	}

	used := make(map[string]bool, len(header))
	next := make(map[string]int, len(header))
	for i, name := range names {
		if used[name] {
			candidate := name
			for n := next[name] + 1; ; n++ {
				candidate = fmt.Sprintf("%s.%d", name, n)
				if !taken[candidate] && !used[candidate] {
					next[name] = n
					break
				}
			}
			names[i] = candidate
		}
		used[names[i]] = true
	}
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
