package table

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Exporter renders tables to flat text and memoizes the result per table
// identity, table version and encoding.
type Exporter struct {
	cache    ExportCache
	encoding string
}

func NewExporter(cache ExportCache, encoding string) *Exporter {
	if encoding == "" {
		encoding = "utf-8"
	}
	return &Exporter{cache: cache, encoding: encoding}
}

func (e *Exporter) Encoding() string { return e.encoding }

func (e *Exporter) Export(ctx context.Context, t *Table) ([]byte, error) {
	key := ExportKey(t, e.encoding)
	if e.cache != nil {
		if data, ok := e.cache.Get(ctx, key); ok {
			slog.Debug("[Exporter] Serving cached export", slog.String("key", key))
			return data, nil
		}
	}

	data, err := t.ToFlatText(e.encoding)
	if err != nil {
		slog.Error("[Exporter] Export failed",
			slog.String("table", t.ID().String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	if e.cache != nil {
		e.cache.Set(ctx, key, data)
	}
	slog.Info("[Exporter] Table exported",
		slog.String("table", t.ID().String()),
		slog.Int("rows", t.RowCount()),
		slog.Int("bytes", len(data)))
	return data, nil
}

// ExportKey identifies one rendering of one table state.
func ExportKey(t *Table, encoding string) string {
	return fmt.Sprintf("export:%s:%d:%s", t.ID(), t.Version(), strings.ToLower(encoding))
}
