package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/sentilens/config"
	"github.com/spacesedan/sentilens/internal/logging"
	"github.com/spacesedan/sentilens/internal/processing"
	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/session"
	"github.com/spacesedan/sentilens/internal/table"
)

func main() {
	config.LoadEnv(config.AppEnv())
	cfg := config.Load()

	in := flag.String("in", "", "CSV file of reviews to analyze")
	out := flag.String("out", table.ExportFileName, "where to write the analyzed table")
	column := flag.String("column", cfg.ReviewColumn, "column holding the review text")
	encoding := flag.String("encoding", cfg.InputEncoding, "character encoding of the input file")
	flag.Parse()

	logging.InitLogger(cfg.LogLevel)

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -in reviews.csv [-out analyzed_reviews.csv]")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *in, *out, *column, *encoding); err != nil {
		slog.Error("[Analyze] Failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, in, out, column, encoding string) error {
	analyzers, err := sentiment.NewAnalyzers(sentiment.Options{EmotionModelPath: cfg.EmotionModelPath})
	if err != nil {
		return err
	}
	defer analyzers.Close()

	cache, err := table.NewMemoryCache(1)
	if err != nil {
		return err
	}
	exporter := table.NewExporter(cache, cfg.ExportEncoding)
	s := session.New(session.Deps{
		Analyzers:     analyzers,
		Pipeline:      session.NewPipeline(analyzers, processing.NewMapper(cfg.MapperWorkers), column),
		Exporter:      exporter,
		InputEncoding: encoding,
	})

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	report, err := s.Upload(ctx, f)
	if err != nil {
		return err
	}
	for _, failure := range report.Failed {
		slog.Warn("[Analyze] Row left unscored",
			slog.Int("row", failure.Row),
			slog.String("scorer", failure.Scorer),
			slog.String("error", failure.Error))
	}

	for name, distribution := range map[string]func() ([]table.ValueCount, error){
		session.PolarityColumn:      s.PolarityDistribution,
		session.CompoundScoreColumn: s.CompoundDistribution,
	} {
		counts, err := distribution()
		if err != nil {
			return err
		}
		slog.Info("[Analyze] Distribution",
			slog.String("column", name),
			slog.Int("distinct", len(counts)),
			slog.Any("top", head(counts, 5)))
	}

	data, err := s.Export(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	slog.Info("[Analyze] Wrote analyzed table",
		slog.String("path", out),
		slog.String("encoding", exporter.Encoding()),
		slog.Int("rows", report.Rows))
	return nil
}

func head(counts []table.ValueCount, n int) []table.ValueCount {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}
