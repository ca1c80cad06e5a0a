package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spacesedan/sentilens/config"
	"github.com/spacesedan/sentilens/internal/clients"
	"github.com/spacesedan/sentilens/internal/logging"
	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/session"
)

// textcheck analyzes a single text given as arguments or on stdin.
func main() {
	config.LoadEnv(config.AppEnv())
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	text := strings.Join(os.Args[1:], " ")
	if text == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			slog.Error("[TextCheck] Failed to read stdin", slog.String("error", err.Error()))
			os.Exit(1)
		}
		text = string(raw)
	}

	opts := sentiment.Options{EmotionModelPath: cfg.EmotionModelPath}
	if cfg.OpenAIAPIKey != "" {
		if completer, err := clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel); err == nil {
			opts.Completer = completer
		}
	}
	analyzers, err := sentiment.NewAnalyzers(opts)
	if err != nil {
		slog.Error("[TextCheck] Failed to load analyzers", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer analyzers.Close()

	report, err := session.AnalyzeText(context.Background(), analyzers, text)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, line := range report.Lines() {
		fmt.Println(line)
	}
}
