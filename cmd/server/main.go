package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/sentilens/config"
	"github.com/spacesedan/sentilens/internal/clients"
	"github.com/spacesedan/sentilens/internal/handlers"
	"github.com/spacesedan/sentilens/internal/logging"
	"github.com/spacesedan/sentilens/internal/monitoring"
	"github.com/spacesedan/sentilens/internal/processing"
	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/session"
	"github.com/spacesedan/sentilens/internal/table"
)

const (
	sessionIdleTimeout = 2 * time.Hour
	pruneInterval      = 10 * time.Minute
)

func main() {
	config.LoadEnv(config.AppEnv())
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := sentiment.Options{EmotionModelPath: cfg.EmotionModelPath}
	if cfg.OpenAIAPIKey != "" {
		completer, err := clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			slog.Warn("[Main] OpenAI client unavailable, using local spelling correction",
				slog.String("error", err.Error()))
		} else {
			opts.Completer = completer
		}
	}

	analyzers, err := sentiment.NewAnalyzers(opts)
	if err != nil {
		slog.Error("[Main] Failed to load analyzers", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer analyzers.Close()

	cache, err := exportCache(ctx, cfg)
	if err != nil {
		slog.Error("[Main] Failed to build export cache", slog.String("error", err.Error()))
		os.Exit(1)
	}

	exporter := table.NewExporter(cache, cfg.ExportEncoding)
	store := session.NewStore(session.Deps{
		Analyzers:     analyzers,
		Pipeline:      session.NewPipeline(analyzers, processing.NewMapper(cfg.MapperWorkers), cfg.ReviewColumn),
		Exporter:      exporter,
		InputEncoding: cfg.InputEncoding,
	})
	go pruneSessions(ctx, store)

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": store.Len()})
	})
	handlers.New(store, cfg.MaxUploadBytes).Register(r)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		slog.Info("[Main] Starting server",
			slog.String("address", cfg.HTTPAddr),
			slog.String("input_encoding", cfg.InputEncoding),
			slog.String("export_encoding", exporter.Encoding()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// exportCache keeps rendered exports in process memory and, when a valkey
// address is configured, in valkey as a shared second tier.
func exportCache(ctx context.Context, cfg config.Config) (table.ExportCache, error) {
	memory, err := table.NewMemoryCache(cfg.ExportCacheSize)
	if err != nil {
		return nil, err
	}
	if cfg.ValkeyAddress == "" {
		return memory, nil
	}

	vc, err := clients.NewValkeyClient(clients.ValkeyOptions{
		Address:  cfg.ValkeyAddress,
		Password: cfg.ValkeyPassword,
		UseTLS:   cfg.ValkeyTLS,
	})
	if err != nil {
		slog.Warn("[Main] Valkey unavailable, exports cached in memory only",
			slog.String("error", err.Error()))
		return memory, nil
	}
	go func() {
		<-ctx.Done()
		vc.Close()
	}()

	healthy := &atomic.Bool{}
	healthy.Store(true)
	go monitoring.MonitorHealth(ctx, "valkey", vc, healthy, monitoring.HEALTHCHECK_TIMER)

	return table.TieredCache{memory, table.NewRemoteCache(vc, cfg.ValkeyExportTTL, healthy)}, nil
}

func pruneSessions(ctx context.Context, store *session.Store) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Prune(sessionIdleTimeout); n > 0 {
				slog.Info("[Main] Pruned idle sessions", slog.Int("count", n))
			}
		}
	}
}
