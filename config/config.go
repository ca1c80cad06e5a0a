package config

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	LogLevel slog.Level
	HTTPAddr string

	ReviewColumn   string
	InputEncoding  string
	ExportEncoding string
	MapperWorkers  int
	MaxUploadBytes int64

	ExportCacheSize int
	ValkeyAddress   string
	ValkeyPassword  string
	ValkeyTLS       bool
	ValkeyExportTTL time.Duration

	OpenAIAPIKey string
	OpenAIModel  string

	EmotionModelPath string
}

// Load reads the typed configuration from the environment. Call LoadEnv first
// to pull in the env file.
func Load() Config {
	return Config{
		Env:      AppEnv(),
		LogLevel: parseLevel(os.Getenv("LOG_LEVEL")),
		HTTPAddr: stringOr("HTTP_ADDR", ":8080"),

		ReviewColumn:   stringOr("REVIEW_COLUMN", "review"),
		InputEncoding:  stringOr("INPUT_ENCODING", "latin1"),
		ExportEncoding: stringOr("EXPORT_ENCODING", "utf-8"),
		MapperWorkers:  intOr("MAPPER_WORKERS", runtime.NumCPU()),
		MaxUploadBytes: int64(intOr("MAX_UPLOAD_BYTES", 32<<20)),

		ExportCacheSize: intOr("EXPORT_CACHE_SIZE", 32),
		ValkeyAddress:   os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword:  os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:       os.Getenv("VALKEY_TLS") == "true",
		ValkeyExportTTL: time.Duration(intOr("VALKEY_EXPORT_TTL", 3600)) * time.Second,

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  stringOr("OPENAI_MODEL", "gpt-4o-mini"),

		EmotionModelPath: os.Getenv("EMOTION_MODEL_PATH"),
	}
}

func stringOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intOr(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("[Config] Invalid integer, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Int("default", def))
		return def
	}
	return v
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if raw == "" {
		return slog.LevelInfo
	}
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		slog.Warn("[Config] Unknown LOG_LEVEL, using info", slog.String("value", raw))
		return slog.LevelInfo
	}
	return level
}
