package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15 * time.Second

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitorHealth pings the dependency on every tick and stores the outcome in
// healthy until ctx ends. Transitions are logged once.
func MonitorHealth(ctx context.Context, name string, target Pinger, healthy *atomic.Bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			CheckOnce(ctx, name, target, healthy)
		}
	}
}

func CheckOnce(ctx context.Context, name string, target Pinger, healthy *atomic.Bool) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := target.Ping(pingCtx)
	isHealthy := err == nil
	if was := healthy.Swap(isHealthy); was != isHealthy {
		if isHealthy {
			slog.Info("[HealthCheck] Dependency recovered", slog.String("name", name))
		} else {
			slog.Warn("[HealthCheck] Dependency is unhealthy",
				slog.String("name", name),
				slog.String("error", err.Error()))
		}
	}
	return isHealthy
}
