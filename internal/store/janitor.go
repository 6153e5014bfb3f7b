package store

import (
	"context"
	"log/slog"
	"time"
)

const janitorInterval = 5 * time.Minute

// StartJanitor runs a background goroutine that periodically evicts sessions
// idle for longer than ttl. Completed conversations age out the same way as
// abandoned ones.
func StartJanitor(ctx context.Context, m *Memory, ttl time.Duration) {
	ticker := time.NewTicker(janitorInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("session janitor started", "interval", janitorInterval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				sweep(m, ttl)
			case <-ctx.Done():
				slog.Info("session janitor shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}

func sweep(m *Memory, ttl time.Duration) {
	expired := m.expiredBefore(time.Now().Add(-ttl))
	if len(expired) == 0 {
		return
	}
	for _, id := range expired {
		if err := m.Delete(id); err != nil {
			slog.Error("session janitor failed to delete session", "session_id", id, "error", err)
		}
	}
	slog.Info("session janitor evicted idle sessions", "count", len(expired), "remaining", m.Len())
}
