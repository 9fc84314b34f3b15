package core

// scheduler.go runs background maintenance for the session store.
//
// The sweeper is long-running and context-aware for graceful shutdown. It
// logs what it evicts but never fails the application.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often expired sessions are evicted.
const DefaultSweepInterval = 5 * time.Minute

// StartSessionSweeper evicts expired sessions every interval until ctx is
// cancelled. It blocks; run it in its own goroutine.
func (st *SessionStore) StartSessionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	slog.Info("session sweeper started",
		"interval", interval.String(),
		"ttl", st.ttl.String(),
		"max_sessions", st.max,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			st.runSweep()
		}
	}
}

// runSweep performs one eviction cycle.
func (st *SessionStore) runSweep() {
	start := time.Now()
	removed := st.Sweep()

	if removed > 0 {
		slog.Info("expired sessions evicted",
			"sessions_evicted", removed,
			"sessions_live", st.Len(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return
	}
	slog.Debug("session sweep found nothing to evict", "sessions_live", st.Len())
}
