package workers

import (
	"context"
	"time"

	sessionPort "forum/internal/ports/session"

	"go.uber.org/zap"
)

// DefaultSweepInterval is used when no positive interval is configured.
const DefaultSweepInterval = 10 * time.Minute

// SessionSweeper periodically removes expired refresh sessions.
type SessionSweeper struct {
	Sessions sessionPort.Store
	Interval time.Duration
	Logger   *zap.Logger
}

func NewSessionSweeper(sessions sessionPort.Store, interval time.Duration, logger *zap.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionSweeper{
		Sessions: sessions,
		Interval: interval,
		Logger:   logger,
	}
}

// Run sweeps once per interval until ctx is cancelled
func (w *SessionSweeper) Run(ctx context.Context) {
	w.Logger.Info("SessionSweeper started", zap.Duration("interval", w.Interval))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("SessionSweeper stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass and returns how many sessions were removed.
func (w *SessionSweeper) Sweep(ctx context.Context) int {
	removed, err := w.Sessions.DeleteExpired(ctx)
	if err != nil {
		w.Logger.Error("Error deleting expired sessions", zap.Error(err))
		return 0
	}
	if removed > 0 {
		w.Logger.Info("Expired sessions removed", zap.Int("count", removed))
	}
	return removed
}
