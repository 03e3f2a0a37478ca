package service

import (
	"context"
	"log/slog"
	"time"

	"thalanet/internal/middleware"
)

// StartSweeper runs SweepExpired on the given interval until ctx is
// cancelled. Reads stay correct without it; the sweeper only keeps stored
// statuses from drifting behind the clock indefinitely.
func (s *RequestService) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	middleware.Logger.Info("expiry sweeper started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			middleware.Logger.Info("expiry sweeper stopped")
			return
		case <-ticker.C:
			count, err := s.SweepExpired(ctx)
			if err != nil {
				middleware.Logger.Error("expiry sweep failed", slog.String("error", err.Error()))
				continue
			}
			if count > 0 {
				middleware.Logger.Info("expired requests swept", slog.Int64("count", count))
			}
		}
	}
}
