// Package worker runs the background loops of the process.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sitiket/tiketops/internal/service"
)

// StartAlertWorker sweeps the live tickets on a fixed interval until
// ctx is canceled. The first sweep runs immediately.
func StartAlertWorker(ctx context.Context, alerts *service.AlertService, interval time.Duration, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if err := alerts.Scan(ctx); err != nil {
			logger.Error("alert scan failed", zap.Error(err))
		}
		for {
			select {
			case <-ctx.Done():
				logger.Info("alert worker stopped")
				return
			case <-ticker.C:
				if err := alerts.Scan(ctx); err != nil {
					logger.Error("alert scan failed", zap.Error(err))
				}
			}
		}
	}()
}
