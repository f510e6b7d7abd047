package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type otpPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// RunOTPJanitor borra OTPs vencidos cada interval hasta que ctx se cancela.
// Con interval <= 0 no hace nada.
func RunOTPJanitor(ctx context.Context, logger *zap.Logger, otps otpPurger, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := otps.PurgeExpired(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("otp purge failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				logger.Info("expired otps purged", zap.Int64("count", purged))
			}
		}
	}
}
