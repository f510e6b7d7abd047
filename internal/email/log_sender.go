package email

import (
	"context"

	"go.uber.org/zap"
)

// LogSender no entrega correos: los registra para desarrollo local.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, subject, htmlBody string) error {
	s.logger.Info("email sent (log provider)",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	s.logger.Debug("email body", zap.String("html", htmlBody))
	return nil
}
