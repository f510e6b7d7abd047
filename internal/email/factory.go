package email

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lms-auth/internal/config"
)

// NewSender construye el Sender segun MAIL_PROVIDER.
func NewSender(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Sender, error) {
	switch cfg.MailProvider {
	case config.MailProviderSMTP:
		sender, err := NewSMTPSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.MailFromName, cfg.MailUseTLS)
		if err != nil {
			return nil, err
		}
		return sender, nil
	case config.MailProviderSES:
		sender, err := NewSESSender(ctx, cfg.SESRegion, cfg.MailFrom, cfg.MailFromName)
		if err != nil {
			return nil, err
		}
		return sender, nil
	case config.MailProviderLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unsupported mail provider %q", cfg.MailProvider)
	}
}
