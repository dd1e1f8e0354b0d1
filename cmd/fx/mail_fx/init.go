package mail_fx

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"diplomakids/internal/config"
	"diplomakids/internal/services"
)

var Module = fx.Provide(
	provideMailTransport, provideMailService)

func provideMailTransport(cfg *config.Config, log *zap.Logger) (services.MailTransport, error) {
	switch cfg.MailProvider {
	case "ses":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return services.NewSESTransport(ctx, cfg.AWSRegion, cfg.MailFrom, cfg.MailFromName)
	case "smtp":
		return services.NewSMTPTransport(services.SMTPConfig{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Username:   cfg.SMTPUsername,
			Password:   cfg.SMTPPassword,
			From:       cfg.MailFrom,
			FromName:   cfg.MailFromName,
			UseSSL:     cfg.SMTPUseSSL,
			RequireTLS: true,
		}), nil
	case "log", "":
		return services.NewLogTransport(log.Named("mail")), nil
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
	}
}

func provideMailService(cfg *config.Config, transport services.MailTransport, log *zap.Logger) services.IMailService {
	return services.NewMailService(services.MailConfig{
		AppName:    cfg.MailFromName,
		AppBaseURL: cfg.AppBaseURL,
	}, transport, log.Named("mail"))
}
