package payment_service_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"diplomakids/internal/config"
	"diplomakids/internal/repositories"
	"diplomakids/internal/services"
	"diplomakids/pkg/metrics"
)

var Module = fx.Provide(
	providePaymentGateway, provideWebhookService,
)

func providePaymentGateway(cfg *config.Config) (services.PaymentGateway, error) {
	return services.NewStripeGateway(services.StripeConfig{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		Currency:      cfg.Currency,
	})
}

func provideWebhookService(
	gateway services.PaymentGateway,
	contributionRepo repositories.ContributionRepository,
	m *metrics.Metrics,
	log *zap.Logger,
) services.WebhookServiceInterface {
	return services.NewWebhookService(gateway, contributionRepo, m, log.Named("stripe"))
}
