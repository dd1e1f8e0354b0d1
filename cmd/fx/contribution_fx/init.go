package contribution_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"diplomakids/internal/config"
	"diplomakids/internal/repositories"
	"diplomakids/internal/services"
)

var Module = fx.Provide(
	provideContributionRepo,
	provideContributionService)

func provideContributionRepo(db *gorm.DB) repositories.ContributionRepository {
	return repositories.NewContributionRepository(db)
}

func provideContributionService(
	cfg *config.Config,
	contributionRepo repositories.ContributionRepository,
	childRepo repositories.ChildRepository,
	gateway services.PaymentGateway,
	log *zap.Logger,
) services.ContributionServiceInterface {
	return services.NewContributionService(services.ContributionConfig{
		StorageBaseURL: cfg.StorageBaseURL,
		UploadMaxBytes: cfg.UploadMaxBytes,
	}, contributionRepo, childRepo, gateway, log)
}
