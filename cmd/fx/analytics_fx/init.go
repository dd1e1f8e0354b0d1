package analytics_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"diplomakids/internal/repositories"
	"diplomakids/internal/services"
)

var Module = fx.Provide(
	provideAnalyticsRepo, provideAnalyticsService)

func provideAnalyticsRepo(db *gorm.DB) repositories.AnalyticsRepository {
	return repositories.NewAnalyticsRepository(db)
}

func provideAnalyticsService(
	childRepo repositories.ChildRepository,
	contributionRepo repositories.ContributionRepository,
	analyticsRepo repositories.AnalyticsRepository,
) services.AnalyticsServiceInterface {
	return services.NewAnalyticsService(childRepo, contributionRepo, analyticsRepo)
}
