package achievement_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"diplomakids/internal/repositories"
	"diplomakids/internal/services"
	"diplomakids/pkg/metrics"
)

var Module = fx.Provide(
	provideAchievementRepo, provideAchievementService)

func provideAchievementRepo(db *gorm.DB) repositories.AchievementRepository {
	return repositories.NewAchievementRepository(db)
}

func provideAchievementService(
	achievementRepo repositories.AchievementRepository,
	contributionRepo repositories.ContributionRepository,
	milestoneRepo repositories.MilestoneRepository,
	m *metrics.Metrics,
	log *zap.Logger,
) services.AchievementServiceInterface {
	return services.NewAchievementService(achievementRepo, contributionRepo, milestoneRepo, m, log)
}
