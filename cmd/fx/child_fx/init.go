package child_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"diplomakids/internal/config"
	"diplomakids/internal/repositories"
	"diplomakids/internal/services"
)

var Module = fx.Provide(
	provideChildRepo,
	provideChildService,
	provideGoalRepo,
	provideGoalService,
	provideGiftRegistryRepo,
	provideGiftRegistryService)

func provideChildRepo(db *gorm.DB) repositories.ChildRepository {
	return repositories.NewChildRepository(db)
}

func provideChildService(childRepo repositories.ChildRepository) services.ChildServiceInterface {
	return services.NewChildService(childRepo)
}

func provideGoalRepo(db *gorm.DB) repositories.GoalRepository {
	return repositories.NewGoalRepository(db)
}

func provideGoalService(goalRepo repositories.GoalRepository, childRepo repositories.ChildRepository) services.GoalServiceInterface {
	return services.NewGoalService(goalRepo, childRepo)
}

func provideGiftRegistryRepo(db *gorm.DB) repositories.GiftRegistryRepository {
	return repositories.NewGiftRegistryRepository(db)
}

func provideGiftRegistryService(cfg *config.Config, registryRepo repositories.GiftRegistryRepository, childRepo repositories.ChildRepository) services.GiftRegistryServiceInterface {
	return services.NewGiftRegistryService(cfg.AppBaseURL, registryRepo, childRepo)
}
