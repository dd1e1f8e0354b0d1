package literacy_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"diplomakids/internal/repositories"
	"diplomakids/internal/services"
)

var Module = fx.Provide(
	provideLiteracyRepo, provideLiteracyService)

func provideLiteracyRepo(db *gorm.DB) repositories.LiteracyRepository {
	return repositories.NewLiteracyRepository(db)
}

func provideLiteracyService(
	literacyRepo repositories.LiteracyRepository,
	childRepo repositories.ChildRepository,
	achievements services.AchievementServiceInterface,
) services.LiteracyServiceInterface {
	return services.NewLiteracyService(literacyRepo, childRepo, achievements)
}
