package feed_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"diplomakids/internal/repositories"
	"diplomakids/internal/services"
)

var Module = fx.Provide(
	provideMilestoneRepo, provideFeedService)

func provideMilestoneRepo(db *gorm.DB) repositories.MilestoneRepository {
	return repositories.NewMilestoneRepository(db)
}

func provideFeedService(
	milestoneRepo repositories.MilestoneRepository,
	connectionRepo repositories.ConnectionRepository,
	childRepo repositories.ChildRepository,
) services.FeedServiceInterface {
	return services.NewFeedService(milestoneRepo, connectionRepo, childRepo)
}
