package notification_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"diplomakids/internal/repositories"
	"diplomakids/internal/services"
)

var Module = fx.Provide(
	provideNotificationRepo, provideNotificationService)

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepository {
	return repositories.NewNotificationRepository(db)
}

func provideNotificationService(
	notificationRepo repositories.NotificationRepository,
	contributionRepo repositories.ContributionRepository,
	mail services.IMailService,
	log *zap.Logger,
) services.NotificationServiceInterface {
	return services.NewNotificationService(notificationRepo, contributionRepo, mail, log)
}
