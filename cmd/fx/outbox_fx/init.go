package outbox_fx

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"diplomakids/internal/config"
	"diplomakids/internal/repositories"
	"diplomakids/internal/services"
	"diplomakids/pkg/metrics"
)

var Module = fx.Options(
	fx.Provide(provideOutboxRepo, provideOutboxWorker),
	fx.Invoke(registerHandlers, scheduleWorker),
)

func provideOutboxRepo(db *gorm.DB) repositories.OutboxRepository {
	return repositories.NewOutboxRepository(db)
}

func provideOutboxWorker(repo repositories.OutboxRepository, cfg *config.Config, m *metrics.Metrics, log *zap.Logger) services.OutboxWorker {
	return services.NewOutboxWorker(repo, services.OutboxConfig{
		BatchSize:   cfg.OutboxBatchSize,
		MaxAttempts: cfg.OutboxMaxAttempts,
	}, m, log.Named("outbox"))
}

func registerHandlers(
	worker services.OutboxWorker,
	notifications services.NotificationServiceInterface,
	achievements services.AchievementServiceInterface,
	mail services.IMailService,
) {
	worker.Register(services.TaskContributionNotify, services.ContributionNotifyHandler(notifications))
	worker.Register(services.TaskContributionAchievements, services.ContributionAchievementsHandler(achievements))
	worker.Register(services.TaskMilestoneAchievements, services.MilestoneAchievementsHandler(achievements))
	worker.Register(services.TaskWelcomeEmail, services.WelcomeEmailHandler(mail))
	worker.Register(services.TaskThankYouEmail, services.ThankYouEmailHandler(mail))
}

func scheduleWorker(c *cron.Cron, cfg *config.Config, worker services.OutboxWorker, log *zap.Logger) error {
	_, err := c.AddFunc(cfg.OutboxSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := worker.RunOnce(ctx); err != nil {
			log.Error("outbox run failed", zap.Error(err))
		}
	})
	return err
}
