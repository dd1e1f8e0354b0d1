package controllers_fx

import (
	"go.uber.org/fx"

	"diplomakids/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewHealthController),
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewFamilyController),
	fx.Provide(controllers.NewChildController),
	fx.Provide(controllers.NewContributionController),
	fx.Provide(controllers.NewFeedController),
	fx.Provide(controllers.NewGoalController),
	fx.Provide(controllers.NewAnalyticsController),
	fx.Provide(controllers.NewLiteracyController),
	fx.Provide(controllers.NewNotificationController),
	fx.Provide(controllers.NewWebhookController))
