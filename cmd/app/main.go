package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"diplomakids/cmd/fx/account_fx"
	"diplomakids/cmd/fx/achievement_fx"
	"diplomakids/cmd/fx/analytics_fx"
	"diplomakids/cmd/fx/child_fx"
	"diplomakids/cmd/fx/config_fx"
	"diplomakids/cmd/fx/contribution_fx"
	"diplomakids/cmd/fx/controllers_fx"
	"diplomakids/cmd/fx/db_fx"
	"diplomakids/cmd/fx/feed_fx"
	"diplomakids/cmd/fx/literacy_fx"
	"diplomakids/cmd/fx/mail_fx"
	"diplomakids/cmd/fx/memcache_fx"
	"diplomakids/cmd/fx/notification_fx"
	"diplomakids/cmd/fx/observability_fx"
	"diplomakids/cmd/fx/outbox_fx"
	"diplomakids/cmd/fx/payment_service_fx"
	"diplomakids/cmd/fx/scheduler_fx"
	"diplomakids/internal/api/controllers"
	"diplomakids/internal/config"
	mem "diplomakids/pkg/memcache"
	"diplomakids/pkg/metrics"
	"diplomakids/pkg/middleware"
	"diplomakids/pkg/utils"
)

// @title DiplomaKids API
// @version 1.0.0
// @description Family college savings, contributions and social feed.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		config_fx.Module,
		observability_fx.Module,
		db_fx.Module,
		scheduler_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		payment_service_fx.Module,
		account_fx.Module,
		child_fx.Module,
		contribution_fx.Module,
		feed_fx.Module,
		achievement_fx.Module,
		analytics_fx.Module,
		literacy_fx.Module,
		notification_fx.Module,
		outbox_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type routerParams struct {
	fx.In

	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Issuer  *utils.TokenIssuer
	Limiter mem.LimiterStore

	Health       *controllers.HealthController
	Auth         *controllers.AuthController
	Family       *controllers.FamilyController
	Child        *controllers.ChildController
	Contribution *controllers.ContributionController
	Feed         *controllers.FeedController
	Goal         *controllers.GoalController
	Analytics    *controllers.AnalyticsController
	Literacy     *controllers.LiteracyController
	Notification *controllers.NotificationController
	Webhook      *controllers.WebhookController
}

func ProvideRouter(p routerParams) *gin.Engine {
	if !p.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(middleware.Metrics(p.Metrics))
	r.Use(middleware.CORSMiddleware(p.Config.CORSOrigins))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	r.GET("/", p.Health.Root)
	r.GET("/health", p.Health.Health)
	r.GET("/metrics", p.Health.Metrics)

	auth := middleware.JWTAuthMiddleware(p.Issuer)
	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth", middleware.RateLimit(p.Limiter, p.Log))
	authGroup.POST("/register", p.Auth.Register)
	authGroup.POST("/login", p.Auth.Login)

	familyGroup := v1.Group("/families", auth)
	familyGroup.GET("/profile", p.Family.GetProfile)
	familyGroup.PUT("/profile", p.Family.UpdateProfile)

	connectionGroup := v1.Group("/connections", auth)
	connectionGroup.POST("", p.Family.Connect)
	connectionGroup.GET("", p.Family.ListConnections)

	childGroup := v1.Group("/children", auth)
	childGroup.POST("", p.Child.CreateChild)
	childGroup.GET("", p.Child.ListChildren)
	childGroup.GET("/:id", p.Child.GetChild)
	childGroup.PUT("/:id", p.Child.UpdateChild)

	contributionGroup := v1.Group("/contributions")
	contributionGroup.POST("", p.Contribution.CreateContribution)
	contributionGroup.GET("/child/:id", p.Contribution.ListByChild)
	contributionGroup.POST("/thank-you/:id", auth, p.Contribution.UploadThankYou)

	milestoneGroup := v1.Group("/milestones")
	milestoneGroup.POST("", auth, p.Feed.CreateMilestone)
	milestoneGroup.POST("/:id/like", auth, p.Feed.ToggleLike)
	milestoneGroup.POST("/:id/comment", auth, p.Feed.Comment)
	milestoneGroup.GET("/:id/comments", p.Feed.ListComments)

	v1.GET("/feed", auth, p.Feed.GetFeed)

	goalGroup := v1.Group("/goals")
	goalGroup.POST("", auth, p.Goal.CreateGoal)
	goalGroup.GET("/child/:id", p.Goal.ListGoals)

	registryGroup := v1.Group("/gift-registry")
	registryGroup.POST("", auth, p.Goal.CreateGiftRegistry)
	registryGroup.GET("/:id", p.Goal.GetGiftRegistry)

	analyticsGroup := v1.Group("/analytics")
	analyticsGroup.GET("/portfolio/:id", p.Analytics.GetPortfolio)
	analyticsGroup.GET("/leaderboard", p.Analytics.GetLeaderboard)
	v1.GET("/achievements/:id", p.Analytics.GetAchievements)

	literacyGroup := v1.Group("/literacy")
	literacyGroup.GET("/modules", p.Literacy.ListModules)
	literacyGroup.POST("/progress", p.Literacy.UpdateProgress)

	notificationGroup := v1.Group("/notifications", auth)
	notificationGroup.GET("", p.Notification.ListNotifications)
	notificationGroup.PUT("/:id/read", p.Notification.MarkRead)

	v1.POST("/webhooks/stripe", p.Webhook.HandleStripe)
}
