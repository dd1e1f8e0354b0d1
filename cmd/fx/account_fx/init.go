package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"diplomakids/internal/config"
	"diplomakids/internal/repositories"
	"diplomakids/internal/services"
	"diplomakids/pkg/utils"
)

var Module = fx.Provide(
	provideFamilyRepo,
	provideConnectionRepo,
	provideTokenIssuer,
	provideAuthService,
	provideFamilyService)

func provideFamilyRepo(db *gorm.DB) repositories.FamilyRepository {
	return repositories.NewFamilyRepository(db)
}

func provideConnectionRepo(db *gorm.DB) repositories.ConnectionRepository {
	return repositories.NewConnectionRepository(db)
}

func provideTokenIssuer(cfg *config.Config) (*utils.TokenIssuer, error) {
	return utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
}

func provideAuthService(familyRepo repositories.FamilyRepository, gateway services.PaymentGateway, issuer *utils.TokenIssuer, log *zap.Logger) services.AuthServiceInterface {
	return services.NewAuthService(familyRepo, gateway, issuer, log)
}

func provideFamilyService(familyRepo repositories.FamilyRepository, connectionRepo repositories.ConnectionRepository) services.FamilyServiceInterface {
	return services.NewFamilyService(familyRepo, connectionRepo)
}
