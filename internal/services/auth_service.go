package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/request_models"
	"diplomakids/internal/models/response_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
}

type AuthService struct {
	familyRepo repositories.FamilyRepository
	gateway    PaymentGateway
	issuer     *utils.TokenIssuer
	log        *zap.Logger
}

func NewAuthService(
	familyRepo repositories.FamilyRepository,
	gateway PaymentGateway,
	issuer *utils.TokenIssuer,
	log *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		familyRepo: familyRepo,
		gateway:    gateway,
		issuer:     issuer,
		log:        log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AuthService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error) {
	startTime := time.Now()
	email := normalizeEmail(request.Email)

	existing, err := a.familyRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: find family: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	customerID, err := a.gateway.CreateCustomer(ctx, email, request.FamilyName)
	if err != nil {
		return nil, err
	}

	family := &db_models.Family{
		Email:            email,
		FamilyName:       request.FamilyName,
		Phone:            request.Phone,
		PasswordHash:     hashed,
		StripeCustomerID: customerID,
	}

	welcome, err := NewTask(TaskWelcomeEmail, WelcomeEmailPayload{Email: email, FamilyName: request.FamilyName})
	if err != nil {
		return nil, err
	}

	if err := a.familyRepo.InsertWithTasks(ctx, family, []db_models.OutboxTask{welcome}); err != nil {
		// A concurrent registration can win between the lookup and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		a.log.Warn("family insert failed after customer creation",
			zap.String("stripe_customer_id", customerID), zap.Error(err))
		return nil, fmt.Errorf("%w: insert family: %v", utils.ErrDatabaseError, err)
	}

	token, err := a.issuer.Issue(family.ID, family.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	a.log.Info("family registered",
		zap.String("family_id", family.ID.String()),
		zap.Duration("took", time.Since(startTime)))

	return &response_models.AuthResponse{Token: token, Family: family}, nil
}

func (a *AuthService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	family, err := a.familyRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: find family: %v", utils.ErrDatabaseError, err)
	}
	if family == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(family.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.issuer.Issue(family.ID, family.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &response_models.AuthResponse{Token: token, Family: family}, nil
}

// WelcomeEmailHandler sends the greeting queued by Register.
func WelcomeEmailHandler(mail IMailService) TaskHandler {
	return func(ctx context.Context, raw []byte) error {
		var p WelcomeEmailPayload
		if err := decodePayload(raw, &p); err != nil {
			return err
		}
		return mail.SendWelcome(ctx, p.Email, p.FamilyName)
	}
}
