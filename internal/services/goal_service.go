package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/request_models"
	"diplomakids/internal/models/response_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/utils"
)

const qrCodeSize = 256

type GoalServiceInterface interface {
	CreateGoal(ctx context.Context, familyID uuid.UUID, request request_models.CreateGoalRequest) (*db_models.Goal, error)
	ListByChild(ctx context.Context, childID uuid.UUID) ([]db_models.Goal, error)
}

type GoalService struct {
	goalRepo  repositories.GoalRepository
	childRepo repositories.ChildRepository
}

func NewGoalService(goalRepo repositories.GoalRepository, childRepo repositories.ChildRepository) GoalServiceInterface {
	return &GoalService{goalRepo: goalRepo, childRepo: childRepo}
}

func (s *GoalService) CreateGoal(ctx context.Context, familyID uuid.UUID, request request_models.CreateGoalRequest) (*db_models.Goal, error) {
	childID, err := parseID(request.ChildID, utils.ErrInvalidInput)
	if err != nil {
		return nil, err
	}
	targetDate, err := utils.ParseOptionalDate(request.TargetDate)
	if err != nil {
		return nil, err
	}
	if _, err := findOwnedChild(ctx, s.childRepo, familyID, childID); err != nil {
		return nil, err
	}

	goal := &db_models.Goal{
		ChildID:      childID,
		GoalName:     request.GoalName,
		TargetAmount: request.TargetAmount,
		TargetDate:   targetDate,
		Description:  request.Description,
		IsPrimary:    request.IsPrimary,
	}
	if err := s.goalRepo.Insert(ctx, goal); err != nil {
		return nil, fmt.Errorf("%w: insert goal: %v", utils.ErrDatabaseError, err)
	}
	return goal, nil
}

func (s *GoalService) ListByChild(ctx context.Context, childID uuid.UUID) ([]db_models.Goal, error) {
	goals, err := s.goalRepo.ListByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("%w: list goals: %v", utils.ErrDatabaseError, err)
	}
	return goals, nil
}

type GiftRegistryServiceInterface interface {
	// Create stores an immutable registry with its share link and QR code.
	Create(ctx context.Context, familyID uuid.UUID, request request_models.CreateGiftRegistryRequest) (*db_models.GiftRegistry, error)
	Get(ctx context.Context, id uuid.UUID) (*response_models.GiftRegistryView, error)
}

type GiftRegistryService struct {
	appBaseURL   string
	registryRepo repositories.GiftRegistryRepository
	childRepo    repositories.ChildRepository
}

func NewGiftRegistryService(
	appBaseURL string,
	registryRepo repositories.GiftRegistryRepository,
	childRepo repositories.ChildRepository,
) GiftRegistryServiceInterface {
	return &GiftRegistryService{
		appBaseURL:   strings.TrimRight(appBaseURL, "/"),
		registryRepo: registryRepo,
		childRepo:    childRepo,
	}
}

func (s *GiftRegistryService) Create(ctx context.Context, familyID uuid.UUID, request request_models.CreateGiftRegistryRequest) (*db_models.GiftRegistry, error) {
	childID, err := parseID(request.ChildID, utils.ErrInvalidInput)
	if err != nil {
		return nil, err
	}
	eventDate, err := utils.ParseOptionalDate(request.EventDate)
	if err != nil {
		return nil, err
	}
	if _, err := findOwnedChild(ctx, s.childRepo, familyID, childID); err != nil {
		return nil, err
	}

	registry := &db_models.GiftRegistry{
		ChildID:      childID,
		EventType:    request.EventType,
		EventDate:    eventDate,
		TargetAmount: request.TargetAmount,
		Message:      request.Message,
	}
	registry.ID = uuid.New()
	registry.ShareURL = fmt.Sprintf("%s/gift/%s", s.appBaseURL, registry.ID)

	qr, err := QRCodeDataURI(registry.ShareURL)
	if err != nil {
		return nil, err
	}
	registry.QRCodeURL = qr

	if err := s.registryRepo.Insert(ctx, registry); err != nil {
		return nil, fmt.Errorf("%w: insert gift registry: %v", utils.ErrDatabaseError, err)
	}
	return registry, nil
}

func (s *GiftRegistryService) Get(ctx context.Context, id uuid.UUID) (*response_models.GiftRegistryView, error) {
	registry, err := s.registryRepo.FindWithChild(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: find gift registry: %v", utils.ErrDatabaseError, err)
	}
	if registry == nil {
		return nil, utils.ErrRegistryNotFound
	}

	view := &response_models.GiftRegistryView{GiftRegistry: *registry}
	if registry.Child != nil {
		view.ChildFirstName = registry.Child.FirstName
		view.ChildLastName = registry.Child.LastName
		view.ChildProfilePhotoURL = registry.Child.ProfilePhotoURL
	}
	return view, nil
}

// QRCodeDataURI renders url as a PNG QR code inlined in a data URI.
func QRCodeDataURI(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, qrCodeSize)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
