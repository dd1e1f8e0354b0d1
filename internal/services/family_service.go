package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/request_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/utils"
)

type FamilyServiceInterface interface {
	GetProfile(ctx context.Context, familyID uuid.UUID) (*db_models.Family, error)
	UpdateProfile(ctx context.Context, familyID uuid.UUID, request request_models.UpdateFamilyRequest) (*db_models.Family, error)
	// Connect adds a one-way edge so the caller sees the other family's milestones.
	Connect(ctx context.Context, familyID uuid.UUID, request request_models.ConnectFamilyRequest) (bool, error)
	ListConnections(ctx context.Context, familyID uuid.UUID) ([]db_models.Family, error)
}

type FamilyService struct {
	familyRepo     repositories.FamilyRepository
	connectionRepo repositories.ConnectionRepository
}

func NewFamilyService(familyRepo repositories.FamilyRepository, connectionRepo repositories.ConnectionRepository) FamilyServiceInterface {
	return &FamilyService{familyRepo: familyRepo, connectionRepo: connectionRepo}
}

func (f *FamilyService) GetProfile(ctx context.Context, familyID uuid.UUID) (*db_models.Family, error) {
	family, err := f.familyRepo.FindByID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("%w: find family: %v", utils.ErrDatabaseError, err)
	}
	if family == nil {
		return nil, utils.ErrFamilyNotFound
	}
	return family, nil
}

func (f *FamilyService) UpdateProfile(ctx context.Context, familyID uuid.UUID, request request_models.UpdateFamilyRequest) (*db_models.Family, error) {
	updates := map[string]interface{}{}
	if request.FamilyName != nil {
		updates["family_name"] = *request.FamilyName
	}
	if request.Phone != nil {
		updates["phone"] = *request.Phone
	}
	if request.Bio != nil {
		updates["bio"] = *request.Bio
	}
	if request.Plan529Provider != nil {
		updates["plan_529_provider"] = *request.Plan529Provider
	}
	if request.Plan529AccountNumber != nil {
		updates["plan_529_account_number"] = *request.Plan529AccountNumber
	}
	if request.Location != nil {
		raw, err := json.Marshal(request.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: location: %v", utils.ErrInvalidInput, err)
		}
		updates["location"] = datatypes.JSON(raw)
	}
	if request.SocialLinks != nil {
		raw, err := json.Marshal(request.SocialLinks)
		if err != nil {
			return nil, fmt.Errorf("%w: social_links: %v", utils.ErrInvalidInput, err)
		}
		updates["social_links"] = datatypes.JSON(raw)
	}

	if _, err := f.GetProfile(ctx, familyID); err != nil {
		return nil, err
	}
	if err := f.familyRepo.Update(ctx, familyID, updates); err != nil {
		return nil, fmt.Errorf("%w: update family: %v", utils.ErrDatabaseError, err)
	}
	return f.GetProfile(ctx, familyID)
}

func (f *FamilyService) Connect(ctx context.Context, familyID uuid.UUID, request request_models.ConnectFamilyRequest) (bool, error) {
	otherID, err := uuid.Parse(request.ConnectedFamilyID)
	if err != nil {
		return false, fmt.Errorf("%w: connected_family_id", utils.ErrInvalidInput)
	}
	if otherID == familyID {
		return false, utils.ErrSelfConnection
	}

	other, err := f.familyRepo.FindByID(ctx, otherID)
	if err != nil {
		return false, fmt.Errorf("%w: find family: %v", utils.ErrDatabaseError, err)
	}
	if other == nil {
		return false, utils.ErrFamilyNotFound
	}

	created, err := f.connectionRepo.Connect(ctx, familyID, otherID)
	if err != nil {
		return false, fmt.Errorf("%w: connect: %v", utils.ErrDatabaseError, err)
	}
	return created, nil
}

func (f *FamilyService) ListConnections(ctx context.Context, familyID uuid.UUID) ([]db_models.Family, error) {
	ids, err := f.connectionRepo.ConnectedFamilyIDs(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("%w: list connections: %v", utils.ErrDatabaseError, err)
	}
	families, err := f.familyRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: load connections: %v", utils.ErrDatabaseError, err)
	}
	return families, nil
}
