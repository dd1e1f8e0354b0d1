package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/request_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/utils"
)

type ChildServiceInterface interface {
	// CreateChild stores the child under the caller's family with its starter badges.
	CreateChild(ctx context.Context, familyID uuid.UUID, request request_models.CreateChildRequest) (*db_models.Child, error)
	ListChildren(ctx context.Context, familyID uuid.UUID) ([]db_models.Child, error)
	GetChild(ctx context.Context, familyID, childID uuid.UUID) (*db_models.Child, error)
	UpdateChild(ctx context.Context, familyID, childID uuid.UUID, request request_models.UpdateChildRequest) (*db_models.Child, error)
}

type ChildService struct {
	childRepo repositories.ChildRepository
}

func NewChildService(childRepo repositories.ChildRepository) ChildServiceInterface {
	return &ChildService{childRepo: childRepo}
}

func (s *ChildService) CreateChild(ctx context.Context, familyID uuid.UUID, request request_models.CreateChildRequest) (*db_models.Child, error) {
	dob, err := utils.ParseOptionalDate(request.DateOfBirth)
	if err != nil {
		return nil, err
	}

	child := &db_models.Child{
		FamilyID:          familyID,
		FirstName:         request.FirstName,
		LastName:          request.LastName,
		Nickname:          request.Nickname,
		DateOfBirth:       dob,
		GradeLevel:        request.GradeLevel,
		SchoolName:        request.SchoolName,
		CollegeGoals:      request.CollegeGoals,
		SavingsGoal:       db_models.DefaultSavingsGoal,
		TargetCollegeYear: request.TargetCollegeYear,
		Bio:               request.Bio,
		ProfilePhotoURL:   request.ProfilePhotoURL,
	}
	if request.SavingsGoal != nil {
		child.SavingsGoal = *request.SavingsGoal
	}
	if request.Interests != nil {
		raw, err := json.Marshal(request.Interests)
		if err != nil {
			return nil, fmt.Errorf("%w: interests: %v", utils.ErrInvalidInput, err)
		}
		child.Interests = datatypes.JSON(raw)
	}

	if err := s.childRepo.InsertWithAchievements(ctx, child, StarterBadges(time.Now())); err != nil {
		return nil, fmt.Errorf("%w: insert child: %v", utils.ErrDatabaseError, err)
	}
	return child, nil
}

func (s *ChildService) ListChildren(ctx context.Context, familyID uuid.UUID) ([]db_models.Child, error) {
	children, err := s.childRepo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("%w: list children: %v", utils.ErrDatabaseError, err)
	}
	return children, nil
}

func (s *ChildService) GetChild(ctx context.Context, familyID, childID uuid.UUID) (*db_models.Child, error) {
	return findOwnedChild(ctx, s.childRepo, familyID, childID)
}

func (s *ChildService) UpdateChild(ctx context.Context, familyID, childID uuid.UUID, request request_models.UpdateChildRequest) (*db_models.Child, error) {
	updates := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	setString("first_name", request.FirstName)
	setString("last_name", request.LastName)
	setString("nickname", request.Nickname)
	setString("grade_level", request.GradeLevel)
	setString("school_name", request.SchoolName)
	setString("college_goals", request.CollegeGoals)
	setString("bio", request.Bio)
	setString("profile_photo_url", request.ProfilePhotoURL)

	if request.DateOfBirth != nil {
		dob, err := utils.ParseOptionalDate(request.DateOfBirth)
		if err != nil {
			return nil, err
		}
		updates["date_of_birth"] = dob
	}
	if request.SavingsGoal != nil {
		updates["savings_goal"] = *request.SavingsGoal
	}
	if request.TargetCollegeYear != nil {
		updates["target_college_year"] = *request.TargetCollegeYear
	}
	if request.Interests != nil {
		raw, err := json.Marshal(request.Interests)
		if err != nil {
			return nil, fmt.Errorf("%w: interests: %v", utils.ErrInvalidInput, err)
		}
		updates["interests"] = datatypes.JSON(raw)
	}

	if len(updates) > 0 {
		updated, err := s.childRepo.UpdateOwned(ctx, childID, familyID, updates)
		if err != nil {
			return nil, fmt.Errorf("%w: update child: %v", utils.ErrDatabaseError, err)
		}
		if !updated {
			return nil, utils.ErrChildNotFound
		}
	}
	return findOwnedChild(ctx, s.childRepo, familyID, childID)
}

// findOwnedChild hides children of other families behind ErrChildNotFound.
func findOwnedChild(ctx context.Context, repo repositories.ChildRepository, familyID, childID uuid.UUID) (*db_models.Child, error) {
	child, err := repo.FindOwned(ctx, childID, familyID)
	if err != nil {
		return nil, fmt.Errorf("%w: find child: %v", utils.ErrDatabaseError, err)
	}
	if child == nil {
		return nil, utils.ErrChildNotFound
	}
	return child, nil
}

func findChild(ctx context.Context, repo repositories.ChildRepository, childID uuid.UUID) (*db_models.Child, error) {
	child, err := repo.FindByID(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("%w: find child: %v", utils.ErrDatabaseError, err)
	}
	if child == nil {
		return nil, utils.ErrChildNotFound
	}
	return child, nil
}

func parseID(raw string, sentinel error) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a valid id", sentinel, raw)
	}
	return id, nil
}
