package services

import (
	"context"
	"fmt"
	"time"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/request_models"
	"diplomakids/internal/models/response_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/utils"
)

var literacyModules = []response_models.LiteracyModule{
	{
		ID:              "saving_basics",
		Name:            "Saving Basics",
		Description:     "Learn why saving money is important",
		AgeRange:        "6-10",
		DurationMinutes: 15,
		Points:          50,
	},
	{
		ID:              "compound_interest",
		Name:            "The Magic of Compound Interest",
		Description:     "Discover how money grows over time",
		AgeRange:        "10-14",
		DurationMinutes: 20,
		Points:          75,
	},
	{
		ID:              "college_planning",
		Name:            "Planning for College",
		Description:     "Understanding college costs and financial aid",
		AgeRange:        "14-18",
		DurationMinutes: 30,
		Points:          100,
	},
}

type LiteracyServiceInterface interface {
	ListModules() []response_models.LiteracyModule
	// UpdateProgress upserts the child's progress; reaching 100% awards the module badge once.
	UpdateProgress(ctx context.Context, request request_models.LiteracyProgressRequest) (*db_models.LiteracyProgress, error)
}

type LiteracyService struct {
	literacyRepo repositories.LiteracyRepository
	childRepo    repositories.ChildRepository
	achievements AchievementServiceInterface
}

func NewLiteracyService(
	literacyRepo repositories.LiteracyRepository,
	childRepo repositories.ChildRepository,
	achievements AchievementServiceInterface,
) LiteracyServiceInterface {
	return &LiteracyService{
		literacyRepo: literacyRepo,
		childRepo:    childRepo,
		achievements: achievements,
	}
}

func (s *LiteracyService) ListModules() []response_models.LiteracyModule {
	out := make([]response_models.LiteracyModule, len(literacyModules))
	copy(out, literacyModules)
	return out
}

func findLiteracyModule(id string) (response_models.LiteracyModule, bool) {
	for _, m := range literacyModules {
		if m.ID == id {
			return m, true
		}
	}
	return response_models.LiteracyModule{}, false
}

func (s *LiteracyService) UpdateProgress(ctx context.Context, request request_models.LiteracyProgressRequest) (*db_models.LiteracyProgress, error) {
	if request.CompletionPercentage < 0 || request.CompletionPercentage > 100 {
		return nil, fmt.Errorf("%w: completion_percentage must be between 0 and 100", utils.ErrInvalidInput)
	}
	module, ok := findLiteracyModule(request.ModuleID)
	if !ok {
		return nil, utils.ErrModuleNotFound
	}
	childID, err := parseID(request.ChildID, utils.ErrInvalidInput)
	if err != nil {
		return nil, err
	}
	if _, err := findChild(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	progress := &db_models.LiteracyProgress{
		ChildID:              childID,
		ModuleID:             module.ID,
		CompletionPercentage: request.CompletionPercentage,
		Score:                request.Score,
		LastAccessed:         now,
	}
	if request.CompletionPercentage >= 100 {
		progress.CompletedAt = &now
	}

	if err := s.literacyRepo.Upsert(ctx, progress); err != nil {
		return nil, fmt.Errorf("%w: save literacy progress: %v", utils.ErrDatabaseError, err)
	}

	if progress.CompletedAt != nil {
		if _, err := s.achievements.AwardLiteracyCompletion(ctx, childID, module.ID); err != nil {
			return nil, err
		}
	}
	return progress, nil
}
