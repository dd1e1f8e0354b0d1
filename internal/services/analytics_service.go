package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/response_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/utils"
)

const (
	leaderboardLimit = 100
	// Flat annual return shown to families until real plan performance is wired in.
	assumedGrowthRate = 7.5
	daysPerMonth      = 30
)

type AnalyticsServiceInterface interface {
	GetPortfolioAnalytics(ctx context.Context, childID uuid.UUID) (*response_models.PortfolioAnalytics, error)
	// GetLeaderboard ranks a challenge's participants, or every child when challengeID is nil.
	GetLeaderboard(ctx context.Context, challengeID *uuid.UUID) ([]response_models.LeaderboardEntry, error)
}

type AnalyticsService struct {
	childRepo        repositories.ChildRepository
	contributionRepo repositories.ContributionRepository
	analyticsRepo    repositories.AnalyticsRepository
	now              func() time.Time
}

func NewAnalyticsService(
	childRepo repositories.ChildRepository,
	contributionRepo repositories.ContributionRepository,
	analyticsRepo repositories.AnalyticsRepository,
) AnalyticsServiceInterface {
	return &AnalyticsService{
		childRepo:        childRepo,
		contributionRepo: contributionRepo,
		analyticsRepo:    analyticsRepo,
		now:              time.Now,
	}
}

func (s *AnalyticsService) GetPortfolioAnalytics(ctx context.Context, childID uuid.UUID) (*response_models.PortfolioAnalytics, error) {
	child, err := findChild(ctx, s.childRepo, childID)
	if err != nil {
		return nil, err
	}
	history, err := s.contributionRepo.HistoryByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("%w: contribution history: %v", utils.ErrDatabaseError, err)
	}
	return computePortfolio(child, history, s.now()), nil
}

func computePortfolio(child *db_models.Child, history []db_models.Contribution, now time.Time) *response_models.PortfolioAnalytics {
	points := make([]response_models.ContributionPoint, 0, len(history))
	total := 0.0
	for _, c := range history {
		total += c.Amount
		points = append(points, response_models.ContributionPoint{Amount: c.Amount, CreatedAt: c.CreatedAt})
	}

	goal := child.EffectiveSavingsGoal()
	monthly := 0.0
	if len(history) > 0 {
		monthly = total / 12
	}

	result := &response_models.PortfolioAnalytics{
		TotalContributions:  round2(total),
		MonthlyAverage:      round2(monthly),
		SavingsGoal:         goal,
		ProgressPercentage:  round2(total / goal * 100),
		ContributionHistory: points,
		GrowthRate:          assumedGrowthRate,
	}

	if monthly > 0 {
		remaining := math.Max(goal-total, 0)
		months := remaining / monthly
		projected := now.Add(time.Duration(months * daysPerMonth * float64(24*time.Hour)))
		result.ProjectedCompletion = &projected
	}
	return result
}

func (s *AnalyticsService) GetLeaderboard(ctx context.Context, challengeID *uuid.UUID) ([]response_models.LeaderboardEntry, error) {
	var (
		rows []repositories.LeaderboardRow
		err  error
	)
	if challengeID != nil {
		rows, err = s.analyticsRepo.ChallengeStandings(ctx, *challengeID, leaderboardLimit)
	} else {
		rows, err = s.analyticsRepo.TopSavers(ctx, leaderboardLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: leaderboard: %v", utils.ErrDatabaseError, err)
	}

	entries := make([]response_models.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, response_models.LeaderboardEntry{
			Rank:       i + 1,
			ChildID:    row.ChildID,
			FamilyID:   row.FamilyID,
			FirstName:  row.FirstName,
			FamilyName: row.FamilyName,
			Amount:     row.Amount,
		})
	}
	return entries, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
