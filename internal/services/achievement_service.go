package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/metrics"
	"diplomakids/pkg/utils"
)

type badgeRule struct {
	threshold float64
	badgeID   string
	name      string
}

var contributionBadges = []badgeRule{
	{100, "first_100", "First $100 Saved!"},
	{500, "first_500", "Halfway to $1000!"},
	{1000, "first_1000", "Four Figures!"},
	{5000, "first_5000", "High Five - $5000!"},
	{10000, "first_10000", "Five Figures Strong!"},
}

var milestoneBadges = []badgeRule{
	{1, "first_post", "First Milestone!"},
	{10, "ten_posts", "10 Milestones!"},
	{25, "twenty_five_posts", "25 Milestones!"},
	{50, "fifty_posts", "Milestone Master!"},
}

const literacyBadgePoints = 50

// StarterBadges are granted to every child on creation.
func StarterBadges(now time.Time) []db_models.Achievement {
	return []db_models.Achievement{
		{BadgeID: "welcome", BadgeName: "Welcome to DiplomaKids!", Category: db_models.CategoryOther, Points: 10, UnlockedAt: now},
		{BadgeID: "first_goal", BadgeName: "First Goal Set", Category: db_models.CategoryOther, Points: 20, UnlockedAt: now},
	}
}

type AchievementServiceInterface interface {
	// CheckContributionAchievements awards every savings badge whose threshold the
	// child's total has reached. Safe to run any number of times.
	CheckContributionAchievements(ctx context.Context, childID uuid.UUID) ([]db_models.Achievement, error)
	CheckMilestoneAchievements(ctx context.Context, childID uuid.UUID) ([]db_models.Achievement, error)
	AwardLiteracyCompletion(ctx context.Context, childID uuid.UUID, moduleID string) (bool, error)
	ListByChild(ctx context.Context, childID uuid.UUID) ([]db_models.Achievement, error)
}

type AchievementService struct {
	achievementRepo  repositories.AchievementRepository
	contributionRepo repositories.ContributionRepository
	milestoneRepo    repositories.MilestoneRepository
	metrics          *metrics.Metrics
	log              *zap.Logger
}

func NewAchievementService(
	achievementRepo repositories.AchievementRepository,
	contributionRepo repositories.ContributionRepository,
	milestoneRepo repositories.MilestoneRepository,
	m *metrics.Metrics,
	log *zap.Logger,
) AchievementServiceInterface {
	return &AchievementService{
		achievementRepo:  achievementRepo,
		contributionRepo: contributionRepo,
		milestoneRepo:    milestoneRepo,
		metrics:          m,
		log:              log,
	}
}

func (s *AchievementService) CheckContributionAchievements(ctx context.Context, childID uuid.UUID) ([]db_models.Achievement, error) {
	total, err := s.contributionRepo.SumByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("%w: sum contributions: %v", utils.ErrDatabaseError, err)
	}
	return s.awardReached(ctx, childID, total, contributionBadges, db_models.CategoryFinancial, func(r badgeRule) int {
		return int(r.threshold / 10)
	})
}

func (s *AchievementService) CheckMilestoneAchievements(ctx context.Context, childID uuid.UUID) ([]db_models.Achievement, error) {
	count, err := s.milestoneRepo.CountByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("%w: count milestones: %v", utils.ErrDatabaseError, err)
	}
	return s.awardReached(ctx, childID, float64(count), milestoneBadges, db_models.CategoryCommunity, func(r badgeRule) int {
		return int(r.threshold) * 5
	})
}

func (s *AchievementService) awardReached(
	ctx context.Context,
	childID uuid.UUID,
	value float64,
	rules []badgeRule,
	category db_models.AchievementCategory,
	points func(badgeRule) int,
) ([]db_models.Achievement, error) {
	var awarded []db_models.Achievement
	for _, rule := range rules {
		if value < rule.threshold {
			break
		}
		a := db_models.Achievement{
			ChildID:    childID,
			BadgeID:    rule.badgeID,
			BadgeName:  rule.name,
			Category:   category,
			Points:     points(rule),
			UnlockedAt: time.Now(),
		}
		inserted, err := s.achievementRepo.InsertIfAbsent(ctx, &a)
		if err != nil {
			return awarded, fmt.Errorf("%w: award %s: %v", utils.ErrDatabaseError, rule.badgeID, err)
		}
		if inserted {
			s.metrics.RecordAchievement(string(category))
			s.log.Info("achievement unlocked", zap.String("child_id", childID.String()), zap.String("badge", rule.badgeID))
			awarded = append(awarded, a)
		}
	}
	return awarded, nil
}

func (s *AchievementService) AwardLiteracyCompletion(ctx context.Context, childID uuid.UUID, moduleID string) (bool, error) {
	a := db_models.Achievement{
		ChildID:    childID,
		BadgeID:    "literacy_" + moduleID,
		BadgeName:  "Completed " + moduleID,
		Category:   db_models.CategoryFinancial,
		Points:     literacyBadgePoints,
		UnlockedAt: time.Now(),
	}
	inserted, err := s.achievementRepo.InsertIfAbsent(ctx, &a)
	if err != nil {
		return false, fmt.Errorf("%w: award literacy badge: %v", utils.ErrDatabaseError, err)
	}
	if inserted {
		s.metrics.RecordAchievement(string(a.Category))
	}
	return inserted, nil
}

func (s *AchievementService) ListByChild(ctx context.Context, childID uuid.UUID) ([]db_models.Achievement, error) {
	achievements, err := s.achievementRepo.ListByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("%w: list achievements: %v", utils.ErrDatabaseError, err)
	}
	return achievements, nil
}

// ContributionAchievementsHandler runs the savings scan for a queued child.
func ContributionAchievementsHandler(s AchievementServiceInterface) TaskHandler {
	return childTaskHandler(s.CheckContributionAchievements)
}

func MilestoneAchievementsHandler(s AchievementServiceInterface) TaskHandler {
	return childTaskHandler(s.CheckMilestoneAchievements)
}

func childTaskHandler(check func(context.Context, uuid.UUID) ([]db_models.Achievement, error)) TaskHandler {
	return func(ctx context.Context, raw []byte) error {
		var p ChildTaskPayload
		if err := decodePayload(raw, &p); err != nil {
			return err
		}
		childID, err := uuid.Parse(p.ChildID)
		if err != nil {
			return fmt.Errorf("bad child id %q: %w", p.ChildID, err)
		}
		_, err = check(ctx, childID)
		return err
	}
}
