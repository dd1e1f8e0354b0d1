package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	TopSavers(ctx context.Context, limit int) ([]LeaderboardRow, error)
	ChallengeStandings(ctx context.Context, challengeID uuid.UUID, limit int) ([]LeaderboardRow, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// ---------- Row helpers ----------
type LeaderboardRow struct {
	ChildID    uuid.UUID `gorm:"column:child_id"`
	FamilyID   uuid.UUID `gorm:"column:family_id"`
	FirstName  string    `gorm:"column:first_name"`
	FamilyName string    `gorm:"column:family_name"`
	Amount     float64   `gorm:"column:amount"`
}

func (r *analyticsRepository) TopSavers(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.db.WithContext(ctx).
		Table("children AS c").
		Select("c.id AS child_id, c.family_id AS family_id, c.first_name AS first_name, COALESCE(f.family_name, '') AS family_name, c.current_savings AS amount").
		Joins("LEFT JOIN families AS f ON f.id = c.family_id").
		Where("c.deleted_at IS NULL").
		Order("c.current_savings DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) ChallengeStandings(ctx context.Context, challengeID uuid.UUID, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.db.WithContext(ctx).
		Table("challenge_participants AS p").
		Select("p.child_id AS child_id, p.family_id AS family_id, COALESCE(c.first_name, '') AS first_name, COALESCE(f.family_name, '') AS family_name, p.current_amount AS amount").
		Joins("LEFT JOIN children AS c ON c.id = p.child_id").
		Joins("LEFT JOIN families AS f ON f.id = p.family_id").
		Where("p.challenge_id = ? AND p.deleted_at IS NULL", challengeID).
		Order("p.current_amount DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
