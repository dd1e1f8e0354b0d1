package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"diplomakids/internal/models/db_models"
)

type AchievementRepository interface {
	// InsertIfAbsent reports false when the child already holds the badge.
	InsertIfAbsent(ctx context.Context, achievement *db_models.Achievement) (bool, error)
	ListByChild(ctx context.Context, childID uuid.UUID) ([]db_models.Achievement, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) InsertIfAbsent(ctx context.Context, achievement *db_models.Achievement) (bool, error) {
	return insertAchievementIfAbsent(r.db.WithContext(ctx), achievement)
}

func (r *achievementRepository) ListByChild(ctx context.Context, childID uuid.UUID) ([]db_models.Achievement, error) {
	var achievements []db_models.Achievement
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("unlocked_at DESC").
		Find(&achievements).Error
	return achievements, err
}

// The unique (child_id, badge_id) index is the only guard against double awards.
func insertAchievementIfAbsent(db *gorm.DB, achievement *db_models.Achievement) (bool, error) {
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "child_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(achievement)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
