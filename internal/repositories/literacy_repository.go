package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"diplomakids/internal/models/db_models"
)

type LiteracyRepository interface {
	// Upsert writes the latest progress for (child_id, module_id).
	Upsert(ctx context.Context, progress *db_models.LiteracyProgress) error
}

type literacyRepository struct {
	db *gorm.DB
}

func NewLiteracyRepository(db *gorm.DB) LiteracyRepository {
	return &literacyRepository{db: db}
}

func (r *literacyRepository) Upsert(ctx context.Context, progress *db_models.LiteracyProgress) error {
	columns := []string{"completion_percentage", "score", "last_accessed", "updated_at"}
	if progress.CompletedAt != nil {
		columns = append(columns, "completed_at")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "child_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(progress).Error
}
