package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"diplomakids/internal/models/db_models"
)

type ConnectionRepository interface {
	// Connect is idempotent; it reports whether a new edge was written.
	Connect(ctx context.Context, familyID, connectedFamilyID uuid.UUID) (bool, error)
	ConnectedFamilyIDs(ctx context.Context, familyID uuid.UUID) ([]uuid.UUID, error)
	IsConnected(ctx context.Context, familyID, connectedFamilyID uuid.UUID) (bool, error)
}

type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Connect(ctx context.Context, familyID, connectedFamilyID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "family_id"}, {Name: "connected_family_id"}},
		DoNothing: true,
	}).Create(&db_models.Connection{FamilyID: familyID, ConnectedFamilyID: connectedFamilyID})
	return res.RowsAffected == 1, res.Error
}

func (r *connectionRepository) ConnectedFamilyIDs(ctx context.Context, familyID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&db_models.Connection{}).
		Where("family_id = ?", familyID).
		Pluck("connected_family_id", &ids).Error
	return ids, err
}

func (r *connectionRepository) IsConnected(ctx context.Context, familyID, connectedFamilyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Connection{}).
		Where("family_id = ? AND connected_family_id = ?", familyID, connectedFamilyID).
		Count(&count).Error
	return count > 0, err
}
