package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"diplomakids/internal/models/db_models"
)

type ChildRepository interface {
	// InsertWithAchievements stores the child and its starter badges atomically.
	InsertWithAchievements(ctx context.Context, child *db_models.Child, badges []db_models.Achievement) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Child, error)
	// FindOwned returns nil unless the child belongs to familyID.
	FindOwned(ctx context.Context, id, familyID uuid.UUID) (*db_models.Child, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]db_models.Child, error)
	UpdateOwned(ctx context.Context, id, familyID uuid.UUID, updates map[string]interface{}) (bool, error)
}

type childRepository struct {
	db *gorm.DB
}

func NewChildRepository(db *gorm.DB) ChildRepository {
	return &childRepository{db: db}
}

func (r *childRepository) InsertWithAchievements(ctx context.Context, child *db_models.Child, badges []db_models.Achievement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(child).Error; err != nil {
			return err
		}
		for i := range badges {
			badges[i].ChildID = child.ID
			if _, err := insertAchievementIfAbsent(tx, &badges[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *childRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Child, error) {
	var child db_models.Child
	err := r.db.WithContext(ctx).First(&child, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &child, nil
}

func (r *childRepository) FindOwned(ctx context.Context, id, familyID uuid.UUID) (*db_models.Child, error) {
	var child db_models.Child
	err := r.db.WithContext(ctx).First(&child, "id = ? AND family_id = ?", id, familyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &child, nil
}

func (r *childRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]db_models.Child, error) {
	var children []db_models.Child
	err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("created_at ASC").
		Find(&children).Error
	return children, err
}

func (r *childRepository) UpdateOwned(ctx context.Context, id, familyID uuid.UUID, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.Child{}).
		Where("id = ? AND family_id = ?", id, familyID).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}
