package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"diplomakids/internal/models/db_models"
)

type FamilyRepository interface {
	// InsertWithTasks stores the family together with its follow-up tasks.
	InsertWithTasks(ctx context.Context, family *db_models.Family, tasks []db_models.OutboxTask) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Family, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Family, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Family, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type familyRepository struct {
	db *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) FamilyRepository {
	return &familyRepository{db: db}
}

func (r *familyRepository) InsertWithTasks(ctx context.Context, family *db_models.Family, tasks []db_models.OutboxTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			return err
		}
		return enqueueTasks(tx, tasks)
	})
}

func (r *familyRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Family, error) {
	var family db_models.Family
	err := r.db.WithContext(ctx).First(&family, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &family, nil
}

func (r *familyRepository) FindByEmail(ctx context.Context, email string) (*db_models.Family, error) {
	var family db_models.Family
	err := r.db.WithContext(ctx).First(&family, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &family, nil
}

func (r *familyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Family, error) {
	var families []db_models.Family
	if len(ids) == 0 {
		return families, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("family_name ASC").Find(&families).Error
	return families, err
}

func (r *familyRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&db_models.Family{}).Where("id = ?", id).Updates(updates).Error
}
