package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"diplomakids/internal/models/db_models"
)

type GoalRepository interface {
	Insert(ctx context.Context, goal *db_models.Goal) error
	ListByChild(ctx context.Context, childID uuid.UUID) ([]db_models.Goal, error)
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Insert(ctx context.Context, goal *db_models.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) ListByChild(ctx context.Context, childID uuid.UUID) ([]db_models.Goal, error) {
	var goals []db_models.Goal
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("is_primary DESC").
		Order("created_at ASC").
		Find(&goals).Error
	return goals, err
}

type GiftRegistryRepository interface {
	Insert(ctx context.Context, registry *db_models.GiftRegistry) error
	// FindWithChild returns the registry and its child, or nil when absent.
	FindWithChild(ctx context.Context, id uuid.UUID) (*db_models.GiftRegistry, error)
}

type giftRegistryRepository struct {
	db *gorm.DB
}

func NewGiftRegistryRepository(db *gorm.DB) GiftRegistryRepository {
	return &giftRegistryRepository{db: db}
}

func (r *giftRegistryRepository) Insert(ctx context.Context, registry *db_models.GiftRegistry) error {
	return r.db.WithContext(ctx).Create(registry).Error
}

func (r *giftRegistryRepository) FindWithChild(ctx context.Context, id uuid.UUID) (*db_models.GiftRegistry, error) {
	var registry db_models.GiftRegistry
	err := r.db.WithContext(ctx).Preload("Child").First(&registry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &registry, nil
}
