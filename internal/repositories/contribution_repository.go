package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"diplomakids/internal/models/db_models"
)

type ContributionRepository interface {
	// InsertWithTasks stores the contribution together with its follow-up tasks.
	InsertWithTasks(ctx context.Context, contribution *db_models.Contribution, tasks []db_models.OutboxTask) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Contribution, error)
	ListByChild(ctx context.Context, childID uuid.UUID, limit, offset int) ([]db_models.Contribution, error)
	// HistoryByChild returns every contribution oldest first.
	HistoryByChild(ctx context.Context, childID uuid.UUID) ([]db_models.Contribution, error)
	SumByChild(ctx context.Context, childID uuid.UUID) (float64, error)
	// MarkSucceeded applies a settled payment. It returns nil when no contribution
	// carries the intent id; the child's savings only move on the first transition.
	MarkSucceeded(ctx context.Context, paymentIntentID, chargeID string) (*db_models.Contribution, error)
	// UpdateThankYou records the video and queues its delivery tasks together.
	UpdateThankYou(ctx context.Context, id uuid.UUID, videoURL string, tasks []db_models.OutboxTask) error
}

type contributionRepository struct {
	db *gorm.DB
}

func NewContributionRepository(db *gorm.DB) ContributionRepository {
	return &contributionRepository{db: db}
}

func (r *contributionRepository) InsertWithTasks(ctx context.Context, contribution *db_models.Contribution, tasks []db_models.OutboxTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contribution).Error; err != nil {
			return err
		}
		return enqueueTasks(tx, tasks)
	})
}

func (r *contributionRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Contribution, error) {
	var contribution db_models.Contribution
	err := r.db.WithContext(ctx).
		Preload("Child").
		Preload("Child.Family").
		First(&contribution, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contribution, nil
}

func (r *contributionRepository) ListByChild(ctx context.Context, childID uuid.UUID, limit, offset int) ([]db_models.Contribution, error) {
	var contributions []db_models.Contribution
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&contributions).Error
	return contributions, err
}

func (r *contributionRepository) HistoryByChild(ctx context.Context, childID uuid.UUID) ([]db_models.Contribution, error) {
	var contributions []db_models.Contribution
	err := r.db.WithContext(ctx).
		Select("id", "amount", "created_at").
		Where("child_id = ?", childID).
		Order("created_at ASC").
		Find(&contributions).Error
	return contributions, err
}

func (r *contributionRepository) SumByChild(ctx context.Context, childID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&db_models.Contribution{}).
		Where("child_id = ?", childID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *contributionRepository) MarkSucceeded(ctx context.Context, paymentIntentID, chargeID string) (*db_models.Contribution, error) {
	var applied *db_models.Contribution
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contribution db_models.Contribution
		if err := tx.First(&contribution, "stripe_payment_intent_id = ?", paymentIntentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		res := tx.Model(&db_models.Contribution{}).
			Where("id = ? AND status <> ?", contribution.ID, db_models.ContributionSucceeded).
			Updates(map[string]interface{}{
				"stripe_charge_id": chargeID,
				"status":           db_models.ContributionSucceeded,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			err := tx.Model(&db_models.Child{}).
				Where("id = ?", contribution.ChildID).
				UpdateColumn("current_savings", gorm.Expr("current_savings + ?", contribution.Amount)).Error
			if err != nil {
				return err
			}
		} else if chargeID != "" && contribution.StripeChargeID != chargeID {
			// Redelivery with a different charge id keeps the latest one.
			if err := tx.Model(&db_models.Contribution{}).
				Where("id = ?", contribution.ID).
				Update("stripe_charge_id", chargeID).Error; err != nil {
				return err
			}
		}

		if chargeID != "" {
			contribution.StripeChargeID = chargeID
		}
		contribution.Status = db_models.ContributionSucceeded
		applied = &contribution
		return nil
	})
	return applied, err
}

func (r *contributionRepository) UpdateThankYou(ctx context.Context, id uuid.UUID, videoURL string, tasks []db_models.OutboxTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&db_models.Contribution{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"thank_you_video_url": videoURL,
				"thank_you_sent":      true,
			}).Error
		if err != nil {
			return err
		}
		return enqueueTasks(tx, tasks)
	})
}
