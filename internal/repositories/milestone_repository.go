package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"diplomakids/internal/models/db_models"
)

type MilestoneRepository interface {
	InsertWithTasks(ctx context.Context, milestone *db_models.Milestone, tasks []db_models.OutboxTask) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Milestone, error)
	CountByChild(ctx context.Context, childID uuid.UUID) (int64, error)
	// Feed lists non-private milestones from the given families, newest first.
	Feed(ctx context.Context, familyIDs []uuid.UUID, limit, offset int) ([]db_models.Milestone, error)
	// ToggleLike removes the family's like if present, otherwise adds one, and
	// moves likes_count in the same transaction.
	ToggleLike(ctx context.Context, milestoneID, familyID uuid.UUID) (bool, error)
	AddComment(ctx context.Context, comment *db_models.Interaction) error
	ListComments(ctx context.Context, milestoneID uuid.UUID, limit, offset int) ([]db_models.Interaction, error)
	CountLikes(ctx context.Context, milestoneID uuid.UUID) (int64, error)
}

type milestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) InsertWithTasks(ctx context.Context, milestone *db_models.Milestone, tasks []db_models.OutboxTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(milestone).Error; err != nil {
			return err
		}
		return enqueueTasks(tx, tasks)
	})
}

func (r *milestoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Milestone, error) {
	var milestone db_models.Milestone
	err := r.db.WithContext(ctx).First(&milestone, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &milestone, nil
}

func (r *milestoneRepository) CountByChild(ctx context.Context, childID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Milestone{}).
		Where("child_id = ?", childID).
		Count(&count).Error
	return count, err
}

func (r *milestoneRepository) Feed(ctx context.Context, familyIDs []uuid.UUID, limit, offset int) ([]db_models.Milestone, error) {
	var milestones []db_models.Milestone
	if len(familyIDs) == 0 {
		return milestones, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Child").
		Preload("Family").
		Where("family_id IN ? AND privacy <> ?", familyIDs, db_models.PrivacyPrivate).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&milestones).Error
	return milestones, err
}

func (r *milestoneRepository) ToggleLike(ctx context.Context, milestoneID, familyID uuid.UUID) (bool, error) {
	liked := false
	key := db_models.LikeKeyFor(milestoneID, familyID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Where("like_key = ?", key).Delete(&db_models.Interaction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return tx.Model(&db_models.Milestone{}).
				Where("id = ? AND likes_count > 0", milestoneID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).Error
		}

		like := db_models.Interaction{
			MilestoneID:     milestoneID,
			FamilyID:        familyID,
			InteractionType: db_models.InteractionLike,
			LikeKey:         &key,
		}
		res = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "like_key"}},
			DoNothing: true,
		}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		liked = true
		if res.RowsAffected == 0 {
			// A concurrent request already recorded and counted this like.
			return nil
		}
		return tx.Model(&db_models.Milestone{}).
			Where("id = ?", milestoneID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
	})
	return liked, err
}

func (r *milestoneRepository) AddComment(ctx context.Context, comment *db_models.Interaction) error {
	comment.InteractionType = db_models.InteractionComment
	comment.LikeKey = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&db_models.Milestone{}).
			Where("id = ?", comment.MilestoneID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
	})
}

func (r *milestoneRepository) ListComments(ctx context.Context, milestoneID uuid.UUID, limit, offset int) ([]db_models.Interaction, error) {
	var comments []db_models.Interaction
	err := r.db.WithContext(ctx).
		Where("milestone_id = ? AND interaction_type = ?", milestoneID, db_models.InteractionComment).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *milestoneRepository) CountLikes(ctx context.Context, milestoneID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Interaction{}).
		Where("milestone_id = ? AND interaction_type = ?", milestoneID, db_models.InteractionLike).
		Count(&count).Error
	return count, err
}
