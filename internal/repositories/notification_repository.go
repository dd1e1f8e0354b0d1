package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"diplomakids/internal/models/db_models"
)

type NotificationRepository interface {
	// InsertOnce skips the insert when a row with the same SourceKey exists and
	// reports whether a row was written.
	InsertOnce(ctx context.Context, notification *db_models.Notification) (bool, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID, unreadOnly bool, limit int) ([]db_models.Notification, error)
	MarkRead(ctx context.Context, familyID, id uuid.UUID) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) InsertOnce(ctx context.Context, notification *db_models.Notification) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_key"}},
		DoNothing: true,
	}).Create(notification)
	return res.RowsAffected > 0, res.Error
}

func (r *notificationRepository) ListByFamily(ctx context.Context, familyID uuid.UUID, unreadOnly bool, limit int) ([]db_models.Notification, error) {
	var notifications []db_models.Notification
	q := r.db.WithContext(ctx).Where("family_id = ?", familyID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, familyID, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.Notification{}).
		Where("id = ? AND family_id = ?", id, familyID).
		Update("is_read", true)
	return res.RowsAffected > 0, res.Error
}
