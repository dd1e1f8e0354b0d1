package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"diplomakids/internal/models/db_models"
)

type OutboxRepository interface {
	Enqueue(ctx context.Context, tasks ...db_models.OutboxTask) error
	// ClaimDue moves up to limit due pending tasks to running and returns the ones
	// this caller won.
	ClaimDue(ctx context.Context, nowMillis int64, limit int) ([]db_models.OutboxTask, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	Reschedule(ctx context.Context, id uuid.UUID, attempts int, nextRunAt int64, lastErr string) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string) error
	// ReleaseStale returns running tasks untouched since before cutoff to pending.
	ReleaseStale(ctx context.Context, cutoffMillis int64) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.OutboxTask, error)
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Enqueue(ctx context.Context, tasks ...db_models.OutboxTask) error {
	return enqueueTasks(r.db.WithContext(ctx), tasks)
}

// enqueueTasks lets other repositories write tasks inside their own transaction.
func enqueueTasks(tx *gorm.DB, tasks []db_models.OutboxTask) error {
	if len(tasks) == 0 {
		return nil
	}
	return tx.Create(&tasks).Error
}

func (r *outboxRepository) ClaimDue(ctx context.Context, nowMillis int64, limit int) ([]db_models.OutboxTask, error) {
	var due []db_models.OutboxTask
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_run_at <= ?", db_models.OutboxPending, nowMillis).
		Order("next_run_at ASC").
		Limit(limit).
		Find(&due).Error
	if err != nil {
		return nil, err
	}

	claimed := make([]db_models.OutboxTask, 0, len(due))
	for _, task := range due {
		res := r.db.WithContext(ctx).
			Model(&db_models.OutboxTask{}).
			Where("id = ? AND status = ?", task.ID, db_models.OutboxPending).
			Updates(map[string]interface{}{"status": db_models.OutboxRunning})
		if res.Error != nil {
			return claimed, res.Error
		}
		if res.RowsAffected == 1 {
			task.Status = db_models.OutboxRunning
			claimed = append(claimed, task)
		}
	}
	return claimed, nil
}

func (r *outboxRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.OutboxTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   db_models.OutboxDone,
			"attempts": gorm.Expr("attempts + ?", 1),
		}).Error
}

func (r *outboxRepository) Reschedule(ctx context.Context, id uuid.UUID, attempts int, nextRunAt int64, lastErr string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.OutboxTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      db_models.OutboxPending,
			"attempts":    attempts,
			"next_run_at": nextRunAt,
			"last_error":  lastErr,
		}).Error
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.OutboxTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     db_models.OutboxFailed,
			"attempts":   attempts,
			"last_error": lastErr,
		}).Error
}

func (r *outboxRepository) ReleaseStale(ctx context.Context, cutoffMillis int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.OutboxTask{}).
		Where("status = ? AND updated_at < ?", db_models.OutboxRunning, cutoffMillis).
		Updates(map[string]interface{}{"status": db_models.OutboxPending})
	return res.RowsAffected, res.Error
}

func (r *outboxRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.OutboxTask, error) {
	var task db_models.OutboxTask
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}
