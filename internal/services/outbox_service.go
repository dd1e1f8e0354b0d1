package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/metrics"
)

const (
	TaskContributionNotify       = "contribution.notify"
	TaskContributionAchievements = "achievements.contributions"
	TaskMilestoneAchievements    = "achievements.milestones"
	TaskWelcomeEmail             = "email.welcome"
	TaskThankYouEmail            = "email.thank_you"
)

type ContributionTaskPayload struct {
	ContributionID string `json:"contribution_id"`
}

type ChildTaskPayload struct {
	ChildID string `json:"child_id"`
}

type WelcomeEmailPayload struct {
	Email      string `json:"email"`
	FamilyName string `json:"family_name"`
}

type ThankYouEmailPayload struct {
	To              string `json:"to"`
	ChildName       string `json:"child_name"`
	ContributorName string `json:"contributor_name"`
	VideoURL        string `json:"video_url"`
}

// NewTask builds a pending task that is due immediately.
func NewTask(kind string, payload interface{}) (db_models.OutboxTask, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return db_models.OutboxTask{}, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return db_models.OutboxTask{
		Kind:      kind,
		Payload:   raw,
		Status:    db_models.OutboxPending,
		NextRunAt: time.Now().UnixMilli(),
	}, nil
}

type TaskHandler func(ctx context.Context, payload []byte) error

type OutboxConfig struct {
	BatchSize   int
	MaxAttempts int
	// Running tasks older than this are assumed abandoned by a crashed worker.
	StaleAfter time.Duration
}

type OutboxWorker interface {
	Register(kind string, handler TaskHandler)
	// RunOnce executes one batch of due tasks and returns how many it processed.
	RunOnce(ctx context.Context) (int, error)
}

type outboxWorker struct {
	repo     repositories.OutboxRepository
	cfg      OutboxConfig
	handlers map[string]TaskHandler
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
}

func NewOutboxWorker(repo repositories.OutboxRepository, cfg OutboxConfig, m *metrics.Metrics, log *zap.Logger) OutboxWorker {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 20
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 5
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 5 * time.Minute
	}
	return &outboxWorker{
		repo:     repo,
		cfg:      cfg,
		handlers: make(map[string]TaskHandler),
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

func (w *outboxWorker) Register(kind string, handler TaskHandler) {
	w.handlers[kind] = handler
}

func (w *outboxWorker) RunOnce(ctx context.Context) (int, error) {
	now := w.now()
	if released, err := w.repo.ReleaseStale(ctx, now.Add(-w.cfg.StaleAfter).UnixMilli()); err != nil {
		return 0, fmt.Errorf("release stale tasks: %w", err)
	} else if released > 0 {
		w.log.Warn("released stale outbox tasks", zap.Int64("count", released))
	}

	tasks, err := w.repo.ClaimDue(ctx, now.UnixMilli(), w.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("claim outbox tasks: %w", err)
	}

	for _, task := range tasks {
		w.execute(ctx, task)
	}
	return len(tasks), nil
}

func (w *outboxWorker) execute(ctx context.Context, task db_models.OutboxTask) {
	log := w.log.With(zap.String("task_id", task.ID.String()), zap.String("kind", task.Kind))

	handler, ok := w.handlers[task.Kind]
	if !ok {
		log.Error("no handler registered for outbox task")
		w.metrics.RecordOutboxTask(task.Kind, "failed")
		if err := w.repo.MarkFailed(ctx, task.ID, task.Attempts+1, "no handler registered"); err != nil {
			log.Error("mark outbox task failed", zap.Error(err))
		}
		return
	}

	runErr := handler(ctx, task.Payload)
	if runErr == nil {
		if err := w.repo.MarkDone(ctx, task.ID); err != nil {
			log.Error("mark outbox task done", zap.Error(err))
		}
		w.metrics.RecordOutboxTask(task.Kind, "done")
		return
	}

	attempts := task.Attempts + 1
	if attempts >= w.cfg.MaxAttempts {
		log.Error("outbox task exhausted retries", zap.Int("attempts", attempts), zap.Error(runErr))
		w.metrics.RecordOutboxTask(task.Kind, "failed")
		if err := w.repo.MarkFailed(ctx, task.ID, attempts, runErr.Error()); err != nil {
			log.Error("mark outbox task failed", zap.Error(err))
		}
		return
	}

	next := w.now().Add(backoff(attempts))
	log.Warn("outbox task failed, will retry",
		zap.Int("attempts", attempts),
		zap.Time("next_run", next),
		zap.Error(runErr))
	w.metrics.RecordOutboxTask(task.Kind, "retry")
	if err := w.repo.Reschedule(ctx, task.ID, attempts, next.UnixMilli(), runErr.Error()); err != nil {
		log.Error("reschedule outbox task", zap.Error(err))
	}
}

// backoff grows quadratically: 1s, 4s, 9s, ...
func backoff(attempts int) time.Duration {
	return time.Duration(attempts*attempts) * time.Second
}

func decodePayload(raw []byte, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode task payload: %w", err)
	}
	return nil
}
