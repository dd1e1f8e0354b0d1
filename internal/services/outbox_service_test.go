package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diplomakids/internal/models/db_models"
)

func newTestWorker(f *fixture, maxAttempts int) *outboxWorker {
	return NewOutboxWorker(f.outbox, OutboxConfig{BatchSize: 10, MaxAttempts: maxAttempts}, f.metrics, f.log).(*outboxWorker)
}

func enqueue(t *testing.T, f *fixture, kind string, payload interface{}) db_models.OutboxTask {
	t.Helper()
	task, err := NewTask(kind, payload)
	require.NoError(t, err)
	require.NoError(t, f.outbox.Enqueue(context.Background(), task))
	var stored db_models.OutboxTask
	require.NoError(t, f.db.First(&stored, "kind = ?", kind).Error)
	return stored
}

func TestOutboxRunsRegisteredHandler(t *testing.T) {
	f := newFixture(t)
	w := newTestWorker(f, 3)

	var got WelcomeEmailPayload
	w.Register(TaskWelcomeEmail, func(_ context.Context, raw []byte) error {
		return decodePayload(raw, &got)
	})
	task := enqueue(t, f, TaskWelcomeEmail, WelcomeEmailPayload{Email: "a@b.c", FamilyName: "Fam"})

	n, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "a@b.c", got.Email)

	stored, err := f.outbox.FindByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.OutboxDone, stored.Status)
	assert.Equal(t, 1, stored.Attempts)

	// Done tasks are never claimed again.
	n, err = w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOutboxRetriesThenFails(t *testing.T) {
	f := newFixture(t)
	w := newTestWorker(f, 2)
	ctx := context.Background()

	calls := 0
	w.Register(TaskContributionNotify, func(context.Context, []byte) error {
		calls++
		return errors.New("smtp timeout")
	})
	task := enqueue(t, f, TaskContributionNotify, ContributionTaskPayload{ContributionID: "x"})
	base := time.Now()
	w.now = func() time.Time { return base }

	_, err := w.RunOnce(ctx)
	require.NoError(t, err)

	stored, err := f.outbox.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.OutboxPending, stored.Status)
	assert.Equal(t, 1, stored.Attempts)
	assert.Equal(t, "smtp timeout", stored.LastError)
	assert.Greater(t, stored.NextRunAt, task.NextRunAt)

	// Not due yet.
	n, err := w.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	w.now = func() time.Time { return base.Add(time.Hour) }
	_, err = w.RunOnce(ctx)
	require.NoError(t, err)

	stored, err = f.outbox.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.OutboxFailed, stored.Status)
	assert.Equal(t, 2, stored.Attempts)
	assert.Equal(t, 2, calls)
}

func TestOutboxFailsUnknownKind(t *testing.T) {
	f := newFixture(t)
	w := newTestWorker(f, 5)
	task := enqueue(t, f, "mystery.kind", map[string]string{})

	_, err := w.RunOnce(context.Background())
	require.NoError(t, err)

	stored, err := f.outbox.FindByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.OutboxFailed, stored.Status)
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, time.Second, backoff(1))
	assert.Equal(t, 4*time.Second, backoff(2))
	assert.Equal(t, 9*time.Second, backoff(3))
}
