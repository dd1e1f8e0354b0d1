package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/testutil"
)

func TestClaimDueOnlyOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewOutboxRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Enqueue(ctx,
		db_models.OutboxTask{Kind: "due", Payload: []byte(`{}`), Status: db_models.OutboxPending, NextRunAt: 100},
		db_models.OutboxTask{Kind: "later", Payload: []byte(`{}`), Status: db_models.OutboxPending, NextRunAt: 10_000},
	))

	claimed, err := repo.ClaimDue(ctx, 500, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, "due", claimed[0].Kind)
	assert.Equal(t, db_models.OutboxRunning, claimed[0].Status)

	again, err := repo.ClaimDue(ctx, 500, 10)
	require.NoError(t, err)
	assert.Empty(t, again)

	require.NoError(t, repo.Reschedule(ctx, claimed[0].ID, 1, 600, "boom"))
	retried, err := repo.ClaimDue(ctx, 700, 10)
	require.NoError(t, err)
	require.Len(t, retried, 1)

	require.NoError(t, repo.MarkDone(ctx, retried[0].ID))
	task, err := repo.FindByID(ctx, retried[0].ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.OutboxDone, task.Status)
	assert.Equal(t, 2, task.Attempts)
}
