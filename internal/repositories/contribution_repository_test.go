package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/testutil"
)

func TestMarkSucceededAppliesOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContributionRepository(db)
	ctx := context.Background()

	family := testutil.SeedFamily(t, db, "f@example.com")
	child := testutil.SeedChild(t, db, family.ID, "Ada")
	other := &db_models.Contribution{ChildID: child.ID, Amount: 10, ContributionType: db_models.ContributionOneTime, StripePaymentIntentID: "pi_other"}
	target := &db_models.Contribution{ChildID: child.ID, Amount: 25.5, ContributionType: db_models.ContributionBirthday, StripePaymentIntentID: "pi_target"}
	require.NoError(t, repo.InsertWithTasks(ctx, other, nil))
	require.NoError(t, repo.InsertWithTasks(ctx, target, nil))

	applied, err := repo.MarkSucceeded(ctx, "pi_target", "ch_1")
	require.NoError(t, err)
	require.NotNil(t, applied)
	assert.Equal(t, target.ID, applied.ID)

	// Redelivery must not double count.
	_, err = repo.MarkSucceeded(ctx, "pi_target", "ch_1")
	require.NoError(t, err)

	var reloaded db_models.Contribution
	require.NoError(t, db.First(&reloaded, "id = ?", target.ID).Error)
	assert.Equal(t, "ch_1", reloaded.StripeChargeID)
	assert.Equal(t, db_models.ContributionSucceeded, reloaded.Status)

	var untouched db_models.Contribution
	require.NoError(t, db.First(&untouched, "id = ?", other.ID).Error)
	assert.Empty(t, untouched.StripeChargeID)
	assert.Equal(t, db_models.ContributionPending, untouched.Status)

	var kid db_models.Child
	require.NoError(t, db.First(&kid, "id = ?", child.ID).Error)
	assert.InDelta(t, 25.5, kid.CurrentSavings, 0.001)
}

func TestMarkSucceededUnknownIntent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContributionRepository(db)

	applied, err := repo.MarkSucceeded(context.Background(), "pi_missing", "ch_x")
	require.NoError(t, err)
	assert.Nil(t, applied)
}

func TestInsertWithTasksIsAtomic(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContributionRepository(db)
	ctx := context.Background()

	family := testutil.SeedFamily(t, db, "atomic@example.com")
	child := testutil.SeedChild(t, db, family.ID, "Bo")

	dupID := uuid.New()
	task := db_models.OutboxTask{Kind: "k", Payload: []byte(`{}`), NextRunAt: 1}
	task.ID = dupID
	require.NoError(t, NewOutboxRepository(db).Enqueue(ctx, task))

	// Reusing the task id violates the primary key, so the contribution must roll back.
	c := &db_models.Contribution{ChildID: child.ID, Amount: 5, ContributionType: db_models.ContributionOneTime, StripePaymentIntentID: "pi_atomic"}
	dup := db_models.OutboxTask{Kind: "k", Payload: []byte(`{}`), NextRunAt: 1}
	dup.ID = dupID
	assert.Error(t, repo.InsertWithTasks(ctx, c, []db_models.OutboxTask{dup}))

	var count int64
	require.NoError(t, db.Model(&db_models.Contribution{}).Where("stripe_payment_intent_id = ?", "pi_atomic").Count(&count).Error)
	assert.Zero(t, count)
}
