package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/request_models"
	"diplomakids/internal/repositories"
	"diplomakids/internal/testutil"
	"diplomakids/pkg/utils"
)

func TestNotifyContributionEmailsAndRecords(t *testing.T) {
	f := newFixture(t)
	transport := &recordingTransport{}
	svc := NewNotificationService(f.notifications, f.contributions, newTestMailService(transport), f.log)
	ctx := context.Background()

	family := testutil.SeedFamily(t, f.db, "parent@example.com")
	child := testutil.SeedChild(t, f.db, family.ID, "Ada")
	contribution := &db_models.Contribution{
		ChildID: child.ID, Amount: 75, ContributionType: db_models.ContributionBirthday,
		ContributorName: "Aunt May", StripePaymentIntentID: "pi_n",
	}
	require.NoError(t, f.contributions.InsertWithTasks(ctx, contribution, nil))

	handler := ContributionNotifyHandler(svc)
	payload, _ := json.Marshal(ContributionTaskPayload{ContributionID: contribution.ID.String()})
	require.NoError(t, handler(ctx, payload))

	require.Len(t, transport.sent, 1)
	assert.Equal(t, "parent@example.com", transport.sent[0].to)

	list, err := svc.List(ctx, family.ID, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, NotificationContribution, list[0].Type)
	assert.Equal(t, "New $75.00 contribution!", list[0].Title)
	assert.JSONEq(t, `{"contribution_id":"`+contribution.ID.String()+`"}`, string(list[0].Data))

	ok, err := svc.MarkRead(ctx, uuid.New(), list[0].ID)
	require.NoError(t, err)
	assert.False(t, ok, "other families cannot mark it read")

	ok, err = svc.MarkRead(ctx, family.ID, list[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	unread, err := svc.List(ctx, family.ID, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestNotifyContributionRetryKeepsSingleNotification(t *testing.T) {
	f := newFixture(t)
	transport := &recordingTransport{err: errors.Join(utils.ErrMailDelivery, errors.New("smtp down"))}
	svc := NewNotificationService(f.notifications, f.contributions, newTestMailService(transport), f.log)
	ctx := context.Background()

	family := testutil.SeedFamily(t, f.db, "retry@example.com")
	child := testutil.SeedChild(t, f.db, family.ID, "Ada")
	contribution := &db_models.Contribution{
		ChildID: child.ID, Amount: 20, ContributionType: db_models.ContributionOneTime, StripePaymentIntentID: "pi_retry",
	}
	require.NoError(t, f.contributions.InsertWithTasks(ctx, contribution, nil))

	// Mail outage: the notification is still recorded.
	assert.Error(t, svc.NotifyContribution(ctx, contribution.ID))
	list, err := svc.List(ctx, family.ID, false)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Retry after recovery sends the email without a second row.
	transport.mu.Lock()
	transport.err = nil
	transport.mu.Unlock()
	require.NoError(t, svc.NotifyContribution(ctx, contribution.ID))
	assert.Len(t, transport.sent, 1)

	list, err = svc.List(ctx, family.ID, false)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNotifyUnknownContributionIsNoop(t *testing.T) {
	f := newFixture(t)
	transport := &recordingTransport{}
	svc := NewNotificationService(f.notifications, f.contributions, newTestMailService(transport), f.log)

	require.NoError(t, svc.NotifyContribution(context.Background(), uuid.New()))
	assert.Empty(t, transport.sent)
}

func TestLiteracyCompletionAwardsBadgeOnce(t *testing.T) {
	f := newFixture(t)
	svc := NewLiteracyService(repositories.NewLiteracyRepository(f.db), f.children, f.achievementService())
	ctx := context.Background()
	family := testutil.SeedFamily(t, f.db, "f@example.com")
	child := testutil.SeedChild(t, f.db, family.ID, "Ada")

	assert.Len(t, svc.ListModules(), 3)

	_, err := svc.UpdateProgress(ctx, request_models.LiteracyProgressRequest{ChildID: child.ID.String(), ModuleID: "astrology", CompletionPercentage: 10})
	assert.Error(t, err)

	progress, err := svc.UpdateProgress(ctx, request_models.LiteracyProgressRequest{ChildID: child.ID.String(), ModuleID: "compound_interest", CompletionPercentage: 40})
	require.NoError(t, err)
	assert.Nil(t, progress.CompletedAt)

	for i := 0; i < 2; i++ {
		progress, err = svc.UpdateProgress(ctx, request_models.LiteracyProgressRequest{ChildID: child.ID.String(), ModuleID: "compound_interest", CompletionPercentage: 100})
		require.NoError(t, err)
		assert.NotNil(t, progress.CompletedAt)
	}

	var rows int64
	f.db.Model(&db_models.LiteracyProgress{}).Where("child_id = ?", child.ID).Count(&rows)
	assert.EqualValues(t, 1, rows)

	var stored db_models.LiteracyProgress
	require.NoError(t, f.db.First(&stored, "child_id = ?", child.ID).Error)
	assert.Equal(t, 100, stored.CompletionPercentage)

	var badges int64
	f.db.Model(&db_models.Achievement{}).Where("child_id = ? AND badge_id = ?", child.ID, "literacy_compound_interest").Count(&badges)
	assert.EqualValues(t, 1, badges)
}
