package services

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diplomakids/internal/models/request_models"
	"diplomakids/internal/repositories"
	"diplomakids/internal/testutil"
	"diplomakids/pkg/utils"
)

func TestGiftRegistryShareLinkAndQRCode(t *testing.T) {
	f := newFixture(t)
	svc := NewGiftRegistryService("https://diplomakids.com/", repositories.NewGiftRegistryRepository(f.db), f.children)
	ctx := context.Background()

	family := testutil.SeedFamily(t, f.db, "f@example.com")
	child := testutil.SeedChild(t, f.db, family.ID, "Ada")
	date := "2025-06-01"

	registry, err := svc.Create(ctx, family.ID, request_models.CreateGiftRegistryRequest{
		ChildID: child.ID.String(), EventType: "graduation", EventDate: &date, TargetAmount: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://diplomakids.com/gift/"+registry.ID.String(), registry.ShareURL)

	require.True(t, strings.HasPrefix(registry.QRCodeURL, "data:image/png;base64,"))
	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(registry.QRCodeURL, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))

	view, err := svc.Get(ctx, registry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", view.ChildFirstName)
	assert.Equal(t, registry.ShareURL, view.ShareURL)
	require.NotNil(t, view.EventDate)
	assert.Equal(t, date, view.EventDate.Format(utils.DateLayout))

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, utils.ErrRegistryNotFound)
}

func TestGiftRegistryRequiresOwnChild(t *testing.T) {
	f := newFixture(t)
	svc := NewGiftRegistryService("https://diplomakids.com", repositories.NewGiftRegistryRepository(f.db), f.children)

	owner := testutil.SeedFamily(t, f.db, "owner@example.com")
	other := testutil.SeedFamily(t, f.db, "other@example.com")
	child := testutil.SeedChild(t, f.db, owner.ID, "Ada")

	_, err := svc.Create(context.Background(), other.ID, request_models.CreateGiftRegistryRequest{
		ChildID: child.ID.String(), EventType: "birthday",
	})
	assert.ErrorIs(t, err, utils.ErrChildNotFound)
}

func TestGoalsCreateAndList(t *testing.T) {
	f := newFixture(t)
	svc := NewGoalService(repositories.NewGoalRepository(f.db), f.children)
	ctx := context.Background()

	family := testutil.SeedFamily(t, f.db, "f@example.com")
	child := testutil.SeedChild(t, f.db, family.ID, "Ada")
	bad := "next spring"

	_, err := svc.CreateGoal(ctx, family.ID, request_models.CreateGoalRequest{
		ChildID: child.ID.String(), GoalName: "Laptop", TargetAmount: 900, TargetDate: &bad,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.CreateGoal(ctx, family.ID, request_models.CreateGoalRequest{ChildID: child.ID.String(), GoalName: "Laptop", TargetAmount: 900})
	require.NoError(t, err)
	_, err = svc.CreateGoal(ctx, family.ID, request_models.CreateGoalRequest{ChildID: child.ID.String(), GoalName: "College", TargetAmount: 50000, IsPrimary: true})
	require.NoError(t, err)

	goals, err := svc.ListByChild(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "College", goals[0].GoalName)
}

func TestQRCodeDataURI(t *testing.T) {
	uri, err := QRCodeDataURI("https://diplomakids.com/gift/abc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
