package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/request_models"
	"diplomakids/internal/testutil"
	"diplomakids/pkg/utils"
)

func TestCreateChildSeedsStarterBadges(t *testing.T) {
	f := newFixture(t)
	svc := NewChildService(f.children)
	ctx := context.Background()
	family := testutil.SeedFamily(t, f.db, "f@example.com")
	dob := "2015-04-02"

	child, err := svc.CreateChild(ctx, family.ID, request_models.CreateChildRequest{
		FirstName: "Ada", DateOfBirth: &dob, Interests: []string{"robots", "chess"},
	})
	require.NoError(t, err)
	assert.Equal(t, db_models.DefaultSavingsGoal, child.SavingsGoal)
	assert.JSONEq(t, `["robots","chess"]`, string(child.Interests))

	badges, err := f.achievements.ListByChild(ctx, child.ID)
	require.NoError(t, err)
	ids := []string{}
	points := 0
	for _, b := range badges {
		ids = append(ids, b.BadgeID)
		points += b.Points
	}
	assert.ElementsMatch(t, []string{"welcome", "first_goal"}, ids)
	assert.Equal(t, 30, points)
}

func TestChildAccessIsScopedToFamily(t *testing.T) {
	f := newFixture(t)
	svc := NewChildService(f.children)
	ctx := context.Background()

	owner := testutil.SeedFamily(t, f.db, "owner@example.com")
	other := testutil.SeedFamily(t, f.db, "other@example.com")
	child := testutil.SeedChild(t, f.db, owner.ID, "Ada")
	name := "Eve"

	_, err := svc.GetChild(ctx, other.ID, child.ID)
	assert.ErrorIs(t, err, utils.ErrChildNotFound)

	_, err = svc.UpdateChild(ctx, other.ID, child.ID, request_models.UpdateChildRequest{FirstName: &name})
	assert.ErrorIs(t, err, utils.ErrChildNotFound)

	goal := 75000.0
	updated, err := svc.UpdateChild(ctx, owner.ID, child.ID, request_models.UpdateChildRequest{FirstName: &name, SavingsGoal: &goal})
	require.NoError(t, err)
	assert.Equal(t, "Eve", updated.FirstName)
	assert.Equal(t, 75000.0, updated.SavingsGoal)

	list, err := svc.ListChildren(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateProfileAppliesProvidedFields(t *testing.T) {
	f := newFixture(t)
	svc := NewFamilyService(f.families, f.connections)
	ctx := context.Background()
	family := testutil.SeedFamily(t, f.db, "f@example.com")
	bio := "We love learning"

	updated, err := svc.UpdateProfile(ctx, family.ID, request_models.UpdateFamilyRequest{
		Bio:         &bio,
		SocialLinks: map[string]string{"instagram": "@fam"},
	})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, family.FamilyName, updated.FamilyName)
	assert.JSONEq(t, `{"instagram":"@fam"}`, string(updated.SocialLinks))

	_, err = svc.UpdateProfile(ctx, uuid.New(), request_models.UpdateFamilyRequest{Bio: &bio})
	assert.ErrorIs(t, err, utils.ErrFamilyNotFound)
}

func TestConnectFamilies(t *testing.T) {
	f := newFixture(t)
	svc := NewFamilyService(f.families, f.connections)
	ctx := context.Background()
	me := testutil.SeedFamily(t, f.db, "me@example.com")
	friend := testutil.SeedFamily(t, f.db, "friend@example.com")

	_, err := svc.Connect(ctx, me.ID, request_models.ConnectFamilyRequest{ConnectedFamilyID: me.ID.String()})
	assert.ErrorIs(t, err, utils.ErrSelfConnection)

	_, err = svc.Connect(ctx, me.ID, request_models.ConnectFamilyRequest{ConnectedFamilyID: uuid.NewString()})
	assert.ErrorIs(t, err, utils.ErrFamilyNotFound)

	created, err := svc.Connect(ctx, me.ID, request_models.ConnectFamilyRequest{ConnectedFamilyID: friend.ID.String()})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Connect(ctx, me.ID, request_models.ConnectFamilyRequest{ConnectedFamilyID: friend.ID.String()})
	require.NoError(t, err)
	assert.False(t, created)

	connections, err := svc.ListConnections(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, connections, 1)
	assert.Equal(t, friend.ID, connections[0].ID)
}
