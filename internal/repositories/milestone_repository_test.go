package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/testutil"
)

func seedMilestone(t *testing.T, db *gorm.DB) *db_models.Milestone {
	t.Helper()
	family := testutil.SeedFamily(t, db, uuid.NewString()+"@example.com")
	child := testutil.SeedChild(t, db, family.ID, "Ada")
	m := &db_models.Milestone{FamilyID: family.ID, ChildID: child.ID, Title: "Honor roll", Privacy: db_models.PrivacyPublic}
	require.NoError(t, db.Create(m).Error)
	return m
}

func likesCount(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var m db_models.Milestone
	require.NoError(t, db.First(&m, "id = ?", id).Error)
	return m.LikesCount
}

func TestToggleLikeRestoresCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMilestoneRepository(db)
	ctx := context.Background()
	m := seedMilestone(t, db)
	liker := uuid.New()

	liked, err := repo.ToggleLike(ctx, m.ID, liker)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, likesCount(t, db, m.ID))

	liked, err = repo.ToggleLike(ctx, m.ID, liker)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, likesCount(t, db, m.ID))

	liked, err = repo.ToggleLike(ctx, m.ID, liker)
	require.NoError(t, err)
	assert.True(t, liked, "liking again after an unlike must work")
	assert.Equal(t, 1, likesCount(t, db, m.ID))
}

func TestConcurrentLikesMatchRows(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMilestoneRepository(db)
	ctx := context.Background()
	m := seedMilestone(t, db)

	const families = 25
	var wg sync.WaitGroup
	for i := 0; i < families; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ToggleLike(ctx, m.ID, uuid.New())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows, err := repo.CountLikes(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(families), rows)
	assert.Equal(t, families, likesCount(t, db, m.ID))
}

func TestConcurrentTogglesNeverGoNegative(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMilestoneRepository(db)
	ctx := context.Background()
	m := seedMilestone(t, db)
	liker := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ToggleLike(ctx, m.ID, liker)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows, err := repo.CountLikes(ctx, m.ID)
	require.NoError(t, err)
	count := likesCount(t, db, m.ID)
	assert.GreaterOrEqual(t, count, 0)
	assert.Equal(t, int(rows), count)
	assert.Equal(t, 1, count, "an odd number of toggles leaves one like")
}

func TestUnlikeGuardsAgainstNegativeCounter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMilestoneRepository(db)
	ctx := context.Background()
	m := seedMilestone(t, db)
	liker := uuid.New()

	_, err := repo.ToggleLike(ctx, m.ID, liker)
	require.NoError(t, err)
	// Counter drifted to zero out of band.
	require.NoError(t, db.Model(&db_models.Milestone{}).Where("id = ?", m.ID).UpdateColumn("likes_count", 0).Error)

	liked, err := repo.ToggleLike(ctx, m.ID, liker)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, likesCount(t, db, m.ID))
}

func TestAddCommentIncrementsCounter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMilestoneRepository(db)
	ctx := context.Background()
	m := seedMilestone(t, db)

	for _, text := range []string{"Congrats!", "So proud"} {
		require.NoError(t, repo.AddComment(ctx, &db_models.Interaction{MilestoneID: m.ID, FamilyID: uuid.New(), CommentText: text}))
	}

	var got db_models.Milestone
	require.NoError(t, db.First(&got, "id = ?", m.ID).Error)
	assert.Equal(t, 2, got.CommentsCount)

	comments, err := repo.ListComments(ctx, m.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}
