package store_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voteboard-dev/voteboard/internal/models"
	"github.com/voteboard-dev/voteboard/internal/store"
	"github.com/voteboard-dev/voteboard/internal/testutil"
)

func TestListFeaturesOrderByVotes(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, "owner", "owner@example.com")
	voterA := testutil.CreateTestUser(t, "voterA", "a@example.com")
	voterB := testutil.CreateTestUser(t, "voterB", "b@example.com")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// popular: 2 votes; older/newer: 1 vote each, created a day apart.
	popular := testutil.CreateTestFeature(t, owner.ID, "popular", base)
	older := testutil.CreateTestFeature(t, owner.ID, "older", base.Add(24*time.Hour))
	newer := testutil.CreateTestFeature(t, owner.ID, "newer", base.Add(48*time.Hour))

	for _, voterID := range []uint{voterA.ID, voterB.ID} {
		_, err := store.ToggleVote(ctx, voterID, popular.ID)
		require.NoError(t, err)
	}

	_, err := store.ToggleVote(ctx, voterA.ID, older.ID)
	require.NoError(t, err)
	_, err = store.ToggleVote(ctx, voterA.ID, newer.ID)
	require.NoError(t, err)

	views, err := store.ListFeatures(ctx, store.ListOptions{SortBy: store.SortByVotes})
	require.NoError(t, err)
	require.Len(t, views, 3)

	// Highest count first; the tie between older and newer breaks toward
	// the earlier proposal.
	assert.Equal(t, "popular", views[0].Title)
	assert.Equal(t, "older", views[1].Title)
	assert.Equal(t, "newer", views[2].Title)

	for i := 1; i < len(views); i++ {
		assert.GreaterOrEqual(t, views[i-1].VoteCount, views[i].VoteCount)
	}
}

func TestListFeaturesOrderByCreatedAt(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, "owner", "owner@example.com")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testutil.CreateTestFeature(t, owner.ID, "first", base)
	testutil.CreateTestFeature(t, owner.ID, "second", base.Add(time.Hour))
	testutil.CreateTestFeature(t, owner.ID, "third", base.Add(2*time.Hour))

	views, err := store.ListFeatures(ctx, store.ListOptions{SortBy: store.SortByCreatedAt})
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "third", views[0].Title)
	assert.Equal(t, "second", views[1].Title)
	assert.Equal(t, "first", views[2].Title)
}

func TestListFeaturesPagination(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, "owner", "owner@example.com")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		testutil.CreateTestFeature(t, owner.ID, "feature", base.Add(time.Duration(i)*time.Minute))
	}

	seen := make(map[uint]bool)

	for page := 1; page <= 3; page++ {
		views, err := store.ListFeatures(ctx, store.ListOptions{Page: page, PageSize: 2})
		require.NoError(t, err)

		if page < 3 {
			require.Len(t, views, 2)
		} else {
			require.Len(t, views, 1)
		}

		for _, view := range views {
			assert.False(t, seen[view.ID], "feature %d returned on more than one page", view.ID)
			seen[view.ID] = true
		}
	}

	assert.Len(t, seen, 5)

	// Out-of-range pages are empty, not an error.
	views, err := store.ListFeatures(ctx, store.ListOptions{Page: 10, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, views)

	// A page so large the offset would overflow is still just an empty
	// page, never a wrap-around back to page 1.
	views, err = store.ListFeatures(ctx, store.ListOptions{Page: math.MaxInt, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, views)

	views, err = store.ListFeatures(ctx, store.ListOptions{Page: math.MaxInt / 2, PageSize: 100})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListFeaturesUserVoted(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, "owner", "owner@example.com")
	voter := testutil.CreateTestUser(t, "voter", "voter@example.com")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	liked := testutil.CreateTestFeature(t, owner.ID, "liked", base)
	testutil.CreateTestFeature(t, owner.ID, "ignored", base.Add(time.Minute))

	_, err := store.ToggleVote(ctx, voter.ID, liked.ID)
	require.NoError(t, err)

	views, err := store.ListFeatures(ctx, store.ListOptions{RequestingUserID: voter.ID})
	require.NoError(t, err)
	require.Len(t, views, 2)

	byTitle := make(map[string]bool)
	for _, view := range views {
		byTitle[view.Title] = view.UserVoted
		assert.Equal(t, "owner", view.Username)
	}

	assert.True(t, byTitle["liked"])
	assert.False(t, byTitle["ignored"])

	// Anonymous listing never reports a vote.
	views, err = store.ListFeatures(ctx, store.ListOptions{})
	require.NoError(t, err)

	for _, view := range views {
		assert.False(t, view.UserVoted)
	}
}

func TestUpdateFeatureOwnerOnly(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, "owner", "owner@example.com")
	intruder := testutil.CreateTestUser(t, "intruder", "intruder@example.com")
	feature := testutil.CreateTestFeature(t, owner.ID, "original", time.Now())

	newTitle := "renamed"
	newStatus := models.StatusInProgress

	_, err := store.UpdateFeature(ctx, intruder.ID, feature.ID, store.FeatureUpdate{Title: &newTitle})
	require.ErrorIs(t, err, store.ErrForbidden)

	updated, err := store.UpdateFeature(ctx, owner.ID, feature.ID, store.FeatureUpdate{
		Title:  &newTitle,
		Status: &newStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, models.StatusInProgress, updated.Status)
}

func TestDeleteFeatureCascadesVotes(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, "owner", "owner@example.com")
	voter := testutil.CreateTestUser(t, "voter", "voter@example.com")
	feature := testutil.CreateTestFeature(t, owner.ID, "doomed", time.Now())

	_, err := store.ToggleVote(ctx, voter.ID, feature.ID)
	require.NoError(t, err)

	require.NoError(t, store.DeleteFeature(ctx, owner.ID, feature.ID))

	_, err = store.GetFeature(ctx, feature.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	var votes int64
	require.NoError(t, gdb.Model(&models.Vote{}).Where("feature_id = ?", feature.ID).Count(&votes).Error)
	assert.Zero(t, votes)

	views, err := store.ListFeatures(ctx, store.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDeleteFeatureForbidden(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, "owner", "owner@example.com")
	intruder := testutil.CreateTestUser(t, "intruder", "intruder@example.com")
	feature := testutil.CreateTestFeature(t, owner.ID, "protected", time.Now())

	err := store.DeleteFeature(ctx, intruder.ID, feature.ID)
	require.ErrorIs(t, err, store.ErrForbidden)

	_, err = store.GetFeature(ctx, feature.ID)
	require.NoError(t, err)
}
