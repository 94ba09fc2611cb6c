package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefull/backend/internal/testhelpers"
)

func TestFavoriteLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	guard := NewRelationGuard(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "favoriter")
	author := testhelpers.CreateTestUser(t, db, "favauthor")
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Borscht")

	rel, err := guard.AddFavorite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rel.ID)

	_, err = guard.AddFavorite(ctx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrDuplicateRelation)

	require.NoError(t, guard.RemoveFavorite(ctx, user.ID, recipe.ID))
	assert.ErrorIs(t, guard.RemoveFavorite(ctx, user.ID, recipe.ID), ErrRelationNotFound)
}

func TestShoppingCartLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	guard := NewRelationGuard(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "shopper")
	author := testhelpers.CreateTestUser(t, db, "cartauthor")
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Pancakes")

	_, err := guard.AddCartItem(ctx, user.ID, recipe.ID)
	require.NoError(t, err)

	_, err = guard.AddCartItem(ctx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrDuplicateRelation)

	require.NoError(t, guard.RemoveCartItem(ctx, user.ID, recipe.ID))
	assert.ErrorIs(t, guard.RemoveCartItem(ctx, user.ID, recipe.ID), ErrRelationNotFound)
}

func TestFollowRejectsSelf(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	guard := NewRelationGuard(db)

	user := testhelpers.CreateTestUser(t, db, "narcissus")

	_, err := guard.Follow(context.Background(), user.ID, user.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	guard := NewRelationGuard(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "follower")
	author := testhelpers.CreateTestUser(t, db, "followee")

	_, err := guard.Follow(ctx, user.ID, author.ID)
	require.NoError(t, err)

	_, err = guard.Follow(ctx, user.ID, author.ID)
	assert.ErrorIs(t, err, ErrDuplicateRelation)

	following, err := guard.IsFollowing(ctx, &user.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The reverse direction is a distinct pair.
	following, err = guard.IsFollowing(ctx, &author.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, guard.Unfollow(ctx, user.ID, author.ID))
	assert.ErrorIs(t, guard.Unfollow(ctx, user.ID, author.ID), ErrRelationNotFound)
}

func TestIsFollowingAnonymousViewer(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	guard := NewRelationGuard(db)

	author := testhelpers.CreateTestUser(t, db, "someauthor")

	following, err := guard.IsFollowing(context.Background(), nil, author.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestRecipeMembership(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	guard := NewRelationGuard(db)
	ctx := context.Background()

	viewer := testhelpers.CreateTestUser(t, db, "viewer")
	author := testhelpers.CreateTestUser(t, db, "membauthor")
	favorited := testhelpers.CreateTestRecipe(t, db, author, "Favorited")
	inCart := testhelpers.CreateTestRecipe(t, db, author, "In Cart")
	both := testhelpers.CreateTestRecipe(t, db, author, "Both")
	neither := testhelpers.CreateTestRecipe(t, db, author, "Neither")

	_, err := guard.AddFavorite(ctx, viewer.ID, favorited.ID)
	require.NoError(t, err)
	_, err = guard.AddFavorite(ctx, viewer.ID, both.ID)
	require.NoError(t, err)
	_, err = guard.AddCartItem(ctx, viewer.ID, inCart.ID)
	require.NoError(t, err)
	_, err = guard.AddCartItem(ctx, viewer.ID, both.ID)
	require.NoError(t, err)

	ids := []uuid.UUID{favorited.ID, inCart.ID, both.ID, neither.ID}
	flags, err := guard.RecipeMembership(ctx, &viewer.ID, ids)
	require.NoError(t, err)
	require.Len(t, flags, 4)

	assert.Equal(t, MembershipFlags{IsFavorited: true}, flags[favorited.ID])
	assert.Equal(t, MembershipFlags{IsInShoppingCart: true}, flags[inCart.ID])
	assert.Equal(t, MembershipFlags{IsFavorited: true, IsInShoppingCart: true}, flags[both.ID])
	assert.Equal(t, MembershipFlags{}, flags[neither.ID])
}

func TestRecipeMembershipAnonymousViewer(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	guard := NewRelationGuard(db)

	author := testhelpers.CreateTestUser(t, db, "anonauthor")
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Public Stew")

	flags, err := guard.RecipeMembership(context.Background(), nil, []uuid.UUID{recipe.ID})
	require.NoError(t, err)
	assert.Equal(t, MembershipFlags{}, flags[recipe.ID])
}
