package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefull/backend/internal/models"
)

// RelationKind names one of the guarded relation types.
type RelationKind string

const (
	KindFavorite     RelationKind = "favorite"
	KindShoppingCart RelationKind = "shopping_cart"
	KindFollow       RelationKind = "follow"
)

// MembershipFlags answers the two per-recipe booleans for list views.
type MembershipFlags struct {
	IsFavorited      bool
	IsInShoppingCart bool
}

// RelationGuard gates creation and removal of favorite, shopping-cart and
// follow records. The pre-check-then-insert is a convenience; the unique
// constraint in the backing store is the authority, so a racing duplicate
// insert still comes back as ErrDuplicateRelation.
type RelationGuard struct {
	db *gorm.DB
}

func NewRelationGuard(db *gorm.DB) *RelationGuard {
	return &RelationGuard{db: db}
}

func (g *RelationGuard) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.FavoriteRecipe, error) {
	rel := &models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}
	if err := g.add(ctx, &models.FavoriteRecipe{}, rel, "user_id = ? AND recipe_id = ?", userID, recipeID); err != nil {
		return nil, err
	}
	return rel, nil
}

func (g *RelationGuard) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return g.remove(ctx, &models.FavoriteRecipe{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

func (g *RelationGuard) AddCartItem(ctx context.Context, userID, recipeID uuid.UUID) (*models.ShoppingCart, error) {
	rel := &models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := g.add(ctx, &models.ShoppingCart{}, rel, "user_id = ? AND recipe_id = ?", userID, recipeID); err != nil {
		return nil, err
	}
	return rel, nil
}

func (g *RelationGuard) RemoveCartItem(ctx context.Context, userID, recipeID uuid.UUID) error {
	return g.remove(ctx, &models.ShoppingCart{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

func (g *RelationGuard) Follow(ctx context.Context, userID, authorID uuid.UUID) (*models.Follow, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}
	rel := &models.Follow{UserID: userID, AuthorID: authorID}
	if err := g.add(ctx, &models.Follow{}, rel, "user_id = ? AND author_id = ?", userID, authorID); err != nil {
		return nil, err
	}
	return rel, nil
}

func (g *RelationGuard) Unfollow(ctx context.Context, userID, authorID uuid.UUID) error {
	return g.remove(ctx, &models.Follow{}, "user_id = ? AND author_id = ?", userID, authorID)
}

// IsFollowing reports whether user subscribes to author. A nil user means
// an unauthenticated viewer and short-circuits to false.
func (g *RelationGuard) IsFollowing(ctx context.Context, userID *uuid.UUID, authorID uuid.UUID) (bool, error) {
	if userID == nil {
		return false, nil
	}
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", *userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecipeMembership resolves is-favorited / is-in-cart for a set of recipe
// ids in two queries total. An unauthenticated viewer gets all-false with
// no lookup.
func (g *RelationGuard) RecipeMembership(ctx context.Context, viewerID *uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]MembershipFlags, error) {
	flags := make(map[uuid.UUID]MembershipFlags, len(recipeIDs))
	for _, id := range recipeIDs {
		flags[id] = MembershipFlags{}
	}
	if viewerID == nil || len(recipeIDs) == 0 {
		return flags, nil
	}

	var favorites []models.FavoriteRecipe
	if err := g.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", *viewerID, recipeIDs).
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	for _, f := range favorites {
		entry := flags[f.RecipeID]
		entry.IsFavorited = true
		flags[f.RecipeID] = entry
	}

	var cart []models.ShoppingCart
	if err := g.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", *viewerID, recipeIDs).
		Find(&cart).Error; err != nil {
		return nil, err
	}
	for _, c := range cart {
		entry := flags[c.RecipeID]
		entry.IsInShoppingCart = true
		flags[c.RecipeID] = entry
	}

	return flags, nil
}

func (g *RelationGuard) add(ctx context.Context, model, rel interface{}, query string, args ...interface{}) error {
	var count int64
	if err := g.db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateRelation
	}
	if err := g.db.WithContext(ctx).Create(rel).Error; err != nil {
		// Lost the race against a concurrent insert of the same pair.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRelation
		}
		return err
	}
	return nil
}

func (g *RelationGuard) remove(ctx context.Context, model interface{}, query string, args ...interface{}) error {
	result := g.db.WithContext(ctx).Where(query, args...).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	// Retrying a completed removal reports not-found; callers treat that
	// as a terminal state, not something to retry.
	if result.RowsAffected == 0 {
		return ErrRelationNotFound
	}
	return nil
}
