package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefull/backend/internal/models"
	"github.com/platefull/backend/internal/types"
)

var (
	ErrUnknownTag        = errors.New("tag does not exist")
	ErrUnknownIngredient = errors.New("ingredient does not exist")
)

// DefaultPageSize applies when a listing request carries no limit.
const DefaultPageSize = 6

// RecipeService handles recipe reads and writes. Writes run the
// composition validator first and replace tag/ingredient associations
// wholesale inside one transaction, so a failure partway never leaves a
// recipe with a partial ingredient set visible to readers.
type RecipeService struct {
	db        *gorm.DB
	validator *CompositionValidator
	guard     *RelationGuard
}

func NewRecipeService(db *gorm.DB, validator *CompositionValidator, guard *RelationGuard) *RecipeService {
	return &RecipeService{db: db, validator: validator, guard: guard}
}

// CreateRecipe validates the submission and persists the recipe together
// with its associations.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	if err := s.validateComposition(ctx, req.Tags, req.Ingredients, req.CookingTime); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    req.ImageURL,
		CookingTime: req.CookingTime,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return s.saveAssociations(tx, recipe.ID, req.Tags, req.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe replaces the recipe's fields and associations. Only the
// author may update; the clear-then-insert replacement runs in one
// transaction.
func (s *RecipeService) UpdateRecipe(ctx context.Context, recipeID, userID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrNotRecipeAuthor
	}
	if err := s.validateComposition(ctx, req.Tags, req.Ingredients, req.CookingTime); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         req.Name,
			"text":         req.Text,
			"cooking_time": req.CookingTime,
		}
		if req.ImageURL != "" {
			updates["image_url"] = req.ImageURL
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.IngredientQuantity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		return s.saveAssociations(tx, recipeID, req.Tags, req.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipeID)
}

// DeleteRecipe removes the recipe and its owned associations.
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return ErrNotRecipeAuthor
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.IngredientQuantity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipeID).Error
	})
}

// GetRecipe retrieves one recipe with its author, tags and ingredient
// quantities loaded.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSuchRecipe
		}
		return nil, err
	}
	return &recipe, nil
}

// SetImageURL stores the uploaded image location on the recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, recipeID, userID uuid.UUID, url string) error {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return ErrNotRecipeAuthor
	}
	return s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", recipeID).
		Update("image_url", url).Error
}

// ListRecipes applies the read-side filters and returns one page of
// recipes, newest first, with the total match count.
func (s *RecipeService) ListRecipes(ctx context.Context, viewerID *uuid.UUID, filter types.RecipeListFilter) ([]models.Recipe, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if filter.FavoritedOnly && viewerID != nil {
		query = query.Joins("JOIN favorite_recipes ON favorite_recipes.recipe_id = recipes.id AND favorite_recipes.user_id = ?", *viewerID)
	}
	if filter.InShoppingCartOnly && viewerID != nil {
		query = query.Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?", *viewerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var recipes []models.Recipe
	err := query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// BuildResponses assembles the full recipe views for a viewer, resolving
// the favorite/cart flags with one batch membership check instead of per
// recipe queries.
func (s *RecipeService) BuildResponses(ctx context.Context, viewerID *uuid.UUID, recipes []models.Recipe) ([]types.RecipeResponse, error) {
	ids := make([]uuid.UUID, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	flags, err := s.guard.RecipeMembership(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]types.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		subscribed, err := s.guard.IsFollowing(ctx, viewerID, r.AuthorID)
		if err != nil {
			return nil, err
		}

		tags := make([]types.TagResponse, 0, len(r.Tags))
		for _, t := range r.Tags {
			tags = append(tags, types.TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug})
		}
		ingredients := make([]types.IngredientInRecipe, 0, len(r.Ingredients))
		for _, q := range r.Ingredients {
			ingredients = append(ingredients, types.IngredientInRecipe{
				ID:              q.IngredientID,
				Name:            q.Ingredient.Name,
				MeasurementUnit: q.Ingredient.MeasurementUnit,
				Amount:          q.Amount,
			})
		}

		f := flags[r.ID]
		responses = append(responses, types.RecipeResponse{
			ID:   r.ID,
			Tags: tags,
			Author: types.UserResponse{
				ID:           r.Author.ID,
				Email:        r.Author.Email,
				Username:     r.Author.Username,
				FirstName:    r.Author.FirstName,
				LastName:     r.Author.LastName,
				IsSubscribed: subscribed,
			},
			Ingredients:      ingredients,
			IsFavorited:      f.IsFavorited,
			IsInShoppingCart: f.IsInShoppingCart,
			Name:             r.Name,
			Image:            r.ImageURL,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return responses, nil
}

// Summary renders the short recipe view used by relation responses.
func (s *RecipeService) Summary(r *models.Recipe) types.RecipeSummary {
	return types.RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

func (s *RecipeService) validateComposition(ctx context.Context, tags []uuid.UUID, items []types.IngredientAmount, cookingTime int) error {
	if err := s.validator.ValidateTags(tags); err != nil {
		return err
	}
	if err := s.validator.ValidateIngredients(items); err != nil {
		return err
	}
	if err := s.validator.ValidateCookingTime(cookingTime); err != nil {
		return err
	}

	var tagCount int64
	if err := s.db.WithContext(ctx).Model(&models.Tag{}).Where("id IN ?", tags).Count(&tagCount).Error; err != nil {
		return err
	}
	if tagCount != int64(len(tags)) {
		return ErrUnknownTag
	}

	ingredientIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		ingredientIDs[i] = item.ID
	}
	var ingredientCount int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id IN ?", ingredientIDs).Count(&ingredientCount).Error; err != nil {
		return err
	}
	if ingredientCount != int64(len(ingredientIDs)) {
		return ErrUnknownIngredient
	}
	return nil
}

func (s *RecipeService) saveAssociations(tx *gorm.DB, recipeID uuid.UUID, tags []uuid.UUID, items []types.IngredientAmount) error {
	recipeTags := make([]models.RecipeTag, 0, len(tags))
	for _, tagID := range tags {
		recipeTags = append(recipeTags, models.RecipeTag{RecipeID: recipeID, TagID: tagID})
	}
	if err := tx.Create(&recipeTags).Error; err != nil {
		return err
	}

	quantities := make([]models.IngredientQuantity, 0, len(items))
	for _, item := range items {
		quantities = append(quantities, models.IngredientQuantity{
			RecipeID:     recipeID,
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return tx.Create(&quantities).Error
}
