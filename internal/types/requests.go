package types

import "github.com/google/uuid"

// RegisterRequest is the body accepted by POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IngredientAmount references an ingredient by id with the amount used in
// one recipe.
type IngredientAmount struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount" binding:"required"`
}

// CreateRecipeRequest is the body for creating or fully updating a recipe.
// Tag and ingredient sets are validated by the composition validator
// before anything is persisted.
type CreateRecipeRequest struct {
	Name        string             `json:"name" binding:"required,max=200"`
	Text        string             `json:"text" binding:"required"`
	ImageURL    string             `json:"image"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	Ingredients []IngredientAmount `json:"ingredients"`
	Tags        []uuid.UUID        `json:"tags"`
}

// UpdateRecipeRequest mirrors CreateRecipeRequest; the ingredient and tag
// associations are replaced wholesale.
type UpdateRecipeRequest struct {
	Name        string             `json:"name" binding:"required,max=200"`
	Text        string             `json:"text" binding:"required"`
	ImageURL    string             `json:"image"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	Ingredients []IngredientAmount `json:"ingredients"`
	Tags        []uuid.UUID        `json:"tags"`
}

// RecipeListFilter carries the read-side query parameters for recipe
// listing.
type RecipeListFilter struct {
	TagSlugs           []string
	AuthorID           *uuid.UUID
	FavoritedOnly      bool
	InShoppingCartOnly bool
	Page               int
	Limit              int
}
