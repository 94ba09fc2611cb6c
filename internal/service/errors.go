package service

import "errors"

// Domain errors. Each one reflects a violated business invariant rather
// than a transient infrastructure fault; handlers surface them to the
// caller and never retry. Anything else propagating out of a service is
// an internal failure.
var (
	ErrDuplicateRelation     = errors.New("relation already exists")
	ErrSelfFollow            = errors.New("users cannot follow themselves")
	ErrRelationNotFound      = errors.New("relation not found")
	ErrEmptyTagSet           = errors.New("recipe must have at least one tag")
	ErrDuplicateTag          = errors.New("recipe tags must be unique")
	ErrEmptyIngredientSet    = errors.New("recipe must have at least one ingredient")
	ErrDuplicateIngredient   = errors.New("recipe ingredients must be unique")
	ErrAmountOutOfRange      = errors.New("ingredient amount out of range")
	ErrCookingTimeOutOfRange = errors.New("cooking time out of range")
	ErrNoSuchUser            = errors.New("user not found")
	ErrNoSuchRecipe          = errors.New("recipe not found")
	ErrNotRecipeAuthor       = errors.New("only the author can modify a recipe")
	ErrInvalidRecipesLimit   = errors.New("recipes_limit must be a non-negative integer")
	ErrEmailTaken            = errors.New("email already registered")
	ErrUsernameTaken         = errors.New("username already taken")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)
