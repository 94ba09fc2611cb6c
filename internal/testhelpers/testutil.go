package testhelpers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/platefull/backend/internal/models"
	"github.com/platefull/backend/internal/types"
)

// CreateTestUser creates a user whose email and username are derived from
// name so several users can coexist in one test.
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        fmt.Sprintf("%s@example.com", name),
		Username:     name,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hashed),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestTag creates a tag with a slug derived from name.
func CreateTestTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	tag := &models.Tag{
		Name:  name,
		Color: "#49B64E",
		Slug:  name,
	}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreateTestIngredient creates an ingredient with the given name and unit.
func CreateTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	ing := &models.Ingredient{
		Name:            name,
		MeasurementUnit: unit,
	}
	require.NoError(t, db.Create(ing).Error)
	return ing
}

// CreateTestRecipe creates a recipe owned by author with no tags or
// ingredients attached; use AddIngredient and AddTag to compose it.
func CreateTestRecipe(t *testing.T, db *gorm.DB, author *models.User, name string) *models.Recipe {
	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        "A test recipe",
		CookingTime: 30,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

// AddIngredient links an ingredient with an amount to a recipe.
func AddIngredient(t *testing.T, db *gorm.DB, recipe *models.Recipe, ing *models.Ingredient, amount int) {
	iq := &models.IngredientQuantity{
		RecipeID:     recipe.ID,
		IngredientID: ing.ID,
		Amount:       amount,
	}
	require.NoError(t, db.Create(iq).Error)
}

// AddTag links a tag to a recipe.
func AddTag(t *testing.T, db *gorm.DB, recipe *models.Recipe, tag *models.Tag) {
	rt := &models.RecipeTag{
		RecipeID: recipe.ID,
		TagID:    tag.ID,
	}
	require.NoError(t, db.Create(rt).Error)
}

// MockTokenValidator satisfies middleware.TokenValidator with canned
// claims, keeping handler tests independent of real JWT signing.
type MockTokenValidator struct {
	Claims *types.TokenClaims
	Error  error
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Claims, nil
}

// ClaimsFor builds token claims for an existing user.
func ClaimsFor(user *models.User) *types.TokenClaims {
	return &types.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
	}
}

// JSONMarshal marshals v, failing the test on error.
func JSONMarshal(t *testing.T, v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return data
}
