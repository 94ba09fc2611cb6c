package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefull/backend/internal/testhelpers"
	"github.com/platefull/backend/internal/types"
)

func TestCreateRecipeEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	author := testhelpers.CreateTestUser(t, db, "apicreator")
	token := tokenFor(t, db, author)
	tag := testhelpers.CreateTestTag(t, db, "apidinner")
	ing := testhelpers.CreateTestIngredient(t, db, "pasta", "g")

	body := map[string]interface{}{
		"name":         "Carbonara",
		"text":         "Boil pasta, mix.",
		"cooking_time": 25,
		"tags":         []string{tag.ID.String()},
		"ingredients": []map[string]interface{}{
			{"id": ing.ID.String(), "amount": 400},
		},
	}

	// Writes require authentication.
	w := doRequest(router, http.MethodPost, "/api/v1/recipes", "", body)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/recipes", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.RecipeResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Carbonara", resp.Name)
	assert.Equal(t, "apicreator", resp.Author.Username)
	require.Len(t, resp.Ingredients, 1)
	assert.Equal(t, 400, resp.Ingredients[0].Amount)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "apidinner", resp.Tags[0].Slug)
}

func TestCreateRecipeEndpointRejectsBadComposition(t *testing.T) {
	router, db := setupTestRouter(t)

	author := testhelpers.CreateTestUser(t, db, "apibadcomp")
	token := tokenFor(t, db, author)
	tag := testhelpers.CreateTestTag(t, db, "badcomp")
	ing := testhelpers.CreateTestIngredient(t, db, "butter", "g")

	// Out-of-range amount.
	w := doRequest(router, http.MethodPost, "/api/v1/recipes", token, map[string]interface{}{
		"name":         "Too Much Butter",
		"text":         "Melt.",
		"cooking_time": 5,
		"tags":         []string{tag.ID.String()},
		"ingredients": []map[string]interface{}{
			{"id": ing.ID.String(), "amount": 50000},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No tags at all.
	w = doRequest(router, http.MethodPost, "/api/v1/recipes", token, map[string]interface{}{
		"name":         "Untagged",
		"text":         "Cook.",
		"cooking_time": 5,
		"tags":         []string{},
		"ingredients": []map[string]interface{}{
			{"id": ing.ID.String(), "amount": 10},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRecipeEndpointAuthorOnly(t *testing.T) {
	router, db := setupTestRouter(t)

	author := testhelpers.CreateTestUser(t, db, "apiowner")
	stranger := testhelpers.CreateTestUser(t, db, "apistranger")
	tag := testhelpers.CreateTestTag(t, db, "apiupdate")
	ing := testhelpers.CreateTestIngredient(t, db, "onion", "pcs")

	recipe := testhelpers.CreateTestRecipe(t, db, author, "Original")
	testhelpers.AddTag(t, db, recipe, tag)
	testhelpers.AddIngredient(t, db, recipe, ing, 2)

	body := map[string]interface{}{
		"name":         "Renamed",
		"text":         "Still cooking.",
		"cooking_time": 15,
		"tags":         []string{tag.ID.String()},
		"ingredients": []map[string]interface{}{
			{"id": ing.ID.String(), "amount": 3},
		},
	}

	path := fmt.Sprintf("/api/v1/recipes/%s", recipe.ID)

	w := doRequest(router, http.MethodPatch, path, tokenFor(t, db, stranger), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, http.MethodPatch, path, tokenFor(t, db, author), body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Equal(t, 15, resp.CookingTime)
}

func TestDeleteRecipeEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	author := testhelpers.CreateTestUser(t, db, "apideleter")
	token := tokenFor(t, db, author)
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Ephemeral")

	path := fmt.Sprintf("/api/v1/recipes/%s", recipe.ID)

	w := doRequest(router, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoriteEndpoints(t *testing.T) {
	router, db := setupTestRouter(t)

	user := testhelpers.CreateTestUser(t, db, "apifav")
	token := tokenFor(t, db, user)
	author := testhelpers.CreateTestUser(t, db, "apifavauthor")
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Favorite Me")

	path := fmt.Sprintf("/api/v1/recipes/%s/favorite", recipe.ID)

	w := doRequest(router, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var summary types.RecipeSummary
	decodeBody(t, w, &summary)
	assert.Equal(t, recipe.ID, summary.ID)
	assert.Equal(t, "Favorite Me", summary.Name)

	// Favoriting twice is rejected.
	w = doRequest(router, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Removing an absent favorite reports not found.
	w = doRequest(router, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoriteUnknownRecipe(t *testing.T) {
	router, db := setupTestRouter(t)

	user := testhelpers.CreateTestUser(t, db, "apifavmissing")
	token := tokenFor(t, db, user)

	path := fmt.Sprintf("/api/v1/recipes/%s/favorite", uuid.New())
	w := doRequest(router, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShoppingCartEndpoints(t *testing.T) {
	router, db := setupTestRouter(t)

	user := testhelpers.CreateTestUser(t, db, "apicart")
	token := tokenFor(t, db, user)
	author := testhelpers.CreateTestUser(t, db, "apicartauthor")
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Cart Me")

	path := fmt.Sprintf("/api/v1/recipes/%s/shopping_cart", recipe.ID)

	w := doRequest(router, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	router, db := setupTestRouter(t)

	user := testhelpers.CreateTestUser(t, db, "apidownloader")
	token := tokenFor(t, db, user)
	author := testhelpers.CreateTestUser(t, db, "apidlauthor")

	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")
	milk := testhelpers.CreateTestIngredient(t, db, "milk", "ml")

	bread := testhelpers.CreateTestRecipe(t, db, author, "Bread")
	testhelpers.AddIngredient(t, db, bread, flour, 300)
	pancakes := testhelpers.CreateTestRecipe(t, db, author, "Pancakes")
	testhelpers.AddIngredient(t, db, pancakes, flour, 200)
	testhelpers.AddIngredient(t, db, pancakes, milk, 250)

	for _, r := range []string{bread.ID.String(), pancakes.ID.String()} {
		w := doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/shopping_cart", r), token, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(router, http.MethodGet, "/api/v1/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, `attachment; filename="apidownloader_shopping_list.txt"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "flour: 500g\nmilk: 250ml\n", w.Body.String())
}

func TestDownloadShoppingCartRequiresAuth(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/recipes/download_shopping_cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListRecipesEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	author := testhelpers.CreateTestUser(t, db, "apilister")
	other := testhelpers.CreateTestUser(t, db, "apiother")
	viewer := testhelpers.CreateTestUser(t, db, "apiviewer")
	token := tokenFor(t, db, viewer)

	veg := testhelpers.CreateTestTag(t, db, "apiveg")

	salad := testhelpers.CreateTestRecipe(t, db, author, "Salad")
	testhelpers.AddTag(t, db, salad, veg)
	testhelpers.CreateTestRecipe(t, db, other, "Steak")

	var resp struct {
		Count   int64                  `json:"count"`
		Results []types.RecipeResponse `json:"results"`
	}

	w := doRequest(router, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Equal(t, int64(2), resp.Count)

	w = doRequest(router, http.MethodGet, "/api/v1/recipes?tags=apiveg", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	require.Equal(t, int64(1), resp.Count)
	assert.Equal(t, "Salad", resp.Results[0].Name)

	w = doRequest(router, http.MethodGet, "/api/v1/recipes?author="+author.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Equal(t, int64(1), resp.Count)

	// The favorited filter needs a viewer.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/favorite", salad.ID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/recipes?is_favorited=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	require.Equal(t, int64(1), resp.Count)
	assert.True(t, resp.Results[0].IsFavorited)

	w = doRequest(router, http.MethodGet, "/api/v1/recipes?author=not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecipeEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	author := testhelpers.CreateTestUser(t, db, "apigetter")
	recipe := testhelpers.CreateTestRecipe(t, db, author, "Readable")

	w := doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%s", recipe.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Readable", resp.Name)
	assert.False(t, resp.IsFavorited)

	w = doRequest(router, http.MethodGet, "/api/v1/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%s", uuid.New()), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
