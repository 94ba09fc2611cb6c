package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platefull/backend/internal/middleware"
	"github.com/platefull/backend/internal/models"
	"github.com/platefull/backend/internal/service"
	"github.com/platefull/backend/internal/types"
)

// maxImageUploadBytes caps recipe image uploads.
const maxImageUploadBytes = 5 << 20

type RecipeHandler struct {
	recipeService   *service.RecipeService
	shoppingService *service.ShoppingListService
	userService     *service.UserService
	guard           *service.RelationGuard
	imageService    *service.ImageService
	authService     *service.AuthService
	writeLimiter    *middleware.RateLimiter
}

func NewRecipeHandler(
	recipeService *service.RecipeService,
	shoppingService *service.ShoppingListService,
	userService *service.UserService,
	guard *service.RelationGuard,
	imageService *service.ImageService,
	authService *service.AuthService,
	writeLimiter *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		shoppingService: shoppingService,
		userService:     userService,
		guard:           guard,
		imageService:    imageService,
		authService:     authService,
		writeLimiter:    writeLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)
	optional := middleware.OptionalAuthMiddleware(h.authService)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/download_shopping_cart", auth, h.DownloadShoppingCart)
		recipes.GET("/:id", optional, h.GetRecipe)

		write := recipes.Group("", auth)
		if h.writeLimiter != nil {
			write.Use(h.writeLimiter.Middleware())
		}
		write.POST("", h.CreateRecipe)
		write.PATCH("/:id", h.UpdateRecipe)
		write.DELETE("/:id", h.DeleteRecipe)
		if h.imageService != nil {
			write.POST("/:id/image", h.UploadRecipeImage)
		}

		recipes.POST("/:id/favorite", auth, h.AddFavorite)
		recipes.DELETE("/:id/favorite", auth, h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", auth, h.AddToShoppingCart)
		recipes.DELETE("/:id/shopping_cart", auth, h.RemoveFromShoppingCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	viewerID := middleware.ViewerID(c)

	filter := types.RecipeListFilter{
		TagSlugs: c.QueryArray("tags"),
	}
	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = &authorID
	}
	filter.FavoritedOnly = c.Query("is_favorited") == "1"
	filter.InShoppingCartOnly = c.Query("is_in_shopping_cart") == "1"
	filter.Page, _ = strconv.Atoi(c.Query("page"))
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))

	recipes, total, err := h.recipeService.ListRecipes(c.Request.Context(), viewerID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses, err := h.recipeService.BuildResponses(c.Request.Context(), viewerID, recipes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": responses,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	viewerID := middleware.ViewerID(c)
	responses, err := h.recipeService.BuildResponses(c.Request.Context(), viewerID, []models.Recipe{*recipe})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses[0])
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.ViewerID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), *userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	responses, err := h.recipeService.BuildResponses(c.Request.Context(), userID, []models.Recipe{*recipe})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, responses[0])
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.ViewerID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), recipeID, *userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	responses, err := h.recipeService.BuildResponses(c.Request.Context(), userID, []models.Recipe{*recipe})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses[0])
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := middleware.ViewerID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), recipeID, *userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) UploadRecipeImage(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := middleware.ViewerID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImageUploadBytes+1))
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty image body"})
		return
	}
	if len(data) > maxImageUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	url, err := h.imageService.UploadRecipeImage(c.Request.Context(), data, c.ContentType())
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.recipeService.SetImageURL(c.Request.Context(), recipeID, *userID, url); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": url})
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, func(userID, recipeID uuid.UUID) error {
		_, err := h.guard.AddFavorite(c.Request.Context(), userID, recipeID)
		return err
	})
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, h.guard.RemoveFavorite)
}

func (h *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	h.addRelation(c, func(userID, recipeID uuid.UUID) error {
		_, err := h.guard.AddCartItem(c.Request.Context(), userID, recipeID)
		return err
	})
}

func (h *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeRelation(c, h.guard.RemoveCartItem)
}

// DownloadShoppingCart streams the aggregated shopping list as a plain
// text attachment.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID := middleware.ViewerID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), *userID)
	if err != nil {
		respondError(c, err)
		return
	}

	items, err := h.shoppingService.Aggregate(c.Request.Context(), *userID)
	if err != nil {
		respondError(c, err)
		return
	}

	body := h.shoppingService.Render(items)
	filename := h.shoppingService.Filename(user.Username)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *RecipeHandler) addRelation(c *gin.Context, add func(userID, recipeID uuid.UUID) error) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	userID := middleware.ViewerID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := add(*userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.recipeService.Summary(recipe))
}

func (h *RecipeHandler) removeRelation(c *gin.Context, remove func(ctx context.Context, userID, recipeID uuid.UUID) error) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	userID := middleware.ViewerID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := remove(c.Request.Context(), *userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
