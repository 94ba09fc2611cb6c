package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platefull/backend/internal/middleware"
	"github.com/platefull/backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	guard       *service.RelationGuard
	authService *service.AuthService
}

func NewUserHandler(userService *service.UserService, guard *service.RelationGuard, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		guard:       guard,
		authService: authService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	users := router.Group("/users")
	{
		users.GET("/subscriptions", auth, h.ListSubscriptions)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetUser)
		users.POST("/:id/subscribe", auth, h.Subscribe)
		users.DELETE("/:id/subscribe", auth, h.Unsubscribe)
	}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	viewerID := middleware.ViewerID(c)
	subscribed, err := h.guard.IsFollowing(c.Request.Context(), viewerID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"username":      user.Username,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"is_subscribed": subscribed,
	})
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	userID := middleware.ViewerID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipesLimit, err := service.ParseRecipesLimit(c.Query("recipes_limit"))
	if err != nil {
		respondError(c, err)
		return
	}

	author, err := h.userService.GetUser(c.Request.Context(), authorID)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.guard.Follow(c.Request.Context(), *userID, authorID); err != nil {
		respondError(c, err)
		return
	}

	sub, err := h.userService.Subscription(c.Request.Context(), author, recipesLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	userID := middleware.ViewerID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.guard.Unfollow(c.Request.Context(), *userID, authorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	userID := middleware.ViewerID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipesLimit, err := service.ParseRecipesLimit(c.Query("recipes_limit"))
	if err != nil {
		respondError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	subs, total, err := h.userService.Subscriptions(c.Request.Context(), *userID, recipesLimit, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": subs,
	})
}
