package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefull/backend/internal/middleware"
	"github.com/platefull/backend/internal/service"
)

// Deps carries the optional collaborators SetupAPI wires in when present.
type Deps struct {
	ImageService *service.ImageService
	WriteLimiter *middleware.RateLimiter
}

// SetupAPI wires services and handlers onto the /api/v1 group.
func SetupAPI(router *gin.Engine, db *gorm.DB, jwtSecret string, deps Deps) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, jwtSecret)
		guard := service.NewRelationGuard(db)
		validator := service.NewCompositionValidator()
		recipeService := service.NewRecipeService(db, validator, guard)
		shoppingService := service.NewShoppingListService(db)
		userService := service.NewUserService(db)

		authHandler := NewAuthHandler(authService)
		tagHandler := NewTagHandler(db)
		ingredientHandler := NewIngredientHandler(db)
		recipeHandler := NewRecipeHandler(recipeService, shoppingService, userService, guard, deps.ImageService, authService, deps.WriteLimiter)
		userHandler := NewUserHandler(userService, guard, authService)

		authHandler.RegisterRoutes(v1)
		tagHandler.RegisterRoutes(v1)
		ingredientHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
		userHandler.RegisterRoutes(v1)
	}
}
