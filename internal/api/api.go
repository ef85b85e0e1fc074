package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-vault/backend/internal/service"
)

// Services are the stores the API serves.
type Services struct {
	Recipes       service.IRecipeService
	ShoppingLists service.IShoppingListService
}

// SetupAPI registers every /api/v1 route on router. generate guards the
// endpoints that create shopping lists from recipes.
func SetupAPI(router *gin.Engine, svc Services, logger *slog.Logger, generate ...gin.HandlerFunc) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck)

		recipeHandler := NewRecipeHandler(svc.Recipes, svc.ShoppingLists, logger)
		listHandler := NewShoppingListHandler(svc.ShoppingLists, svc.Recipes, logger)

		recipeHandler.RegisterRoutes(v1, generate...)
		listHandler.RegisterRoutes(v1, generate...)
		RegisterIngredientRoutes(v1)
	}
}
