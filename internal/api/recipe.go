package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-vault/backend/internal/model"
	"github.com/pageza/recipe-vault/backend/internal/service"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	lists   service.IShoppingListService
	logger  *slog.Logger
}

func NewRecipeHandler(recipes service.IRecipeService, lists service.IShoppingListService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		lists:   lists,
		logger:  logger,
	}
}

// RegisterRoutes mounts the recipe endpoints. generate guards the
// shortcut that builds a shopping list from one recipe.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, generate ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/tags", h.ListTags)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/scaled", h.GetScaledRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/shopping-list", append(generate[:len(generate):len(generate)], h.AddToShoppingList)...)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.Search(c.Request.Context(), service.RecipeFilter{
		Query: c.Query("q"),
		Tag:   c.Query("tag"),
		Sort:  c.Query("sort"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
	})
}

func (h *RecipeHandler) ListTags(c *gin.Context) {
	tags, err := h.recipes.Tags(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathInt(c, "id", "recipe id")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// GetScaledRecipe returns the recipe's ingredients adjusted to ?servings=N.
// Without the parameter the recipe's own serving count is used.
func (h *RecipeHandler) GetScaledRecipe(c *gin.Context) {
	id, ok := pathInt(c, "id", "recipe id")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	servings := recipe.Servings
	if raw := c.Query("servings"); raw != "" {
		servings, err = strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "servings must be a whole number")
			return
		}
		if servings < 1 {
			badRequest(c, "servings must be at least 1")
			return
		}
	}

	scaled, err := service.ScaleIngredients(*recipe, servings)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               recipe.ID,
		"title":            recipe.Title,
		"originalServings": recipe.Servings,
		"servings":         servings,
		"ingredients":      scaled,
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := h.recipes.Create(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathInt(c, "id", "recipe id")
	if !ok {
		return
	}
	var patch model.Recipe
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}

	updated, err := h.recipes.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathInt(c, "id", "recipe id")
	if !ok {
		return
	}
	if _, err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

// AddToShoppingList generates a list named "<title> - Shopping List" from
// a single recipe.
func (h *RecipeHandler) AddToShoppingList(c *gin.Context) {
	id, ok := pathInt(c, "id", "recipe id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	recipe, err := h.recipes.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.lists.GenerateFromRecipes(ctx, []model.Recipe{*recipe}, recipe.Title+" - Shopping List")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}
