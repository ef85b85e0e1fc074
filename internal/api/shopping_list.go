package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-vault/backend/internal/model"
	"github.com/pageza/recipe-vault/backend/internal/service"
)

// CreateShoppingListRequest is the body of POST /shopping-lists.
type CreateShoppingListRequest struct {
	Name  string                   `json:"name"`
	Items []model.ShoppingListItem `json:"items"`
}

// GenerateShoppingListRequest is the body of POST /shopping-lists/generate.
type GenerateShoppingListRequest struct {
	Name      string `json:"name"`
	RecipeIDs []int  `json:"recipeIds"`
}

// ToggleItemRequest is the body of PATCH /shopping-lists/:id/items/:index.
type ToggleItemRequest struct {
	Checked *bool `json:"checked"`
}

// ShoppingListDetail is a list together with its category grouping.
type ShoppingListDetail struct {
	List         *model.ShoppingList   `json:"list"`
	Groups       []model.CategoryGroup `json:"groups"`
	CheckedCount int                   `json:"checkedCount"`
}

type ShoppingListHandler struct {
	lists   service.IShoppingListService
	recipes service.IRecipeService
	logger  *slog.Logger
}

func NewShoppingListHandler(lists service.IShoppingListService, recipes service.IRecipeService, logger *slog.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{
		lists:   lists,
		recipes: recipes,
		logger:  logger,
	}
}

// RegisterRoutes mounts the shopping list endpoints. generate runs in
// front of list generation, typically a rate limiter.
func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup, generate ...gin.HandlerFunc) {
	lists := router.Group("/shopping-lists")
	{
		lists.GET("", h.ListShoppingLists)
		lists.GET("/stats", h.GetStats)
		lists.GET("/:id", h.GetShoppingList)
		lists.POST("", h.CreateShoppingList)
		lists.POST("/generate", append(generate[:len(generate):len(generate)], h.GenerateShoppingList)...)
		lists.PATCH("/:id/items/:index", h.ToggleItem)
		lists.DELETE("/:id", h.DeleteShoppingList)
	}
}

func (h *ShoppingListHandler) ListShoppingLists(c *gin.Context) {
	lists, err := h.lists.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shoppingLists": lists})
}

func (h *ShoppingListHandler) GetStats(c *gin.Context) {
	stats, err := h.lists.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	id, ok := pathInt(c, "id", "shopping list id")
	if !ok {
		return
	}
	list, err := h.lists.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ShoppingListDetail{
		List:         list,
		Groups:       model.GroupItemsByCategory(list.Items),
		CheckedCount: list.CheckedCount(),
	})
}

func (h *ShoppingListHandler) CreateShoppingList(c *gin.Context) {
	var req CreateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(c, "Please enter a list name")
		return
	}

	list, err := h.lists.Create(c.Request.Context(), model.ShoppingList{
		Name:  req.Name,
		Items: req.Items,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// GenerateShoppingList consolidates the selected recipes into a new list.
func (h *ShoppingListHandler) GenerateShoppingList(c *gin.Context) {
	var req GenerateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(c, "Please enter a list name")
		return
	}
	if len(req.RecipeIDs) == 0 {
		badRequest(c, "Please select at least one recipe")
		return
	}

	ctx := c.Request.Context()
	recipes, err := h.recipes.GetByIDs(ctx, req.RecipeIDs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	list, err := h.lists.GenerateFromRecipes(ctx, recipes, strings.TrimSpace(req.Name))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *ShoppingListHandler) ToggleItem(c *gin.Context) {
	id, ok := pathInt(c, "id", "shopping list id")
	if !ok {
		return
	}
	index, ok := pathInt(c, "index", "item index")
	if !ok {
		return
	}
	var req ToggleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Checked == nil {
		badRequest(c, "checked is required")
		return
	}

	list, err := h.lists.ToggleItemChecked(c.Request.Context(), id, index, *req.Checked)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ShoppingListHandler) DeleteShoppingList(c *gin.Context) {
	id, ok := pathInt(c, "id", "shopping list id")
	if !ok {
		return
	}
	deleted, err := h.lists.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
		"id":      id,
	})
}
