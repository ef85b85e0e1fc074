package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-vault/backend/internal/model"
	"github.com/pageza/recipe-vault/backend/internal/service"
	"github.com/pageza/recipe-vault/backend/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

type testAPI struct {
	router  *gin.Engine
	recipes *service.RecipeService
	lists   *service.ShoppingListService
}

func setupTestAPI(t *testing.T, generate ...gin.HandlerFunc) *testAPI {
	t.Helper()
	store := storage.NewMemoryStorage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := []service.Option{
		service.WithDelay(service.NoDelay{}),
		service.WithClock(func() time.Time { return testNow }),
		service.WithLogger(logger),
	}
	recipes := service.NewRecipeService(store, opts...)
	lists := service.NewShoppingListService(store, opts...)

	router := gin.New()
	SetupAPI(router, Services{Recipes: recipes, ShoppingLists: lists}, logger, generate...)
	return &testAPI{router: router, recipes: recipes, lists: lists}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// seedDinnerRecipes stores the two recipes used by the generation tests.
func (a *testAPI) seedDinnerRecipes(t *testing.T) (int, int) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/recipes", model.Recipe{
		Title:    "Rice Bowl",
		Servings: 4,
		Ingredients: []model.Ingredient{
			{Name: "Rice", Amount: 2, Unit: "cup"},
			{Name: "Salt", Amount: 1, Unit: "tsp"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a1 := decode[model.Recipe](t, w)

	w = a.do(t, http.MethodPost, "/api/v1/recipes", model.Recipe{
		Title:    "Peppered Rice",
		Servings: 2,
		Ingredients: []model.Ingredient{
			{Name: "rice", Amount: 1, Unit: "cup"},
			{Name: "Pepper", Amount: 0.5, Unit: "tsp"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := decode[model.Recipe](t, w)
	return a1.ID, b.ID
}

func TestHealthCheck(t *testing.T) {
	a := setupTestAPI(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		w := a.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decode[map[string]string](t, w)
		assert.Equal(t, "healthy", body["status"])
	}
}

func TestGenerateShoppingList(t *testing.T) {
	a := setupTestAPI(t)
	first, second := a.seedDinnerRecipes(t)

	w := a.do(t, http.MethodPost, "/api/v1/shopping-lists/generate", GenerateShoppingListRequest{
		Name:      "Dinner",
		RecipeIDs: []int{first, second},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	list := decode[model.ShoppingList](t, w)
	assert.Equal(t, 1, list.ID)
	assert.Equal(t, "Dinner", list.Name)
	assert.True(t, testNow.Equal(list.CreatedDate))

	type line struct {
		name    string
		amount  float64
		unit    string
		checked bool
	}
	var got []line
	for _, item := range list.Items {
		got = append(got, line{item.Name, item.Amount, item.Unit, item.Checked})
	}
	assert.Equal(t, []line{
		{"Rice", 3, "cup", false},
		{"Salt", 1, "tsp", false},
		{"Pepper", 0.5, "tsp", false},
	}, got)
}

func TestGenerateShoppingListValidation(t *testing.T) {
	a := setupTestAPI(t)
	first, _ := a.seedDinnerRecipes(t)

	tests := []struct {
		name    string
		body    any
		status  int
		message string
	}{
		{"empty name", GenerateShoppingListRequest{Name: "  ", RecipeIDs: []int{first}}, http.StatusBadRequest, "Please enter a list name"},
		{"no recipes", GenerateShoppingListRequest{Name: "Dinner"}, http.StatusBadRequest, "Please select at least one recipe"},
		{"unknown recipe", GenerateShoppingListRequest{Name: "Dinner", RecipeIDs: []int{first, 99}}, http.StatusNotFound, "Recipe not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, http.MethodPost, "/api/v1/shopping-lists/generate", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode[map[string]string](t, w)["error"])
		})
	}

	lists, err := a.lists.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestGenerateRunsGuardMiddleware(t *testing.T) {
	blocked := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
	a := setupTestAPI(t, blocked)
	first, _ := a.seedDinnerRecipes(t)

	w := a.do(t, http.MethodPost, "/api/v1/shopping-lists/generate", GenerateShoppingListRequest{Name: "Dinner", RecipeIDs: []int{first}})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/recipes/1/shopping-list", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// other routes are not guarded
	w = a.do(t, http.MethodGet, "/api/v1/shopping-lists", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddRecipeToShoppingList(t *testing.T) {
	a := setupTestAPI(t)
	first, _ := a.seedDinnerRecipes(t)

	w := a.do(t, http.MethodPost, "/api/v1/recipes/"+strconv.Itoa(first)+"/shopping-list", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	list := decode[model.ShoppingList](t, w)
	assert.Equal(t, "Rice Bowl - Shopping List", list.Name)
	assert.Len(t, list.Items, 2)

	w = a.do(t, http.MethodPost, "/api/v1/recipes/42/shopping-list", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetShoppingListGroupsItems(t *testing.T) {
	a := setupTestAPI(t)
	_, err := a.lists.Create(context.Background(), model.ShoppingList{
		Name: "Groceries",
		Items: []model.ShoppingListItem{
			{Ingredient: model.Ingredient{Name: "Milk", Amount: 1, Unit: "gal", Category: model.CategoryDairy}},
			{Ingredient: model.Ingredient{Name: "Apples", Amount: 3, Category: model.CategoryProduce}, Checked: true},
			{Ingredient: model.Ingredient{Name: "Cheddar", Amount: 8, Unit: "oz", Category: model.CategoryDairy}},
		},
	})
	require.NoError(t, err)

	w := a.do(t, http.MethodGet, "/api/v1/shopping-lists/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	detail := decode[ShoppingListDetail](t, w)
	assert.Equal(t, "Groceries", detail.List.Name)
	assert.Equal(t, 1, detail.CheckedCount)
	require.Len(t, detail.Groups, 2)
	assert.Equal(t, model.CategoryDairy, detail.Groups[0].Category)
	assert.Equal(t, []int{0, 2}, []int{detail.Groups[0].Items[0].Index, detail.Groups[0].Items[1].Index})
	assert.Equal(t, model.CategoryProduce, detail.Groups[1].Category)

	w = a.do(t, http.MethodGet, "/api/v1/shopping-lists/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Shopping list not found", decode[map[string]string](t, w)["error"])

	w = a.do(t, http.MethodGet, "/api/v1/shopping-lists/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateShoppingList(t *testing.T) {
	a := setupTestAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/shopping-lists", CreateShoppingListRequest{Name: "Empty"})
	require.Equal(t, http.StatusCreated, w.Code)
	list := decode[model.ShoppingList](t, w)
	assert.Equal(t, 1, list.ID)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)

	w = a.do(t, http.MethodPost, "/api/v1/shopping-lists", CreateShoppingListRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleItem(t *testing.T) {
	a := setupTestAPI(t)
	first, second := a.seedDinnerRecipes(t)
	_, err := a.lists.GenerateFromRecipes(context.Background(), mustRecipes(t, a, first, second), "Dinner")
	require.NoError(t, err)

	w := a.do(t, http.MethodPatch, "/api/v1/shopping-lists/1/items/2", map[string]bool{"checked": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode[model.ShoppingList](t, w)
	assert.True(t, list.Items[2].Checked)
	assert.False(t, list.Items[0].Checked)

	tests := []struct {
		name    string
		path    string
		body    any
		status  int
		message string
	}{
		{"index past end", "/api/v1/shopping-lists/1/items/3", map[string]bool{"checked": true}, http.StatusNotFound, "Item not found"},
		{"negative index", "/api/v1/shopping-lists/1/items/-1", map[string]bool{"checked": true}, http.StatusNotFound, "Item not found"},
		{"missing list", "/api/v1/shopping-lists/9/items/0", map[string]bool{"checked": true}, http.StatusNotFound, "Shopping list not found"},
		{"missing checked", "/api/v1/shopping-lists/1/items/0", map[string]string{}, http.StatusBadRequest, "checked is required"},
		{"bad index", "/api/v1/shopping-lists/1/items/x", map[string]bool{"checked": true}, http.StatusBadRequest, "invalid item index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, http.MethodPatch, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode[map[string]string](t, w)["error"])
		})
	}
}

func TestDeleteShoppingListIsIdempotent(t *testing.T) {
	a := setupTestAPI(t)
	_, err := a.lists.Create(context.Background(), model.ShoppingList{Name: "Temp"})
	require.NoError(t, err)

	for range 2 {
		w := a.do(t, http.MethodDelete, "/api/v1/shopping-lists/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode[map[string]any](t, w)["deleted"])
	}

	w := a.do(t, http.MethodGet, "/api/v1/shopping-lists", nil)
	body := decode[map[string][]model.ShoppingList](t, w)
	assert.Empty(t, body["shoppingLists"])
}

func TestShoppingListStats(t *testing.T) {
	a := setupTestAPI(t)
	_, err := a.lists.Create(context.Background(), model.ShoppingList{
		Name: "Half done",
		Items: []model.ShoppingListItem{
			{Ingredient: model.Ingredient{Name: "Eggs", Amount: 12}, Checked: true},
			{Ingredient: model.Ingredient{Name: "Flour", Amount: 2, Unit: "cup"}},
			{Ingredient: model.Ingredient{Name: "Sugar", Amount: 1, Unit: "cup"}},
		},
	})
	require.NoError(t, err)

	w := a.do(t, http.MethodGet, "/api/v1/shopping-lists/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.Stats{ActiveLists: 1, TotalItems: 3, CheckedItems: 1, CompletionPercent: 33}, decode[model.Stats](t, w))
}

func TestCreateRecipe(t *testing.T) {
	a := setupTestAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/recipes", model.Recipe{Servings: 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "title", decode[ValidationErrorResponse](t, w).Field)

	w = a.do(t, http.MethodPost, "/api/v1/recipes", model.Recipe{
		Title:       "Omelette",
		Servings:    1,
		Tags:        []string{"breakfast"},
		Ingredients: []model.Ingredient{{Name: "Eggs", Amount: 3}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	recipe := decode[model.Recipe](t, w)
	assert.Equal(t, 1, recipe.ID)
	assert.Equal(t, service.Categorize("Eggs"), recipe.Ingredients[0].Category)
	assert.True(t, testNow.Equal(recipe.DateAdded))

	w = a.do(t, http.MethodGet, "/api/v1/recipes/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, "/api/v1/recipes/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAndDeleteRecipe(t *testing.T) {
	a := setupTestAPI(t)
	a.seedDinnerRecipes(t)

	w := a.do(t, http.MethodPut, "/api/v1/recipes/1", model.Recipe{Notes: "double the salt"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[model.Recipe](t, w)
	assert.Equal(t, "Rice Bowl", updated.Title)
	assert.Equal(t, "double the salt", updated.Notes)

	w = a.do(t, http.MethodPut, "/api/v1/recipes/8", model.Recipe{Notes: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodDelete, "/api/v1/recipes/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, "/api/v1/recipes/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRecipesAndTags(t *testing.T) {
	a := setupTestAPI(t)
	for _, r := range []model.Recipe{
		{Title: "Pancakes", Servings: 4, Tags: []string{"breakfast", "sweet"}, Ingredients: []model.Ingredient{{Name: "Flour", Amount: 2, Unit: "cup"}}},
		{Title: "Chili", Servings: 6, Tags: []string{"dinner"}, Ingredients: []model.Ingredient{{Name: "Ground beef", Amount: 1, Unit: "lb"}}},
	} {
		_, err := a.recipes.Create(context.Background(), r)
		require.NoError(t, err)
	}

	w := a.do(t, http.MethodGet, "/api/v1/recipes?q=beef", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[map[string][]model.Recipe](t, w)["recipes"]
	require.Len(t, found, 1)
	assert.Equal(t, "Chili", found[0].Title)

	w = a.do(t, http.MethodGet, "/api/v1/recipes?tag=sweet", nil)
	found = decode[map[string][]model.Recipe](t, w)["recipes"]
	require.Len(t, found, 1)
	assert.Equal(t, "Pancakes", found[0].Title)

	w = a.do(t, http.MethodGet, "/api/v1/recipes?sort=name", nil)
	found = decode[map[string][]model.Recipe](t, w)["recipes"]
	require.Len(t, found, 2)
	assert.Equal(t, "Chili", found[0].Title)

	w = a.do(t, http.MethodGet, "/api/v1/recipes/tags", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"breakfast", "dinner", "sweet"}, decode[map[string][]string](t, w)["tags"])
}

func TestGetScaledRecipe(t *testing.T) {
	a := setupTestAPI(t)
	_, err := a.recipes.Create(context.Background(), model.Recipe{
		Title:    "Cookies",
		Servings: 4,
		Ingredients: []model.Ingredient{
			{Name: "Flour", Amount: 2, Unit: "cup"},
			{Name: "Butter", Amount: 1, Unit: "cup"},
		},
	})
	require.NoError(t, err)

	w := a.do(t, http.MethodGet, "/api/v1/recipes/1/scaled?servings=6", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"id": 1,
		"title": "Cookies",
		"originalServings": 4,
		"servings": 6,
		"ingredients": [
			{"name": "Flour", "amount": 3, "unit": "cup", "category": "pantry"},
			{"name": "Butter", "amount": "1.50", "unit": "cup", "category": "dairy"}
		]
	}`, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/v1/recipes/1/scaled", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, decode[map[string]any](t, w)["servings"])

	for _, servings := range []string{"0", "-2"} {
		w = a.do(t, http.MethodGet, "/api/v1/recipes/1/scaled?servings="+servings, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, servings)
		assert.Equal(t, "servings must be at least 1", decode[map[string]any](t, w)["error"])
	}

	w = a.do(t, http.MethodGet, "/api/v1/recipes/1/scaled?servings=two", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategorizeIngredients(t *testing.T) {
	a := setupTestAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/ingredients/categorize", CategorizeRequest{Names: []string{"Chicken breast", "xyzzy"}})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string][]CategorizedIngredient](t, w)["ingredients"]
	assert.Equal(t, []CategorizedIngredient{
		{Name: "Chicken breast", Category: model.CategoryMeat},
		{Name: "xyzzy", Category: model.CategoryPantry},
	}, got)

	w = a.do(t, http.MethodPost, "/api/v1/ingredients/categorize", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func mustRecipes(t *testing.T, a *testAPI, ids ...int) []model.Recipe {
	t.Helper()
	recipes, err := a.recipes.GetByIDs(context.Background(), ids)
	require.NoError(t, err)
	return recipes
}
