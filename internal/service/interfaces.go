package service

import (
	"context"
	"time"

	"github.com/pageza/recipe-vault/backend/internal/model"
)

// IShoppingListService defines the operations on stored shopping lists
type IShoppingListService interface {
	GetAll(ctx context.Context) ([]model.ShoppingList, error)
	GetByID(ctx context.Context, id int) (*model.ShoppingList, error)
	Create(ctx context.Context, list model.ShoppingList) (*model.ShoppingList, error)
	GenerateFromRecipes(ctx context.Context, recipes []model.Recipe, listName string) (*model.ShoppingList, error)
	ToggleItemChecked(ctx context.Context, listID, itemIndex int, checked bool) (*model.ShoppingList, error)
	Delete(ctx context.Context, id int) (bool, error)
	Stats(ctx context.Context) (model.Stats, error)
}

// IRecipeService defines the operations on the recipe collection
type IRecipeService interface {
	GetAll(ctx context.Context) ([]model.Recipe, error)
	GetByID(ctx context.Context, id int) (*model.Recipe, error)
	GetByIDs(ctx context.Context, ids []int) ([]model.Recipe, error)
	Create(ctx context.Context, recipe model.Recipe) (*model.Recipe, error)
	Update(ctx context.Context, id int, patch model.Recipe) (*model.Recipe, error)
	Delete(ctx context.Context, id int) (bool, error)
	Search(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error)
	Tags(ctx context.Context) ([]string, error)
}

// MetricsRecorder receives store events. metrics.Collector implements it.
type MetricsRecorder interface {
	RecordListGenerated(items int)
	RecordListDeleted()
	RecordItemToggled(checked bool)
	RecordStoreError(op string)
	RecordStoreLatency(op string, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordListGenerated(int)                 {}
func (noopMetrics) RecordListDeleted()                      {}
func (noopMetrics) RecordItemToggled(bool)                  {}
func (noopMetrics) RecordStoreError(string)                 {}
func (noopMetrics) RecordStoreLatency(string, time.Duration) {}
