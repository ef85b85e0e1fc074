package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/pageza/recipe-vault/backend/internal/model"
	"github.com/pageza/recipe-vault/backend/internal/storage"
)

// DefaultListName is used when a list is generated without a name.
const DefaultListName = "Shopping List"

// ShoppingListService persists shopping lists as one JSON array.
type ShoppingListService struct {
	store   storage.Storage
	mu      sync.Mutex
	delay   Delayer
	now     func() time.Time
	metrics MetricsRecorder
	logger  *slog.Logger
}

// NewShoppingListService creates a new shopping list service
func NewShoppingListService(store storage.Storage, opts ...Option) *ShoppingListService {
	o := buildOptions(opts)
	return &ShoppingListService{
		store:   store,
		delay:   o.delay,
		now:     o.now,
		metrics: o.metrics,
		logger:  o.logger.With("service", "shopping_lists"),
	}
}

// begin waits out the simulated latency, then takes the lock. The returned
// func releases the lock and records the operation.
func (s *ShoppingListService) begin(ctx context.Context, op string) (func(error), error) {
	start := time.Now()
	if err := s.delay.Wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return func(err error) {
		s.mu.Unlock()
		s.metrics.RecordStoreLatency(op, time.Since(start))
		if err != nil {
			s.metrics.RecordStoreError(op)
		}
	}, nil
}

func (s *ShoppingListService) load(ctx context.Context) ([]model.ShoppingList, error) {
	return loadCollection[model.ShoppingList](ctx, s.store, storage.KeyShoppingLists)
}

func (s *ShoppingListService) save(ctx context.Context, lists []model.ShoppingList) error {
	return saveCollection(ctx, s.store, storage.KeyShoppingLists, lists)
}

// GetAll returns every stored list in insertion order.
func (s *ShoppingListService) GetAll(ctx context.Context) (lists []model.ShoppingList, err error) {
	done, err := s.begin(ctx, "get_all")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	return s.load(ctx)
}

// GetByID returns the list with id or ErrShoppingListNotFound.
func (s *ShoppingListService) GetByID(ctx context.Context, id int) (list *model.ShoppingList, err error) {
	done, err := s.begin(ctx, "get_by_id")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	lists, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if lists[i].ID == id {
			return &lists[i], nil
		}
	}
	s.logger.Warn("shopping list not found", "id", id)
	return nil, ErrShoppingListNotFound
}

// Create stores list under the next free id and stamps its creation time.
func (s *ShoppingListService) Create(ctx context.Context, list model.ShoppingList) (created *model.ShoppingList, err error) {
	done, err := s.begin(ctx, "create")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	return s.create(ctx, list)
}

func (s *ShoppingListService) create(ctx context.Context, list model.ShoppingList) (*model.ShoppingList, error) {
	lists, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, l := range lists {
		if l.ID > maxID {
			maxID = l.ID
		}
	}
	list.ID = maxID + 1
	list.CreatedDate = s.now()
	if list.Items == nil {
		list.Items = []model.ShoppingListItem{}
	}

	lists = append(lists, list)
	if err := s.save(ctx, lists); err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}
	s.logger.Debug("shopping list created", "id", list.ID, "items", len(list.Items))
	return &list, nil
}

// GenerateFromRecipes consolidates the ingredients of recipes into a new list.
func (s *ShoppingListService) GenerateFromRecipes(ctx context.Context, recipes []model.Recipe, listName string) (created *model.ShoppingList, err error) {
	if listName == "" {
		listName = DefaultListName
	}
	items := ConsolidateIngredients(recipes)

	done, err := s.begin(ctx, "generate")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	created, err = s.create(ctx, model.ShoppingList{Name: listName, Items: items})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordListGenerated(len(items))
	s.logger.Info("shopping list generated", "id", created.ID, "recipes", len(recipes), "items", len(items))
	return created, nil
}

// ToggleItemChecked sets the checked flag of one item and returns the
// updated list. Nothing is written when the list or item does not exist.
func (s *ShoppingListService) ToggleItemChecked(ctx context.Context, listID, itemIndex int, checked bool) (updated *model.ShoppingList, err error) {
	done, err := s.begin(ctx, "toggle")
	if err != nil {
		return nil, err
	}
	defer func() { done(err) }()

	lists, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range lists {
		if lists[i].ID == listID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrShoppingListNotFound
	}
	list := &lists[idx]
	if itemIndex < 0 || itemIndex >= len(list.Items) {
		return nil, ErrItemNotFound
	}

	list.Items[itemIndex].Checked = checked
	if err := s.save(ctx, lists); err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}
	s.metrics.RecordItemToggled(checked)
	return list, nil
}

// Delete removes the list with id. Deleting a missing id still succeeds.
func (s *ShoppingListService) Delete(ctx context.Context, id int) (ok bool, err error) {
	done, err := s.begin(ctx, "delete")
	if err != nil {
		return false, err
	}
	defer func() { done(err) }()

	lists, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	kept := lists[:0]
	for _, l := range lists {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if err := s.save(ctx, kept); err != nil {
		return false, fmt.Errorf("failed to save shopping lists: %w", err)
	}
	s.metrics.RecordListDeleted()
	return true, nil
}

// Stats counts lists and items and the share of items checked off.
func (s *ShoppingListService) Stats(ctx context.Context) (stats model.Stats, err error) {
	done, err := s.begin(ctx, "stats")
	if err != nil {
		return model.Stats{}, err
	}
	defer func() { done(err) }()

	lists, err := s.load(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	stats.ActiveLists = len(lists)
	for _, l := range lists {
		stats.TotalItems += len(l.Items)
		stats.CheckedItems += l.CheckedCount()
	}
	stats.CompletionPercent = int(math.Round(float64(stats.CheckedItems) / float64(max(stats.TotalItems, 1)) * 100))
	return stats, nil
}
