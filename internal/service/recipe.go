package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pageza/recipe-vault/backend/internal/model"
	"github.com/pageza/recipe-vault/backend/internal/storage"
)

// Recipe sort orders accepted by Search.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortName   = "name"
	SortTime   = "time"
)

// RecipeFilter narrows and orders a recipe search.
type RecipeFilter struct {
	// Query matches the title or any ingredient name, case-insensitively.
	Query string
	Tag   string
	// Sort is one of the Sort constants. Empty means SortNewest; anything
	// else keeps stored order.
	Sort string
}

// RecipeService persists the recipe collection as one JSON array.
type RecipeService struct {
	store  storage.Storage
	mu     sync.Mutex
	delay  Delayer
	now    func() time.Time
	logger *slog.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(store storage.Storage, opts ...Option) *RecipeService {
	o := buildOptions(opts)
	return &RecipeService{
		store:  store,
		delay:  o.delay,
		now:    o.now,
		logger: o.logger.With("service", "recipes"),
	}
}

func (s *RecipeService) lock(ctx context.Context) error {
	if err := s.delay.Wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	return nil
}

func (s *RecipeService) load(ctx context.Context) ([]model.Recipe, error) {
	return loadCollection[model.Recipe](ctx, s.store, storage.KeyRecipes)
}

func (s *RecipeService) save(ctx context.Context, recipes []model.Recipe) error {
	if err := saveCollection(ctx, s.store, storage.KeyRecipes, recipes); err != nil {
		return fmt.Errorf("failed to save recipes: %w", err)
	}
	return nil
}

func (s *RecipeService) GetAll(ctx context.Context) ([]model.Recipe, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *RecipeService) GetByID(ctx context.Context, id int) (*model.Recipe, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i], nil
		}
	}
	return nil, ErrRecipeNotFound
}

// GetByIDs returns the recipes with the given ids in the order asked for.
func (s *RecipeService) GetByIDs(ctx context.Context, ids []int) ([]model.Recipe, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]model.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	out := make([]model.Recipe, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("recipe %d: %w", id, ErrRecipeNotFound)
		}
		out = append(out, r)
	}
	return out, nil
}

// Create validates recipe, fills in missing ingredient categories and
// stores it under the next free id.
func (s *RecipeService) Create(ctx context.Context, recipe model.Recipe) (*model.Recipe, error) {
	recipe = sanitizeRecipe(recipe)
	recipe.Ingredients = CategorizeMissing(recipe.Ingredients)
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	maxID := 0
	for _, r := range recipes {
		maxID = max(maxID, r.ID)
	}
	recipe.ID = maxID + 1
	recipe.DateAdded = s.now()
	normalizeRecipe(&recipe)

	if err := s.save(ctx, append(recipes, recipe)); err != nil {
		return nil, err
	}
	s.logger.Info("recipe created", "id", recipe.ID, "title", recipe.Title)
	return &recipe, nil
}

// Update merges the non-zero fields of patch into the stored recipe.
func (s *RecipeService) Update(ctx context.Context, id int, patch model.Recipe) (*model.Recipe, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(recipes, func(r model.Recipe) bool { return r.ID == id })
	if idx == -1 {
		return nil, ErrRecipeNotFound
	}

	merged := mergeRecipe(recipes[idx], sanitizeRecipe(patch))
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	recipes[idx] = merged
	if err := s.save(ctx, recipes); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Delete removes the recipe with id. Missing ids are not an error.
func (s *RecipeService) Delete(ctx context.Context, id int) (bool, error) {
	if err := s.lock(ctx); err != nil {
		return false, err
	}
	defer s.mu.Unlock()

	recipes, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	recipes = slices.DeleteFunc(recipes, func(r model.Recipe) bool { return r.ID == id })
	if err := s.save(ctx, recipes); err != nil {
		return false, err
	}
	return true, nil
}

// Search filters the collection by filter and sorts the result.
func (s *RecipeService) Search(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error) {
	recipes, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(filter.Query)
	matched := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		if filter.Tag != "" && !r.HasTag(filter.Tag) {
			continue
		}
		matched = append(matched, r)
	}

	sortRecipes(matched, filter.Sort)
	return matched, nil
}

// Tags returns every tag used in the collection, sorted.
func (s *RecipeService) Tags(ctx context.Context) ([]string, error) {
	recipes, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	tags := []string{}
	for _, r := range recipes {
		for _, t := range r.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	slices.Sort(tags)
	return tags, nil
}

func matchesQuery(r model.Recipe, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(r.Title), lowerQuery) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), lowerQuery) {
			return true
		}
	}
	return false
}

func sortRecipes(recipes []model.Recipe, order string) {
	var compare func(a, b model.Recipe) int
	switch order {
	case "", SortNewest:
		compare = func(a, b model.Recipe) int { return b.DateAdded.Compare(a.DateAdded) }
	case SortOldest:
		compare = func(a, b model.Recipe) int { return a.DateAdded.Compare(b.DateAdded) }
	case SortName:
		compare = func(a, b model.Recipe) int {
			if c := cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
				return c
			}
			return cmp.Compare(a.Title, b.Title)
		}
	case SortTime:
		compare = func(a, b model.Recipe) int { return cmp.Compare(a.TotalTime(), b.TotalTime()) }
	default:
		return
	}
	slices.SortStableFunc(recipes, compare)
}

func mergeRecipe(dst, patch model.Recipe) model.Recipe {
	if patch.Title != "" {
		dst.Title = patch.Title
	}
	if patch.Source != "" {
		dst.Source = patch.Source
	}
	if patch.SourceURL != "" {
		dst.SourceURL = patch.SourceURL
	}
	if patch.ImageURL != "" {
		dst.ImageURL = patch.ImageURL
	}
	if patch.PrepTime != 0 {
		dst.PrepTime = patch.PrepTime
	}
	if patch.CookTime != 0 {
		dst.CookTime = patch.CookTime
	}
	if patch.Servings != 0 {
		dst.Servings = patch.Servings
	}
	if patch.Ingredients != nil {
		dst.Ingredients = CategorizeMissing(patch.Ingredients)
	}
	if patch.Instructions != nil {
		dst.Instructions = patch.Instructions
	}
	if patch.Tags != nil {
		dst.Tags = patch.Tags
	}
	if patch.Notes != "" {
		dst.Notes = patch.Notes
	}
	return dst
}

func normalizeRecipe(r *model.Recipe) {
	if r.Ingredients == nil {
		r.Ingredients = []model.Ingredient{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
}
