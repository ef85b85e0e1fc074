package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pageza/recipe-vault/backend/internal/storage"
)

// loadCollection reads the JSON array stored under key. A missing key is an
// empty collection.
func loadCollection[T any](ctx context.Context, store storage.Storage, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// saveCollection replaces the whole array stored under key.
func saveCollection[T any](ctx context.Context, store storage.Storage, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}
