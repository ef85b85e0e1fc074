// Package storage provides the key-value substrate the services persist
// their collections in. Each key holds one JSON document.
package storage

import (
	"context"
	"errors"
)

// Keys the services read and write.
const (
	KeyShoppingLists = "recipeVault_shoppingLists"
	KeyRecipes       = "recipeVault_recipes"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// Storage is a string-keyed store of whole JSON documents.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
