package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
)

//go:embed seed/*.json
var seedFS embed.FS

var seedFiles = map[string]string{
	KeyRecipes:       "seed/recipes.json",
	KeyShoppingLists: "seed/shopping_lists.json",
}

// SeedData returns the bundled dataset for key.
func SeedData(key string) ([]byte, error) {
	name, ok := seedFiles[key]
	if !ok {
		return nil, fmt.Errorf("no seed data for %s", key)
	}
	return seedFS.ReadFile(name)
}

// Seed writes data under key unless something is already stored there.
// With force it overwrites. It reports whether it wrote.
func Seed(ctx context.Context, s Storage, key string, data []byte, force bool) (bool, error) {
	if !force {
		_, err := s.Get(ctx, key)
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, ErrKeyNotFound) {
			return false, err
		}
	}
	if err := s.Set(ctx, key, data); err != nil {
		return false, err
	}
	return true, nil
}

// SeedDefaults seeds every known key from the bundled datasets and returns
// the keys it wrote.
func SeedDefaults(ctx context.Context, s Storage, force bool) ([]string, error) {
	var written []string
	for _, key := range []string{KeyRecipes, KeyShoppingLists} {
		data, err := SeedData(key)
		if err != nil {
			return written, err
		}
		ok, err := Seed(ctx, s, key, data, force)
		if err != nil {
			return written, fmt.Errorf("failed to seed %s: %w", key, err)
		}
		if ok {
			written = append(written, key)
		}
	}
	return written, nil
}
