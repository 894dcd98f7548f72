package store

import (
	"context"
	"encoding/json"
)

// ReadCollection loads the array stored under key. A missing key or
// malformed stored JSON reads as an empty collection.
func ReadCollection[T any](ctx context.Context, s DocumentStore, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []T{}, nil
	}
	return items, nil
}

// WriteCollection serializes items and stores the whole array under key.
func WriteCollection[T any](ctx context.Context, s DocumentStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(b))
}

// UpsertByID replaces the item whose id matches, or appends when absent.
// Not atomic across concurrent callers: the whole collection is read,
// mutated in memory and written back.
func UpsertByID[T any](ctx context.Context, s DocumentStore, key string, item T, idOf func(T) string) error {
	items, err := ReadCollection[T](ctx, s, key)
	if err != nil {
		return err
	}
	id := idOf(item)
	replaced := false
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	return WriteCollection(ctx, s, key, items)
}

// RemoveByID filters out the item with the given id and writes the result
// back. Removing an absent id rewrites the collection unchanged.
func RemoveByID[T any](ctx context.Context, s DocumentStore, key, id string, idOf func(T) string) error {
	items, err := ReadCollection[T](ctx, s, key)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if idOf(it) != id {
			kept = append(kept, it)
		}
	}
	return WriteCollection(ctx, s, key, kept)
}
