package main

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownEntity = errors.New("unknown entity")

// StoreResolver maps a logical entity name to the underlying storage
// accessor used by read and write commands. Safe for concurrent use.
type StoreResolver struct {
	mu     sync.RWMutex
	stores map[string]EntityStore
}

// NewStoreResolver provides an empty data source resolver.
func NewStoreResolver() *StoreResolver {
	return &StoreResolver{stores: make(map[string]EntityStore)}
}

// Register binds a logical entity name to its storage accessor.
// Registering the same entity twice is an error.
func (sr *StoreResolver) Register(entity string, store EntityStore) error {
	if len(entity) == 0 {
		return errors.New("resolver: empty entity name")
	}
	if store == nil {
		return fmt.Errorf("resolver: nil store for entity %q", entity)
	}
	sr.mu.Lock()
	defer sr.mu.Unlock()
	if _, ok := sr.stores[entity]; ok {
		return fmt.Errorf("resolver: entity %q already registered", entity)
	}
	sr.stores[entity] = store
	return nil
}

// Resolve returns the storage accessor registered for the given entity name.
func (sr *StoreResolver) Resolve(entity string) (EntityStore, error) {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	store, ok := sr.stores[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	return store, nil
}

// Entities returns the sorted list of registered entity names.
func (sr *StoreResolver) Entities() []string {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	entities := make([]string, 0, len(sr.stores))
	for entity := range sr.stores {
		entities = append(entities, entity)
	}
	sort.Strings(entities)
	return entities
}
