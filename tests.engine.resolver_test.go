package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreResolver ensures entity names resolution to storage accessors.
func TestStoreResolver(t *testing.T) {
	store := &MockEntityStore{}

	t.Run("register and resolve", func(t *testing.T) {
		resolver := NewStoreResolver()
		err := resolver.Register(BookEntity, store)
		require.NoError(t, err)
		resolved, err := resolver.Resolve(BookEntity)
		assert.NoError(t, err)
		assert.Equal(t, EntityStore(store), resolved)
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		resolver := NewStoreResolver()
		err := resolver.Register(BookEntity, store)
		require.NoError(t, err)
		err = resolver.Register(BookEntity, store)
		assert.Error(t, err)
	})

	t.Run("empty entity name fails", func(t *testing.T) {
		resolver := NewStoreResolver()
		err := resolver.Register("", store)
		assert.Error(t, err)
	})

	t.Run("nil store fails", func(t *testing.T) {
		resolver := NewStoreResolver()
		err := resolver.Register(BookEntity, nil)
		assert.Error(t, err)
	})

	t.Run("unknown entity", func(t *testing.T) {
		resolver := NewStoreResolver()
		resolved, err := resolver.Resolve("bookstore.shelf")
		assert.Nil(t, resolved)
		assert.ErrorIs(t, err, ErrUnknownEntity)
	})

	t.Run("entities are sorted", func(t *testing.T) {
		resolver := NewStoreResolver()
		require.NoError(t, resolver.Register("b.entity", store))
		require.NoError(t, resolver.Register("a.entity", store))
		assert.Equal(t, []string{"a.entity", "b.entity"}, resolver.Entities())
	})
}
