package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestBookService ensures each book operation turns into the right command.
func TestBookService(t *testing.T) {
	t.Run("add dispatches an insert command", func(t *testing.T) {
		var got Command
		processor := &MockProcessor{
			ProcessFunc: func(_ context.Context, _ Identity, batch []Command) BatchReport {
				require.Len(t, batch, 1)
				got = batch[0]
				return BatchReport{Results: []CommandResult{successResult(batch[0], "done")}, Executed: 1}
			},
		}
		bs := NewBookService(zap.NewNop(), &Config{}, NewMockClocker(), processor)
		err := bs.Add(context.Background(), "b:0", Book{Title: "t", Author: "a"})
		require.NoError(t, err)
		assert.Equal(t, InsertCommand, got.Type)
		assert.Equal(t, BookEntity, got.Entity)
		assert.Equal(t, "b:0", got.Record)

		var book Book
		require.NoError(t, json.Unmarshal(got.Data, &book))
		assert.Equal(t, "t", book.Title)
	})

	t.Run("get one decodes the result payload", func(t *testing.T) {
		processor := &MockProcessor{
			ProcessFunc: func(_ context.Context, _ Identity, batch []Command) BatchReport {
				result := successResult(batch[0], "done")
				result.Data = []byte(`{"id":"b:0","title":"t","author":"a"}`)
				return BatchReport{Results: []CommandResult{result}, Executed: 1}
			},
		}
		bs := NewBookService(zap.NewNop(), &Config{}, NewMockClocker(), processor)
		book, err := bs.GetOne(context.Background(), "b:0")
		require.NoError(t, err)
		assert.Equal(t, "b:0", book.ID)
		assert.Equal(t, "t", book.Title)
	})

	t.Run("count reads the result total", func(t *testing.T) {
		processor := &MockProcessor{
			ProcessFunc: func(_ context.Context, _ Identity, batch []Command) BatchReport {
				result := successResult(batch[0], "done")
				total := int64(5)
				result.Total = &total
				return BatchReport{Results: []CommandResult{result}, Executed: 1}
			},
		}
		bs := NewBookService(zap.NewNop(), &Config{}, NewMockClocker(), processor)
		total, err := bs.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
	})

	t.Run("failed command surfaces its error", func(t *testing.T) {
		boom := errors.New("boom")
		processor := &MockProcessor{
			ProcessFunc: func(_ context.Context, _ Identity, batch []Command) BatchReport {
				return BatchReport{Results: []CommandResult{failedResult(batch[0], "boom", boom)}, Failed: 1}
			},
		}
		bs := NewBookService(zap.NewNop(), &Config{}, NewMockClocker(), processor)
		_, err := bs.GetOne(context.Background(), "b:0")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("update refreshes the update timestamp", func(t *testing.T) {
		var got Command
		processor := &MockProcessor{
			ProcessFunc: func(_ context.Context, _ Identity, batch []Command) BatchReport {
				got = batch[0]
				return BatchReport{Results: []CommandResult{successResult(batch[0], "done")}, Executed: 1}
			},
		}
		bs := NewBookService(zap.NewNop(), &Config{}, NewMockClocker(), processor)
		book, err := bs.Update(context.Background(), "b:0", Book{ID: "b:0", Title: "t", Author: "a"})
		require.NoError(t, err)
		assert.Equal(t, UpdateCommand, got.Type)
		assert.Equal(t, "2023-07-02 00:00:00 +0000 UTC", book.UpdatedAt)
	})

	t.Run("get all decodes the listing payload", func(t *testing.T) {
		processor := &MockProcessor{
			ProcessFunc: func(_ context.Context, _ Identity, batch []Command) BatchReport {
				result := successResult(batch[0], "done")
				result.Data = []byte(`[{"id":"b:0"},{"id":"b:1"}]`)
				total := int64(2)
				result.Total = &total
				return BatchReport{Results: []CommandResult{result}, Executed: 1}
			},
		}
		bs := NewBookService(zap.NewNop(), &Config{}, NewMockClocker(), processor)
		books, err := bs.GetAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})
}
