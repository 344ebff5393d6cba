package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestBoltReplicaConsumer ensures dequeued write events are applied to the
// replica store of the right entity and the loop exits on context cancel.
func TestBoltReplicaConsumer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var inserted, updated, deleted bool
	store := &MockEntityStore{
		InsertFunc: func(_ context.Context, id string, data []byte) error {
			inserted = true
			assert.Equal(t, "b:0", id)
			return nil
		},
		UpdateFunc: func(_ context.Context, id string, _ []byte) error {
			updated = true
			assert.Equal(t, "b:1", id)
			return nil
		},
		DeleteFunc: func(_ context.Context, id string) error {
			deleted = true
			assert.Equal(t, "b:2", id)
			return nil
		},
	}
	resolver := newTestResolver(t, store)

	events := []struct {
		qid   string
		event WriteEvent
	}{
		{CreateQueue, WriteEvent{Entity: BookEntity, Op: InsertCommand, ID: "b:0", Data: []byte(`{"id":"b:0"}`)}},
		{UpdateQueue, WriteEvent{Entity: BookEntity, Op: UpdateCommand, ID: "b:1", Data: []byte(`{"id":"b:1"}`)}},
		{DeleteQueue, WriteEvent{Entity: BookEntity, Op: DeleteCommand, ID: "b:2"}},
	}

	var calls int
	queue := &MockQueuer{
		PopFunc: func(ctx context.Context, _ ...string) (string, WriteEvent, error) {
			if calls < len(events) {
				e := events[calls]
				calls++
				return e.qid, e.event, nil
			}
			cancel()
			return "", WriteEvent{}, ctx.Err()
		},
	}

	consumer := NewBoltReplicaConsumer(zap.NewNop(), queue, resolver)
	err := consumer.Consume(ctx, CreateQueue, UpdateQueue, DeleteQueue)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.True(t, updated)
	assert.True(t, deleted)
}

// TestBoltReplicaConsumer_UnknownEntity ensures events for unserved entities are skipped.
func TestBoltReplicaConsumer_UnknownEntity(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	queue := &MockQueuer{
		PopFunc: func(ctx context.Context, _ ...string) (string, WriteEvent, error) {
			if calls == 0 {
				calls++
				return CreateQueue, WriteEvent{Entity: "bookstore.shelf", Op: InsertCommand, ID: "s:0"}, nil
			}
			cancel()
			return "", WriteEvent{}, ctx.Err()
		},
	}

	consumer := NewBoltReplicaConsumer(zap.NewNop(), queue, NewStoreResolver())
	err := consumer.Consume(ctx, CreateQueue)
	assert.NoError(t, err)
}
