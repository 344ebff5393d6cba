package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Predefinied Queue IDs.
const (
	CreateQueue = "creation"
	UpdateQueue = "updating"
	DeleteQueue = "deletion"
)

// Ensure *redisQueue implements Queuer.
var _ Queuer = (*redisQueue)(nil)

// WriteEvent is the unit carried by the write queues. It describes one
// successful write on the primary store so the replica can apply it.
// Op holds the command type which produced the event.
type WriteEvent struct {
	Entity string          `json:"entity"`
	Op     string          `json:"op"`
	ID     string          `json:"id"`
	Data   json.RawMessage `json:"data,omitempty"`
	At     string          `json:"at"`
}

// Queuer describes a queue of write events.
type Queuer interface {
	Push(ctx context.Context, qid string, event WriteEvent) error
	Pop(ctx context.Context, qids ...string) (string, WriteEvent, error)
}

// redisQueue represents a queue which implements the Queuer interface.
type redisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) Queuer {
	return &redisQueue{client: client}
}

// Push enqueues a write event onto the queue identified by qid.
func (q *redisQueue) Push(ctx context.Context, qid string, event WriteEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, qid, eventBytes).Err()
}

// Pop returns the first dequeued write event from the list of queue ids.
func (q *redisQueue) Pop(ctx context.Context, qids ...string) (string, WriteEvent, error) {
	var event WriteEvent
	var qid string
	infos, err := q.client.BLPop(ctx, 0*time.Second, qids...).Result()
	if err != nil {
		return qid, event, err
	}

	if err = json.Unmarshal([]byte(infos[1]), &event); err != nil {
		return qid, event, err
	}
	qid = infos[0]
	return qid, event, nil
}
