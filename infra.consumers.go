package main

import (
	"context"

	"go.uber.org/zap"
)

type Consumer interface {
	Consume(ctx context.Context, qids ...string) error
}

// boltReplicaConsumer drains the write queues and applies each event to
// the bolt replica store resolved for the event entity. This keeps a warm
// standby of every entity table served by the engine.
type boltReplicaConsumer struct {
	logger   *zap.Logger
	queue    Queuer
	resolver *StoreResolver
}

func NewBoltReplicaConsumer(logger *zap.Logger, q Queuer, resolver *StoreResolver) Consumer {
	return &boltReplicaConsumer{logger, q, resolver}
}

func (bc *boltReplicaConsumer) Consume(ctx context.Context, qids ...string) error {
	var event WriteEvent
	var err error
	var qid string
	for {
		qid, event, err = bc.queue.Pop(ctx, qids...)
		if err != nil && ctx.Err() != nil {
			bc.logger.Info("consumer: queue pop call: context is done: exit", zap.String("reason", ctx.Err().Error()))
			return nil
		}

		if err != nil {
			bc.logger.Error("consumer: error on queue pop call", zap.Error(err))
			continue
		}

		store, err := bc.resolver.Resolve(event.Entity)
		if err != nil {
			bc.logger.Error("consumer: no replica store for entity", zap.String("entity", event.Entity), zap.Error(err))
			continue
		}

		switch event.Op {
		case InsertCommand:
			if err = store.Insert(ctx, event.ID, event.Data); err != nil {
				bc.logger.Error("consumer: failed to replicate insert", zap.Any("event", event), zap.Error(err))
			}
		case UpdateCommand:
			if err = store.Update(ctx, event.ID, event.Data); err != nil {
				bc.logger.Error("consumer: failed to replicate update", zap.Any("event", event), zap.Error(err))
			}
		case DeleteCommand:
			if err = store.Delete(ctx, event.ID); err != nil {
				bc.logger.Error("consumer: failed to replicate delete", zap.String("id", event.ID), zap.Error(err))
			}
		default:
			bc.logger.Warn("consumer: received event with unknown op", zap.String("qid", qid), zap.Any("event", event))
		}
	}
}
