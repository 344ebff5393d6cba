package main

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Ensure all built-in handlers implement CommandHandler.
var (
	_ CommandHandler = (*ReadHandler)(nil)
	_ CommandHandler = (*CountHandler)(nil)
	_ CommandHandler = (*InsertHandler)(nil)
	_ CommandHandler = (*UpdateHandler)(nil)
	_ CommandHandler = (*DeleteHandler)(nil)
)

// ReadHandler serves read commands: a single record when the command
// targets one, the full listing with its total otherwise.
type ReadHandler struct {
	logger   *zap.Logger
	resolver *StoreResolver
}

func NewReadHandler(logger *zap.Logger, resolver *StoreResolver) *ReadHandler {
	return &ReadHandler{logger: logger, resolver: resolver}
}

func (h *ReadHandler) Validate(_ context.Context, cmd Command) error {
	if len(cmd.Entity) == 0 {
		return missingFieldError("entity")
	}
	_, err := h.resolver.Resolve(cmd.Entity)
	return err
}

func (h *ReadHandler) Execute(ctx context.Context, cmd Command) (CommandResult, error) {
	store, err := h.resolver.Resolve(cmd.Entity)
	if err != nil {
		return failedResult(cmd, "entity not served", err), err
	}

	if len(cmd.Record) != 0 {
		data, err := store.Get(ctx, cmd.Record)
		if err != nil {
			return failedResult(cmd, "failed to read the record", err), err
		}
		result := successResult(cmd, "record fetched successfully")
		result.Data = json.RawMessage(data)
		return result, nil
	}

	records, err := store.List(ctx)
	if err != nil {
		return failedResult(cmd, "failed to list the records", err), err
	}
	raws := make([]json.RawMessage, 0, len(records))
	for _, record := range records {
		raws = append(raws, json.RawMessage(record))
	}
	data, err := json.Marshal(raws)
	if err != nil {
		return failedResult(cmd, "failed to encode the records", err), err
	}
	total := int64(len(records))
	result := successResult(cmd, "records fetched successfully")
	result.Total = &total
	result.Data = data
	return result, nil
}

// CountHandler serves count commands. An empty entity table reads back 0.
type CountHandler struct {
	logger   *zap.Logger
	resolver *StoreResolver
}

func NewCountHandler(logger *zap.Logger, resolver *StoreResolver) *CountHandler {
	return &CountHandler{logger: logger, resolver: resolver}
}

func (h *CountHandler) Validate(_ context.Context, cmd Command) error {
	if len(cmd.Entity) == 0 {
		return missingFieldError("entity")
	}
	_, err := h.resolver.Resolve(cmd.Entity)
	return err
}

func (h *CountHandler) Execute(ctx context.Context, cmd Command) (CommandResult, error) {
	store, err := h.resolver.Resolve(cmd.Entity)
	if err != nil {
		return failedResult(cmd, "entity not served", err), err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return failedResult(cmd, "failed to count the records", err), err
	}
	result := successResult(cmd, "records counted successfully")
	result.Total = &total
	return result, nil
}

// writeHandler carries the shared dependencies of the write command
// handlers: the primary stores, the entity rules and the queue feeding
// the replica consumer.
type writeHandler struct {
	logger   *zap.Logger
	resolver *StoreResolver
	defs     map[string]EntityDefinition
	queue    Queuer
	clock    Clocker
}

// validateWrite runs the checks shared by insert and update commands.
func (h *writeHandler) validateWrite(cmd Command) error {
	if len(cmd.Entity) == 0 {
		return missingFieldError("entity")
	}
	if len(cmd.Record) == 0 {
		return missingFieldError("record")
	}
	if len(cmd.Data) == 0 {
		return missingFieldError("data")
	}
	def, ok := h.defs[cmd.Entity]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEntity, cmd.Entity)
	}
	return def.ValidatePayload(cmd.Data)
}

// publish pushes the write event onto the given queue. A queue failure is
// logged only: the primary write already succeeded and the replica catches
// up on the next event.
func (h *writeHandler) publish(ctx context.Context, qid, op string, cmd Command) {
	event := WriteEvent{
		Entity: cmd.Entity,
		Op:     op,
		ID:     cmd.Record,
		Data:   cmd.Data,
		At:     h.clock.Now().UTC().String(),
	}
	if err := h.queue.Push(ctx, qid, event); err != nil {
		h.logger.Error("handler: failed to push write event to queue",
			zap.String("qid", qid),
			zap.String("entity", cmd.Entity),
			zap.String("record", cmd.Record),
			zap.Error(err),
		)
	}
}

// InsertHandler serves insert commands.
type InsertHandler struct {
	writeHandler
}

func NewInsertHandler(logger *zap.Logger, resolver *StoreResolver, defs map[string]EntityDefinition, queue Queuer, clock Clocker) *InsertHandler {
	return &InsertHandler{writeHandler{logger: logger, resolver: resolver, defs: defs, queue: queue, clock: clock}}
}

func (h *InsertHandler) Validate(_ context.Context, cmd Command) error {
	return h.validateWrite(cmd)
}

func (h *InsertHandler) Execute(ctx context.Context, cmd Command) (CommandResult, error) {
	store, err := h.resolver.Resolve(cmd.Entity)
	if err != nil {
		return failedResult(cmd, "entity not served", err), err
	}
	if err := store.Insert(ctx, cmd.Record, cmd.Data); err != nil {
		return failedResult(cmd, "failed to insert the record", err), err
	}
	h.publish(ctx, CreateQueue, InsertCommand, cmd)
	result := successResult(cmd, "record created successfully")
	result.Data = cmd.Data
	return result, nil
}

// UpdateHandler serves update commands. Like the underlying stores it
// upserts: updating a missing record creates it.
type UpdateHandler struct {
	writeHandler
}

func NewUpdateHandler(logger *zap.Logger, resolver *StoreResolver, defs map[string]EntityDefinition, queue Queuer, clock Clocker) *UpdateHandler {
	return &UpdateHandler{writeHandler{logger: logger, resolver: resolver, defs: defs, queue: queue, clock: clock}}
}

func (h *UpdateHandler) Validate(_ context.Context, cmd Command) error {
	return h.validateWrite(cmd)
}

func (h *UpdateHandler) Execute(ctx context.Context, cmd Command) (CommandResult, error) {
	store, err := h.resolver.Resolve(cmd.Entity)
	if err != nil {
		return failedResult(cmd, "entity not served", err), err
	}
	if err := store.Update(ctx, cmd.Record, cmd.Data); err != nil {
		return failedResult(cmd, "failed to update the record", err), err
	}
	h.publish(ctx, UpdateQueue, UpdateCommand, cmd)
	result := successResult(cmd, "record updated successfully")
	result.Data = cmd.Data
	return result, nil
}

// DeleteHandler serves delete commands. The removed record is fetched
// first so the result can carry its last state back to the caller.
type DeleteHandler struct {
	writeHandler
}

func NewDeleteHandler(logger *zap.Logger, resolver *StoreResolver, defs map[string]EntityDefinition, queue Queuer, clock Clocker) *DeleteHandler {
	return &DeleteHandler{writeHandler{logger: logger, resolver: resolver, defs: defs, queue: queue, clock: clock}}
}

func (h *DeleteHandler) Validate(_ context.Context, cmd Command) error {
	if len(cmd.Entity) == 0 {
		return missingFieldError("entity")
	}
	if len(cmd.Record) == 0 {
		return missingFieldError("record")
	}
	if _, ok := h.defs[cmd.Entity]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEntity, cmd.Entity)
	}
	return nil
}

func (h *DeleteHandler) Execute(ctx context.Context, cmd Command) (CommandResult, error) {
	store, err := h.resolver.Resolve(cmd.Entity)
	if err != nil {
		return failedResult(cmd, "entity not served", err), err
	}
	data, err := store.Get(ctx, cmd.Record)
	if err != nil {
		return failedResult(cmd, "failed to check the record", err), err
	}
	if err := store.Delete(ctx, cmd.Record); err != nil {
		return failedResult(cmd, "failed to delete the record", err), err
	}
	h.publish(ctx, DeleteQueue, DeleteCommand, cmd)
	result := successResult(cmd, "record deleted successfully")
	result.Data = json.RawMessage(data)
	return result, nil
}
