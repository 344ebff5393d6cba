package main

import (
	"context"
	"errors"
)

var ErrRecordNotFound = errors.New("record not found")

// EntityStore defines possible operations on the records of one logical
// entity. Records are raw json payloads keyed by their record id.
type EntityStore interface {
	Insert(ctx context.Context, id string, data []byte) error
	Get(ctx context.Context, id string) ([]byte, error)
	Update(ctx context.Context, id string, data []byte) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([][]byte, error)
	Count(ctx context.Context) (int64, error)
}
