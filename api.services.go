package main

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

type BookServiceProvider interface {
	Add(ctx context.Context, id string, book Book) error
	GetOne(ctx context.Context, id string) (Book, error)
	Delete(ctx context.Context, id string) (Book, error)
	Update(ctx context.Context, id string, book Book) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	Count(ctx context.Context) (int64, error)
}

// BookService is the book controller backend. Every operation is turned
// into a command and dispatched through the processing pipeline, so the
// book endpoints exercise the exact same path as the generic commands
// endpoint.
type BookService struct {
	logger   *zap.Logger
	config   *Config
	clock    Clocker
	pipeline Processor
}

func NewBookService(logger *zap.Logger, config *Config, clock Clocker, pipeline Processor) BookServiceProvider {
	return &BookService{
		logger:   logger,
		config:   config,
		clock:    clock,
		pipeline: pipeline,
	}
}

// dispatch runs a single command through the pipeline and returns its result.
func (bs *BookService) dispatch(ctx context.Context, cmd Command) (CommandResult, error) {
	report := bs.pipeline.Process(ctx, IdentityFromContext(ctx), []Command{cmd})
	if len(report.Results) == 0 {
		return CommandResult{}, errors.New("service: empty pipeline report")
	}
	result := report.Results[0]
	if !result.Success {
		return result, result.Err
	}
	return result, nil
}

func (bs *BookService) Add(ctx context.Context, id string, book Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return err
	}
	_, err = bs.dispatch(ctx, Command{Type: InsertCommand, Entity: BookEntity, Record: id, Data: data})
	return err
}

func (bs *BookService) GetOne(ctx context.Context, id string) (Book, error) {
	var book Book
	result, err := bs.dispatch(ctx, Command{Type: ReadCommand, Entity: BookEntity, Record: id})
	if err != nil {
		return book, err
	}
	err = json.Unmarshal(result.Data, &book)
	return book, err
}

func (bs *BookService) Delete(ctx context.Context, id string) (Book, error) {
	var book Book
	result, err := bs.dispatch(ctx, Command{Type: DeleteCommand, Entity: BookEntity, Record: id})
	if err != nil {
		return book, err
	}
	err = json.Unmarshal(result.Data, &book)
	return book, err
}

func (bs *BookService) Update(ctx context.Context, id string, book Book) (Book, error) {
	book.UpdatedAt = bs.clock.Now().UTC().String()
	data, err := json.Marshal(book)
	if err != nil {
		return book, err
	}
	_, err = bs.dispatch(ctx, Command{Type: UpdateCommand, Entity: BookEntity, Record: id, Data: data})
	return book, err
}

func (bs *BookService) GetAll(ctx context.Context) ([]Book, error) {
	result, err := bs.dispatch(ctx, Command{Type: ReadCommand, Entity: BookEntity})
	if err != nil {
		return nil, err
	}
	books := []Book{}
	err = json.Unmarshal(result.Data, &books)
	return books, err
}

func (bs *BookService) Count(ctx context.Context) (int64, error) {
	result, err := bs.dispatch(ctx, Command{Type: CountCommand, Entity: BookEntity})
	if err != nil {
		return 0, err
	}
	if result.Total == nil {
		return 0, errors.New("service: count result without total")
	}
	return *result.Total, nil
}
