package main

import (
	"context"
	"encoding/json"

	"github.com/hashicorp/go-multierror"
)

// Predefined command type identifiers.
const (
	ReadCommand   = "read"
	CountCommand  = "count"
	InsertCommand = "insert"
	UpdateCommand = "update"
	DeleteCommand = "delete"
)

// Command is a unit-of-work request dispatched to the processing pipeline.
// The ID is assigned by the pipeline when the caller did not provide one.
// Record designates the target record for single-record operations and
// Data carries the raw payload for write operations.
type Command struct {
	ID     string          `json:"id,omitempty"`
	Type   string          `json:"type"`
	Entity string          `json:"entity"`
	Record string          `json:"record,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Claim returns the permission claim identifier guarding this command.
func (c Command) Claim() string {
	return c.Entity + "." + c.Type
}

// CommandResult is the outcome of one processed command. The underlying
// error is kept out of the serialized form so api handlers can classify
// failures without leaking internals to clients.
type CommandResult struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Entity  string          `json:"entity"`
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Total   *int64          `json:"total,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Err     error           `json:"-"`
}

// CommandHandler validates then executes one command type.
type CommandHandler interface {
	Validate(ctx context.Context, cmd Command) error
	Execute(ctx context.Context, cmd Command) (CommandResult, error)
}

// BatchReport aggregates the per-command results of one processed batch.
type BatchReport struct {
	Results  []CommandResult `json:"results"`
	Executed int             `json:"executed"`
	Failed   int             `json:"failed"`
	Skipped  int             `json:"skipped,omitempty"`
	err      *multierror.Error
}

// Err returns the combined error of all failed commands or nil when the
// whole batch succeeded.
func (br *BatchReport) Err() error {
	return br.err.ErrorOrNil()
}

func successResult(cmd Command, message string) CommandResult {
	return CommandResult{
		ID:      cmd.ID,
		Type:    cmd.Type,
		Entity:  cmd.Entity,
		Success: true,
		Message: message,
	}
}

func failedResult(cmd Command, message string, err error) CommandResult {
	return CommandResult{
		ID:      cmd.ID,
		Type:    cmd.Type,
		Entity:  cmd.Entity,
		Success: false,
		Message: message,
		Err:     err,
	}
}
