package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

var ErrInvalidCommand = errors.New("invalid command")

var _ Processor = (*Pipeline)(nil) // ensure Pipeline implements Processor.

// Processor receives a batch of commands and returns per-command results.
type Processor interface {
	Process(ctx context.Context, identity Identity, batch []Command) BatchReport
}

// Pipeline applies the cross-cutting processing steps on each command of
// a batch in a fixed order: permission check, handler resolution, payload
// validation, execution, then result aggregation. A failing step stops
// the remaining steps for that command only. When stopOnFailure is set,
// the first failure aborts the batch and the remaining commands are
// reported as skipped.
type Pipeline struct {
	logger        *zap.Logger
	registry      *CommandRegistry
	authorizer    Authorizer
	ids           UIDHandler
	stopOnFailure bool
}

// NewPipeline provides a ready to use commands processing pipeline.
func NewPipeline(logger *zap.Logger, registry *CommandRegistry, authorizer Authorizer, ids UIDHandler, stopOnFailure bool) *Pipeline {
	return &Pipeline{
		logger:        logger,
		registry:      registry,
		authorizer:    authorizer,
		ids:           ids,
		stopOnFailure: stopOnFailure,
	}
}

// Process runs the whole batch and aggregates per-command results. Every
// command gets an id before any step runs so each result is addressable.
// An empty batch yields an empty report.
func (p *Pipeline) Process(ctx context.Context, identity Identity, batch []Command) BatchReport {
	report := BatchReport{Results: make([]CommandResult, 0, len(batch))}

	for i, cmd := range batch {
		if len(cmd.ID) == 0 {
			cmd.ID = p.ids.Generate(CommandIDPrefix)
		}

		result, err := p.processOne(ctx, identity, cmd)
		if err != nil {
			report.Failed++
			report.err = multierror.Append(report.err, fmt.Errorf("command %s (%s on %s): %w", cmd.ID, cmd.Type, cmd.Entity, err))
			report.Results = append(report.Results, result)
			p.logger.Error("pipeline: command failed",
				zap.String("command.id", cmd.ID),
				zap.String("command.type", cmd.Type),
				zap.String("command.entity", cmd.Entity),
				zap.String("user", identity.String()),
				zap.Error(err),
			)

			if p.stopOnFailure {
				for _, skipped := range batch[i+1:] {
					if len(skipped.ID) == 0 {
						skipped.ID = p.ids.Generate(CommandIDPrefix)
					}
					report.Skipped++
					report.Results = append(report.Results, failedResult(skipped, "command skipped: batch aborted on failure", nil))
				}
				return report
			}
			continue
		}

		report.Executed++
		report.Results = append(report.Results, result)
	}
	return report
}

// processOne runs the fixed steps sequence for a single command.
func (p *Pipeline) processOne(ctx context.Context, identity Identity, cmd Command) (CommandResult, error) {
	if err := p.authorizer.Authorize(ctx, identity, cmd.Claim()); err != nil {
		return failedResult(cmd, "command not authorized", err), err
	}

	handler, err := p.registry.Resolve(cmd.Type)
	if err != nil {
		return failedResult(cmd, "command type not supported", err), err
	}

	if err := handler.Validate(ctx, cmd); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidCommand, err)
		return failedResult(cmd, "command validation failed", err), err
	}

	result, err := handler.Execute(ctx, cmd)
	if err != nil {
		return failedResult(cmd, "command execution failed", err), err
	}
	return result, nil
}
