// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package command

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/holobank/internal/ledger"
)

var tracer = otel.Tracer("holobank/command")

// Dispatcher handles menu parsing and execution.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher during construction.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// NewDispatcher creates a new dispatcher for the given registry.
// Returns an error if registry is nil.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) (*Dispatcher, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	d := &Dispatcher{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Registry returns the registry the dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch parses and executes one menu choice.
func (d *Dispatcher) Dispatch(ctx context.Context, input string, exec *CommandExecution) (err error) {
	// Validate Services and Console are non-nil to prevent handler panics
	if exec.Services == nil || exec.Console == nil {
		return ErrNilServices()
	}

	parsed, err := Parse(input)
	if err != nil {
		return err
	}

	recorder := NewMetricsRecorder()
	defer recorder.Record()

	ctx, span := tracer.Start(ctx, "command.execute",
		trace.WithAttributes(
			attribute.String("command.input", parsed.Name),
			attribute.String("session.id", exec.SessionID.String()),
		),
	)
	defer func() {
		if err != nil && !IsExit(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	entry, ok := d.registry.Get(parsed.Name)
	if !ok {
		recorder.SetCommandName("unknown")
		recorder.SetStatus(StatusNotFound)
		err = ErrUnknownCommand(parsed.Name)
		return err
	}
	recorder.SetCommandName(entry.Name)
	span.SetAttributes(attribute.String("command.name", entry.Name))

	exec.Args = parsed.Args
	exec.InvokedAs = parsed.Name
	err = entry.Handler(ctx, exec)
	recorder.SetStatus(dispatchStatus(err))

	switch {
	case err == nil, IsExit(err):
	case ledger.IsReported(err):
		d.logger.DebugContext(ctx, "command declined",
			"command", entry.Name,
			"code", ledger.Code(err),
		)
	default:
		d.logger.WarnContext(ctx, "command execution failed",
			"command", entry.Name,
			"error", err,
		)
	}
	return err
}

func dispatchStatus(err error) string {
	switch {
	case err == nil, IsExit(err):
		return StatusSuccess
	case ledger.IsCode(err, CodeInvalidArgs):
		return StatusInvalidArgs
	case ledger.IsReported(err) && !ledger.IsCode(err, ledger.CodeFatal):
		return StatusDeclined
	default:
		return StatusError
	}
}
