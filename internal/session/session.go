// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package session runs the interactive banking menu over a console.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/holomush/holobank/internal/command"
	"github.com/holomush/holobank/internal/ledger"
	"github.com/holomush/holobank/internal/logging"
	"github.com/holomush/holobank/internal/observability"
	"github.com/holomush/holobank/pkg/errutil"
)

// Banner is shown once when a session starts.
const Banner = "Banking System Application"

// DefaultMaxFailures is the number of consecutive failed choices that ends a session.
const DefaultMaxFailures = 3

// Session outcomes recorded in metrics.
const (
	OutcomeExit        = "exit"
	OutcomeEOF         = "eof"
	OutcomeInterrupted = "interrupted"
	OutcomeFailed      = "failed"
)

// CodeTooManyFailures marks a session ended by repeated failures.
const CodeTooManyFailures = "TOO_MANY_FAILURES"

// Session drives one interactive menu loop.
type Session struct {
	id          ulid.ULID
	console     ledger.Console
	dispatcher  *command.Dispatcher
	services    *command.Services
	maxFailures int
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// Option configures a Session.
type Option func(*Session)

// WithMaxFailures sets how many consecutive failed choices end the session.
func WithMaxFailures(n int) Option {
	return func(s *Session) {
		s.maxFailures = n
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithMetrics records session outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithID overrides the generated session id.
func WithID(id ulid.ULID) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New creates a session.
func New(console ledger.Console, dispatcher *command.Dispatcher, services *command.Services, opts ...Option) (*Session, error) {
	if console == nil {
		return nil, ledger.ErrNilConsole
	}
	if dispatcher == nil {
		return nil, command.ErrNilRegistry
	}
	if services == nil {
		return nil, command.ErrNilServices()
	}
	s := &Session{
		id:          ulid.Make(),
		console:     console,
		dispatcher:  dispatcher,
		services:    services,
		maxFailures: DefaultMaxFailures,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxFailures < 1 {
		return nil, oops.Code("SESSION_INVALID_CONFIG").
			With("max_failures", s.maxFailures).
			Errorf("max failures must be at least 1")
	}
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() ulid.ULID {
	return s.id
}

// Run shows the banner and serves menu choices until the user exits, input
// ends, ctx is cancelled, or too many consecutive choices fail. Only the last
// case returns an error.
func (s *Session) Run(ctx context.Context) error {
	ctx = logging.WithSessionID(ctx, s.id.String())
	s.logger.InfoContext(ctx, "session started")

	s.console.Report(ctx, Banner)

	failures := 0
	for {
		input, err := s.console.RequestValue(ctx, s.dispatcher.Registry().Menu())
		if err != nil {
			return s.endOnRead(ctx, err)
		}

		exec := &command.CommandExecution{
			SessionID: s.id,
			Console:   s.console,
			Services:  s.services,
		}
		err = s.dispatcher.Dispatch(ctx, input, exec)
		if command.IsExit(err) {
			s.finish(ctx, OutcomeExit)
			return nil
		}
		if err != nil && !ledger.IsReported(err) {
			s.console.Report(ctx, command.UserMessage(err))
		}

		switch {
		case countsAsFailure(err):
			failures++
			s.logger.DebugContext(ctx, "choice failed",
				"code", ledger.Code(err),
				"consecutive", failures,
			)
		case ledger.IsCode(err, command.CodeEmptyInput):
		default:
			failures = 0
		}

		if failures >= s.maxFailures {
			s.console.Report(ctx, "Terminating Program!")
			s.finish(ctx, OutcomeFailed)
			err = oops.Code(CodeTooManyFailures).
				With("session_id", s.id.String()).
				With("failures", failures).
				With("last_code", ledger.Code(err)).
				Errorf("session ended after %d consecutive failures", failures)
			errutil.LogErrorContext(ctx, s.logger, "session terminated", err)
			return err
		}
	}
}

func (s *Session) endOnRead(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, io.EOF):
		s.console.Report(ctx, "Program terminated!")
		s.finish(ctx, OutcomeEOF)
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// ctx is done, so the farewell goes out on a fresh context.
		s.console.Report(context.WithoutCancel(ctx), "Program terminated!")
		s.finish(ctx, OutcomeInterrupted)
		return nil
	default:
		s.finish(ctx, OutcomeFailed)
		err = oops.Code("SESSION_READ").
			With("session_id", s.id.String()).
			Wrapf(err, "read menu choice")
		errutil.LogErrorContext(ctx, s.logger, "session terminated", err)
		return err
	}
}

func (s *Session) finish(ctx context.Context, outcome string) {
	s.metrics.RecordSession(outcome)
	s.logger.InfoContext(ctx, "session ended", "outcome", outcome)
}

// countsAsFailure reports whether err is a failed choice for the purpose
// of ending the session. Declined business outcomes do not count.
func countsAsFailure(err error) bool {
	switch {
	case err == nil:
		return false
	case ledger.IsCode(err, ledger.CodeFatal):
		return true
	case ledger.IsReported(err):
		return false
	default:
		return ledger.IsCode(err, command.CodeUnknownCommand) ||
			ledger.IsCode(err, command.CodeInvalidArgs) ||
			ledger.IsCode(err, ledger.CodeUnknownAccount)
	}
}
