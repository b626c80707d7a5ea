// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/samber/oops"

	"github.com/holomush/holobank/internal/ledger"
	"github.com/holomush/holobank/internal/observability"
)

// lineResult is one read from the input.
type lineResult struct {
	line string
	err  error
}

// Terminal is a line-oriented ledger.Console over a reader and a writer.
//
// Reads happen on a helper goroutine so a cancelled context unblocks the
// caller. A read abandoned that way is handed to the next RequestValue.
type Terminal struct {
	reader *bufio.Reader
	out    io.Writer
	logger *slog.Logger

	mu      sync.Mutex
	pending chan lineResult
}

var _ ledger.Console = (*Terminal)(nil)

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithTerminalLogger sets the logger used for write failures.
func WithTerminalLogger(l *slog.Logger) TerminalOption {
	return func(t *Terminal) {
		t.logger = l
	}
}

// NewTerminal creates a terminal reading lines from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		reader: bufio.NewReader(in),
		out:    out,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RequestValue writes prompt and returns the next input line without
// surrounding whitespace. A final line without a newline is returned
// before io.EOF.
func (t *Terminal) RequestValue(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err //nolint:wrapcheck // callers match on context errors
	}
	if _, err := io.WriteString(t.out, prompt); err != nil {
		t.writeFailed(ctx, "prompt", err)
	}

	t.mu.Lock()
	if t.pending == nil {
		t.pending = make(chan lineResult, 1)
		go t.readLine(t.pending)
	}
	pending := t.pending
	t.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err() //nolint:wrapcheck // callers match on context errors
	case res := <-pending:
		t.mu.Lock()
		t.pending = nil
		t.mu.Unlock()
		return res.line, res.err
	}
}

func (t *Terminal) readLine(ch chan<- lineResult) {
	line, err := t.reader.ReadString('\n')
	switch {
	case err == nil:
		ch <- lineResult{line: strings.TrimSpace(line)}
	case errors.Is(err, io.EOF) && line != "":
		// Deliver the unterminated line now; the next read reports EOF.
		ch <- lineResult{line: strings.TrimSpace(line)}
	case errors.Is(err, io.EOF):
		ch <- lineResult{err: io.EOF}
	default:
		ch <- lineResult{err: oops.Code("TERMINAL_READ").Wrapf(err, "read input")}
	}
}

// Report writes message followed by a newline.
func (t *Terminal) Report(ctx context.Context, message string) {
	if _, err := io.WriteString(t.out, message+"\n"); err != nil {
		t.writeFailed(ctx, "report", err)
	}
}

func (t *Terminal) writeFailed(ctx context.Context, kind string, err error) {
	observability.RecordConsoleWriteFailure(kind)
	t.logger.WarnContext(ctx, "console write failed", "kind", kind, "error", err)
}
