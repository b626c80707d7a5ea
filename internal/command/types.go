// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package command provides the menu registry, parser, and dispatch system.
package command

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/holomush/holobank/internal/ledger"
)

// CommandHandler is the function signature for menu handlers.
//
//nolint:revive // CommandHandler reads better at call sites than command.Handler
type CommandHandler func(ctx context.Context, exec *CommandExecution) error

// CommandEntry represents a menu option in the registry.
//
//nolint:revive // paired with CommandHandler
type CommandEntry struct {
	Key     string         // menu number (e.g., "2")
	Name    string         // canonical name (e.g., "deposit")
	Label   string         // menu text (e.g., "Deposit funds")
	Handler CommandHandler // Go handler
	Usage   string         // usage pattern (e.g., "deposit [name] [amount]")
	Help    string         // short description (one line)
}

// CommandExecution provides context for a single menu interaction.
//
//nolint:revive // paired with CommandHandler
type CommandExecution struct {
	SessionID ulid.ULID
	Args      string         // inline arguments after the choice
	InvokedAs string         // the token the user typed (key or name)
	Console   ledger.Console // prompts and reports
	Services  *Services
}

// Services provides access to core services for menu handlers.
// Handlers MUST NOT store references to services beyond execution.
type Services struct {
	ledger *ledger.Registry
}

// NewServices creates a Services bundle. The ledger is required.
func NewServices(l *ledger.Registry) (*Services, error) {
	if l == nil {
		return nil, oops.Code(CodeNilServices).Errorf("ledger registry is required")
	}
	return &Services{ledger: l}, nil
}

// Ledger returns the account registry.
func (s *Services) Ledger() *ledger.Registry {
	return s.ledger
}
