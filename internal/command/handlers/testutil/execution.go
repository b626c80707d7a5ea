// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package testutil provides builders for handler tests.
package testutil

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/holomush/holobank/internal/command"
	"github.com/holomush/holobank/internal/ledger"
	"github.com/holomush/holobank/internal/ledger/ledgertest"
)

// ExecutionBuilder builds CommandExecution instances backed by a scripted console.
type ExecutionBuilder struct {
	t        *testing.T
	args     string
	console  *ledgertest.ScriptedConsole
	registry *ledger.Registry
	opts     []ledger.RegistryOption
}

// NewExecutionBuilder creates a new execution builder.
func NewExecutionBuilder(t *testing.T) *ExecutionBuilder {
	t.Helper()
	return &ExecutionBuilder{t: t, console: ledgertest.NewScriptedConsole()}
}

// WithArgs sets the inline arguments.
func (b *ExecutionBuilder) WithArgs(args string) *ExecutionBuilder {
	b.args = args
	return b
}

// WithInputs appends answers for the console to give at prompts.
func (b *ExecutionBuilder) WithInputs(inputs ...string) *ExecutionBuilder {
	b.console.Push(inputs...)
	return b
}

// WithRegistry uses an existing ledger registry. Its console must be the
// builder's Console().
func (b *ExecutionBuilder) WithRegistry(r *ledger.Registry) *ExecutionBuilder {
	b.registry = r
	return b
}

// WithLedgerOptions passes options to the registry the builder creates.
func (b *ExecutionBuilder) WithLedgerOptions(opts ...ledger.RegistryOption) *ExecutionBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Console returns the scripted console shared by the execution and registry.
func (b *ExecutionBuilder) Console() *ledgertest.ScriptedConsole {
	return b.console
}

// Build creates the execution.
func (b *ExecutionBuilder) Build() *command.CommandExecution {
	b.t.Helper()
	if b.registry == nil {
		opts := append([]ledger.RegistryOption{ledger.WithHasher(ledgertest.CheapHasher())}, b.opts...)
		reg, err := ledger.NewRegistry(b.console, opts...)
		require.NoError(b.t, err)
		b.registry = reg
	}
	services, err := command.NewServices(b.registry)
	require.NoError(b.t, err)

	return &command.CommandExecution{
		SessionID: ulid.Make(),
		Args:      b.args,
		Console:   b.console,
		Services:  services,
	}
}

// NewLedger creates a registry on console holding one account per name.
// Every account gets code 123456 and keyword secret.
func NewLedger(t *testing.T, console *ledgertest.ScriptedConsole, names ...string) *ledger.Registry {
	t.Helper()
	reg, err := ledger.NewRegistry(console, ledger.WithHasher(ledgertest.CheapHasher()))
	require.NoError(t, err)
	for _, name := range names {
		console.Push("123456", "secret")
		_, _, err := reg.Create(t.Context(), name)
		require.NoError(t, err)
	}
	console.Reset()
	return reg
}
