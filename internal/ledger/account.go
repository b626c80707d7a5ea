// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Operation names used in errors, logs and metrics.
const (
	OpAuthenticate = "authenticate"
	OpBalance      = "balance"
	OpDeposit      = "deposit"
	OpWithdraw     = "withdraw"
	OpReset        = "reset"
	OpCreate       = "create"
)

// Account is a named balance gated by an auth code.
// Accounts are created by Registry.Create and owned by the Registry.
type Account struct {
	id      int
	name    string
	balance int64
	creds   credentials

	policy  Policy
	console Console
	hasher  CodeHasher
	logger  *slog.Logger
	metrics *Metrics
}

// Summary is the public, secret-free view of an account.
type Summary struct {
	ID   int
	Name string
}

// ID returns the account identifier.
func (a *Account) ID() int { return a.id }

// Name returns the account name.
func (a *Account) Name() string { return a.name }

// Balance returns the current balance without authenticating.
// It is meant for trusted callers such as tests and metrics.
func (a *Account) Balance() int64 { return a.balance }

// Summary returns the account id and name.
func (a *Account) Summary() Summary {
	return Summary{ID: a.id, Name: a.name}
}

// CheckBalance authenticates and reports the current balance.
// A zero balance additionally produces an advisory note.
func (a *Account) CheckBalance(ctx context.Context) error {
	if auth := a.Authenticate(ctx); !auth.Authenticated() {
		return a.finish(ctx, OpBalance, auth.Reason())
	}

	a.console.Report(ctx, fmt.Sprintf("Current Balance: %d", a.balance))
	if a.balance == 0 {
		a.console.Report(ctx, "NOTE: Zero balance detected!")
	}
	return a.finish(ctx, OpBalance, nil)
}

// Deposit authenticates, validates amount and adds it to the balance.
func (a *Account) Deposit(ctx context.Context, amount int64) error {
	if auth := a.Authenticate(ctx); !auth.Authenticated() {
		return a.finish(ctx, OpDeposit, auth.Reason())
	}

	if !a.policy.inRange(amount) || a.balance > math.MaxInt64-amount {
		return a.reject(ctx, OpDeposit, ErrOutOfRange(amount, a.policy.MaxAmount))
	}

	a.balance += amount
	a.console.Report(ctx, fmt.Sprintf("Rs. %d deposited to your bank account.\nCurrent Balance: %d", amount, a.balance))
	return a.finish(ctx, OpDeposit, nil)
}

// Withdraw authenticates, validates amount and removes it from the balance.
// The balance never goes negative.
func (a *Account) Withdraw(ctx context.Context, amount int64) error {
	if auth := a.Authenticate(ctx); !auth.Authenticated() {
		return a.finish(ctx, OpWithdraw, auth.Reason())
	}

	if !a.policy.inRange(amount) {
		return a.reject(ctx, OpWithdraw, ErrOutOfRange(amount, a.policy.MaxAmount))
	}
	if amount > a.balance {
		return a.reject(ctx, OpWithdraw, ErrInsufficientFunds(amount, a.balance))
	}

	a.balance -= amount
	a.console.Report(ctx, fmt.Sprintf("Rs. %d withdrawn from your bank account.\nCurrent Balance: %d", amount, a.balance))
	return a.finish(ctx, OpWithdraw, nil)
}

// loop returns the prompt loop for an operation on this account.
func (a *Account) loop(operation string) promptLoop {
	return promptLoop{
		operation: operation,
		policy:    a.policy,
		console:   a.console,
		metrics:   a.metrics,
	}
}

// reject reports a business-rule violation and ends the operation.
func (a *Account) reject(ctx context.Context, operation string, err error) error {
	a.console.Report(ctx, "Error: "+UserMessage(err))
	return a.finish(ctx, operation, err)
}

// deny reports the terminal outcome of a failed challenge.
// Retryable statuses were reported when they happened.
func (a *Account) deny(ctx context.Context, err error) {
	switch {
	case retryable(err):
		a.console.Report(ctx, "Too many failed attempts.")
	default:
		a.console.Report(ctx, UserMessage(err))
	}
	a.console.Report(ctx, "Authentication failed. Access denied!")
}

// finish records the outcome of an operation and marks err as reported.
func (a *Account) finish(ctx context.Context, operation string, err error) error {
	status := outcomeStatus(err)
	a.metrics.RecordOperation(operation, status)
	if err != nil {
		a.logger.InfoContext(ctx, "ledger operation did not complete",
			"operation", operation,
			"status", status,
			"code", Code(err),
		)
		return markReported(err)
	}
	a.logger.DebugContext(ctx, "ledger operation completed", "operation", operation)
	return nil
}
