// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import (
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Sentinel inputs recognised by the interactive flows.
const (
	CancelCode      = 0   // entered at an auth code prompt
	CancelKeyword   = "q" // entered at a reset keyword prompt
	ContinueConfirm = 1   // entered at the reset confirmation prompt
)

// Default limits.
const (
	DefaultCodeLength   = 6
	DefaultMaxAmount    = int64(999999)
	DefaultMinAccountID = 1111
	DefaultMaxAccountID = 9999
)

// maxCodeLength keeps codes representable as a non-negative int on every platform.
const maxCodeLength = 18

// Policy holds the tunable limits of the ledger.
type Policy struct {
	CodeLength   int           // required digits in an auth code
	MaxAmount    int64         // inclusive upper bound for a single deposit or withdrawal
	MinAccountID int           // inclusive lower bound of the id range
	MaxAccountID int           // inclusive upper bound of the id range
	MaxAttempts  uint64        // attempts per prompt loop, 0 = until resolved
	RetryDelay   time.Duration // pause between attempts
}

// DefaultPolicy returns the limits of the reference behavior.
func DefaultPolicy() Policy {
	return Policy{
		CodeLength:   DefaultCodeLength,
		MaxAmount:    DefaultMaxAmount,
		MinAccountID: DefaultMinAccountID,
		MaxAccountID: DefaultMaxAccountID,
	}
}

// Validate checks policy constraints.
func (p Policy) Validate() error {
	if p.CodeLength < 1 || p.CodeLength > maxCodeLength {
		return oops.Code("LEDGER_INVALID_POLICY").
			With("code_length", p.CodeLength).
			Errorf("code length must be between 1 and %d", maxCodeLength)
	}
	if p.MaxAmount <= 0 {
		return oops.Code("LEDGER_INVALID_POLICY").
			With("max_amount", p.MaxAmount).
			Errorf("max amount must be positive")
	}
	if p.MinAccountID < 1 || p.MaxAccountID < p.MinAccountID {
		return oops.Code("LEDGER_INVALID_POLICY").
			With("min_account_id", p.MinAccountID).
			With("max_account_id", p.MaxAccountID).
			Errorf("account id range must be positive and non-empty")
	}
	if p.RetryDelay < 0 {
		return oops.Code("LEDGER_INVALID_POLICY").
			With("retry_delay", p.RetryDelay).
			Errorf("retry delay cannot be negative")
	}
	return nil
}

// idSpace is the number of distinct account ids the policy allows.
func (p Policy) idSpace() int {
	return p.MaxAccountID - p.MinAccountID + 1
}

// inRange reports whether amount is a valid single transaction amount.
func (p Policy) inRange(amount int64) bool {
	return amount > 0 && amount <= p.MaxAmount
}

// backoff returns the retry schedule for one prompt loop.
func (p Policy) backoff() retry.Backoff {
	delay := p.RetryDelay
	var b retry.Backoff = retry.BackoffFunc(func() (time.Duration, bool) {
		return delay, false
	})
	if p.MaxAttempts > 0 {
		b = retry.WithMaxRetries(p.MaxAttempts-1, b)
	}
	return b
}
