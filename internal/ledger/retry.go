// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import (
	"context"

	"github.com/sethvargo/go-retry"
)

// step performs one prompt-and-validate cycle and returns its status:
// nil when resolved, a retryable ledger error to prompt again, or a
// terminal ledger error.
type step func(ctx context.Context) error

// retryable reports whether a step status asks for another attempt.
func retryable(status error) bool {
	switch Code(status) {
	case CodeMalformedCode, CodeInvalidCode, CodeInvalidKeyword, CodeMalformedKeyword:
		return true
	default:
		return false
	}
}

// promptLoop re-runs a step until its status is terminal.
type promptLoop struct {
	operation string
	policy    Policy
	console   Console
	metrics   *Metrics
}

// run drives s. Retryable statuses are reported before the next attempt.
// When MaxAttempts runs out the last retryable status is returned.
func (l promptLoop) run(ctx context.Context, s step) error {
	err := retry.Do(ctx, l.policy.backoff(), func(ctx context.Context) error {
		status := s(ctx)
		if !retryable(status) {
			return status
		}
		l.console.Report(ctx, "Error: "+UserMessage(status))
		l.metrics.RecordRejection(l.operation, Code(status))
		return retry.RetryableError(status)
	})
	if err != nil && Code(err) == "" {
		// go-retry surfaces context errors bare.
		return ErrFatal(l.operation, err)
	}
	return err
}
