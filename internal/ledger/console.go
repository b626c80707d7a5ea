// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import "context"

// Console is the user-facing I/O the ledger depends on.
type Console interface {
	// RequestValue shows prompt and blocks for one line of raw input.
	RequestValue(ctx context.Context, prompt string) (string, error)

	// Report delivers a one-way message to the user.
	Report(ctx context.Context, message string)
}
