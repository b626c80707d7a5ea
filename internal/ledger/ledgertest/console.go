// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package ledgertest provides test helpers for the ledger.
package ledgertest

import (
	"context"
	"io"
	"strings"

	"github.com/holomush/holobank/internal/ledger"
)

// ScriptedConsole is a ledger.Console that answers prompts from a fixed
// script and records everything it is asked and told.
type ScriptedConsole struct {
	inputs   []string
	Prompts  []string
	Messages []string
}

var _ ledger.Console = (*ScriptedConsole)(nil)

// NewScriptedConsole creates a console that answers prompts with inputs in order.
// Once the script runs out RequestValue returns io.EOF.
func NewScriptedConsole(inputs ...string) *ScriptedConsole {
	return &ScriptedConsole{inputs: inputs}
}

// Push appends more answers to the script.
func (c *ScriptedConsole) Push(inputs ...string) {
	c.inputs = append(c.inputs, inputs...)
}

// Remaining returns the number of unread answers.
func (c *ScriptedConsole) Remaining() int {
	return len(c.inputs)
}

// RequestValue records prompt and returns the next scripted answer.
func (c *ScriptedConsole) RequestValue(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.Prompts = append(c.Prompts, prompt)
	if len(c.inputs) == 0 {
		return "", io.EOF
	}
	next := c.inputs[0]
	c.inputs = c.inputs[1:]
	return next, nil
}

// Report records message.
func (c *ScriptedConsole) Report(_ context.Context, message string) {
	c.Messages = append(c.Messages, message)
}

// Output returns every reported message joined by newlines.
func (c *ScriptedConsole) Output() string {
	return strings.Join(c.Messages, "\n")
}

// Reset clears recorded prompts and messages, keeping unread answers.
func (c *ScriptedConsole) Reset() {
	c.Prompts = nil
	c.Messages = nil
}

// FixedIDs is a ledger.IDSource that replays offsets in order and then
// repeats the last one.
type FixedIDs struct {
	offsets []int
	Draws   int
}

// NewFixedIDs creates an id source yielding min+offset for each offset.
func NewFixedIDs(offsets ...int) *FixedIDs {
	return &FixedIDs{offsets: offsets}
}

// IntN returns the next offset, clamped to [0, n).
func (f *FixedIDs) IntN(n int) int {
	f.Draws++
	if len(f.offsets) == 0 {
		return 0
	}
	next := f.offsets[0]
	if len(f.offsets) > 1 {
		f.offsets = f.offsets[1:]
	}
	if next < 0 || next >= n {
		return 0
	}
	return next
}

// CheapHasher returns an argon2id hasher with the smallest allowed cost.
func CheapHasher() *ledger.Argon2idHasher {
	h, err := ledger.NewArgon2idHasherWithParams(ledger.Argon2Params{
		Time:    1,
		Memory:  8,
		Threads: 1,
		SaltLen: 8,
		KeyLen:  16,
	})
	if err != nil {
		panic(err)
	}
	return h
}
