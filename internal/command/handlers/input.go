// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/holomush/holobank/internal/command"
	"github.com/holomush/holobank/internal/ledger"
)

const holderPrompt = "Enter the name of the account holder: "

// argOrPrompt returns value when the user gave it inline, otherwise asks for it.
func argOrPrompt(ctx context.Context, exec *command.CommandExecution, cmd, value, prompt string) (string, error) {
	if value = strings.TrimSpace(value); value != "" {
		return value, nil
	}
	raw, err := exec.Console.RequestValue(ctx, prompt)
	if err != nil {
		return "", ledger.ErrFatal(cmd, err)
	}
	return strings.TrimSpace(raw), nil
}

// lookupHolder resolves the account named inline or at the holder prompt.
func lookupHolder(ctx context.Context, exec *command.CommandExecution, cmd, name string) (*ledger.Account, error) {
	name, err := argOrPrompt(ctx, exec, cmd, name, holderPrompt)
	if err != nil {
		return nil, err
	}
	return exec.Services.Ledger().Lookup(name)
}

// amountArg resolves and parses a whole-number amount.
// Range checks belong to the account.
func amountArg(ctx context.Context, exec *command.CommandExecution, cmd, raw, prompt string) (int64, error) {
	raw, err := argOrPrompt(ctx, exec, cmd, raw, prompt)
	if err != nil {
		return 0, err
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, command.ErrInvalidAmount(cmd, raw)
	}
	return amount, nil
}
