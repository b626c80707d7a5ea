// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package handlers

import (
	"context"

	"github.com/holomush/holobank/internal/command"
	"github.com/holomush/holobank/internal/ledger"
)

// CreateHandler registers a new account for the named holder.
func CreateHandler(ctx context.Context, exec *command.CommandExecution) error {
	name, err := argOrPrompt(ctx, exec, ledger.OpCreate, exec.Args, "Enter your name: ")
	if err != nil {
		return err
	}
	_, _, err = exec.Services.Ledger().Create(ctx, name)
	return err
}

// DepositHandler adds funds to an account.
func DepositHandler(ctx context.Context, exec *command.CommandExecution) error {
	name, raw := command.SplitAmount(exec.Args)
	account, err := lookupHolder(ctx, exec, ledger.OpDeposit, name)
	if err != nil {
		return err
	}
	amount, err := amountArg(ctx, exec, ledger.OpDeposit, raw, "Enter the amount you wish to deposit: ")
	if err != nil {
		return err
	}
	return account.Deposit(ctx, amount)
}

// WithdrawHandler removes funds from an account.
func WithdrawHandler(ctx context.Context, exec *command.CommandExecution) error {
	name, raw := command.SplitAmount(exec.Args)
	account, err := lookupHolder(ctx, exec, ledger.OpWithdraw, name)
	if err != nil {
		return err
	}
	amount, err := amountArg(ctx, exec, ledger.OpWithdraw, raw, "Enter the amount you wish to withdraw: ")
	if err != nil {
		return err
	}
	return account.Withdraw(ctx, amount)
}

// BalanceHandler shows an account balance.
func BalanceHandler(ctx context.Context, exec *command.CommandExecution) error {
	account, err := lookupHolder(ctx, exec, ledger.OpBalance, exec.Args)
	if err != nil {
		return err
	}
	return account.CheckBalance(ctx)
}

// ResetHandler replaces an account's auth code using its reset keyword.
func ResetHandler(ctx context.Context, exec *command.CommandExecution) error {
	account, err := lookupHolder(ctx, exec, ledger.OpReset, exec.Args)
	if err != nil {
		return err
	}
	return account.ResetCredentials(ctx)
}
