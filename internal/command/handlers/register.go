// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package handlers

import (
	"github.com/holomush/holobank/internal/command"
)

// RegisterAll registers every menu option with the registry.
// Panics if any registration fails (indicates a programming error).
func RegisterAll(reg *command.Registry) {
	mustRegister := func(entry command.CommandEntry) {
		if err := reg.Register(entry); err != nil {
			panic("failed to register menu option " + entry.Name + ": " + err.Error())
		}
	}

	mustRegister(command.CommandEntry{
		Key:     "1",
		Name:    "create",
		Label:   "Create a new account",
		Handler: CreateHandler,
		Usage:   "create [name]",
		Help:    "Open an account protected by an auth code and a reset keyword",
	})

	mustRegister(command.CommandEntry{
		Key:     "2",
		Name:    "deposit",
		Label:   "Deposit funds",
		Handler: DepositHandler,
		Usage:   "deposit [name] [amount]",
		Help:    "Add funds to an account",
	})

	mustRegister(command.CommandEntry{
		Key:     "3",
		Name:    "withdraw",
		Label:   "Withdraw funds",
		Handler: WithdrawHandler,
		Usage:   "withdraw [name] [amount]",
		Help:    "Remove funds from an account",
	})

	mustRegister(command.CommandEntry{
		Key:     "4",
		Name:    "balance",
		Label:   "Check balance",
		Handler: BalanceHandler,
		Usage:   "balance [name]",
		Help:    "Show the current balance of an account",
	})

	mustRegister(command.CommandEntry{
		Key:     "5",
		Name:    "exit",
		Label:   "Exit",
		Handler: ExitHandler,
		Usage:   "exit",
		Help:    "End the session",
	})

	mustRegister(command.CommandEntry{
		Key:     "6",
		Name:    "list",
		Label:   "List account IDs",
		Handler: ListHandler,
		Usage:   "list [pattern]",
		Help:    "Show issued account ids, or accounts whose holder matches a pattern",
	})

	mustRegister(command.CommandEntry{
		Key:     "7",
		Name:    "reset",
		Label:   "Reset auth code",
		Handler: ResetHandler,
		Usage:   "reset [name]",
		Help:    "Replace a forgotten auth code using the reset keyword",
	})
}
