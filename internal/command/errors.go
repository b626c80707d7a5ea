// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package command

import (
	"github.com/samber/oops"

	"github.com/holomush/holobank/internal/ledger"
)

// Error codes for command dispatch failures.
const (
	CodeUnknownCommand = "UNKNOWN_COMMAND"
	CodeInvalidArgs    = "INVALID_ARGS"
	CodeEmptyInput     = "EMPTY_INPUT"
	CodeSessionExit    = "SESSION_EXIT"
	CodeInvalidName    = "INVALID_COMMAND_NAME"
	CodeNilServices    = "NIL_SERVICES"
	CodeNilHandler     = "NIL_HANDLER"
)

// ErrNilRegistry is returned when a dispatcher is built without a registry.
var ErrNilRegistry = oops.Code("NIL_REGISTRY").Errorf("command registry is required")

// ErrUnknownCommand creates an error for an unknown menu choice.
func ErrUnknownCommand(cmd string) error {
	return oops.Code(CodeUnknownCommand).
		With("command", cmd).
		Errorf("unknown command: %s", cmd)
}

// ErrInvalidArgs creates an error for invalid arguments.
func ErrInvalidArgs(cmd, usage string) error {
	return oops.Code(CodeInvalidArgs).
		With("command", cmd).
		With("usage", usage).
		Errorf("invalid arguments")
}

// ErrInvalidAmount creates an error for an amount that is not a whole number.
func ErrInvalidAmount(cmd, raw string) error {
	return oops.Code(CodeInvalidArgs).
		With("command", cmd).
		With("amount", raw).
		Errorf("invalid amount %q: expected a whole number", raw)
}

// ErrEmptyInput creates an error for a blank menu choice.
func ErrEmptyInput() error {
	return oops.Code(CodeEmptyInput).Errorf("no command provided")
}

// ErrSessionExit signals that the user asked to end the session.
// It is a control value, not a failure.
func ErrSessionExit() error {
	return oops.Code(CodeSessionExit).Errorf("session exit requested")
}

// ErrNilServices creates an error for an execution without services.
func ErrNilServices() error {
	return oops.Code(CodeNilServices).Errorf("services are required")
}

// ErrNilHandler creates an error for an option registered without a handler.
func ErrNilHandler(cmd string) error {
	return oops.Code(CodeNilHandler).
		With("command", cmd).
		Errorf("command %s has no handler", cmd)
}

// ErrDuplicateName creates an error for a name already bound to another key.
func ErrDuplicateName(cmd, key string) error {
	return oops.Code(CodeInvalidName).
		With("command", cmd).
		With("key", key).
		Errorf("command name %s already registered under key %s", cmd, key)
}

// IsExit reports whether err asks the session to end.
func IsExit(err error) bool {
	return ledger.IsCode(err, CodeSessionExit)
}

// UserMessage extracts a user-facing message from a dispatch error.
// Ledger errors are delegated to ledger.UserMessage.
func UserMessage(err error) string {
	if err == nil {
		return "Something went wrong. Try again."
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ledger.UserMessage(err)
	}

	switch ledger.Code(err) {
	case CodeUnknownCommand:
		return "Invalid choice. Select an option from the menu."
	case CodeEmptyInput:
		return "No choice entered. Select an option from the menu."
	case CodeInvalidArgs:
		if raw, ok := oopsErr.Context()["amount"].(string); ok {
			return "Invalid amount \"" + raw + "\". Enter a whole number."
		}
		if usage, ok := oopsErr.Context()["usage"].(string); ok && usage != "" {
			return "Usage: " + usage
		}
		return "Invalid arguments."
	case CodeSessionExit:
		return "Program terminated!"
	default:
		return ledger.UserMessage(err)
	}
}
