// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

// Error codes for ledger failures.
const (
	CodeCancelled         = "CANCELLED"
	CodeMalformedCode     = "MALFORMED_CODE"
	CodeInvalidCode       = "INVALID_CODE"
	CodeOutOfRange        = "OUT_OF_RANGE"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeInvalidKeyword    = "INVALID_KEYWORD"
	CodeMalformedKeyword  = "MALFORMED_KEYWORD"
	CodeUnknownAccount    = "UNKNOWN_ACCOUNT"
	CodeDuplicateAccount  = "DUPLICATE_ACCOUNT"
	CodeInvalidName       = "INVALID_NAME"
	CodeInvalidPattern    = "INVALID_PATTERN"
	CodeFatal             = "FATAL"
)

// ErrNilConsole is returned when a registry is built without a console.
var ErrNilConsole = oops.Code("LEDGER_NIL_CONSOLE").Errorf("console is required")

// ErrCancelled creates an error for a flow the user cancelled with a sentinel value.
func ErrCancelled(operation string) error {
	return oops.Code(CodeCancelled).
		With("operation", operation).
		Errorf("%s interrupted by user", operation)
}

// ErrMalformedCode creates an error for a code with the wrong number of digits.
func ErrMalformedCode(length int) error {
	return oops.Code(CodeMalformedCode).
		With("length", length).
		Errorf("authentication code must be %d digits long", length)
}

// ErrInvalidCode creates an error for a well-formed code that does not match.
func ErrInvalidCode() error {
	return oops.Code(CodeInvalidCode).Errorf("invalid code entered")
}

// ErrOutOfRange creates an error for an amount outside (0, max].
func ErrOutOfRange(amount, maxAmount int64) error {
	return oops.Code(CodeOutOfRange).
		With("amount", amount).
		With("max", maxAmount).
		Errorf("amount %d outside 1-%d", amount, maxAmount)
}

// ErrInsufficientFunds creates an error for a withdrawal larger than the balance.
func ErrInsufficientFunds(amount, balance int64) error {
	return oops.Code(CodeInsufficientFunds).
		With("amount", amount).
		With("balance", balance).
		Errorf("insufficient funds")
}

// ErrInvalidKeyword creates an error for a reset keyword mismatch.
func ErrInvalidKeyword() error {
	return oops.Code(CodeInvalidKeyword).Errorf("invalid reset keyword")
}

// ErrMalformedKeyword creates an error for a reset keyword that is not alphabetic.
func ErrMalformedKeyword() error {
	return oops.Code(CodeMalformedKeyword).Errorf("reset keyword must contain letters only")
}

// ErrUnknownAccount creates an error for a name with no registered account.
func ErrUnknownAccount(name string) error {
	return oops.Code(CodeUnknownAccount).
		With("name", name).
		Errorf("no account named %q", name)
}

// ErrDuplicateAccount creates an error for a name that is already registered.
func ErrDuplicateAccount(name string) error {
	return oops.Code(CodeDuplicateAccount).
		With("name", name).
		Errorf("account %q already exists", name)
}

// ErrInvalidName creates an error for an empty account name.
func ErrInvalidName() error {
	return oops.Code(CodeInvalidName).Errorf("account name cannot be empty")
}

// ErrInvalidPattern creates an error for a malformed name filter.
func ErrInvalidPattern(pattern string, cause error) error {
	return oops.Code(CodeInvalidPattern).
		With("pattern", pattern).
		Wrap(cause)
}

// ErrFatal wraps an unanticipated failure that aborts the current operation.
// oops reports the deepest code in a chain, so coded causes are flattened
// into the message to keep FATAL as the visible code.
func ErrFatal(operation string, cause error) error {
	builder := oops.Code(CodeFatal).With("operation", operation)
	if cause == nil {
		return builder.Errorf("%s failed", operation)
	}
	if code := Code(cause); code != "" {
		return builder.With("cause_code", code).Errorf("%s", cause.Error())
	}
	return builder.Wrap(cause)
}

// Code returns the oops code of err, or "" when err carries none.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := oopsErr.Code().(string)
	return code
}

// IsCode reports whether err carries the given oops code.
func IsCode(err error, code string) bool {
	return err != nil && Code(err) == code
}

// reportedError marks an error whose user-facing message was already sent to the console.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func markReported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether an account operation already told the user about err.
// Dispatchers use it to avoid reporting the same failure twice.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// UserMessage extracts a user-facing message from an error.
func UserMessage(err error) string {
	if err == nil {
		return "Something went wrong. Try again."
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return fmt.Sprintf("Unexpected Error: %v.", err)
	}

	ctx := oopsErr.Context()
	switch Code(err) {
	case CodeCancelled:
		if op, ok := ctx["operation"].(string); ok && op == OpReset {
			return "Reset interrupted by user!"
		}
		return "Authentication interrupted by user!"
	case CodeMalformedCode:
		if n, ok := ctx["length"].(int); ok {
			return fmt.Sprintf("Authentication code must be %d digits long. Please re-enter!", n)
		}
		return "Authentication code has the wrong length. Please re-enter!"
	case CodeInvalidCode:
		return "Invalid code entered. Please re-enter!"
	case CodeOutOfRange:
		if maxAmount, ok := ctx["max"].(int64); ok {
			return fmt.Sprintf("Please enter a value within 1-%d.\nContact the bank to move more than that!", maxAmount)
		}
		return "Amount out of range."
	case CodeInsufficientFunds:
		if balance, ok := ctx["balance"].(int64); ok {
			return fmt.Sprintf("Insufficient funds available in your bank account.\nCurrent Balance: %d", balance)
		}
		return "Insufficient funds available in your bank account."
	case CodeInvalidKeyword:
		return "Invalid reset keyword received. Try again!"
	case CodeMalformedKeyword:
		return "Invalid input received for reset keyword. Letters only!"
	case CodeUnknownAccount:
		if name, ok := ctx["name"].(string); ok {
			return fmt.Sprintf("No account found for %q.", name)
		}
		return "No such account."
	case CodeDuplicateAccount:
		if name, ok := ctx["name"].(string); ok {
			return fmt.Sprintf("An account named %q already exists.", name)
		}
		return "That account already exists."
	case CodeInvalidName:
		return "Account name cannot be empty."
	case CodeInvalidPattern:
		return "Invalid name filter."
	case CodeFatal:
		return fmt.Sprintf("Unexpected Error: %s.", oopsErr.Error())
	default:
		return "Something went wrong. Try again."
	}
}
