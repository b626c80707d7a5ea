// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import (
	"context"
	"fmt"
)

// AuthResult is the outcome of an authentication challenge:
// either authenticated, or denied with a reason.
// The zero value is a denial.
type AuthResult struct {
	ok     bool
	reason error
}

func authenticated() AuthResult {
	return AuthResult{ok: true}
}

func deniedBy(reason error) AuthResult {
	if reason == nil {
		reason = ErrFatal(OpAuthenticate, nil)
	}
	return AuthResult{reason: reason}
}

// Authenticated reports whether the challenge succeeded.
func (r AuthResult) Authenticated() bool { return r.ok }

// Reason returns why the challenge was denied, or nil when it succeeded.
func (r AuthResult) Reason() error {
	if r.ok {
		return nil
	}
	if r.reason == nil {
		return ErrFatal(OpAuthenticate, nil)
	}
	return r.reason
}

// Authenticate challenges the user for the auth code until the code matches,
// the user cancels, or a fatal condition occurs. It never mutates the account.
func (a *Account) Authenticate(ctx context.Context) AuthResult {
	prompt := fmt.Sprintf("(Press %d to cancel)\nEnter the auth code: ", CancelCode)
	err := a.loop(OpAuthenticate).run(ctx, func(ctx context.Context) error {
		raw, err := a.console.RequestValue(ctx, prompt)
		if err != nil {
			return ErrFatal(OpAuthenticate, err)
		}
		return a.checkCode(raw)
	})

	a.metrics.RecordOperation(OpAuthenticate, outcomeStatus(err))
	if err != nil {
		a.deny(ctx, err)
		a.logger.InfoContext(ctx, "authentication denied", "code", Code(err))
		return deniedBy(err)
	}
	return authenticated()
}

// checkCode classifies one candidate code.
func (a *Account) checkCode(raw string) error {
	n, ok := parseCode(raw)
	if !ok {
		return ErrFatal(OpAuthenticate, notANumber(raw))
	}
	if n == CancelCode {
		return ErrCancelled(OpAuthenticate)
	}
	// The stored code always has codeLength digits, so a length mismatch
	// can never match and skips the hash.
	if !hasDigits(n, a.creds.codeLength) {
		return ErrMalformedCode(a.creds.codeLength)
	}

	match, err := a.hasher.Verify(formatCode(n), a.creds.codeHash)
	if err != nil {
		return ErrFatal(OpAuthenticate, err)
	}
	if !match {
		return ErrInvalidCode()
	}
	return nil
}
