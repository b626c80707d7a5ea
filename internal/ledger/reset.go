// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import (
	"context"
	"fmt"
)

// ResetCredentials replaces the auth code after the user proves knowledge of
// the reset keyword and confirms. The code is replaced only once both phases
// pass; a failure in either leaves it untouched.
func (a *Account) ResetCredentials(ctx context.Context) error {
	if err := a.verifyKeyword(ctx); err != nil {
		a.deny(ctx, err)
		return a.finish(ctx, OpReset, err)
	}

	confirm, err := a.console.RequestValue(ctx, fmt.Sprintf("Keyword accepted. Press %d to continue: ", ContinueConfirm))
	if err != nil {
		err = ErrFatal(OpReset, err)
		a.deny(ctx, err)
		return a.finish(ctx, OpReset, err)
	}
	if n, ok := parseCode(confirm); !ok || n != ContinueConfirm {
		a.console.Report(ctx, "Auth code unchanged.")
		return a.finish(ctx, OpReset, ErrCancelled(OpReset))
	}

	code, err := a.solicitNewCode(ctx)
	if err != nil {
		a.deny(ctx, err)
		return a.finish(ctx, OpReset, err)
	}

	hash, err := a.hasher.Hash(code)
	if err != nil {
		err = ErrFatal(OpReset, err)
		a.deny(ctx, err)
		return a.finish(ctx, OpReset, err)
	}
	a.creds.codeHash = hash

	a.console.Report(ctx, fmt.Sprintf("Auth code successfully changed!\nYour new auth code is %s.", code))
	return a.finish(ctx, OpReset, nil)
}

// verifyKeyword is phase one: loop until the keyword matches or the user cancels.
func (a *Account) verifyKeyword(ctx context.Context) error {
	prompt := fmt.Sprintf("(Enter %s to cancel)\nEnter the reset keyword: ", CancelKeyword)
	return a.loop(OpReset).run(ctx, func(ctx context.Context) error {
		raw, err := a.console.RequestValue(ctx, prompt)
		if err != nil {
			return ErrFatal(OpReset, err)
		}
		return a.checkKeyword(raw)
	})
}

// checkKeyword classifies one keyword candidate. A keyword that happens to be
// the cancel sentinel still matches.
func (a *Account) checkKeyword(candidate string) error {
	if matchKeyword(candidate, a.creds.keywordHash) {
		return nil
	}
	if candidate == CancelKeyword {
		return ErrCancelled(OpReset)
	}
	return ErrInvalidKeyword()
}

// solicitNewCode is phase two: loop until a well-formed code is entered.
func (a *Account) solicitNewCode(ctx context.Context) (string, error) {
	var code string
	err := a.loop(OpReset).run(ctx, func(ctx context.Context) error {
		raw, err := a.console.RequestValue(ctx, "Enter a new auth code: ")
		if err != nil {
			return ErrFatal(OpReset, err)
		}
		n, ok := parseCode(raw)
		if !ok || !hasDigits(n, a.creds.codeLength) {
			return ErrMalformedCode(a.creds.codeLength)
		}
		code = formatCode(n)
		return nil
	})
	return code, err
}
