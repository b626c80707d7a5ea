// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/oops"
)

// credentials holds the hashed secrets of an account.
// Plaintext codes and keywords never outlive the call that received them.
type credentials struct {
	codeHash    string
	codeLength  int
	keywordHash string
}

// parseCode interprets raw input as a whole number.
func parseCode(raw string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// formatCode is the canonical text form that gets hashed.
func formatCode(n int64) string {
	return strconv.FormatInt(n, 10)
}

// hasDigits reports whether n is non-negative with exactly length decimal digits.
func hasDigits(n int64, length int) bool {
	return n >= 0 && len(formatCode(n)) == length
}

// validKeyword reports whether s is a non-empty, letters-only keyword.
func validKeyword(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func notANumber(raw string) error {
	return oops.With("input", strings.TrimSpace(raw)).
		Errorf("invalid literal %q: expected a whole number", strings.TrimSpace(raw))
}
