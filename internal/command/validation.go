// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package command

import (
	"regexp"
	"strings"

	"github.com/samber/oops"
)

const (
	// MaxNameLength is the maximum length for option names.
	MaxNameLength = 20
)

// namePattern validates option names: must start with a letter,
// followed by letters, digits, or _-
var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_\-]{0,19}$`)

// keyPattern validates menu keys: a positive number without leading zeros.
var keyPattern = regexp.MustCompile(`^[1-9][0-9]{0,2}$`)

// ValidateCommandName validates an option name.
func ValidateCommandName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return oops.Code(CodeInvalidName).
			With("kind", "command").
			Errorf("command name cannot be empty")
	}

	if len(trimmed) > MaxNameLength {
		return oops.Code(CodeInvalidName).
			With("kind", "command").
			With("length", len(trimmed)).
			With("max", MaxNameLength).
			Errorf("command name exceeds maximum length of %d", MaxNameLength)
	}

	if !namePattern.MatchString(trimmed) {
		return oops.Code(CodeInvalidName).
			With("kind", "command").
			With("name", trimmed).
			Errorf("command name must start with a letter and contain only letters, digits, _ or -")
	}

	return nil
}

// ValidateMenuKey validates a menu key.
func ValidateMenuKey(key string) error {
	if !keyPattern.MatchString(key) {
		return oops.Code(CodeInvalidName).
			With("kind", "key").
			With("key", key).
			Errorf("menu key must be a number from 1 to 999")
	}
	return nil
}
