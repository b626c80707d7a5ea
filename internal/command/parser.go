// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package command

import (
	"strings"
)

// ParsedCommand represents a parsed menu input.
type ParsedCommand struct {
	Name string // choice token (first whitespace-delimited token)
	Args string // unparsed argument string (preserves internal whitespace)
	Raw  string // original input
}

// Parse splits raw input into the choice token and arguments.
// Arguments preserve internal whitespace.
func Parse(input string) (*ParsedCommand, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, ErrEmptyInput()
	}

	// Find first whitespace (space or tab)
	idx := strings.IndexAny(trimmed, " \t")
	if idx == -1 {
		return &ParsedCommand{
			Name: trimmed,
			Args: "",
			Raw:  input,
		}, nil
	}

	name := trimmed[:idx]
	// Trim leading whitespace from args but preserve internal whitespace
	args := strings.TrimLeft(trimmed[idx+1:], " \t")

	return &ParsedCommand{
		Name: name,
		Args: args,
		Raw:  input,
	}, nil
}

// SplitAmount splits "name words amount" arguments into a name and a
// trailing amount token. With a single token the whole input is the name.
func SplitAmount(args string) (name, amount string) {
	fields := strings.Fields(args)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
	}
}
