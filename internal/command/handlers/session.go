// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/holomush/holobank/internal/command"
)

// ExitHandler ends the session.
func ExitHandler(ctx context.Context, exec *command.CommandExecution) error {
	exec.Console.Report(ctx, "Program terminated!")
	return command.ErrSessionExit()
}

// ListHandler shows issued account ids. With a glob pattern it lists the
// matching accounts with their holder names instead.
func ListHandler(ctx context.Context, exec *command.CommandExecution) error {
	registry := exec.Services.Ledger()

	pattern := strings.TrimSpace(exec.Args)
	if pattern == "" {
		ids := registry.IssuedIDs()
		if len(ids) == 0 {
			exec.Console.Report(ctx, "No accounts have been created yet.")
			return nil
		}
		lines := make([]string, len(ids))
		for i, id := range ids {
			lines[i] = strconv.Itoa(id)
		}
		exec.Console.Report(ctx, strings.Join(lines, "\n"))
		return nil
	}

	matches, err := registry.Find(pattern)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		exec.Console.Report(ctx, fmt.Sprintf("No accounts match %q.", pattern))
		return nil
	}
	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = fmt.Sprintf("%d  %s", m.ID, m.Name)
	}
	exec.Console.Report(ctx, strings.Join(lines, "\n"))
	return nil
}
