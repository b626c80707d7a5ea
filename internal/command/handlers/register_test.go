// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/holobank/internal/command"
)

func TestRegisterAll_RegistersMenu(t *testing.T) {
	reg := command.NewRegistry()

	RegisterAll(reg)

	expected := []struct{ key, name string }{
		{"1", "create"},
		{"2", "deposit"},
		{"3", "withdraw"},
		{"4", "balance"},
		{"5", "exit"},
		{"6", "list"},
		{"7", "reset"},
	}

	all := reg.All()
	require.Len(t, all, len(expected))
	for i, want := range expected {
		assert.Equal(t, want.key, all[i].Key)
		assert.Equal(t, want.name, all[i].Name)
		assert.NotEmpty(t, all[i].Label, "option %s should have a label", want.name)
		assert.NotEmpty(t, all[i].Usage, "option %s should have usage", want.name)
		assert.NotEmpty(t, all[i].Help, "option %s should have help", want.name)
		require.NotNil(t, all[i].Handler, "option %s should have a handler", want.name)

		byName, ok := reg.Get(want.name)
		require.True(t, ok)
		assert.Equal(t, want.key, byName.Key)
	}
}

func TestRegisterAll_Menu(t *testing.T) {
	reg := command.NewRegistry()
	RegisterAll(reg)

	assert.Equal(t, "1. Create a new account\n"+
		"2. Deposit funds\n"+
		"3. Withdraw funds\n"+
		"4. Check balance\n"+
		"5. Exit\n"+
		"6. List account IDs\n"+
		"7. Reset auth code\n"+
		"Enter your choice: ", reg.Menu())
}
