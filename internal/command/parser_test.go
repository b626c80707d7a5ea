// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/holobank/pkg/errutil"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCmd  string
		wantArgs string
		wantErr  bool
	}{
		{
			name:     "menu number",
			input:    "2",
			wantCmd:  "2",
			wantArgs: "",
		},
		{
			name:     "number with args",
			input:    "2 Alice 500",
			wantCmd:  "2",
			wantArgs: "Alice 500",
		},
		{
			name:     "name with args",
			input:    "withdraw Alice 10",
			wantCmd:  "withdraw",
			wantArgs: "Alice 10",
		},
		{
			name:     "leading and trailing whitespace",
			input:    "   4   ",
			wantCmd:  "4",
			wantArgs: "",
		},
		{
			name:     "preserves internal arg whitespace",
			input:    "1 Mary   Ann",
			wantCmd:  "1",
			wantArgs: "Mary   Ann",
		},
		{
			name:     "tab separator",
			input:    "6\tAl*",
			wantCmd:  "6",
			wantArgs: "Al*",
		},
		{
			name:     "unicode holder name",
			input:    "1 Jürgen Müller",
			wantCmd:  "1",
			wantArgs: "Jürgen Müller",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   " \t ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			if tt.wantErr {
				errutil.AssertErrorCode(t, err, CodeEmptyInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCmd, parsed.Name)
			assert.Equal(t, tt.wantArgs, parsed.Args)
			assert.Equal(t, tt.input, parsed.Raw)
		})
	}
}

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		args       string
		wantName   string
		wantAmount string
	}{
		{args: "", wantName: "", wantAmount: ""},
		{args: "Alice", wantName: "Alice", wantAmount: ""},
		{args: "Alice 500", wantName: "Alice", wantAmount: "500"},
		{args: "Mary  Ann 500", wantName: "Mary Ann", wantAmount: "500"},
		{args: " Alice\tabc ", wantName: "Alice", wantAmount: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			name, amount := SplitAmount(tt.args)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantAmount, amount)
		})
	}
}
