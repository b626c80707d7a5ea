// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/holobank/internal/command"
	"github.com/holomush/holobank/internal/command/handlers/testutil"
	"github.com/holomush/holobank/internal/ledger"
	"github.com/holomush/holobank/internal/ledger/ledgertest"
	"github.com/holomush/holobank/pkg/errutil"
)

func TestExitHandler(t *testing.T) {
	b := testutil.NewExecutionBuilder(t)
	exec := b.Build()

	err := ExitHandler(context.Background(), exec)

	assert.True(t, command.IsExit(err))
	assert.Equal(t, []string{"Program terminated!"}, b.Console().Messages)
}

func TestListHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("no accounts", func(t *testing.T) {
		b := testutil.NewExecutionBuilder(t)
		require.NoError(t, ListHandler(ctx, b.Build()))
		assert.Equal(t, []string{"No accounts have been created yet."}, b.Console().Messages)
	})

	b := testutil.NewExecutionBuilder(t)
	ids := ledgertest.NewFixedIDs(20, 10, 30)
	reg, err := ledger.NewRegistry(b.Console(), ledger.WithHasher(ledgertest.CheapHasher()), ledger.WithIDSource(ids))
	require.NoError(t, err)
	for _, name := range []string{"Alice", "Albert", "Bob"} {
		b.Console().Push("123456", "secret")
		_, _, err := reg.Create(ctx, name)
		require.NoError(t, err)
	}
	base := ledger.DefaultMinAccountID

	tests := []struct {
		name    string
		args    string
		want    string
		wantErr string
	}{
		{
			name: "issued ids in order",
			want: fmt.Sprintf("%d\n%d\n%d", base+10, base+20, base+30),
		},
		{
			name: "filtered by holder",
			args: "Al*",
			want: fmt.Sprintf("%d  Albert\n%d  Alice", base+10, base+20),
		},
		{
			name: "no matches",
			args: "Zoe",
			want: `No accounts match "Zoe".`,
		},
		{
			name:    "bad pattern",
			args:    "[",
			wantErr: ledger.CodeInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.Console().Reset()
			exec := b.WithRegistry(reg).WithArgs(tt.args).Build()

			err := ListHandler(ctx, exec)

			if tt.wantErr != "" {
				errutil.AssertErrorCode(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, b.Console().Messages)
		})
	}
}
