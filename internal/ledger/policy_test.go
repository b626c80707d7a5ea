// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/holomush/holobank/internal/ledger"
	"github.com/holomush/holobank/pkg/errutil"
)

func TestDefaultPolicy(t *testing.T) {
	p := ledger.DefaultPolicy()

	assert.Equal(t, 6, p.CodeLength)
	assert.Equal(t, int64(999999), p.MaxAmount)
	assert.Equal(t, 1111, p.MinAccountID)
	assert.Equal(t, 9999, p.MaxAccountID)
	assert.Zero(t, p.MaxAttempts)
	assert.Zero(t, p.RetryDelay)
	assert.NoError(t, p.Validate())
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ledger.Policy)
	}{
		{"zero code length", func(p *ledger.Policy) { p.CodeLength = 0 }},
		{"code length too long", func(p *ledger.Policy) { p.CodeLength = 19 }},
		{"zero max amount", func(p *ledger.Policy) { p.MaxAmount = 0 }},
		{"zero min id", func(p *ledger.Policy) { p.MinAccountID = 0 }},
		{"inverted id range", func(p *ledger.Policy) { p.MinAccountID, p.MaxAccountID = 10, 9 }},
		{"negative delay", func(p *ledger.Policy) { p.RetryDelay = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ledger.DefaultPolicy()
			tt.mutate(&p)
			errutil.AssertErrorCode(t, p.Validate(), "LEDGER_INVALID_POLICY")
		})
	}

	t.Run("single id range is valid", func(t *testing.T) {
		p := ledger.DefaultPolicy()
		p.MinAccountID, p.MaxAccountID = 5, 5
		assert.NoError(t, p.Validate())
	})
}
