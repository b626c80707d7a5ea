// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/holobank/pkg/errutil"
)

type ctxKey struct{}

// ctxHandler copies a context value into each record.
type ctxHandler struct{ slog.Handler }

func (h ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		r.AddAttrs(slog.String("session_id", v))
	}
	return h.Handler.Handle(ctx, r)
}

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.Code("INSUFFICIENT_FUNDS").
		With("balance", 500).
		Errorf("withdrawal exceeds balance")

	errutil.LogError(logger, "withdraw failed", err)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "ERROR", logEntry["level"])
	assert.Equal(t, "withdraw failed", logEntry["msg"])
	assert.Equal(t, "INSUFFICIENT_FUNDS", logEntry["code"])
	fields, ok := logEntry["context"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 500, fields["balance"], 0)
}

func TestLogError_WithStandardError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	errutil.LogError(logger, "read failed", errors.New("standard error"))

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "ERROR", logEntry["level"])
	assert.Contains(t, logEntry["error"], "standard error")
	assert.NotContains(t, logEntry, "code")
}

func TestLogErrorContext_PassesContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ctxHandler{slog.NewJSONHandler(&buf, nil)})
	ctx := context.WithValue(context.Background(), ctxKey{}, "01HK153X0006AFVGQT5ZYC0GEK")

	errutil.LogErrorContext(ctx, logger, "session failed", oops.Code("FATAL").Errorf("boom"))

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "01HK153X0006AFVGQT5ZYC0GEK", logEntry["session_id"])
	assert.Equal(t, "FATAL", logEntry["code"])
}
