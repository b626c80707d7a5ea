// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/holobank/internal/ledger"
	"github.com/holomush/holobank/pkg/errutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "config file path")
	BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ledger.DefaultPolicy(), cfg.Policy())
	assert.Equal(t, ledger.DefaultArgon2Params(), cfg.Argon2Params())
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Metrics.Addr)
	assert.Equal(t, 3, cfg.Session.MaxFailures)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
ledger:
  code_length: 4
  max_amount: 5000
  retry_delay_ms: 250
  argon2:
    memory_kib: 1024
log:
  format: json
session:
  max_failures: 5
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Ledger.CodeLength)
	assert.Equal(t, int64(5000), cfg.Ledger.MaxAmount)
	assert.Equal(t, 250*time.Millisecond, cfg.Policy().RetryDelay)
	assert.Equal(t, uint32(1024), cfg.Argon2Params().Memory)
	assert.Equal(t, uint8(4), cfg.Argon2Params().Threads, "unset keys keep their defaults")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 1111, cfg.Ledger.MinAccountID)
	assert.Equal(t, 5, cfg.Session.MaxFailures)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "ledger:\n  code_length: 4\nlog:\n  level: info\n")
	flags := newFlags(t, "--code-length=8", "--metrics-addr=127.0.0.1:9100", "--max-attempts=2")

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Ledger.CodeLength)
	assert.Equal(t, "info", cfg.Log.Level, "unchanged flags must not mask file values")
	assert.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr)
	assert.Equal(t, uint64(2), cfg.Policy().MaxAttempts)
}

func TestLoad_UnchangedFlagsKeepDefaults(t *testing.T) {
	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	_, err := Load(path, nil)
	require.Error(t, err)
	errutil.AssertErrorContext(t, err, "path", path)
}

func TestLoad_SchemaViolation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "ledger:\n  colour: blue\n"},
		{"wrong type", "ledger:\n  code_length: six\n"},
		{"below minimum", "session:\n  max_failures: 0\n"},
		{"bad enum", "log:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			errutil.AssertErrorCode(t, err, CodeSchema)
		})
	}
}

func TestLoad_CrossFieldValidation(t *testing.T) {
	path := writeConfig(t, "ledger:\n  min_account_id: 5000\n  max_account_id: 4000\n")
	_, err := Load(path, nil)
	errutil.AssertErrorCode(t, err, "LEDGER_INVALID_POLICY")
}

func TestLoad_InvalidFlagValue(t *testing.T) {
	_, err := Load("", newFlags(t, "--log-level=loud"))
	errutil.AssertErrorCode(t, err, "LOG_INVALID_LEVEL")

	_, err = Load("", newFlags(t, "--max-failures=0"))
	errutil.AssertErrorCode(t, err, CodeInvalid)
}

func TestValidate_Argon2Memory(t *testing.T) {
	cfg := Default()
	cfg.Ledger.Argon2.MemoryKiB = 8
	cfg.Ledger.Argon2.Threads = 4
	errutil.AssertErrorCode(t, cfg.Validate(), "LEDGER_INVALID_HASH_PARAMS")
}

func TestValidate_LogFormat(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "xml"
	errutil.AssertErrorContext(t, cfg.Validate(), "format", "xml")
}

func TestResolvePath(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		got, err := ResolvePath("/etc/holobank.yaml")
		require.NoError(t, err)
		assert.Equal(t, "/etc/holobank.yaml", got)
	})

	t.Run("default file absent", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		got, err := ResolvePath("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("default file present", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		path := filepath.Join(dir, "holobank", "config.yaml")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

		got, err := ResolvePath("")
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("no home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "")
		got, err := ResolvePath("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
