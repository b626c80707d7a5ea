// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads HoloBank settings from defaults, an optional YAML
// file and command line flags, in that order of precedence.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/holobank/internal/ledger"
	"github.com/holomush/holobank/internal/logging"
	"github.com/holomush/holobank/internal/xdg"
)

// Config is the effective HoloBank configuration.
type Config struct {
	Ledger  LedgerConfig  `json:"ledger,omitempty" yaml:"ledger" koanf:"ledger" jsonschema:"description=Account and credential limits"`
	Log     LogConfig     `json:"log,omitempty" yaml:"log" koanf:"log" jsonschema:"description=Diagnostic logging on stderr"`
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics" koanf:"metrics" jsonschema:"description=Prometheus endpoint"`
	Session SessionConfig `json:"session,omitempty" yaml:"session" koanf:"session" jsonschema:"description=Interactive session behavior"`
}

// LedgerConfig mirrors ledger.Policy plus the hashing cost.
type LedgerConfig struct {
	CodeLength   int          `json:"code_length,omitempty" yaml:"code_length" koanf:"code_length" jsonschema:"minimum=1,maximum=18,default=6"`
	MaxAmount    int64        `json:"max_amount,omitempty" yaml:"max_amount" koanf:"max_amount" jsonschema:"minimum=1,default=999999"`
	MinAccountID int          `json:"min_account_id,omitempty" yaml:"min_account_id" koanf:"min_account_id" jsonschema:"minimum=1,default=1111"`
	MaxAccountID int          `json:"max_account_id,omitempty" yaml:"max_account_id" koanf:"max_account_id" jsonschema:"minimum=1,default=9999"`
	MaxAttempts  uint64       `json:"max_attempts,omitempty" yaml:"max_attempts" koanf:"max_attempts" jsonschema:"minimum=0,default=0,description=Attempts per prompt loop (0 = until resolved)"`
	RetryDelayMS int          `json:"retry_delay_ms,omitempty" yaml:"retry_delay_ms" koanf:"retry_delay_ms" jsonschema:"minimum=0,default=0"`
	Argon2       Argon2Config `json:"argon2,omitempty" yaml:"argon2" koanf:"argon2"`
}

// Argon2Config tunes auth code hashing.
type Argon2Config struct {
	Time      uint32 `json:"time,omitempty" yaml:"time" koanf:"time" jsonschema:"minimum=1,default=1"`
	MemoryKiB uint32 `json:"memory_kib,omitempty" yaml:"memory_kib" koanf:"memory_kib" jsonschema:"minimum=8,default=65536"`
	Threads   uint8  `json:"threads,omitempty" yaml:"threads" koanf:"threads" jsonschema:"minimum=1,maximum=255,default=4"`
}

// LogConfig selects the log encoding and threshold.
type LogConfig struct {
	Format string `json:"format,omitempty" yaml:"format" koanf:"format" jsonschema:"enum=json,enum=text,default=text"`
	Level  string `json:"level,omitempty" yaml:"level" koanf:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=warn"`
}

// MetricsConfig controls the observability server.
type MetricsConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr" koanf:"addr" jsonschema:"description=host:port serving /metrics (empty = disabled)"`
}

// SessionConfig controls the menu loop.
type SessionConfig struct {
	MaxFailures int `json:"max_failures,omitempty" yaml:"max_failures" koanf:"max_failures" jsonschema:"minimum=1,default=3"`
}

// Default returns the built-in configuration.
func Default() Config {
	policy := ledger.DefaultPolicy()
	params := ledger.DefaultArgon2Params()
	return Config{
		Ledger: LedgerConfig{
			CodeLength:   policy.CodeLength,
			MaxAmount:    policy.MaxAmount,
			MinAccountID: policy.MinAccountID,
			MaxAccountID: policy.MaxAccountID,
			Argon2: Argon2Config{
				Time:      params.Time,
				MemoryKiB: params.Memory,
				Threads:   params.Threads,
			},
		},
		Log: LogConfig{
			Format: "text",
			Level:  "warn",
		},
		Session: SessionConfig{
			MaxFailures: 3,
		},
	}
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"code-length":    "ledger.code_length",
	"max-amount":     "ledger.max_amount",
	"min-account-id": "ledger.min_account_id",
	"max-account-id": "ledger.max_account_id",
	"max-attempts":   "ledger.max_attempts",
	"retry-delay-ms": "ledger.retry_delay_ms",
	"log-format":     "log.format",
	"log-level":      "log.level",
	"metrics-addr":   "metrics.addr",
	"max-failures":   "session.max_failures",
}

// BindFlags registers the overridable settings on fs with their defaults.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int("code-length", d.Ledger.CodeLength, "digits in an auth code")
	fs.Int64("max-amount", d.Ledger.MaxAmount, "largest single deposit or withdrawal")
	fs.Int("min-account-id", d.Ledger.MinAccountID, "lowest account id issued")
	fs.Int("max-account-id", d.Ledger.MaxAccountID, "highest account id issued")
	fs.Uint64("max-attempts", d.Ledger.MaxAttempts, "attempts per prompt (0 = until resolved)")
	fs.Int("retry-delay-ms", d.Ledger.RetryDelayMS, "pause between prompt attempts in milliseconds")
	fs.String("log-format", d.Log.Format, "log format (json or text)")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("metrics-addr", d.Metrics.Addr, "metrics HTTP address (empty = disabled)")
	fs.Int("max-failures", d.Session.MaxFailures, "consecutive failed choices before the session ends")
}

// ResolvePath returns the config file to load. An explicit path is returned
// as is; otherwise the XDG default is used when it exists.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	path, err := xdg.ConfigFile()
	if err != nil {
		// No home directory means no default file.
		return "", nil //nolint:nilerr // absence of a default location is not an error
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", oops.Code(CodeLoad).With("path", path).Wrap(err)
	}
	return path, nil
}

// Load builds the effective configuration. path may be empty to skip the
// file; flags may be nil to skip command line overrides.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		provider := file.Provider(path)
		data, err := provider.ReadBytes()
		if err != nil {
			return nil, oops.Code(CodeLoad).With("path", path).Wrapf(err, "read config file")
		}
		if strings.TrimSpace(string(data)) != "" {
			if err := ValidateSchema(data); err != nil {
				return nil, oops.Code(CodeInvalid).With("path", path).Wrap(err)
			}
			if err := k.Load(provider, yaml.Parser()); err != nil {
				return nil, oops.Code(CodeLoad).With("path", path).Wrapf(err, "parse config file")
			}
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code(CodeLoad).Wrapf(err, "apply flags")
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code(CodeInvalid).Wrapf(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks constraints that span fields.
func (c Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return oops.Code(CodeInvalid).Wrap(err)
	}
	if _, err := ledger.NewArgon2idHasherWithParams(c.Argon2Params()); err != nil {
		return oops.Code(CodeInvalid).Wrap(err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return oops.Code(CodeInvalid).Wrap(err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code(CodeInvalid).
			With("format", c.Log.Format).
			Errorf("log format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if c.Session.MaxFailures < 1 {
		return oops.Code(CodeInvalid).
			With("max_failures", c.Session.MaxFailures).
			Errorf("session max failures must be at least 1")
	}
	return nil
}

// Policy returns the ledger limits described by c.
func (c Config) Policy() ledger.Policy {
	return ledger.Policy{
		CodeLength:   c.Ledger.CodeLength,
		MaxAmount:    c.Ledger.MaxAmount,
		MinAccountID: c.Ledger.MinAccountID,
		MaxAccountID: c.Ledger.MaxAccountID,
		MaxAttempts:  c.Ledger.MaxAttempts,
		RetryDelay:   time.Duration(c.Ledger.RetryDelayMS) * time.Millisecond,
	}
}

// Argon2Params returns the hashing cost described by c.
func (c Config) Argon2Params() ledger.Argon2Params {
	params := ledger.DefaultArgon2Params()
	params.Time = c.Ledger.Argon2.Time
	params.Memory = c.Ledger.Argon2.MemoryKiB
	params.Threads = c.Ledger.Argon2.Threads
	return params
}

// Error codes returned by the loader.
const (
	CodeLoad    = "CONFIG_LOAD"
	CodeInvalid = "CONFIG_INVALID"
)
