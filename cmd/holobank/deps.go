// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/holomush/holobank/internal/observability"
)

// BankDeps holds injectable dependencies for the interactive command.
// Nil fields are replaced with defaults.
type BankDeps struct {
	// ObservabilityServerFactory creates the metrics server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string) ObservabilityServer
}

// ObservabilityServer interface wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
	Registry() prometheus.Registerer
}
