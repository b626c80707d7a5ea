// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package observability exposes session metrics over a Prometheus endpoint.
package observability

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"
)

// MetricsPath is where the registry is served.
const MetricsPath = "/metrics"

// consoleWriteFailures is package-level so a terminal can count failed
// writes whether or not a server is running.
var consoleWriteFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "holobank_console_write_failures_total",
		Help: "Total number of console write failures by kind",
	},
	[]string{"kind"},
)

// RecordConsoleWriteFailure increments the console write failure counter.
// kind is "prompt" or "report".
func RecordConsoleWriteFailure(kind string) {
	consoleWriteFailures.WithLabelValues(kind).Inc()
}

// ConsoleWriteFailures exposes the console write failure counter for tests.
func ConsoleWriteFailures() *prometheus.CounterVec {
	return consoleWriteFailures
}

// Metrics holds per-session counters.
type Metrics struct {
	SessionsTotal *prometheus.CounterVec
}

// NewMetrics creates session metrics and registers them, together with the
// console write failure counter, on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holobank_sessions_total",
				Help: "Total number of finished sessions by outcome",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.SessionsTotal, consoleWriteFailures)
	return m
}

// RecordSession counts a finished session. A nil *Metrics records nothing.
func (m *Metrics) RecordSession(outcome string) {
	if m == nil {
		return
	}
	m.SessionsTotal.WithLabelValues(outcome).Inc()
}

// Server serves a private Prometheus registry on MetricsPath.
type Server struct {
	addr     string
	registry *prometheus.Registry
	metrics  *Metrics

	mu       sync.Mutex
	listener net.Listener
	http     *http.Server
}

// NewServer creates a server for addr ("host:port", port 0 picks a free one).
// The registry carries Go runtime, process and session metrics.
func NewServer(addr string) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Server{
		addr:     addr,
		registry: registry,
		metrics:  NewMetrics(registry),
	}
}

// Metrics returns the session metrics registered on the server.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Registry lets other packages register their collectors on the served registry.
func (s *Server) Registry() prometheus.Registerer {
	return s.registry
}

// Start listens and serves in the background. The returned channel receives
// a serve failure, if any, and is closed once serving ends.
func (s *Server) Start() (<-chan error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.http != nil {
		return nil, oops.Code("METRICS_RUNNING").With("addr", s.addr).Errorf("metrics server already running")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, oops.Code("METRICS_LISTEN").With("addr", s.addr).Wrap(err)
	}

	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.listener, s.http = ln, srv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- oops.Code("METRICS_SERVE").With("addr", ln.Addr().String()).Wrap(err)
		}
	}()

	slog.Info("metrics server started", "addr", ln.Addr().String())
	return errCh, nil
}

// Stop shuts the server down. Stopping a server that is not running is a no-op.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.http == nil {
		return nil
	}
	if err := s.http.Shutdown(ctx); err != nil {
		return oops.Code("METRICS_SHUTDOWN").With("addr", s.addr).Wrap(err)
	}
	s.http, s.listener = nil, nil

	slog.Info("metrics server stopped")
	return nil
}

// Addr returns the bound address, or "" when not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
