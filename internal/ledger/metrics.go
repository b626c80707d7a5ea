// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Status values for operation metrics.
const (
	StatusSuccess  = "success"
	StatusDenied   = "denied"
	StatusRejected = "rejected"
	StatusFailed   = "failed"
)

// Metrics contains the ledger's Prometheus metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	rejections *prometheus.CounterVec
	accounts   prometheus.Gauge
}

// NewMetrics creates and registers ledger metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holobank_ledger_operations_total",
				Help: "Total number of ledger operations by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holobank_ledger_prompt_rejections_total",
				Help: "Total number of rejected inputs inside retry loops",
			},
			[]string{"operation", "code"},
		),
		accounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "holobank_ledger_accounts",
			Help: "Number of registered accounts",
		}),
	}

	reg.MustRegister(m.operations)
	reg.MustRegister(m.rejections)
	reg.MustRegister(m.accounts)

	return m
}

// RecordOperation counts a finished operation.
func (m *Metrics) RecordOperation(operation, status string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, status).Inc()
}

// RecordRejection counts an input rejected inside a retry loop.
func (m *Metrics) RecordRejection(operation, code string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(operation, code).Inc()
}

// SetAccounts records the number of registered accounts.
func (m *Metrics) SetAccounts(n int) {
	if m == nil {
		return
	}
	m.accounts.Set(float64(n))
}

// outcomeStatus maps an operation result to a metrics status.
func outcomeStatus(err error) string {
	if err == nil {
		return StatusSuccess
	}
	switch Code(err) {
	case CodeOutOfRange, CodeInsufficientFunds:
		return StatusRejected
	case CodeFatal, "":
		return StatusFailed
	default:
		return StatusDenied
	}
}
