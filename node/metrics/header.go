// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const namespace = "exccore"

// HeaderMetrics counts decoded headers and the outcome of header checks.
// A nil *HeaderMetrics is valid and records nothing.
type HeaderMetrics struct {
	DecodedTotal  prometheus.Counter
	ValidTotal    prometheus.Counter
	RejectedTotal *prometheus.CounterVec
}

// NewHeaderMetrics creates the header counters on reg.
func NewHeaderMetrics(reg prometheus.Registerer, logger zerolog.Logger) *HeaderMetrics {
	return &HeaderMetrics{
		DecodedTotal: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "headers",
			Name:      "decoded_total",
			Help:      "Number of block headers decoded.",
		}), logger),
		ValidTotal: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "headers",
			Name:      "valid_total",
			Help:      "Number of block headers that passed the sanity checks.",
		}), logger),
		RejectedTotal: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "headers",
			Name:      "rejected_total",
			Help:      "Number of block headers that failed the sanity checks, by rule.",
		}, []string{"reason"}), logger),
	}
}

// Decoded records one decoded header.
func (m *HeaderMetrics) Decoded() {
	if m == nil {
		return
	}
	m.DecodedTotal.Inc()
}

// Valid records one header that passed the sanity checks.
func (m *HeaderMetrics) Valid() {
	if m == nil {
		return
	}
	m.ValidTotal.Inc()
}

// Rejected records one header rejected for reason.
func (m *HeaderMetrics) Rejected(reason string) {
	if m == nil {
		return
	}
	m.RejectedTotal.WithLabelValues(reason).Inc()
}
