// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// IMetric metric reader
type IMetric interface {
	Read()
}

// Manager refreshes a set of metric readers that share one registry.
type Manager struct {
	mu       sync.Mutex
	metrics  []IMetric
	registry *prometheus.Registry
}

// NewManager creates a manager with its own registry.
func NewManager() *Manager {
	return &Manager{
		registry: prometheus.NewRegistry(),
	}
}

// Registry returns the registry every metric of the manager is registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Add appends metric readers to the manager.
func (m *Manager) Add(metrics ...IMetric) {
	m.mu.Lock()
	m.metrics = append(m.metrics, metrics...)
	m.mu.Unlock()
}

// Collect calls Read on every metric once.
func (m *Manager) Collect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.metrics {
		v.Read()
	}
}

// WriteTextfile refreshes every metric and writes the registry to path in
// the Prometheus text format, for pickup by a node exporter textfile
// collector.
func (m *Manager) WriteTextfile(path string) error {
	m.Collect()
	return prometheus.WriteToTextfile(path, m.registry)
}

// gaugeSet lazily creates and registers named gauges.
type gaugeSet struct {
	sync.Mutex
	metricsByName map[string]prometheus.Gauge
	registerer    prometheus.Registerer
	labels        prometheus.Labels
	logger        zerolog.Logger
}

func newGaugeSet(reg prometheus.Registerer, labels prometheus.Labels, logger zerolog.Logger) *gaugeSet {
	return &gaugeSet{
		metricsByName: make(map[string]prometheus.Gauge),
		registerer:    reg,
		labels:        labels,
		logger:        logger,
	}
}

func (s *gaugeSet) updateGauge(name string, value float64) {
	s.Lock()
	defer s.Unlock()
	m, ok := s.metricsByName[name]
	if !ok {
		m = prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        name,
			ConstLabels: s.labels,
		})
		if err := s.registerer.Register(m); err != nil {
			s.logger.Error().Err(err).Str("metric", name).Msg("can't register metric")
		}
		s.metricsByName[name] = m
	}
	m.Set(value)
}

// register registers c on reg, reusing an identical collector that is
// already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T, logger zerolog.Logger) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	logger.Error().Err(err).Msg("can't register metric")
	return c
}
