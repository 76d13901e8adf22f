// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gitlab.com/exccoin/exccore/types/wire"
)

// HeaderSource provides the best known header of a chain.
type HeaderSource interface {
	BestHeader() (*wire.BlockHeader, error)
}

type chainMetrics struct {
	*gaugeSet
	source HeaderSource
}

// ChainMetrics reports the best header of source as gauges labelled with
// netName.
func ChainMetrics(source HeaderSource, netName string, reg prometheus.Registerer, logger zerolog.Logger) IMetric {
	logger = logger.With().Str("ctx", "metrics").Str("net", netName).Logger()
	return &chainMetrics{
		gaugeSet: newGaugeSet(reg, prometheus.Labels{"net_name": netName}, logger),
		source:   source,
	}
}

func (s *chainMetrics) Read() {
	header, err := s.source.BestHeader()
	if err != nil {
		s.logger.Error().Err(err).Msg("can't read best header")
		return
	}

	s.updateGauge(prometheus.BuildFQName(namespace, "chain", "height"), float64(header.Height()))
	s.updateGauge(prometheus.BuildFQName(namespace, "chain", "bits"), float64(header.Bits()))
	s.updateGauge(prometheus.BuildFQName(namespace, "chain", "difficulty"), header.Difficulty())
	s.updateGauge(prometheus.BuildFQName(namespace, "chain", "timestamp"), float64(header.Timestamp().Unix()))
	s.updateGauge(prometheus.BuildFQName(namespace, "chain", "pool_size"), float64(header.PoolSize()))
}
