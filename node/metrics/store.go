// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type storeMetrics struct {
	*gaugeSet
	dataDir string
	logDir  string
}

// StoreMetrics reports the on-disk size of the header database and of the
// log directory.  An empty logDir is skipped.
func StoreMetrics(dataDir, logDir string, reg prometheus.Registerer, logger zerolog.Logger) IMetric {
	return &storeMetrics{
		gaugeSet: newGaugeSet(reg, nil, logger),
		dataDir:  dataDir,
		logDir:   logDir,
	}
}

func (s *storeMetrics) Read() {
	dSize, err := dirSize(s.dataDir)
	if err != nil {
		s.logger.Error().Err(err).Msg("can't calculate data dir size")
		return
	}
	s.updateGauge(prometheus.BuildFQName(namespace, "store", "data_size"), float64(dSize))

	if s.logDir == "" {
		return
	}
	logSize, err := dirSize(s.logDir)
	if err != nil && !os.IsNotExist(err) {
		s.logger.Error().Err(err).Msg("can't calculate log dir size")
	}
	s.updateGauge(prometheus.BuildFQName(namespace, "store", "log_size"), float64(logSize))
}

func dirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return err
	})
	return size, err
}
