// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2017 The Decred developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/exccoin/exccore/corelog"
	"gitlab.com/exccoin/exccore/database/headerdb"
	"gitlab.com/exccoin/exccore/node/chaindata"
)

const (
	logUnitCLI  = "CLI"
	logUnitCHDA = "CHDA"
	logUnitHDB  = "HDB"
	logUnitHDR  = "HDR"
	logUnitMTRC = "MTRC"
)

// Loggers per subsystem.  When adding new subsystems, add the subsystem
// logger to unitLogs and wire it in setLoggers.
var (
	logMu sync.RWMutex

	unitLogs = map[string]zerolog.Logger{
		logUnitCLI:  newUnitLogger(logUnitCLI, defaultLogLevel, corelog.Config{}.Default()),
		logUnitCHDA: corelog.Disabled,
		logUnitHDB:  corelog.Disabled,
		logUnitHDR:  corelog.Disabled,
		logUnitMTRC: corelog.Disabled,
	}
)

func newUnitLogger(unit, logLevel string, logConfig corelog.Config) zerolog.Logger {
	level, err := corelog.ParseLevel(logLevel)
	if err != nil {
		level = corelog.DefaultLevel
	}
	return corelog.New(unit, level, logConfig)
}

// Initialize package-global logger variables.
func setLoggers() {
	logMu.RLock()
	defer logMu.RUnlock()
	chaindata.UseLogger(unitLogs[logUnitCHDA])
	headerdb.UseLogger(unitLogs[logUnitHDB])
}

// setLogLevel sets the logging level for provided subsystem.  Invalid
// subsystems are ignored.
func setLogLevel(subsystemID, logLevel string, logConfig corelog.Config) {
	logMu.Lock()
	defer logMu.Unlock()
	if _, ok := unitLogs[subsystemID]; !ok {
		return
	}
	unitLogs[subsystemID] = newUnitLogger(subsystemID, logLevel, logConfig)
}

// setLogLevels sets the log level for all subsystem loggers to the passed
// level.
func setLogLevels(logLevel string, logConfig corelog.Config) {
	for _, subsystemID := range supportedSubsystems() {
		setLogLevel(subsystemID, logLevel, logConfig)
	}
}

func hasSubsystem(unit string) bool {
	logMu.RLock()
	defer logMu.RUnlock()
	_, ok := unitLogs[unit]
	return ok
}

func unitLogger(unit string) zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return unitLogs[unit]
}

// Log returns the logger of the command line tool.
func Log() zerolog.Logger { return unitLogger(logUnitCLI) }

// HeaderLog returns the logger for header decoding and encoding.
func HeaderLog() zerolog.Logger { return unitLogger(logUnitHDR) }

// MetricsLog returns the logger of the metrics readers.
func MetricsLog() zerolog.Logger { return unitLogger(logUnitMTRC) }
