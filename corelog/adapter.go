// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package corelog

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const appName = "exccore"

var (
	Disabled zerolog.Logger

	DefaultLevel   = zerolog.InfoLevel
	DefaultLogFile = appName + ".log"
)

func init() {
	Disabled = zerolog.Nop()
}

// Config for logging
type Config struct {
	// Disable console logging
	DisableConsoleLog bool `yaml:"disable_console_log" toml:"disable_console_log" long:"nolog" description:"Disable console logging"`
	// LogsAsJson makes the log framework log JSON
	LogsAsJson bool `yaml:"logs_as_json" toml:"logs_as_json" long:"logjson" description:"Write console logs as JSON"`
	// FileLoggingEnabled makes the framework log to a file
	// the fields below can be skipped if this value is false!
	FileLoggingEnabled bool `yaml:"file_logging_enabled" toml:"file_logging_enabled" long:"logfile" description:"Also write logs to a rolling file"`
	// Directory to log to to when filelogging is enabled
	Directory string `yaml:"directory" toml:"directory" long:"logdir" description:"Directory to log output"`
	// Filename is the name of the logfile which will be placed inside the directory
	Filename string `yaml:"filename" toml:"filename" long:"logfilename" description:"Name of the log file"`
	// MaxSize the max size in MB of the logfile before it's rolled
	MaxSize int `yaml:"max_size" toml:"max_size" long:"logmaxsize" description:"Max size in MB of the log file before it is rolled"`
	// MaxBackups the max number of rolled files to keep
	MaxBackups int `yaml:"max_backups" toml:"max_backups" long:"logmaxbackups" description:"Max number of rolled log files to keep"`
	// MaxAge the max age in days to keep a logfile
	MaxAge int `yaml:"max_age" toml:"max_age" long:"logmaxage" description:"Max age in days to keep a log file"`

	// Output replaces the console writer when set.
	Output io.Writer `yaml:"-" toml:"-" no-flag:"true"`
}

func (Config) Default() Config {
	return Config{
		DisableConsoleLog:  false,
		LogsAsJson:         false,
		FileLoggingEnabled: false,
		Directory:          "logs",
		Filename:           DefaultLogFile,
		MaxSize:            150,
		MaxBackups:         3,
		MaxAge:             28,
	}
}

// ParseLevel converts a level name such as "debug" to a zerolog level.  An
// empty name gives DefaultLevel.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return DefaultLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q", name)
	}
	return lvl, nil
}

// New creates the logger of one unit.  The unit is printed next to the
// level on the console and added as a field in JSON output.
func New(unit string, logLevel zerolog.Level, config Config) zerolog.Logger {
	var writers []io.Writer
	console := config.Output
	if console == nil {
		console = os.Stderr
	}
	if !config.DisableConsoleLog && !config.LogsAsJson {
		out := zerolog.ConsoleWriter{Out: console, NoColor: config.Output != nil}
		out.TimeFormat = time.RFC3339
		out.FormatLevel = func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s| %s |", i, unit))
		}
		out.FormatMessage = func(i interface{}) string {
			return fmt.Sprintf("%-6s  ", i)
		}
		writers = append(writers, out)
	}
	if !config.DisableConsoleLog && config.LogsAsJson {
		writers = append(writers, console)
	}
	if config.FileLoggingEnabled {
		if w := newRollingFile(config); w != nil {
			writers = append(writers, w)
		}
	}
	if len(writers) == 0 {
		return Disabled
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(logLevel).
		With().
		Str("app", appName).
		Str("unit", unit).
		Timestamp().
		Logger()

	logger.Trace().
		Bool("fileLogging", config.FileLoggingEnabled).
		Bool("jsonLogOutput", config.LogsAsJson).
		Str("logDirectory", config.Directory).
		Str("fileName", config.Filename).
		Int("maxSizeMB", config.MaxSize).
		Int("maxBackups", config.MaxBackups).
		Int("maxAgeInDays", config.MaxAge).
		Msg("logging configured")

	return logger
}

func newRollingFile(config Config) io.Writer {
	if err := os.MkdirAll(config.Directory, 0744); err != nil {
		log.Error().Err(err).Str("path", config.Directory).Msg("can't create log directory")
		return nil
	}

	return &lumberjack.Logger{
		Filename:   path.Join(config.Directory, config.Filename),
		MaxBackups: config.MaxBackups, // files
		MaxSize:    config.MaxSize,    // megabytes
		MaxAge:     config.MaxAge,     // days
	}
}
