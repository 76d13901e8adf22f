// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gitlab.com/exccoin/exccore/corelog"
	"gitlab.com/exccoin/exccore/types/chaincfg"
	"gitlab.com/exccoin/exccore/types/wire"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFilename = "exccore.yaml"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultNet            = "livenet"
	defaultWorkers        = 4
)

var defaultHomeDir = appDataDir("exccore")

// appDataDir returns the per-user directory of the application, falling back
// to the working directory when the home directory is unknown.
func appDataDir(appName string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}

// Config holds the settings shared by every exccore command.
type Config struct {
	ConfigFile  string         `yaml:"-" toml:"-" short:"C" long:"configfile" description:"Path to configuration file (.yaml or .toml)"`
	Net         string         `yaml:"net" toml:"net" long:"net" env:"EXCCORE_NET" description:"Network name or alias {livenet, mainnet, testnet, exccdlivenet, exccdtestnet}"`
	Encoding    string         `yaml:"encoding" toml:"encoding" long:"encoding" env:"EXCCORE_ENCODING" description:"Header encoding {stake, legacy}"`
	DataDir     string         `yaml:"data_dir" toml:"data_dir" short:"b" long:"datadir" env:"EXCCORE_DATA_DIR" description:"Directory to store the header index"`
	DebugLevel  string         `yaml:"debug_level" toml:"debug_level" short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	MetricsFile string         `yaml:"metrics_file" toml:"metrics_file" long:"metricsfile" description:"Write Prometheus metrics to this file after each command"`
	Workers     int            `yaml:"workers" toml:"workers" long:"workers" description:"Number of concurrent header checks"`
	LogConfig   corelog.Config `yaml:"log" toml:"log" group:"Logging Options"`

	// Params and HeaderEncoding are resolved from Net and Encoding.
	Params         *chaincfg.Params     `yaml:"-" toml:"-" no-flag:"true"`
	HeaderEncoding wire.HeaderEncoding `yaml:"-" toml:"-" no-flag:"true"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		ConfigFile: filepath.Join(defaultHomeDir, defaultConfigFilename),
		Net:        defaultNet,
		Encoding:   wire.StakeEncoding.String(),
		DataDir:    filepath.Join(defaultHomeDir, defaultDataDirname),
		DebugLevel: defaultLogLevel,
		Workers:    defaultWorkers,
		LogConfig:  corelog.Config{}.Default(),
	}
}

// HeaderDBPath returns the directory of the header index of the active
// network.
func (cfg *Config) HeaderDBPath() string {
	return filepath.Join(cfg.DataDir, cfg.Params.Name, "headers")
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return path
	}
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(defaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	return filepath.Clean(os.ExpandEnv(path))
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error":
		return true
	}
	return false
}

// supportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func supportedSubsystems() []string {
	logMu.RLock()
	defer logMu.RUnlock()

	subsystems := make([]string, 0, len(unitLogs))
	for subsysID := range unitLogs {
		subsystems = append(subsystems, subsysID)
	}

	// Sort the subsystems for stable display.
	sort.Strings(subsystems)
	return subsystems
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string, logConfig corelog.Config) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if !validLogLevel(debugLevel) {
			return fmt.Errorf("the specified debug level [%v] is invalid", debugLevel)
		}

		setLogLevels(debugLevel, logConfig)
		setLoggers()
		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return fmt.Errorf("the specified debug level contains an invalid "+
				"subsystem/level pair [%v]", logLevelPair)
		}

		fields := strings.SplitN(logLevelPair, "=", 2)
		subsysID, logLevel := fields[0], fields[1]

		if !hasSubsystem(subsysID) {
			return fmt.Errorf("the specified subsystem [%v] is invalid -- "+
				"supported subsytems %v", subsysID, supportedSubsystems())
		}

		if !validLogLevel(logLevel) {
			return fmt.Errorf("the specified debug level [%v] is invalid", logLevel)
		}

		setLogLevel(subsysID, logLevel, logConfig)
	}

	setLoggers()
	return nil
}

// fileExists reports whether the named file or directory exists.
func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// newConfigParser returns a new command line flags parser.
func newConfigParser(cfg *Config, options flags.Options) *flags.Parser {
	return flags.NewParser(cfg, options)
}

// decodeFile loads a YAML or TOML configuration file into cfg, chosen by
// the file extension.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return errors.Errorf("invalid config file extension %q, must be .yaml or .toml",
			filepath.Ext(path))
	}
}

// LoadConfig initializes and parses the config using a config file and the
// given command line options.
//
// The configuration proceeds as follows:
// 	1) Start with a default config with sane settings
// 	2) Pre-parse the command line to check for an alternative config file
// 	3) Load configuration file overwriting defaults with any specified options
// 	4) Parse CLI options and overwrite/add any specified options
//
// A missing file at the default location is not an error.  Command line
// options always take precedence.
func LoadConfig(args []string) (*Config, []string, error) {
	const funcName = "LoadConfig"
	cfg := Default()

	// Pre-parse the command line options to see if an alternative config
	// file was specified.  Errors are reported by the final parse below.
	preCfg := cfg
	preParser := newConfigParser(&preCfg, flags.IgnoreUnknown)
	_, _ = preParser.ParseArgs(args)

	configFile := cleanAndExpandPath(preCfg.ConfigFile)
	if fileExists(configFile) {
		if err := decodeFile(configFile, &cfg); err != nil {
			return nil, nil, errors.Wrapf(err, "%s: unable to parse config file %s", funcName, configFile)
		}
	} else if preCfg.ConfigFile != cfg.ConfigFile {
		return nil, nil, errors.Errorf("%s: config file %s does not exist", funcName, configFile)
	}

	// Parse command line options again to ensure they take precedence.
	parser := newConfigParser(&cfg, flags.None)
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, errors.Wrap(err, funcName)
	}
	cfg.ConfigFile = configFile

	if err := cfg.resolve(); err != nil {
		return nil, nil, errors.Wrap(err, funcName)
	}
	return &cfg, remainingArgs, nil
}

// resolve validates the loaded settings, expands paths and configures the
// subsystem loggers.
func (cfg *Config) resolve() error {
	params, err := chaincfg.ParamsByName(cfg.Net)
	if err != nil {
		return err
	}
	cfg.Params = params

	cfg.HeaderEncoding, err = wire.ParseHeaderEncoding(cfg.Encoding)
	if err != nil {
		return err
	}

	if cfg.Workers < 1 {
		return errors.Errorf("the workers option must be positive -- parsed [%d]", cfg.Workers)
	}

	cfg.DataDir = cleanAndExpandPath(cfg.DataDir)
	cfg.MetricsFile = cleanAndExpandPath(cfg.MetricsFile)
	cfg.LogConfig.Directory = cleanAndExpandPath(cfg.LogConfig.Directory)

	return parseAndSetDebugLevels(cfg.DebugLevel, cfg.LogConfig)
}

// WriteDefaultConfig writes the default configuration to path as YAML or
// TOML, chosen by the file extension.
func WriteDefaultConfig(path string) error {
	cfg := Default()

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(&cfg)
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(cfg)
		data = buf.Bytes()
	default:
		err = errors.Errorf("invalid config file extension %q, must be .yaml or .toml",
			filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
