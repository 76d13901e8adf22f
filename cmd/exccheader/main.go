// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gitlab.com/exccoin/exccore/config"
	"gitlab.com/exccoin/exccore/node/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	flagConfig      = "config"
	flagNet         = "net"
	flagEncoding    = "encoding"
	flagDataDir     = "datadir"
	flagDebugLevel  = "debuglevel"
	flagMetricsFile = "metricsfile"
	flagWorkers     = "workers"
	flagLogJSON     = "logjson"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

// App holds the state shared by the commands of one run.
type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	manager *metrics.Manager
	headers *metrics.HeaderMetrics

	// closers are closed by Flush once the metrics are written.
	closers []io.Closer
}

func newApp() *cli.App {
	app := &App{}
	return &cli.App{
		Name:     "exccheader",
		Usage:    "decode, verify and index ExchangeCoin block headers",
		Flags:    app.InitFlags(),
		Before:   app.InitCfg,
		After:    app.Flush,
		Commands: app.getCommands(),
	}
}

func (app *App) InitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"C"},
			Usage:   "path to configuration (.yaml or .toml)",
		},
		&cli.StringFlag{
			Name:    flagNet,
			Aliases: []string{"n"},
			EnvVars: []string{"EXCCORE_NET"},
			Usage:   "network name or alias",
		},
		&cli.StringFlag{
			Name:    flagEncoding,
			Aliases: []string{"e"},
			Usage:   "header encoding {stake, legacy}",
		},
		&cli.StringFlag{
			Name:    flagDataDir,
			Aliases: []string{"b"},
			Usage:   "directory of the header index",
		},
		&cli.StringFlag{
			Name:    flagDebugLevel,
			Aliases: []string{"d"},
			Usage:   "logging level for all subsystems or <subsystem>=<level>,...",
		},
		&cli.StringFlag{
			Name:  flagMetricsFile,
			Usage: "write Prometheus metrics to this file when the command is done",
		},
		&cli.IntFlag{
			Name:  flagWorkers,
			Usage: "number of concurrent header checks",
		},
		&cli.BoolFlag{
			Name:  flagLogJSON,
			Usage: "write logs as JSON",
		},
	}
}

// InitCfg loads the configuration.  Global flags given on the command line
// are handed to the config parser as overrides of the config file.
func (app *App) InitCfg(c *cli.Context) error {
	var args []string
	if c.IsSet(flagConfig) {
		args = append(args, "--configfile="+c.String(flagConfig))
	}
	for _, name := range []string{flagNet, flagEncoding, flagDataDir, flagDebugLevel, flagMetricsFile} {
		if c.IsSet(name) {
			args = append(args, "--"+name+"="+c.String(name))
		}
	}
	if c.IsSet(flagWorkers) {
		args = append(args, "--"+flagWorkers+"="+strconv.Itoa(c.Int(flagWorkers)))
	}
	if c.Bool(flagLogJSON) {
		args = append(args, "--logjson")
	}

	cfg, _, err := config.LoadConfig(args)
	if err != nil {
		return cli.Exit(err, 1)
	}

	app.cfg = cfg
	app.log = config.Log()
	app.manager = metrics.NewManager()
	app.headers = metrics.NewHeaderMetrics(app.manager.Registry(), config.MetricsLog())

	app.log.Debug().Str("net", cfg.Params.Name).Str("encoding", cfg.HeaderEncoding.String()).
		Msg("configuration loaded")
	return nil
}

// Flush writes the metrics text file when one is configured and closes the
// resources the command left open for it.
func (app *App) Flush(c *cli.Context) error {
	defer app.closeAll()

	if app.cfg == nil || app.cfg.MetricsFile == "" {
		return nil
	}
	if err := app.manager.WriteTextfile(app.cfg.MetricsFile); err != nil {
		return cli.Exit(errors.Wrap(err, "unable to write metrics"), 1)
	}
	app.log.Debug().Str("path", app.cfg.MetricsFile).Msg("metrics written")
	return nil
}

func (app *App) closeAll() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			app.log.Error().Err(err).Msg("can't close resource")
		}
	}
	app.closers = nil
}

func (app *App) getCommands() cli.Commands {
	return []*cli.Command{
		{
			Name:      "decode",
			Usage:     "decode a header given as hex, JSON or a raw block",
			ArgsUsage: "[hex|json|-]",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "raw-block", Usage: "input is a serialized block; decode its leading header"},
				&cli.BoolFlag{Name: "spew", Usage: "dump the decoded fields instead of JSON"},
			},
			Action: app.decodeCmd,
		},
		{
			Name:      "encode",
			Usage:     "encode a JSON header to hex in the configured encoding",
			ArgsUsage: "[json|-]",
			Action:    app.encodeCmd,
		},
		{
			Name:      "verify",
			Usage:     "check the proof of work and timestamp of headers, one per line or a CSV with a header column",
			ArgsUsage: "[file|-]",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "no-pow", Usage: "skip the proof of work check"},
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the CSV report to this file"},
			},
			Action: app.verifyCmd,
		},
		{
			Name:      "import",
			Usage:     "verify headers and store them in the header index",
			ArgsUsage: "[file|-]",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "no-pow", Usage: "skip the proof of work check"},
				&cli.BoolFlag{Name: "no-check", Usage: "store headers without any check"},
			},
			Action: app.importCmd,
		},
		{
			Name:      "show",
			Usage:     "print a stored header by hash, height or 'best'",
			ArgsUsage: "<hash|height|best>",
			Action:    app.showCmd,
		},
		{
			Name:      "difficulty",
			Usage:     "print target, difficulty and work of compact bits",
			ArgsUsage: "<bits>...",
			Action:    app.difficultyCmd,
		},
		{
			Name:   "params",
			Usage:  "list the known networks",
			Action: app.paramsCmd,
		},
		{
			Name:      "convert",
			Usage:     "convert an amount between units",
			ArgsUsage: "<amount>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "from", Value: "EXCC", Usage: "unit of the amount"},
				&cli.Float64Flag{Name: "rate", Usage: "EXCC/fiat exchange rate; adds a fiat column"},
				&cli.BoolFlag{Name: "fiat", Usage: "the amount is a fiat value, requires --rate"},
			},
			Action: app.convertCmd,
		},
		{
			Name:      "init-config",
			Usage:     "write the default configuration",
			ArgsUsage: "<path.yaml|path.toml>",
			Action:    app.initConfigCmd,
		},
	}
}
