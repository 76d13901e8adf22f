// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/exccoin/exccore/config"
	"gitlab.com/exccoin/exccore/database/headerdb"
	"gitlab.com/exccoin/exccore/node/chaindata"
	"gitlab.com/exccoin/exccore/node/metrics"
	"gitlab.com/exccoin/exccore/types/wire"
	"golang.org/x/sync/errgroup"
)

// checkResult is one row of the verify report.
type checkResult struct {
	Line       int    `csv:"line"`
	Hash       string `csv:"hash"`
	Height     uint32 `csv:"height"`
	Bits       string `csv:"bits"`
	Difficulty string `csv:"difficulty"`
	Valid      bool   `csv:"valid"`
	Reason     string `csv:"reason"`

	header *wire.BlockHeader `csv:"-"`
}

// checkHeaders decodes and validates every text with cfg.Workers
// goroutines.  Results keep the input order.
func (app *App) checkHeaders(ctx context.Context, texts []string, flags chaindata.BehaviorFlags) ([]checkResult, error) {
	validator := chaindata.NewHeaderValidator(app.cfg.Params, chaindata.NewTimeSource(), app.headers)
	results := make([]checkResult, len(texts))

	eGroup, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	eGroup.Go(func() error {
		defer close(jobs)
		for i := range texts {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < app.cfg.Workers; w++ {
		eGroup.Go(func() error {
			for i := range jobs {
				results[i] = app.checkOne(validator, i+1, texts[i], flags)
			}
			return nil
		})
	}

	return results, eGroup.Wait()
}

func (app *App) checkOne(validator *chaindata.HeaderValidator, line int, text string, flags chaindata.BehaviorFlags) checkResult {
	res := checkResult{Line: line}
	header, err := app.parseHeader([]byte(text))
	if err != nil {
		res.Reason = err.Error()
		app.headers.Rejected("decode")
		return res
	}

	res.header = header
	res.Hash = header.ID()
	res.Height = header.Height()
	res.Bits = fmt.Sprintf("%08x", header.Bits())
	res.Difficulty = header.DifficultyString()

	if err := validator.Validate(header, flags); err != nil {
		res.Reason = err.Error()
		return res
	}
	res.Valid = true
	return res
}

func behaviorFlags(c *cli.Context) chaindata.BehaviorFlags {
	if c.Bool("no-pow") {
		return chaindata.BFNoPoWCheck
	}
	return chaindata.BFNone
}

func (app *App) verifyCmd(c *cli.Context) error {
	texts, err := readHeaderList(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	results, err := app.checkHeaders(c.Context, texts, behaviorFlags(c))
	if err != nil {
		return cli.Exit(err, 1)
	}

	var out io.Writer = c.App.Writer
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer f.Close()
		out = f
	}
	if err := gocsv.Marshal(results, out); err != nil {
		return cli.Exit(errors.Wrap(err, "unable to write report"), 1)
	}

	failed := 0
	for _, res := range results {
		if !res.Valid {
			failed++
		}
	}
	app.log.Info().Int("total", len(results)).Int("failed", failed).Msg("headers verified")
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d headers failed", failed, len(results)), 2)
	}
	return nil
}

func (app *App) importCmd(c *cli.Context) error {
	texts, err := readHeaderList(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	var headers []*wire.BlockHeader
	if c.Bool("no-check") {
		for i, text := range texts {
			header, err := app.parseHeader([]byte(text))
			if err != nil {
				return cli.Exit(errors.Wrapf(err, "line %d", i+1), 1)
			}
			headers = append(headers, header)
		}
	} else {
		results, err := app.checkHeaders(c.Context, texts, behaviorFlags(c))
		if err != nil {
			return cli.Exit(err, 1)
		}
		for _, res := range results {
			if !res.Valid {
				return cli.Exit(fmt.Sprintf("line %d: %s", res.Line, res.Reason), 1)
			}
			headers = append(headers, res.header)
		}
	}

	if len(headers) == 0 {
		return cli.Exit("no headers to import", 1)
	}

	dbPath := app.cfg.HeaderDBPath()
	db, err := headerdb.Open(dbPath)
	if err != nil {
		return cli.Exit(err, 1)
	}
	// The chain metrics read the database when Flush writes them.
	app.closers = append(app.closers, db)

	if err := db.PutHeaders(headers); err != nil {
		return cli.Exit(err, 1)
	}

	best, err := db.BestHeader()
	if err != nil {
		return cli.Exit(err, 1)
	}

	var logDir string
	if app.cfg.LogConfig.FileLoggingEnabled {
		logDir = app.cfg.LogConfig.Directory
	}
	registry := app.manager.Registry()
	app.manager.Add(
		metrics.ChainMetrics(db, app.cfg.Params.Name, registry, config.MetricsLog()),
		metrics.StoreMetrics(dbPath, logDir, registry, config.MetricsLog()),
	)

	fmt.Fprintf(c.App.Writer, "imported %d headers, best height %d (%s)\n",
		len(headers), best.Height(), best.ID())
	return nil
}
