// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/exccoin/exccore/config"
	"gitlab.com/exccoin/exccore/exccutil"
	"gitlab.com/exccoin/exccore/types/chaincfg"
	"gitlab.com/exccoin/exccore/types/pow"
)

// parseBits accepts compact bits as 0x-prefixed hex or decimal.
func parseBits(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid bits %q", s)
	}
	return uint32(v), nil
}

func (app *App) difficultyCmd(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("at least one bits value is required", 1)
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"Bits", "Target", "Difficulty", "Work"})

	for _, arg := range c.Args().Slice() {
		bits, err := parseBits(arg)
		if err != nil {
			return cli.Exit(err, 1)
		}
		table.Append([]string{
			fmt.Sprintf("%08x", bits),
			fmt.Sprintf("%064x", pow.CompactToBig(bits)),
			pow.CalcDifficulty(pow.DifficultyOneBits, bits),
			pow.CalcWork(bits).String(),
		})
	}

	table.Render()
	return nil
}

func (app *App) paramsCmd(c *cli.Context) error {
	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"Name", "Aliases", "Magic", "Port", "Genesis", "PowLimit"})

	var rows [][]string
	for _, p := range chaincfg.Networks() {
		rows = append(rows, []string{
			p.Name,
			strings.Join(p.Aliases, ","),
			fmt.Sprintf("0x%08x", uint32(p.Net)),
			p.DefaultPort,
			p.GenesisHash.String(),
			fmt.Sprintf("%08x", p.PowLimitBits),
		})
	}
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func (app *App) convertCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one amount is required", 1)
	}
	value, err := strconv.ParseFloat(c.Args().First(), 64)
	if err != nil {
		return cli.Exit(errors.Wrap(err, "invalid amount"), 1)
	}
	rate := c.Float64("rate")

	var amount exccutil.Amount
	if c.Bool("fiat") {
		amount, err = exccutil.FromFiat(value, rate)
	} else {
		var unit exccutil.Unit
		unit, err = exccutil.ParseUnit(c.String("from"))
		if err == nil {
			amount, err = exccutil.NewAmount(value, unit)
		}
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	header := []string{"Unit", "Amount"}
	if rate != 0 {
		header = append(header, "Fiat")
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader(header)
	for _, unit := range exccutil.Units() {
		formatted, err := amount.Format(unit)
		if err != nil {
			return cli.Exit(err, 1)
		}
		row := []string{string(unit), formatted}
		if rate != 0 {
			fiat, err := amount.AtRate(rate)
			if err != nil {
				return cli.Exit(err, 1)
			}
			row = append(row, strconv.FormatFloat(fiat, 'f', -1, 64))
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

func (app *App) initConfigCmd(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("a config path is required", 1)
	}
	if err := config.WriteDefaultConfig(path); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintf(c.App.Writer, "default configuration written to %s\n", path)
	return nil
}
