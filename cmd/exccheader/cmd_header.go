// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/exccoin/exccore/database/headerdb"
	"gitlab.com/exccoin/exccore/types/chainhash"
	"gitlab.com/exccoin/exccore/types/wire"
)

func (app *App) decodeCmd(c *cli.Context) error {
	input, err := readArg(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	var header *wire.BlockHeader
	if c.Bool("raw-block") {
		var raw []byte
		raw, err = hex.DecodeString(string(bytes.TrimSpace(input)))
		if err != nil {
			return cli.Exit(errors.Wrap(err, "raw block must be hex"), 1)
		}
		header, err = wire.FromRawBlock(raw)
		if err == nil {
			app.headers.Decoded()
		}
	} else {
		header, err = app.parseHeader(input)
	}
	if err != nil {
		return cli.Exit(errors.Wrap(err, "unable to decode header"), 1)
	}

	if c.Bool("spew") {
		fmt.Fprintln(c.App.Writer, header.Inspect())
		spew.Fdump(c.App.Writer, header.Fields())
		return nil
	}
	return app.printHeader(c, header)
}

func (app *App) encodeCmd(c *cli.Context) error {
	input, err := readArg(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	header, err := wire.FromJSON(input)
	if err != nil {
		return cli.Exit(errors.Wrap(err, "unable to read header"), 1)
	}
	app.headers.Decoded()

	var buf bytes.Buffer
	if err := header.BtcEncode(&buf, app.cfg.HeaderEncoding); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(buf.Bytes()))
	return nil
}

func (app *App) showCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected a hash, a height or 'best'", 1)
	}

	db, err := headerdb.Open(app.cfg.HeaderDBPath())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	arg := c.Args().First()
	var header *wire.BlockHeader
	switch {
	case arg == "best":
		header, err = db.BestHeader()
	case len(arg) == chainhash.MaxHashStringSize:
		var hash *chainhash.Hash
		hash, err = chainhash.NewHashFromStr(arg)
		if err == nil {
			header, err = db.FetchHeader(hash)
		}
	default:
		var height uint64
		height, err = strconv.ParseUint(arg, 10, 32)
		if err == nil {
			header, err = db.FetchHeaderByHeight(uint32(height))
		}
	}
	if err != nil {
		return cli.Exit(err, 1)
	}
	return app.printHeader(c, header)
}

func (app *App) printHeader(c *cli.Context, header *wire.BlockHeader) error {
	data, err := json.MarshalIndent(header.Object(), "", "  ")
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}
