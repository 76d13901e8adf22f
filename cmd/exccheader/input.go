// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/exccoin/exccore/config"
	"gitlab.com/exccoin/exccore/types/wire"
)

// headerRow is one line of a CSV header list.
type headerRow struct {
	Header string `csv:"header"`
}

// readArg returns the first argument, or the whole of stdin when there is
// none or it is "-".
func readArg(c *cli.Context) ([]byte, error) {
	arg := c.Args().First()
	if arg != "" && arg != "-" {
		return []byte(arg), nil
	}
	return io.ReadAll(c.App.Reader)
}

// readHeaderList returns the header texts of a file given as the first
// argument, or of stdin.  CSV files need a "header" column; other input
// holds one header per line, blank lines and lines starting with # are
// skipped.
func readHeaderList(c *cli.Context) ([]string, error) {
	path := c.Args().First()
	if path == "" || path == "-" {
		return readLines(c.App.Reader)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		var rows []headerRow
		if err := gocsv.Unmarshal(f, &rows); err != nil {
			return nil, errors.Wrapf(err, "unable to read %s", path)
		}
		out := make([]string, 0, len(rows))
		for _, row := range rows {
			out = append(out, row.Header)
		}
		return out, nil
	}
	return readLines(f)
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}

// parseHeader decodes a header from its hex or JSON form.  Hex input is
// read in the configured encoding.
func (app *App) parseHeader(text []byte) (*wire.BlockHeader, error) {
	log := config.HeaderLog()
	header, err := app.decodeText(bytes.TrimSpace(text))
	if err != nil {
		log.Debug().Err(err).Msg("header rejected by decoder")
		return nil, err
	}
	app.headers.Decoded()
	log.Trace().Str("hash", header.ID()).Uint32("height", header.Height()).Msg("header decoded")
	return header, nil
}

func (app *App) decodeText(text []byte) (*wire.BlockHeader, error) {
	if app.cfg.HeaderEncoding != wire.LegacyEncoding || len(text) == 0 || text[0] == '{' {
		return wire.Parse(text)
	}

	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return nil, errors.Wrap(wire.ErrMalformedInput, err.Error())
	}
	return wire.ReadBlockHeader(wire.NewByteReader(raw), wire.LegacyEncoding)
}
