// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gitlab.com/exccoin/exccore/types/wire"
)

// testHeader returns an exccdtestnet header.  Nonce 10 at height 1 hashes
// below the network limit, nonce 0 does not.
func testHeader(height, nonce uint32) *wire.BlockHeader {
	return wire.NewBlockHeader(wire.Fields{
		Version:   4,
		Bits:      0x20066666,
		Height:    height,
		Timestamp: 1532420600,
		Nonce:     nonce,
	})
}

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}

	base := []string{"exccheader", "--net", "exccdtestnet", "--datadir", t.TempDir(), "--debuglevel", "error"}
	err := app.Run(append(base, args...))
	return out.String(), err
}

func TestDecodeEncode(t *testing.T) {
	header := testHeader(1, 10)

	out, err := runApp(t, "", "decode", header.String())
	require.NoError(t, err)
	assert.Contains(t, out, `"hash": "`+header.ID()+`"`)
	assert.Contains(t, out, `"height": 1`)

	encoded, err := runApp(t, out, "encode")
	require.NoError(t, err)
	assert.Equal(t, header.String(), strings.TrimSpace(encoded))

	legacy, err := runApp(t, out, "--encoding", "legacy", "encode")
	require.NoError(t, err)
	legacy = strings.TrimSpace(legacy)
	assert.Len(t, legacy, 2*wire.LegacyEncoding.PayloadSize())

	out, err = runApp(t, "", "--encoding", "legacy", "decode", legacy)
	require.NoError(t, err)
	assert.Contains(t, out, header.ID(), "zero final state and voters keep the hash")

	_, err = runApp(t, "", "decode", "zz")
	assert.Error(t, err)
}

func TestDecodeSpew(t *testing.T) {
	header := testHeader(1, 10)

	out, err := runApp(t, header.String(), "decode", "--spew")
	require.NoError(t, err)
	assert.Contains(t, out, header.Inspect())
	assert.Contains(t, out, "Nonce: (uint32) 10")
}

func TestVerify(t *testing.T) {
	input := strings.Join([]string{
		"# exccdtestnet headers",
		testHeader(1, 10).String(),
		"",
		testHeader(1, 0).String(),
	}, "\n")

	out, err := runApp(t, input, "verify")
	require.Error(t, err)
	exitErr, ok := err.(cli.ExitCoder)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.ExitCode())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "line,hash,height,bits,difficulty,valid,reason", lines[0])
	assert.Contains(t, lines[1], testHeader(1, 10).ID())
	assert.Contains(t, lines[1], ",true,")
	assert.Contains(t, lines[2], ",false,")

	out, err = runApp(t, input, "verify", "--no-pow")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, ",true,"))
}

func TestVerifyCSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "headers.csv")
	report := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(in, []byte("header\n"+testHeader(1, 10).String()+"\n"), 0o600))

	out, err := runApp(t, "", "verify", "--out", report, in)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), testHeader(1, 10).ID())
}

func TestImportShow(t *testing.T) {
	dataDir := t.TempDir()
	metricsFile := filepath.Join(t.TempDir(), "exccore.prom")

	var lines []string
	for height := uint32(1); height <= 3; height++ {
		lines = append(lines, testHeader(height, 0).String())
	}

	run := func(stdin string, args ...string) (string, error) {
		app := newApp()
		var out bytes.Buffer
		app.Writer = &out
		app.ErrWriter = io.Discard
		app.Reader = strings.NewReader(stdin)
		app.ExitErrHandler = func(*cli.Context, error) {}
		base := []string{"exccheader", "--net", "exccdtestnet", "--datadir", dataDir,
			"--debuglevel", "error", "--metricsfile", metricsFile}
		err := app.Run(append(base, args...))
		return out.String(), err
	}

	_, err := run(strings.Join(lines, "\n"), "import")
	require.Error(t, err, "proof of work is checked by default")

	out, err := run(strings.Join(lines, "\n"), "import", "--no-pow")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 3 headers, best height 3")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `exccore_chain_height{net_name="exccdtestnet"} 3`)
	assert.Contains(t, string(prom), "exccore_headers_decoded_total 3")

	out, err = run("", "show", "best")
	require.NoError(t, err)
	assert.Contains(t, out, `"height": 3`)

	out, err = run("", "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, testHeader(2, 0).ID())

	out, err = run("", "show", testHeader(1, 0).ID())
	require.NoError(t, err)
	assert.Contains(t, out, `"height": 1`)

	_, err = run("", "show", "9")
	assert.Error(t, err)
}

func TestImportEmpty(t *testing.T) {
	for _, stdin := range []string{"", "# nothing here\n\n"} {
		out, err := runApp(t, stdin, "import", "--no-pow")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no headers to import")
		assert.Empty(t, out)
	}
}

func TestDifficulty(t *testing.T) {
	out, err := runApp(t, "", "difficulty", "0x1d00ffff", "453281356")
	require.NoError(t, err)
	assert.Contains(t, out, "00000000ffff"+strings.Repeat("0", 52))
	assert.Contains(t, out, "1.00000000")
	assert.Contains(t, out, "4295032833")
	assert.Contains(t, out, "1b04864c")

	_, err = runApp(t, "", "difficulty", "bits")
	assert.Error(t, err)
}

func TestParams(t *testing.T) {
	out, err := runApp(t, "", "params")
	require.NoError(t, err)
	for _, name := range []string{"livenet", "testnet", "exccdlivenet", "exccdtestnet"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "0xd9b4bef9")
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
		err  bool
	}{
		{name: "coins", args: []string{"1.3"}, want: []string{"1300 mEXCC", "130000000 exels"}},
		{name: "with rate", args: []string{"--rate", "350", "1.3"}, want: []string{"455"}},
		{name: "from fiat", args: []string{"--fiat", "--rate", "350", "43"}, want: []string{"12285714 exels"}},
		{name: "from millis", args: []string{"--from", "mEXCC", "1300"}, want: []string{"1.3 EXCC"}},
		{name: "unknown unit", args: []string{"--from", "excc", "1"}, err: true},
		{name: "fiat without rate", args: []string{"--fiat", "43"}, err: true},
		{name: "not a number", args: []string{"one"}, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, "", append([]string{"convert"}, tt.args...)...)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exccore.toml")

	_, err := runApp(t, "", "init-config", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "livenet")

	out, err := runApp(t, "", "--config", path, "params")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
