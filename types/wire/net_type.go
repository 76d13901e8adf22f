// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
)

// CurrencyNet represents which network a message belongs to.  The value is
// the little-endian reading of the four magic bytes that prefix every message.
type CurrencyNet uint32

// Constants used to indicate the message network.
const (
	// BitcoinMainNet is the reference network the header format is
	// benchmarked against (magic f9beb4d9).
	BitcoinMainNet CurrencyNet = 0xd9b4bef9

	// BitcoinTestNet represents the bitcoin test network (magic 0b110907).
	BitcoinTestNet CurrencyNet = 0x0709110b

	// MainNet represents the main ExchangeCoin network (magic e1d71799).
	MainNet CurrencyNet = 0x9917d7e1

	// TestNet represents the ExchangeCoin test network (magic 2a75a45a).
	TestNet CurrencyNet = 0x5aa4752a
)

// bnStrings is a map of networks back to their constant names for
// pretty printing.
var bnStrings = map[CurrencyNet]string{
	BitcoinMainNet: "BitcoinMainNet",
	BitcoinTestNet: "BitcoinTestNet",
	MainNet:        "MainNet",
	TestNet:        "TestNet",
}

// String returns the CurrencyNet in human-readable form.
func (n CurrencyNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}

	return fmt.Sprintf("Unknown CurrencyNet (%d)", uint32(n))
}

// Magic returns the four magic bytes in the order they appear on the wire.
func (n CurrencyNet) Magic() [4]byte {
	return [4]byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
}
