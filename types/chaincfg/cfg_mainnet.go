// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"gitlab.com/exccoin/exccore/types/chainhash"
	"gitlab.com/exccoin/exccore/types/wire"
)

// genesisMerkleRoot is the merkle root shared by the livenet and testnet
// genesis headers.
var genesisMerkleRoot = chainhash.Hash{
	0x3b, 0xa3, 0xed, 0xfd, 0x7a, 0x7b, 0x12, 0xb2,
	0x7a, 0xc7, 0x2c, 0x3e, 0x67, 0x76, 0x8f, 0x61,
	0x7f, 0xc8, 0x1b, 0xc3, 0x88, 0x8a, 0x51, 0x32,
	0x3a, 0x9f, 0xb8, 0xaa, 0x4b, 0x1e, 0x5e, 0x4a,
}

// mainNetPowLimitBits is the difficulty 1 target in compact form.
const mainNetPowLimitBits uint32 = 0x1d00ffff

// MainNetParams defines the parameters for the livenet network.  Its genesis
// bits are the difficulty 1 reference every header difficulty is measured
// against.
var MainNetParams = Params{
	Name:        "livenet",
	Aliases:     []string{"mainnet"},
	Net:         wire.BitcoinMainNet,
	DefaultPort: "8333",
	DNSSeeds: []DNSSeed{
		{"seed.bitcoin.sipa.be", true},
		{"dnsseed.bluematt.me", true},
		{"dnsseed.bitcoin.dashjr.org", false},
		{"seed.bitcoinstats.com", true},
		{"seed.bitnodes.io", false},
		{"bitseed.xf2.org", false},
	},

	GenesisHash:       newHashFromStr("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"),
	GenesisHeaderHash: newHashFromStr("6c7b7d326edbd97f38d550db5bd55c244a8e977f6bada1e863a7779a1885a011"),
	GenesisVersion:    1,
	GenesisMerkleRoot: genesisMerkleRoot,
	GenesisTimestamp:  1231006505,
	GenesisBits:       mainNetPowLimitBits,
	GenesisNonce:      2083236893,

	PowLimit:     powLimit(mainNetPowLimitBits),
	PowLimitBits: mainNetPowLimitBits,

	PubKeyHashAddrID: 0x00, // starts with 1
	ScriptHashAddrID: 0x05, // starts with 3
	PrivateKeyID:     0x80, // starts with 5 (uncompressed) or K (compressed)

	HDPrivateKeyID: [4]byte{0x04, 0x88, 0xad, 0xe4}, // starts with xprv
	HDPublicKeyID:  [4]byte{0x04, 0x88, 0xb2, 0x1e}, // starts with xpub
}
