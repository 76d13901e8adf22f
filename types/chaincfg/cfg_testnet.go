// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"gitlab.com/exccoin/exccore/types/wire"
)

// TestNetParams defines the parameters for the testnet network.
var TestNetParams = Params{
	Name:        "testnet",
	Net:         wire.BitcoinTestNet,
	DefaultPort: "18333",
	DNSSeeds: []DNSSeed{
		{"testnet-seed.bitcoin.petertodd.org", true},
		{"testnet-seed.bluematt.me", false},
	},

	GenesisHash:       newHashFromStr("000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943"),
	GenesisHeaderHash: newHashFromStr("5f5b9c1da8ea9861c93843b8aea82092de928145d6854c442f545c63b54b3fc3"),
	GenesisVersion:    1,
	GenesisMerkleRoot: genesisMerkleRoot,
	GenesisTimestamp:  1296688602,
	GenesisBits:       mainNetPowLimitBits,
	GenesisNonce:      414098458,

	PowLimit:     powLimit(mainNetPowLimitBits),
	PowLimitBits: mainNetPowLimitBits,

	PubKeyHashAddrID: 0x6f, // starts with m or n
	ScriptHashAddrID: 0xc4, // starts with 2
	PrivateKeyID:     0xef, // starts with 9 (uncompressed) or c (compressed)

	HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // starts with tprv
	HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // starts with tpub
}
