// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"gitlab.com/exccoin/exccore/types/chainhash"
	"gitlab.com/exccoin/exccore/types/wire"
)

const (
	exccdMainNetPowLimitBits uint32 = 0x2000a3d7
	exccdTestNetPowLimitBits uint32 = 0x20066666
)

// ExccdMainNetParams defines the parameters for the ExchangeCoin main
// network.
var ExccdMainNetParams = Params{
	Name:        "exccdlivenet",
	Net:         wire.MainNet,
	DefaultPort: "9108",
	DNSSeeds: []DNSSeed{
		{"seed.excc.co", true},
		{"seed.xchange.me", true},
		{"excc-seed.pragmaticcoders.com", true},
		{"seed.exccited.com", true},
	},

	GenesisHash:       newHashFromStr("5f91ddfa5e9ffc4b837b81035dd0b0ddf1a1c59116aa5f5ef5f4121a64a69478"),
	GenesisHeaderHash: newHashFromStr("7fe40763a5226016426551e5b31be617035a284a3531a37fd73b96f47f58e8ed"),
	GenesisVersion:    1,
	GenesisMerkleRoot: chainhash.Hash{
		0x8a, 0x2c, 0x43, 0xaa, 0x5a, 0xca, 0xba, 0x5b,
		0xdb, 0x5d, 0xc2, 0x19, 0x12, 0x01, 0xca, 0x9a,
		0xe0, 0xf5, 0x6f, 0x0e, 0x14, 0x9b, 0xb5, 0x8d,
		0xdb, 0x4d, 0xcc, 0xc5, 0xc8, 0x44, 0xd7, 0xe0,
	},
	GenesisTimestamp: 1531731600, // 2018-07-16 09:00:00 +0000 UTC
	GenesisBits:      exccdMainNetPowLimitBits,
	GenesisNonce:     0,

	PowLimit:     powLimit(exccdMainNetPowLimitBits),
	PowLimitBits: exccdMainNetPowLimitBits,

	PubKeyHashAddrID: 0x21b9,
	ScriptHashAddrID: 0x34af,
	PrivateKeyID:     0x80,

	HDPrivateKeyID: [4]byte{0x04, 0x88, 0xad, 0xe4}, // starts with xprv
	HDPublicKeyID:  [4]byte{0x04, 0x88, 0xb2, 0xe1},
}

// ExccdTestNetParams defines the parameters for the ExchangeCoin test
// network.
var ExccdTestNetParams = Params{
	Name:        "exccdtestnet",
	Net:         wire.TestNet,
	DefaultPort: "19108",
	DNSSeeds: []DNSSeed{
		{"testnet-seed.excc.co", true},
	},

	GenesisHash:       newHashFromStr("38f3ab514a59d5a682a780b89a204154513c008f7590d023842bf58a5fc549c0"),
	GenesisHeaderHash: newHashFromStr("ec76d06b67049dbdd96017edc93796a14510fa46bd3dcd32c80532b5cb00628d"),
	GenesisVersion:    4,
	GenesisMerkleRoot: chainhash.Hash{
		0xe7, 0x36, 0x81, 0x37, 0x25, 0xd3, 0xc6, 0x3f,
		0x4f, 0x50, 0x81, 0x6b, 0x62, 0x7c, 0x13, 0x94,
		0xd2, 0x68, 0xfa, 0xb2, 0x3e, 0xf9, 0xbd, 0x5e,
		0x81, 0xea, 0x63, 0x3b, 0x48, 0x04, 0x29, 0x53,
	},
	GenesisTimestamp: 1532420489, // 2018-07-24 08:21:29 +0000 UTC
	GenesisBits:      exccdTestNetPowLimitBits,
	GenesisNonce:     414098458,

	PowLimit:     powLimit(exccdTestNetPowLimitBits),
	PowLimitBits: exccdTestNetPowLimitBits,

	PubKeyHashAddrID: 0x0f21,
	ScriptHashAddrID: 0x0efc,
	PrivateKeyID:     0xef,

	HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x97},
	HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xd1},
}
