// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"gitlab.com/exccoin/exccore/types/chainhash"
	"gitlab.com/exccoin/exccore/types/pow"
	"gitlab.com/exccoin/exccore/types/wire"
)

// ErrUnknownNetwork describes an error where the network name or alias
// passed to ParamsByName is not registered.
var ErrUnknownNetwork = errors.New("unknown network")

// DNSSeed identifies a DNS seed.
type DNSSeed struct {
	// Host defines the hostname of the seed.
	Host string

	// HasFiltering defines whether the seed supports filtering
	// by service flags (wire.ServiceFlag).
	HasFiltering bool
}

// String returns the hostname of the DNS seed in human-readable form.
func (d DNSSeed) String() string {
	return d.Host
}

// Params defines a network by its parameters.  These parameters are used by
// applications to tell the difference between networks and to rebuild the
// network's genesis header.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Aliases are alternative names ParamsByName resolves to this network.
	Aliases []string

	// Net defines the magic bytes used to identify the network.
	Net wire.CurrencyNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// DNSSeeds defines a list of DNS seeds for the network that are used
	// as one method to discover peers.
	DNSSeeds []DNSSeed

	// GenesisHash is the published hash of the network's genesis block.
	// The genesis values below do not hold every field of that block, so
	// GenesisHeader() does not reproduce it.
	GenesisHash chainhash.Hash

	// GenesisHeaderHash is the hash of GenesisHeader().
	GenesisHeaderHash chainhash.Hash

	// Genesis header values.  Every field not listed here is zero.
	GenesisVersion    int32
	GenesisMerkleRoot chainhash.Hash
	GenesisTimestamp  uint32
	GenesisBits       uint32
	GenesisNonce      uint32
	GenesisHeight     uint32

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// Address encoding magics
	PubKeyHashAddrID uint16 // First bytes of a P2PKH address
	ScriptHashAddrID uint16 // First bytes of a P2SH address
	PrivateKeyID     byte   // First byte of a WIF private key

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte
}

// GenesisHeader builds the genesis block header of the network.
func (p *Params) GenesisHeader() *wire.BlockHeader {
	return wire.NewBlockHeader(wire.Fields{
		Version:    p.GenesisVersion,
		MerkleRoot: p.GenesisMerkleRoot,
		Timestamp:  p.GenesisTimestamp,
		Bits:       p.GenesisBits,
		Nonce:      p.GenesisNonce,
		Height:     p.GenesisHeight,
	})
}

// IsGenesis reports whether hash is the published genesis hash of the
// network or the hash of GenesisHeader().
func (p *Params) IsGenesis(hash *chainhash.Hash) bool {
	return p.GenesisHash.IsEqual(hash) || p.GenesisHeaderHash.IsEqual(hash)
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return *hash
}

// powLimit derives the proof of work limit from the genesis compact bits.
func powLimit(bits uint32) *big.Int {
	return pow.CompactToBig(bits)
}

// registered holds every known network in display order.
var registered = []*Params{
	&MainNetParams,
	&TestNetParams,
	&ExccdMainNetParams,
	&ExccdTestNetParams,
}

// Networks returns the registered network parameters in display order.
func Networks() []*Params {
	out := make([]*Params, len(registered))
	copy(out, registered)
	return out
}

// ParamsByName returns the network parameters registered under the given
// name or alias.  Lookup is case-insensitive.
func ParamsByName(name string) (*Params, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range registered {
		if p.Name == name {
			return p, nil
		}
		for _, alias := range p.Aliases {
			if alias == name {
				return p, nil
			}
		}
	}
	return nil, errors.Wrapf(ErrUnknownNetwork, "%q", name)
}
