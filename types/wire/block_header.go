// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/exccoin/exccore/types/chainhash"
	"gitlab.com/exccoin/exccore/types/pow"
)

const (
	// FinalStateSize is the size of the final state of the lottery.
	FinalStateSize = 6

	// ExtraDataSize is the size of the extra data field.
	ExtraDataSize = 32

	// EquihashSolutionSize is the size of the proof-of-work solution.
	EquihashSolutionSize = 100

	// MaxBlockHeaderPayload is the number of bytes a block header takes in
	// StakeEncoding.
	// Version 4 bytes + PrevBlock, MerkleRoot and StakeRoot hashes +
	// VoteBits 2 bytes + FinalState 6 bytes + Voters 2 bytes +
	// FreshStake 1 byte + Revocations 1 byte + PoolSize 4 bytes +
	// Bits 4 bytes + SBits 8 bytes + Height 4 bytes + Size 4 bytes +
	// Timestamp 4 bytes + Nonce 4 bytes + ExtraData 32 bytes +
	// StakeVersion 4 bytes + EquihashSolution 100 bytes.
	MaxBlockHeaderPayload = 52 + (chainhash.HashSize * 3) + ExtraDataSize + EquihashSolutionSize

	// LegacyBlockHeaderPayload is the number of bytes a block header takes
	// in LegacyEncoding, which has no FinalState and Voters.
	LegacyBlockHeaderPayload = MaxBlockHeaderPayload - FinalStateSize - 2

	// StartOfHeader is the offset of the header inside a raw block.  The
	// first eight bytes of a raw block carry its size.
	StartOfHeader = 8

	// MaxTimeOffset is how far into the future a header timestamp may be.
	MaxTimeOffset = 2 * time.Hour
)

// HeaderEncoding selects the binary layout of a block header.
type HeaderEncoding uint32

const (
	// StakeEncoding is the canonical layout.  It carries FinalState and
	// Voters right after VoteBits and is the layout the block hash is
	// computed over.
	StakeEncoding HeaderEncoding = iota

	// LegacyEncoding omits FinalState and Voters.  Decoding leaves both
	// zero and encoding skips them.
	LegacyEncoding
)

// String returns the encoding name as used in configuration files.
func (e HeaderEncoding) String() string {
	switch e {
	case StakeEncoding:
		return "stake"
	case LegacyEncoding:
		return "legacy"
	default:
		return "unknown(" + strconv.FormatUint(uint64(e), 10) + ")"
	}
}

// PayloadSize returns the number of bytes a header takes in this encoding.
func (e HeaderEncoding) PayloadSize() int {
	if e == LegacyEncoding {
		return LegacyBlockHeaderPayload
	}
	return MaxBlockHeaderPayload
}

// ParseHeaderEncoding parses the configuration name of an encoding.
func ParseHeaderEncoding(name string) (HeaderEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "stake":
		return StakeEncoding, nil
	case "legacy":
		return LegacyEncoding, nil
	default:
		return 0, errors.Errorf("unknown header encoding %q", name)
	}
}

// FinalState is the final state of the PRNG used for ticket selection.
type FinalState [FinalStateSize]byte

// ExtraData is free-form data a miner may put into the header.
type ExtraData [ExtraDataSize]byte

// EquihashSolution is the proof-of-work solution payload.
type EquihashSolution [EquihashSolutionSize]byte

// Fields is the complete set of values a BlockHeader is built from.
type Fields struct {
	// Version of the block.  This is not the same as the protocol version.
	Version int32

	// Hash of the previous block in the block chain.
	PrevBlock chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot chainhash.Hash

	// Merkle tree reference to hash of all stake transactions for the block.
	StakeRoot chainhash.Hash

	// Votes on the previous merkle root and dev fund.
	VoteBits uint16

	FinalState FinalState

	// Number of participating voters for this block.
	Voters int16

	// Number of new sstx in this block.
	FreshStake uint8

	// Number of ssrtx present in this block.
	Revocations uint8

	// Size of the ticket pool.
	PoolSize uint32

	// Difficulty target for the block in compact form.
	Bits uint32

	// Stake difficulty target.
	SBits int64

	// Height is the block height in the block chain.
	Height uint32

	// Size is the size of the serialized block in its entirety.
	Size uint32

	// Time the block was created in unix seconds.  This is, unfortunately,
	// encoded as a uint32 on the wire and therefore is limited to 2106.
	Timestamp uint32

	// Nonce used to generate the block.
	Nonce uint32

	ExtraData ExtraData

	// StakeVersion used for voting.
	StakeVersion uint32

	EquihashSolution EquihashSolution
}

// BlockHeader is an immutable block header.  Its hash is computed once when
// the header is built, so a BlockHeader may be shared between goroutines.
type BlockHeader struct {
	fields Fields
	hash   chainhash.Hash
}

// NewBlockHeader returns a header holding a copy of f.
func NewBlockHeader(f Fields) *BlockHeader {
	h := &BlockHeader{fields: f}
	h.hash = chainhash.HashH(h.encode(StakeEncoding))
	return h
}

// FromBytes decodes a header from the start of buf.  Bytes after the header
// are ignored.
func FromBytes(buf []byte) (*BlockHeader, error) {
	return FromByteReader(NewByteReader(buf))
}

// FromHex decodes a header from its hex text form.
func FromHex(str string) (*BlockHeader, error) {
	buf, err := hex.DecodeString(strings.TrimSpace(str))
	if err != nil {
		return nil, messageError("FromHex", ErrMalformedInput, err.Error())
	}
	return FromBytes(buf)
}

// FromRawBlock decodes the header of a raw block, skipping the block size
// preamble.
func FromRawBlock(block []byte) (*BlockHeader, error) {
	r := NewByteReader(block)
	if err := r.Seek(StartOfHeader); err != nil {
		return nil, err
	}
	return FromByteReader(r)
}

// FromByteReader decodes a header at the cursor position of r.  On failure
// the cursor is left untouched.
func FromByteReader(r *ByteReader) (*BlockHeader, error) {
	return ReadBlockHeader(r, StakeEncoding)
}

// Deserialize reads a header in StakeEncoding from r.
func Deserialize(r io.Reader) (*BlockHeader, error) {
	return ReadBlockHeader(r, StakeEncoding)
}

// ReadBlockHeader reads a header from r using the given encoding.
func ReadBlockHeader(r io.Reader, enc HeaderEncoding) (*BlockHeader, error) {
	if br, ok := r.(*ByteReader); ok && br.Len() < enc.PayloadSize() {
		str := fmt.Sprintf("need %d bytes for %s header, have %d",
			enc.PayloadSize(), enc, br.Len())
		return nil, messageError("ReadBlockHeader", ErrOutOfBounds, str)
	}

	var f Fields
	if err := readBlockHeader(r, &f, enc); err != nil {
		return nil, readError("ReadBlockHeader", enc.PayloadSize(), err)
	}
	return NewBlockHeader(f), nil
}

// BtcEncode writes the header to w using the given encoding.
func (h *BlockHeader) BtcEncode(w io.Writer, enc HeaderEncoding) error {
	return writeBlockHeader(w, &h.fields, enc)
}

// Serialize writes the header to w in StakeEncoding.
func (h *BlockHeader) Serialize(w io.Writer) error {
	return writeBlockHeader(w, &h.fields, StakeEncoding)
}

// SerializeSize returns the number of bytes it would take to serialize the
// header in StakeEncoding.
func (h *BlockHeader) SerializeSize() int {
	return MaxBlockHeaderPayload
}

// Bytes returns the StakeEncoding of the header.
func (h *BlockHeader) Bytes() []byte {
	return h.encode(StakeEncoding)
}

// String returns the hex encoding of Bytes.
func (h *BlockHeader) String() string {
	return hex.EncodeToString(h.Bytes())
}

// Inspect returns a short description for logs and consoles.
func (h *BlockHeader) Inspect() string {
	return "<BlockHeader " + h.hash.String() + ">"
}

func (h *BlockHeader) encode(enc HeaderEncoding) []byte {
	w := NewByteWriter(enc.PayloadSize())
	// ByteWriter never fails.
	_ = writeBlockHeader(w, &h.fields, enc)
	return w.Bytes()
}

// BlockHash returns the single sha256 of the StakeEncoding of the header.
func (h *BlockHeader) BlockHash() chainhash.Hash { return h.hash }

// ID returns the block hash in its reversed hex text form.
func (h *BlockHeader) ID() string { return h.hash.String() }

// Fields returns a copy of the header values.
func (h *BlockHeader) Fields() Fields { return h.fields }

func (h *BlockHeader) Version() int32                     { return h.fields.Version }
func (h *BlockHeader) PrevBlock() chainhash.Hash          { return h.fields.PrevBlock }
func (h *BlockHeader) MerkleRoot() chainhash.Hash         { return h.fields.MerkleRoot }
func (h *BlockHeader) StakeRoot() chainhash.Hash          { return h.fields.StakeRoot }
func (h *BlockHeader) VoteBits() uint16                   { return h.fields.VoteBits }
func (h *BlockHeader) FinalState() FinalState             { return h.fields.FinalState }
func (h *BlockHeader) Voters() int16                      { return h.fields.Voters }
func (h *BlockHeader) FreshStake() uint8                  { return h.fields.FreshStake }
func (h *BlockHeader) Revocations() uint8                 { return h.fields.Revocations }
func (h *BlockHeader) PoolSize() uint32                   { return h.fields.PoolSize }
func (h *BlockHeader) Bits() uint32                       { return h.fields.Bits }
func (h *BlockHeader) SBits() int64                       { return h.fields.SBits }
func (h *BlockHeader) Height() uint32                     { return h.fields.Height }
func (h *BlockHeader) Size() uint32                       { return h.fields.Size }
func (h *BlockHeader) Nonce() uint32                      { return h.fields.Nonce }
func (h *BlockHeader) ExtraData() ExtraData               { return h.fields.ExtraData }
func (h *BlockHeader) StakeVersion() uint32               { return h.fields.StakeVersion }
func (h *BlockHeader) EquihashSolution() EquihashSolution { return h.fields.EquihashSolution }

// Timestamp returns the header time.
func (h *BlockHeader) Timestamp() time.Time {
	return time.Unix(int64(h.fields.Timestamp), 0)
}

// TargetDifficulty returns the target decoded from the compact bits.
func (h *BlockHeader) TargetDifficulty() *big.Int {
	return pow.CompactToBig(h.fields.Bits)
}

// DifficultyString returns the difficulty relative to the difficulty one
// target, with eight decimal places.
func (h *BlockHeader) DifficultyString() string {
	return pow.CalcDifficulty(pow.DifficultyOneBits, h.fields.Bits)
}

// Difficulty is DifficultyString as a float.
func (h *BlockHeader) Difficulty() float64 {
	d, err := strconv.ParseFloat(h.DifficultyString(), 64)
	if err != nil {
		return 0
	}
	return d
}

// ValidTimestamp reports whether the timestamp is not too far in the future.
func (h *BlockHeader) ValidTimestamp() bool {
	return h.ValidTimestampAt(time.Now())
}

// ValidTimestampAt is ValidTimestamp against the given current time.
func (h *BlockHeader) ValidTimestampAt(now time.Time) bool {
	maxTime := now.Unix() + int64(MaxTimeOffset/time.Second)
	return int64(h.fields.Timestamp) <= maxTime
}

// ValidProofOfWork reports whether the block hash, read as a big-endian
// number, does not exceed the target.
func (h *BlockHeader) ValidProofOfWork() bool {
	return pow.CheckProofOfWorkHash(&h.hash, h.fields.Bits)
}

// readBlockHeader reads a block header from r.
func readBlockHeader(r io.Reader, f *Fields, enc HeaderEncoding) error {
	err := ReadElements(r, &f.Version, &f.PrevBlock, &f.MerkleRoot,
		&f.StakeRoot, &f.VoteBits)
	if err != nil {
		return err
	}

	if enc == StakeEncoding {
		err = ReadElements(r, &f.FinalState, &f.Voters)
		if err != nil {
			return err
		}
	}

	return ReadElements(r, &f.FreshStake, &f.Revocations, &f.PoolSize,
		&f.Bits, &f.SBits, &f.Height, &f.Size, &f.Timestamp, &f.Nonce,
		&f.ExtraData, &f.StakeVersion, &f.EquihashSolution)
}

// writeBlockHeader writes a block header to w.
func writeBlockHeader(w io.Writer, f *Fields, enc HeaderEncoding) error {
	err := WriteElements(w, f.Version, &f.PrevBlock, &f.MerkleRoot,
		&f.StakeRoot, f.VoteBits)
	if err != nil {
		return err
	}

	if enc == StakeEncoding {
		err = WriteElements(w, &f.FinalState, f.Voters)
		if err != nil {
			return err
		}
	}

	return WriteElements(w, f.FreshStake, f.Revocations, f.PoolSize,
		f.Bits, f.SBits, f.Height, f.Size, f.Timestamp, f.Nonce,
		&f.ExtraData, f.StakeVersion, &f.EquihashSolution)
}
