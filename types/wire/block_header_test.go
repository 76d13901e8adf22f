// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHeaderHex is the StakeEncoding of testFields.
var testHeaderHex = "05000000000102030405060708090a0b0c0d0e0f101112131415161718191a1b" +
	"1c1d1e1f202122232425262728292a2b2c2d2e2f303132333435363738393a3b" +
	"3c3d3e3f404142434445464748494a4b4c4d4e4f505152535455565758595a5b" +
	"5c5d5e5f0201a1a2a3a4a5a60500030128a00000ffff011b00c2eb0b00000000" +
	"40e2010000100000f8e1565befbeaddeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee" +
	"eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee06000000000102030405060708090a0b" +
	"0c0d0e0f101112131415161718191a1b1c1d1e1f202122232425262728292a2b" +
	"2c2d2e2f303132333435363738393a3b3c3d3e3f404142434445464748494a4b" +
	"4c4d4e4f505152535455565758595a5b5c5d5e5f60616263"

// testLegacyHeaderHex is the LegacyEncoding of testFields.
var testLegacyHeaderHex = "05000000000102030405060708090a0b0c0d0e0f101112131415161718191a1b" +
	"1c1d1e1f202122232425262728292a2b2c2d2e2f303132333435363738393a3b" +
	"3c3d3e3f404142434445464748494a4b4c4d4e4f505152535455565758595a5b" +
	"5c5d5e5f0201030128a00000ffff011b00c2eb0b0000000040e2010000100000" +
	"f8e1565befbeaddeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee" +
	"eeeeeeeeeeeeeeee06000000000102030405060708090a0b0c0d0e0f10111213" +
	"1415161718191a1b1c1d1e1f202122232425262728292a2b2c2d2e2f30313233" +
	"3435363738393a3b3c3d3e3f404142434445464748494a4b4c4d4e4f50515253" +
	"5455565758595a5b5c5d5e5f60616263"

const (
	testHeaderHash       = "afa3a4d0b91da1ef17c1cc6ca1ffae26d5c59790ec71ab84e7c8e218d2b98979"
	testNextNonceHash    = "6a79ec82653e6d915e719de326bfbf3b9802f5657b787a53bf67e094da5bd17f"
	testLegacyHeaderHash = "afdc788f3d29dc72215b2cb66db5b6f73791201e879a64aa90c1195bd9740708"
)

func seq(start, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(start + i)
	}
	return b
}

func testFields() Fields {
	f := Fields{
		Version:      5,
		VoteBits:     0x0102,
		FinalState:   FinalState{0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6},
		Voters:       5,
		FreshStake:   3,
		Revocations:  1,
		PoolSize:     41000,
		Bits:         0x1b01ffff,
		SBits:        200000000,
		Height:       123456,
		Size:         4096,
		Timestamp:    1532420600,
		Nonce:        0xdeadbeef,
		StakeVersion: 6,
	}
	copy(f.PrevBlock[:], seq(0, 32))
	copy(f.MerkleRoot[:], seq(32, 32))
	copy(f.StakeRoot[:], seq(64, 32))
	copy(f.ExtraData[:], bytes.Repeat([]byte{0xee}, ExtraDataSize))
	copy(f.EquihashSolution[:], seq(0, EquihashSolutionSize))
	return f
}

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestBlockHeaderEncode(t *testing.T) {
	h := NewBlockHeader(testFields())

	assert.Equal(t, MaxBlockHeaderPayload, len(h.Bytes()))
	assert.Equal(t, 280, MaxBlockHeaderPayload)
	assert.Equal(t, 272, LegacyBlockHeaderPayload)
	assert.Equal(t, testHeaderHex, h.String())
	assert.Equal(t, testHeaderHash, h.ID())
	assert.Equal(t, testHeaderHash, h.BlockHash().String())
	assert.Equal(t, "<BlockHeader "+testHeaderHash+">", h.Inspect())

	var buf bytes.Buffer
	require.NoError(t, h.BtcEncode(&buf, LegacyEncoding))
	assert.Equal(t, testLegacyHeaderHex, hex.EncodeToString(buf.Bytes()))

	buf.Reset()
	require.NoError(t, h.Serialize(&buf))
	assert.Equal(t, testHeaderHex, hex.EncodeToString(buf.Bytes()))
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	raw := mustHex(t, testHeaderHex)

	h, err := FromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, testFields(), h.Fields())
	assert.Equal(t, raw, h.Bytes())

	fromHex, err := FromHex(testHeaderHex)
	require.NoError(t, err)
	assert.Equal(t, h.Fields(), fromHex.Fields())
	assert.Equal(t, h.BlockHash(), fromHex.BlockHash())

	again, err := FromBytes(NewBlockHeader(h.Fields()).Bytes())
	require.NoError(t, err)
	assert.Equal(t, h.Fields(), again.Fields())

	streamed, err := Deserialize(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, h.BlockHash(), streamed.BlockHash())

	_, err = Deserialize(bytes.NewReader(raw[:100]))
	assert.ErrorIs(t, err, ErrOutOfBounds)

	// Trailing bytes are not part of the header.
	withTail, err := FromBytes(append(append([]byte{}, raw...), 0xff, 0xff))
	require.NoError(t, err)
	assert.Equal(t, h.Fields(), withTail.Fields())
}

func TestBlockHeaderLegacyRoundTrip(t *testing.T) {
	raw := mustHex(t, testLegacyHeaderHex)

	h, err := ReadBlockHeader(NewByteReader(raw), LegacyEncoding)
	require.NoError(t, err)

	want := testFields()
	want.FinalState = FinalState{}
	want.Voters = 0
	assert.Equal(t, want, h.Fields())
	assert.Equal(t, testLegacyHeaderHash, h.ID())

	var buf bytes.Buffer
	require.NoError(t, h.BtcEncode(&buf, LegacyEncoding))
	assert.Equal(t, raw, buf.Bytes())

	// A plain io.Reader works as well.
	h2, err := ReadBlockHeader(bytes.NewReader(raw), LegacyEncoding)
	require.NoError(t, err)
	assert.Equal(t, h.Fields(), h2.Fields())
}

func TestBlockHeaderFromRawBlock(t *testing.T) {
	block := append([]byte{0x18, 0x01, 0, 0, 0, 0, 0, 0}, mustHex(t, testHeaderHex)...)
	block = append(block, 0x00, 0x01, 0x02)

	h, err := FromRawBlock(block)
	require.NoError(t, err)
	assert.Equal(t, testHeaderHash, h.ID())

	_, err = FromRawBlock(block[:4])
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	r := NewByteReader(block)
	require.NoError(t, r.Seek(StartOfHeader))
	h, err = FromByteReader(r)
	require.NoError(t, err)
	assert.Equal(t, testHeaderHash, h.ID())
	assert.Equal(t, StartOfHeader+MaxBlockHeaderPayload, r.Pos())
	assert.Equal(t, 3, r.Len())
}

func TestBlockHeaderDecodeErrors(t *testing.T) {
	raw := mustHex(t, testHeaderHex)

	tests := []struct {
		name string
		run  func() error
		kind ErrorKind
	}{
		{
			name: "short buffer",
			run:  func() error { _, err := FromBytes(raw[:MaxBlockHeaderPayload-1]); return err },
			kind: ErrOutOfBounds,
		},
		{
			name: "empty buffer",
			run:  func() error { _, err := FromBytes(nil); return err },
			kind: ErrOutOfBounds,
		},
		{
			name: "short stream",
			run: func() error {
				_, err := ReadBlockHeader(bytes.NewReader(raw[:100]), StakeEncoding)
				return err
			},
			kind: ErrOutOfBounds,
		},
		{
			name: "invalid hex",
			run:  func() error { _, err := FromHex("zz" + testHeaderHex[2:]); return err },
			kind: ErrMalformedInput,
		},
		{
			name: "odd hex",
			run:  func() error { _, err := FromHex(testHeaderHex[1:]); return err },
			kind: ErrMalformedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var msgErr MessageError
			assert.True(t, errors.As(err, &msgErr))
		})
	}

	// A failed decode does not move the cursor.
	r := NewByteReader(raw[:MaxBlockHeaderPayload-1])
	_, err := FromByteReader(r)
	require.Error(t, err)
	assert.Equal(t, 0, r.Pos())
}

func TestBlockHeaderHashDeterminism(t *testing.T) {
	f := testFields()
	a := NewBlockHeader(f)
	b := NewBlockHeader(f)
	assert.Equal(t, a.BlockHash(), b.BlockHash())

	f.Nonce++
	c := NewBlockHeader(f)
	assert.NotEqual(t, a.BlockHash(), c.BlockHash())
	assert.Equal(t, testNextNonceHash, c.ID())

	// Fields returns a copy, mutating it leaves the header alone.
	got := a.Fields()
	got.Nonce = 0
	assert.Equal(t, uint32(0xdeadbeef), a.Nonce())
	assert.Equal(t, testHeaderHash, a.ID())
}

func TestBlockHeaderConcurrentUse(t *testing.T) {
	h := NewBlockHeader(testFields())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decoded, err := FromHex(testHeaderHex)
			assert.NoError(t, err)
			assert.Equal(t, h.BlockHash(), decoded.BlockHash())
			assert.Equal(t, testHeaderHash, h.ID())
		}()
	}
	wg.Wait()
}

func TestBlockHeaderAccessors(t *testing.T) {
	f := testFields()
	h := NewBlockHeader(f)

	assert.Equal(t, f.Version, h.Version())
	assert.Equal(t, f.PrevBlock, h.PrevBlock())
	assert.Equal(t, f.MerkleRoot, h.MerkleRoot())
	assert.Equal(t, f.StakeRoot, h.StakeRoot())
	assert.Equal(t, f.VoteBits, h.VoteBits())
	assert.Equal(t, f.FinalState, h.FinalState())
	assert.Equal(t, f.Voters, h.Voters())
	assert.Equal(t, f.FreshStake, h.FreshStake())
	assert.Equal(t, f.Revocations, h.Revocations())
	assert.Equal(t, f.PoolSize, h.PoolSize())
	assert.Equal(t, f.Bits, h.Bits())
	assert.Equal(t, f.SBits, h.SBits())
	assert.Equal(t, f.Height, h.Height())
	assert.Equal(t, f.Size, h.Size())
	assert.Equal(t, time.Unix(1532420600, 0), h.Timestamp())
	assert.Equal(t, f.Nonce, h.Nonce())
	assert.Equal(t, f.ExtraData, h.ExtraData())
	assert.Equal(t, f.StakeVersion, h.StakeVersion())
	assert.Equal(t, f.EquihashSolution, h.EquihashSolution())
	assert.Equal(t, MaxBlockHeaderPayload, h.SerializeSize())
}

func TestBlockHeaderDifficulty(t *testing.T) {
	f := testFields()

	f.Bits = 0x1d00ffff
	h := NewBlockHeader(f)
	assert.Equal(t, "1.00000000", h.DifficultyString())
	assert.Equal(t, 1.0, h.Difficulty())

	f.Bits = 0x1b0404cb
	h = NewBlockHeader(f)
	assert.Equal(t, "16307.42093852", h.DifficultyString())
	assert.InDelta(t, 16307.42093852, h.Difficulty(), 1e-8)

	want, _ := new(big.Int).SetString("404cb000000000000000000000000000000000000000000000000", 16)
	assert.Equal(t, 0, h.TargetDifficulty().Cmp(want))
}

func TestBlockHeaderValidTimestamp(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{name: "now", offset: 0, want: true},
		{name: "past", offset: -24 * time.Hour, want: true},
		{name: "at the limit", offset: MaxTimeOffset, want: true},
		{name: "one second over", offset: MaxTimeOffset + time.Second, want: false},
		{name: "far future", offset: 30 * 24 * time.Hour, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFields()
			f.Timestamp = uint32(now.Add(tt.offset).Unix())
			h := NewBlockHeader(f)
			assert.Equal(t, tt.want, h.ValidTimestampAt(now))
		})
	}

	f := testFields()
	f.Timestamp = uint32(time.Now().Unix())
	assert.True(t, NewBlockHeader(f).ValidTimestamp())

	f.Timestamp = uint32(time.Now().Add(3 * time.Hour).Unix())
	assert.False(t, NewBlockHeader(f).ValidTimestamp())
}

func TestBlockHeaderValidProofOfWork(t *testing.T) {
	f := testFields()

	// The target is larger than any 256-bit hash.
	f.Bits = 0x22ffffff
	assert.True(t, NewBlockHeader(f).ValidProofOfWork())

	// A target of one cannot be met by this header.
	f.Bits = 0x03000001
	assert.False(t, NewBlockHeader(f).ValidProofOfWork())

	// Matches a direct comparison of the big-endian hash.
	f.Bits = 0x1b01ffff
	h := NewBlockHeader(f)
	hash := h.BlockHash()
	target := new(big.Int).SetBytes(reversed(hash[:]))
	assert.Equal(t, target.Cmp(h.TargetDifficulty()) <= 0, h.ValidProofOfWork())
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

func TestParseHeaderEncoding(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want HeaderEncoding
		ok   bool
	}{
		{in: "", want: StakeEncoding, ok: true},
		{in: "stake", want: StakeEncoding, ok: true},
		{in: " Legacy ", want: LegacyEncoding, ok: true},
		{in: "bitcoin", ok: false},
	} {
		got, err := ParseHeaderEncoding(tt.in)
		if !tt.ok {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, "stake", StakeEncoding.String())
	assert.Equal(t, "legacy", LegacyEncoding.String())
	assert.Equal(t, LegacyBlockHeaderPayload, LegacyEncoding.PayloadSize())
}
