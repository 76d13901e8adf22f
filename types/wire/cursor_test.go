// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteCursorRoundTrip(t *testing.T) {
	w := NewByteWriter(0)
	w.WriteUint8(0xab)
	w.WriteInt8(-2)
	w.WriteUint16(0x0102)
	w.WriteInt16(math.MinInt16)
	w.WriteUint32(0xdeadbeef)
	w.WriteInt32(-5)
	w.WriteUint64(math.MaxUint64 - 1)
	w.WriteInt64(-200000000)
	_, err := w.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 1+1+2+2+4+4+8+8+3, w.Len())

	// Little-endian layout of the first fields.
	assert.Equal(t, []byte{0xab, 0xfe, 0x02, 0x01, 0x00, 0x80, 0xef, 0xbe, 0xad, 0xde}, w.Bytes()[:10])

	r := NewByteReader(w.Bytes())

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xab), u8)

	i8, err := r.ReadInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(-2), i8)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), u16)

	i16, err := r.ReadInt16()
	require.NoError(t, err)
	assert.Equal(t, int16(math.MinInt16), i16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-5), i32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64-1), u64)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-200000000), i64)

	b, err := r.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
	assert.Equal(t, 0, r.Len())
}

func TestByteReaderOutOfBounds(t *testing.T) {
	r := NewByteReader([]byte{1, 2, 3})

	tests := []struct {
		name string
		read func() error
	}{
		{name: "uint32", read: func() error { _, err := r.ReadUint32(); return err }},
		{name: "int64", read: func() error { _, err := r.ReadInt64(); return err }},
		{name: "bytes", read: func() error { _, err := r.ReadBytes(4); return err }},
		{name: "negative", read: func() error { _, err := r.ReadBytes(-1); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read()
			assert.True(t, errors.Is(err, ErrOutOfBounds), "got %v", err)
			assert.Equal(t, 0, r.Pos())
		})
	}

	v, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v)

	_, err = r.ReadUint16()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, 2, r.Pos())

	assert.True(t, errors.Is(r.Seek(4), ErrOutOfBounds))
	assert.True(t, errors.Is(r.Seek(-1), ErrOutOfBounds))
	require.NoError(t, r.Seek(3))
	assert.Equal(t, 0, r.Len())
}

func TestByteReaderIOReader(t *testing.T) {
	r := NewByteReader([]byte{1, 2, 3, 4, 5})

	buf := make([]byte, 3)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{4, 5}, buf[:n])

	_, err = r.Read(buf)
	assert.Equal(t, io.EOF, err)
}

func TestReadWriteElements(t *testing.T) {
	var (
		version  = int32(-7)
		voters   = int16(-3)
		voteBits = uint16(0xbeef)
		sbits    = int64(-1)
		net      = MainNet
		state    = FinalState{1, 2, 3, 4, 5, 6}
	)

	w := NewByteWriter(0)
	require.NoError(t, WriteElements(w, version, voters, voteBits, sbits, net, &state))
	assert.Equal(t, 4+2+2+8+4+FinalStateSize, w.Len())

	var (
		gotVersion  int32
		gotVoters   int16
		gotVoteBits uint16
		gotSBits    int64
		gotNet      CurrencyNet
		gotState    FinalState
	)
	r := NewByteReader(w.Bytes())
	require.NoError(t, ReadElements(r, &gotVersion, &gotVoters, &gotVoteBits, &gotSBits, &gotNet, &gotState))
	assert.Equal(t, version, gotVersion)
	assert.Equal(t, voters, gotVoters)
	assert.Equal(t, voteBits, gotVoteBits)
	assert.Equal(t, sbits, gotSBits)
	assert.Equal(t, net, gotNet)
	assert.Equal(t, state, gotState)

	var extra uint32
	assert.Equal(t, io.EOF, ReadElement(r, &extra))
}

func TestCurrencyNet(t *testing.T) {
	assert.Equal(t, [4]byte{0xe1, 0xd7, 0x17, 0x99}, MainNet.Magic())
	assert.Equal(t, [4]byte{0x2a, 0x75, 0xa4, 0x5a}, TestNet.Magic())
	assert.Equal(t, [4]byte{0xf9, 0xbe, 0xb4, 0xd9}, BitcoinMainNet.Magic())
	assert.Equal(t, "MainNet", MainNet.String())
	assert.Equal(t, "Unknown CurrencyNet (1)", CurrencyNet(1).String())
}
