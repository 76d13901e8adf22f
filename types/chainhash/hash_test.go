// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashH(t *testing.T) {
	tests := []struct {
		name string
		in   string
		raw  string
		str  string
	}{
		{
			name: "empty",
			in:   "",
			raw:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			str:  "55b852781b9995a44c939b64e441ae2724b96f99c8f4fb9a141cfc9842c4b0e3",
		},
		{
			name: "text",
			in:   "exccore",
			raw:  "2c4052320c17fe50e0960ab5eadd772c473bf3a0354c967f4d4212aac3d72c05",
			str:  "052cd7c3aa12424d7f964c35a0f33b472c77ddeab50a96e050fe170c3252402c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HashH([]byte(tt.in))
			assert.Equal(t, tt.raw, hex.EncodeToString(h[:]))
			assert.Equal(t, tt.str, h.String())
			assert.Equal(t, tt.raw, hex.EncodeToString(HashB([]byte(tt.in))))
		})
	}
}

func TestNewHashFromStr(t *testing.T) {
	str := "052cd7c3aa12424d7f964c35a0f33b472c77ddeab50a96e050fe170c3252402c"
	h, err := NewHashFromStr(str)
	require.NoError(t, err)
	assert.Equal(t, HashH([]byte("exccore")), *h)
	assert.Equal(t, str, h.String())

	// odd length strings are zero padded at the most significant end.
	h, err = NewHashFromStr("1")
	require.NoError(t, err)
	assert.Equal(t, byte(1), h[0])
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000001", h.String())

	_, err = NewHashFromStr(str + "00")
	assert.Equal(t, ErrHashStrSize, err)

	_, err = NewHashFromStr("zz")
	assert.Error(t, err)
}

func TestHashSetBytes(t *testing.T) {
	var h Hash
	assert.Error(t, h.SetBytes([]byte{1, 2, 3}))

	raw := HashB([]byte("exccore"))
	require.NoError(t, h.SetBytes(raw))
	assert.Equal(t, raw, h.CloneBytes())

	other, err := NewHash(raw)
	require.NoError(t, err)
	assert.True(t, h.IsEqual(other))
	assert.False(t, h.IsEqual(&ZeroHash))
	assert.False(t, h.IsEqual(nil))
}

func TestHashJSON(t *testing.T) {
	h := HashH([]byte("exccore"))

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `"`+h.String()+`"`, string(data))

	var fromStr Hash
	require.NoError(t, json.Unmarshal(data, &fromStr))
	assert.Equal(t, h, fromStr)

	ints := make([]int, HashSize)
	for i, b := range h {
		ints[i] = int(b)
	}
	rawJSON, err := json.Marshal(ints)
	require.NoError(t, err)

	var fromRaw Hash
	require.NoError(t, json.Unmarshal(rawJSON, &fromRaw))
	assert.Equal(t, h, fromRaw)

	var bad Hash
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`[256]`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
	assert.Error(t, bad.UnmarshalJSON([]byte(`"ab"`)))
	assert.Error(t, bad.UnmarshalJSON([]byte(`""`)))
	assert.Error(t, bad.UnmarshalJSON([]byte(`"`+h.String()+`00"`)))
	assert.Equal(t, ZeroHash, bad)
}
