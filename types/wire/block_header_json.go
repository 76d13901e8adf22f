// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/hex"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"gitlab.com/exccoin/exccore/types/chainhash"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HeaderObject is the field map form of a block header.  Hash-like fields are
// reversed hex strings, the other byte fields are plain hex strings and all
// integers are decimal numbers.
//
// Timestamp and Time name the same value.  When building a header a non-zero
// Timestamp wins, otherwise Time is used.  Hash is optional on input and is
// checked against the derived hash when present.
type HeaderObject struct {
	Hash             string           `json:"hash,omitempty"`
	Version          int32            `json:"version"`
	PrevHash         chainhash.Hash   `json:"prevHash"`
	MerkleRoot       chainhash.Hash   `json:"merkleRoot"`
	StakeRoot        chainhash.Hash   `json:"stakeRoot"`
	VoteBits         uint16           `json:"voteBits"`
	FinalState       FinalState       `json:"finalState"`
	Voters           int16            `json:"voters"`
	FreshStake       uint8            `json:"freshStake"`
	Revocations      uint8            `json:"revocations"`
	PoolSize         uint32           `json:"poolSize"`
	Bits             uint32           `json:"bits"`
	SBits            int64            `json:"sbits"`
	Height           uint32           `json:"height"`
	Size             uint32           `json:"size"`
	Timestamp        uint32           `json:"timestamp"`
	Time             uint32           `json:"time"`
	Nonce            uint32           `json:"nonce"`
	ExtraData        ExtraData        `json:"extraData"`
	StakeVersion     uint32           `json:"stakeVersion"`
	EquihashSolution EquihashSolution `json:"equihashSolution"`
}

// FromObject builds a header from its field map form.
func FromObject(obj HeaderObject) (*BlockHeader, error) {
	timestamp := obj.Timestamp
	if timestamp == 0 {
		timestamp = obj.Time
	}

	h := NewBlockHeader(Fields{
		Version:          obj.Version,
		PrevBlock:        obj.PrevHash,
		MerkleRoot:       obj.MerkleRoot,
		StakeRoot:        obj.StakeRoot,
		VoteBits:         obj.VoteBits,
		FinalState:       obj.FinalState,
		Voters:           obj.Voters,
		FreshStake:       obj.FreshStake,
		Revocations:      obj.Revocations,
		PoolSize:         obj.PoolSize,
		Bits:             obj.Bits,
		SBits:            obj.SBits,
		Height:           obj.Height,
		Size:             obj.Size,
		Timestamp:        timestamp,
		Nonce:            obj.Nonce,
		ExtraData:        obj.ExtraData,
		StakeVersion:     obj.StakeVersion,
		EquihashSolution: obj.EquihashSolution,
	})

	if obj.Hash == "" {
		return h, nil
	}

	if len(obj.Hash) != chainhash.MaxHashStringSize || !isHex([]byte(obj.Hash)) {
		return nil, messageError("FromObject", ErrMalformedInput,
			fmt.Sprintf("invalid hash %q", obj.Hash))
	}
	if obj.Hash != h.hash.String() {
		str := fmt.Sprintf("object hash %s does not match block hash %s",
			obj.Hash, h.hash)
		return nil, messageError("FromObject", ErrHashMismatch, str)
	}
	return h, nil
}

// FromJSON builds a header from a JSON encoded HeaderObject.
func FromJSON(data []byte) (*BlockHeader, error) {
	var obj HeaderObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, messageError("FromJSON", ErrMalformedInput, err.Error())
	}
	return FromObject(obj)
}

// Parse builds a header from one of its text forms: a JSON object or the hex
// encoding of its bytes.
func Parse(text []byte) (*BlockHeader, error) {
	text = bytes.TrimSpace(text)
	switch {
	case len(text) == 0:
		return nil, messageError("Parse", ErrUnrecognizedInput, "empty input")
	case text[0] == '{':
		return FromJSON(text)
	case isHex(text):
		return FromHex(string(text))
	default:
		return nil, messageError("Parse", ErrUnrecognizedInput,
			"input is neither a JSON object nor a hex string")
	}
}

func isHex(text []byte) bool {
	for _, c := range text {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Object returns the field map form of the header.
func (h *BlockHeader) Object() HeaderObject {
	f := &h.fields
	return HeaderObject{
		Hash:             h.hash.String(),
		Version:          f.Version,
		PrevHash:         f.PrevBlock,
		MerkleRoot:       f.MerkleRoot,
		StakeRoot:        f.StakeRoot,
		VoteBits:         f.VoteBits,
		FinalState:       f.FinalState,
		Voters:           f.Voters,
		FreshStake:       f.FreshStake,
		Revocations:      f.Revocations,
		PoolSize:         f.PoolSize,
		Bits:             f.Bits,
		SBits:            f.SBits,
		Height:           f.Height,
		Size:             f.Size,
		Timestamp:        f.Timestamp,
		Time:             f.Timestamp,
		Nonce:            f.Nonce,
		ExtraData:        f.ExtraData,
		StakeVersion:     f.StakeVersion,
		EquihashSolution: f.EquihashSolution,
	}
}

// MarshalJSON renders the header as its field map form.
func (h *BlockHeader) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Object())
}

func (s FinalState) MarshalText() ([]byte, error) { return hexText(s[:]), nil }

func (s *FinalState) UnmarshalText(text []byte) error {
	return unhexText("finalState", s[:], text)
}

func (d ExtraData) MarshalText() ([]byte, error) { return hexText(d[:]), nil }

func (d *ExtraData) UnmarshalText(text []byte) error {
	return unhexText("extraData", d[:], text)
}

func (s EquihashSolution) MarshalText() ([]byte, error) { return hexText(s[:]), nil }

func (s *EquihashSolution) UnmarshalText(text []byte) error {
	return unhexText("equihashSolution", s[:], text)
}

func hexText(b []byte) []byte {
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b)
	return out
}

// unhexText decodes text into dst, which must be filled exactly.  Empty text
// leaves dst zeroed.
func unhexText(field string, dst, text []byte) error {
	if len(text) == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return nil
	}
	if hex.DecodedLen(len(text)) != len(dst) {
		return fmt.Errorf("%s must be %d bytes, got %d hex characters",
			field, len(dst), len(text))
	}
	_, err := hex.Decode(dst, text)
	return err
}
