// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"math/big"
	"strings"

	"gitlab.com/exccoin/exccore/types/chainhash"
)

const (
	// DifficultyOneBits is the compact form of the difficulty one target.
	// Difficulty scores are expressed relative to it.  It is the genesis
	// bits of the reference main network.
	DifficultyOneBits uint32 = 0x1d00ffff

	// difficultyPrecision is the number of decimal places of a difficulty
	// score.
	difficultyPrecision = 8
)

var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// oneLsh256 is 1 shifted left 256 bits.  It is defined here to avoid
	// the overhead of creating it multiple times.
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)

	// difficultyScale is 10^difficultyPrecision.
	difficultyScale = big.NewInt(100000000)
)

// HashToBig converts a chainhash.Hash into a big.Int that can be used to
// perform math comparisons.
func HashToBig(hash *chainhash.Hash) *big.Int {
	// A Hash is in little-endian, but the big package wants the bytes in
	// big-endian, so reverse them.
	buf := *hash
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}

	return new(big.Int).SetBytes(buf[:])
}

// CompactToBig converts a compact representation of a whole number N to an
// unsigned 32-bit number.  The representation is similar to IEEE754 floating
// point numbers.
//
//	-------------------------------------------------
//	|   Exponent     |    Mantissa                  |
//	-------------------------------------------------
//	| 8 bits [31-24] | 24 bits [23-00]              |
//	-------------------------------------------------
//
// The formula to calculate N is:
//
//	N = mantissa * 256^(exponent-3)
//
// Unlike the bitcoin encoding all 24 mantissa bits are magnitude, there is no
// sign bit.  Exponents below 3 shift the mantissa right, dropping the low
// bytes.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x00ffffff
	exponent := uint(compact >> 24)

	bn := new(big.Int).SetUint64(uint64(mantissa))
	if exponent <= 3 {
		return bn.Rsh(bn, 8*(3-exponent))
	}
	return bn.Lsh(bn, 8*(exponent-3))
}

// CalcWork calculates a work value from difficulty bits.  The work is the
// expected number of hashes needed to find a block at the target,
// 2^256 / (target+1).  A zero target yields zero work.
func CalcWork(bits uint32) *big.Int {
	difficultyNum := CompactToBig(bits)
	if difficultyNum.Sign() <= 0 {
		return big.NewInt(0)
	}

	denominator := new(big.Int).Add(difficultyNum, bigOne)
	return new(big.Int).Div(oneLsh256, denominator)
}

// CheckProofOfWorkHash reports whether hash, read as a big-endian number,
// is less than or equal to the target encoded by bits.
func CheckProofOfWorkHash(hash *chainhash.Hash, bits uint32) bool {
	return HashToBig(hash).Cmp(CompactToBig(bits)) <= 0
}

// CalcDifficulty returns the difficulty of bits relative to refBits as a
// decimal string with eight fractional digits.  The division is done on
// integers scaled by 10^8, so large ratios keep full precision.  A zero
// target yields "0.00000000".
func CalcDifficulty(refBits, bits uint32) string {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return "0." + strings.Repeat("0", difficultyPrecision)
	}

	num := new(big.Int).Mul(CompactToBig(refBits), difficultyScale)
	digits := num.Div(num, target).String()

	// Keep at least one integral digit.
	if len(digits) <= difficultyPrecision {
		digits = strings.Repeat("0", difficultyPrecision+1-len(digits)) + digits
	}

	point := len(digits) - difficultyPrecision
	return digits[:point] + "." + digits[point:]
}
