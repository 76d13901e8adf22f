// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaindata

import (
	"fmt"

	"gitlab.com/exccoin/exccore/node/metrics"
	"gitlab.com/exccoin/exccore/types/chaincfg"
	"gitlab.com/exccoin/exccore/types/pow"
	"gitlab.com/exccoin/exccore/types/wire"
)

// BehaviorFlags is a bitmask defining tweaks to the normal behavior when
// performing header checks.
type BehaviorFlags uint32

const (
	// BFNoPoWCheck may be set to indicate the proof of work check which
	// ensures a block hashes to a value less than the required target will
	// not be performed.
	BFNoPoWCheck BehaviorFlags = 1 << iota

	// BFNone is a convenience value to specifically indicate no flags.
	BFNone BehaviorFlags = 0
)

// checkProofOfWork ensures the block header bits which indicate the target
// difficulty is in min/max range and that the block hash is less than the
// target difficulty as claimed.
//
// The flags modify the behavior of this function as follows:
//  - BFNoPoWCheck: The check to ensure the block hash is less than the target
//    difficulty is not performed.
func checkProofOfWork(header *wire.BlockHeader, params *chaincfg.Params, flags BehaviorFlags) error {
	// The target difficulty must be larger than zero.
	target := header.TargetDifficulty()
	if target.Sign() <= 0 {
		str := fmt.Sprintf("block target difficulty of %064x is too low", target)
		return NewRuleError(ErrUnexpectedDifficulty, str)
	}

	// The target difficulty must be less than the maximum allowed.
	if target.Cmp(params.PowLimit) > 0 {
		str := fmt.Sprintf("block target difficulty of %064x is higher than max of %064x",
			target, params.PowLimit)
		return NewRuleError(ErrUnexpectedDifficulty, str)
	}

	if flags&BFNoPoWCheck != BFNoPoWCheck && !header.ValidProofOfWork() {
		hash := header.BlockHash()
		str := fmt.Sprintf("block hash of %064x is higher than expected max of %064x",
			pow.HashToBig(&hash), target)
		return NewRuleError(ErrHighHash, str)
	}

	return nil
}

// CheckBlockHeaderSanity performs context free checks on a block header:
// the target must be positive and within the network's proof of work limit,
// the header must hash below its target and the timestamp must not be more
// than two hours ahead of the time source.
func CheckBlockHeaderSanity(header *wire.BlockHeader, params *chaincfg.Params, timeSource TimeSource, flags BehaviorFlags) error {
	err := checkProofOfWork(header, params, flags)
	if err != nil {
		return err
	}

	// Ensure the block time is not too far in the future.
	if !header.ValidTimestampAt(timeSource.Now()) {
		str := fmt.Sprintf("block timestamp of %v is too far in the future",
			header.Timestamp())
		return NewRuleError(ErrTimeTooNew, str)
	}

	return nil
}

// HeaderValidator runs CheckBlockHeaderSanity for one network and records the
// outcome of every check.
type HeaderValidator struct {
	params     *chaincfg.Params
	timeSource TimeSource
	metrics    *metrics.HeaderMetrics
}

// NewHeaderValidator returns a validator for the given network.  A nil
// timeSource falls back to the local clock and a nil m disables metrics.
func NewHeaderValidator(params *chaincfg.Params, timeSource TimeSource, m *metrics.HeaderMetrics) *HeaderValidator {
	if timeSource == nil {
		timeSource = NewTimeSource()
	}
	return &HeaderValidator{params: params, timeSource: timeSource, metrics: m}
}

// Params returns the network the validator checks against.
func (v *HeaderValidator) Params() *chaincfg.Params {
	return v.params
}

// Validate checks the header and reports the result to the metrics.
func (v *HeaderValidator) Validate(header *wire.BlockHeader, flags BehaviorFlags) error {
	err := CheckBlockHeaderSanity(header, v.params, v.timeSource, flags)
	if err == nil {
		v.metrics.Valid()
		log.Trace().Str("hash", header.ID()).Uint32("height", header.Height()).Msg("header passed sanity checks")
		return nil
	}

	reason := "unknown"
	if ruleErr, ok := err.(RuleError); ok {
		reason = ruleErr.ErrorCode.String()
	}
	v.metrics.Rejected(reason)
	log.Debug().Str("hash", header.ID()).Str("network", v.params.Name).Str("reason", reason).
		Msg(err.Error())
	return err
}
