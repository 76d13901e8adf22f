// Copyright (c) 2013, 2014 The btcsuite developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package exccutil

import (
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExelsPerCoin is the number of exels in one coin (1 EXCC).
const ExelsPerCoin = 1e8

var (
	// ErrUnknownUnitCode is returned for a unit code that is not in the
	// unit table.
	ErrUnknownUnitCode = errors.New("unknown unit code")

	// ErrInvalidRate is returned for an exchange rate that is not positive.
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrInvalidAmount is returned for an amount that cannot be
	// represented as an integer number of exels.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Unit is the code of a monetary unit.
type Unit string

// These constants define the units used when describing an ExchangeCoin
// monetary amount.
const (
	UnitEXCC      Unit = "EXCC"
	UnitMilliEXCC Unit = "mEXCC"
	UnitMicroEXCC Unit = "uEXCC"
	UnitBits      Unit = "bits"
	UnitDbits     Unit = "dbits"
	UnitExels     Unit = "exels"
)

type unitInfo struct {
	factor   float64
	decimals int
}

var units = map[Unit]unitInfo{
	UnitEXCC:      {1e8, 8},
	UnitMilliEXCC: {1e5, 5},
	UnitMicroEXCC: {1e2, 2},
	UnitBits:      {1e2, 2},
	UnitDbits:     {1e2, 2},
	UnitExels:     {1, 0},
}

// Units returns the known unit codes from the largest to the smallest.
func Units() []Unit {
	return []Unit{UnitEXCC, UnitMilliEXCC, UnitMicroEXCC, UnitBits, UnitDbits, UnitExels}
}

// ParseUnit returns the unit with the given code.  Codes are case-sensitive:
// "mEXCC" and "EXCC" are different units.
func ParseUnit(code string) (Unit, error) {
	u := Unit(code)
	if _, ok := units[u]; !ok {
		return "", errors.Wrapf(ErrUnknownUnitCode, "%q", code)
	}
	return u, nil
}

// Decimals returns the number of fractional digits the unit is rendered
// with.
func (u Unit) Decimals() int {
	return units[u].decimals
}

func (u Unit) info() (unitInfo, error) {
	info, ok := units[u]
	if !ok {
		return unitInfo{}, errors.Wrapf(ErrUnknownUnitCode, "%q", string(u))
	}
	return info, nil
}

// Amount represents the base ExchangeCoin monetary unit, the exel.  A single
// Amount is equal to 1e-8 of an EXCC.
type Amount int64

// round converts a floating point number, which may or may not be representable
// as an integer, to the Amount integer type by rounding to the nearest integer.
// Halves are rounded away from zero.
func round(f float64) Amount {
	return Amount(math.Round(f))
}

// toFixed rounds f to the given number of fractional digits.  Halves are
// rounded away from zero, so 0.125 becomes 0.13.
func toFixed(f float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(f*scale) / scale
}

// NewAmount creates an Amount from a floating point value counted in the
// given unit.  NewAmount errors if f is NaN or +-Infinity or the unit is not
// known.
func NewAmount(f float64, u Unit) (Amount, error) {
	info, err := u.info()
	if err != nil {
		return 0, err
	}

	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0, errors.Wrapf(ErrInvalidAmount, "%v", f)
	}

	return round(f * info.factor), nil
}

// FromFiat creates an Amount from a fiat value and the EXCC/fiat exchange
// rate.
func FromFiat(value, rate float64) (Amount, error) {
	if !(rate > 0) {
		return 0, errors.Wrapf(ErrInvalidRate, "%v", rate)
	}
	return NewAmount(value/rate, UnitEXCC)
}

// To converts the amount to the given unit, rounded to the unit's decimals.
func (a Amount) To(u Unit) (float64, error) {
	info, err := u.info()
	if err != nil {
		return 0, err
	}
	return toFixed(float64(a)/info.factor, info.decimals), nil
}

// ToEXCC is the equivalent of calling To with UnitEXCC.
func (a Amount) ToEXCC() float64 {
	return toFixed(float64(a)/ExelsPerCoin, units[UnitEXCC].decimals)
}

// ToMilli is the equivalent of calling To with UnitMilliEXCC.
func (a Amount) ToMilli() float64 {
	v, _ := a.To(UnitMilliEXCC)
	return v
}

// ToDbits is the equivalent of calling To with UnitDbits.
func (a Amount) ToDbits() float64 {
	v, _ := a.To(UnitDbits)
	return v
}

// ToExels returns the amount as a plain number of exels.
func (a Amount) ToExels() int64 {
	return int64(a)
}

// AtRate returns the fiat value of the amount for the given EXCC/fiat
// exchange rate, rounded to two decimals.
func (a Amount) AtRate(rate float64) (float64, error) {
	if !(rate > 0) {
		return 0, errors.Wrapf(ErrInvalidRate, "%v", rate)
	}
	return toFixed(a.ToEXCC()*rate, 2), nil
}

// Format formats the amount as a string for a given unit, followed by the
// unit code.
func (a Amount) Format(u Unit) (string, error) {
	v, err := a.To(u)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + string(u), nil
}

// String returns the amount in exels, e.g. "130000000 exels".
func (a Amount) String() string {
	return strconv.FormatInt(int64(a), 10) + " " + string(UnitExels)
}

// Inspect returns the console form of the amount.
func (a Amount) Inspect() string {
	return "<Unit: " + a.String() + ">"
}

type amountObject struct {
	Amount float64 `json:"amount"`
	Code   string  `json:"code"`
}

// MarshalJSON renders the amount as {"amount": <EXCC>, "code": "EXCC"}.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountObject{Amount: a.ToEXCC(), Code: string(UnitEXCC)})
}

// UnmarshalJSON reads an {"amount", "code"} object in any known unit.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var obj amountObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.Wrap(err, "amount must be an object with amount and code")
	}
	u, err := ParseUnit(obj.Code)
	if err != nil {
		return err
	}
	v, err := NewAmount(obj.Amount, u)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
