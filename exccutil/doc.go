// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package exccutil provides conversions between the monetary units of
ExchangeCoin.

An Amount is counted in exels, the smallest unit.  One EXCC is 1e8 exels.
Amounts can be built from any known unit or from a fiat value and an
EXCC/fiat exchange rate, and rendered back in any known unit:

	amt, _ := exccutil.NewAmount(1.3, exccutil.UnitEXCC)
	milli, _ := amt.To(exccutil.UnitMilliEXCC) // 1300
	fmt.Println(amt)                            // 130000000 exels
*/
package exccutil
