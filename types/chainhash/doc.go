// Copyright (c) 2020 The JaxNetwork developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides abstracted hash functionality.
//
// This package provides a generic hash type and associated functions that
// allows the specific hash algorithm to be abstracted. Block headers are
// identified by a single round of SHA-256 over their canonical encoding.
//
// Hashes are kept in the byte order they have on the wire. The text form is
// the byte-reversed (big-endian) hex string, which is how block explorers and
// RPC servers display them.
package chainhash
