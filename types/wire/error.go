// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
)

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

const (
	// ErrUnrecognizedInput indicates the input is neither a serialized
	// header, a hex string nor a field map.
	ErrUnrecognizedInput = ErrorKind("ErrUnrecognizedInput")

	// ErrMalformedInput indicates the input has the right shape but its
	// content cannot be decoded, e.g. invalid hex or a field of the wrong
	// length.
	ErrMalformedInput = ErrorKind("ErrMalformedInput")

	// ErrOutOfBounds indicates fewer bytes remain than the fixed layout
	// requires.
	ErrOutOfBounds = ErrorKind("ErrOutOfBounds")

	// ErrHashMismatch indicates a supplied hash disagrees with the hash
	// derived from the header fields.
	ErrHashMismatch = ErrorKind("ErrHashMismatch")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// MessageError describes an issue with a serialized header or one of its
// textual forms.
//
// This provides a mechanism for the caller to type assert the error to
// differentiate between general io errors and issues that resulted from
// malformed input.  Use errors.Is with one of the ErrorKind values to find the
// reason.
type MessageError struct {
	Func        string // Function name
	Err         error  // Underlying error kind
	Description string // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e MessageError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%v: %v", e.Func, e.Description)
	}
	return e.Description
}

// Unwrap returns the underlying wrapped error kind.
func (e MessageError) Unwrap() error {
	return e.Err
}

// messageError creates an error for the given function, kind and description.
func messageError(f string, kind ErrorKind, desc string) MessageError {
	return MessageError{Func: f, Err: kind, Description: desc}
}
