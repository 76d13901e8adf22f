// Copyright (c) 2020 The JaxNetwork developers
// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gitlab.com/exccoin/exccore/types/chainhash"
)

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	// Attempt to read the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case *uint8:
		rv, err := BinarySerializer.Uint8(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *uint16:
		rv, err := BinarySerializer.Uint16(r, littleEndian)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *int16:
		rv, err := BinarySerializer.Uint16(r, littleEndian)
		if err != nil {
			return err
		}
		*e = int16(rv)
		return nil

	case *int32:
		rv, err := BinarySerializer.Uint32(r, littleEndian)
		if err != nil {
			return err
		}
		*e = int32(rv)
		return nil

	case *uint32:
		rv, err := BinarySerializer.Uint32(r, littleEndian)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *int64:
		rv, err := BinarySerializer.Uint64(r, littleEndian)
		if err != nil {
			return err
		}
		*e = int64(rv)
		return nil

	case *uint64:
		rv, err := BinarySerializer.Uint64(r, littleEndian)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *CurrencyNet:
		rv, err := BinarySerializer.Uint32(r, littleEndian)
		if err != nil {
			return err
		}
		*e = CurrencyNet(rv)
		return nil

	case *chainhash.Hash:
		_, err := io.ReadFull(r, e[:])
		return err

	case *FinalState:
		_, err := io.ReadFull(r, e[:])
		return err

	case *ExtraData:
		_, err := io.ReadFull(r, e[:])
		return err

	case *EquihashSolution:
		_, err := io.ReadFull(r, e[:])
		return err
	}

	// Fall back to the slower binary.Read if a fast path was not available
	// above.
	return binary.Read(r, littleEndian, element)
}

// ReadElements reads multiple items from r.  It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	// Attempt to write the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case uint8:
		return BinarySerializer.PutUint8(w, e)

	case uint16:
		return BinarySerializer.PutUint16(w, littleEndian, e)

	case int16:
		return BinarySerializer.PutUint16(w, littleEndian, uint16(e))

	case int32:
		return BinarySerializer.PutUint32(w, littleEndian, uint32(e))

	case uint32:
		return BinarySerializer.PutUint32(w, littleEndian, e)

	case int64:
		return BinarySerializer.PutUint64(w, littleEndian, uint64(e))

	case uint64:
		return BinarySerializer.PutUint64(w, littleEndian, e)

	case CurrencyNet:
		return BinarySerializer.PutUint32(w, littleEndian, uint32(e))

	case *chainhash.Hash:
		_, err := w.Write(e[:])
		return err

	case *FinalState:
		_, err := w.Write(e[:])
		return err

	case *ExtraData:
		_, err := w.Write(e[:])
		return err

	case *EquihashSolution:
		_, err := w.Write(e[:])
		return err
	}

	// Fall back to the slower binary.Write if a fast path was not available
	// above.
	return binary.Write(w, littleEndian, element)
}

// WriteElements writes multiple items to w.  It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// readError converts a short read into ErrOutOfBounds and wraps anything else.
func readError(f string, want int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		str := fmt.Sprintf("buffer too short for %d byte header", want)
		return messageError(f, ErrOutOfBounds, str)
	}
	return errors.Wrap(err, f)
}
