// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
)

// ByteReader is a sequential little-endian reader over an immutable byte
// buffer.  Every typed read either consumes exactly its width or fails with
// ErrOutOfBounds leaving the cursor where it was.
type ByteReader struct {
	buf []byte
	pos int
}

// NewByteReader returns a reader positioned at the start of buf.  The buffer
// is not copied and must not be modified while the reader is in use.
func NewByteReader(buf []byte) *ByteReader {
	return &ByteReader{buf: buf}
}

// Pos returns the current cursor position.
func (r *ByteReader) Pos() int { return r.pos }

// Len returns the number of unread bytes.
func (r *ByteReader) Len() int { return len(r.buf) - r.pos }

// Seek moves the cursor to an absolute position.
func (r *ByteReader) Seek(pos int) error {
	if pos < 0 || pos > len(r.buf) {
		str := fmt.Sprintf("position %d outside buffer of %d bytes", pos, len(r.buf))
		return messageError("ByteReader.Seek", ErrOutOfBounds, str)
	}
	r.pos = pos
	return nil
}

// Read implements io.Reader.
func (r *ByteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.buf) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}

// next returns the next n bytes without copying and advances the cursor.
func (r *ByteReader) next(f string, n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		str := fmt.Sprintf("need %d bytes at position %d, have %d", n, r.pos, r.Len())
		return nil, messageError(f, ErrOutOfBounds, str)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadBytes returns a copy of the next n bytes.
func (r *ByteReader) ReadBytes(n int) ([]byte, error) {
	b, err := r.next("ByteReader.ReadBytes", n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// ReadUint8 reads one byte.
func (r *ByteReader) ReadUint8() (uint8, error) {
	b, err := r.next("ByteReader.ReadUint8", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt8 reads one byte as a signed value.
func (r *ByteReader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads a little-endian uint16.
func (r *ByteReader) ReadUint16() (uint16, error) {
	b, err := r.next("ByteReader.ReadUint16", 2)
	if err != nil {
		return 0, err
	}
	return littleEndian.Uint16(b), nil
}

// ReadInt16 reads a little-endian int16.
func (r *ByteReader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a little-endian uint32.
func (r *ByteReader) ReadUint32() (uint32, error) {
	b, err := r.next("ByteReader.ReadUint32", 4)
	if err != nil {
		return 0, err
	}
	return littleEndian.Uint32(b), nil
}

// ReadInt32 reads a little-endian int32.
func (r *ByteReader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a little-endian uint64.
func (r *ByteReader) ReadUint64() (uint64, error) {
	b, err := r.next("ByteReader.ReadUint64", 8)
	if err != nil {
		return 0, err
	}
	return littleEndian.Uint64(b), nil
}

// ReadInt64 reads a little-endian int64.
func (r *ByteReader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ByteWriter appends little-endian primitives to a growable buffer.
type ByteWriter struct {
	buf bytes.Buffer
}

// NewByteWriter returns a writer with room for size bytes preallocated.
func NewByteWriter(size int) *ByteWriter {
	w := &ByteWriter{}
	w.buf.Grow(size)
	return w
}

// Write implements io.Writer.  It never fails.
func (w *ByteWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *ByteWriter) WriteUint8(v uint8) { w.buf.WriteByte(v) }
func (w *ByteWriter) WriteInt8(v int8)   { w.buf.WriteByte(byte(v)) }

func (w *ByteWriter) WriteUint16(v uint16) {
	var b [2]byte
	littleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *ByteWriter) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }

func (w *ByteWriter) WriteUint32(v uint32) {
	var b [4]byte
	littleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *ByteWriter) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

func (w *ByteWriter) WriteUint64(v uint64) {
	var b [8]byte
	littleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *ByteWriter) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

// Len returns the number of bytes written so far.
func (w *ByteWriter) Len() int { return w.buf.Len() }

// Bytes returns the concatenated buffer.  The slice aliases the writer's
// storage until the next write.
func (w *ByteWriter) Bytes() []byte { return w.buf.Bytes() }
