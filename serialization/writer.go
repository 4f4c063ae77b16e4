// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Writer accumulates serialized fields in a growable in-memory buffer.
// The zero value is ready to use, though NewWriter preallocates a small
// buffer which avoids growth churn for typical transaction sizes.
type Writer struct {
	buf []byte
}

// initialWriterSize is the capacity NewWriter preallocates.  Most scripts
// and transactions produced by this module fit without further growth.
const initialWriterSize = 512

// NewWriter returns a Writer with a preallocated buffer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, initialWriterSize)}
}

// Bytes returns the serialized bytes accumulated so far.  The returned
// slice aliases the internal buffer and is only valid until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset truncates the buffer so the Writer can be reused.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(val uint8) {
	w.buf = append(w.buf, val)
}

// WriteUint16 appends val as a little-endian uint16.
func (w *Writer) WriteUint16(val uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, val)
}

// WriteUint32 appends val as a little-endian uint32.
func (w *Writer) WriteUint32(val uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, val)
}

// WriteUint64 appends val as a little-endian uint64.
func (w *Writer) WriteUint64(val uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, val)
}

// WriteInt64 appends val as a little-endian two's complement int64.
func (w *Writer) WriteInt64(val int64) {
	w.WriteUint64(uint64(val))
}

// WriteBool appends a boolean as a single byte, 0x01 for true and 0x00 for
// false.
func (w *Writer) WriteBool(val bool) {
	if val {
		w.WriteUint8(0x01)
		return
	}
	w.WriteUint8(0x00)
}

// WriteBytes appends raw bytes with no length prefix.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteVarInt appends val using the canonical compact-size encoding.
func (w *Writer) WriteVarInt(val uint64) {
	switch {
	case val < varIntMarkerUint16:
		w.WriteUint8(uint8(val))

	case val <= maxUint16:
		w.WriteUint8(varIntMarkerUint16)
		w.WriteUint16(uint16(val))

	case val <= maxUint32:
		w.WriteUint8(varIntMarkerUint32)
		w.WriteUint32(uint32(val))

	default:
		w.WriteUint8(varIntMarkerUint64)
		w.WriteUint64(val)
	}
}

// WriteVarBytes appends a compact-size length followed by the bytes
// themselves.
func (w *Writer) WriteVarBytes(b []byte) {
	w.WriteVarInt(uint64(len(b)))
	w.WriteBytes(b)
}

// WriteVarString appends a compact-size length followed by the string
// bytes.
func (w *Writer) WriteVarString(s string) {
	w.WriteVarInt(uint64(len(s)))
	w.WriteBytes([]byte(s))
}

// WriteFixedString appends exactly width bytes: the string bytes followed
// by zero padding.  An error is returned when the string does not fit.
func (w *Writer) WriteFixedString(s string, width int) error {
	if len(s) > width {
		return errors.Errorf("string of length %d exceeds fixed width %d",
			len(s), width)
	}
	w.WriteBytes([]byte(s))
	for i := len(s); i < width; i++ {
		w.WriteUint8(0x00)
	}
	return nil
}
