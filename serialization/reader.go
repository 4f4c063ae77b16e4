// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

var (
	// ErrShortBuffer is returned when a read would run past the end of
	// the underlying byte slice.
	ErrShortBuffer = errors.New("unexpected end of buffer")

	// ErrNonCanonicalVarInt is returned when a compact-size integer is
	// encoded with more bytes than necessary to represent its value.
	ErrNonCanonicalVarInt = errors.New("non-canonical compact-size integer")
)

// Reader decodes serialized fields from a borrowed byte slice.  It keeps an
// explicit cursor rather than wrapping the slice in an io stream so decoders
// can cheaply record a position with Mark and return to it with Reset.
type Reader struct {
	data   []byte
	offset int
	marker int
}

// NewReader returns a Reader positioned at the start of data.  The Reader
// borrows the slice and never modifies it.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.data) - r.offset
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.offset
}

// Mark records the current cursor position for a later Reset.
func (r *Reader) Mark() {
	r.marker = r.offset
}

// Reset moves the cursor back to the last marked position, or to the start
// of the slice if Mark was never called.
func (r *Reader) Reset() {
	r.offset = r.marker
}

// require fails with ErrShortBuffer unless at least n unread bytes remain.
func (r *Reader) require(n int) error {
	if r.Len() < n {
		return errors.Wrapf(ErrShortBuffer, "need %d bytes at offset %d, "+
			"have %d", n, r.offset, r.Len())
	}
	return nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	val := r.data[r.offset]
	r.offset++
	return val, nil
}

// ReadUint16 reads a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	val := binary.LittleEndian.Uint16(r.data[r.offset:])
	r.offset += 2
	return val, nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	val := binary.LittleEndian.Uint32(r.data[r.offset:])
	r.offset += 4
	return val, nil
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	val := binary.LittleEndian.Uint64(r.data[r.offset:])
	r.offset += 8
	return val, nil
}

// ReadInt64 reads a little-endian two's complement int64.
func (r *Reader) ReadInt64() (int64, error) {
	val, err := r.ReadUint64()
	return int64(val), err
}

// ReadBool reads a single byte and interprets any non-zero value as true.
func (r *Reader) ReadBool() (bool, error) {
	val, err := r.ReadUint8()
	if err != nil {
		return false, err
	}
	return val != 0x00, nil
}

// ReadBytes reads exactly n bytes and returns them as a fresh slice that
// does not alias the underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("negative read length %d", n)
	}
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, r.data[r.offset:])
	r.offset += n
	return b, nil
}

// ReadVarInt reads a compact-size variable length integer.
//
// A decoded value must have been encoded in the smallest representation
// capable of holding it, otherwise ErrNonCanonicalVarInt is returned.  This
// keeps the encoding one-to-one so serialized structures hash consistently.
func (r *Reader) ReadVarInt() (uint64, error) {
	discriminant, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}

	var val uint64
	switch discriminant {
	case varIntMarkerUint64:
		val, err = r.ReadUint64()
		if err != nil {
			return 0, err
		}

		// The encoding is not canonical if the value could have been
		// encoded with fewer bytes.
		if min := uint64(maxUint32) + 1; val < min {
			return 0, errors.Wrapf(ErrNonCanonicalVarInt,
				"value %d encoded with discriminant %#x must be at "+
					"least %d", val, discriminant, min)
		}

	case varIntMarkerUint32:
		val32, err := r.ReadUint32()
		if err != nil {
			return 0, err
		}
		val = uint64(val32)

		if min := uint64(maxUint16) + 1; val < min {
			return 0, errors.Wrapf(ErrNonCanonicalVarInt,
				"value %d encoded with discriminant %#x must be at "+
					"least %d", val, discriminant, min)
		}

	case varIntMarkerUint16:
		val16, err := r.ReadUint16()
		if err != nil {
			return 0, err
		}
		val = uint64(val16)

		if min := uint64(varIntMarkerUint16); val < min {
			return 0, errors.Wrapf(ErrNonCanonicalVarInt,
				"value %d encoded with discriminant %#x must be at "+
					"least %d", val, discriminant, min)
		}

	default:
		val = uint64(discriminant)
	}

	return val, nil
}

// ReadVarBytes reads a compact-size length followed by that many bytes.
// The count is bounded by maxAllowed so a corrupt length prefix cannot
// trigger an oversized allocation; fieldName names the field in the error.
func (r *Reader) ReadVarBytes(maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}

	if count > maxAllowed {
		return nil, errors.Errorf("%s length %d exceeds maximum %d",
			fieldName, count, maxAllowed)
	}

	return r.ReadBytes(int(count))
}

// ReadVarString reads a compact-size length followed by that many bytes
// interpreted as a string.
func (r *Reader) ReadVarString(maxAllowed uint64, fieldName string) (string, error) {
	b, err := r.ReadVarBytes(maxAllowed, fieldName)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadFixedString reads exactly width bytes and strips the trailing zero
// padding appended by WriteFixedString.
func (r *Reader) ReadFixedString(width int) (string, error) {
	b, err := r.ReadBytes(width)
	if err != nil {
		return "", err
	}
	end := len(b)
	for end > 0 && b[end-1] == 0x00 {
		end--
	}
	return string(b[:end]), nil
}
