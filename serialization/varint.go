// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package serialization

const (
	// varIntMarkerUint16 is the discriminant byte announcing a uint16
	// compact-size payload.  Values below it are encoded directly in the
	// discriminant position.
	varIntMarkerUint16 = 0xfd

	// varIntMarkerUint32 is the discriminant byte announcing a uint32
	// compact-size payload.
	varIntMarkerUint32 = 0xfe

	// varIntMarkerUint64 is the discriminant byte announcing a uint64
	// compact-size payload.
	varIntMarkerUint64 = 0xff

	maxUint16 = 1<<16 - 1
	maxUint32 = 1<<32 - 1
)

// VarIntSerializeSize returns the number of bytes it would take to
// serialize val as a compact-size variable length integer.
func VarIntSerializeSize(val uint64) int {
	switch {
	case val < varIntMarkerUint16:
		return 1
	case val <= maxUint16:
		return 3
	case val <= maxUint32:
		return 5
	default:
		return 9
	}
}

// VarBytesSerializeSize returns the number of bytes it would take to
// serialize b as a compact-size length prefix followed by the bytes.
func VarBytesSerializeSize(b []byte) int {
	return VarIntSerializeSize(uint64(len(b))) + len(b)
}
