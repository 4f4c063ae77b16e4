// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package serialization implements the byte-level encoding used by every wire
structure in this module.

All integers are encoded little-endian.  Variable-length quantities use the
compact-size convention: values below 0xfd occupy a single byte, larger
values are prefixed with a one byte discriminant (0xfd, 0xfe or 0xff)
followed by the value as a little-endian uint16, uint32 or uint64
respectively.  Decoding rejects non-canonically encoded values, meaning a
value must always be serialized in the smallest form capable of holding it.
This one-to-one property is what makes hashes of serialized structures
stable.

A Writer owns a growable in-memory buffer.  A Reader borrows a byte slice
and walks it with an explicit cursor; it never copies the input up front and
fails with ErrShortBuffer instead of panicking when a field runs past the
end of the slice.  The Mark/Reset pair allows bounded lookahead which the
script introspection code relies on.
*/
package serialization
