// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Uint256Size is the size of the array used to store 256-bit values.
const Uint256Size = 32

// Uint256 holds a transaction or block hash. Like Uint160 the bytes are
// kept in hash order and String renders the byte-reversed display form.
type Uint256 [Uint256Size]byte

// String returns the Uint256 as the hexadecimal string of the byte-reversed
// value.
func (u Uint256) String() string {
	for i := 0; i < Uint256Size/2; i++ {
		u[i], u[Uint256Size-1-i] = u[Uint256Size-1-i], u[i]
	}
	return hex.EncodeToString(u[:])
}

// Bytes returns a copy of the bytes in hash order.
func (u Uint256) Bytes() []byte {
	b := make([]byte, Uint256Size)
	copy(b, u[:])
	return b
}

// SetBytes sets the bytes which represent the value. An error is returned if
// the number of bytes passed in is not Uint256Size.
func (u *Uint256) SetBytes(newVal []byte) error {
	if len(newVal) != Uint256Size {
		return errors.Errorf("invalid Uint256 length of %d, want %d",
			len(newVal), Uint256Size)
	}
	copy(u[:], newVal)
	return nil
}

// Uint256FromBytes returns a Uint256 from a byte slice in hash order. An
// error is returned if the slice is not Uint256Size bytes long.
func Uint256FromBytes(b []byte) (Uint256, error) {
	var u Uint256
	err := u.SetBytes(b)
	return u, err
}

// Uint256FromString returns a Uint256 from a hexadecimal string in display
// (byte-reversed) order. A 0x prefix is allowed.
func Uint256FromString(s string) (Uint256, error) {
	var u Uint256
	s = strings.TrimPrefix(s, "0x")
	if len(s) != hex.EncodedLen(Uint256Size) {
		return u, errors.Errorf("invalid Uint256 string length of %d, want %d",
			len(s), hex.EncodedLen(Uint256Size))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, errors.Wrap(err, "invalid Uint256 string")
	}
	for i, bv := range b {
		u[Uint256Size-1-i] = bv
	}
	return u, nil
}

// MarshalJSON encodes the value as its 0x-prefixed display string.
func (u Uint256) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + u.String())
}

// UnmarshalJSON decodes a 0x-prefixed or bare display string.
func (u *Uint256) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.WithStack(err)
	}
	decoded, err := Uint256FromString(s)
	if err != nil {
		return err
	}
	*u = decoded
	return nil
}
