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

// Uint160Size is the size of the array used to store 160-bit values.
const Uint160Size = 20

// Uint160 identifies an account or contract. It is the RIPEMD160-SHA256
// hash of a verification script or of contract deployment data. The bytes
// are kept in the order the hash function produced them, which is also the
// order used on the wire and inside addresses; String reverses them,
// matching the customary display form.
type Uint160 [Uint160Size]byte

// String returns the Uint160 as the hexadecimal string of the byte-reversed
// value.
func (u Uint160) String() string {
	for i := 0; i < Uint160Size/2; i++ {
		u[i], u[Uint160Size-1-i] = u[Uint160Size-1-i], u[i]
	}
	return hex.EncodeToString(u[:])
}

// Bytes returns a copy of the bytes in hash order.
func (u Uint160) Bytes() []byte {
	b := make([]byte, Uint160Size)
	copy(b, u[:])
	return b
}

// SetBytes sets the bytes which represent the value. An error is returned if
// the number of bytes passed in is not Uint160Size.
func (u *Uint160) SetBytes(newVal []byte) error {
	if len(newVal) != Uint160Size {
		return errors.Errorf("invalid Uint160 length of %d, want %d",
			len(newVal), Uint160Size)
	}
	copy(u[:], newVal)
	return nil
}

// Uint160FromBytes returns a Uint160 from a byte slice in hash order. An
// error is returned if the slice is not Uint160Size bytes long.
func Uint160FromBytes(b []byte) (Uint160, error) {
	var u Uint160
	err := u.SetBytes(b)
	return u, err
}

// Uint160FromString returns a Uint160 from a hexadecimal string in display
// (byte-reversed) order. A 0x prefix is allowed.
func Uint160FromString(s string) (Uint160, error) {
	var u Uint160
	s = strings.TrimPrefix(s, "0x")
	if len(s) != hex.EncodedLen(Uint160Size) {
		return u, errors.Errorf("invalid Uint160 string length of %d, want %d",
			len(s), hex.EncodedLen(Uint160Size))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, errors.Wrap(err, "invalid Uint160 string")
	}
	for i, bv := range b {
		u[Uint160Size-1-i] = bv
	}
	return u, nil
}

// MarshalJSON encodes the value as its 0x-prefixed display string.
func (u Uint160) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + u.String())
}

// UnmarshalJSON decodes a 0x-prefixed or bare display string.
func (u *Uint160) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.WithStack(err)
	}
	decoded, err := Uint160FromString(s)
	if err != nil {
		return err
	}
	*u = decoded
	return nil
}
