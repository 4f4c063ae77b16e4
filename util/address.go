// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// AddressVersion is the version byte prepended to a script hash when it is
// rendered as an address. Every public network shares it, which is why
// addresses all start with the letter N.
const AddressVersion byte = 0x35

// ErrInvalidAddress describes an address that is not base58check over a
// 20-byte script hash with the expected version byte.
var ErrInvalidAddress = errors.New("invalid address")

// EncodeAddress converts a script hash to its base58check address form.
// The checksum is the first four bytes of the double-SHA256 of the version
// byte followed by the hash.
func EncodeAddress(hash Uint160) string {
	return base58.CheckEncode(hash.Bytes(), AddressVersion)
}

// DecodeAddress converts an address back to the script hash it encodes.
// The checksum and the version byte are both verified.
func DecodeAddress(addr string) (Uint160, error) {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return Uint160{}, errors.Wrapf(ErrInvalidAddress, "%q: %v", addr, err)
	}
	if version != AddressVersion {
		return Uint160{}, errors.Wrapf(ErrInvalidAddress,
			"%q: version byte %#x, want %#x", addr, version, AddressVersion)
	}
	hash, err := Uint160FromBytes(payload)
	if err != nil {
		return Uint160{}, errors.Wrapf(ErrInvalidAddress, "%q: %v", addr, err)
	}
	return hash, nil
}
