// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/neonetwork/neosdk/util"
	"github.com/pkg/errors"
)

func TestAddressRoundTrip(t *testing.T) {
	rawHash := util.Uint160{
		0x09, 0xa5, 0x58, 0x74, 0xc2, 0xda, 0x4b, 0x86, 0xe5, 0xd4,
		0x9f, 0xf5, 0x30, 0xa1, 0xb1, 0x53, 0xeb, 0x12, 0xc7, 0xd6,
	}
	const address = "NLnyLtep7jwyq1qhNPkwXbJpurC4jUT8ke"

	if got := util.EncodeAddress(rawHash); got != address {
		t.Fatalf("EncodeAddress: got %s, want %s", got, address)
	}

	decoded, err := util.DecodeAddress(address)
	if err != nil {
		t.Fatalf("DecodeAddress: %s", err)
	}
	if decoded != rawHash {
		t.Errorf("DecodeAddress: got %x, want %x", decoded, rawHash)
	}

	// The display string reverses the raw hash order.
	if got, want := decoded.String(), "d6c712eb53b1a130f59fd4e5864bdac27458a509"; got != want {
		t.Errorf("String: got %s, want %s", got, want)
	}
}

func TestDecodeAddressRejects(t *testing.T) {
	tests := []struct {
		name string
		addr string
	}{
		{"empty", ""},
		{"not base58", "NLnyLtep7jwyq1qhNPkwXbJpurC4jU0000"},
		{"bad checksum", "NLnyLtep7jwyq1qhNPkwXbJpurC4jUT8kf"},
		// Same payload encoded with the version byte 0x00.
		{"foreign version", "1t1A8rYVBPYV3T75A73pwt8Z7Y53Wpg3b"},
		{"truncated payload", "NLnyLtep7jwy"},
	}

	for _, test := range tests {
		_, err := util.DecodeAddress(test.addr)
		if !errors.Is(err, util.ErrInvalidAddress) {
			t.Errorf("%s: DecodeAddress(%q) = %v, want ErrInvalidAddress",
				test.name, test.addr, err)
		}
	}
}
