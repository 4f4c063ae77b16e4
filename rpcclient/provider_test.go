// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"fmt"
	"strings"
	"testing"

	"github.com/neonetwork/neosdk/contract"
	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/transaction"
)

func TestNetworkMagic(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"getversion": testVersionResult,
	})

	for i := 0; i < 3; i++ {
		magic, err := client.NetworkMagic()
		if err != nil {
			t.Fatalf("NetworkMagic: unexpected error: %v", err)
		}
		if magic != netparams.MainnetParams.Net {
			t.Fatalf("got magic %#x, expected %#x",
				uint32(magic), uint32(netparams.MainnetParams.Net))
		}
	}

	if requests := node.requestsFor("getversion"); len(requests) != 1 {
		t.Fatalf("node saw %d getversion requests, expected the magic "+
			"to be cached after 1", len(requests))
	}
}

func TestSystemFee(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"invokescript": `{"script":"EUA=","state":"HALT",` +
			`"gasconsumed":"1017810","stack":[]}`,
	})

	signer, err := transaction.NewAccountSigner(
		testPrivateKey(t), transaction.CalledByEntry)
	if err != nil {
		t.Fatalf("NewAccountSigner: unexpected error: %v", err)
	}

	fee, err := client.SystemFee([]byte{0x11, 0x40},
		[]transaction.Signer{signer})
	if err != nil {
		t.Fatalf("SystemFee: unexpected error: %v", err)
	}
	if fee != 1017810 {
		t.Fatalf("got fee %d, expected 1017810", fee)
	}

	expectedParams := fmt.Sprintf(
		`["EUA=",[{"account":"0x%s","scopes":"CalledByEntry"}]]`,
		signer.Account())
	if params := node.lastParams(t, "invokescript"); params != expectedParams {
		t.Errorf("invokescript carried params %s, expected %s",
			params, expectedParams)
	}

	t.Run("faulted invocation", func(t *testing.T) {
		node.setResult("invokescript", `{"script":"EUA=","state":"FAULT",`+
			`"gasconsumed":"0",`+
			`"exception":"At instruction 0: divide by zero","stack":[]}`)

		_, err := client.SystemFee([]byte{0x11, 0x40}, nil)
		if err == nil {
			t.Fatal("expected an error for a faulted invocation")
		}
		if !strings.Contains(err.Error(), "FAULT") {
			t.Errorf("error %q does not name the VM state", err)
		}
		if !strings.Contains(err.Error(), "divide by zero") {
			t.Errorf("error %q does not carry the VM exception", err)
		}
	})

	t.Run("faulted without exception", func(t *testing.T) {
		node.setResult("invokescript", `{"script":"EUA=","state":"FAULT",`+
			`"gasconsumed":"0","stack":[]}`)

		_, err := client.SystemFee([]byte{0x11, 0x40}, nil)
		if err == nil {
			t.Fatal("expected an error for a faulted invocation")
		}
		if !strings.Contains(err.Error(), "FAULT") {
			t.Errorf("error %q does not name the VM state", err)
		}
	})
}

func TestGasBalance(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"invokefunction": `{"script":"","state":"HALT",` +
			`"gasconsumed":"203775",` +
			`"stack":[{"type":"Integer","value":"2350000000"}]}`,
	})

	account := testPrivateKey(t).ScriptHash()
	balance, err := client.GasBalance(account)
	if err != nil {
		t.Fatalf("GasBalance: unexpected error: %v", err)
	}
	if balance != 2350000000 {
		t.Fatalf("got balance %d, expected 2350000000", balance)
	}

	expectedParams := fmt.Sprintf(
		`["0x%s","balanceOf",[{"type":"Hash160","value":"0x%s"}]]`,
		contract.GasToken, account)
	if params := node.lastParams(t, "invokefunction"); params != expectedParams {
		t.Errorf("invokefunction carried params %s, expected %s",
			params, expectedParams)
	}

	t.Run("faulted invocation", func(t *testing.T) {
		node.setResult("invokefunction", `{"script":"","state":"FAULT",`+
			`"gasconsumed":"0","stack":[]}`)

		if _, err := client.GasBalance(account); err == nil {
			t.Fatal("expected an error for a faulted invocation")
		}
	})

	t.Run("empty stack", func(t *testing.T) {
		node.setResult("invokefunction", `{"script":"","state":"HALT",`+
			`"gasconsumed":"203775","stack":[]}`)

		_, err := client.GasBalance(account)
		if err == nil {
			t.Fatal("expected an error for an empty stack")
		}
		if !strings.Contains(err.Error(), "empty stack") {
			t.Errorf("error %q does not name the empty stack", err)
		}
	})
}

func TestProviderDelegates(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"getblockcount":       "99",
		"calculatenetworkfee": `{"networkfee":"55"}`,
		"getcommittee":        fmt.Sprintf(`[%q]`, testPublicKeyHex),
	})
	provider := transaction.Provider(client)

	count, err := provider.BlockCount()
	if err != nil {
		t.Fatalf("BlockCount: unexpected error: %v", err)
	}
	if count != 99 {
		t.Fatalf("got count %d, expected 99", count)
	}

	fee, err := provider.NetworkFee([]byte{0x00})
	if err != nil {
		t.Fatalf("NetworkFee: unexpected error: %v", err)
	}
	if fee != 55 {
		t.Fatalf("got fee %d, expected 55", fee)
	}

	committee, err := provider.Committee()
	if err != nil {
		t.Fatalf("Committee: unexpected error: %v", err)
	}
	if len(committee) != 1 || committee[0].String() != testPublicKeyHex {
		t.Fatalf("got committee %v", committee)
	}
}
