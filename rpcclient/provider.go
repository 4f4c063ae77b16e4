// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/contract"
	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/transaction"
	"github.com/neonetwork/neosdk/util"
)

// Client implements the transaction builder's chain state provider.
var _ transaction.Provider = (*Client)(nil)

// NetworkMagic returns the magic of the network the node runs on,
// taken from getversion and cached for the lifetime of the client.
func (c *Client) NetworkMagic() (netparams.Magic, error) {
	c.magicMutex.Lock()
	defer c.magicMutex.Unlock()

	if c.magicCached {
		return c.magic, nil
	}

	version, err := c.GetVersion()
	if err != nil {
		return 0, err
	}
	c.magic = version.Protocol.Network
	c.magicCached = true
	log.Debugf("node %s reports network magic %#x", c.endpoint, uint32(c.magic))
	return c.magic, nil
}

// BlockCount returns the current chain height.
func (c *Client) BlockCount() (uint32, error) {
	return c.GetBlockCount()
}

// Committee returns the public keys of the current committee members.
func (c *Client) Committee() (keys.PublicKeys, error) {
	return c.GetCommittee()
}

// SystemFee returns the execution cost of the script, measured by a
// test invocation under the given signers.
func (c *Client) SystemFee(script []byte, signers []transaction.Signer) (int64, error) {
	result, err := c.InvokeScript(script, signers)
	if err != nil {
		return 0, err
	}
	if err := faultedInvocation(result, "fee estimation"); err != nil {
		return 0, err
	}

	fee, err := result.GasConsumed.Int64()
	if err != nil {
		return 0, errors.Wrap(err, "malformed gasconsumed in response")
	}
	return fee, nil
}

// NetworkFee returns the network fee the node requires for the passed
// serialized transaction.
func (c *Client) NetworkFee(rawTransaction []byte) (int64, error) {
	return c.CalculateNetworkFee(rawTransaction)
}

// GasBalance returns the account's GAS balance in the token's smallest
// unit, read from the native GAS contract.
func (c *Client) GasBalance(account util.Uint160) (int64, error) {
	result, err := c.InvokeFunction(contract.GasToken, "balanceOf",
		[]contract.Parameter{contract.Hash160Param(account)}, nil)
	if err != nil {
		return 0, err
	}
	if err := faultedInvocation(result, "balanceOf"); err != nil {
		return 0, err
	}
	if len(result.Stack) == 0 {
		return 0, errors.Errorf("balanceOf returned an empty stack")
	}
	return result.Stack[len(result.Stack)-1].Int()
}

// faultedInvocation turns a non-HALT invocation outcome into an error
// carrying the VM exception when the node reported one.
func faultedInvocation(result *InvocationResult, what string) error {
	if result.State == "HALT" {
		return nil
	}
	if result.Exception != "" {
		return errors.Errorf("%s ended in state %s: %s",
			what, result.State, result.Exception)
	}
	return errors.Errorf("%s ended in state %s", what, result.State)
}
