// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/util"
)

// GetVersion reflects the getversion command, describing the node and
// the protocol it runs.
func (c *Client) GetVersion() (*GetVersionResult, error) {
	result := &GetVersionResult{}
	err := c.call("getversion", nil, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetBlockCount reflects the getblockcount command. The count is the
// height of the next block, one past the current tip.
func (c *Client) GetBlockCount() (uint32, error) {
	var count uint32
	err := c.call("getblockcount", nil, &count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetBlockHash reflects the getblockhash command.
func (c *Client) GetBlockHash(index uint32) (util.Uint256, error) {
	var hash util.Uint256
	err := c.call("getblockhash", []interface{}{index}, &hash)
	if err != nil {
		return util.Uint256{}, err
	}
	return hash, nil
}

// GetCommittee reflects the getcommittee command, returning the public
// keys of the current committee members.
func (c *Client) GetCommittee() (keys.PublicKeys, error) {
	var serialized []string
	err := c.call("getcommittee", nil, &serialized)
	if err != nil {
		return nil, err
	}

	committee := make(keys.PublicKeys, 0, len(serialized))
	for _, encoded := range serialized {
		key, err := keys.PublicKeyFromString(encoded)
		if err != nil {
			return nil, err
		}
		committee = append(committee, key)
	}
	return committee, nil
}

// GetContractState reflects the getcontractstate command for the given
// contract hash.
func (c *Client) GetContractState(hash util.Uint160) (*ContractStateResult, error) {
	result := &ContractStateResult{}
	err := c.call("getcontractstate", []interface{}{hash}, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ValidateAddress reflects the validateaddress command. The node only
// checks the format, not whether the address has ever been used.
func (c *Client) ValidateAddress(address string) (*ValidateAddressResult, error) {
	result := &ValidateAddressResult{}
	err := c.call("validateaddress", []interface{}{address}, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
