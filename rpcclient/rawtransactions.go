// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/transaction"
	"github.com/neonetwork/neosdk/util"
)

// GetRawTransaction reflects the getrawtransaction command, returning
// the transaction decoded from the node's serialized form.
func (c *Client) GetRawTransaction(hash util.Uint256) (*transaction.Transaction, error) {
	var raw []byte
	err := c.call("getrawtransaction", []interface{}{hash}, &raw)
	if err != nil {
		return nil, err
	}

	tx, err := transaction.Deserialize(raw)
	if err != nil {
		return nil, errors.Wrapf(err,
			"node returned an undecodable transaction for %s", hash)
	}
	return tx, nil
}

// SendRawTransaction reflects the sendrawtransaction command,
// broadcasting a serialized signed transaction. The returned hash is
// the node's confirmation that the transaction entered its pool.
func (c *Client) SendRawTransaction(rawTransaction []byte) (util.Uint256, error) {
	result := &SendRawTransactionResult{}
	err := c.call("sendrawtransaction", []interface{}{rawTransaction}, result)
	if err != nil {
		return util.Uint256{}, err
	}
	return result.Hash, nil
}

// CalculateNetworkFee reflects the calculatenetworkfee command for a
// serialized transaction. Witnesses may be empty placeholders; the node
// prices verification from the signers.
func (c *Client) CalculateNetworkFee(rawTransaction []byte) (int64, error) {
	result := &CalculateNetworkFeeResult{}
	err := c.call("calculatenetworkfee", []interface{}{rawTransaction}, result)
	if err != nil {
		return 0, err
	}

	fee, err := result.NetworkFee.Int64()
	if err != nil {
		return 0, errors.Wrap(err, "malformed networkfee in response")
	}
	return fee, nil
}

// GetApplicationLog reflects the getapplicationlog command, returning
// the execution record of a persisted transaction.
func (c *Client) GetApplicationLog(hash util.Uint256) (*ApplicationLogResult, error) {
	result := &ApplicationLogResult{}
	err := c.call("getapplicationlog", []interface{}{hash}, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetNEP17Balances reflects the getnep17balances command, listing every
// NEP-17 token position the account holds.
func (c *Client) GetNEP17Balances(account util.Uint160) (*NEP17Balances, error) {
	result := &NEP17Balances{}
	err := c.call("getnep17balances", []interface{}{util.EncodeAddress(account)}, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetUnclaimedGas reflects the getunclaimedgas command.
func (c *Client) GetUnclaimedGas(account util.Uint160) (*GetUnclaimedGasResult, error) {
	result := &GetUnclaimedGasResult{}
	err := c.call("getunclaimedgas", []interface{}{util.EncodeAddress(account)}, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
