// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/neonetwork/neosdk/contract"
	"github.com/neonetwork/neosdk/transaction"
	"github.com/neonetwork/neosdk/util"
)

// StackItem is one item of a VM evaluation stack in its JSON form. The
// value encoding depends on Type, so the raw form is kept and decoded
// through the typed accessors.
type StackItem struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`

	// Interface and ID are only set on InteropInterface items, which
	// nodes send for server-side iterators instead of a value.
	Interface string `json:"interface,omitempty"`
	ID        string `json:"id,omitempty"`
}

// Int returns the item as an integer. Nodes send integers as decimal
// strings; bare numbers are accepted too.
func (item StackItem) Int() (int64, error) {
	if item.Type != "Integer" {
		return 0, errors.Errorf("stack item is %s, not Integer", item.Type)
	}
	var number json.Number
	err := json.Unmarshal(item.Value, &number)
	if err != nil {
		return 0, errors.Wrap(err, "malformed Integer stack item")
	}
	value, err := number.Int64()
	if err != nil {
		return 0, errors.Wrap(err, "malformed Integer stack item")
	}
	return value, nil
}

// Bytes returns the item as a byte slice. ByteString and Buffer items
// carry their payload base64-encoded.
func (item StackItem) Bytes() ([]byte, error) {
	if item.Type != "ByteString" && item.Type != "Buffer" {
		return nil, errors.Errorf("stack item is %s, not ByteString or Buffer",
			item.Type)
	}
	var value []byte
	err := json.Unmarshal(item.Value, &value)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed %s stack item", item.Type)
	}
	return value, nil
}

// Bool returns the item as a boolean.
func (item StackItem) Bool() (bool, error) {
	if item.Type != "Boolean" {
		return false, errors.Errorf("stack item is %s, not Boolean", item.Type)
	}
	var value bool
	err := json.Unmarshal(item.Value, &value)
	if err != nil {
		return false, errors.Wrap(err, "malformed Boolean stack item")
	}
	return value, nil
}

// Array returns the item's elements. Array and Struct items nest
// further stack items.
func (item StackItem) Array() ([]StackItem, error) {
	if item.Type != "Array" && item.Type != "Struct" {
		return nil, errors.Errorf("stack item is %s, not Array or Struct",
			item.Type)
	}
	var elems []StackItem
	err := json.Unmarshal(item.Value, &elems)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed %s stack item", item.Type)
	}
	return elems, nil
}

// IteratorID returns the server-side iterator id carried by an
// InteropInterface item. Such iterators are walked with
// TraverseIterator under the invocation's session.
func (item StackItem) IteratorID() (string, error) {
	if item.Type != "InteropInterface" {
		return "", errors.Errorf("stack item is %s, not InteropInterface",
			item.Type)
	}
	if item.Interface != "IIterator" {
		return "", errors.Errorf("interop interface is %q, not IIterator",
			item.Interface)
	}
	if item.ID == "" {
		return "", errors.Errorf("iterator stack item carries no id")
	}
	return item.ID, nil
}

// InvokeScript reflects the invokescript command: a test execution of
// the script against the node's current state. Nothing is persisted.
func (c *Client) InvokeScript(script []byte, signers []transaction.Signer) (*InvocationResult, error) {
	params := []interface{}{script}
	if len(signers) > 0 {
		params = append(params, signers)
	}

	result := &InvocationResult{}
	err := c.call("invokescript", params, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// InvokeFunction reflects the invokefunction command: a test invocation
// of one contract method with the given arguments. Nothing is
// persisted.
func (c *Client) InvokeFunction(contractHash util.Uint160, operation string,
	args []contract.Parameter, signers []transaction.Signer) (*InvocationResult, error) {

	if args == nil {
		args = []contract.Parameter{}
	}
	params := []interface{}{contractHash, operation, args}
	if len(signers) > 0 {
		params = append(params, signers)
	}

	result := &InvocationResult{}
	err := c.call("invokefunction", params, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TraverseIterator reflects the traverseiterator command, fetching up
// to count items from a server-side iterator produced by an earlier
// invocation. The session comes from the InvocationResult, the
// iterator id from the InteropInterface stack item.
func (c *Client) TraverseIterator(sessionID string, iteratorID string, count int) ([]StackItem, error) {
	var items []StackItem
	err := c.call("traverseiterator",
		[]interface{}{sessionID, iteratorID, count}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// TerminateSession reflects the terminatesession command, releasing a
// server-side iterator session.
func (c *Client) TerminateSession(sessionID string) (bool, error) {
	var released bool
	err := c.call("terminatesession", []interface{}{sessionID}, &released)
	if err != nil {
		return false, err
	}
	return released, nil
}
