// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package rpcclient implements a JSON-RPC 2.0 client for full nodes.

Overview

The client speaks the node's HTTP POST JSON-RPC interface. Every call
issues one request and blocks until the response arrives or the
configured timeout passes. The client is safe for concurrent use; each
request carries a unique id and responses are matched against it.

The node methods are exposed as typed wrappers (GetVersion,
GetBlockCount, InvokeScript, SendRawTransaction and so on) that decode
the result into the model structs of this package. Calls the node
rejects return an *RPCError carrying the node's code and message.

Provider

Client implements the transaction package's Provider interface, so it
plugs directly into the transaction builder: network magic and block
count come from getversion/getblockcount, fees from
invokescript/calculatenetworkfee, the GAS balance check from an
invokefunction call on the native GAS contract, and broadcasting from
sendrawtransaction.

Proxy

Requests can be routed through a SOCKS5 proxy by setting the Proxy
fields of the Config.

Errors

Transport failures and malformed responses are returned wrapped with
context. Node-side failures are returned as *RPCError so callers can
inspect the code.
*/
package rpcclient
