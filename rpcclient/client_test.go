// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/neonetwork/neosdk/contract"
	"github.com/neonetwork/neosdk/keys"
	"github.com/neonetwork/neosdk/netparams"
	"github.com/neonetwork/neosdk/transaction"
	"github.com/neonetwork/neosdk/util"
)

const (
	testKeyHex       = "9117f4bf9be717c9a90994326897f4243503accd06712162267e77f18b49c3a3"
	testKeyAddress   = "NY6AaPfnk1HQP6HkShHHyLQ9KBKn78DAqu"
	testPublicKeyHex = "0265bf906bf385fbf3f777832e55a87991bcfbe19b097fb7c5ca2e4025a4d5e5d6"

	testSecondPublicKeyHex = "02e3be84460f90d75bfb2411e68cb8c6f4ae8925d2ce04cac0ead3dcd24239ab45"

	// testVersionResult is a getversion response as a mainnet node sends
	// it.
	testVersionResult = `{"tcpport":10333,"nonce":682348965,` +
		`"useragent":"/Neo:3.6.2/","protocol":{"addressversion":53,` +
		`"network":860833102,"validatorscount":7,"msperblock":15000,` +
		`"maxtraceableblocks":2102400,"maxvaliduntilblockincrement":5760,` +
		`"maxtransactionsperblock":512,"memorypoolmaxtransactions":50000,` +
		`"initialgasdistribution":5200000000000000}}`
)

func testPrivateKey(t *testing.T) *keys.PrivateKey {
	t.Helper()

	serialized, err := hex.DecodeString(testKeyHex)
	if err != nil {
		t.Fatalf("failed to decode test key hex: %v", err)
	}
	key, err := keys.PrivateKeyFromBytes(serialized)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes: unexpected error: %v", err)
	}
	return key
}

// testRequest is the decoded envelope of one request the test node
// received.
type testRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      uint64          `json:"id"`
}

// testNode is an in-process JSON-RPC server backed by canned results,
// reachable only through an in-memory listener.
type testNode struct {
	listener *fasthttputil.InmemoryListener

	mtx      sync.Mutex
	results  map[string]string
	requests []testRequest

	// badID makes the node answer with a wrong response id and
	// httpStatus, when set, replaces every response with that status.
	badID      bool
	httpStatus int
}

func (n *testNode) handle(ctx *fasthttp.RequestCtx) {
	n.mtx.Lock()
	defer n.mtx.Unlock()

	if n.httpStatus != 0 {
		ctx.Error(fasthttp.StatusMessage(n.httpStatus), n.httpStatus)
		return
	}

	var request testRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		ctx.Error("malformed request", fasthttp.StatusBadRequest)
		return
	}
	n.requests = append(n.requests, request)

	id := request.ID
	if n.badID {
		id++
	}

	ctx.SetContentType("application/json")
	result, ok := n.results[request.Method]
	if !ok {
		fmt.Fprintf(ctx, `{"jsonrpc":"2.0","id":%d,`+
			`"error":{"code":-32601,"message":"Method not found"}}`, id)
		return
	}
	fmt.Fprintf(ctx, `{"jsonrpc":"2.0","id":%d,"result":%s}`, id, result)
}

func (n *testNode) setResult(method string, result string) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	n.results[method] = result
}

func (n *testNode) requestsFor(method string) []testRequest {
	n.mtx.Lock()
	defer n.mtx.Unlock()

	var matched []testRequest
	for _, request := range n.requests {
		if request.Method == method {
			matched = append(matched, request)
		}
	}
	return matched
}

func (n *testNode) lastParams(t *testing.T, method string) string {
	t.Helper()

	requests := n.requestsFor(method)
	if len(requests) == 0 {
		t.Fatalf("no %s request reached the node", method)
	}
	return string(requests[len(requests)-1].Params)
}

// newTestClient returns a client wired to a fresh test node through an
// in-memory connection.
func newTestClient(t *testing.T, results map[string]string) (*Client, *testNode) {
	t.Helper()

	if results == nil {
		results = make(map[string]string)
	}
	node := &testNode{
		listener: fasthttputil.NewInmemoryListener(),
		results:  results,
	}
	server := &fasthttp.Server{Handler: node.handle}
	go func() {
		_ = server.Serve(node.listener)
	}()
	t.Cleanup(func() {
		node.listener.Close()
	})

	client, err := New(&Config{Endpoint: "http://node.test"})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	client.httpClient.Dial = func(addr string) (net.Conn, error) {
		return node.listener.Dial()
	}
	return client, node
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "nil config", config: nil},
		{name: "empty endpoint", config: &Config{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.config)
			if !errors.Is(err, ErrClientConfig) {
				t.Fatalf("New: got error %v, expected %v", err,
					ErrClientConfig)
			}
		})
	}

	client, err := New(&Config{Endpoint: "http://localhost:10332"})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if client.Endpoint() != "http://localhost:10332" {
		t.Fatalf("Endpoint: got %s", client.Endpoint())
	}
	if client.httpClient.Dial != nil {
		t.Fatal("direct client unexpectedly installed a custom dialer")
	}

	proxied, err := New(&Config{
		Endpoint: "http://localhost:10332",
		Proxy:    "127.0.0.1:9050",
	})
	if err != nil {
		t.Fatalf("New with proxy: unexpected error: %v", err)
	}
	if proxied.httpClient.Dial == nil {
		t.Fatal("proxy configuration did not install a dialer")
	}
}

func TestCallEnvelope(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"getblockcount": "1024",
	})

	for i := 0; i < 2; i++ {
		count, err := client.GetBlockCount()
		if err != nil {
			t.Fatalf("GetBlockCount: unexpected error: %v", err)
		}
		if count != 1024 {
			t.Fatalf("GetBlockCount: got %d, expected 1024", count)
		}
	}

	requests := node.requestsFor("getblockcount")
	if len(requests) != 2 {
		t.Fatalf("node saw %d requests, expected 2", len(requests))
	}
	for i, request := range requests {
		if request.JSONRPC != "2.0" {
			t.Errorf("request %d carries jsonrpc %q", i, request.JSONRPC)
		}
		if string(request.Params) != "[]" {
			t.Errorf("request %d carries params %s, expected []",
				i, request.Params)
		}
		if request.ID != uint64(i)+1 {
			t.Errorf("request %d carries id %d, expected %d",
				i, request.ID, i+1)
		}
	}
}

func TestCallErrors(t *testing.T) {
	t.Run("server error object", func(t *testing.T) {
		client, _ := newTestClient(t, nil)

		_, err := client.GetBlockCount()
		if err == nil {
			t.Fatal("expected an error for an unknown method")
		}
		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			t.Fatalf("error %v does not wrap an RPCError", err)
		}
		if rpcErr.Code != -32601 {
			t.Fatalf("got code %d, expected -32601", rpcErr.Code)
		}
		if rpcErr.Error() != "RPC error -32601: Method not found" {
			t.Fatalf("unexpected error text %q", rpcErr.Error())
		}
	})

	t.Run("mismatched response id", func(t *testing.T) {
		client, node := newTestClient(t, map[string]string{
			"getblockcount": "1024",
		})
		node.mtx.Lock()
		node.badID = true
		node.mtx.Unlock()

		_, err := client.GetBlockCount()
		if err == nil {
			t.Fatal("expected an error for a mismatched response id")
		}
	})

	t.Run("http error status", func(t *testing.T) {
		client, node := newTestClient(t, map[string]string{
			"getblockcount": "1024",
		})
		node.mtx.Lock()
		node.httpStatus = fasthttp.StatusInternalServerError
		node.mtx.Unlock()

		_, err := client.GetBlockCount()
		if err == nil {
			t.Fatal("expected an error for HTTP status 500")
		}
	})
}

func TestCall(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"getconnectioncount": "12",
	})

	result, err := client.Call("getconnectioncount")
	if err != nil {
		t.Fatalf("Call: unexpected error: %v", err)
	}
	if string(result) != "12" {
		t.Fatalf("got result %s, expected 12", result)
	}
	if params := node.lastParams(t, "getconnectioncount"); params != "[]" {
		t.Errorf("parameterless call carried params %s", params)
	}

	node.setResult("getstorage", `"BQ=="`)
	result, err = client.Call("getstorage", "abc", 7)
	if err != nil {
		t.Fatalf("Call with params: unexpected error: %v", err)
	}
	if string(result) != `"BQ=="` {
		t.Fatalf("got result %s", result)
	}
	if params := node.lastParams(t, "getstorage"); params != `["abc",7]` {
		t.Errorf("call carried params %s", params)
	}
}

func TestGetVersion(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"getversion": testVersionResult,
	})

	version, err := client.GetVersion()
	if err != nil {
		t.Fatalf("GetVersion: unexpected error: %v", err)
	}
	if version.UserAgent != "/Neo:3.6.2/" {
		t.Errorf("got user agent %q", version.UserAgent)
	}
	if version.TCPPort != 10333 {
		t.Errorf("got tcp port %d", version.TCPPort)
	}
	if version.Protocol.Network != netparams.MainnetParams.Net {
		t.Errorf("got network %#x, expected %#x",
			uint32(version.Protocol.Network),
			uint32(netparams.MainnetParams.Net))
	}
	if version.Protocol.AddressVersion != 53 {
		t.Errorf("got address version %d", version.Protocol.AddressVersion)
	}
	if version.Protocol.MillisecondsPerBlock != 15000 {
		t.Errorf("got block time %d", version.Protocol.MillisecondsPerBlock)
	}
	if version.Protocol.MaxValidUntilBlockIncrement != 5760 {
		t.Errorf("got expiry increment %d",
			version.Protocol.MaxValidUntilBlockIncrement)
	}
	if version.Protocol.InitialGasDistribution != 5200000000000000 {
		t.Errorf("got initial gas %d",
			version.Protocol.InitialGasDistribution)
	}

	if params := node.lastParams(t, "getversion"); params != "[]" {
		t.Errorf("getversion carried params %s", params)
	}
}

func TestGetBlockHash(t *testing.T) {
	const hashString = "0x4c2647d06b6b0b7ac0ba9a0a2061eb4bcc553d94117b3c4cb29ae1bfbcc439f9"

	client, node := newTestClient(t, map[string]string{
		"getblockhash": fmt.Sprintf("%q", hashString),
	})

	hash, err := client.GetBlockHash(7)
	if err != nil {
		t.Fatalf("GetBlockHash: unexpected error: %v", err)
	}
	expected, err := util.Uint256FromString(hashString)
	if err != nil {
		t.Fatalf("Uint256FromString: unexpected error: %v", err)
	}
	if hash != expected {
		t.Fatalf("got hash %s, expected %s", hash, expected)
	}
	if params := node.lastParams(t, "getblockhash"); params != "[7]" {
		t.Errorf("getblockhash carried params %s", params)
	}
}

func TestGetCommittee(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"getcommittee": fmt.Sprintf(`[%q,%q]`,
			testSecondPublicKeyHex, testPublicKeyHex),
	})

	committee, err := client.GetCommittee()
	if err != nil {
		t.Fatalf("GetCommittee: unexpected error: %v", err)
	}
	if len(committee) != 2 {
		t.Fatalf("got %d members, expected 2", len(committee))
	}
	if committee[0].String() != testSecondPublicKeyHex {
		t.Errorf("got first member %s", committee[0])
	}
	if committee[1].String() != testPublicKeyHex {
		t.Errorf("got second member %s", committee[1])
	}
}

func TestInvokeScript(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"invokescript": `{"script":"EUA=","state":"HALT",` +
			`"gasconsumed":"1017810","exception":null,` +
			`"stack":[{"type":"Integer","value":"42"}],` +
			`"session":"830ffc22-7e48-4e83-a64d-1ee0f5ef05a2"}`,
	})

	script := []byte{0x11, 0x40}
	signer, err := transaction.NewTransactionSigner(
		testPrivateKey(t).ScriptHash(), transaction.CalledByEntry)
	if err != nil {
		t.Fatalf("NewTransactionSigner: unexpected error: %v", err)
	}

	result, err := client.InvokeScript(script,
		[]transaction.Signer{signer})
	if err != nil {
		t.Fatalf("InvokeScript: unexpected error: %v", err)
	}
	if result.State != "HALT" {
		t.Errorf("got state %q", result.State)
	}
	gas, err := result.GasConsumed.Int64()
	if err != nil || gas != 1017810 {
		t.Errorf("got gasconsumed %v (err %v)", result.GasConsumed, err)
	}
	if !bytes.Equal(result.Script, script) {
		t.Errorf("got echoed script %x", result.Script)
	}
	if result.Session == "" {
		t.Error("session id was dropped")
	}
	if len(result.Stack) != 1 {
		t.Fatalf("got %d stack items, expected 1", len(result.Stack))
	}
	if value, err := result.Stack[0].Int(); err != nil || value != 42 {
		t.Errorf("got stack value %d (err %v)", value, err)
	}

	expectedParams := fmt.Sprintf(
		`["EUA=",[{"account":"0x%s","scopes":"CalledByEntry"}]]`,
		signer.Account())
	if params := node.lastParams(t, "invokescript"); params != expectedParams {
		t.Errorf("invokescript carried params %s, expected %s",
			params, expectedParams)
	}

	if _, err := client.InvokeScript(script, nil); err != nil {
		t.Fatalf("InvokeScript without signers: unexpected error: %v", err)
	}
	if params := node.lastParams(t, "invokescript"); params != `["EUA="]` {
		t.Errorf("signerless invokescript carried params %s", params)
	}
}

func TestInvokeFunction(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"invokefunction": `{"script":"wh8MCGRlY2ltYWxz",` +
			`"state":"HALT","gasconsumed":"203775",` +
			`"stack":[{"type":"Integer","value":"8"}]}`,
	})

	account := testPrivateKey(t).ScriptHash()
	result, err := client.InvokeFunction(contract.GasToken, "balanceOf",
		[]contract.Parameter{contract.Hash160Param(account)}, nil)
	if err != nil {
		t.Fatalf("InvokeFunction: unexpected error: %v", err)
	}
	if result.State != "HALT" {
		t.Errorf("got state %q", result.State)
	}

	expectedParams := fmt.Sprintf(
		`["0x%s","balanceOf",[{"type":"Hash160","value":"0x%s"}]]`,
		contract.GasToken, account)
	if params := node.lastParams(t, "invokefunction"); params != expectedParams {
		t.Errorf("invokefunction carried params %s, expected %s",
			params, expectedParams)
	}

	if _, err := client.InvokeFunction(contract.GasToken, "decimals",
		nil, nil); err != nil {

		t.Fatalf("InvokeFunction without args: unexpected error: %v", err)
	}
	expectedParams = fmt.Sprintf(`["0x%s","decimals",[]]`, contract.GasToken)
	if params := node.lastParams(t, "invokefunction"); params != expectedParams {
		t.Errorf("argless invokefunction carried params %s, expected %s",
			params, expectedParams)
	}
}

func TestStackItemInt(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		expected int64
		valid    bool
	}{
		{
			name:     "decimal string",
			item:     `{"type":"Integer","value":"1017810"}`,
			expected: 1017810,
			valid:    true,
		},
		{
			name:     "bare number",
			item:     `{"type":"Integer","value":1017810}`,
			expected: 1017810,
			valid:    true,
		},
		{
			name:     "negative",
			item:     `{"type":"Integer","value":"-6"}`,
			expected: -6,
			valid:    true,
		},
		{
			name: "wrong type",
			item: `{"type":"Boolean","value":true}`,
		},
		{
			name: "garbage value",
			item: `{"type":"Integer","value":"abc"}`,
		},
		{
			name: "fractional value",
			item: `{"type":"Integer","value":"12.5"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var item StackItem
			if err := json.Unmarshal([]byte(test.item), &item); err != nil {
				t.Fatalf("failed to unmarshal stack item: %v", err)
			}

			value, err := item.Int()
			if !test.valid {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Int: unexpected error: %v", err)
			}
			if value != test.expected {
				t.Fatalf("got %d, expected %d", value, test.expected)
			}
		})
	}
}

func TestStackItemBytes(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		expected []byte
		valid    bool
	}{
		{
			name:     "byte string",
			item:     `{"type":"ByteString","value":"AQI="}`,
			expected: []byte{0x01, 0x02},
			valid:    true,
		},
		{
			name:     "buffer",
			item:     `{"type":"Buffer","value":"AQI="}`,
			expected: []byte{0x01, 0x02},
			valid:    true,
		},
		{
			name: "wrong type",
			item: `{"type":"Integer","value":"1"}`,
		},
		{
			name: "invalid base64",
			item: `{"type":"ByteString","value":"!!!"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var item StackItem
			if err := json.Unmarshal([]byte(test.item), &item); err != nil {
				t.Fatalf("failed to unmarshal stack item: %v", err)
			}

			value, err := item.Bytes()
			if !test.valid {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Bytes: unexpected error: %v", err)
			}
			if !bytes.Equal(value, test.expected) {
				t.Fatalf("got %x, expected %x", value, test.expected)
			}
		})
	}
}

func TestStackItemBool(t *testing.T) {
	var item StackItem
	if err := json.Unmarshal(
		[]byte(`{"type":"Boolean","value":true}`), &item); err != nil {

		t.Fatalf("failed to unmarshal stack item: %v", err)
	}
	value, err := item.Bool()
	if err != nil {
		t.Fatalf("Bool: unexpected error: %v", err)
	}
	if !value {
		t.Fatal("got false, expected true")
	}

	if err := json.Unmarshal(
		[]byte(`{"type":"Integer","value":"1"}`), &item); err != nil {

		t.Fatalf("failed to unmarshal stack item: %v", err)
	}
	if _, err := item.Bool(); err == nil {
		t.Fatal("Bool on an Integer item: expected an error")
	}
}

func TestStackItemArray(t *testing.T) {
	var item StackItem
	raw := `{"type":"Array","value":[` +
		`{"type":"Integer","value":"1"},` +
		`{"type":"ByteString","value":"AQI="}]}`
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("failed to unmarshal stack item: %v", err)
	}

	elems, err := item.Array()
	if err != nil {
		t.Fatalf("Array: unexpected error: %v", err)
	}
	if len(elems) != 2 {
		t.Fatalf("got %d elements, expected 2", len(elems))
	}
	if value, err := elems[0].Int(); err != nil || value != 1 {
		t.Errorf("got first element %d (err %v)", value, err)
	}
	if value, err := elems[1].Bytes(); err != nil ||
		!bytes.Equal(value, []byte{0x01, 0x02}) {

		t.Errorf("got second element %x (err %v)", value, err)
	}

	if err := json.Unmarshal(
		[]byte(`{"type":"Struct","value":[{"type":"Integer","value":"7"}]}`),
		&item); err != nil {

		t.Fatalf("failed to unmarshal stack item: %v", err)
	}
	if elems, err := item.Array(); err != nil || len(elems) != 1 {
		t.Errorf("Struct: got %d elements (err %v)", len(elems), err)
	}

	if err := json.Unmarshal(
		[]byte(`{"type":"Integer","value":"1"}`), &item); err != nil {

		t.Fatalf("failed to unmarshal stack item: %v", err)
	}
	if _, err := item.Array(); err == nil {
		t.Fatal("Array on an Integer item: expected an error")
	}
}

func TestStackItemIteratorID(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		expected string
		valid    bool
	}{
		{
			name: "iterator",
			item: `{"type":"InteropInterface","interface":"IIterator",` +
				`"id":"f15389f0-9637-4a27-9f1b-ef55b068b6a8"}`,
			expected: "f15389f0-9637-4a27-9f1b-ef55b068b6a8",
			valid:    true,
		},
		{
			name: "wrong interface",
			item: `{"type":"InteropInterface","interface":"IStorage",` +
				`"id":"f15389f0-9637-4a27-9f1b-ef55b068b6a8"}`,
		},
		{
			name: "missing id",
			item: `{"type":"InteropInterface","interface":"IIterator"}`,
		},
		{
			name: "wrong type",
			item: `{"type":"Integer","value":"1"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var item StackItem
			if err := json.Unmarshal([]byte(test.item), &item); err != nil {
				t.Fatalf("failed to unmarshal stack item: %v", err)
			}

			id, err := item.IteratorID()
			if !test.valid {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("IteratorID: unexpected error: %v", err)
			}
			if id != test.expected {
				t.Fatalf("got id %q, expected %q", id, test.expected)
			}
		})
	}
}

func TestGetRawTransaction(t *testing.T) {
	key := testPrivateKey(t)
	signer, err := transaction.NewAccountSigner(key, transaction.CalledByEntry)
	if err != nil {
		t.Fatalf("NewAccountSigner: unexpected error: %v", err)
	}
	tx := &transaction.Transaction{
		Nonce:           1122334455,
		SystemFee:       997775,
		NetworkFee:      123456,
		ValidUntilBlock: 5762,
		Signers:         []transaction.Signer{signer},
		Script:          []byte{0x11, 0x40},
	}
	if err := tx.Sign(netparams.MainnetParams.Net); err != nil {
		t.Fatalf("Sign: unexpected error: %v", err)
	}
	raw, err := tx.Serialize()
	if err != nil {
		t.Fatalf("Serialize: unexpected error: %v", err)
	}

	client, node := newTestClient(t, map[string]string{
		"getrawtransaction": fmt.Sprintf("%q",
			base64.StdEncoding.EncodeToString(raw)),
	})

	decoded, err := client.GetRawTransaction(tx.Hash())
	if err != nil {
		t.Fatalf("GetRawTransaction: unexpected error: %v", err)
	}
	if decoded.Hash() != tx.Hash() {
		t.Fatalf("got hash %s, expected %s", decoded.Hash(), tx.Hash())
	}
	if decoded.Nonce != tx.Nonce {
		t.Errorf("got nonce %d", decoded.Nonce)
	}
	if decoded.ValidUntilBlock != tx.ValidUntilBlock {
		t.Errorf("got expiry %d", decoded.ValidUntilBlock)
	}
	if decoded.Sender() != key.ScriptHash() {
		t.Errorf("got sender %s", decoded.Sender())
	}

	expectedParams := fmt.Sprintf(`["0x%s"]`, tx.Hash())
	if params := node.lastParams(t, "getrawtransaction"); params != expectedParams {
		t.Errorf("getrawtransaction carried params %s, expected %s",
			params, expectedParams)
	}

	t.Run("undecodable transaction", func(t *testing.T) {
		node.setResult("getrawtransaction", `"AAECAw=="`)
		if _, err := client.GetRawTransaction(tx.Hash()); err == nil {
			t.Fatal("expected an error for an undecodable transaction")
		}
	})
}

func TestSendRawTransaction(t *testing.T) {
	const hashString = "0x60a5fa960a5a4ee8cd308bd921d08c4c06ff0cf30cc4a1d7b0c2e54c0a50c919"

	client, node := newTestClient(t, map[string]string{
		"sendrawtransaction": fmt.Sprintf(`{"hash":%q}`, hashString),
	})

	raw := []byte{0x00, 0x01, 0x02}
	hash, err := client.SendRawTransaction(raw)
	if err != nil {
		t.Fatalf("SendRawTransaction: unexpected error: %v", err)
	}
	expected, err := util.Uint256FromString(hashString)
	if err != nil {
		t.Fatalf("Uint256FromString: unexpected error: %v", err)
	}
	if hash != expected {
		t.Fatalf("got hash %s, expected %s", hash, expected)
	}

	if params := node.lastParams(t, "sendrawtransaction"); params != `["AAEC"]` {
		t.Errorf("sendrawtransaction carried params %s", params)
	}
}

func TestCalculateNetworkFee(t *testing.T) {
	tests := []struct {
		name     string
		result   string
		expected int64
	}{
		{
			name:     "string fee",
			result:   `{"networkfee":"1230450"}`,
			expected: 1230450,
		},
		{
			name:     "numeric fee",
			result:   `{"networkfee":1230450}`,
			expected: 1230450,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client, node := newTestClient(t, map[string]string{
				"calculatenetworkfee": test.result,
			})

			fee, err := client.CalculateNetworkFee([]byte{0x00, 0x01})
			if err != nil {
				t.Fatalf("CalculateNetworkFee: unexpected error: %v", err)
			}
			if fee != test.expected {
				t.Fatalf("got fee %d, expected %d", fee, test.expected)
			}
			if params := node.lastParams(t, "calculatenetworkfee"); params != `["AAE="]` {
				t.Errorf("calculatenetworkfee carried params %s", params)
			}
		})
	}
}

func TestGetNEP17Balances(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"getnep17balances": fmt.Sprintf(`{"address":%q,"balance":[`+
			`{"assethash":"0xd2a4cff31913016155e38e474a2c06d08be276cf",`+
			`"amount":"2350000000","lastupdatedblock":812833},`+
			`{"assethash":"0xef4073a0f2b305a38ec4050e4d3d28bc40ea63f5",`+
			`"amount":"7","lastupdatedblock":630145}]}`, testKeyAddress),
	})

	account := testPrivateKey(t).ScriptHash()
	balances, err := client.GetNEP17Balances(account)
	if err != nil {
		t.Fatalf("GetNEP17Balances: unexpected error: %v", err)
	}
	if balances.Address != testKeyAddress {
		t.Errorf("got address %s", balances.Address)
	}
	if len(balances.Balances) != 2 {
		t.Fatalf("got %d balances, expected 2", len(balances.Balances))
	}
	gas := balances.Balances[0]
	if gas.AssetHash != contract.GasToken {
		t.Errorf("got asset %s", gas.AssetHash)
	}
	if amount, err := gas.Amount.Int64(); err != nil || amount != 2350000000 {
		t.Errorf("got amount %v (err %v)", gas.Amount, err)
	}
	if gas.LastUpdatedBlock != 812833 {
		t.Errorf("got last updated block %d", gas.LastUpdatedBlock)
	}
	if balances.Balances[1].AssetHash != contract.NeoToken {
		t.Errorf("got second asset %s", balances.Balances[1].AssetHash)
	}

	expectedParams := fmt.Sprintf("[%q]", testKeyAddress)
	if params := node.lastParams(t, "getnep17balances"); params != expectedParams {
		t.Errorf("getnep17balances carried params %s, expected %s",
			params, expectedParams)
	}
}

func TestGetUnclaimedGas(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"getunclaimedgas": fmt.Sprintf(
			`{"address":%q,"unclaimed":"350000"}`, testKeyAddress),
	})

	result, err := client.GetUnclaimedGas(testPrivateKey(t).ScriptHash())
	if err != nil {
		t.Fatalf("GetUnclaimedGas: unexpected error: %v", err)
	}
	if result.Address != testKeyAddress {
		t.Errorf("got address %s", result.Address)
	}
	if unclaimed, err := result.Unclaimed.Int64(); err != nil || unclaimed != 350000 {
		t.Errorf("got unclaimed %v (err %v)", result.Unclaimed, err)
	}

	expectedParams := fmt.Sprintf("[%q]", testKeyAddress)
	if params := node.lastParams(t, "getunclaimedgas"); params != expectedParams {
		t.Errorf("getunclaimedgas carried params %s, expected %s",
			params, expectedParams)
	}
}

func TestValidateAddress(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"validateaddress": fmt.Sprintf(
			`{"address":%q,"isvalid":true}`, testKeyAddress),
	})

	result, err := client.ValidateAddress(testKeyAddress)
	if err != nil {
		t.Fatalf("ValidateAddress: unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Error("got isvalid false")
	}

	expectedParams := fmt.Sprintf("[%q]", testKeyAddress)
	if params := node.lastParams(t, "validateaddress"); params != expectedParams {
		t.Errorf("validateaddress carried params %s, expected %s",
			params, expectedParams)
	}
}

func TestGetContractState(t *testing.T) {
	client, node := newTestClient(t, map[string]string{
		"getcontractstate": `{"id":-6,"updatecounter":0,` +
			`"hash":"0xd2a4cff31913016155e38e474a2c06d08be276cf",` +
			`"nef":{"magic":860243278,"compiler":"neo-core-v3.0",` +
			`"source":"","tokens":[],"script":"EEEa93tnQBBBGvd7Z0A=",` +
			`"checksum":2663858513},` +
			`"manifest":{"name":"GasToken","groups":[],` +
			`"supportedstandards":["NEP-17"],"abi":{"methods":[]},` +
			`"permissions":[],"trusts":[],"extra":null}}`,
	})

	state, err := client.GetContractState(contract.GasToken)
	if err != nil {
		t.Fatalf("GetContractState: unexpected error: %v", err)
	}
	if state.ID != -6 {
		t.Errorf("got id %d", state.ID)
	}
	if state.Hash != contract.GasToken {
		t.Errorf("got hash %s", state.Hash)
	}
	if state.NEF.Magic != 860243278 {
		t.Errorf("got NEF magic %#x", state.NEF.Magic)
	}
	if state.NEF.Compiler != "neo-core-v3.0" {
		t.Errorf("got compiler %q", state.NEF.Compiler)
	}
	if len(state.NEF.Script) == 0 {
		t.Error("NEF script was dropped")
	}
	if state.Manifest.Name != "GasToken" {
		t.Errorf("got manifest name %q", state.Manifest.Name)
	}
	if len(state.Manifest.SupportedStandards) != 1 ||
		state.Manifest.SupportedStandards[0] != "NEP-17" {

		t.Errorf("got standards %v", state.Manifest.SupportedStandards)
	}

	expectedParams := fmt.Sprintf(`["0x%s"]`, contract.GasToken)
	if params := node.lastParams(t, "getcontractstate"); params != expectedParams {
		t.Errorf("getcontractstate carried params %s, expected %s",
			params, expectedParams)
	}
}

func TestGetApplicationLog(t *testing.T) {
	const hashString = "0x1b9bd1e4e0c3e6cf3f9f0c9d89768b1eb62ed2b09e0d3ef94cd0fa4d04d5e35f"

	client, node := newTestClient(t, map[string]string{
		"getapplicationlog": fmt.Sprintf(`{"txid":%q,"executions":[`+
			`{"trigger":"Application","vmstate":"HALT","exception":null,`+
			`"gasconsumed":"9977780","stack":[],"notifications":[`+
			`{"contract":"0xd2a4cff31913016155e38e474a2c06d08be276cf",`+
			`"eventname":"Transfer","state":{"type":"Array","value":[`+
			`{"type":"Any"},`+
			`{"type":"ByteString","value":"uXtKzX+Q5C2LfPzgcSRw9Sns1zE="},`+
			`{"type":"Integer","value":"9977780"}]}}]}]}`, hashString),
	})

	txID, err := util.Uint256FromString(hashString)
	if err != nil {
		t.Fatalf("Uint256FromString: unexpected error: %v", err)
	}

	appLog, err := client.GetApplicationLog(txID)
	if err != nil {
		t.Fatalf("GetApplicationLog: unexpected error: %v", err)
	}
	if appLog.TxID != txID {
		t.Errorf("got txid %s", appLog.TxID)
	}
	if len(appLog.Executions) != 1 {
		t.Fatalf("got %d executions, expected 1", len(appLog.Executions))
	}

	execution := appLog.Executions[0]
	if execution.Trigger != "Application" {
		t.Errorf("got trigger %q", execution.Trigger)
	}
	if execution.VMState != "HALT" {
		t.Errorf("got vmstate %q", execution.VMState)
	}
	if len(execution.Notifications) != 1 {
		t.Fatalf("got %d notifications, expected 1",
			len(execution.Notifications))
	}

	notification := execution.Notifications[0]
	if notification.Contract != contract.GasToken {
		t.Errorf("got contract %s", notification.Contract)
	}
	if notification.EventName != "Transfer" {
		t.Errorf("got event %q", notification.EventName)
	}
	fields, err := notification.State.Array()
	if err != nil {
		t.Fatalf("state Array: unexpected error: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("got %d state fields, expected 3", len(fields))
	}
	if amount, err := fields[2].Int(); err != nil || amount != 9977780 {
		t.Errorf("got transfer amount %d (err %v)", amount, err)
	}

	expectedParams := fmt.Sprintf("[%q]", hashString)
	if params := node.lastParams(t, "getapplicationlog"); params != expectedParams {
		t.Errorf("getapplicationlog carried params %s, expected %s",
			params, expectedParams)
	}
}

func TestTraverseIterator(t *testing.T) {
	const (
		sessionID  = "830ffc22-7e48-4e83-a64d-1ee0f5ef05a2"
		iteratorID = "f15389f0-9637-4a27-9f1b-ef55b068b6a8"
	)

	client, node := newTestClient(t, map[string]string{
		"traverseiterator": `[{"type":"ByteString","value":"AQ=="},` +
			`{"type":"ByteString","value":"Ag=="}]`,
		"terminatesession": "true",
	})

	items, err := client.TraverseIterator(sessionID, iteratorID, 100)
	if err != nil {
		t.Fatalf("TraverseIterator: unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, expected 2", len(items))
	}
	if value, err := items[0].Bytes(); err != nil ||
		!bytes.Equal(value, []byte{0x01}) {

		t.Errorf("got first item %x (err %v)", value, err)
	}

	expectedParams := fmt.Sprintf(`[%q,%q,100]`, sessionID, iteratorID)
	if params := node.lastParams(t, "traverseiterator"); params != expectedParams {
		t.Errorf("traverseiterator carried params %s, expected %s",
			params, expectedParams)
	}

	released, err := client.TerminateSession(sessionID)
	if err != nil {
		t.Fatalf("TerminateSession: unexpected error: %v", err)
	}
	if !released {
		t.Error("got released false")
	}
	expectedParams = fmt.Sprintf(`[%q]`, sessionID)
	if params := node.lastParams(t, "terminatesession"); params != expectedParams {
		t.Errorf("terminatesession carried params %s, expected %s",
			params, expectedParams)
	}
}
