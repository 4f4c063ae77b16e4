// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/go-socks/socks"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"

	"github.com/neonetwork/neosdk/netparams"
)

const (
	// defaultRequestTimeout bounds a round trip when the config does not
	// say otherwise.
	defaultRequestTimeout = 30 * time.Second

	defaultMaxConnsPerHost = 20
)

// ErrClientConfig is the class of error returned for unusable client
// configurations.
var ErrClientConfig = errors.New("invalid client configuration")

// Config describes the connection to a node's JSON-RPC server.
type Config struct {
	// Endpoint is the full URL of the JSON-RPC server, for example
	// "http://localhost:10332".
	Endpoint string

	// Proxy optionally specifies a SOCKS5 proxy in host:port form to
	// route requests through.
	Proxy     string
	ProxyUser string
	ProxyPass string

	// RequestTimeout bounds each request round trip. Zero selects a
	// default of 30 seconds.
	RequestTimeout time.Duration
}

// Client is a JSON-RPC client for a single node. It is safe for
// concurrent use.
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *fasthttp.Client

	requestID uint64

	magicMutex  sync.Mutex
	magic       netparams.Magic
	magicCached bool
}

// New returns a client that talks to the node at config.Endpoint.
func New(config *Config) (*Client, error) {
	if config == nil || config.Endpoint == "" {
		return nil, errors.Wrap(ErrClientConfig, "no RPC endpoint")
	}

	timeout := config.RequestTimeout
	if timeout == 0 {
		timeout = defaultRequestTimeout
	}

	httpClient := &fasthttp.Client{
		MaxConnWaitTimeout: timeout,
		MaxConnsPerHost:    defaultMaxConnsPerHost,
	}
	if config.Proxy != "" {
		proxy := &socks.Proxy{
			Addr:     config.Proxy,
			Username: config.ProxyUser,
			Password: config.ProxyPass,
		}
		httpClient.Dial = func(addr string) (net.Conn, error) {
			return proxy.DialTimeout("tcp", addr, timeout)
		}
	}

	return &Client{
		endpoint:   config.Endpoint,
		timeout:    timeout,
		httpClient: httpClient,
	}, nil
}

// Endpoint returns the URL the client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call performs a raw JSON-RPC call and returns the undecoded result.
// It is the escape hatch for commands without a typed wrapper.
func (c *Client) Call(method string, params ...interface{}) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.call(method, params, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RPCError is the error object of a failed JSON-RPC call, as reported by
// the node.
type RPCError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

type request struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      uint64        `json:"id"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// call performs one JSON-RPC round trip and decodes the result field
// into target. A nil target discards the result.
func (c *Client) call(method string, params []interface{}, target interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	id := atomic.AddUint64(&c.requestID, 1)
	requestBody, err := json.Marshal(&request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      id,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s request", method)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod("POST")
	req.Header.SetContentType("application/json")
	req.SetBody(requestBody)

	log.Debugf("POST %s: %s", c.endpoint, requestBody)
	err = c.httpClient.DoTimeout(req, resp, c.timeout)
	if err != nil {
		return errors.Wrapf(err, "%s call to %s failed", method, c.endpoint)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return errors.Errorf("%s call to %s returned HTTP status %d",
			method, c.endpoint, status)
	}

	decoded := &response{}
	err = json.Unmarshal(resp.Body(), decoded)
	if err != nil {
		log.Debugf("unparseable response to %s: %s", method, resp.Body())
		return errors.Wrapf(err, "failed to unmarshal %s response", method)
	}
	if decoded.Error != nil {
		return errors.WithStack(decoded.Error)
	}
	if decoded.ID != id {
		return errors.Errorf("%s response carries id %d, expected %d",
			method, decoded.ID, id)
	}

	if target == nil {
		return nil
	}
	if len(decoded.Result) == 0 {
		return errors.Errorf("%s response carries no result", method)
	}
	err = json.Unmarshal(decoded.Result, target)
	if err != nil {
		return errors.Wrapf(err, "failed to unmarshal %s result", method)
	}
	return nil
}
