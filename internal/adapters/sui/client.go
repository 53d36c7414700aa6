// Package sui reads wallet balances from a Sui full node over JSON-RPC.
package sui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"suite_hotel/internal/adapters/observability"
)

const DefaultRPCURL = "https://fullnode.testnet.sui.io:443"

// RPCError is a JSON-RPC error object returned by the node.
type RPCError struct {
	Code    int64
	Message string
}

func (e *RPCError) Error() string { return fmt.Sprintf("sui rpc error %d: %s", e.Code, e.Message) }

var ErrMalformedResponse = errors.New("sui: malformed rpc response")

type Client struct {
	rpcURL string
	hc     *http.Client
}

func New(rpcURL string, timeout time.Duration) *Client {
	if rpcURL == "" {
		rpcURL = DefaultRPCURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{rpcURL: rpcURL, hc: &http.Client{Timeout: timeout}}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// Call makes one JSON-RPC call and returns the raw "result" member.
func (c *Client) Call(ctx context.Context, method string, params ...any) (gjson.Result, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternalError("sui", method, err, time.Since(start))
		return gjson.Result{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("sui", method, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("sui: bad status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, ErrMalformedResponse
	}

	doc := gjson.ParseBytes(raw)
	if e := doc.Get("error"); e.Exists() {
		return gjson.Result{}, &RPCError{Code: e.Get("code").Int(), Message: e.Get("message").String()}
	}
	res := doc.Get("result")
	if !res.Exists() {
		return gjson.Result{}, ErrMalformedResponse
	}
	return res, nil
}

// Balance returns the owner's total balance of coinType in base units, as the
// decimal string the node reports.
func (c *Client) Balance(ctx context.Context, owner, coinType string) (string, error) {
	res, err := c.Call(ctx, "suix_getBalance", owner, coinType)
	if err != nil {
		return "", err
	}
	total := res.Get("totalBalance")
	if !total.Exists() {
		return "", ErrMalformedResponse
	}
	return total.String(), nil
}
