// Package gateway talks to a storage-network node and its public gateway
// over HTTP.
//
// This is an optional adapter package. The core library remains
// network-provider agnostic; any node can integrate by implementing
// network.Client.
//
// Endpoints:
//   - GET  <node>/price/<bytes>            -> atomic cost (text body)
//   - GET  <node>/account/balance?address= -> {"balance": "<atomic>"}
//   - POST <node>/account/fund             -> {"id": "..."}
//   - POST <node>/tx                       -> receipt JSON
//   - GET  <gateway>/<contentId>           -> stored bytes
//
// Warning: transport reachability is not validity. Downloaded bytes are the
// caller's to verify (the store orchestrator re-hashes records it retrieves).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blockref.dev/refstore/network"
)

// Default endpoints of the public network.
const (
	DefaultNodeURL    = "https://node.blockref.dev"
	DefaultGatewayURL = "https://gateway.irys.xyz"
)

// Client implements network.Client over HTTP.
type Client struct {
	node    string
	gateway string
	account string
	hc      *http.Client
}

type Options struct {
	// NodeURL is the node base URL. If empty, DefaultNodeURL is used.
	NodeURL string
	// GatewayURL is the public gateway base URL. If empty, DefaultGatewayURL
	// is used.
	GatewayURL string
	// Account is the chain address whose balance the node is asked about.
	Account string
	// HTTPClient optionally overrides the transport. If nil, a client with
	// Timeout is used.
	HTTPClient *http.Client
	// Timeout applies to each request when HTTPClient is nil. Default 30s.
	Timeout time.Duration
}

func New(opts Options) *Client {
	node := opts.NodeURL
	if node == "" {
		node = DefaultNodeURL
	}
	gw := opts.GatewayURL
	if gw == "" {
		gw = DefaultGatewayURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		node:    strings.TrimRight(node, "/"),
		gateway: strings.TrimRight(gw, "/"),
		account: opts.Account,
		hc:      hc,
	}
}

var _ network.Client = (*Client)(nil)

func (c *Client) Price(ctx context.Context, byteLength int) (string, error) {
	body, err := c.get(ctx, c.node+"/price/"+strconv.Itoa(byteLength))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) Balance(ctx context.Context) (string, error) {
	u := c.node + "/account/balance?address=" + url.QueryEscape(c.account)
	body, err := c.get(ctx, u)
	if err != nil {
		return "", err
	}
	var out struct {
		Balance string `json:"balance"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("gateway: malformed balance response: %w", err)
	}
	return out.Balance, nil
}

func (c *Client) Fund(ctx context.Context, atomicAmount string) (*network.FundReceipt, error) {
	payload := map[string]string{"address": c.account, "amount": atomicAmount}
	body, err := c.post(ctx, c.node+"/account/fund", payload)
	if err != nil {
		return nil, err
	}
	var out network.FundReceipt
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("gateway: malformed fund response: %w", err)
	}
	return &out, nil
}

func (c *Client) Upload(ctx context.Context, data []byte, tags []network.Tag) (*network.Receipt, error) {
	payload := struct {
		Data []byte        `json:"data"`
		Tags []network.Tag `json:"tags"`
	}{Data: data, Tags: tags}

	body, err := c.post(ctx, c.node+"/tx", payload)
	if err != nil {
		return nil, err
	}
	var receipt network.Receipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		return nil, fmt.Errorf("gateway: malformed upload receipt: %w", err)
	}
	if receipt.ID == "" {
		return nil, fmt.Errorf("gateway: upload receipt missing content id")
	}
	return &receipt, nil
}

func (c *Client) Download(ctx context.Context, contentID string) ([]byte, error) {
	if contentID == "" {
		return nil, network.ErrInvalidContentID
	}
	return c.get(ctx, c.gateway+"/"+url.PathEscape(contentID))
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, u string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, network.ErrNotFound
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, network.ErrInsufficientFunds
	default:
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("gateway: %s %s: %s", req.Method, req.URL.Path, msg)
	}
}
