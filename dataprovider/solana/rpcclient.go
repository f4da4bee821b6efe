// Package solana implements wallet balance lookups over the Solana JSON-RPC
// API.
package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"volumeforge/utilities"
)

const lamportsPerSol = 1_000_000_000

// Client is a minimal Solana JSON-RPC client. Only the getBalance method is
// wired; the bot uses it for wallet pre-flight checks.
type Client struct {
	endpoint   string
	HTTPClient *http.Client
	logger     *utilities.Logger
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type balanceResponse struct {
	Result struct {
		Value uint64 `json:"value"`
	} `json:"result"`
	Error *rpcError `json:"error"`
}

// NewClient builds a Solana RPC client from config.
func NewClient(cfg *utilities.SolanaConfig, logger *utilities.Logger) (*Client, error) {
	if cfg == nil || cfg.RPCEndpoint == "" {
		return nil, errors.New("solana: RPC endpoint cannot be empty")
	}
	return &Client{
		endpoint:   cfg.RPCEndpoint,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSec) * time.Second},
		logger:     logger,
	}, nil
}

// GetBalance returns the wallet balance in SOL.
func (c *Client) GetBalance(ctx context.Context, address string) (float64, error) {
	if address == "" {
		return 0, errors.New("solana: address cannot be empty")
	}

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "getBalance",
		Params:  []interface{}{address},
	})
	if err != nil {
		return 0, fmt.Errorf("solana: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("solana: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp balanceResponse
	if err := utilities.DoJSONRequest(c.HTTPClient, req, 1, 2*time.Second, &resp); err != nil {
		return 0, fmt.Errorf("solana: getBalance for %s failed: %w", address, err)
	}
	if resp.Error != nil {
		return 0, fmt.Errorf("solana: RPC error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	sol := float64(resp.Result.Value) / lamportsPerSol
	c.logger.LogDebug("Solana: wallet %s balance %.6f SOL", address, sol)
	return sol, nil
}
