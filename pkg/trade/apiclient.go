package trade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"volumeforge/utilities"
)

// APIClient executes trades through the volume API's /trades endpoints. It
// throttles its own requests; transport failures surface as unsuccessful
// results, not errors.
type APIClient struct {
	baseURL    string
	apiKey     string
	HTTPClient *http.Client
	logger     *utilities.Logger
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
}

type tradeRequest struct {
	Wallet string  `json:"wallet"`
	Amount float64 `json:"amount"`
}

type tradeResponse struct {
	TransactionID string `json:"transactionId"`
	Error         string `json:"error,omitempty"`
}

// NewAPIClient builds a trade execution client from the volume API config.
func NewAPIClient(cfg *utilities.VolumeAPIConfig, logger *utilities.Logger) *APIClient {
	return &APIClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSec) * time.Second},
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst),
		maxRetries: cfg.MaxRetries,
		retryDelay: time.Duration(cfg.RetryDelaySec) * time.Second,
	}
}

// ExecuteBuy issues a buy order for the wallet.
func (c *APIClient) ExecuteBuy(ctx context.Context, wallet string, amount float64) Result {
	return c.execute(ctx, "buy", wallet, amount)
}

// ExecuteSell issues a sell order for the wallet.
func (c *APIClient) ExecuteSell(ctx context.Context, wallet string, amount float64) Result {
	return c.execute(ctx, "sell", wallet, amount)
}

func (c *APIClient) execute(ctx context.Context, side, wallet string, amount float64) Result {
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{Success: false, Err: fmt.Sprintf("rate limiter: %v", err)}
	}

	body, err := json.Marshal(tradeRequest{Wallet: wallet, Amount: amount})
	if err != nil {
		return Result{Success: false, Err: fmt.Sprintf("marshal request: %v", err)}
	}

	url := fmt.Sprintf("%s/trades/%s", c.baseURL, side)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Err: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var resp tradeResponse
	if err := utilities.DoJSONRequest(c.HTTPClient, req, c.maxRetries, c.retryDelay, &resp); err != nil {
		c.logger.LogError("Trade: %s for wallet %s failed: %v", side, wallet, err)
		return Result{Success: false, Err: err.Error()}
	}
	if resp.Error != "" {
		c.logger.LogWarn("Trade: %s for wallet %s rejected: %s", side, wallet, resp.Error)
		return Result{Success: false, Err: resp.Error}
	}

	c.logger.LogDebug("Trade: executed %s of %.4f for wallet %s (tx %s)", side, amount, wallet, resp.TransactionID)
	return Result{Success: true, TransactionID: resp.TransactionID}
}
