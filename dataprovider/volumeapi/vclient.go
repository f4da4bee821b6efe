// Package volumeapi implements the MarketDataProvider contract against the
// volume stats HTTP API.
package volumeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"volumeforge/dataprovider"
	"volumeforge/utilities"
)

// Client is a rate-limited, caching client for the volume stats API. Responses
// are cached in memory for a short TTL so that multiple loops polling the same
// endpoint do not multiply the request volume.
type Client struct {
	baseURL    string
	apiKey     string
	HTTPClient *http.Client
	logger     *utilities.Logger
	limiter    *rate.Limiter
	cache      *gocache.Cache
	maxRetries int
	retryDelay time.Duration
}

type statsResponse struct {
	TotalVolume float64 `json:"totalVolume"`
	BuyVolume   float64 `json:"buyVolume"`
	SellVolume  float64 `json:"sellVolume"`
	LastUpdate  int64   `json:"lastUpdate"`
}

type priceResponse struct {
	Price float64 `json:"price"`
}

type liquidityResponse struct {
	Liquidity float64 `json:"liquidity"`
}

type tradeCountResponse struct {
	TradeCount int `json:"tradeCount"`
}

type depthResponse struct {
	CurrentSpread      *float64 `json:"currentSpread"`
	LiquidityDepth     *float64 `json:"liquidityDepth"`
	OrderBookImbalance *float64 `json:"orderBookImbalance"`
}

// NewClient builds a volume API client from config.
func NewClient(cfg *utilities.VolumeAPIConfig, logger *utilities.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("volumeapi: config cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("volumeapi: base URL cannot be empty")
	}
	ttl := time.Duration(cfg.CacheTTLSec) * time.Second
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSec) * time.Second},
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst),
		cache:      gocache.New(ttl, 2*ttl),
		maxRetries: cfg.MaxRetries,
		retryDelay: time.Duration(cfg.RetryDelaySec) * time.Second,
	}, nil
}

// GetVolumeStats fetches the aggregate volume stats.
func (c *Client) GetVolumeStats(ctx context.Context) (dataprovider.VolumeStats, error) {
	if cached, found := c.cache.Get("stats"); found {
		return cached.(dataprovider.VolumeStats), nil
	}

	var raw statsResponse
	if err := c.getJSON(ctx, "/stats/volume", &raw); err != nil {
		return dataprovider.VolumeStats{}, fmt.Errorf("volumeapi: stats fetch failed: %w", err)
	}

	stats := dataprovider.VolumeStats{
		TotalVolume: raw.TotalVolume,
		BuyVolume:   raw.BuyVolume,
		SellVolume:  raw.SellVolume,
		LastUpdate:  time.Unix(raw.LastUpdate, 0),
	}
	c.cache.SetDefault("stats", stats)
	return stats, nil
}

// GetPrice fetches the current token price.
func (c *Client) GetPrice(ctx context.Context) (float64, error) {
	if cached, found := c.cache.Get("price"); found {
		return cached.(float64), nil
	}
	var raw priceResponse
	if err := c.getJSON(ctx, "/stats/price", &raw); err != nil {
		return 0, fmt.Errorf("volumeapi: price fetch failed: %w", err)
	}
	c.cache.SetDefault("price", raw.Price)
	return raw.Price, nil
}

// GetLiquidity fetches the current pool liquidity.
func (c *Client) GetLiquidity(ctx context.Context) (float64, error) {
	if cached, found := c.cache.Get("liquidity"); found {
		return cached.(float64), nil
	}
	var raw liquidityResponse
	if err := c.getJSON(ctx, "/stats/liquidity", &raw); err != nil {
		return 0, fmt.Errorf("volumeapi: liquidity fetch failed: %w", err)
	}
	c.cache.SetDefault("liquidity", raw.Liquidity)
	return raw.Liquidity, nil
}

// GetTradeCount fetches the number of trades in the current window.
func (c *Client) GetTradeCount(ctx context.Context) (int, error) {
	if cached, found := c.cache.Get("trades"); found {
		return cached.(int), nil
	}
	var raw tradeCountResponse
	if err := c.getJSON(ctx, "/stats/trades", &raw); err != nil {
		return 0, fmt.Errorf("volumeapi: trade count fetch failed: %w", err)
	}
	c.cache.SetDefault("trades", raw.TradeCount)
	return raw.TradeCount, nil
}

// GetMarketDepth fetches the order-book view. ok=false means the endpoint
// answered but did not supply the full depth picture.
func (c *Client) GetMarketDepth(ctx context.Context) (dataprovider.MarketDepth, bool, error) {
	if cached, found := c.cache.Get("depth"); found {
		return cached.(dataprovider.MarketDepth), true, nil
	}
	var raw depthResponse
	if err := c.getJSON(ctx, "/stats/depth", &raw); err != nil {
		return dataprovider.MarketDepth{}, false, fmt.Errorf("volumeapi: depth fetch failed: %w", err)
	}
	if raw.CurrentSpread == nil || raw.LiquidityDepth == nil || raw.OrderBookImbalance == nil {
		return dataprovider.MarketDepth{}, false, nil
	}
	depth := dataprovider.MarketDepth{
		CurrentSpread:      *raw.CurrentSpread,
		LiquidityDepth:     *raw.LiquidityDepth,
		OrderBookImbalance: *raw.OrderBookImbalance,
	}
	c.cache.SetDefault("depth", depth)
	return depth, true, nil
}

func (c *Client) getJSON(ctx context.Context, path string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	c.logger.LogDebug("VolumeAPI: GET %s", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return utilities.DoJSONRequest(c.HTTPClient, req, c.maxRetries, c.retryDelay, result)
}
