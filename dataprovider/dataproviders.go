// Package dataprovider defines the narrow contracts for the external data
// sources the bot consumes: the volume/market stats API and the chain RPC.
package dataprovider

import (
	"context"
	"time"
)

// VolumeStats is the aggregate volume picture returned by the stats endpoint.
type VolumeStats struct {
	TotalVolume float64   `json:"totalVolume"`
	BuyVolume   float64   `json:"buyVolume"`
	SellVolume  float64   `json:"sellVolume"`
	LastUpdate  time.Time `json:"lastUpdate"`
}

// MarketDepth is the optional order-book view used by the market-maker
// strategy. Providers that cannot supply it return ok=false.
type MarketDepth struct {
	CurrentSpread      float64 `json:"currentSpread"`
	LiquidityDepth     float64 `json:"liquidityDepth"`
	OrderBookImbalance float64 `json:"orderBookImbalance"`
}

// MarketDataProvider supplies the per-tick observations the scheduler records.
// GetPrice, GetLiquidity, GetTradeCount and GetMarketDepth are optional
// capabilities: a failing call degrades the snapshot, it never aborts a tick.
type MarketDataProvider interface {
	GetVolumeStats(ctx context.Context) (VolumeStats, error)
	GetPrice(ctx context.Context) (float64, error)
	GetLiquidity(ctx context.Context) (float64, error)
	GetTradeCount(ctx context.Context) (int, error)
	GetMarketDepth(ctx context.Context) (MarketDepth, bool, error)
}

// ChainProvider exposes wallet balances from the chain RPC endpoint.
type ChainProvider interface {
	// GetBalance returns the wallet balance in SOL.
	GetBalance(ctx context.Context, address string) (float64, error)
}
