package strategy

import (
	"fmt"
	"time"

	"volumeforge/utilities"
)

// NewFromConfig builds the configured volume strategy. The config is expected
// to have gone through ResolveDefaults already.
func NewFromConfig(cfg utilities.StrategyConfig) (VolumeStrategy, error) {
	switch cfg.Name {
	case "fixed":
		return &Fixed{Amount: cfg.FixedAmount}, nil
	case "adaptive":
		return &Adaptive{}, nil
	case "market_maker":
		return NewMarketMaker(cfg.MarketMaker.Spread, cfg.MarketMaker.Depth, cfg.MarketMaker.ImbalanceThreshold), nil
	case "booster":
		return NewBooster(cfg.Booster.BoostFactor, cfg.Booster.MaxBoost, time.Duration(cfg.Booster.CooldownSec)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Name)
	}
}
