package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"volumeforge/dataprovider"
	"volumeforge/pkg/executor"
	"volumeforge/utilities"
)

func newTestBooster(cfg *utilities.AppConfig, provider dataprovider.MarketDataProvider, trader *fakeTrader) *BoosterBot {
	logger := utilities.NewLogger(utilities.Error)
	buy, sell := executor.RatioForStyle(cfg.Booster.Style)
	exec := executor.New(trader, logger, cfg.Trading.Wallets, buy, sell, "booster-"+cfg.Booster.Style)
	return NewBoosterBot(cfg, provider, exec, &stubNotifier{}, logger)
}

func boosterConfig() *utilities.AppConfig {
	cfg := testConfig()
	cfg.Booster.Enabled = true
	cfg.Booster.TargetVolume = 10000
	cfg.Booster.MaxBoosts = 5
	cfg.Booster.CooldownSec = 300
	cfg.Booster.Style = "moderate"
	return cfg
}

func TestBoosterBoostsTowardTarget(t *testing.T) {
	provider := &stubProvider{stats: dataprovider.VolumeStats{TotalVolume: 4000}}
	trader := &fakeTrader{}
	b := newTestBooster(boosterConfig(), provider, trader)

	b.tick(context.Background())

	boosts := b.Metrics()
	assert.Equal(t, 1, boosts.TotalBoosts)
	assert.Equal(t, 1, boosts.SuccessfulBoosts)
	// Moderate style closes half the 6000 gap.
	assert.InDelta(t, 3000.0, boosts.VolumeIncrease, 1e-9)
	assert.InDelta(t, 1.0, boosts.BoostSuccessRate, 1e-9)
	assert.Equal(t, 4, trader.calls)
}

func TestBoosterHoldsAtTarget(t *testing.T) {
	provider := &stubProvider{stats: dataprovider.VolumeStats{TotalVolume: 12000}}
	trader := &fakeTrader{}
	b := newTestBooster(boosterConfig(), provider, trader)

	b.tick(context.Background())

	assert.Zero(t, b.Metrics().TotalBoosts)
	assert.Zero(t, trader.calls)
}

func TestBoosterCooldownBetweenBoosts(t *testing.T) {
	provider := &stubProvider{stats: dataprovider.VolumeStats{TotalVolume: 4000}}
	trader := &fakeTrader{}
	b := newTestBooster(boosterConfig(), provider, trader)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.tick(context.Background())
	b.tick(context.Background()) // inside cooldown, gate denies
	assert.Equal(t, 1, b.Metrics().TotalBoosts)

	now = now.Add(5 * time.Minute) // cooldown fully elapsed
	b.tick(context.Background())
	assert.Equal(t, 2, b.Metrics().TotalBoosts)
}

func TestBoosterMaxBoostsExhausted(t *testing.T) {
	cfg := boosterConfig()
	cfg.Booster.MaxBoosts = 2
	cfg.Booster.CooldownSec = 1

	provider := &stubProvider{stats: dataprovider.VolumeStats{TotalVolume: 4000}}
	trader := &fakeTrader{}
	b := newTestBooster(cfg, provider, trader)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		b.tick(context.Background())
		now = now.Add(time.Minute)
	}

	assert.Equal(t, 2, b.Metrics().TotalBoosts, "boost budget is capped")
}

func TestBoosterStartStopLifecycle(t *testing.T) {
	provider := &stubProvider{stats: dataprovider.VolumeStats{TotalVolume: 12000}}
	b := newTestBooster(boosterConfig(), provider, &fakeTrader{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b.Start(ctx)
	assert.True(t, b.Running())
	b.Start(ctx) // warning no-op

	b.Stop()
	b.Stop() // idempotent
	assert.False(t, b.Running())
}

func TestBoosterFetchFailureSkipsCycle(t *testing.T) {
	provider := &stubProvider{statsErr: assert.AnError}
	trader := &fakeTrader{}
	b := newTestBooster(boosterConfig(), provider, trader)

	b.tick(context.Background())

	assert.Zero(t, b.Metrics().TotalBoosts)
	assert.Zero(t, trader.calls)
}
