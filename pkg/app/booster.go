package app

import (
	"context"
	"sync"
	"time"

	"volumeforge/dataprovider"
	"volumeforge/notification"
	"volumeforge/pkg/executor"
	"volumeforge/pkg/gate"
	"volumeforge/utilities"
)

// BoostMetrics aggregates the outcome of the booster loop's actions.
type BoostMetrics struct {
	TotalBoosts           int       `json:"total_boosts"`
	SuccessfulBoosts      int       `json:"successful_boosts"`
	VolumeIncrease        float64   `json:"volume_increase"`
	LastBoostTime         time.Time `json:"last_boost_time"`
	BoostSuccessRate      float64   `json:"boost_success_rate"`
	AverageVolumePerBoost float64   `json:"average_volume_per_boost"`
}

// BoosterBot is an independent loop that pushes observed volume toward a
// configured target. Each interval it measures the gap to the target and
// fires a style-scaled boost through its own gate, separate from the trading
// loop's gate.
type BoosterBot struct {
	name         string
	interval     time.Duration
	targetVolume float64
	style        string
	provider     dataprovider.MarketDataProvider
	exec         *executor.Executor
	limits       gate.Gate
	notifier     notification.Notifier
	logger       *utilities.Logger

	now func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}

	stateMu   sync.RWMutex
	gateState gate.State
	boosts    BoostMetrics
}

// boostFraction is the share of the volume gap one boost tries to close.
func boostFraction(style string) float64 {
	switch style {
	case "aggressive":
		return 0.8
	case "conservative":
		return 0.3
	default:
		return 0.5
	}
}

// NewBoosterBot wires the booster loop from config.
func NewBoosterBot(cfg *utilities.AppConfig, provider dataprovider.MarketDataProvider, exec *executor.Executor, notifier notification.Notifier, logger *utilities.Logger) *BoosterBot {
	return &BoosterBot{
		name:         "booster",
		interval:     time.Duration(cfg.Booster.BoostIntervalSec) * time.Second,
		targetVolume: cfg.Booster.TargetVolume,
		style:        cfg.Booster.Style,
		provider:     provider,
		exec:         exec,
		limits: gate.Gate{
			MaxActions: cfg.Booster.MaxBoosts,
			Cooldown:   time.Duration(cfg.Booster.CooldownSec) * time.Second,
		},
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches the boost loop. Start on a running booster is a warning no-op.
func (b *BoosterBot) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		b.logger.LogWarn("Booster: Start called while already running, ignoring.")
		return
	}
	b.running = true
	b.stopCh = make(chan struct{})

	b.logger.LogInfo("Booster: starting (target=%.2f, style=%s, interval=%s)", b.targetVolume, b.style, b.interval)
	go b.run(ctx, b.stopCh)
}

// Stop prevents further boosts. Stopping a stopped booster is a no-op.
func (b *BoosterBot) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return
	}
	b.running = false
	close(b.stopCh)
	b.logger.LogInfo("Booster: stopped")
}

// Running reports the lifecycle state.
func (b *BoosterBot) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

// Metrics returns a copy of the accumulated boost metrics.
func (b *BoosterBot) Metrics() BoostMetrics {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.boosts
}

// GateState returns the booster's gate state.
func (b *BoosterBot) GateState() gate.State {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.gateState
}

func (b *BoosterBot) run(ctx context.Context, stopCh <-chan struct{}) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			b.tick(ctx)
		}
	}
}

func (b *BoosterBot) tick(ctx context.Context) {
	now := b.now()

	stats, err := b.provider.GetVolumeStats(ctx)
	if err != nil {
		b.logger.LogWarn("Booster: volume stats fetch failed, skipping boost cycle: %v", err)
		return
	}

	gap := b.targetVolume - stats.TotalVolume
	if gap <= 0 {
		b.logger.LogDebug("Booster: volume %.2f already at target %.2f", stats.TotalVolume, b.targetVolume)
		return
	}

	b.stateMu.RLock()
	state := b.gateState
	b.stateMu.RUnlock()
	if !b.limits.Permit(state, now) {
		b.logger.LogDebug("Booster: gate denied boost (%d/%d boosts, last at %s)",
			state.TotalActions, b.limits.MaxActions, state.LastActionTime.Format(time.RFC3339))
		return
	}

	amount := gap * boostFraction(b.style)
	b.logger.LogInfo("Booster: boosting %.2f toward target %.2f (gap %.2f, style %s)", amount, b.targetVolume, gap, b.style)

	report := b.exec.Execute(ctx, amount)

	b.stateMu.Lock()
	gate.Record(&b.gateState, now)
	b.boosts.TotalBoosts++
	b.boosts.LastBoostTime = now
	if report.Succeeded > 0 {
		b.boosts.SuccessfulBoosts++
		b.boosts.VolumeIncrease += amount
	}
	b.boosts.BoostSuccessRate = float64(b.boosts.SuccessfulBoosts) / float64(b.boosts.TotalBoosts)
	if b.boosts.SuccessfulBoosts > 0 {
		b.boosts.AverageVolumePerBoost = b.boosts.VolumeIncrease / float64(b.boosts.SuccessfulBoosts)
	}
	boosts := b.boosts
	b.stateMu.Unlock()

	if report.Succeeded == 0 {
		b.logger.LogWarn("Booster: boost completed with no successful wallets (%d attempted)", report.Attempted)
	}

	event := notification.Event{
		Title:    "Booster: volume boost dispatched",
		Severity: notification.SeverityInfo,
		Fields: []notification.Field{
			{Name: "Amount", Value: notification.FormatAmount(amount), Inline: true},
			{Name: "Target", Value: notification.FormatAmount(b.targetVolume), Inline: true},
			{Name: "Wallets OK", Value: notification.FormatAmount(float64(report.Succeeded)), Inline: true},
			{Name: "Total Boosts", Value: notification.FormatAmount(float64(boosts.TotalBoosts)), Inline: true},
			{Name: "Success Rate", Value: notification.FormatPercent(boosts.BoostSuccessRate * 100), Inline: true},
		},
	}
	if err := b.notifier.Send(event); err != nil {
		b.logger.LogError("Booster: notification dispatch failed: %v", err)
	}
}
