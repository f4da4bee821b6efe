package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"volumeforge/dataprovider"
	"volumeforge/metrics"
	"volumeforge/notification"
	"volumeforge/pkg/executor"
	"volumeforge/pkg/gate"
	"volumeforge/strategy"
	"volumeforge/utilities"
)

// VolumeBot is one recurring control loop: each tick it fetches the current
// market picture, records a snapshot, asks the strategy for an amount, fans it
// out across the wallet set if the gate permits, and evaluates alerts.
//
// Lifecycle is Stopped -> Running -> Stopped. Start while running is a warning
// no-op; Stop while stopped is a no-op. Stop guarantees no further tick is
// scheduled but does not await a tick already in flight.
type VolumeBot struct {
	name          string
	interval      time.Duration
	provider      dataprovider.MarketDataProvider
	strat         strategy.VolumeStrategy
	exec          *executor.Executor
	limits        gate.Gate
	store         *metrics.Store
	thresholds    metrics.Thresholds
	notifier      notification.Notifier
	logger        *utilities.Logger
	notifyUpdates bool

	minVolume float64
	maxVolume float64
	peakHours [][2]int

	rng *rand.Rand
	now func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}

	busy atomic.Bool

	stateMu    sync.RWMutex
	gateState  gate.State
	perf       strategy.Performance
	hasPerf    bool
	lastReport executor.Report
	lastAlerts metrics.AlertState
	tickCount  int
}

// BotStatus is a read-only view of a bot's lifecycle and last tick outcome,
// served by the status endpoint.
type BotStatus struct {
	Name       string             `json:"name"`
	Strategy   string             `json:"strategy"`
	Running    bool               `json:"running"`
	Ticks      int                `json:"ticks"`
	Gate       gate.State         `json:"gate"`
	Alerts     metrics.AlertState `json:"alerts"`
	LastReport executor.Report    `json:"last_report"`
}

// NewVolumeBot wires one control loop from config. The caller owns the store
// and notifier; the bot only reads config sections relevant to the loop.
func NewVolumeBot(name string, cfg *utilities.AppConfig, provider dataprovider.MarketDataProvider, strat strategy.VolumeStrategy, exec *executor.Executor, store *metrics.Store, notifier notification.Notifier, logger *utilities.Logger) (*VolumeBot, error) {
	peakHours, err := utilities.ParsePeakHours(cfg.Trading.PeakHours)
	if err != nil {
		return nil, fmt.Errorf("bot %s: invalid peak hours: %w", name, err)
	}
	if cfg.Trading.MaxVolume < cfg.Trading.MinVolume {
		return nil, fmt.Errorf("bot %s: max_volume %.2f is below min_volume %.2f", name, cfg.Trading.MaxVolume, cfg.Trading.MinVolume)
	}

	return &VolumeBot{
		name:     name,
		interval: time.Duration(cfg.Trading.IntervalSec) * time.Second,
		provider: provider,
		strat:    strat,
		exec:     exec,
		limits: gate.Gate{
			MaxActions: cfg.Gate.MaxActions,
			Cooldown:   cfg.GateCooldown(),
		},
		store: store,
		thresholds: metrics.Thresholds{
			Volume:    cfg.Analytics.AlertThresholds.Volume,
			Price:     cfg.Analytics.AlertThresholds.Price,
			Liquidity: cfg.Analytics.AlertThresholds.Liquidity,
		},
		notifier:      notifier,
		logger:        logger,
		notifyUpdates: cfg.Analytics.NotifyUpdates,
		minVolume:     cfg.Trading.MinVolume,
		maxVolume:     cfg.Trading.MaxVolume,
		peakHours:     peakHours,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		now:           time.Now,
	}, nil
}

// Start launches the tick loop. Calling Start on a running bot logs a warning
// and does nothing.
func (b *VolumeBot) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		b.logger.LogWarn("Bot %s: Start called while already running, ignoring.", b.name)
		return
	}
	b.running = true
	b.stopCh = make(chan struct{})

	b.logger.LogInfo("Bot %s: starting (strategy=%s, interval=%s)", b.name, b.strat.Name(), b.interval)
	go b.run(ctx, b.stopCh)
}

// Stop prevents any further tick from being scheduled. It does not wait for an
// in-flight tick to finish. Stopping a stopped bot is a no-op.
func (b *VolumeBot) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return
	}
	b.running = false
	close(b.stopCh)
	b.logger.LogInfo("Bot %s: stopped", b.name)
}

// Running reports the lifecycle state.
func (b *VolumeBot) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

// Store exposes the metrics history backing this bot.
func (b *VolumeBot) Store() *metrics.Store {
	return b.store
}

// Status returns a snapshot of the bot's lifecycle and last tick outcome.
func (b *VolumeBot) Status() BotStatus {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return BotStatus{
		Name:       b.name,
		Strategy:   b.strat.Name(),
		Running:    b.Running(),
		Ticks:      b.tickCount,
		Gate:       b.gateState,
		Alerts:     b.lastAlerts,
		LastReport: b.lastReport,
	}
}

func (b *VolumeBot) run(ctx context.Context, stopCh <-chan struct{}) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.dispatchTick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			b.dispatchTick(ctx)
		}
	}
}

// dispatchTick runs one tick unless the previous one is still in flight, in
// which case the tick is skipped to bound concurrent execution fan-out.
func (b *VolumeBot) dispatchTick(ctx context.Context) {
	if !b.busy.CompareAndSwap(false, true) {
		b.logger.LogWarn("Bot %s: previous tick still running, skipping this tick", b.name)
		return
	}
	go func() {
		defer b.busy.Store(false)
		b.tick(ctx)
	}()
}

// tick performs one pass of the control loop. Any collaborator failure inside
// the tick is logged and tolerated; the loop itself never terminates on error.
func (b *VolumeBot) tick(ctx context.Context) {
	now := b.now()

	snap, market := b.collect(ctx, now)
	b.store.Record(snap)

	if target := b.targetVolume(now); target > 0 && snap.Volume >= target {
		b.logger.LogDebug("Bot %s: volume %.2f already meets target %.2f, holding", b.name, snap.Volume, target)
	} else {
		amount := b.strat.CalculateVolume(b.buildMetrics(snap, market))
		if amount <= 0 && b.minVolume > 0 {
			// Baseline trade sizing when the strategy offers no amount:
			// uniform within the configured volume bounds.
			amount = b.minVolume + b.rng.Float64()*(b.maxVolume-b.minVolume)
			b.logger.LogDebug("Bot %s: strategy yielded no amount, using baseline size %.2f", b.name, amount)
		}
		if amount > 0 {
			b.dispatchExecution(ctx, now, amount)
		}
	}

	alerts := metrics.Evaluate(snap, b.thresholds)
	trend := b.store.Trend()

	b.stateMu.Lock()
	b.lastAlerts = alerts
	b.tickCount++
	b.stateMu.Unlock()

	if alerts.Any() || b.notifyUpdates {
		if err := b.notifier.Send(b.buildEvent(snap, trend, alerts)); err != nil {
			b.logger.LogError("Bot %s: notification dispatch failed: %v", b.name, err)
		}
	}
}

func (b *VolumeBot) dispatchExecution(ctx context.Context, now time.Time, amount float64) {
	b.stateMu.RLock()
	state := b.gateState
	b.stateMu.RUnlock()

	if !b.limits.Permit(state, now) {
		b.logger.LogDebug("Bot %s: gate denied action (%d/%d actions, last at %s)",
			b.name, state.TotalActions, b.limits.MaxActions, state.LastActionTime.Format(time.RFC3339))
		return
	}

	started := time.Now()
	report := b.exec.Execute(ctx, amount)
	elapsed := time.Since(started)

	b.stateMu.Lock()
	gate.Record(&b.gateState, now)
	b.lastReport = report
	if report.Attempted > 0 {
		b.perf.SuccessRate = float64(report.Succeeded) / float64(report.Attempted)
		b.perf.AverageExecutionTime = elapsed.Seconds()
		b.hasPerf = true
	}
	b.stateMu.Unlock()
}

// collect fetches the external market picture. The volume stats call is the
// primary source; the rest degrade the snapshot individually on failure.
func (b *VolumeBot) collect(ctx context.Context, now time.Time) (metrics.Snapshot, *strategy.MarketState) {
	stats, err := b.provider.GetVolumeStats(ctx)
	if err != nil {
		b.logger.LogWarn("Bot %s: volume stats fetch failed, proceeding with empty snapshot: %v", b.name, err)
	}
	price, err := b.provider.GetPrice(ctx)
	if err != nil {
		b.logger.LogDebug("Bot %s: price fetch failed: %v", b.name, err)
	}
	liquidity, err := b.provider.GetLiquidity(ctx)
	if err != nil {
		b.logger.LogDebug("Bot %s: liquidity fetch failed: %v", b.name, err)
	}
	tradeCount, err := b.provider.GetTradeCount(ctx)
	if err != nil {
		b.logger.LogDebug("Bot %s: trade count fetch failed: %v", b.name, err)
	}

	var market *strategy.MarketState
	depth, ok, err := b.provider.GetMarketDepth(ctx)
	if err != nil {
		b.logger.LogDebug("Bot %s: market depth fetch failed: %v", b.name, err)
	} else if ok {
		market = &strategy.MarketState{
			CurrentSpread:      depth.CurrentSpread,
			LiquidityDepth:     depth.LiquidityDepth,
			OrderBookImbalance: depth.OrderBookImbalance,
		}
	}

	snap := metrics.NewSnapshot(now, stats.TotalVolume, stats.BuyVolume, stats.SellVolume, price, liquidity, tradeCount)
	return snap, market
}

func (b *VolumeBot) buildMetrics(snap metrics.Snapshot, market *strategy.MarketState) strategy.VolumeMetrics {
	m := strategy.VolumeMetrics{
		TotalVolume:       snap.Volume,
		TransactionsCount: snap.TradeCount,
		AverageSpeed:      snap.Volume / b.interval.Seconds(),
		LastUpdate:        snap.Timestamp,
		Market:            market,
	}
	b.stateMu.RLock()
	if b.hasPerf {
		perf := b.perf
		m.Performance = &perf
	}
	b.stateMu.RUnlock()
	return m
}

// targetVolume returns the per-tick volume target: 1.5x the max volume inside
// a configured peak-hour window, the min volume outside one. Zero disables
// target gating.
func (b *VolumeBot) targetVolume(now time.Time) float64 {
	if len(b.peakHours) == 0 || b.maxVolume <= 0 {
		return 0
	}
	if utilities.IsPeakHour(now.Hour(), b.peakHours) {
		return b.maxVolume * 1.5
	}
	return b.minVolume
}

func (b *VolumeBot) buildEvent(snap metrics.Snapshot, trend metrics.Trend, alerts metrics.AlertState) notification.Event {
	title := fmt.Sprintf("%s: volume update", b.name)
	severity := notification.SeverityInfo
	description := ""
	if alerts.Any() {
		title = fmt.Sprintf("%s: threshold alert", b.name)
		severity = notification.SeverityAlert
		description = alertSummary(alerts)
	}

	return notification.Event{
		Title:       title,
		Description: description,
		Severity:    severity,
		Fields: []notification.Field{
			{Name: "Volume", Value: notification.FormatAmount(snap.Volume), Inline: true},
			{Name: "Buy / Sell", Value: notification.FormatAmount(snap.BuyVolume) + " / " + notification.FormatAmount(snap.SellVolume), Inline: true},
			{Name: "Price", Value: notification.FormatAmount(snap.Price), Inline: true},
			{Name: "Liquidity", Value: notification.FormatAmount(snap.Liquidity), Inline: true},
			{Name: "Trades", Value: fmt.Sprintf("%d", snap.TradeCount), Inline: true},
			{Name: "Volume Trend", Value: notification.FormatPercent(trend.Volume), Inline: true},
			{Name: "Price Trend", Value: notification.FormatPercent(trend.Price), Inline: true},
			{Name: "Liquidity Trend", Value: notification.FormatPercent(trend.Liquidity), Inline: true},
		},
	}
}

func alertSummary(alerts metrics.AlertState) string {
	out := ""
	if alerts.Volume {
		out += "volume threshold exceeded; "
	}
	if alerts.Price {
		out += "price threshold exceeded; "
	}
	if alerts.Liquidity {
		out += "liquidity threshold exceeded; "
	}
	if len(out) > 2 {
		out = out[:len(out)-2]
	}
	return out
}
