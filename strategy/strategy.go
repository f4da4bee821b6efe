package strategy

import "time"

// Performance holds execution quality metrics fed back from the trading loop.
type Performance struct {
	ProfitLoss           float64
	SuccessRate          float64
	AverageExecutionTime float64
}

// MarketState holds order-book derived metrics. The whole section is optional:
// a nil pointer means the market data source did not provide it this tick.
type MarketState struct {
	CurrentSpread      float64
	LiquidityDepth     float64
	OrderBookImbalance float64
}

// VolumeMetrics is the strategy input assembled by the scheduler each tick.
type VolumeMetrics struct {
	TotalVolume       float64
	TransactionsCount int
	AverageSpeed      float64
	LastUpdate        time.Time
	Performance       *Performance
	Market            *MarketState
}

// VolumeStrategy maps current metrics to a volume amount to act on. A zero
// return means "no action", covering both a deliberate hold and insufficient
// input data; strategies never return errors.
type VolumeStrategy interface {
	Name() string
	CalculateVolume(m VolumeMetrics) float64
}

// Fixed returns a constant configured amount every call. Used mainly as a
// baseline and in tests.
type Fixed struct {
	Amount float64
}

func (f *Fixed) Name() string { return "fixed" }

func (f *Fixed) CalculateVolume(VolumeMetrics) float64 {
	return f.Amount
}

// Adaptive scales a tenth of the observed volume by market imbalance and
// execution success rate.
type Adaptive struct{}

func (a *Adaptive) Name() string { return "adaptive" }

// CalculateVolume computes totalVolume * 0.1 * marketFactor * performanceFactor.
// A missing or zero imbalance falls back to a neutral factor of 1, and a
// missing or zero success rate falls back to 0.5.
func (a *Adaptive) CalculateVolume(m VolumeMetrics) float64 {
	baseVolume := m.TotalVolume * 0.1

	marketFactor := 1.0
	if m.Market != nil && m.Market.OrderBookImbalance != 0 {
		marketFactor = m.Market.OrderBookImbalance
	}

	performanceFactor := 0.5
	if m.Performance != nil && m.Performance.SuccessRate != 0 {
		performanceFactor = m.Performance.SuccessRate
	}

	return baseVolume * marketFactor * performanceFactor
}
