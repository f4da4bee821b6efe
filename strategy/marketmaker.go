package strategy

import "math"

// MarketMaker sizes volume against the live order book: it backs off when the
// spread is tight, leans into imbalance, and never exceeds a tenth of the
// available liquidity depth.
type MarketMaker struct {
	Spread             float64
	Depth              float64
	ImbalanceThreshold float64
}

// NewMarketMaker constructs a market-maker strategy with the given tunables.
func NewMarketMaker(spread, depth, imbalanceThreshold float64) *MarketMaker {
	return &MarketMaker{
		Spread:             spread,
		Depth:              depth,
		ImbalanceThreshold: imbalanceThreshold,
	}
}

func (s *MarketMaker) Name() string { return "market_maker" }

// CalculateVolume fails closed: without market data there is nothing safe to
// quote against, so the result is 0.
func (s *MarketMaker) CalculateVolume(m VolumeMetrics) float64 {
	if m.Market == nil {
		return 0
	}

	imbalance := m.Market.OrderBookImbalance
	currentSpread := m.Market.CurrentSpread
	if currentSpread == 0 {
		currentSpread = s.Spread
	}
	liquidityDepth := m.Market.LiquidityDepth
	if liquidityDepth == 0 {
		liquidityDepth = s.Depth
	}

	volume := s.Depth

	// Tight spread means quoting adds little; halve the size.
	if currentSpread < s.Spread*0.5 {
		volume *= 0.5
	}

	// Lean into a lopsided book.
	if math.Abs(imbalance) > s.ImbalanceThreshold {
		volume *= 1 + math.Abs(imbalance)
	}

	// Never take more than 10% of the available depth.
	return math.Min(volume, liquidityDepth*0.1)
}
