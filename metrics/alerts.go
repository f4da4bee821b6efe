package metrics

// Thresholds holds the optional alert thresholds. A nil threshold means the
// corresponding alert can never fire.
type Thresholds struct {
	Volume    *float64
	Price     *float64
	Liquidity *float64
}

// AlertState holds the boolean alert outcomes for one snapshot. Alerts are
// level-triggered: they fire on every evaluation while the threshold remains
// exceeded.
type AlertState struct {
	Volume    bool `json:"volume"`
	Price     bool `json:"price"`
	Liquidity bool `json:"liquidity"`
}

// Any reports whether at least one alert is raised.
func (a AlertState) Any() bool {
	return a.Volume || a.Price || a.Liquidity
}

// Evaluate compares the snapshot against the configured thresholds. An alert is
// raised iff its threshold is defined and the current value strictly exceeds it.
func Evaluate(current Snapshot, t Thresholds) AlertState {
	return AlertState{
		Volume:    t.Volume != nil && current.Volume > *t.Volume,
		Price:     t.Price != nil && current.Price > *t.Price,
		Liquidity: t.Liquidity != nil && current.Liquidity > *t.Liquidity,
	}
}
