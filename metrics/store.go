package metrics

import (
	"sync"
	"time"
)

// Snapshot is a single point-in-time observation of the target's market
// activity. Snapshots are immutable once created.
type Snapshot struct {
	Timestamp        time.Time `json:"timestamp"`
	Volume           float64   `json:"volume"`
	BuyVolume        float64   `json:"buy_volume"`
	SellVolume       float64   `json:"sell_volume"`
	Price            float64   `json:"price"`
	Liquidity        float64   `json:"liquidity"`
	TradeCount       int       `json:"trade_count"`
	AverageTradeSize float64   `json:"average_trade_size"`
}

// NewSnapshot builds a snapshot and derives the average trade size from the
// buy/sell volumes, guarding against division by zero.
func NewSnapshot(ts time.Time, volume, buyVolume, sellVolume, price, liquidity float64, tradeCount int) Snapshot {
	s := Snapshot{
		Timestamp:  ts,
		Volume:     volume,
		BuyVolume:  buyVolume,
		SellVolume: sellVolume,
		Price:      price,
		Liquidity:  liquidity,
		TradeCount: tradeCount,
	}
	if total := buyVolume + sellVolume; total > 0 {
		s.AverageTradeSize = volume / total
	}
	return s
}

// Trend holds the percentage deltas between the two most recent snapshots.
type Trend struct {
	Volume    float64 `json:"volume"`
	Price     float64 `json:"price"`
	Liquidity float64 `json:"liquidity"`
}

// Store keeps an oldest-first history of snapshots bounded by a retention
// window. Callers must record snapshots in wall-clock order: trend computation
// always uses the two most recently appended entries, not time-sorted ones.
type Store struct {
	mu        sync.RWMutex
	retention time.Duration
	history   []Snapshot
	now       func() time.Time
}

// NewStore creates a store with the given retention window.
func NewStore(retention time.Duration) *Store {
	return &Store{
		retention: retention,
		now:       time.Now,
	}
}

// Record appends a snapshot and evicts entries older than the retention window.
func (s *Store) Record(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, snap)

	cutoff := s.now().Add(-s.retention)
	firstKept := 0
	for firstKept < len(s.history) && !s.history[firstKept].Timestamp.After(cutoff) {
		firstKept++
	}
	if firstKept > 0 {
		s.history = append(s.history[:0], s.history[firstKept:]...)
	}
}

// Current returns the last recorded snapshot. With an empty history it returns
// the zero-valued snapshot stamped with the current time; callers distinguish
// it only by its all-zero fields.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		return Snapshot{Timestamp: s.now()}
	}
	return s.history[len(s.history)-1]
}

// Trend returns the percentage change between the two most recently appended
// snapshots, per metric. Fewer than two entries yields the zero trend, and a
// zero previous value yields a zero delta for that metric.
func (s *Store) Trend() Trend {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) < 2 {
		return Trend{}
	}
	prev := s.history[len(s.history)-2]
	cur := s.history[len(s.history)-1]
	return Trend{
		Volume:    pctChange(prev.Volume, cur.Volume),
		Price:     pctChange(prev.Price, cur.Price),
		Liquidity: pctChange(prev.Liquidity, cur.Liquidity),
	}
}

// History returns a copy of the retained snapshots, oldest first.
func (s *Store) History() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Snapshot, len(s.history))
	copy(out, s.history)
	return out
}

// Len returns the number of retained snapshots.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

func pctChange(previous, current float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
