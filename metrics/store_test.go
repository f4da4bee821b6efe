package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTrendFewerThanTwoSnapshots(t *testing.T) {
	s := NewStore(24 * time.Hour)

	assert.Equal(t, Trend{}, s.Trend(), "empty history yields zero trend")

	s.Record(NewSnapshot(time.Now(), 100, 60, 40, 1.5, 5000, 10))
	assert.Equal(t, Trend{}, s.Trend(), "single snapshot yields zero trend")
}

func TestTrendComputation(t *testing.T) {
	s := NewStore(24 * time.Hour)
	now := time.Now()

	s.Record(NewSnapshot(now.Add(-time.Minute), 100, 60, 40, 2.0, 1000, 5))
	s.Record(NewSnapshot(now, 150, 90, 60, 1.0, 1500, 8))

	trend := s.Trend()
	assert.InDelta(t, 50.0, trend.Volume, 1e-9)
	assert.InDelta(t, -50.0, trend.Price, 1e-9)
	assert.InDelta(t, 50.0, trend.Liquidity, 1e-9)
}

func TestTrendZeroPreviousGuard(t *testing.T) {
	s := NewStore(24 * time.Hour)
	now := time.Now()

	s.Record(NewSnapshot(now.Add(-time.Minute), 0, 0, 0, 0, 1000, 0))
	s.Record(NewSnapshot(now, 500, 250, 250, 2.0, 2000, 9))

	trend := s.Trend()
	assert.Zero(t, trend.Volume, "zero previous volume must not divide")
	assert.Zero(t, trend.Price)
	assert.InDelta(t, 100.0, trend.Liquidity, 1e-9)
}

func TestTrendUsesMostRecentlyAppended(t *testing.T) {
	s := NewStore(24 * time.Hour)
	now := time.Now()

	s.Record(NewSnapshot(now, 100, 50, 50, 1, 1000, 1))
	// Out-of-order timestamp: trend still compares append order.
	s.Record(NewSnapshot(now.Add(-time.Hour), 200, 100, 100, 1, 1000, 1))

	assert.InDelta(t, 100.0, s.Trend().Volume, 1e-9)
}

func TestRetentionEviction(t *testing.T) {
	s := NewStore(1 * time.Hour)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	s.Record(NewSnapshot(now.Add(-3*time.Hour), 1, 1, 0, 1, 1, 1))
	s.Record(NewSnapshot(now.Add(-2*time.Hour), 2, 2, 0, 1, 1, 1))
	s.Record(NewSnapshot(now.Add(-30*time.Minute), 3, 3, 0, 1, 1, 1))
	s.Record(NewSnapshot(now, 4, 4, 0, 1, 1, 1))

	history := s.History()
	require.Len(t, history, 2)
	for _, snap := range history {
		assert.True(t, snap.Timestamp.After(now.Add(-time.Hour)),
			"retained snapshot %v must be inside the retention window", snap.Timestamp)
	}
	assert.Equal(t, 3.0, history[0].Volume)
	assert.Equal(t, 4.0, history[1].Volume)
}

func TestRetentionBoundaryExcluded(t *testing.T) {
	s := NewStore(1 * time.Hour)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	// Exactly at the cutoff is not strictly after it, so it is evicted.
	s.Record(NewSnapshot(now.Add(-time.Hour), 1, 1, 0, 1, 1, 1))
	s.Record(NewSnapshot(now, 2, 2, 0, 1, 1, 1))

	require.Equal(t, 1, s.Len())
	assert.Equal(t, 2.0, s.Current().Volume)
}

func TestCurrentEmptySentinel(t *testing.T) {
	s := NewStore(24 * time.Hour)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(now)

	current := s.Current()
	assert.Equal(t, now, current.Timestamp)
	assert.Zero(t, current.Volume)
	assert.Zero(t, current.Price)
	assert.Zero(t, current.Liquidity)
	assert.Zero(t, current.TradeCount)
}

func TestCurrentReturnsLastRecorded(t *testing.T) {
	s := NewStore(24 * time.Hour)
	now := time.Now()

	s.Record(NewSnapshot(now.Add(-time.Minute), 100, 50, 50, 1, 1, 1))
	s.Record(NewSnapshot(now, 200, 100, 100, 2, 2, 2))

	assert.Equal(t, 200.0, s.Current().Volume)
}

func TestNewSnapshotAverageTradeSize(t *testing.T) {
	snap := NewSnapshot(time.Now(), 100, 60, 40, 1, 1, 10)
	assert.InDelta(t, 1.0, snap.AverageTradeSize, 1e-9)

	empty := NewSnapshot(time.Now(), 100, 0, 0, 1, 1, 10)
	assert.Zero(t, empty.AverageTradeSize, "zero buy+sell volume must not divide")
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewStore(24 * time.Hour)
	s.Record(NewSnapshot(time.Now(), 100, 50, 50, 1, 1, 1))

	history := s.History()
	history[0].Volume = 999

	assert.Equal(t, 100.0, s.Current().Volume, "mutating the returned slice must not affect the store")
}
