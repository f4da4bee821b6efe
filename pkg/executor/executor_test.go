package executor

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volumeforge/pkg/trade"
	"volumeforge/utilities"
)

// stubTrader records every leg it receives and fails the wallets listed in
// failBuy/failSell.
type stubTrader struct {
	mu       sync.Mutex
	buys     map[string]float64
	sells    map[string]float64
	failBuy  map[string]bool
	failSell map[string]bool
}

func newStubTrader() *stubTrader {
	return &stubTrader{
		buys:     map[string]float64{},
		sells:    map[string]float64{},
		failBuy:  map[string]bool{},
		failSell: map[string]bool{},
	}
}

func (s *stubTrader) ExecuteBuy(_ context.Context, wallet string, amount float64) trade.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buys[wallet] = amount
	if s.failBuy[wallet] {
		return trade.Result{Success: false, Err: "insufficient funds"}
	}
	return trade.Result{Success: true, TransactionID: "buy-" + wallet}
}

func (s *stubTrader) ExecuteSell(_ context.Context, wallet string, amount float64) trade.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sells[wallet] = amount
	if s.failSell[wallet] {
		return trade.Result{Success: false, Err: "rejected"}
	}
	return trade.Result{Success: true, TransactionID: "sell-" + wallet}
}

func testLogger() *utilities.Logger {
	return utilities.NewLogger(utilities.Error)
}

func TestExecuteModerateSplit(t *testing.T) {
	trader := newStubTrader()
	e := New(trader, testLogger(), []string{"w1", "w2"}, 0.5, 0.5, "moderate")

	report := e.Execute(context.Background(), 100)

	assert.Equal(t, 2, report.Attempted)
	assert.Equal(t, 2, report.Succeeded)
	assert.Empty(t, report.Errors)

	// Each wallet receives the full split, not a per-wallet share of it.
	for _, wallet := range []string{"w1", "w2"} {
		assert.InDelta(t, 50.0, trader.buys[wallet], 1e-9)
		assert.InDelta(t, 50.0, trader.sells[wallet], 1e-9)
	}
}

func TestExecuteFailureIsolation(t *testing.T) {
	trader := newStubTrader()
	trader.failBuy["w2"] = true
	e := New(trader, testLogger(), []string{"w1", "w2", "w3"}, 0.7, 0.3, "aggressive")

	report := e.Execute(context.Background(), 1000)

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 2, report.Succeeded)

	require.Len(t, report.Errors, 1)
	assert.Equal(t, "w2", report.Errors[0].Wallet)
	assert.Equal(t, "buy", report.Errors[0].Side)

	// The failing wallet's sell leg and the other wallets still ran.
	assert.Len(t, trader.buys, 3)
	assert.Len(t, trader.sells, 3)
}

func TestExecuteBothLegsFail(t *testing.T) {
	trader := newStubTrader()
	trader.failBuy["w1"] = true
	trader.failSell["w1"] = true
	e := New(trader, testLogger(), []string{"w1"}, 0.5, 0.5, "moderate")

	report := e.Execute(context.Background(), 100)

	assert.Equal(t, 1, report.Attempted)
	assert.Zero(t, report.Succeeded)
	assert.Len(t, report.Errors, 2)
}

func TestExecuteZeroAmountNoOp(t *testing.T) {
	trader := newStubTrader()
	e := New(trader, testLogger(), []string{"w1"}, 0.5, 0.5, "moderate")

	report := e.Execute(context.Background(), 0)

	assert.Equal(t, 1, report.Attempted)
	assert.Zero(t, report.Succeeded)
	assert.Empty(t, trader.buys)
	assert.Empty(t, trader.sells)
}

func TestExecuteNoWallets(t *testing.T) {
	trader := newStubTrader()
	e := New(trader, testLogger(), nil, 0.5, 0.5, "moderate")

	report := e.Execute(context.Background(), 100)

	assert.Zero(t, report.Attempted)
	assert.Empty(t, trader.buys)
}

func TestRatioForStyle(t *testing.T) {
	tests := []struct {
		style     string
		buy, sell float64
	}{
		{"aggressive", 0.7, 0.3},
		{"moderate", 0.5, 0.5},
		{"conservative", 0.4, 0.6},
		{"unknown", 0.5, 0.5},
		{"", 0.5, 0.5},
	}
	for _, tc := range tests {
		buy, sell := RatioForStyle(tc.style)
		assert.Equal(t, tc.buy, buy, tc.style)
		assert.Equal(t, tc.sell, sell, tc.style)
	}
}
