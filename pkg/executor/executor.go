// Package executor fans an approved volume amount out across the configured
// wallet set, isolating per-wallet failures.
package executor

import (
	"context"
	"sync"

	"volumeforge/pkg/trade"
	"volumeforge/utilities"
)

// WalletError records one failed trade leg for one wallet.
type WalletError struct {
	Wallet string `json:"wallet"`
	Side   string `json:"side"`
	Err    string `json:"error"`
}

// Report aggregates the outcome of one fan-out. Attempted counts wallets
// processed; Succeeded counts wallets whose buy and sell legs both went
// through.
type Report struct {
	Strategy  string        `json:"strategy"`
	Total     float64       `json:"total"`
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Errors    []WalletError `json:"errors,omitempty"`
}

// RatioForStyle returns the buy/sell split for a named boost style. Unknown
// styles fall back to the moderate 50/50 split.
func RatioForStyle(style string) (buy, sell float64) {
	switch style {
	case "aggressive":
		return 0.7, 0.3
	case "conservative":
		return 0.4, 0.6
	default:
		return 0.5, 0.5
	}
}

// Executor issues per-wallet buy and sell requests for an aggregate amount.
// It never retries; retry policy belongs to the trade client.
type Executor struct {
	trader    trade.Executor
	logger    *utilities.Logger
	wallets   []string
	buyRatio  float64
	sellRatio float64
	label     string
}

// New constructs an executor over the given wallet set and buy/sell split.
func New(trader trade.Executor, logger *utilities.Logger, wallets []string, buyRatio, sellRatio float64, label string) *Executor {
	return &Executor{
		trader:    trader,
		logger:    logger,
		wallets:   wallets,
		buyRatio:  buyRatio,
		sellRatio: sellRatio,
		label:     label,
	}
}

// Execute splits totalAmount into a buy and a sell leg per wallet and fires
// all wallets concurrently. Every wallet is processed regardless of other
// wallets' failures, and all legs complete before Execute returns.
func (e *Executor) Execute(ctx context.Context, totalAmount float64) Report {
	report := Report{
		Strategy:  e.label,
		Total:     totalAmount,
		Attempted: len(e.wallets),
	}
	if totalAmount <= 0 || len(e.wallets) == 0 {
		return report
	}

	buyAmount := totalAmount * e.buyRatio
	sellAmount := totalAmount * e.sellRatio

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, wallet := range e.wallets {
		wg.Add(1)
		go func(wallet string) {
			defer wg.Done()

			walletOK := true

			buyRes := e.trader.ExecuteBuy(ctx, wallet, buyAmount)
			if !buyRes.Success {
				walletOK = false
				mu.Lock()
				report.Errors = append(report.Errors, WalletError{Wallet: wallet, Side: "buy", Err: buyRes.Err})
				mu.Unlock()
			}

			// The sell leg is issued even when the buy leg failed.
			sellRes := e.trader.ExecuteSell(ctx, wallet, sellAmount)
			if !sellRes.Success {
				walletOK = false
				mu.Lock()
				report.Errors = append(report.Errors, WalletError{Wallet: wallet, Side: "sell", Err: sellRes.Err})
				mu.Unlock()
			}

			if walletOK {
				mu.Lock()
				report.Succeeded++
				mu.Unlock()
			}
		}(wallet)
	}
	wg.Wait()

	if len(report.Errors) > 0 {
		e.logger.LogWarn("Executor [%s]: %d/%d wallets completed cleanly (%d failed legs)",
			e.label, report.Succeeded, report.Attempted, len(report.Errors))
	} else {
		e.logger.LogDebug("Executor [%s]: fanned %.4f across %d wallets (buy %.2f / sell %.2f)",
			e.label, totalAmount, report.Attempted, e.buyRatio, e.sellRatio)
	}
	return report
}
