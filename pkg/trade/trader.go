// Package trade defines the contract for the external trade execution API and
// its HTTP implementation.
package trade

import "context"

// Result is the outcome of a single trade request. Ordinary trade failure is
// encoded here rather than returned as an error, so the execution fan-out can
// treat every wallet uniformly.
type Result struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Err           string `json:"error,omitempty"`
}

// Executor is the trade execution client consumed by the fan-out. Retry
// policy, if any, belongs to implementations of this interface, never to the
// callers.
type Executor interface {
	// ExecuteBuy issues a buy of the given amount from the given wallet.
	ExecuteBuy(ctx context.Context, wallet string, amount float64) Result

	// ExecuteSell issues a sell of the given amount from the given wallet.
	ExecuteSell(ctx context.Context, wallet string, amount float64) Result
}
