package vlist

import "context"

// LedgerResult is delivered by PrecomputeLedger.
type LedgerResult struct {
	Ledger *Ledger
	Err    error
}

// PrecomputeLedger builds a ledger on its own goroutine, e.g. the layout for
// the other orientation so a rotation can swap it in without re-querying every
// row. The result is independent of any live ledger; hand it to
// Engine.SwapLedger from the event goroutine. heights must be safe to call
// from another goroutine.
func PrecomputeLedger(ctx context.Context, rowCount int, heights func(row int) float64, fixedHeight, margin float64) <-chan LedgerResult {
	out := make(chan LedgerResult, 1)
	go func() {
		defer close(out)
		l, err := BuildLedgerContext(ctx, rowCount, heights, fixedHeight, margin)
		out <- LedgerResult{Ledger: l, Err: err}
	}()
	return out
}
