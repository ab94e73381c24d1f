package vlist

import (
	"fmt"
	"log/slog"
)

// Engine virtualizes a tall list of rows inside a Host. It keeps a Ledger of
// row extents, binds resources only to the rows the host can currently show,
// and parks the rest in a RecyclePool for reuse.
//
// An Engine is not safe for concurrent use; drive it from the goroutine that
// delivers scroll and layout notifications.
type Engine[K comparable, R Resource[K]] struct {
	source DataSource[K, R]
	host   Host[R]

	ledger *Ledger
	pool   *RecyclePool[K, R]
	window *Window[K, R]

	heights     func(row int) float64
	fixedHeight float64
	margin      float64

	log *slog.Logger
}

// Stats is a snapshot of engine state, for status lines and tests.
type Stats struct {
	Rows    int
	Extent  float64
	Visible int
	Pooled  int
	Pending int
	WindowStats
}

// New creates an engine over source, laid out in host. Rows default to a fixed
// height of 1 with no margin. Call Reload to lay out the rows.
func New[K comparable, R Resource[K]](source DataSource[K, R], host Host[R]) *Engine[K, R] {
	pool := NewRecyclePool[K, R]()
	e := &Engine[K, R]{
		source:      source,
		host:        host,
		ledger:      &Ledger{},
		pool:        pool,
		window:      NewWindow(source, host, pool),
		fixedHeight: 1,
		log:         slog.New(slog.DiscardHandler),
	}
	if hp, ok := source.(HeightProvider); ok {
		e.heights = hp.HeightForRow
	}
	return e
}

// FixedHeight sets the height used for every row when no height function is set.
func (e *Engine[K, R]) FixedHeight(h float64) *Engine[K, R] {
	e.fixedHeight = h
	return e
}

// Margin sets the gap above each row.
func (e *Engine[K, R]) Margin(m float64) *Engine[K, R] {
	e.margin = m
	return e
}

// RowHeights sets a per-row height function, overriding a source HeightProvider.
// nil falls back to the fixed height.
func (e *Engine[K, R]) RowHeights(fn func(row int) float64) *Engine[K, R] {
	e.heights = fn
	return e
}

// Locator selects the offset-to-row strategy.
func (e *Engine[K, R]) Locator(fn Locator) *Engine[K, R] {
	e.window.SetLocator(fn)
	return e
}

// Logger sets the structured logger.
func (e *Engine[K, R]) Logger(log *slog.Logger) *Engine[K, R] {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	e.log = log
	e.window.SetLogger(log)
	return e
}

// Configure applies a Config. The locator name is validated.
func (e *Engine[K, R]) Configure(cfg Config) (*Engine[K, R], error) {
	loc, err := LocatorByName(cfg.Locator)
	if err != nil {
		return e, err
	}
	e.fixedHeight = cfg.FixedRowHeight
	e.margin = cfg.Margin
	e.window.SetLocator(loc)
	return e, nil
}

// Reload releases every bound row, rebuilds the ledger from the source,
// publishes the new extent and lays out the window at the host's offset.
func (e *Engine[K, R]) Reload() error {
	e.window.ReleaseAll()

	n := max(e.source.RowCount(), 0)
	e.ledger = BuildLedger(n, e.heights, e.fixedHeight, e.margin)
	e.host.SetContentExtent(e.ledger.Extent())
	e.log.Debug("reload", "rows", n, "extent", e.ledger.Extent())

	return e.recompute(e.host.Offset())
}

// OnOffsetChanged recomputes the window for a new scroll offset. Rows that
// stay visible cost nothing.
func (e *Engine[K, R]) OnOffsetChanged(offsetY float64) error {
	return e.recompute(offsetY)
}

// OnRowHeightChanged patches one row's height, republishes the extent,
// repositions visible rows below it and recomputes the window.
func (e *Engine[K, R]) OnRowHeightChanged(row int, height float64) error {
	extent, err := e.ledger.PatchHeight(row, height)
	if err != nil {
		return err
	}
	e.host.SetContentExtent(extent)
	e.window.Relayout(e.ledger, row)
	return e.recompute(e.host.Offset())
}

// RefreshRow refills a visible row's resource with fresh content.
// Rows outside the window are ignored.
func (e *Engine[K, R]) RefreshRow(row int) error {
	if row < 0 || row >= e.ledger.Len() {
		return &OutOfRangeError{Op: "refresh row", Row: row, Count: e.ledger.Len()}
	}
	if err := e.window.Rebind(e.ledger, row); err != nil {
		e.log.Error("refresh row", "row", row, "err", err)
		return err
	}
	return nil
}

// SwapLedger installs a ledger built elsewhere, typically by PrecomputeLedger,
// and lays the window out against it.
func (e *Engine[K, R]) SwapLedger(l *Ledger) error {
	if l == nil || l.Len() != max(e.source.RowCount(), 0) {
		return ErrStaleLedger
	}
	e.window.ReleaseAll()
	e.ledger = l
	e.host.SetContentExtent(l.Extent())
	e.log.Debug("swap ledger", "rows", l.Len(), "extent", l.Extent())
	return e.recompute(e.host.Offset())
}

func (e *Engine[K, R]) recompute(offsetY float64) error {
	err := e.window.Recompute(e.ledger, offsetY, e.host.ViewportHeight())
	if err != nil {
		e.log.Error("recompute window", "offset", offsetY, "err", err)
		return fmt.Errorf("recompute at %g: %w", offsetY, err)
	}
	return nil
}

// Ledger returns the live ledger. Callers must not mutate it.
func (e *Engine[K, R]) Ledger() *Ledger {
	return e.ledger
}

// Window returns the visible window tracker.
func (e *Engine[K, R]) Window() *Window[K, R] {
	return e.window
}

// Pool returns the recycle pool.
func (e *Engine[K, R]) Pool() *RecyclePool[K, R] {
	return e.pool
}

// MaxScroll returns the largest offset that still fills the viewport.
func (e *Engine[K, R]) MaxScroll() float64 {
	return max(e.ledger.Extent()-e.host.ViewportHeight(), 0)
}

// ScrollOffsetFor returns the offset that brings row fully into view,
// moving as little as possible. A visible row returns the current offset.
func (e *Engine[K, R]) ScrollOffsetFor(row int) (float64, error) {
	r, err := e.ledger.Record(row)
	if err != nil {
		return e.host.Offset(), err
	}
	cur := e.host.Offset()
	top := r.Start
	bottom := r.End() - e.ledger.Margin()
	vh := e.host.ViewportHeight()

	switch {
	case top < cur:
		return top, nil
	case bottom > cur+vh:
		return min(bottom-vh, top), nil
	}
	return cur, nil
}

// Stats returns a snapshot of the engine's state.
func (e *Engine[K, R]) Stats() Stats {
	return Stats{
		Rows:        e.ledger.Len(),
		Extent:      e.ledger.Extent(),
		Visible:     e.window.Len(),
		Pooled:      e.pool.Len(),
		Pending:     int(e.window.pending.GetCardinality()),
		WindowStats: e.window.Stats(),
	}
}
