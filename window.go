package vlist

import (
	"fmt"
	"log/slog"

	"github.com/RoaringBitmap/roaring"
)

// WindowStats counts the work a Window has done since it was created.
type WindowStats struct {
	Created  int // resources built fresh by the source
	Reused   int // resources withdrawn from the pool
	Released int // resources parked after their row left the window
	Failures int // rows the source could not fill
}

// Window tracks the contiguous range of visible rows and the resource bound
// to each. Rows that stay visible across a recompute are not touched.
type Window[K comparable, R Resource[K]] struct {
	source DataSource[K, R]
	host   Host[R]
	pool   *RecyclePool[K, R]
	locate Locator
	log    *slog.Logger

	first, end int       // [first, end) is the current window
	rows       map[int]R // bound rows
	bound      map[R]int // reverse of rows
	pending    *roaring.Bitmap

	stats WindowStats
}

// NewWindow creates an empty window drawing resources from pool.
func NewWindow[K comparable, R Resource[K]](source DataSource[K, R], host Host[R], pool *RecyclePool[K, R]) *Window[K, R] {
	return &Window[K, R]{
		source:  source,
		host:    host,
		pool:    pool,
		locate:  LocateFirstVisibleRow,
		log:     slog.New(slog.DiscardHandler),
		rows:    make(map[int]R),
		bound:   make(map[R]int),
		pending: roaring.New(),
	}
}

// SetLocator replaces the offset locator.
func (w *Window[K, R]) SetLocator(fn Locator) {
	if fn == nil {
		fn = LocateFirstVisibleRow
	}
	w.locate = fn
}

// SetLogger sets the logger used for content failures.
func (w *Window[K, R]) SetLogger(log *slog.Logger) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	w.log = log
}

// span computes the rows needed to cover [offsetY, offsetY+viewportHeight).
func (w *Window[K, R]) span(l *Ledger, offsetY, viewportHeight float64) (first, end int) {
	if l.Len() == 0 || viewportHeight <= 0 {
		return 0, 0
	}
	first = w.locate(l, offsetY)
	bottom := offsetY + viewportHeight
	end = first
	for end < len(l.records) {
		r := l.records[end]
		end++
		if r.End() >= bottom {
			break
		}
	}
	return first, end
}

// Recompute moves the window to offsetY. The new range is computed first,
// then rows that left it are released, then rows that entered it are bound.
// Source failures leave a row unbound until the next Recompute; only an
// InvariantViolationError is returned.
func (w *Window[K, R]) Recompute(l *Ledger, offsetY, viewportHeight float64) error {
	first, end := w.span(l, offsetY, viewportHeight)

	for row := w.first; row < w.end; row++ {
		if row >= first && row < end {
			continue
		}
		w.pending.Remove(uint32(row))
		res, ok := w.rows[row]
		if !ok {
			continue
		}
		if err := w.release(row, res); err != nil {
			return err
		}
	}
	w.first, w.end = first, end

	for row := first; row < end; row++ {
		if _, ok := w.rows[row]; ok {
			continue
		}
		if err := w.attach(l, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *Window[K, R]) release(row int, res R) error {
	w.host.Remove(res)
	delete(w.rows, row)
	delete(w.bound, res)
	w.stats.Released++
	return w.pool.Deposit(res)
}

func (w *Window[K, R]) attach(l *Ledger, row int) error {
	kind := w.source.RowKind(row)
	res, reused := w.pool.Withdraw(kind)
	if !reused {
		var err error
		res, err = w.source.NewResource(kind)
		if err != nil {
			w.fail(row, kind, err)
			return nil
		}
	}
	if other, ok := w.bound[res]; ok {
		return &InvariantViolationError{
			Op:     "attach",
			Detail: fmt.Sprintf("resource for row %d is already bound to row %d", row, other),
		}
	}
	if err := w.source.BindRow(res, row); err != nil {
		w.fail(row, kind, err)
		return w.pool.Deposit(res)
	}

	w.rows[row] = res
	w.bound[res] = row
	w.pending.Remove(uint32(row))
	if reused {
		w.stats.Reused++
	} else {
		w.stats.Created++
	}
	w.place(l, row, res)
	return nil
}

func (w *Window[K, R]) fail(row int, kind K, err error) {
	w.pending.Add(uint32(row))
	w.stats.Failures++
	w.log.Warn("row content failed", "row", row, "kind", kind, "err", err)
}

func (w *Window[K, R]) place(l *Ledger, row int, res R) {
	r := l.records[row]
	w.host.Place(res, 0, r.Start, w.host.ViewportWidth(), r.Height-l.margin)
}

// Relayout repositions bound rows at or after fromRow, for use after the
// ledger shifted them.
func (w *Window[K, R]) Relayout(l *Ledger, fromRow int) {
	for row := max(fromRow, w.first); row < w.end; row++ {
		if res, ok := w.rows[row]; ok {
			w.place(l, row, res)
		}
	}
}

// Rebind asks the source to refill a bound row in place. If the row now needs
// a different kind its resource is swapped for one of that kind. If binding
// fails the row is released and retried on the next Recompute.
func (w *Window[K, R]) Rebind(l *Ledger, row int) error {
	res, ok := w.rows[row]
	if !ok {
		return nil
	}
	if w.source.RowKind(row) != res.Kind() {
		if err := w.release(row, res); err != nil {
			return err
		}
		return w.attach(l, row)
	}
	if err := w.source.BindRow(res, row); err != nil {
		w.fail(row, res.Kind(), err)
		return w.release(row, res)
	}
	w.place(l, row, res)
	return nil
}

// ReleaseAll parks every bound resource and empties the window. Resources
// that somehow already sit in the pool are not deposited again, so this
// always leaves the window and pool consistent.
func (w *Window[K, R]) ReleaseAll() {
	for row := w.first; row < w.end; row++ {
		res, ok := w.rows[row]
		if !ok {
			continue
		}
		w.host.Remove(res)
		w.stats.Released++
		if !w.pool.Contains(res) {
			_ = w.pool.Deposit(res)
		}
	}
	clear(w.rows)
	clear(w.bound)
	w.pending.Clear()
	w.first, w.end = 0, 0
}

// Range returns the current window as [first, end).
func (w *Window[K, R]) Range() (first, end int) {
	return w.first, w.end
}

// Len returns the number of bound rows.
func (w *Window[K, R]) Len() int {
	return len(w.rows)
}

// Rows returns the bound rows in ascending order.
func (w *Window[K, R]) Rows() []int {
	rows := make([]int, 0, len(w.rows))
	for row := w.first; row < w.end; row++ {
		if _, ok := w.rows[row]; ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// Resource returns the resource bound to row.
func (w *Window[K, R]) Resource(row int) (R, bool) {
	res, ok := w.rows[row]
	return res, ok
}

// RowOf returns the row res is bound to.
func (w *Window[K, R]) RowOf(res R) (int, bool) {
	row, ok := w.bound[res]
	return row, ok
}

// Pending returns the rows inside the window the source failed to fill.
func (w *Window[K, R]) Pending() []int {
	arr := w.pending.ToArray()
	rows := make([]int, len(arr))
	for i, v := range arr {
		rows[i] = int(v)
	}
	return rows
}

// Stats returns the window's counters.
func (w *Window[K, R]) Stats() WindowStats {
	return w.stats
}
