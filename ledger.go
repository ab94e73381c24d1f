package vlist

import (
	"context"
	"fmt"
)

// RowRecord is the vertical extent of one row in content coordinates.
// Height includes the inter-row margin, so Start+Height is the next row's Start.
type RowRecord struct {
	Start  float64
	Height float64
}

// End returns the offset just past the row, margin included.
func (r RowRecord) End() float64 {
	return r.Start + r.Height
}

// Ledger holds a RowRecord per row, ordered by row index and therefore by Start.
// Built wholesale by BuildLedger; PatchHeight is the only in-place mutation.
type Ledger struct {
	records []RowRecord
	margin  float64
	extent  float64
}

// BuildLedger lays out rowCount rows. If heights is nil every row gets
// fixedHeight. Row 0 starts at margin and each row's height has margin added.
// Heights must be positive; a non-positive height is replaced by fixedHeight,
// or by 1 when fixedHeight is not positive either.
func BuildLedger(rowCount int, heights func(row int) float64, fixedHeight, margin float64) *Ledger {
	l, _ := BuildLedgerContext(context.Background(), rowCount, heights, fixedHeight, margin)
	return l
}

// BuildLedgerContext is BuildLedger with cancellation, for builds that run off
// the event thread. ctx is polled every few thousand rows.
func BuildLedgerContext(ctx context.Context, rowCount int, heights func(row int) float64, fixedHeight, margin float64) (*Ledger, error) {
	if rowCount < 0 {
		rowCount = 0
	}
	l := &Ledger{
		records: make([]RowRecord, rowCount),
		margin:  margin,
	}

	fallback := fixedHeight
	if fallback <= 0 {
		fallback = 1
	}
	y := margin
	for i := range l.records {
		if i&4095 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		h := fixedHeight
		if heights != nil {
			h = heights(i)
		}
		if h <= 0 {
			h = fallback
		}
		l.records[i] = RowRecord{Start: y, Height: h + margin}
		y += h + margin
	}
	l.updateExtent()
	return l, nil
}

// Len returns the number of rows.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Margin returns the inter-row margin folded into every height.
func (l *Ledger) Margin() float64 {
	return l.margin
}

// Extent returns the total content height; 0 for an empty ledger.
func (l *Ledger) Extent() float64 {
	return l.extent
}

// Record returns the record for row.
func (l *Ledger) Record(row int) (RowRecord, error) {
	if row < 0 || row >= len(l.records) {
		return RowRecord{}, &OutOfRangeError{Op: "record", Row: row, Count: len(l.records)}
	}
	return l.records[row], nil
}

// PatchHeight sets row's intrinsic height and shifts every later row.
// It returns the new extent. A non-positive height is rejected with
// ErrInvalidHeight and the ledger is left unchanged.
func (l *Ledger) PatchHeight(row int, height float64) (float64, error) {
	if row < 0 || row >= len(l.records) {
		return l.extent, &OutOfRangeError{Op: "patch height", Row: row, Count: len(l.records)}
	}
	if height <= 0 {
		return l.extent, fmt.Errorf("patch height: row %d height %g: %w", row, height, ErrInvalidHeight)
	}

	l.records[row].Height = height + l.margin
	y := l.records[row].End()
	for i := row + 1; i < len(l.records); i++ {
		l.records[i].Start = y
		y += l.records[i].Height
	}
	l.updateExtent()
	return l.extent, nil
}

func (l *Ledger) updateExtent() {
	if len(l.records) == 0 {
		l.extent = 0
		return
	}
	l.extent = l.records[len(l.records)-1].End()
}
