package vlist

import "errors"

// DataSource supplies rows to an Engine. Calls are made synchronously from
// Reload, OnOffsetChanged and OnRowHeightChanged; implementations must not call
// back into the Engine from inside them.
type DataSource[K comparable, R Resource[K]] interface {
	// RowCount returns the number of rows, >= 0.
	RowCount() int
	// RowKind returns the kind of resource row needs.
	RowKind(row int) K
	// NewResource builds a fresh resource. Only called when the pool has
	// nothing of that kind.
	NewResource(kind K) (R, error)
	// BindRow fills res with the content of row.
	BindRow(res R, row int) error
}

// HeightProvider is implemented by sources whose rows vary in height.
// Sources without it get the engine's fixed row height.
type HeightProvider interface {
	HeightForRow(row int) float64
}

// Host is the scroll container the engine lays rows out in. Coordinates are in
// content space; the host applies its own offset when drawing.
type Host[R any] interface {
	Offset() float64
	ViewportWidth() float64
	ViewportHeight() float64
	SetContentExtent(extent float64)
	Place(res R, x, y, width, height float64)
	Remove(res R)
}

var errNoConstructor = errors.New("vlist: SourceFuncs.New is nil")

// SourceFuncs adapts plain functions to DataSource.
type SourceFuncs[K comparable, R Resource[K]] struct {
	Count func() int
	Kind  func(row int) K
	New   func(kind K) (R, error)
	Bind  func(res R, row int) error
}

func (s SourceFuncs[K, R]) RowCount() int {
	if s.Count == nil {
		return 0
	}
	return s.Count()
}

func (s SourceFuncs[K, R]) RowKind(row int) K {
	if s.Kind == nil {
		var zero K
		return zero
	}
	return s.Kind(row)
}

func (s SourceFuncs[K, R]) NewResource(kind K) (R, error) {
	if s.New == nil {
		var zero R
		return zero, errNoConstructor
	}
	return s.New(kind)
}

func (s SourceFuncs[K, R]) BindRow(res R, row int) error {
	if s.Bind == nil {
		return nil
	}
	return s.Bind(res, row)
}
