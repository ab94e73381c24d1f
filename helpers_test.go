package vlist

import (
	"errors"
	"fmt"
)

var errBind = errors.New("bind failed")

type testRes struct {
	kind string
	id   int
	row  int
}

func (r *testRes) Kind() string { return r.kind }

func (r *testRes) String() string { return fmt.Sprintf("%s#%d(row %d)", r.kind, r.id, r.row) }

type testSource struct {
	count   int
	kindFor func(row int) string
	fail    map[int]bool
	reuse   *testRes // when set, NewResource always returns it

	created int
	binds   int
}

func newTestSource(count int) *testSource {
	return &testSource{count: count, fail: make(map[int]bool)}
}

func (s *testSource) RowCount() int { return s.count }

func (s *testSource) RowKind(row int) string {
	if s.kindFor != nil {
		return s.kindFor(row)
	}
	return "row"
}

func (s *testSource) NewResource(kind string) (*testRes, error) {
	if s.reuse != nil {
		return s.reuse, nil
	}
	s.created++
	return &testRes{kind: kind, id: s.created, row: -1}, nil
}

func (s *testSource) BindRow(r *testRes, row int) error {
	s.binds++
	if s.fail[row] {
		return errBind
	}
	r.row = row
	return nil
}

type placement struct {
	y, h float64
}

type testHost struct {
	offset float64
	width  float64
	height float64
	extent float64

	placed  map[*testRes]placement
	places  int
	removes int
}

func newTestHost(height float64) *testHost {
	return &testHost{width: 80, height: height, placed: make(map[*testRes]placement)}
}

func (h *testHost) Offset() float64                 { return h.offset }
func (h *testHost) ViewportWidth() float64          { return h.width }
func (h *testHost) ViewportHeight() float64         { return h.height }
func (h *testHost) SetContentExtent(extent float64) { h.extent = extent }

func (h *testHost) Place(r *testRes, x, y, width, height float64) {
	h.places++
	h.placed[r] = placement{y: y, h: height}
}

func (h *testHost) Remove(r *testRes) {
	h.removes++
	delete(h.placed, r)
}

// newTestEngine returns a reloaded engine over count fixed-height rows.
func newTestEngine(count int, rowHeight, viewport float64) (*Engine[string, *testRes], *testSource, *testHost) {
	src := newTestSource(count)
	host := newTestHost(viewport)
	e := New[string, *testRes](src, host).FixedHeight(rowHeight)
	if err := e.Reload(); err != nil {
		panic(err)
	}
	return e, src, host
}
