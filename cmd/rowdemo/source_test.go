package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kungfusheep/vlist"
	"github.com/kungfusheep/vlist/teahost"
)

func TestDemoSource(t *testing.T) {
	src := newDemoSource(100, "")
	assert.Equal(t, 100, src.RowCount())
	assert.Equal(t, kindSection, src.RowKind(0))
	assert.Equal(t, kindItem, src.RowKind(1))
	assert.Equal(t, 2.0, src.HeightForRow(0))
	assert.Equal(t, 1.0, src.HeightForRow(1))

	c := teahost.NewCell(kindSection)
	require.NoError(t, src.BindRow(c, 25))
	assert.Equal(t, []string{"Section 1", "─────────"}, c.Lines())

	assert.True(t, vlist.IsOutOfRange(src.BindRow(c, 100)))
}

func TestDemoSourceFilter(t *testing.T) {
	src := newDemoSource(100, "'Section")
	assert.Equal(t, 4, src.RowCount())
	for row := 0; row < src.RowCount(); row++ {
		assert.Equal(t, kindSection, src.RowKind(row))
	}
}

func TestDemoExpand(t *testing.T) {
	src := newDemoSource(100, "")
	s := teahost.NewSurface(40, 10)
	e := vlist.New[string, *teahost.Cell](src, s)
	require.NoError(t, e.Reload())
	assert.Equal(t, 104.0, s.Extent())

	src.toggle(1)
	require.NoError(t, e.OnRowHeightChanged(1, src.HeightForRow(1)))
	require.NoError(t, e.RefreshRow(1))
	assert.Equal(t, 107.0, s.Extent())

	c, ok := e.Window().Resource(1)
	require.True(t, ok)
	assert.Equal(t, kindDetail, c.Kind())
	assert.Len(t, c.Lines(), 4)

	frame := s.Frame()
	assert.Contains(t, frame[2].Text, "▾ Item 1")
	assert.Contains(t, frame[3].Text, "source row")
}

func TestDemoRequery(t *testing.T) {
	src := newDemoSource(100, "")
	s := teahost.NewSurface(40, 10)
	e := vlist.New[string, *teahost.Cell](src, s)
	require.NoError(t, e.Reload())
	require.Equal(t, 9, e.Window().Len())

	var items []*teahost.Cell
	for _, row := range e.Window().Rows() {
		if c, _ := e.Window().Resource(row); c.Kind() == kindItem {
			items = append(items, c)
		}
	}
	released := e.Stats().Released

	src.toggle(1)
	src.requery("'Section")
	require.NoError(t, e.Reload())

	st := e.Stats()
	assert.Equal(t, 4, st.Rows)
	assert.Equal(t, 8.0, s.Extent())
	assert.Equal(t, 4, st.Visible)
	assert.Equal(t, released+9, st.Released)
	assert.Equal(t, 1, st.Reused, "section cell picked up again")
	assert.Equal(t, 8, e.Pool().LenKind(kindItem))
	for _, c := range items {
		assert.True(t, e.Pool().Contains(c))
	}
	assert.Empty(t, src.expanded)
}
