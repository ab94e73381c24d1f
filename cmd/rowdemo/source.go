package main

import (
	"fmt"
	"strings"

	"github.com/kungfusheep/vlist"
	"github.com/kungfusheep/vlist/teahost"
)

const (
	kindSection = "section"
	kindItem    = "item"
	kindDetail  = "detail"

	sectionEvery = 25
)

// demoSource serves synthetic rows. Every 25th source row is a two-line section
// header; an expanded item grows to show a detail block.
type demoSource struct {
	total    int
	rows     []int // visible row -> source row
	expanded map[int]bool
}

func newDemoSource(total int, query string) *demoSource {
	s := &demoSource{total: total, expanded: make(map[int]bool)}
	s.rows = vlist.FilterRows(query, total, s.text)
	return s
}

// requery replaces the visible rows with those matching query. Expanded
// state is keyed by visible row, so it is dropped.
func (s *demoSource) requery(query string) {
	s.rows = vlist.FilterRows(query, s.total, s.text)
	clear(s.expanded)
}

func (s *demoSource) text(src int) string {
	if src%sectionEvery == 0 {
		return fmt.Sprintf("Section %d", src/sectionEvery)
	}
	return fmt.Sprintf("Item %d  %s", src, []string{"active", "pending", "done"}[src%3])
}

func (s *demoSource) toggle(row int) {
	s.expanded[row] = !s.expanded[row]
}

func (s *demoSource) RowCount() int {
	return len(s.rows)
}

func (s *demoSource) RowKind(row int) string {
	src := s.rows[row]
	switch {
	case src%sectionEvery == 0:
		return kindSection
	case s.expanded[row]:
		return kindDetail
	}
	return kindItem
}

func (s *demoSource) HeightForRow(row int) float64 {
	switch s.RowKind(row) {
	case kindSection:
		return 2
	case kindDetail:
		return 4
	}
	return 1
}

func (s *demoSource) NewResource(kind string) (*teahost.Cell, error) {
	return teahost.NewCell(kind), nil
}

func (s *demoSource) BindRow(c *teahost.Cell, row int) error {
	if row < 0 || row >= len(s.rows) {
		return &vlist.OutOfRangeError{Op: "bind row", Row: row, Count: len(s.rows)}
	}
	src := s.rows[row]
	text := s.text(src)
	switch c.Kind() {
	case kindSection:
		c.Bind(row, text, strings.Repeat("─", len(text)))
	case kindDetail:
		c.Bind(row, "▾ "+text,
			fmt.Sprintf("    source row   %d", src),
			fmt.Sprintf("    value        %d", src*100),
			"    press e to collapse")
	default:
		c.Bind(row, "  "+text)
	}
	return nil
}
