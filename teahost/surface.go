package teahost

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Line is one rendered terminal line. Row is -1 for lines no cell covers.
type Line struct {
	Text string
	Kind string
	Row  int
}

type rect struct {
	y, h int
}

// Surface is a line-addressed scroll container. It implements vlist.Host for
// *Cell: the engine places cells in content coordinates and Frame draws the
// ones that intersect [offset, offset+height).
type Surface struct {
	width, height int
	offset        float64
	extent        float64
	placed        map[*Cell]rect
}

// NewSurface creates a surface with the given viewport size in cells.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  max(width, 0),
		height: max(height, 0),
		placed: make(map[*Cell]rect),
	}
}

func (s *Surface) Offset() float64         { return s.offset }
func (s *Surface) ViewportWidth() float64  { return float64(s.width) }
func (s *Surface) ViewportHeight() float64 { return float64(s.height) }

// SetContentExtent records the total content height.
func (s *Surface) SetContentExtent(extent float64) {
	s.extent = extent
}

// Extent returns the last published content height.
func (s *Surface) Extent() float64 {
	return s.extent
}

// Place positions c. Only y and height matter on a terminal.
func (s *Surface) Place(c *Cell, x, y, width, height float64) {
	s.placed[c] = rect{y: int(math.Round(y)), h: int(math.Round(height))}
}

// Remove takes c off the surface.
func (s *Surface) Remove(c *Cell) {
	delete(s.placed, c)
}

// Placed returns the number of cells on the surface.
func (s *Surface) Placed() int {
	return len(s.placed)
}

// SetOffset moves the viewport. The caller notifies the engine.
func (s *Surface) SetOffset(y float64) {
	s.offset = y
}

// Resize changes the viewport size.
func (s *Surface) Resize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
}

// Frame renders exactly height lines, each padded or truncated to width.
func (s *Surface) Frame() []Line {
	blank := runewidth.FillRight("", s.width)
	frame := make([]Line, s.height)
	for i := range frame {
		frame[i] = Line{Text: blank, Row: -1}
	}

	top := int(math.Round(s.offset))
	for c, r := range s.placed {
		for i := 0; i < r.h; i++ {
			ly := r.y + i - top
			if ly < 0 || ly >= s.height {
				continue
			}
			text := ""
			if i < len(c.lines) {
				text = c.lines[i]
			}
			frame[ly] = Line{Text: fit(text, s.width), Kind: c.kind, Row: c.row}
		}
	}
	return frame
}

func fit(text string, width int) string {
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	return runewidth.FillRight(text, width)
}
