package teahost

// Cell is the reusable row resource drawn by a Surface.
type Cell struct {
	kind  string
	row   int
	lines []string
}

// NewCell creates an unbound cell of the given kind.
func NewCell(kind string) *Cell {
	return &Cell{kind: kind, row: -1}
}

// Kind returns the row template the cell renders.
func (c *Cell) Kind() string {
	return c.kind
}

// Row returns the row the cell was last bound to, or -1.
func (c *Cell) Row() int {
	return c.row
}

// Lines returns the cell's text, one entry per terminal line.
func (c *Cell) Lines() []string {
	return c.lines
}

// Bind sets the cell's content for row, reusing its line slice.
func (c *Cell) Bind(row int, lines ...string) {
	c.row = row
	c.lines = append(c.lines[:0], lines...)
}
