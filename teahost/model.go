package teahost

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kungfusheep/vlist"
)

// Engine is the engine type a Model drives.
type Engine = vlist.Engine[string, *Cell]

// Model is a bubbletea model that scrolls a Surface and keeps the engine's
// window in step with it. One column is reserved for the scrollbar and one
// line for the status bar.
type Model struct {
	engine  *Engine
	surface *Surface

	step     float64
	wheel    float64
	styles   map[string]lipgloss.Style
	status   lipgloss.Style
	track    lipgloss.Style
	thumb    lipgloss.Style
	handlers map[string]func() error

	onFilter  func(query string) error
	filtering bool
	query     string

	err error
	log *slog.Logger
}

// NewModel wraps engine, which must have been created over surface.
func NewModel(engine *Engine, surface *Surface) *Model {
	return &Model{
		engine:   engine,
		surface:  surface,
		step:     1,
		wheel:    3,
		styles:   make(map[string]lipgloss.Style),
		status:   lipgloss.NewStyle().Reverse(true),
		track:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		thumb:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		handlers: make(map[string]func() error),
		log:      slog.New(slog.DiscardHandler),
	}
}

// Step sets how far j/k and the arrow keys scroll.
func (m *Model) Step(step float64) *Model {
	if step > 0 {
		m.step = step
		m.wheel = 3 * step
	}
	return m
}

// Style sets the style for rows of a kind.
func (m *Model) Style(kind string, st lipgloss.Style) *Model {
	m.styles[kind] = st
	return m
}

// Handle binds a key (bubbletea key string, e.g. "e" or "enter") to fn.
// Built-in navigation keys cannot be rebound.
func (m *Model) Handle(key string, fn func() error) *Model {
	m.handlers[key] = fn
	return m
}

// OnFilter enables the filter prompt. "/" opens it; each edit resets the
// offset to 0 and calls fn with the whole query, which is expected to
// change the source's rows and reload the engine. enter closes the prompt
// and keeps the query, esc clears it.
func (m *Model) OnFilter(fn func(query string) error) *Model {
	m.onFilter = fn
	return m
}

// InitialQuery records a query the source was already filtered with, so the
// prompt starts from it. fn is not called.
func (m *Model) InitialQuery(query string) *Model {
	m.query = query
	return m
}

// Query returns the current filter query.
func (m *Model) Query() string {
	return m.query
}

// Filtering reports whether the filter prompt is open.
func (m *Model) Filtering() bool {
	return m.filtering
}

// Logger sets the logger for scroll errors.
func (m *Model) Logger(log *slog.Logger) *Model {
	if log != nil {
		m.log = log
	}
	return m
}

// Err returns the last error from a scroll or handler.
func (m *Model) Err() error {
	return m.err
}

// TopRow returns the first row in the engine's window.
func (m *Model) TopRow() int {
	first, _ := m.engine.Window().Range()
	return first
}

// ScrollTo moves the viewport to y, clamped to the scrollable range.
func (m *Model) ScrollTo(y float64) error {
	y = min(max(y, 0), m.engine.MaxScroll())
	if y == m.surface.Offset() {
		return nil
	}
	return m.setOffset(y)
}

// ScrollBy moves the viewport by dy.
func (m *Model) ScrollBy(dy float64) error {
	return m.ScrollTo(m.surface.Offset() + dy)
}

func (m *Model) setOffset(y float64) error {
	m.surface.SetOffset(y)
	if err := m.engine.OnOffsetChanged(y); err != nil {
		m.log.Error("offset changed", "offset", y, "err", err)
		return err
	}
	return nil
}

// Resize sets the terminal size and relays the window out.
func (m *Model) Resize(width, height int) error {
	m.surface.Resize(width-1, height-1)
	y := min(max(m.surface.Offset(), 0), m.engine.MaxScroll())
	return m.setOffset(y)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.err = m.Resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filtering {
			m.err = m.filterKey(msg)
			break
		}
		page := max(m.surface.ViewportHeight()-1, 1)
		switch key := msg.String(); key {
		case "q":
			return m, tea.Quit
		case "j", "down":
			m.err = m.ScrollBy(m.step)
		case "k", "up":
			m.err = m.ScrollBy(-m.step)
		case "pgdown", " ", "ctrl+f":
			m.err = m.ScrollBy(page)
		case "pgup", "ctrl+b":
			m.err = m.ScrollBy(-page)
		case "g", "home":
			m.err = m.ScrollTo(0)
		case "G", "end":
			m.err = m.ScrollTo(m.engine.MaxScroll())
		case "/":
			if m.onFilter != nil {
				m.filtering = true
			}
		default:
			if fn, ok := m.handlers[key]; ok {
				m.err = fn()
			}
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.err = m.ScrollBy(-m.wheel)
		case tea.MouseButtonWheelDown:
			m.err = m.ScrollBy(m.wheel)
		}
	}
	return m, nil
}

// filterKey edits the query while the prompt is open.
func (m *Model) filterKey(msg tea.KeyMsg) error {
	query := m.query
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		return nil
	case tea.KeyEsc:
		m.filtering = false
		query = ""
	case tea.KeyBackspace:
		if r := []rune(query); len(r) > 0 {
			query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		query += " "
	case tea.KeyRunes:
		query += string(msg.Runes)
	default:
		return nil
	}
	return m.setQuery(query)
}

func (m *Model) setQuery(query string) error {
	if query == m.query {
		return nil
	}
	m.query = query
	m.surface.SetOffset(0)
	if err := m.onFilter(query); err != nil {
		m.log.Error("filter", "query", query, "err", err)
		return err
	}
	m.log.Debug("filter", "query", query, "rows", m.engine.Ledger().Len())
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	frame := m.surface.Frame()
	bar := m.scrollbar(len(frame))

	var sb strings.Builder
	for i, line := range frame {
		if st, ok := m.styles[line.Kind]; ok {
			sb.WriteString(st.Render(line.Text))
		} else {
			sb.WriteString(line.Text)
		}
		sb.WriteString(bar[i])
		sb.WriteByte('\n')
	}
	sb.WriteString(m.statusLine())
	return sb.String()
}

// scrollbar returns one cell per viewport line.
func (m *Model) scrollbar(height int) []string {
	bar := make([]string, height)
	extent := m.surface.Extent()
	if height == 0 || extent <= float64(height) {
		for i := range bar {
			bar[i] = " "
		}
		return bar
	}

	thumbSize := max(1, int(float64(height)*float64(height)/extent))
	thumbPos := 0
	if maxScroll := m.engine.MaxScroll(); maxScroll > 0 {
		thumbPos = int(float64(height-thumbSize) * m.surface.Offset() / maxScroll)
	}
	for i := range bar {
		if i >= thumbPos && i < thumbPos+thumbSize {
			bar[i] = m.thumb.Render("┃")
		} else {
			bar[i] = m.track.Render("│")
		}
	}
	return bar
}

func (m *Model) statusLine() string {
	st := m.engine.Stats()
	text := fmt.Sprintf(" rows %d  offset %.0f/%.0f  visible %d  pooled %d  created %d  reused %d",
		st.Rows, m.surface.Offset(), st.Extent, st.Visible, st.Pooled, st.Created, st.Reused)
	if st.Pending > 0 {
		text += fmt.Sprintf("  pending %d", st.Pending)
	}
	// prompt and error lead so fit never cuts them
	if m.err != nil {
		text = " error: " + m.err.Error() + " |" + text
	}
	if m.filtering || m.query != "" {
		text = " /" + m.query + " |" + text
	}
	return m.status.Render(fit(text, m.surface.width+1))
}
