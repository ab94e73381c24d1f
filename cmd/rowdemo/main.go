package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kungfusheep/vlist"
	"github.com/kungfusheep/vlist/teahost"
)

var (
	rowCount   int
	configPath string
	filter     string
	logPath    string
	static     bool
	margin     float64
	linear     bool
)

var rootCmd = &cobra.Command{
	Use:   "rowdemo",
	Short: "Scroll a large virtualized list in the terminal",
	Long: `rowdemo lays out a large list of rows and keeps only the visible ones bound.

Keys: j/k or arrows scroll, pgup/pgdown page, g/G jump, e expands the top row,
/ filters (enter keeps, esc clears), q quits.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	f := rootCmd.Flags()
	f.IntVarP(&rowCount, "rows", "n", 10000, "number of rows")
	f.StringVarP(&configPath, "config", "c", "", "TOML layout config")
	f.StringVarP(&filter, "filter", "f", "", "fzf-style row filter")
	f.StringVar(&logPath, "log", "", "write debug logs to this file")
	f.BoolVar(&static, "static", false, "print one frame and exit")
	f.Float64Var(&margin, "margin", 0, "lines between rows")
	f.BoolVar(&linear, "linear", false, "use the linear-scan locator")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := vlist.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = vlist.LoadConfig(configPath); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("margin") {
		cfg.Margin = margin
	}
	if flags.Changed("linear") && linear {
		cfg.Locator = "linear"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := openLog(logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if w, h, err := teahost.TerminalSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		width, height = w, h
	}

	src := newDemoSource(rowCount, filter)
	surface := teahost.NewSurface(width-1, height-1)
	engine, err := vlist.New[string, *teahost.Cell](src, surface).Logger(log).Configure(cfg)
	if err != nil {
		return err
	}
	if err := engine.Reload(); err != nil {
		return err
	}
	log.Info("loaded", "rows", src.RowCount(), "filter", filter)

	model := teahost.NewModel(engine, surface).
		Step(cfg.ScrollStep).
		Logger(log).
		Style(kindSection, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))).
		Style(kindItem, lipgloss.NewStyle()).
		Style(kindDetail, lipgloss.NewStyle().Foreground(lipgloss.Color("8")))
	model.Handle("e", func() error {
		row := model.TopRow()
		if row >= src.RowCount() {
			return nil
		}
		src.toggle(row)
		if err := engine.OnRowHeightChanged(row, src.HeightForRow(row)); err != nil {
			return err
		}
		return engine.RefreshRow(row)
	})
	model.InitialQuery(filter).OnFilter(func(query string) error {
		src.requery(query)
		return engine.Reload()
	})

	if static || !interactive {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), model.View())
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { f.Close() }, nil
}
