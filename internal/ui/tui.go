// Package ui provides the terminal interfaces for the checklist.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/checklist"
	"github.com/nibzard/checklist-go/internal/config"
)

const (
	defaultBarWidth = 40
	maxBarWidth     = 72
	barPadding      = 4
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	logger *log.Logger
}

// WithLogger sets the logger used for key handling diagnostics.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// RunTUI runs the interactive checklist screen until the user quits or ctx
// is cancelled. The view must already be initialized.
func RunTUI(ctx context.Context, cfg *config.Config, view *checklist.View, opts ...TUIOption) error {
	c := &tuiConfig{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	if !view.Ready() {
		return checklist.ErrNotReady
	}

	model := newTUIModel(cfg.Title, view, c.logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	title    string
	view     *checklist.View
	logger   *log.Logger
	cursor   int
	progress progress.Model
	keys     KeyMap
	help     help.Model
	styles   Styles
}

func newTUIModel(title string, view *checklist.View, logger *log.Logger) *tuiModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &tuiModel{
		title:  title,
		view:   view,
		logger: logger,
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(defaultBarWidth),
			progress.WithoutPercentage(),
		),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: DefaultStyles(),
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.progress.Width = barWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		rows := m.view.State().Rows
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			m.toggle(len(rows))
		case key.Matches(msg, m.keys.Webpage):
			m.logger.Debug("webpage button pressed")
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *tuiModel) toggle(n int) {
	if n == 0 {
		return
	}
	// Persist failures are logged by the view and not surfaced here.
	if _, err := m.view.Toggle(m.cursor); err != nil {
		m.logger.Warn("toggle rejected", "index", m.cursor, "err", err)
	}
}

func (m *tuiModel) View() string {
	state := m.view.State()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	m.writeRows(&b, state.Rows)
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(state.Progress / 100))
	b.WriteString(" ")
	b.WriteString(m.styles.Percent.Render(checklist.FormatPercent(state.Progress)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Button.Render("Webpage"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *tuiModel) writeRows(b *strings.Builder, rows []checklist.Row) {
	if len(rows) == 0 {
		b.WriteString(m.styles.Muted.Render("  Nothing to do."))
		b.WriteString("\n")
		return
	}
	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
		}
		box := "[ ]"
		if row.Selected {
			box = m.styles.Checked.Render("[x]")
		}
		fmt.Fprintf(b, "%s%s %s %s  %s\n",
			cursor,
			box,
			m.styles.Category.Render(row.Category),
			row.Description,
			m.styles.Date.Render(row.Date),
		)
	}
}

func barWidth(windowWidth int) int {
	w := windowWidth - barPadding
	if w > maxBarWidth {
		w = maxBarWidth
	}
	if w < 10 {
		w = 10
	}
	return w
}

// WriteChecklist writes a plain-text rendering of state to w.
func WriteChecklist(w io.Writer, title string, state checklist.State) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len(title))); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, row := range state.Rows {
		box := "[ ]"
		if row.Selected {
			box = "[x]"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n", i, box, row.Category, row.Description, row.Date)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nProgress: %s (%d/%d)\n",
		checklist.FormatPercent(state.Progress),
		checklist.CountSelected(state.Rows),
		len(state.Rows),
	)
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
