// Package tui is the interactive session browser.
package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jole/ivsb/internal/browse"
	"github.com/jole/ivsb/internal/launch"
	"github.com/jole/ivsb/internal/query"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	BrowseMode Mode = iota
	FilterMode
	HelpMode
)

// chromeLines is the number of screen lines that are not session rows:
// the column header, the status line and the key help line.
const chromeLines = 3

// Model is the bubbletea model of the browser. All navigation goes through
// the browse.State it wraps.
type Model struct {
	state *browse.State

	keys   keyMap
	help   help.Model
	filter textinput.Model
	mode   Mode

	// Station tokens of the active filter, highlighted in the stations column.
	tokens []string
	// Transient message shown on the status line.
	status string
	// Help overlay, rendered once per width.
	helpText  string
	helpWidth int

	width  int
	height int

	open   func(url string) error
	logger *slog.Logger
}

// Option is a functional option for configuring the Model
type Option func(*Model)

// WithOpener sets the function that opens a session page (for testing)
func WithOpener(fn func(url string) error) Option {
	return func(m *Model) {
		m.open = fn
	}
}

// WithLogger sets the logger for user actions.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithSize sets the initial screen size (for testing)
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// New creates a Model over state, which should already be loaded.
func New(state *browse.State, opts ...Option) *Model {
	ti := textinput.New()
	ti.Placeholder = "code:R1; stations:Hb & Ke; status:released"
	ti.Prompt = "filter: "
	ti.CharLimit = 256

	m := &Model{
		state:  state,
		keys:   defaultKeys(),
		help:   help.New(),
		filter: ti,
		open:   launch.Open,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.tokens = query.StationTokens(state.FilterText())
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.filter.Width = max(msg.Width-len(m.filter.Prompt)-1, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case yankResultMsg:
		if msg.err != nil {
			m.status = "yank failed: " + msg.err.Error()
		} else {
			m.status = "yanked " + msg.text
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch m.mode {
	case FilterMode:
		return m.handleFilterKey(msg)
	case HelpMode:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.mode = BrowseMode
		return m, nil
	}
	return m.handleBrowseKey(msg)
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.state.Move(-1)

	case key.Matches(msg, m.keys.Down):
		m.state.Move(1)

	case key.Matches(msg, m.keys.PageUp):
		m.state.PageUp(m.pageHeight())

	case key.Matches(msg, m.keys.PageDown):
		m.state.PageDown(m.pageHeight())

	case key.Matches(msg, m.keys.Home):
		m.state.JumpHome()

	case key.Matches(msg, m.keys.End):
		m.state.JumpEnd()

	case key.Matches(msg, m.keys.Today):
		m.state.JumpToday()

	case key.Matches(msg, m.keys.Open):
		m.openSelected()

	case key.Matches(msg, m.keys.Yank):
		return m, m.yankSelected()

	case key.Matches(msg, m.keys.Filter):
		m.mode = FilterMode
		m.filter.SetValue(m.state.FilterText())
		m.filter.CursorEnd()
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.ClearFilter):
		m.applyFilter("")

	case key.Matches(msg, m.keys.ToggleRemoved):
		m.state.ToggleShowRemoved()

	case key.Matches(msg, m.keys.Help):
		m.mode = HelpMode
	}

	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = BrowseMode
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter("")
		return m, nil
	case "enter":
		m.mode = BrowseMode
		m.filter.Blur()
		m.applyFilter(strings.TrimSpace(m.filter.Value()))
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *Model) applyFilter(expr string) {
	if expr == "" {
		m.state.ClearFilter()
	} else {
		m.state.ApplyFilter(expr)
	}
	m.tokens = query.StationTokens(expr)
	m.logger.Debug("filter applied", "expr", expr, "matches", m.state.Len())
}

func (m *Model) openSelected() {
	s, ok := m.state.Selected()
	if !ok || s.DetailURL == "" {
		return
	}
	if err := m.open(s.DetailURL); err != nil {
		m.status = "open failed: " + err.Error()
		m.logger.Error("open failed", "url", s.DetailURL, "err", err)
		return
	}
	m.status = "opened " + s.DetailURL
	m.logger.Info("opened session page", "url", s.DetailURL)
}

func (m *Model) yankSelected() tea.Cmd {
	s, ok := m.state.Selected()
	if !ok {
		return nil
	}
	text := s.DetailURL
	if text == "" {
		text = s.Code()
	}
	return yankToClipboard(text)
}

// pageHeight is the number of session rows that fit on screen.
func (m *Model) pageHeight() int {
	return max(1, m.height-chromeLines)
}

// View implements tea.Model
func (m *Model) View() string {
	if m.mode == HelpMode {
		return m.renderHelp()
	}
	return m.renderView()
}

// Getters for testing
func (m *Model) Mode() Mode {
	return m.mode
}

func (m *Model) State() *browse.State {
	return m.state
}

func (m *Model) Status() string {
	return m.status
}

func (m *Model) Tokens() []string {
	return m.tokens
}
