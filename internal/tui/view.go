package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jole/ivsb/pkg/models"
)

// Styles
var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	normalStyle    = lipgloss.NewStyle()
	releasedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cancelledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	noStatusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	removedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	tokenStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	messageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// columnWidths are the display widths of the fields, in field order.
var columnWidths = [models.FieldCount]int{models.TypeWidth, 8, 18, 3, 5, 44, 14, 10, 10, 20, 10}

const columnGap = " "

// pendingStatuses are statuses of sessions that are observed but not yet
// released.
var pendingStatuses = []string{"waiting on media", "ready for processing", "cleaning up", "processing session"}

func statusStyle(status string) lipgloss.Style {
	s := strings.ToLower(strings.TrimSpace(status))
	switch {
	case s == "":
		return noStatusStyle
	case strings.Contains(s, "released"):
		return releasedStyle
	case strings.Contains(s, "cancelled"), strings.Contains(s, "canceled"):
		return cancelledStyle
	}
	for _, p := range pendingStatuses {
		if strings.Contains(s, p) {
			return pendingStyle
		}
	}
	return normalStyle
}

func (m *Model) renderView() string {
	h := m.pageHeight()
	m.state.Clamp(h)

	var b strings.Builder
	b.WriteString(m.fitLine(m.renderHeader()))
	b.WriteString("\n")

	rows := m.state.Window(h)
	if len(rows) == 0 {
		b.WriteString("No sessions found\n")
		h--
	}
	for i, s := range rows {
		selected := m.state.Offset()+i == m.state.SelectedIndex()
		b.WriteString(m.fitLine(m.renderRow(s, selected)))
		b.WriteString("\n")
	}
	for range h - len(rows) {
		b.WriteString("\n")
	}

	b.WriteString(m.fitLine(m.renderStatusLine()))
	b.WriteString("\n")
	b.WriteString(m.fitLine(m.renderHelpBar()))
	return b.String()
}

func (m *Model) renderHeader() string {
	cells := make([]string, 0, len(columnWidths))
	for i, w := range columnWidths {
		cells = append(cells, fit(models.Field(i).Title(), w))
	}
	return headerStyle.Render(strings.Join(cells, columnGap))
}

func (m *Model) renderRow(s models.Session, selected bool) string {
	base := statusStyle(s.Status())
	if selected {
		base = base.Reverse(true)
	}

	cells := make([]string, 0, len(columnWidths))
	for i, w := range columnWidths {
		f := models.Field(i)
		if f == models.FieldStations {
			cells = append(cells, m.renderStations(s, w, base))
			continue
		}
		cells = append(cells, base.Render(fit(s.Field(f), w)))
	}
	return strings.Join(cells, base.Render(columnGap))
}

// renderStations renders the stations cell: active stations with filter
// tokens highlighted, then the removed ones in brackets when shown.
func (m *Model) renderStations(s models.Session, width int, base lipgloss.Style) string {
	var removed []string
	if m.state.ShowRemoved() {
		removed = s.Removed
	}
	plain := models.StationsDisplay(s.Active, removed)
	if ansi.StringWidth(plain) > width {
		return base.Render(fit(plain, width))
	}

	active := strings.Join(s.Active, "")
	var b strings.Builder
	b.WriteString(highlightTokens(active, m.tokens, base, tokenStyle.Inherit(base)))
	if len(removed) > 0 {
		if active != "" {
			b.WriteString(base.Render(" "))
		}
		b.WriteString(removedStyle.Inherit(base).Render("[" + strings.Join(removed, "") + "]"))
	}
	b.WriteString(base.Render(strings.Repeat(" ", width-ansi.StringWidth(plain))))
	return b.String()
}

// highlightTokens renders text with every occurrence of a token in hl and
// the rest in base. Tokens are tried longest first.
func highlightTokens(text string, tokens []string, base, hl lipgloss.Style) string {
	if text == "" {
		return ""
	}
	if len(tokens) == 0 {
		return base.Render(text)
	}

	marked := make([]bool, len(text))
	for i := 0; i < len(text); {
		n := 0
		for _, tok := range tokens {
			if tok != "" && strings.HasPrefix(text[i:], tok) {
				n = len(tok)
				break
			}
		}
		if n == 0 {
			i++
			continue
		}
		for j := i; j < i+n; j++ {
			marked[j] = true
		}
		i += n
	}

	var b strings.Builder
	start := 0
	for i := 1; i <= len(text); i++ {
		if i < len(text) && marked[i] == marked[start] {
			continue
		}
		style := base
		if marked[start] {
			style = hl
		}
		b.WriteString(style.Render(text[start:i]))
		start = i
	}
	return b.String()
}

func (m *Model) renderStatusLine() string {
	if m.mode == FilterMode {
		return m.filter.View()
	}
	var parts []string
	if f := m.state.FilterText(); f != "" {
		parts = append(parts, "filter: "+f)
	}
	if !m.state.ShowRemoved() {
		parts = append(parts, "removed stations hidden")
	}
	line := statusBarStyle.Render(strings.Join(parts, "  "))
	if m.status != "" {
		if line != "" {
			line += "  "
		}
		line += messageStyle.Render(m.status)
	}
	return line
}

func (m *Model) renderHelpBar() string {
	pos := fmt.Sprintf("row %d/%d", m.state.SelectedIndex()+1, m.state.Len())
	if m.state.Len() == 0 {
		pos = "row 0/0"
	}
	keys := m.help.ShortHelpView(m.keys.ShortHelp())
	return statusBarStyle.Render(pos) + "  " + keys
}

// fitLine truncates a rendered line to the screen width.
func (m *Model) fitLine(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "")
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-w)
}
