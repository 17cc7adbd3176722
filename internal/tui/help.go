package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

const filterHelp = `
## Filtering

Clauses are separated by ` + "`;`" + ` and must all match.

- ` + "`R1`" + ` free text, searched in every column
- ` + "`code:R1 R4`" + ` any of the words occurs in the column
- ` + "`stations:Hb & Ke`" + ` both stations take part
- ` + "`stations:Hb | Ke`" + ` either station takes part
- ` + "`stations_removed:Wz`" + ` Wz was removed from the session
- ` + "`stations_all:Wz`" + ` Wz is active or removed

Several words after a column name match if any of them occurs. Several
stations without ` + "`&`" + ` or ` + "`|`" + ` must all take part.

Columns: type, code, start, doy, dur, db, ops, correlator, status, analysis.
`

const colourHelp = `
## Colours

- **green** released
- **yellow** waiting on media, ready for processing, cleaning up, processing session
- **magenta** cancelled
- **blue** no status yet
- removed stations are shown in ` + "`[brackets]`" + `
`

// helpMarkdown lists every key binding followed by the filter syntax and
// the colour legend.
func (m *Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# IVS sessions browser\n\n## Keys\n\n")
	b.WriteString("| key | action |\n|---|---|\n")
	for _, group := range m.keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString(filterHelp)
	b.WriteString(colourHelp)
	b.WriteString("\nPress any key to close.\n")
	return b.String()
}

func (m *Model) renderHelp() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	if m.helpText != "" && m.helpWidth == width {
		return m.helpText
	}

	md := m.helpMarkdown()
	rendered := md
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(min(width-4, 100), 20)),
	)
	if err == nil {
		if out, renderErr := r.Render(md); renderErr == nil {
			rendered = out
		}
	}

	m.helpText = rendered
	m.helpWidth = width
	return rendered
}
