package tui

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// yankResultMsg is sent after a yank attempt completes.
type yankResultMsg struct {
	text string
	err  error
}

// oscClipboard sets the terminal's clipboard with an OSC 52 sequence. It is
// a tea.ExecCommand so the sequence reaches the real terminal. Inside tmux
// the sequence is wrapped in a DCS passthrough.
type oscClipboard struct {
	text   string
	stdout io.Writer
}

func (o *oscClipboard) Run() error {
	if o.stdout == nil {
		o.stdout = os.Stdout
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(o.text))

	seq := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	if os.Getenv("TMUX") != "" {
		// ESCs inside the passthrough payload are doubled.
		seq = fmt.Sprintf("\x1bPtmux;\x1b\x1b]52;c;%s\x07\x1b\\", encoded)
	}

	_, err := io.WriteString(o.stdout, seq)
	return err
}

func (o *oscClipboard) SetStdin(_ io.Reader)  {}
func (o *oscClipboard) SetStdout(w io.Writer) { o.stdout = w }
func (o *oscClipboard) SetStderr(_ io.Writer) {}

// yankToClipboard returns a tea.Cmd that copies text to the clipboard.
func yankToClipboard(text string) tea.Cmd {
	return tea.Exec(&oscClipboard{text: text}, func(err error) tea.Msg {
		return yankResultMsg{text: text, err: err}
	})
}
