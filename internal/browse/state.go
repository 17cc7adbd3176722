// Package browse holds the navigable view over the loaded sessions: the
// master list, the filtered view, the selection and the scroll window.
package browse

import (
	"time"

	"github.com/jole/ivsb/internal/chrono"
	"github.com/jole/ivsb/internal/query"
	"github.com/jole/ivsb/pkg/models"
)

// State is the browser's view state. The zero value is not usable; call New.
type State struct {
	master []models.Session
	view   []models.Session

	selected int
	offset   int

	filterText  string
	showRemoved bool

	// For testing - allows injecting "today"
	now func() time.Time
}

// Option is a functional option for configuring the State
type Option func(*State)

// WithNow sets the function used to get the current time (for testing)
func WithNow(fn func() time.Time) Option {
	return func(s *State) {
		s.now = fn
	}
}

// WithShowRemoved sets the initial removed-stations toggle.
func WithShowRemoved(show bool) Option {
	return func(s *State) {
		s.showRemoved = show
	}
}

// New creates an empty State. Removed stations are shown by default.
func New(opts ...Option) *State {
	s := &State{
		showRemoved: true,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the master list with sessions sorted by start time, clears
// the filter and selects the first session of today or later.
func (s *State) Load(sessions []models.Session) {
	master := append([]models.Session(nil), sessions...)
	chrono.Sort(master)
	s.master = master
	s.filterText = ""
	s.view = master
	s.JumpToday()
}

// ApplyFilter recomputes the view from the master list and selects the
// first matching session of today or later.
func (s *State) ApplyFilter(expr string) {
	s.filterText = expr
	s.view = query.Filter(s.master, expr)
	s.JumpToday()
}

// ClearFilter shows every session again.
func (s *State) ClearFilter() {
	s.ApplyFilter("")
}

// ToggleShowRemoved flips whether removed stations are rendered. The view
// and selection are untouched.
func (s *State) ToggleShowRemoved() {
	s.showRemoved = !s.showRemoved
}

// Move shifts the selection by delta rows, clamped to the view.
func (s *State) Move(delta int) {
	if len(s.view) == 0 {
		s.selected = 0
		return
	}
	s.selected = clamp(s.selected+delta, 0, len(s.view)-1)
}

// PageUp moves the selection up one page of the given height.
func (s *State) PageUp(pageHeight int) { s.Move(-pageHeight) }

// PageDown moves the selection down one page of the given height.
func (s *State) PageDown(pageHeight int) { s.Move(pageHeight) }

// JumpHome selects the first row of the view.
func (s *State) JumpHome() {
	s.selected = 0
}

// JumpEnd selects the last row of the view.
func (s *State) JumpEnd() {
	s.selected = max(len(s.view)-1, 0)
}

// JumpToday selects the first session of the view starting today or later
// and scrolls it to the top.
func (s *State) JumpToday() {
	s.selected = chrono.IndexOnOrAfter(s.view, s.now())
	s.offset = s.selected
}

// Clamp adjusts the scroll offset so the selection is inside a window of
// pageHeight rows. Call it before rendering.
func (s *State) Clamp(pageHeight int) {
	if pageHeight < 1 {
		pageHeight = 1
	}
	if s.offset > s.selected {
		s.offset = s.selected
	}
	if s.selected >= s.offset+pageHeight {
		s.offset = s.selected - pageHeight + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// Selected returns the selected session; ok is false when the view is empty.
func (s *State) Selected() (models.Session, bool) {
	if len(s.view) == 0 {
		return models.Session{}, false
	}
	return s.view[s.selected], true
}

// Window returns the rows of the view visible at the current offset.
func (s *State) Window(pageHeight int) []models.Session {
	if s.offset >= len(s.view) {
		return nil
	}
	end := min(s.offset+max(pageHeight, 1), len(s.view))
	return s.view[s.offset:end]
}

// Getters for testing and rendering
func (s *State) Master() []models.Session { return s.master }
func (s *State) View() []models.Session { return s.view }
func (s *State) SelectedIndex() int { return s.selected }
func (s *State) Offset() int { return s.offset }
func (s *State) FilterText() string { return s.filterText }
func (s *State) ShowRemoved() bool { return s.showRemoved }
func (s *State) Len() int { return len(s.view) }

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
