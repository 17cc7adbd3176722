package browse

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jole/ivsb/pkg/models"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func at(code, start string, active ...string) models.Session {
	var f [models.FieldCount]string
	f[models.FieldCode] = code
	f[models.FieldStart] = start
	return models.NewSession(models.Ordinary, f, active, nil, "")
}

// days returns n sessions, one per day starting at 2024-06-10.
func days(n int) []models.Session {
	var out []models.Session
	for i := range n {
		start := time.Date(2024, 6, 10+i, 18, 0, 0, 0, time.UTC).Format("2006-01-02 15:04")
		out = append(out, at(fmt.Sprintf("S%02d", i), start, "Hb"))
	}
	return out
}

func TestLoadSortsAndSelectsToday(t *testing.T) {
	// Given: sessions out of order around the injected today
	sessions := []models.Session{
		at("late", "2024-06-20 00:00"),
		at("early", "2024-06-01 00:00"),
		at("today", "2024-06-15 23:00"),
		at("tbd", "TBD"),
	}
	s := New(WithNow(fixedClock))

	// When: the sessions are loaded
	s.Load(sessions)

	// Then: they are sorted and today's session is selected and on top
	var got []string
	for _, r := range s.View() {
		got = append(got, r.Code())
	}
	assert.Equal(t, []string{"early", "today", "late", "tbd"}, got)
	assert.Equal(t, 1, s.SelectedIndex())
	assert.Equal(t, 1, s.Offset())
	assert.Equal(t, "early", sessions[1].Code(), "input slice must not be reordered")
}

func TestLoadEmpty(t *testing.T) {
	s := New(WithNow(fixedClock))

	s.Load(nil)
	s.Move(3)
	s.JumpEnd()
	s.Clamp(10)

	assert.Equal(t, 0, s.SelectedIndex())
	assert.Equal(t, 0, s.Offset())
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Empty(t, s.Window(10))
}

func TestMoveClamps(t *testing.T) {
	s := New(WithNow(fixedClock))
	s.Load(days(5))

	s.Move(1000)
	assert.Equal(t, 4, s.SelectedIndex())

	for h := 1; h <= 8; h++ {
		s.Clamp(h)
		assert.LessOrEqual(t, s.Offset(), s.SelectedIndex(), "h=%d", h)
		assert.Less(t, s.SelectedIndex(), s.Offset()+h, "h=%d", h)
	}

	s.Move(-1000)
	assert.Equal(t, 0, s.SelectedIndex())
}

func TestPaging(t *testing.T) {
	s := New(WithNow(fixedClock))
	s.Load(days(20))
	s.JumpHome()

	s.PageDown(7)
	assert.Equal(t, 7, s.SelectedIndex())

	s.PageUp(3)
	assert.Equal(t, 4, s.SelectedIndex())

	s.PageUp(10)
	assert.Equal(t, 0, s.SelectedIndex())
}

func TestJumpHomeEndToday(t *testing.T) {
	s := New(WithNow(fixedClock))
	s.Load(days(10))
	require.Equal(t, 5, s.SelectedIndex(), "2024-06-15 is the sixth day")

	s.JumpEnd()
	assert.Equal(t, 9, s.SelectedIndex())

	s.JumpHome()
	assert.Equal(t, 0, s.SelectedIndex())

	s.JumpToday()
	assert.Equal(t, 5, s.SelectedIndex())
	assert.Equal(t, 5, s.Offset())
}

func TestClampScrollsWindow(t *testing.T) {
	s := New(WithNow(fixedClock))
	s.Load(days(30))
	s.JumpHome()
	s.Clamp(10)
	require.Equal(t, 0, s.Offset())

	// Moving below the window scrolls it just enough
	s.Move(12)
	s.Clamp(10)
	assert.Equal(t, 3, s.Offset())
	assert.Len(t, s.Window(10), 10)

	// Moving above the window scrolls it to the selection
	s.Move(-10)
	s.Clamp(10)
	assert.Equal(t, 2, s.Offset())

	// Non-positive heights behave as one row
	s.Clamp(0)
	assert.Equal(t, 2, s.Offset())
}

func TestApplyFilter(t *testing.T) {
	s := New(WithNow(fixedClock))
	sessions := days(10)
	sessions = append(sessions, at("X1", "2024-06-16 00:00", "Wz"))
	s.Load(sessions)

	s.ApplyFilter("stations:Wz")

	assert.Equal(t, "stations:Wz", s.FilterText())
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.SelectedIndex())
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "X1", sel.Code())
	assert.Len(t, s.Master(), 11)
}

func TestApplyFilterSelectsToday(t *testing.T) {
	s := New(WithNow(fixedClock))
	s.Load(days(10))

	s.ApplyFilter("stations:Hb")

	assert.Equal(t, 10, s.Len())
	assert.Equal(t, 5, s.SelectedIndex())
	assert.Equal(t, 5, s.Offset())
}

func TestApplyFilterNoMatches(t *testing.T) {
	s := New(WithNow(fixedClock))
	s.Load(days(5))

	s.ApplyFilter("bogus:1")
	s.Move(1)

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.SelectedIndex())
	assert.Equal(t, 0, s.Offset())
}

func TestClearFilter(t *testing.T) {
	s := New(WithNow(fixedClock))
	s.Load(days(10))
	s.ApplyFilter("code:S01")
	require.Equal(t, 1, s.Len())

	s.ClearFilter()

	assert.Equal(t, "", s.FilterText())
	assert.Equal(t, 10, s.Len())
	assert.Equal(t, 5, s.SelectedIndex())
}

func TestToggleShowRemovedKeepsView(t *testing.T) {
	s := New(WithNow(fixedClock))
	s.Load(days(10))
	s.Move(2)
	before := s.SelectedIndex()
	require.True(t, s.ShowRemoved())

	s.ToggleShowRemoved()

	assert.False(t, s.ShowRemoved())
	assert.Equal(t, 10, s.Len())
	assert.Equal(t, before, s.SelectedIndex())

	s.ToggleShowRemoved()
	assert.True(t, s.ShowRemoved())
}

func TestWithShowRemoved(t *testing.T) {
	s := New(WithShowRemoved(false))

	assert.False(t, s.ShowRemoved())
}
