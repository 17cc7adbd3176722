package models

import "strings"

// Field identifies one of the display fields of a Session.
type Field int

const (
	FieldType Field = iota
	FieldCode
	FieldStart
	FieldDOY
	FieldDuration
	FieldStations
	FieldDBCode
	FieldOpsCenter
	FieldCorrelator
	FieldStatus
	FieldAnalysis

	// FieldCount is the number of display fields.
	FieldCount
)

var fieldTitles = [FieldCount]string{
	"Type", "Code", "Start", "DOY", "Dur", "Stations",
	"DB Code", "Ops Center", "Correlator", "Status", "Analysis",
}

// Title is the column heading of f.
func (f Field) Title() string {
	if f < 0 || f >= FieldCount {
		return ""
	}
	return fieldTitles[f]
}

// Kind tells which schedule a session was published in.
type Kind int

const (
	Ordinary Kind = iota
	Intensive
)

func (k Kind) String() string {
	if k == Intensive {
		return "intensive"
	}
	return "ordinary"
}

// IntensiveMarker is appended to the type of sessions from the intensive schedule.
const IntensiveMarker = "[I]"

// TypeWidth is the display width of the type column; intensive types are
// padded so the marker lines up at its right edge.
const TypeWidth = 14

// Session is one row of the published schedule. It is never modified after
// NewSession returns.
type Session struct {
	Fields  [FieldCount]string
	Active  []string
	Removed []string
	Kind    Kind

	// DetailURL is empty when the row carried no link.
	DetailURL string
}

// NewSession builds a Session from its cell texts and station sets. The
// stations cell of fields is ignored and derived from active and removed.
func NewSession(kind Kind, fields [FieldCount]string, active, removed []string, detailURL string) Session {
	s := Session{
		Fields:    fields,
		Active:    append([]string(nil), active...),
		Removed:   append([]string(nil), removed...),
		Kind:      kind,
		DetailURL: detailURL,
	}
	if kind == Intensive {
		s.Fields[FieldType] = padRight(fields[FieldType], TypeWidth-len(IntensiveMarker)) + IntensiveMarker
	}
	s.Fields[FieldStations] = StationsDisplay(s.Active, s.Removed)
	return s
}

// Field returns the display text of f, or "" for an out of range field.
func (s Session) Field(f Field) string {
	if f < 0 || f >= FieldCount {
		return ""
	}
	return s.Fields[f]
}

func (s Session) Type() string { return s.Fields[FieldType] }
func (s Session) Code() string { return s.Fields[FieldCode] }
func (s Session) Start() string { return s.Fields[FieldStart] }
func (s Session) Status() string { return s.Fields[FieldStatus] }
func (s Session) StationsText() string { return s.Fields[FieldStations] }

// ActiveText is the active station set joined for substring matching.
func (s Session) ActiveText() string {
	return strings.Join(s.Active, " ")
}

// RemovedText is the removed station set joined for substring matching.
func (s Session) RemovedText() string {
	return strings.Join(s.Removed, " ")
}

// AllText joins the active and removed sets.
func (s Session) AllText() string {
	return s.ActiveText() + " " + s.RemovedText()
}

// StationsDisplay renders station sets the way the schedule shows them:
// active identifiers run together, removed ones in brackets.
func StationsDisplay(active, removed []string) string {
	a := strings.Join(active, "")
	if len(removed) == 0 {
		return a
	}
	r := "[" + strings.Join(removed, "") + "]"
	if a == "" {
		return r
	}
	return a + " " + r
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
