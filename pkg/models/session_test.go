package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fieldsWith(code, start string) [FieldCount]string {
	var f [FieldCount]string
	f[FieldType] = "IVS-R1"
	f[FieldCode] = code
	f[FieldStart] = start
	return f
}

func TestStationsDisplay(t *testing.T) {
	tests := []struct {
		name    string
		active  []string
		removed []string
		want    string
	}{
		{"active only", []string{"Hb", "Ke", "Yg"}, nil, "HbKeYg"},
		{"active and removed", []string{"Hb", "Ke"}, []string{"Wz"}, "HbKe [Wz]"},
		{"removed only", nil, []string{"Wz", "Ny"}, "[WzNy]"},
		{"none", nil, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StationsDisplay(tt.active, tt.removed))
		})
	}
}

func TestNewSessionDerivesStations(t *testing.T) {
	// Given: a fields array whose stations cell disagrees with the sets
	f := fieldsWith("R1001", "2024-01-08 17:00")
	f[FieldStations] = "stale text"

	// When: the session is built
	s := NewSession(Ordinary, f, []string{"Hb", "Ke"}, []string{"Ny"}, "")

	// Then: the display is derived from the sets
	assert.Equal(t, "HbKe [Ny]", s.StationsText())
	assert.Equal(t, "Hb Ke", s.ActiveText())
	assert.Equal(t, "Ny", s.RemovedText())
	assert.Equal(t, "Hb Ke Ny", s.AllText())
	assert.Equal(t, "IVS-R1", s.Type())
}

func TestNewSessionCopiesStationSets(t *testing.T) {
	active := []string{"Hb"}
	s := NewSession(Ordinary, fieldsWith("R1", ""), active, nil, "")

	active[0] = "Xx"

	assert.Equal(t, []string{"Hb"}, s.Active)
}

func TestNewSessionIntensiveMarker(t *testing.T) {
	var f [FieldCount]string
	f[FieldType] = "INT1"

	s := NewSession(Intensive, f, nil, nil, "")

	assert.Equal(t, "INT1       [I]", s.Type())
	assert.Len(t, s.Type(), TypeWidth)
	assert.Equal(t, "intensive", s.Kind.String())
}

func TestFieldOutOfRange(t *testing.T) {
	s := NewSession(Ordinary, fieldsWith("R1", ""), nil, nil, "")

	assert.Equal(t, "R1", s.Field(FieldCode))
	assert.Equal(t, "", s.Field(FieldCount))
	assert.Equal(t, "", s.Field(-1))
}

func TestFieldTitle(t *testing.T) {
	assert.Equal(t, "Type", FieldType.Title())
	assert.Equal(t, "Ops Center", FieldOpsCenter.Title())
	assert.Equal(t, "Analysis", FieldAnalysis.Title())
	assert.Equal(t, "", FieldCount.Title())
}
