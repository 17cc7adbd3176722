package query

import (
	"slices"
	"strings"

	"github.com/jole/ivsb/pkg/models"
)

// stationSet selects which station haystack a station clause searches.
type stationSet int

const (
	notStations stationSet = iota
	activeStations
	removedStations
	allStations
)

// fieldNames maps lower-case clause field names to display fields.
var fieldNames = map[string]models.Field{
	"type":       models.FieldType,
	"code":       models.FieldCode,
	"start":      models.FieldStart,
	"date":       models.FieldStart,
	"doy":        models.FieldDOY,
	"dur":        models.FieldDuration,
	"duration":   models.FieldDuration,
	"db code":    models.FieldDBCode,
	"db":         models.FieldDBCode,
	"ops center": models.FieldOpsCenter,
	"ops":        models.FieldOpsCenter,
	"correlator": models.FieldCorrelator,
	"corr":       models.FieldCorrelator,
	"status":     models.FieldStatus,
	"analysis":   models.FieldAnalysis,
}

var stationNames = map[string]stationSet{
	"stations":         activeStations,
	"stations_active":  activeStations,
	"stations-active":  activeStations,
	"stations_removed": removedStations,
	"stations-removed": removedStations,
	"stations_all":     allStations,
	"stations-all":     allStations,
}

// resolveField looks a clause field name up. ok is false for unknown names.
func resolveField(name string) (f models.Field, set stationSet, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if set, ok := stationNames[name]; ok {
		return models.FieldStations, set, true
	}
	f, ok = fieldNames[name]
	return f, notStations, ok
}

// haystack returns the station text a station clause is matched against.
func (set stationSet) haystack(s models.Session) string {
	switch set {
	case removedStations:
		return s.RemovedText()
	case allStations:
		return s.AllText()
	default:
		return s.ActiveText()
	}
}

// FieldNames returns the single-word clause field names, sorted.
func FieldNames() []string {
	var names []string
	for name := range fieldNames {
		if !strings.Contains(name, " ") {
			names = append(names, name)
		}
	}
	for name := range stationNames {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
