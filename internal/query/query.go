// Package query evaluates the filter expressions typed into the browser.
//
// An expression is a list of clauses separated by ';'. Every clause must
// match. A clause is either free text, searched in every display field, or
// field:value. Station fields take the '&' / '|' grammar of ParseStationExpr;
// any other field matches when one of the value's tokens occurs in it.
package query

import (
	"regexp"
	"slices"
	"strings"

	"github.com/jole/ivsb/pkg/models"
)

var valueSplit = regexp.MustCompile(`[ ,+|&]+`)

// Query is a compiled expression.
type Query struct {
	clauses []clause
}

type clause interface {
	match(s models.Session) bool
}

// textClause matches a case-insensitive substring of any display field.
type textClause struct {
	needle string
}

// fieldClause matches when any token occurs in one display field.
type fieldClause struct {
	field  models.Field
	tokens []string
}

type stationClause struct {
	set  stationSet
	expr StationExpr
}

// unknownClause names a field that does not exist and never matches.
type unknownClause struct{}

// Compile parses expr. Parsing never fails: malformed clauses degrade to
// clauses that match nothing.
func Compile(expr string) Query {
	var q Query
	for _, raw := range strings.Split(expr, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		q.clauses = append(q.clauses, compileClause(raw))
	}
	return q
}

func compileClause(raw string) clause {
	name, value, ok := strings.Cut(raw, ":")
	if !ok {
		return textClause{needle: strings.ToLower(raw)}
	}
	field, set, known := resolveField(name)
	switch {
	case !known:
		return unknownClause{}
	case set != notStations:
		return stationClause{set: set, expr: ParseStationExpr(value)}
	}
	tokens := splitTokens(valueSplit, value)
	for i := range tokens {
		tokens[i] = strings.ToLower(tokens[i])
	}
	return fieldClause{field: field, tokens: tokens}
}

// Empty reports whether the query has no clauses and so keeps everything.
func (q Query) Empty() bool { return len(q.clauses) == 0 }

// Match reports whether s satisfies every clause.
func (q Query) Match(s models.Session) bool {
	for _, c := range q.clauses {
		if !c.match(s) {
			return false
		}
	}
	return true
}

// Filter returns the sessions matching expr in their original order. The
// result is always a new slice.
func Filter(sessions []models.Session, expr string) []models.Session {
	q := Compile(expr)
	if q.Empty() {
		return slices.Clone(sessions)
	}
	out := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if q.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

func (c textClause) match(s models.Session) bool {
	for _, f := range s.Fields {
		if strings.Contains(strings.ToLower(f), c.needle) {
			return true
		}
	}
	return false
}

func (c fieldClause) match(s models.Session) bool {
	hay := strings.ToLower(s.Field(c.field))
	for _, tok := range c.tokens {
		if strings.Contains(hay, tok) {
			return true
		}
	}
	return false
}

func (c stationClause) match(s models.Session) bool {
	return c.expr.Match(c.set.haystack(s))
}

func (unknownClause) match(models.Session) bool { return false }

// StationTokens returns the distinct station tokens named by the station
// clauses of expr, longest first.
func StationTokens(expr string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range Compile(expr).clauses {
		sc, ok := c.(stationClause)
		if !ok {
			continue
		}
		for _, tok := range sc.expr.Tokens() {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
		}
	}
	slices.SortStableFunc(out, func(a, b string) int { return len(b) - len(a) })
	return out
}
