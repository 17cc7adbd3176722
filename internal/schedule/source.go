// Package schedule downloads the published session tables and turns their
// rows into sessions.
package schedule

import (
	"fmt"
	"strings"

	"github.com/jole/ivsb/pkg/models"
)

// DefaultBaseURL is the root of the session schedule pages.
const DefaultBaseURL = "https://ivscc.gsfc.nasa.gov/sessions"

// Scope selects which schedules are downloaded.
type Scope int

const (
	ScopeBoth Scope = iota
	ScopeOrdinary
	ScopeIntensive
)

// ParseScope accepts ordinary (or master), intensive and both.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return ScopeBoth, nil
	case "ordinary", "master":
		return ScopeOrdinary, nil
	case "intensive":
		return ScopeIntensive, nil
	}
	return ScopeBoth, fmt.Errorf("invalid scope %q (want ordinary, intensive or both)", s)
}

func (s Scope) String() string {
	switch s {
	case ScopeOrdinary:
		return "ordinary"
	case ScopeIntensive:
		return "intensive"
	}
	return "both"
}

// Source is one schedule page.
type Source struct {
	URL  string
	Kind models.Kind
}

// Sources returns the pages to download for year, ordinary schedule first.
func Sources(baseURL string, year int, scope Scope) []Source {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	var out []Source
	if scope != ScopeIntensive {
		out = append(out, Source{URL: fmt.Sprintf("%s/%d/", base, year), Kind: models.Ordinary})
	}
	if scope != ScopeOrdinary {
		out = append(out, Source{URL: fmt.Sprintf("%s/intensive/%d/", base, year), Kind: models.Intensive})
	}
	return out
}
