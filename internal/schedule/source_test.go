package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jole/ivsb/pkg/models"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		in   string
		want Scope
	}{
		{"", ScopeBoth},
		{"both", ScopeBoth},
		{"master", ScopeOrdinary},
		{"ordinary", ScopeOrdinary},
		{"Intensive", ScopeIntensive},
	}
	for _, tt := range tests {
		got, err := ParseScope(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseScope("weekly")
	assert.Error(t, err)
}

func TestSources(t *testing.T) {
	both := Sources(DefaultBaseURL, 2024, ScopeBoth)
	assert.Equal(t, []Source{
		{URL: "https://ivscc.gsfc.nasa.gov/sessions/2024/", Kind: models.Ordinary},
		{URL: "https://ivscc.gsfc.nasa.gov/sessions/intensive/2024/", Kind: models.Intensive},
	}, both)

	ordinary := Sources("http://localhost:8080/s/", 2023, ScopeOrdinary)
	assert.Equal(t, []Source{{URL: "http://localhost:8080/s/2023/", Kind: models.Ordinary}}, ordinary)

	intensive := Sources("", 2025, ScopeIntensive)
	assert.Equal(t, []Source{{URL: "https://ivscc.gsfc.nasa.gov/sessions/intensive/2025/", Kind: models.Intensive}}, intensive)
}
