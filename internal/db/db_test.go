package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jole/ivsb/internal/db/migrations"
	"github.com/jole/ivsb/pkg/models"
)

func sample() []models.Session {
	var r1 [models.FieldCount]string
	r1[models.FieldType] = "IVS-R1"
	r1[models.FieldCode] = "R11131"
	r1[models.FieldStart] = "2024-01-08 17:00"
	r1[models.FieldStatus] = "Released/archived"

	var i1 [models.FieldCount]string
	i1[models.FieldType] = "IVS-INT1"
	i1[models.FieldCode] = "I24008"
	i1[models.FieldStart] = "2024-01-08 18:30"

	return []models.Session{
		models.NewSession(models.Ordinary, r1, []string{"Hb", "Ke", "Yg"}, []string{"Wz"}, "https://ivscc.gsfc.nasa.gov/sessions/2024/r11131/"),
		models.NewSession(models.Intensive, i1, []string{"Kk", "Wz"}, nil, ""),
	}
}

func TestNewCreatesSchema(t *testing.T) {
	// Given: no snapshot exists yet
	dbPath := filepath.Join(t.TempDir(), "nested", "snapshot.db")

	// When: the snapshot is opened
	database, err := New(dbPath)
	require.NoError(t, err)
	defer database.Close()

	// Then: the file exists with every table at the latest schema version
	_, err = os.Stat(dbPath)
	require.NoError(t, err)
	assert.Equal(t, dbPath, database.Path())

	for _, table := range []string{"sessions", "session_stations", "export_meta"} {
		exists, err := database.TableExists(table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}
	version, err := database.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations.All), version)
}

func TestNewIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshot.db")
	first, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.ReplaceSessions(sample(), "test", time.Now()))
	require.NoError(t, first.Close())

	second, err := New(dbPath)
	require.NoError(t, err)
	defer second.Close()

	count, err := second.CountSessions()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestReplaceSessionsRoundTrip(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	defer database.Close()
	want := sample()
	exportedAt := time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC)

	require.NoError(t, database.ReplaceSessions(want, "https://ivscc.gsfc.nasa.gov/sessions", exportedAt))

	got, err := database.Sessions()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got))

	source, err := database.Meta("source")
	require.NoError(t, err)
	assert.Equal(t, "https://ivscc.gsfc.nasa.gov/sessions", source)
	stamp, err := database.Meta("exported_at")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-09T10:00:00Z", stamp)
	missing, err := database.Meta("nope")
	require.NoError(t, err)
	assert.Equal(t, "", missing)
}

func TestReplaceSessionsReplacesPreviousSnapshot(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.ReplaceSessions(sample(), "first", time.Now()))
	require.NoError(t, database.ReplaceSessions(sample()[:1], "second", time.Now()))

	count, err := database.CountSessions()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	codes, err := database.SessionCodesForStation("Kk", false)
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestSessionCodesForStation(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, database.ReplaceSessions(sample(), "test", time.Now()))

	active, err := database.SessionCodesForStation("Wz", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"I24008"}, active)

	removed, err := database.SessionCodesForStation("Wz", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"R11131"}, removed)
}

func TestNormalizeDatabasePath(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSuffix string
		wantErr    bool
	}{
		{"empty path should error", "", "", true},
		{"auto-append .db extension when missing", "/tmp/snapshot", "/tmp/snapshot.db", false},
		{"preserve .db extension when present", "/tmp/snapshot.db", "/tmp/snapshot.db", false},
		{"preserve other extensions", "/tmp/snapshot.sqlite", "/tmp/snapshot.sqlite", false},
		{"relative path converted to absolute", "sessions_2024", "sessions_2024.db", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDatabasePath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(got, tt.wantSuffix), got)
			assert.True(t, filepath.IsAbs(got), got)
		})
	}
}

func TestNormalizeDatabasePathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := NormalizeDatabasePath("~/ivs/2024")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "ivs", "2024.db"), got)
}
