package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jole/ivsb/internal/db"
)

func TestExportWritesSnapshot(t *testing.T) {
	// Given: a master and an intensive schedule
	srv := newScheduleServer(t)
	dbPath := filepath.Join(t.TempDir(), "sessions")

	// When: I run "ivsb export"
	stdout, _, err := runCmd(t, "export", "--base-url", srv.base(), "--year", "2024", "--db", dbPath)

	// Then: all sessions are stored in chronological order
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 3 sessions to "+dbPath+".db")

	database, err := db.New(dbPath)
	require.NoError(t, err)
	defer database.Close()

	sessions, err := database.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, []string{"R41132", "I24032", "R11140"},
		[]string{sessions[0].Code(), sessions[1].Code(), sessions[2].Code()})

	source, err := database.Meta("source")
	require.NoError(t, err)
	assert.Equal(t, srv.base()+"/2024/,"+srv.base()+"/intensive/2024/", source)

	codes, err := database.SessionCodesForStation("Wz", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"R11140"}, codes)
}

func TestExportQuery(t *testing.T) {
	srv := newScheduleServer(t)
	dbPath := filepath.Join(t.TempDir(), "released.db")

	stdout, _, err := runCmd(t, "export", "--base-url", srv.base(), "--year", "2024", "--db", dbPath, "--query", "status:released")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 2 sessions")

	database, err := db.New(dbPath)
	require.NoError(t, err)
	defer database.Close()
	count, err := database.CountSessions()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestExportRequiresDB(t *testing.T) {
	srv := newScheduleServer(t)

	_, _, err := runCmd(t, "export", "--base-url", srv.base(), "--year", "2024")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"db"`)
	assert.Equal(t, int32(0), srv.requests.Load())
}
