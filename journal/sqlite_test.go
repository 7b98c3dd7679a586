package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='exports'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "exports", name)
}

func TestSQLiteRecordAndList(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	base := time.Date(2025, 11, 5, 22, 30, 15, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := NewRecord("data/2025-11-05/yahoo/portfolio.csv", base.Add(time.Duration(i)*time.Minute), 10+i, 4, 6)
		require.NoError(t, j.RecordExport(rec))
	}

	recs, err := j.ListExports(0)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// Newest first.
	assert.Equal(t, 12, recs[0].Positions)
	assert.Equal(t, 10, recs[2].Positions)
	assert.True(t, recs[0].CreatedAt.After(recs[1].CreatedAt))

	assert.Equal(t, 4, recs[0].ExchangeMapped)
	assert.Equal(t, 6, recs[0].ShortNameUsed)
	assert.Equal(t, "data/2025-11-05/yahoo/portfolio.csv", recs[0].Path)
	assert.NotEmpty(t, recs[0].ExportID)
}

func TestSQLiteListLimit(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	base := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, j.RecordExport(NewRecord("p.csv", base.Add(time.Duration(i)*time.Second), i, 0, 0)))
	}

	recs, err := j.ListExports(2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, 4, recs[0].Positions)
}

func TestNewRecordIDsAreSortable(t *testing.T) {
	t.Parallel()

	a := NewRecord("a.csv", time.Now(), 1, 0, 0)
	b := NewRecord("b.csv", time.Now(), 1, 0, 0)

	assert.NotEqual(t, a.ExportID, b.ExportID)
	assert.Len(t, a.ExportID, 26)
}
