package index

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	return []Entry{
		{
			CaseID:    "TS015475137",
			Title:     "VPN authentication failure",
			Reporters: "Jane Doe",
			Source:    "https://example.com/a.pdf",
			AllText:   "Users report authentication errors after the VPN upgrade.",
		},
		{
			CaseID:    "TS011853282",
			Title:     "Disk full on build agent",
			Reporters: "John Smith,Mary Jones",
			Source:    "https://example.com/b.pdf",
			AllText:   "The build agent ran out of disk space during nightly jobs.",
		},
	}
}

func countRows(t *testing.T, path, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM "+table).Scan(&n))
	return n
}

func TestSQLiteBuilder_Rebuild(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create docs and fts rows with matching ids", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "poc.db")
		b := NewSQLiteBuilder(path)

		require.NoError(t, b.Rebuild(ctx, sampleEntries()))

		assert.Equal(t, 2, countRows(t, path, "docs"))
		assert.Equal(t, 2, countRows(t, path, "docs_fts"))

		db, err := sql.Open("sqlite", path)
		require.NoError(t, err)
		defer db.Close()
		var caseID, title string
		err = db.QueryRow(`SELECT d.case_id, f.title FROM docs d JOIN docs_fts f ON f.rowid = d.id WHERE d.source = ?`,
			"https://example.com/b.pdf").Scan(&caseID, &title)
		require.NoError(t, err)
		assert.Equal(t, "TS011853282", caseID)
		assert.Equal(t, "Disk full on build agent", title)
	})

	t.Run("Should replace an existing index", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "poc.db")
		b := NewSQLiteBuilder(path)

		require.NoError(t, b.Rebuild(ctx, sampleEntries()))
		require.NoError(t, b.Rebuild(ctx, sampleEntries()[:1]))

		assert.Equal(t, 1, countRows(t, path, "docs"))
		assert.Equal(t, 1, countRows(t, path, "docs_fts"))
	})

	t.Run("Should replace a file that is not a database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "poc.db")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

		require.NoError(t, NewSQLiteBuilder(path).Rebuild(ctx, sampleEntries()))
		assert.Equal(t, 2, countRows(t, path, "docs"))
	})
}

func TestSQLiteBuilder_Search(t *testing.T) {
	ctx := context.Background()
	b := NewSQLiteBuilder(filepath.Join(t.TempDir(), "poc.db"))
	require.NoError(t, b.Rebuild(ctx, sampleEntries()))

	t.Run("Should find documents by body text", func(t *testing.T) {
		hits, err := b.Search(ctx, "authentication", 5)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "TS015475137", hits[0].CaseID)
		assert.Equal(t, "https://example.com/a.pdf", hits[0].Source)
	})

	t.Run("Should find documents by reporter", func(t *testing.T) {
		hits, err := b.Search(ctx, "reporters:Mary", 0)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "TS011853282", hits[0].CaseID)
	})

	t.Run("Should return nothing for unknown terms", func(t *testing.T) {
		hits, err := b.Search(ctx, "kubernetes", 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("Should report malformed match expressions", func(t *testing.T) {
		_, err := b.Search(ctx, `"unterminated`, 5)
		assert.Error(t, err)
	})
}
