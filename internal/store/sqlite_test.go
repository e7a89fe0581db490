package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSpace creates a knowledge database for one space with a few rows.
func seedSpace(t *testing.T, root, space string) {
	t.Helper()

	dir := filepath.Join(root, space, ".cortex")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	db, err := sql.Open("sqlite", filepath.Join(dir, "knowledge.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE files (
			id TEXT PRIMARY KEY,
			title TEXT,
			path TEXT,
			space TEXT,
			type TEXT,
			content TEXT,
			word_count INTEGER,
			is_stub INTEGER,
			created_at TEXT,
			updated_at TEXT
		);
		CREATE TABLE links (
			source_id TEXT,
			target_id TEXT,
			target_title TEXT,
			resolved INTEGER
		);
		CREATE TABLE tags (
			file_id TEXT,
			normalized_tag TEXT
		);
	`)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO files VALUES
			('doc-1', 'First', 'first.md', ?, 'note', 'Body one.', 120, 0, '2026-08-01T10:00:00', '2026-08-20T10:00:00'),
			('doc-2', NULL, 'second.md', ?, 'note', 'Body two.', 80, 0, '2026-08-02', '2026-08-21'),
			('stub-1', 'Stub', 'stub.md', ?, 'note', '', 0, 1, NULL, NULL);
		INSERT INTO links VALUES
			('doc-1', 'doc-2', 'Second', 1),
			('doc-1', NULL, 'Missing Note', 0);
		INSERT INTO tags VALUES
			('doc-1', 'go'),
			('doc-1', 'infra');
	`, space, space, space)
	require.NoError(t, err)
}

func TestSQLiteStore_ListDocuments(t *testing.T) {
	root := t.TempDir()
	seedSpace(t, root, "work")

	s := NewSQLiteStore(root, []string{"work"})
	defer s.Close()

	docs, err := s.ListDocuments(context.Background(), []string{"work"})
	require.NoError(t, err)
	require.Len(t, docs, 3)

	byID := make(map[string]int)
	for i, d := range docs {
		byID[d.ID] = i
	}

	first := docs[byID["doc-1"]]
	assert.Equal(t, "First", first.Title)
	assert.Equal(t, "note", first.Type)
	assert.Equal(t, 120, first.WordCount)
	assert.Equal(t, []string{"go", "infra"}, first.Tags)
	assert.Equal(t, 2026, first.UpdatedAt.Year())
	assert.False(t, first.IsStub)

	// untitled documents fall back to their id
	assert.Equal(t, "doc-2", docs[byID["doc-2"]].Title)
	assert.True(t, docs[byID["stub-1"]].IsStub)
}

func TestSQLiteStore_ListLinks(t *testing.T) {
	root := t.TempDir()
	seedSpace(t, root, "work")

	s := NewSQLiteStore(root, []string{"work"})
	defer s.Close()

	links, err := s.ListLinks(context.Background(), []string{"work"})
	require.NoError(t, err)
	require.Len(t, links, 2)

	assert.Equal(t, "doc-2", links[0].Target)
	assert.True(t, links[0].Resolved)
	// unresolved link falls back to the target title
	assert.Equal(t, "Missing Note", links[1].Target)
	assert.False(t, links[1].Resolved)
}

func TestSQLiteStore_SkipsMissingSpaces(t *testing.T) {
	root := t.TempDir()
	seedSpace(t, root, "work")

	s := NewSQLiteStore(root, []string{"work", "absent"})
	defer s.Close()

	docs, err := s.ListDocuments(context.Background(), []string{"work", "absent"})
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	spaces, err := s.Spaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, spaces)
}

func TestSQLiteStore_MultipleSpaces(t *testing.T) {
	root := t.TempDir()
	seedSpace(t, root, "work")
	seedSpace(t, root, "personal")

	s := NewSQLiteStore(root, []string{"work", "personal"})
	defer s.Close()

	docs, err := s.ListDocuments(context.Background(), []string{"work", "personal"})
	require.NoError(t, err)
	// ids repeat across the seeded spaces; the first occurrence wins
	assert.Len(t, docs, 3)
}

func TestParseTime(t *testing.T) {
	assert.Equal(t, 2026, parseTime("2026-08-20T10:00:00").Year())
	assert.Equal(t, 2026, parseTime("2026-08-20 10:00:00").Year())
	assert.Equal(t, 2026, parseTime("2026-08-20").Year())
	assert.True(t, parseTime("").IsZero())
	assert.True(t, parseTime("garbage").IsZero())
}
