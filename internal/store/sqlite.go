package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/agenthands/cortex/internal/model"
)

// SQLiteStore reads the per-space knowledge databases produced by the
// ingestion step. Each space keeps its own database under
// <root>/<space>/.cortex/knowledge.db.
type SQLiteStore struct {
	root   string
	spaces []string
	dbs    map[string]*sql.DB
}

func NewSQLiteStore(dataRoot string, spaces []string) *SQLiteStore {
	return &SQLiteStore{
		root:   dataRoot,
		spaces: spaces,
		dbs:    make(map[string]*sql.DB),
	}
}

func (s *SQLiteStore) dbPath(space string) string {
	return filepath.Join(s.root, space, ".cortex", "knowledge.db")
}

func (s *SQLiteStore) open(space string) (*sql.DB, error) {
	if db, ok := s.dbs[space]; ok {
		return db, nil
	}
	path := s.dbPath(space)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("space %q has no knowledge database: %w", space, model.ErrNoDocuments)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	s.dbs[space] = db
	return db, nil
}

func (s *SQLiteStore) Spaces(_ context.Context) ([]string, error) {
	var out []string
	for _, space := range s.spaces {
		if _, err := os.Stat(s.dbPath(space)); err == nil {
			out = append(out, space)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *SQLiteStore) ListDocuments(ctx context.Context, spaces []string) ([]model.Document, error) {
	var docs []model.Document
	seen := make(map[string]bool)

	for _, space := range spaces {
		db, err := s.open(space)
		if err != nil {
			continue // spaces without a database are simply out of scope
		}

		tags, err := loadTags(ctx, db)
		if err != nil {
			return nil, err
		}

		rows, err := db.QueryContext(ctx, `
			SELECT id, title, path, space, type, content, word_count, is_stub, created_at, updated_at
			FROM files
		`)
		if err != nil {
			return nil, fmt.Errorf("querying files in %s: %w", space, err)
		}

		for rows.Next() {
			var (
				doc                  model.Document
				title, path, sp      sql.NullString
				typ, content         sql.NullString
				wordCount            sql.NullInt64
				isStub               sql.NullBool
				createdAt, updatedAt sql.NullString
			)
			if err := rows.Scan(&doc.ID, &title, &path, &sp, &typ, &content,
				&wordCount, &isStub, &createdAt, &updatedAt); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning file row: %w", err)
			}
			if seen[doc.ID] {
				continue
			}
			seen[doc.ID] = true

			doc.Title = title.String
			if doc.Title == "" {
				doc.Title = doc.ID
			}
			doc.Path = path.String
			doc.Space = sp.String
			if doc.Space == "" {
				doc.Space = space
			}
			doc.Type = typ.String
			doc.Content = content.String
			doc.WordCount = int(wordCount.Int64)
			doc.IsStub = isStub.Bool
			doc.CreatedAt = parseTime(createdAt.String)
			doc.UpdatedAt = parseTime(updatedAt.String)
			doc.Tags = tags[doc.ID]
			docs = append(docs, doc)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterating files in %s: %w", space, err)
		}
		rows.Close()
	}

	return docs, nil
}

func (s *SQLiteStore) ListLinks(ctx context.Context, spaces []string) ([]model.Link, error) {
	var links []model.Link

	for _, space := range spaces {
		db, err := s.open(space)
		if err != nil {
			continue
		}

		rows, err := db.QueryContext(ctx, `
			SELECT source_id, target_id, target_title, resolved
			FROM links
		`)
		if err != nil {
			return nil, fmt.Errorf("querying links in %s: %w", space, err)
		}

		for rows.Next() {
			var (
				source, target, targetTitle sql.NullString
				resolved                    sql.NullBool
			)
			if err := rows.Scan(&source, &target, &targetTitle, &resolved); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning link row: %w", err)
			}
			tgt := target.String
			if tgt == "" {
				tgt = targetTitle.String
			}
			links = append(links, model.Link{
				Source:   source.String,
				Target:   tgt,
				Resolved: resolved.Bool,
			})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterating links in %s: %w", space, err)
		}
		rows.Close()
	}

	return links, nil
}

func (s *SQLiteStore) Close() error {
	var firstErr error
	for _, db := range s.dbs {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func loadTags(ctx context.Context, db *sql.DB) (map[string][]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT file_id, GROUP_CONCAT(normalized_tag, ',') AS tags
		FROM tags
		GROUP BY file_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var fileID string
		var concat sql.NullString
		if err := rows.Scan(&fileID, &concat); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		if concat.String == "" {
			continue
		}
		var tags []string
		for _, t := range strings.Split(concat.String, ",") {
			if t != "" {
				tags = append(tags, t)
			}
		}
		out[fileID] = tags
	}
	return out, rows.Err()
}

// parseTime accepts the timestamp shapes the ingestion step has written
// over time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
