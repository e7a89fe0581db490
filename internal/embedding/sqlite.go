package embedding

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/agenthands/cortex/internal/model"
)

// SQLiteCache persists embeddings in a single SQLite database. Vectors
// are stored as little-endian float32 blobs.
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLiteCache opens (or creates) the cache database at path.
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS embeddings (
			file_id      TEXT PRIMARY KEY,
			embedding    BLOB NOT NULL,
			model        TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			created_at   TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating embeddings table: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

func (c *SQLiteCache) Close() error { return c.db.Close() }

func (c *SQLiteCache) Get(ctx context.Context, fileID string) (*Embedding, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT file_id, embedding, model, content_hash, created_at
		FROM embeddings WHERE file_id = ?
	`, fileID)

	emb, err := scanEmbedding(row.Scan)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading embedding %s: %w", fileID, err)
	}
	return emb, nil
}

func (c *SQLiteCache) GetBatch(ctx context.Context, fileIDs []string) (map[string]Embedding, error) {
	out := make(map[string]Embedding, len(fileIDs))
	if len(fileIDs) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(fileIDs)), ",")
	args := make([]any, len(fileIDs))
	for i, id := range fileIDs {
		args[i] = id
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT file_id, embedding, model, content_hash, created_at
		FROM embeddings WHERE file_id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	return collectEmbeddings(rows, out)
}

func (c *SQLiteCache) All(ctx context.Context) (map[string]Embedding, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT file_id, embedding, model, content_hash, created_at
		FROM embeddings
	`)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	return collectEmbeddings(rows, make(map[string]Embedding))
}

func (c *SQLiteCache) Put(ctx context.Context, emb Embedding) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO embeddings (file_id, embedding, model, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, emb.FileID, float32SliceToBytes(emb.Vector), emb.Model, emb.ContentHash,
		emb.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving embedding %s: %w", emb.FileID, err)
	}
	return nil
}

func collectEmbeddings(rows *sql.Rows, out map[string]Embedding) (map[string]Embedding, error) {
	for rows.Next() {
		emb, err := scanEmbedding(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}
		out[emb.FileID] = *emb
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}
	return out, nil
}

func scanEmbedding(scan func(...any) error) (*Embedding, error) {
	var emb Embedding
	var blob []byte
	var createdAt string
	if err := scan(&emb.FileID, &blob, &emb.Model, &emb.ContentHash, &createdAt); err != nil {
		return nil, err
	}
	emb.Vector = bytesToFloat32Slice(blob)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		emb.CreatedAt = t
	}
	return &emb, nil
}

func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
