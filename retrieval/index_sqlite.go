package retrieval

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hupe1980/symgo/core"
)

// SQLiteIndex is a durable vector index backed by a local SQLite database.
// Vectors are stored as little-endian float32 blobs; queries load the
// candidate entries and rank them by cosine similarity in process, which is
// adequate for document-scale corpora.
type SQLiteIndex struct {
	db *sql.DB
}

var (
	_ core.VectorIndex = (*SQLiteIndex)(nil)
	_ core.Capability  = (*SQLiteIndex)(nil)
)

// NewSQLiteIndex opens or creates the index database at dbPath.
func NewSQLiteIndex(dbPath string) (*SQLiteIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &SQLiteIndex{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLiteIndex) Close() error { return s.db.Close() }

func (s *SQLiteIndex) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS indexes (
		name       TEXT PRIMARY KEY,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS entries (
		id        TEXT PRIMARY KEY,
		idx       TEXT NOT NULL REFERENCES indexes(name) ON DELETE CASCADE,
		pos       INTEGER NOT NULL,
		vector    BLOB NOT NULL,
		metadata  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_idx_pos ON entries(idx, pos);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Register creates the named index. With overwrite set, existing entries
// are dropped; otherwise an existing index is left unchanged.
func (s *SQLiteIndex) Register(ctx context.Context, name string, overwrite bool) error {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists && !overwrite {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE idx = ?`, name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO indexes (name) VALUES (?)`, name); err != nil {
		return err
	}
	return tx.Commit()
}

// Exists reports whether the named index has been registered.
func (s *SQLiteIndex) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM indexes WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Upsert appends a (vector, metadata) pair, registering the index on first
// use. Position keeps insertion order for deterministic tie-breaks.
func (s *SQLiteIndex) Upsert(ctx context.Context, name string, vector []float32, metadata map[string]string) error {
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO indexes (name) VALUES (?)`, name); err != nil {
		return err
	}
	md, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries (id, idx, pos, vector, metadata)
		VALUES (?, ?, (SELECT COALESCE(MAX(pos), -1) + 1 FROM entries WHERE idx = ?), ?, ?)`,
		uuid.NewString(), name, name, encodeVector(vector), string(md))
	return err
}

// Query ranks all entries of the named index by cosine similarity and
// returns the topK best, insertion order breaking score ties.
func (s *SQLiteIndex) Query(ctx context.Context, name string, vector []float32, topK int) ([]core.Match, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("index '%s': %w", name, core.ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, vector, metadata FROM entries WHERE idx = ? ORDER BY pos`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []core.Match
	for rows.Next() {
		var id, md string
		var blob []byte
		if err := rows.Scan(&id, &blob, &md); err != nil {
			return nil, err
		}
		var metadata map[string]string
		if err := json.Unmarshal([]byte(md), &metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		matches = append(matches, core.Match{
			ID:       id,
			Score:    CosineSimilarity(vector, decodeVector(blob)),
			Metadata: metadata,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Invoke implements the generic capability contract.
func (s *SQLiteIndex) Invoke(ctx context.Context, req core.Request) (core.Response, error) {
	return invokeIndex(ctx, s, req)
}

func encodeVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, f := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(blob []byte) []float32 {
	out := make([]float32, len(blob)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return out
}
