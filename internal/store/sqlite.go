package store

import (
	"bytes"
	"compress/gzip"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/exifnaming/internal/model"
)

// StampLayout formats the timestamp snapshots are also addressable by.
const StampLayout = "0102150405"

// createdLayout is fixed-width so that created_at sorts as text.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id          TEXT PRIMARY KEY,
		stamp       TEXT NOT NULL,
		root        TEXT NOT NULL,
		ext         TEXT NOT NULL DEFAULT '',
		kind        TEXT NOT NULL,
		rows        INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		data        BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_root ON snapshots(root, ext, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_snapshots_stamp ON snapshots(stamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, p SaveParams) (*model.Snapshot, error) {
	if p.Table == nil {
		return nil, fmt.Errorf("save snapshot: nil table")
	}
	data, err := encodeTable(p.Table)
	if err != nil {
		return nil, fmt.Errorf("encode table: %w", err)
	}

	now := time.Now()
	snap := &model.Snapshot{
		ID:        s.newID(),
		Stamp:     now.Format(StampLayout),
		Root:      filepath.Clean(p.Root),
		Ext:       p.Ext,
		Kind:      p.Kind,
		Rows:      p.Table.Len(),
		CreatedAt: now.UTC(),
		Table:     p.Table,
	}

	if _, err := s.insert(ctx, "INSERT", snap, data); err != nil {
		return nil, err
	}
	return snap, nil
}

// insert writes one snapshot row with the given verb, e.g. "INSERT OR
// IGNORE", and reports whether a row was added.
func (s *SQLiteStore) insert(ctx context.Context, verb string, snap *model.Snapshot, data []byte) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		verb+` INTO snapshots (id, stamp, root, ext, kind, rows, created_at, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Stamp, snap.Root, snap.Ext, snap.Kind, snap.Rows,
		snap.CreatedAt.UTC().Format(createdLayout), data)
	if err != nil {
		return false, fmt.Errorf("insert snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) Get(ctx context.Context, p GetParams) (*model.Snapshot, error) {
	where := []string{"root = ?"}
	args := []interface{}{filepath.Clean(p.Root)}
	if p.Ext != "" {
		where = append(where, "ext = ?")
		args = append(args, p.Ext)
	}
	if p.Ref != "" {
		where = append(where, "(id = ? OR stamp = ?)")
		args = append(args, p.Ref, p.Ref)
	}
	if len(p.Kinds) > 0 {
		where = append(where, "kind IN ("+strings.TrimSuffix(strings.Repeat("?, ", len(p.Kinds)), ", ")+")")
		for _, k := range p.Kinds {
			args = append(args, k)
		}
	}

	query := `SELECT id, stamp, root, ext, kind, rows, created_at, data
	          FROM snapshots WHERE ` + strings.Join(where, " AND ") + `
	          ORDER BY created_at DESC, id DESC LIMIT 1`

	var data []byte
	snap, err := scanSnapshot(s.db.QueryRowContext(ctx, query, args...), &data)
	if errors.Is(err, sql.ErrNoRows) {
		if p.Ref != "" {
			return nil, fmt.Errorf("%w: %q in %s", ErrNoSnapshot, p.Ref, p.Root)
		}
		return nil, fmt.Errorf("%w in %s", ErrNoSnapshot, p.Root)
	}
	if err != nil {
		return nil, err
	}

	snap.Table, err = decodeTable(data)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
	}
	return &snap, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Snapshot, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"1 = 1"}
	args := []interface{}{}
	if p.Root != "" {
		where = append(where, "root = ?")
		args = append(args, filepath.Clean(p.Root))
	}
	if p.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, p.Kind)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, stamp, root, ext, kind, rows, created_at, NULL
		 FROM snapshots WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY created_at DESC, id DESC LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var data []byte
		snap, err := scanSnapshot(rows, &data)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *SQLiteStore) Prune(ctx context.Context, p PruneParams) (int, error) {
	if p.Keep < 0 {
		return 0, fmt.Errorf("prune: negative keep %d", p.Keep)
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE root = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE root = ? ORDER BY created_at DESC, id DESC LIMIT ?
		)`, filepath.Clean(p.Root), filepath.Clean(p.Root), p.Keep)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row scanner, data *[]byte) (model.Snapshot, error) {
	var snap model.Snapshot
	var createdAt string
	err := row.Scan(&snap.ID, &snap.Stamp, &snap.Root, &snap.Ext, &snap.Kind, &snap.Rows, &createdAt, data)
	if err != nil {
		return snap, err
	}
	snap.CreatedAt, _ = time.Parse(createdLayout, createdAt)
	return snap, nil
}

// encodeTable stores a table as gzip-compressed JSON.
func encodeTable(t *model.Table) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(t.Data()); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeTable(data []byte) (*model.Table, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	var d model.TableData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return model.TableFromData(d)
}
