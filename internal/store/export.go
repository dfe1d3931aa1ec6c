package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rcliao/exifnaming/internal/model"
)

// Export is a snapshot together with its table, in serializable form.
type Export struct {
	model.Snapshot
	Table model.TableData `json:"table"`
}

// ExportAll returns every snapshot with its table, optionally limited to one root.
func (s *SQLiteStore) ExportAll(ctx context.Context, root string) ([]Export, error) {
	query := `SELECT id, stamp, root, ext, kind, rows, created_at, data FROM snapshots`
	args := []interface{}{}
	if root != "" {
		query += ` WHERE root = ?`
		args = append(args, filepath.Clean(root))
	}
	query += ` ORDER BY root, created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Export
	for rows.Next() {
		var data []byte
		snap, err := scanSnapshot(rows, &data)
		if err != nil {
			return nil, err
		}
		t, err := decodeTable(data)
		if err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
		}
		out = append(out, Export{Snapshot: snap, Table: t.Data()})
	}
	return out, rows.Err()
}

// Import stores exported snapshots under their original id, stamp and
// creation time, so refs taken before the export still resolve. Snapshots
// whose id already exists are skipped. Exports without an id are saved as
// new snapshots.
func (s *SQLiteStore) Import(ctx context.Context, exports []Export) (int, error) {
	imported := 0
	for _, e := range exports {
		t, err := model.TableFromData(e.Table)
		if err != nil {
			return imported, fmt.Errorf("snapshot %s: %w", e.ID, err)
		}
		if e.ID == "" || e.CreatedAt.IsZero() {
			if _, err := s.Save(ctx, SaveParams{Root: e.Root, Ext: e.Ext, Kind: e.Kind, Table: t}); err != nil {
				return imported, err
			}
			imported++
			continue
		}

		data, err := encodeTable(t)
		if err != nil {
			return imported, fmt.Errorf("encode snapshot %s: %w", e.ID, err)
		}
		snap := e.Snapshot
		snap.Root = filepath.Clean(snap.Root)
		snap.Rows = t.Len()
		if snap.Stamp == "" {
			snap.Stamp = snap.CreatedAt.Local().Format(StampLayout)
		}
		added, err := s.insert(ctx, "INSERT OR IGNORE", &snap, data)
		if err != nil {
			return imported, err
		}
		if added {
			imported++
		}
	}
	return imported, nil
}
