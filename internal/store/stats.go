package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string      `json:"db_path"`
	DBSizeBytes    int64       `json:"db_size_bytes"`
	TotalSnapshots int         `json:"total_snapshots"`
	Roots          []RootStats `json:"roots"`
}

// RootStats holds per-directory counts.
type RootStats struct {
	Root   string `json:"root"`
	Count  int    `json:"count"`
	Rows   int    `json:"rows"`
	Latest string `json:"latest"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&st.TotalSnapshots)

	rows, err := s.db.QueryContext(ctx, `
		SELECT root, COUNT(*) AS cnt, COALESCE(SUM(rows), 0), MAX(created_at)
		FROM snapshots
		GROUP BY root ORDER BY cnt DESC, root`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var rs RootStats
		rows.Scan(&rs.Root, &rs.Count, &rs.Rows, &rs.Latest)
		st.Roots = append(st.Roots, rs)
	}

	return st, nil
}
