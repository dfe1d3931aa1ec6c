// Package store persists tag-table snapshots so renames can be undone.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/exifnaming/internal/model"
)

// ErrNoSnapshot is returned when no snapshot matches a lookup.
var ErrNoSnapshot = errors.New("no snapshot")

// SaveParams holds parameters for saving a snapshot.
type SaveParams struct {
	Root  string
	Ext   string
	Kind  string
	Table *model.Table
}

// GetParams selects one snapshot. An empty Ref means the latest one for
// Root and Ext; otherwise Ref is matched against the id and the stamp.
// A non-empty Kinds restricts the lookup to those snapshot kinds.
type GetParams struct {
	Root  string
	Ext   string
	Ref   string
	Kinds []string
}

// ListParams holds parameters for listing snapshots.
type ListParams struct {
	Root  string
	Kind  string
	Limit int
}

// PruneParams holds parameters for deleting old snapshots.
type PruneParams struct {
	Root string
	Keep int
}

// Store defines the snapshot storage interface.
type Store interface {
	// Save stores a table and returns its snapshot metadata.
	Save(ctx context.Context, p SaveParams) (*model.Snapshot, error)

	// Get loads one snapshot including its table.
	Get(ctx context.Context, p GetParams) (*model.Snapshot, error)

	// List returns snapshot metadata, newest first, without tables.
	List(ctx context.Context, p ListParams) ([]model.Snapshot, error)

	// Prune deletes all but the newest Keep snapshots of Root.
	Prune(ctx context.Context, p PruneParams) (int, error)

	// Close closes the store.
	Close() error
}
