package model

import "time"

// Snapshot kinds.
const (
	SnapshotRename = "rename"
	SnapshotUndo   = "undo"
	SnapshotRead   = "read"
)

// Snapshot is a persisted tag table, used to undo renames.
type Snapshot struct {
	ID        string    `json:"id"`
	Stamp     string    `json:"stamp"`
	Root      string    `json:"root"`
	Ext       string    `json:"ext"`
	Kind      string    `json:"kind"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
	Table     *Table    `json:"-"`
}
