package organizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rcliao/exifnaming/internal/fileop"
	"github.com/rcliao/exifnaming/internal/model"
	"github.com/rcliao/exifnaming/internal/naming"
	"github.com/rcliao/exifnaming/internal/store"
)

// RenameOptions configures Rename.
type RenameOptions struct {
	// DryRun computes the new names without touching files or snapshots.
	DryRun bool
}

// RenameResult summarizes a rename or undo run.
type RenameResult struct {
	Snapshot *model.Snapshot `json:"snapshot,omitempty"`
	Model    string          `json:"model,omitempty"`
	Renamed  int             `json:"renamed"`
	Skipped  int             `json:"skipped"`
	Flagged  int             `json:"flagged"`
	Failed   int             `json:"failed"`
	Plan     []fileop.Rename `json:"plan,omitempty"`
	Dirs     []DirStats      `json:"dirs,omitempty"`
}

// Rename reads the library, names every row and renames the files. The
// table, with the assigned names in "File Name new", is saved as a
// snapshot so the run can be undone. Rows lacking an essential tag are
// skipped; rows with unrecognized tag values are renamed and logged; a
// failed rename leaves that file under its old name.
func (o *Organizer) Rename(ctx context.Context, opts RenameOptions) (*RenameResult, error) {
	if o.store == nil && !opts.DryRun {
		return nil, errors.New("rename: no snapshot store")
	}
	read, err := o.Read(ctx)
	if err != nil {
		return nil, err
	}
	t := read.Table
	res := &RenameResult{Model: read.Model.Name(), Dirs: read.Dirs}

	namer := naming.NewNamer(read.Model, o.cfg.Prefix)
	oldNames := t.Column(string(model.KeyFileName))
	newNames := make([]string, t.Len())
	renames := make([]fileop.Rename, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		dir := row.Value(string(model.KeyDirectory))
		newNames[i] = oldNames[i]
		renames[i] = fileop.Rename{Dir: dir, Old: oldNames[i], New: oldNames[i]}
		if oldNames[i] == "" || dir == "" {
			o.log.Warn("skipping file without name or directory", "row", i)
			res.Skipped++
			continue
		}
		name, err := namer.Next(row)
		if err != nil {
			o.log.Warn("skipping file", "file", oldNames[i], "dir", dir, "err", err)
			res.Skipped++
			continue
		}
		if name.Flagged() {
			o.log.Warn("unrecognized tag values", "file", oldNames[i], "values", name.Unrecognized)
			res.Flagged++
		}
		newNames[i] = name.Name
		renames[i].New = name.Name
	}

	if opts.DryRun {
		for _, r := range renames {
			if r.Old != r.New {
				res.Plan = append(res.Plan, r)
			}
		}
		res.Renamed = len(res.Plan)
		return res, nil
	}

	pb := o.newBar(len(renames), "renaming")
	errs := fileop.RenameBatch(renames, func() { _ = pb.Add(1) })
	_ = pb.Finish()
	for i, err := range errs {
		switch {
		case err != nil:
			o.log.Warn("rename failed", "file", renames[i].Old, "dir", renames[i].Dir, "err", err)
			newNames[i] = oldNames[i]
			res.Failed++
		case renames[i].Old != renames[i].New:
			res.Renamed++
		}
	}

	if err := t.SetColumn(string(model.KeyFileNameNew), newNames); err != nil {
		return res, fmt.Errorf("record new names: %w", err)
	}
	res.Snapshot, err = o.saveSnapshot(ctx, model.SnapshotRename, t)
	if err != nil {
		return res, err
	}
	o.log.Info("renamed files", "renamed", res.Renamed, "skipped", res.Skipped, "failed", res.Failed, "snapshot", res.Snapshot.Stamp)
	return res, nil
}

// Undo reverts the renames recorded in a snapshot: the latest one for the
// configured extension when ref is empty, else the one whose id or stamp
// is ref. Files no longer under their new name are skipped. The reverted
// table is saved as a new snapshot, so an undo can itself be undone.
func (o *Organizer) Undo(ctx context.Context, ref string) (*RenameResult, error) {
	if o.store == nil {
		return nil, errors.New("undo: no snapshot store")
	}
	p := store.GetParams{Root: o.root, Ref: ref}
	if ref == "" {
		p.Ext = o.cfg.FileExtension
		p.Kinds = []string{model.SnapshotRename, model.SnapshotUndo}
	}
	snap, err := o.store.Get(ctx, p)
	if err != nil {
		return nil, err
	}
	t := snap.Table
	for _, key := range []model.TagKey{model.KeyFileName, model.KeyFileNameNew, model.KeyDirectory} {
		if !t.Has(string(key)) {
			return nil, fmt.Errorf("undo %s: snapshot has no %q column", snap.Stamp, key)
		}
	}

	res := &RenameResult{}
	renames := make([]fileop.Rename, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		renames[i] = fileop.Rename{
			Dir: row.Value(string(model.KeyDirectory)),
			Old: row.Value(string(model.KeyFileNameNew)),
			New: row.Value(string(model.KeyFileName)),
		}
		if renames[i].Old == "" || renames[i].New == "" {
			renames[i].New = renames[i].Old
			res.Skipped++
		}
	}

	pb := o.newBar(len(renames), "undoing")
	errs := fileop.RenameBatch(renames, func() { _ = pb.Add(1) })
	_ = pb.Finish()
	for i, err := range errs {
		r := renames[i]
		if err != nil {
			o.log.Warn("undo rename failed", "file", r.Old, "dir", r.Dir, "err", err)
			res.Failed++
			continue
		}
		if r.Old == r.New {
			continue
		}
		t.Set(string(model.KeyFileName), i, r.Old)
		t.Set(string(model.KeyFileNameNew), i, r.New)
		res.Renamed++
	}

	res.Snapshot, err = o.saveSnapshot(ctx, model.SnapshotUndo, t)
	if err != nil {
		return res, err
	}
	o.log.Info("undid rename", "from", snap.Stamp, "renamed", res.Renamed, "failed", res.Failed)
	return res, nil
}

// Snapshot saves t under kind without renaming anything.
func (o *Organizer) Snapshot(ctx context.Context, kind string, t *model.Table) (*model.Snapshot, error) {
	if o.store == nil {
		return nil, errors.New("snapshot: no snapshot store")
	}
	return o.saveSnapshot(ctx, kind, t)
}

func (o *Organizer) saveSnapshot(ctx context.Context, kind string, t *model.Table) (*model.Snapshot, error) {
	// Saving must not be skipped once files were renamed.
	ctx = context.WithoutCancel(ctx)
	snap, err := o.store.Save(ctx, store.SaveParams{Root: o.root, Ext: o.cfg.FileExtension, Kind: kind, Table: t})
	if err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	if o.cfg.KeepSnapshots > 0 {
		n, err := o.store.Prune(ctx, store.PruneParams{Root: o.root, Keep: o.cfg.KeepSnapshots})
		if err != nil {
			o.log.Warn("prune snapshots failed", "err", err)
		} else if n > 0 {
			o.log.Debug("pruned snapshots", "count", n)
		}
	}
	return snap, nil
}
