package organizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rcliao/exifnaming/internal/camera"
	"github.com/rcliao/exifnaming/internal/exiftool"
	"github.com/rcliao/exifnaming/internal/model"
	"github.com/rcliao/exifnaming/internal/prompt"
	"github.com/rcliao/exifnaming/internal/tagtable"
)

// DirStats reports what one directory contributed to a batch.
type DirStats struct {
	Dir   string `json:"dir"`
	Rows  int    `json:"rows"`
	Error string `json:"error,omitempty"`
}

// ReadResult is a sorted tag table and how it was assembled.
type ReadResult struct {
	Table *model.Table       `json:"-"`
	Model camera.Model       `json:"-"`
	Gaps  tagtable.GapReport `json:"gaps,omitempty"`
	Dirs  []DirStats         `json:"dirs"`
	Rows  int                `json:"rows"`
}

// Read extracts the tags of every matching file below the root into one
// table sorted by capture time. A directory the reader fails on is logged
// and contributes no rows. Gaps in the merged table are logged and, with
// AskOnGap, confirmed before Read returns; a "no" yields prompt.ErrDeclined.
func (o *Organizer) Read(ctx context.Context) (*ReadResult, error) {
	// An explicit model fails before any file is read and normalizes while
	// decoding; "auto" is resolved from the built table.
	var norm tagtable.Normalizer
	var cam camera.Model
	if !strings.EqualFold(o.cfg.Model, camera.Auto) {
		var err error
		if cam, err = camera.Lookup(o.cfg.Model); err != nil {
			return nil, err
		}
		norm = cam
	}

	dirs, err := o.dirs()
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", o.root, err)
	}

	res := &ReadResult{}
	var records []*model.Record
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// The running directory is finished even if ctx is cancelled meanwhile.
		out, err := o.reader.Read(context.WithoutCancel(ctx), dir, o.cfg.FileExtension)
		if errors.Is(err, exiftool.ErrNoFiles) {
			o.log.Info("no matching files", "dir", dir, "ext", o.cfg.FileExtension)
			continue
		}
		if err != nil {
			o.log.Error("read tags failed", "dir", dir, "err", err)
			res.Dirs = append(res.Dirs, DirStats{Dir: dir, Error: err.Error()})
			continue
		}
		recs := tagtable.Decode(out, norm, o.log)
		o.log.Info(fmt.Sprintf("%d tags extracted in %s", len(recs), dir))
		res.Dirs = append(res.Dirs, DirStats{Dir: dir, Rows: len(recs)})
		records = append(records, recs...)
	}

	t, gaps, err := tagtable.Build(records, tagtable.BuildOptions{StrictEssential: o.cfg.StrictEssential})
	if err != nil {
		return nil, fmt.Errorf("build tag table: %w", err)
	}
	res.Gaps = gaps

	if cam == nil {
		if cam, err = camera.Detect(t); err != nil {
			return nil, err
		}
		tagtable.NormalizeTable(t, cam)
	}
	res.Model = cam

	if len(gaps) > 0 {
		for _, key := range gaps.Keys() {
			o.log.Warn("tag missing in some files", "tag", key, "files", gaps[key], "of", t.Len())
		}
		if essential := gaps.Essential(); len(essential) > 0 {
			o.log.Warn("essential tags missing, affected files are skipped", "tags", essential)
		}
		if o.cfg.AskOnGap {
			ok, err := o.confirm.Confirm(fmt.Sprintf("%d tags are missing in some files. Continue?", len(gaps)))
			if err != nil {
				return nil, fmt.Errorf("confirm: %w", err)
			}
			if !ok {
				return nil, prompt.ErrDeclined
			}
		}
	}

	res.Table = tagtable.Sort(t)
	res.Rows = res.Table.Len()
	return res, nil
}
