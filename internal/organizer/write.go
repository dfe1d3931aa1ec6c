package organizer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rcliao/exifnaming/internal/exiftool"
	"github.com/rcliao/exifnaming/internal/fileop"
)

// WriteResult summarizes a WriteTags run.
type WriteResult struct {
	Dirs    int `json:"dirs"`
	Written int `json:"written"`
	Failed  int `json:"failed"`
}

// WriteTags writes tags into every matching file below the root.
func (o *Organizer) WriteTags(ctx context.Context, tags []exiftool.Tag) (*WriteResult, error) {
	if o.writer == nil {
		return nil, errors.New("write tags: no tag writer")
	}
	if len(exiftool.Options(tags)) == 0 {
		return nil, errors.New("write tags: nothing to write")
	}
	dirs, err := o.dirs()
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", o.root, err)
	}

	res := &WriteResult{}
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		names, err := fileop.ListFiles(dir, o.cfg.FileExtension)
		if err != nil {
			o.log.Error("list files failed", "dir", dir, "err", err)
			continue
		}
		if len(names) == 0 {
			continue
		}
		files := make([]string, len(names))
		for i, name := range names {
			files[i] = filepath.Join(dir, name)
		}
		res.Dirs++
		failed := o.logErrs("write tags failed", o.writer.WriteTags(files, tags))
		res.Written += len(files) - failed
		res.Failed += failed
		o.log.Info(fmt.Sprintf("%d files tagged in %s", len(files)-failed, dir))
	}
	return res, nil
}
