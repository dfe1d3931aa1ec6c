package organizer

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rcliao/exifnaming/internal/camera"
	"github.com/rcliao/exifnaming/internal/model"
	"github.com/rcliao/exifnaming/internal/store"
)

// InfoResult names the written info file.
type InfoResult struct {
	Path    string   `json:"path"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// ExportInfo reads the library and writes its tag table as CSV into the
// program's info folder. With groups, only the file columns and the tags
// of those camera groups are written.
func (o *Organizer) ExportInfo(ctx context.Context, groups []string) (*InfoResult, error) {
	read, err := o.Read(ctx)
	if err != nil {
		return nil, err
	}
	t := read.Table
	if len(groups) > 0 {
		keys, err := groupKeys(read.Model, groups)
		if err != nil {
			return nil, err
		}
		t = t.Subset(keys)
	}

	dir := o.programPath("info")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create info dir: %w", err)
	}
	ext := strings.TrimPrefix(o.cfg.FileExtension, ".")
	path := filepath.Join(dir, fmt.Sprintf("tags_%s_%s.csv", ext, time.Now().Format(store.StampLayout)))
	if err := writeCSV(path, t); err != nil {
		return nil, err
	}
	o.log.Info("wrote tag info", "path", path, "rows", t.Len())
	return &InfoResult{Path: path, Rows: t.Len(), Columns: t.Columns()}, nil
}

// groupKeys returns the file columns followed by the tags of the named groups.
func groupKeys(cam camera.Model, labels []string) ([]string, error) {
	keys := []string{string(model.KeyFileName), string(model.KeyDirectory)}
	for _, label := range labels {
		found := false
		for _, g := range cam.Groups() {
			if strings.EqualFold(g.Label, label) {
				keys = append(keys, g.Tags...)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%s has no tag group %q", cam.Name(), label)
		}
	}
	return keys, nil
}

func writeCSV(path string, t *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	cols := t.Columns()
	if err := w.Write(cols); err != nil {
		return err
	}
	record := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, key := range cols {
			record[j] = t.Value(key, i)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
