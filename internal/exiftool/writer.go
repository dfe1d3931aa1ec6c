package exiftool

import (
	"fmt"
	"path/filepath"

	"github.com/barasher/go-exiftool"
)

// Tag is one tag to write with its values. A tag with several values is
// written as a list.
type Tag struct {
	Key    string
	Values []string
}

// TagWriter writes the same tags to a set of files.
type TagWriter interface {
	WriteTags(files []string, tags []Tag) []error
}

// Writer writes tags through a long-running exiftool process.
type Writer struct {
	et *exiftool.Exiftool
}

// NewWriter starts exiftool. An empty path uses the binary on PATH.
func NewWriter(path string) (*Writer, error) {
	var opts []func(*exiftool.Exiftool) error
	if path != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(path))
	}
	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &Writer{et: et}, nil
}

// WriteTags writes tags into every file and returns one error per file.
func (w *Writer) WriteTags(files []string, tags []Tag) []error {
	fms := make([]exiftool.FileMetadata, len(files))
	for i, f := range files {
		fms[i] = Metadata(f, tags)
	}
	w.et.WriteMetadata(fms)

	errs := make([]error, len(files))
	for i := range fms {
		if fms[i].Err != nil {
			errs[i] = fmt.Errorf("write tags to %s: %w", filepath.Base(files[i]), fms[i].Err)
		}
	}
	return errs
}

// Close stops the exiftool process.
func (w *Writer) Close() error {
	return w.et.Close()
}

// Metadata builds the write request for one file. Empty values are
// dropped, repeated values are written once and tags left without values
// are skipped.
func Metadata(file string, tags []Tag) exiftool.FileMetadata {
	fm := exiftool.EmptyFileMetadata()
	fm.File = file
	for _, tag := range tags {
		values := uniqueValues(tag.Values)
		switch len(values) {
		case 0:
		case 1:
			fm.SetString(tag.Key, values[0])
		default:
			fm.SetStrings(tag.Key, values)
		}
	}
	return fm
}

// Options renders tags as exiftool command-line assignments, in the same
// order and with the same filtering as Metadata.
func Options(tags []Tag) []string {
	var opts []string
	for _, tag := range tags {
		for _, v := range uniqueValues(tag.Values) {
			opts = append(opts, fmt.Sprintf("-%s=%s", tag.Key, v))
		}
	}
	return opts
}

func uniqueValues(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
