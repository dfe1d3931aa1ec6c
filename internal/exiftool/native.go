package exiftool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/rcliao/exifnaming/internal/fileop"
	"github.com/rcliao/exifnaming/internal/logging"
	"github.com/rcliao/exifnaming/internal/model"
	"github.com/rcliao/exifnaming/internal/tagtable"
)

// NativeReader decodes standard EXIF in-process, for machines without
// exiftool. Maker notes are not read, so only the generic camera model
// classifies its output meaningfully.
type NativeReader struct {
	Log logging.Reporter
}

type nativeField struct {
	name   exif.FieldName
	label  string
	values map[int]string
}

// Fields printed by NativeReader, under exiftool's labels.
var nativeFields = []nativeField{
	{name: exif.Make, label: "Make"},
	{name: exif.Model, label: string(model.KeyCameraModel)},
	{name: exif.DateTimeOriginal, label: string(model.KeyDateTimeOriginal)},
	{name: exif.SubSecTimeOriginal, label: string(model.KeySubSecTimeOriginal)},
	{name: exif.ExposureMode, label: "Exposure Mode", values: map[int]string{0: "Auto", 1: "Manual", 2: "Auto bracket"}},
	{name: exif.SceneCaptureType, label: "Scene Capture Type", values: map[int]string{0: "Standard", 1: "Landscape", 2: "Portrait", 3: "Night"}},
	{name: exif.ISOSpeedRatings, label: "ISO"},
	{name: exif.FocalLength, label: "Focal Length"},
	{name: exif.ExposureTime, label: "Exposure Time"},
	{name: exif.FNumber, label: "F Number"},
}

// Read implements Reader. The output has one "========" block per file.
func (r *NativeReader) Read(ctx context.Context, dir, ext string) (string, error) {
	names, err := fileop.ListFiles(dir, ext)
	if err != nil {
		return "", &DirError{Dir: dir, Err: err}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}

	var b strings.Builder
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		path := filepath.Join(dir, name)
		block, err := nativeBlock(path)
		if err != nil {
			if r.Log != nil {
				r.Log.Warn("read exif", "file", path, "err", err)
			}
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", tagtable.BlockDelimiter, filepath.ToSlash(path))
		b.WriteString(block)
	}
	return b.String(), nil
}

func nativeBlock(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	line := func(k, v string) { fmt.Fprintf(&b, "%-32s: %s\n", k, v) }
	line(string(model.KeyFileName), filepath.Base(path))
	line(string(model.KeyDirectory), filepath.ToSlash(filepath.Dir(path)))
	line(string(model.KeyModifyDate), info.ModTime().Format("2006:01:02 15:04:05-07:00"))

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// Files without EXIF still carry the essential file tags.
		return b.String(), nil
	}
	for _, fld := range nativeFields {
		if v, ok := fieldValue(x, fld); ok {
			line(fld.label, v)
		}
	}
	return b.String(), nil
}

func fieldValue(x *exif.Exif, fld nativeField) (string, bool) {
	tag, err := x.Get(fld.name)
	if err != nil {
		return "", false
	}
	if fld.values != nil {
		n, err := tag.Int(0)
		if err != nil {
			return "", false
		}
		v, ok := fld.values[n]
		if !ok {
			v = fmt.Sprintf("Unknown (%d)", n)
		}
		return v, true
	}
	if s, err := tag.StringVal(); err == nil {
		return strings.TrimRight(strings.TrimSpace(s), "\x00"), true
	}
	return strings.Trim(tag.String(), `"`), true
}
