package organizer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/rcliao/exifnaming/internal/camera"
	"github.com/rcliao/exifnaming/internal/config"
	"github.com/rcliao/exifnaming/internal/exiftool"
	"github.com/rcliao/exifnaming/internal/fileop"
	"github.com/rcliao/exifnaming/internal/model"
	"github.com/rcliao/exifnaming/internal/prompt"
	"github.com/rcliao/exifnaming/internal/store"
	"github.com/rcliao/exifnaming/internal/tagtable"
)

// fakeReader renders exiftool-style output for the files of a directory.
// Each file's content is an id selecting its extra tags, so tags follow a
// file across renames.
type fakeReader struct {
	tags  map[string][]string
	fail  map[string]bool
	calls []string
}

func (f *fakeReader) Read(_ context.Context, dir, ext string) (string, error) {
	f.calls = append(f.calls, dir)
	if f.fail[filepath.Base(dir)] {
		return "", &exiftool.DirError{Dir: dir, Err: errors.New("exit status 1")}
	}
	names, err := fileop.ListFiles(dir, ext)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", exiftool.ErrNoFiles
	}
	var b strings.Builder
	for _, name := range names {
		id, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s %s\n", tagtable.BlockDelimiter, filepath.ToSlash(filepath.Join(dir, name)))
		kv := f.tags[string(id)]
		for i := 0; i+1 < len(kv); i += 2 {
			fmt.Fprintf(&b, "%s: %s\n", kv[i], kv[i+1])
		}
		fmt.Fprintf(&b, "File Name: %s\n", name)
		fmt.Fprintf(&b, "Directory: %s\n", filepath.ToSlash(dir))
		fmt.Fprintf(&b, "File Modification Date/Time: 2017:08:26 10:00:00+02:00\n")
	}
	return b.String(), nil
}

type fakeWriter struct {
	files []string
	tags  []exiftool.Tag
	fail  string
}

func (w *fakeWriter) WriteTags(files []string, tags []exiftool.Tag) []error {
	errs := make([]error, len(files))
	for i, f := range files {
		if filepath.Base(f) == w.fail {
			errs[i] = errors.New("file locked")
			continue
		}
		w.files = append(w.files, f)
	}
	w.tags = tags
	return errs
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Model = "generic"
	cfg.AskOnGap = false
	return cfg
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestOrganizer(t *testing.T, root string, cfg config.Config, r exiftool.Reader, opts ...Option) *Organizer {
	t.Helper()
	opts = append([]Option{WithReader(r), WithConfirmer(prompt.Auto(true))}, opts...)
	return New(root, cfg, newTestStore(t), opts...)
}

// touch creates dir/name holding id.
func touch(t *testing.T, dir, name, id string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(id), 0o644); err != nil {
		t.Fatal(err)
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() {
			names = append(names, e.Name()+"/")
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func assertNames(t *testing.T, dir string, want ...string) {
	t.Helper()
	got := listDir(t, dir)
	sort.Strings(want)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("%s: expected %v, got %v", filepath.Base(dir), want, got)
	}
}

// bracketDay is one plain shot followed by a two-shot bracket series.
func bracketDay(t *testing.T, dir string) *fakeReader {
	touch(t, dir, "P1.JPG", "plain")
	touch(t, dir, "P2.JPG", "b1")
	touch(t, dir, "P3.JPG", "b2")
	return &fakeReader{tags: map[string][]string{
		"plain": {"Date/Time Original", "2017:08:25 14:03:05"},
		"b1":    {"Date/Time Original", "2017:08:25 14:03:06", "Exposure Mode", "Auto bracket", "Sequence Number", "1"},
		"b2":    {"Date/Time Original", "2017:08:25 14:03:07", "Exposure Mode", "Auto bracket", "Sequence Number", "2"},
	}}
}

func TestReadOrdersByModificationDate(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.JPG", "a")
	touch(t, root, "b.JPG", "b")
	r := &fakeReader{tags: map[string][]string{
		"a": {"File Modification Date/Time", "2017:08:25 10:00:00+02:00"},
		"b": {"File Modification Date/Time", "2017:08:25 09:00:00+02:00"},
	}}
	o := newTestOrganizer(t, root, testConfig(), r)

	res, err := o.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := res.Table.Column(string(model.KeyFileName))
	if strings.Join(got, ",") != "b.JPG,a.JPG" {
		t.Errorf("expected [b.JPG a.JPG], got %v", got)
	}
	if res.Model.Name() != "GENERIC" {
		t.Errorf("expected GENERIC, got %s", res.Model.Name())
	}
}

func TestReadSkipsFailedDirectory(t *testing.T) {
	root := t.TempDir()
	r := bracketDay(t, filepath.Join(root, "good"))
	touch(t, filepath.Join(root, "bad"), "X.JPG", "plain")
	touch(t, filepath.Join(root, "empty"), "notes.txt", "")
	r.fail = map[string]bool{"bad": true}
	o := newTestOrganizer(t, root, testConfig(), r)

	res, err := o.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.Rows != 3 {
		t.Errorf("expected 3 rows, got %d", res.Rows)
	}
	stats := map[string]DirStats{}
	for _, d := range res.Dirs {
		stats[filepath.Base(d.Dir)] = d
	}
	if d := stats["bad"]; d.Rows != 0 || d.Error == "" {
		t.Errorf("expected failed dir with 0 rows, got %+v", d)
	}
	if d := stats["good"]; d.Rows != 3 {
		t.Errorf("expected 3 rows from good, got %+v", d)
	}
	if _, ok := stats["empty"]; ok {
		t.Error("expected dir without matching files to be skipped")
	}
	if res.Gaps["Exposure Mode"] != 1 {
		t.Errorf("expected gap for Exposure Mode, got %v", res.Gaps)
	}
}

func TestReadDeclinedOnGap(t *testing.T) {
	root := t.TempDir()
	r := bracketDay(t, root)
	cfg := testConfig()
	cfg.AskOnGap = true
	o := newTestOrganizer(t, root, cfg, r, WithConfirmer(prompt.Auto(false)))

	_, err := o.Read(context.Background())
	if !errors.Is(err, prompt.ErrDeclined) {
		t.Errorf("expected ErrDeclined, got %v", err)
	}
}

func TestReadUnsupportedModelBeforeReading(t *testing.T) {
	root := t.TempDir()
	r := bracketDay(t, root)
	cfg := testConfig()
	cfg.Model = "EOS-1"
	o := newTestOrganizer(t, root, cfg, r)

	_, err := o.Rename(context.Background(), RenameOptions{})
	if !errors.Is(err, camera.ErrUnsupportedModel) {
		t.Errorf("expected ErrUnsupportedModel, got %v", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("expected no reads, got %v", r.calls)
	}
	assertNames(t, root, "P1.JPG", "P2.JPG", "P3.JPG")
}

func TestReadAutoDetectsModel(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.JPG", "a")
	r := &fakeReader{tags: map[string][]string{"a": {"Camera Model Name", "DMC-TZ101", "AF Area Mode", "Unknown (0 49)"}}}
	cfg := testConfig()
	cfg.Model = camera.Auto
	o := newTestOrganizer(t, root, cfg, r)

	res, err := o.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.Model.Name() != "DMC-TZ101" {
		t.Errorf("expected DMC-TZ101, got %s", res.Model.Name())
	}
	if v := res.Table.Value("AF Area Mode", 0); v != "49-area" {
		t.Errorf("expected normalized 49-area, got %q", v)
	}
}

func TestReadCancelled(t *testing.T) {
	root := t.TempDir()
	r := bracketDay(t, root)
	o := newTestOrganizer(t, root, testConfig(), r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := o.Read(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("expected no reads, got %v", r.calls)
	}
}

func TestRenameAndUndo(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "day1")
	r := bracketDay(t, dir)
	o := newTestOrganizer(t, root, testConfig(), r)
	ctx := context.Background()

	res, err := o.Rename(ctx, RenameOptions{})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if res.Renamed != 3 || res.Failed != 0 || res.Skipped != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	assertNames(t, dir, "170825_001.JPG", "170825_002B1.JPG", "170825_002B2.JPG")
	if res.Snapshot == nil || res.Snapshot.Kind != model.SnapshotRename || res.Snapshot.Rows != 3 {
		t.Fatalf("unexpected snapshot %+v", res.Snapshot)
	}

	undo, err := o.Undo(ctx, "")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undo.Renamed != 3 {
		t.Errorf("expected 3 files renamed back, got %+v", undo)
	}
	assertNames(t, dir, "P1.JPG", "P2.JPG", "P3.JPG")

	// The undo snapshot is now the latest; undoing it redoes the rename.
	if _, err := o.Undo(ctx, ""); err != nil {
		t.Fatalf("redo: %v", err)
	}
	assertNames(t, dir, "170825_001.JPG", "170825_002B1.JPG", "170825_002B2.JPG")

	// The first rename is still addressable by its id.
	if _, err := o.Undo(ctx, res.Snapshot.ID); err != nil {
		t.Fatalf("undo by id: %v", err)
	}
	assertNames(t, dir, "P1.JPG", "P2.JPG", "P3.JPG")
}

func TestUndoSkipsReadSnapshots(t *testing.T) {
	root := t.TempDir()
	r := bracketDay(t, root)
	o := newTestOrganizer(t, root, testConfig(), r)
	ctx := context.Background()

	if _, err := o.Rename(ctx, RenameOptions{}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	read, err := o.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := o.Snapshot(ctx, model.SnapshotRead, read.Table); err != nil {
		t.Fatalf("save read snapshot: %v", err)
	}

	undo, err := o.Undo(ctx, "")
	if err != nil {
		t.Fatalf("undo after saved read: %v", err)
	}
	if undo.Renamed != 3 {
		t.Errorf("expected 3 files renamed back, got %+v", undo)
	}
	assertNames(t, root, "P1.JPG", "P2.JPG", "P3.JPG")
}

func TestRenameIsIdempotent(t *testing.T) {
	root := t.TempDir()
	r := bracketDay(t, root)
	o := newTestOrganizer(t, root, testConfig(), r)
	ctx := context.Background()

	if _, err := o.Rename(ctx, RenameOptions{}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	res, err := o.Rename(ctx, RenameOptions{})
	if err != nil {
		t.Fatalf("second rename: %v", err)
	}
	if res.Renamed != 0 {
		t.Errorf("expected nothing renamed, got %d", res.Renamed)
	}
	assertNames(t, root, "170825_001.JPG", "170825_002B1.JPG", "170825_002B2.JPG")
}

func TestRenameDryRun(t *testing.T) {
	root := t.TempDir()
	r := bracketDay(t, root)
	o := newTestOrganizer(t, root, testConfig(), r)

	res, err := o.Rename(context.Background(), RenameOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if len(res.Plan) != 3 || res.Plan[0].New != "170825_001.JPG" {
		t.Errorf("unexpected plan %+v", res.Plan)
	}
	if res.Snapshot != nil {
		t.Error("expected no snapshot on dry run")
	}
	assertNames(t, root, "P1.JPG", "P2.JPG", "P3.JPG")
}

func TestRenameKeepsFileOnConflict(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "P1.JPG", "plain")
	r := &fakeReader{tags: map[string][]string{"plain": {"Date/Time Original", "2017:08:25 14:03:05"}}}
	// A directory squatting on the target name makes the rename fail.
	if err := os.Mkdir(filepath.Join(root, "170825_001.JPG"), 0o755); err != nil {
		t.Fatal(err)
	}
	o := newTestOrganizer(t, root, testConfig(), r)

	res, err := o.Rename(context.Background(), RenameOptions{})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if res.Failed != 1 || res.Renamed != 0 {
		t.Errorf("expected one failure, got %+v", res)
	}
	if _, err := os.Stat(filepath.Join(root, "P1.JPG")); err != nil {
		t.Errorf("expected P1.JPG untouched: %v", err)
	}
	if got := res.Snapshot.Table.Value(string(model.KeyFileNameNew), 0); got != "P1.JPG" {
		t.Errorf("expected snapshot to record the kept name, got %q", got)
	}
}

func TestUndoWithoutSnapshot(t *testing.T) {
	o := newTestOrganizer(t, t.TempDir(), testConfig(), &fakeReader{})
	if _, err := o.Undo(context.Background(), ""); !errors.Is(err, store.ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestWriteTags(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.JPG", "")
	touch(t, root, "b.JPG", "")
	touch(t, filepath.Join(root, "sub"), "c.JPG", "")
	touch(t, root, "notes.txt", "")
	w := &fakeWriter{fail: "b.JPG"}
	o := newTestOrganizer(t, root, testConfig(), &fakeReader{}, WithWriter(w))

	tags := []exiftool.Tag{{Key: "Keywords", Values: []string{"Paris", "Paris", ""}}}
	res, err := o.WriteTags(context.Background(), tags)
	if err != nil {
		t.Fatalf("write tags: %v", err)
	}
	if res.Written != 2 || res.Failed != 1 || res.Dirs != 2 {
		t.Errorf("unexpected result %+v", res)
	}
	if len(w.files) != 2 {
		t.Errorf("expected 2 files written, got %v", w.files)
	}

	if _, err := o.WriteTags(context.Background(), []exiftool.Tag{{Key: "Keywords"}}); err == nil {
		t.Error("expected error for empty tag list")
	}
}

func seriesLibrary(t *testing.T, root string) {
	for _, name := range []string{"170825_001.JPG", "170825_002B1.JPG", "170825_002B2.JPG", "170825_003S1.JPG", "170825_003S2.JPG", "notes.txt"} {
		touch(t, root, name, "")
	}
}

func TestFilterSeriesAndBack(t *testing.T) {
	root := t.TempDir()
	seriesLibrary(t, root)
	o := newTestOrganizer(t, root, testConfig(), &fakeReader{})
	ctx := context.Background()

	res, err := o.FilterSeries(ctx)
	if err != nil {
		t.Fatalf("filter series: %v", err)
	}
	if res.Moved != 5 || res.Failed != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	assertNames(t, root, "B1/", "B2/", "S/", "single/", "notes.txt")
	assertNames(t, filepath.Join(root, "B2"), "170825_002B2.JPG")
	assertNames(t, filepath.Join(root, "S"), "170825_003S1.JPG", "170825_003S2.JPG")
	assertNames(t, filepath.Join(root, "single"), "170825_001.JPG")

	// Sorted folders are not filtered again.
	res, err = o.FilterSeries(ctx)
	if err != nil {
		t.Fatalf("second filter: %v", err)
	}
	if res.Moved != 0 {
		t.Errorf("expected nothing moved, got %d", res.Moved)
	}

	back, err := o.FoldersToMain(ctx, FoldersOptions{Series: true})
	if err != nil {
		t.Fatalf("folders to main: %v", err)
	}
	if back.Moved != 5 {
		t.Errorf("expected 5 files moved back, got %+v", back)
	}
	assertNames(t, root, "170825_001.JPG", "170825_002B1.JPG", "170825_002B2.JPG", "170825_003S1.JPG", "170825_003S2.JPG", "notes.txt")
}

func TestFilterPrimary(t *testing.T) {
	root := t.TempDir()
	seriesLibrary(t, root)
	o := newTestOrganizer(t, root, testConfig(), &fakeReader{})
	ctx := context.Background()

	if _, err := o.FilterSeries(ctx); err != nil {
		t.Fatalf("filter series: %v", err)
	}
	if _, err := o.FilterPrimary(ctx); err != nil {
		t.Fatalf("filter primary: %v", err)
	}
	assertNames(t, root, "B/", "S/", "primary/", "single/", "notes.txt")
	assertNames(t, filepath.Join(root, "primary"), "170825_002B1.JPG")
	assertNames(t, filepath.Join(root, "B"), "170825_002B2.JPG")

	if _, err := o.FoldersToMain(ctx, FoldersOptions{All: true}); err != nil {
		t.Fatalf("folders to main: %v", err)
	}
	if _, err := o.FilterPrimary(ctx); err != nil {
		t.Fatalf("filter primary: %v", err)
	}
	assertNames(t, filepath.Join(root, "primary"), "170825_001.JPG", "170825_002B1.JPG")
	assertNames(t, filepath.Join(root, "S"), "170825_003S1.JPG", "170825_003S2.JPG")
}

func TestRenameHDR(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "HDR")
	touch(t, dir, "170825_002B1_2.tif", "")
	touch(t, dir, "170825_002_HDRT.jpg", "")
	touch(t, dir, "Paris_170825_004B1_Eiffel_2_Eiffel.tif", "")
	touch(t, dir, "Paris_3_Louvre_4_Louvre.tif", "")
	touch(t, dir, "random.tif", "")
	touch(t, root, "170825_009B1_2.tif", "")
	o := newTestOrganizer(t, root, testConfig(), &fakeReader{})

	res, err := o.RenameHDR(context.Background())
	if err != nil {
		t.Fatalf("rename hdr: %v", err)
	}
	if res.Renamed != 3 || res.Unmatched != 1 {
		t.Errorf("unexpected result %+v", res)
	}
	assertNames(t, dir,
		"170825_002_HDRT.jpg",
		"170825_002_HDRT2.jpg",
		"Paris_170825_004_HDRT_Eiffel.jpg",
		"Paris_3_HDRT_Louvre.jpg",
		"random.tif",
	)
	assertNames(t, root, "HDR/", "170825_009B1_2.tif")
}

func TestHDRParts(t *testing.T) {
	tests := []struct {
		name string
		base string
		num  string
		rest string
		ok   bool
	}{
		{"170825_002B1_2.tif", "170825", "002", "", true},
		{"T170825_012B1_TOY_2_TOY.tif", "T170825", "012", "_TOY", true},
		{"Paris_3_Louvre_4_Louvre.tif", "Paris", "3", "_Louvre", true},
		{"170825_002B2.JPG", "", "", "", false},
		{"random.tif", "", "", "", false},
	}
	for _, tt := range tests {
		base, num, rest, ok := hdrParts(tt.name)
		if ok != tt.ok || base != tt.base || num != tt.num || rest != tt.rest {
			t.Errorf("%s: expected (%q, %q, %q, %v), got (%q, %q, %q, %v)",
				tt.name, tt.base, tt.num, tt.rest, tt.ok, base, num, rest, ok)
		}
	}
}

func TestRenameTempBack(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "170825_001.JPGtemp", "")
	touch(t, filepath.Join(root, "sub"), "P2.JPGtemp", "")
	touch(t, root, "temp", "")
	o := newTestOrganizer(t, root, testConfig(), &fakeReader{})

	res, err := o.RenameTempBack(context.Background())
	if err != nil {
		t.Fatalf("rename temp back: %v", err)
	}
	if res.Moved != 2 {
		t.Errorf("expected 2 renamed, got %+v", res)
	}
	assertNames(t, root, "170825_001.JPG", "sub/", "temp")
	assertNames(t, filepath.Join(root, "sub"), "P2.JPG")
}

func gray(w, h int, at func(x, y int) uint8) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: at(x, y)})
		}
	}
	return img
}

func saveImage(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

func TestDetectBlurry(t *testing.T) {
	root := t.TempDir()
	saveImage(t, filepath.Join(root, "flat.JPG"), gray(64, 64, func(int, int) uint8 { return 128 }))
	saveImage(t, filepath.Join(root, "sharp.JPG"), gray(64, 64, func(x, y int) uint8 {
		if (x/8+y/8)%2 == 0 {
			return 0
		}
		return 255
	}))
	o := newTestOrganizer(t, root, testConfig(), &fakeReader{})

	res, err := o.DetectBlurry(context.Background())
	if err != nil {
		t.Fatalf("detect blurry: %v", err)
	}
	if res.Moved != 1 {
		t.Errorf("expected one blurry file, got %+v", res)
	}
	assertNames(t, root, "blurry/", "sharp.JPG")
	assertNames(t, filepath.Join(root, BlurryDir), "flat.JPG")
}

func TestDetectSimilar(t *testing.T) {
	root := t.TempDir()
	ramp := func(x, _ int) uint8 { return uint8(x * 4) }
	saveImage(t, filepath.Join(root, "a.JPG"), gray(64, 64, ramp))
	saveImage(t, filepath.Join(root, "b.JPG"), gray(64, 64, ramp))
	saveImage(t, filepath.Join(root, "c.JPG"), gray(64, 64, func(x, y int) uint8 { return 255 - ramp(x, y) }))
	o := newTestOrganizer(t, root, testConfig(), &fakeReader{})

	res, err := o.DetectSimilar(context.Background())
	if err != nil {
		t.Fatalf("detect similar: %v", err)
	}
	if res.Moved != 2 {
		t.Errorf("expected 2 files grouped, got %+v", res)
	}
	assertNames(t, root, "000/", "c.JPG")
	assertNames(t, filepath.Join(root, "000"), "a.JPG", "b.JPG")

	if _, err := o.FoldersToMain(context.Background(), FoldersOptions{Similar: true}); err != nil {
		t.Fatalf("folders to main: %v", err)
	}
	assertNames(t, root, "a.JPG", "b.JPG", "c.JPG")
}

func TestExportInfo(t *testing.T) {
	root := t.TempDir()
	r := bracketDay(t, root)
	o := newTestOrganizer(t, root, testConfig(), r)

	res, err := o.ExportInfo(context.Background(), []string{"time"})
	if err != nil {
		t.Fatalf("export info: %v", err)
	}
	if res.Rows != 3 {
		t.Errorf("expected 3 rows, got %d", res.Rows)
	}
	f, err := os.Open(res.Path)
	if err != nil {
		t.Fatalf("open info: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if got := strings.Join(records[0], ","); got != "File Name,Directory,Date/Time Original" {
		t.Errorf("unexpected header %q", got)
	}
	if records[1][0] != "P1.JPG" {
		t.Errorf("expected first row P1.JPG, got %v", records[1])
	}
	if !strings.HasPrefix(res.Path, filepath.Join(root, config.ProgramDir, "info")) {
		t.Errorf("unexpected path %s", res.Path)
	}

	if _, err := o.ExportInfo(context.Background(), []string{"AF"}); err == nil {
		t.Error("expected error for unknown group")
	}
}
