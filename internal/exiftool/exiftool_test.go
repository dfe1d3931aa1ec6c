package exiftool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/exifnaming/internal/logging"
	"github.com/rcliao/exifnaming/internal/tagtable"
)

type recorder struct {
	warns  []string
	errors []string
}

func (r *recorder) Warn(msg string, args ...any) {
	r.warns = append(r.warns, fmt.Sprint(append([]any{msg}, args...)...))
}

func (r *recorder) Error(msg string, args ...any) {
	r.errors = append(r.errors, fmt.Sprint(append([]any{msg}, args...)...))
}

// fakeTool writes a shell script standing in for exiftool.
func fakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a unix shell")
	}
	path := filepath.Join(t.TempDir(), "exiftool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func photoDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("not really a jpeg"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunPassesDirectoryAndLogsStderr(t *testing.T) {
	script := fakeTool(t, `for a in "$@"; do echo "Arg : $a"; done
echo "Warning: odd maker notes" >&2`)
	dir := photoDir(t, "b.JPG", "a.jpg", "c.png")
	rec := &recorder{}

	out, err := New(script, time.Minute, rec).Run(context.Background(), dir, ".jpg", "-a")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Files != 2 {
		t.Errorf("expected 2 files, got %d", out.Files)
	}
	want := []string{
		"Arg : " + dir,
		"Arg : -ext",
		"Arg : jpg",
		"Arg : -charset",
		"Arg : utf8",
		"Arg : -charset",
		"Arg : FileName=utf8",
		"Arg : -a",
	}
	if got := strings.TrimSpace(out.Stdout); got != strings.Join(want, "\n") {
		t.Errorf("unexpected arguments:\n%s", got)
	}
	if len(rec.warns) != 1 || !strings.Contains(rec.warns[0], "odd maker notes") {
		t.Errorf("expected stderr logged as warning, got %v", rec.warns)
	}
}

func TestRunArgumentsDoNotGrowWithFiles(t *testing.T) {
	script := fakeTool(t, `echo "$#"`)
	names := make([]string, 1000)
	for i := range names {
		names[i] = fmt.Sprintf("IMG_%04d_with_a_rather_long_descriptive_name.JPG", i)
	}
	dir := photoDir(t, names...)

	out, err := New(script, time.Minute, nil).Run(context.Background(), dir, ".JPG")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Files != len(names) {
		t.Errorf("expected %d files, got %d", len(names), out.Files)
	}
	if got := strings.TrimSpace(out.Stdout); got != "7" {
		t.Errorf("expected 7 arguments, got %s", got)
	}
}

func TestRunFailureIsPerDirectory(t *testing.T) {
	script := fakeTool(t, "exit 3")
	dir := photoDir(t, "a.jpg")

	_, err := New(script, time.Minute, nil).Run(context.Background(), dir, ".jpg")
	if !errors.Is(err, ErrToolFailure) {
		t.Fatalf("expected ErrToolFailure, got %v", err)
	}
	var de *DirError
	if !errors.As(err, &de) || de.Dir != dir {
		t.Errorf("expected DirError for %s, got %v", dir, err)
	}
}

func TestRunTimeout(t *testing.T) {
	script := fakeTool(t, "exec sleep 5")
	dir := photoDir(t, "a.jpg")

	start := time.Now()
	_, err := New(script, 100*time.Millisecond, nil).Run(context.Background(), dir, ".jpg")
	if !errors.Is(err, ErrToolFailure) {
		t.Fatalf("expected ErrToolFailure, got %v", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("expected the timeout to stop the tool")
	}
}

func TestRunNoFiles(t *testing.T) {
	dir := photoDir(t, "a.png")
	_, err := New("exiftool", 0, nil).Run(context.Background(), dir, ".jpg")
	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("expected ErrNoFiles, got %v", err)
	}
}

func TestNativeReaderEmitsEssentialTags(t *testing.T) {
	dir := photoDir(t, "a.jpg", "b.jpg")
	out, err := (&NativeReader{Log: logging.Discard()}).Read(context.Background(), dir, ".jpg")
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	recs := tagtable.Decode(out, nil, logging.Discard())
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	tb, _, err := tagtable.Build(recs, tagtable.BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := tb.Value("File Name", 1); got != "b.jpg" {
		t.Errorf("expected b.jpg, got %q", got)
	}
	if got := tb.Value("Directory", 0); got != dir {
		t.Errorf("expected %q, got %q", dir, got)
	}
	if len(tb.Value("File Modification Date/Time", 0)) < 19 {
		t.Errorf("expected modification date, got %q", tb.Value("File Modification Date/Time", 0))
	}
}

func TestMetadataDeduplicatesValues(t *testing.T) {
	fm := Metadata("/x/a.jpg", []Tag{
		{Key: "Keywords", Values: []string{"sea", "", "sun", "sea"}},
		{Key: "Title", Values: []string{"Beach"}},
		{Key: "Comment", Values: []string{""}},
	})
	if fm.File != "/x/a.jpg" {
		t.Errorf("expected file set, got %q", fm.File)
	}
	kw, ok := fm.Fields["Keywords"].([]string)
	if !ok || strings.Join(kw, ",") != "sea,sun" {
		t.Errorf("expected [sea sun], got %v", fm.Fields["Keywords"])
	}
	if title, _ := fm.GetString("Title"); title != "Beach" {
		t.Errorf("expected Beach, got %q", title)
	}
	if _, ok := fm.Fields["Comment"]; ok {
		t.Error("expected empty tag skipped")
	}
}

func TestOptions(t *testing.T) {
	got := Options([]Tag{
		{Key: "Keywords", Values: []string{"a", "b", "a"}},
		{Key: "Title", Values: nil},
		{Key: "Artist", Values: []string{"me"}},
	})
	want := "-Keywords=a -Keywords=b -Artist=me"
	if strings.Join(got, " ") != want {
		t.Errorf("expected %q, got %q", want, strings.Join(got, " "))
	}
}
