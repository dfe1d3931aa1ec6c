// Package exiftool reads and writes tags through the exiftool command and
// offers a pure-Go fallback reader for standard EXIF.
package exiftool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rcliao/exifnaming/internal/fileop"
	"github.com/rcliao/exifnaming/internal/logging"
)

var (
	// ErrToolFailure marks a directory whose tags could not be read.
	ErrToolFailure = errors.New("exiftool failed")
	// ErrNoFiles is returned for directories without matching files.
	ErrNoFiles = errors.New("no matching files")
)

// DefaultTimeout bounds one exiftool invocation.
const DefaultTimeout = 5 * time.Minute

// Reader returns exiftool-style text for the files of one directory.
type Reader interface {
	Read(ctx context.Context, dir, ext string) (string, error)
}

// Output is what one exiftool run printed.
type Output struct {
	Stdout string
	Stderr string
	Files  int
}

// Tool runs the exiftool binary once per directory.
type Tool struct {
	Path    string
	Timeout time.Duration
	Log     logging.Reporter
}

// New returns a Tool. An empty path means "exiftool" on PATH and a zero
// timeout means DefaultTimeout.
func New(path string, timeout time.Duration, log logging.Reporter) *Tool {
	if path == "" {
		path = "exiftool"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Tool{Path: path, Timeout: timeout, Log: log}
}

// Run calls exiftool on dir, limited to files with extension ext, with opts
// appended after the charset options. Every stderr line is logged as a
// warning.
func (t *Tool) Run(ctx context.Context, dir, ext string, opts ...string) (Output, error) {
	names, err := fileop.ListFiles(dir, ext)
	if err != nil {
		return Output{}, &DirError{Dir: dir, Err: err}
	}
	if len(names) == 0 {
		return Output{}, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}

	// exiftool expands the directory itself, without descending into
	// subdirectories, so the command line stays short for large folders.
	args := make([]string, 0, len(opts)+7)
	args = append(args, dir)
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		args = append(args, "-ext", ext)
	}
	args = append(args, "-charset", "utf8", "-charset", "FileName=utf8")
	args = append(args, opts...)

	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second
	runErr := cmd.Run()

	out := Output{Stdout: stdout.String(), Stderr: stderr.String(), Files: len(names)}
	for _, line := range strings.Split(out.Stderr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			t.Log.Warn("exiftool", "dir", dir, "msg", line)
		}
	}
	if runErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			runErr = fmt.Errorf("timed out after %s: %w", t.Timeout, runErr)
		}
		return out, &DirError{Dir: dir, Err: runErr}
	}
	return out, nil
}

// Read implements Reader.
func (t *Tool) Read(ctx context.Context, dir, ext string) (string, error) {
	out, err := t.Run(ctx, dir, ext)
	if err != nil {
		return "", err
	}
	return out.Stdout, nil
}

// DirError is an ErrToolFailure for one directory.
type DirError struct {
	Dir string
	Err error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("%s in %s: %v", ErrToolFailure, e.Dir, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

func (e *DirError) Is(target error) bool { return target == ErrToolFailure }
