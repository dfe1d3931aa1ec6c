package fileop

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMoveConflict is returned when the destination of a rename or move
// already exists. The source is left untouched.
var ErrMoveConflict = errors.New("destination exists")

// TempSuffix is appended to names during the first phase of RenameBatch.
const TempSuffix = "temp"

// RenameInPlace renames dir/oldName to dir/newName.
func RenameInPlace(dir, oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	src := filepath.Join(dir, oldName)
	dst := filepath.Join(dir, newName)
	if err := checkFree(src, dst); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename %s: %w", src, err)
	}
	return nil
}

// Move moves the file at src into dstDir, creating dstDir as needed.
func Move(src, dstDir string) error {
	dst := filepath.Join(dstDir, filepath.Base(src))
	if err := checkFree(src, dst); err != nil {
		return err
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dstDir, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return nil
}

// MoveToSubpath moves dir/name into dir/sub.
func MoveToSubpath(name, dir, sub string) error {
	return Move(filepath.Join(dir, name), filepath.Join(dir, sub))
}

// RemoveIfEmpty deletes dir when it has no entries and reports whether it did.
func RemoveIfEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	if len(entries) > 0 {
		return false, nil
	}
	if err := os.Remove(dir); err != nil {
		return false, err
	}
	return true, nil
}

// checkFree fails with ErrMoveConflict when dst exists and is not src
// itself (a case-only rename on a case-insensitive filesystem).
func checkFree(src, dst string) error {
	dstInfo, err := os.Lstat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if srcInfo, err := os.Lstat(src); err == nil && os.SameFile(srcInfo, dstInfo) && src != dst {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMoveConflict, dst)
}

// Rename is one planned rename within Dir.
type Rename struct {
	Dir string
	Old string
	New string
}

// RenameBatch renames every entry in two phases, first to New+TempSuffix
// and then to New, so that names swapping places within one directory do
// not collide. The result holds one error per entry; a failed entry keeps
// its old name. progress, when non-nil, is called once per entry.
func RenameBatch(renames []Rename, progress func()) []error {
	errs := make([]error, len(renames))
	moved := make([]bool, len(renames))
	for i, r := range renames {
		if r.Old == r.New {
			continue
		}
		if err := RenameInPlace(r.Dir, r.Old, r.New+TempSuffix); err != nil {
			errs[i] = err
			continue
		}
		moved[i] = true
	}
	for i, r := range renames {
		if moved[i] {
			if err := RenameInPlace(r.Dir, r.New+TempSuffix, r.New); err != nil {
				errs[i] = err
				if rerr := RenameInPlace(r.Dir, r.New+TempSuffix, r.Old); rerr != nil {
					errs[i] = fmt.Errorf("%w (restore: %v)", err, rerr)
				}
			}
		}
		if progress != nil {
			progress()
		}
	}
	return errs
}

// StripTemp returns name without a trailing TempSuffix and whether one was present.
func StripTemp(name string) (string, bool) {
	if !strings.HasSuffix(name, TempSuffix) || name == TempSuffix {
		return name, false
	}
	return strings.TrimSuffix(name, TempSuffix), true
}
