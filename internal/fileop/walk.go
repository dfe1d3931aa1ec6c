// Package fileop walks photo directories and renames or moves files within them.
package fileop

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"

	"github.com/rcliao/exifnaming/internal/logging"
)

// WalkOptions controls which directories Walk visits.
type WalkOptions struct {
	IncludeSubdirs bool
	// SkipDirs names directories whose whole subtree is skipped.
	SkipDirs map[string]bool
	// Log receives unreadable-directory errors. May be nil.
	Log logging.Reporter
}

// Walk calls fn for root and, with IncludeSubdirs, for every directory
// below it in lexical order. Hidden directories are never entered. An
// error from fn stops the walk and is returned.
func Walk(root string, opts WalkOptions, fn func(dir string) error) error {
	root = filepath.Clean(root)
	return godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if !de.IsDir() {
				return nil
			}
			if path != root {
				if !opts.IncludeSubdirs {
					return godirwalk.SkipThis
				}
				base := filepath.Base(path)
				if strings.HasPrefix(base, ".") || opts.SkipDirs[base] {
					return godirwalk.SkipThis
				}
			}
			return fn(path)
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			if opts.Log != nil {
				opts.Log.Error("walk failed", "path", path, "err", err)
			}
			return godirwalk.SkipNode
		},
	})
}

// ListFiles returns the sorted names of the regular files in dir whose
// extension matches ext. An empty ext matches every file.
func ListFiles(dir, ext string) ([]string, error) {
	dirents, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, de := range dirents {
		if de.IsRegular() && MatchExt(de.Name(), ext) {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// MatchExt reports whether name ends in ext, ignoring case.
func MatchExt(name, ext string) bool {
	if ext == "" {
		return true
	}
	return len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}
