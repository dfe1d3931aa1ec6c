package organizer

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rcliao/exifnaming/internal/fileop"
)

var (
	// <base>_<n>B1<rest>_2<rest>..., as written by HDR merge software for
	// a bracket series named by Rename.
	hdrBracket = regexp.MustCompile(`^([-\w]+)_([0-9]+)B1(.*)$`)
	// <base><letters>_<n><rest>_<m><rest>...
	hdrNumbered = regexp.MustCompile(`^([-a-zA-Z0-9]+)[-a-zA-Z_]*_([0-9]+)(.*)$`)
	hdrRestChar = regexp.MustCompile(`^[-\w\s'&]*$`)
	hdrCounter  = regexp.MustCompile(`^_[0-9]+`)
)

// hdrParts splits an HDR output name into its base, shot number and the
// descriptive part that is repeated after the second shot number.
func hdrParts(name string) (base, num, rest string, ok bool) {
	if m := hdrBracket.FindStringSubmatch(name); m != nil {
		if rest, ok := repeatedRest(m[3], func(s string) (string, bool) {
			return strings.CutPrefix(s, "_2")
		}); ok {
			return m[1], m[2], rest, true
		}
	}
	if m := hdrNumbered.FindStringSubmatch(name); m != nil {
		if rest, ok := repeatedRest(m[3], func(s string) (string, bool) {
			loc := hdrCounter.FindStringIndex(s)
			if loc == nil {
				return "", false
			}
			return s[loc[1]:], true
		}); ok {
			return m[1], m[2], rest, true
		}
	}
	return "", "", "", false
}

// repeatedRest finds the longest prefix r of tail such that tail is
// r, then a separator accepted by sep, then r again.
func repeatedRest(tail string, sep func(string) (string, bool)) (string, bool) {
	for k := len(tail); k >= 0; k-- {
		r := tail[:k]
		if !hdrRestChar.MatchString(r) {
			continue
		}
		after, ok := sep(tail[k:])
		if ok && strings.HasPrefix(after, r) {
			return r, true
		}
	}
	return "", false
}

// HDRResult summarizes a RenameHDR run.
type HDRResult struct {
	Renamed   int `json:"renamed"`
	Unmatched int `json:"unmatched"`
	Failed    int `json:"failed"`
}

// RenameHDR renames the merged HDR pictures in the configured folder to
// <base>_<n>_<mode><rest><ext>. Files already carrying the mode are left
// alone; a taken name gets a counter after the mode.
func (o *Organizer) RenameHDR(ctx context.Context) (*HDRResult, error) {
	h := o.cfg.HDR
	dirs, err := o.dirs()
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", o.root, err)
	}

	res := &HDRResult{}
	for _, dir := range dirs {
		if h.Folder != "" && filepath.Base(dir) != h.Folder {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		names, err := fileop.ListFiles(dir, "")
		if err != nil {
			o.log.Error("list files failed", "dir", dir, "err", err)
			continue
		}
		for _, name := range names {
			if strings.Contains(name, h.Mode) {
				continue
			}
			base, num, rest, ok := hdrParts(name)
			if !ok {
				o.log.Debug("not an HDR output", "file", name)
				res.Unmatched++
				continue
			}
			newName := base + "_" + num + "_" + h.Mode + rest + h.Ext
			for i := 2; exists(filepath.Join(dir, newName)); i++ {
				newName = base + "_" + num + "_" + h.Mode + strconv.Itoa(i) + rest + h.Ext
			}
			if err := fileop.RenameInPlace(dir, name, newName); err != nil {
				o.log.Warn("rename failed", "file", name, "err", err)
				res.Failed++
				continue
			}
			res.Renamed++
		}
	}
	return res, nil
}

// RenameTempBack strips the "temp" suffix left on files by an interrupted
// rename, in every directory below the root.
func (o *Organizer) RenameTempBack(ctx context.Context) (*MoveResult, error) {
	dirs, err := o.dirs()
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", o.root, err)
	}

	res := &MoveResult{}
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		names, err := fileop.ListFiles(dir, "")
		if err != nil {
			o.log.Error("list files failed", "dir", dir, "err", err)
			continue
		}
		res.Dirs++
		for _, name := range names {
			orig, ok := fileop.StripTemp(name)
			if !ok {
				continue
			}
			if err := fileop.RenameInPlace(dir, name, orig); err != nil {
				o.log.Warn("rename failed", "file", name, "err", err)
				res.Failed++
				continue
			}
			res.Moved++
		}
	}
	return res, nil
}
