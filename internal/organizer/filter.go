package organizer

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/rcliao/exifnaming/internal/fileop"
)

// Folder names created by the sorting operations.
const (
	SingleDir  = "single"
	PrimaryDir = "primary"
	BlurryDir  = "blurry"
	TagsDir    = "tags"
)

var similarDir = regexp.MustCompile(`^[0-9]{3}$`)

func bracketDirs() []string {
	dirs := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		dirs = append(dirs, fmt.Sprintf("%s%d", fileop.SeriesBracket, i))
	}
	return dirs
}

func seriesTokens() []string {
	return []string{fileop.SeriesBurst, fileop.SeriesStopMotion, fileop.SeriesTimelapse}
}

// FilterSeries moves bracket shots into B1..B7, burst, stop-motion and
// timelapse series into S, SM and TL and every other matching file into
// "single", per directory.
func (o *Organizer) FilterSeries(ctx context.Context) (*MoveResult, error) {
	skip := append(bracketDirs(), seriesTokens()...)
	skip = append(skip, SingleDir, o.cfg.HDR.Folder, TagsDir)
	dirs, err := o.dirs(skip...)
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
		rest, errs := fileop.MoveBracketSeries(dir, names)
		names = res.track(o, len(names), rest, errs)
		for _, tok := range seriesTokens() {
			rest, errs := fileop.MoveSeries(dir, names, tok)
			names = res.track(o, len(names), rest, errs)
		}
		o.moveRest(res, dir, names, SingleDir)
	}
	return res, nil
}

// FilterPrimary collects the first shot of every bracket series together
// with the single shots in "primary" and moves the series into S, SM, TL
// and B. Files already sorted by FilterSeries are brought back first.
func (o *Organizer) FilterPrimary(ctx context.Context) (*MoveResult, error) {
	if _, err := o.FoldersToMain(ctx, FoldersOptions{Dirs: bracketDirs()}); err != nil {
		return nil, err
	}

	skip := append(seriesTokens(), fileop.SeriesBracket, SingleDir, PrimaryDir, o.cfg.HDR.Folder, TagsDir)
	dirs, err := o.dirs(skip...)
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
		for _, tok := range seriesTokens() {
			rest, errs := fileop.MoveSeries(dir, names, tok)
			names = res.track(o, len(names), rest, errs)
		}
		rest, errs := fileop.MoveMatching(dir, names, func(name string) (string, bool) {
			return PrimaryDir, fileop.IsPrimaryBracket(name)
		})
		names = res.track(o, len(names), rest, errs)
		rest, errs = fileop.MoveSeries(dir, names, fileop.SeriesBracket)
		names = res.track(o, len(names), rest, errs)
		o.moveRest(res, dir, names, PrimaryDir)
	}
	return res, nil
}

// moveRest moves the names matching the configured extension into dir/sub.
func (o *Organizer) moveRest(res *MoveResult, dir string, names []string, sub string) {
	rest, errs := fileop.MoveMatching(dir, names, func(name string) (string, bool) {
		return sub, fileop.MatchExt(name, o.cfg.FileExtension)
	})
	res.track(o, len(names), rest, errs)
}

// FoldersOptions selects the folders FoldersToMain empties.
type FoldersOptions struct {
	All     bool     `json:"all,omitempty"`
	Series  bool     `json:"series,omitempty"`
	Primary bool     `json:"primary,omitempty"`
	Blurry  bool     `json:"blurry,omitempty"`
	Similar bool     `json:"similar,omitempty"`
	Dirs    []string `json:"dirs,omitempty"`
}

func (f FoldersOptions) match(base string) bool {
	if f.All {
		return true
	}
	if f.Similar && similarDir.MatchString(base) {
		return true
	}
	names := append([]string(nil), f.Dirs...)
	if f.Series {
		names = append(names, bracketDirs()...)
		names = append(names, seriesTokens()...)
		names = append(names, SingleDir)
	}
	if f.Primary {
		names = append(names, seriesTokens()...)
		names = append(names, fileop.SeriesBracket, PrimaryDir)
	}
	if f.Blurry {
		names = append(names, BlurryDir)
	}
	for _, n := range names {
		if n == base {
			return true
		}
	}
	return false
}

// FoldersToMain reverses the sorting operations: the matching files of
// every selected folder below the root move up into its parent, and the
// folder is removed once empty. Deeper folders are handled first.
func (o *Organizer) FoldersToMain(ctx context.Context, opts FoldersOptions) (*MoveResult, error) {
	dirs, err := o.walk(true)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", o.root, err)
	}

	res := &MoveResult{}
	for i := len(dirs) - 1; i >= 0; i-- {
		dir := dirs[i]
		if dir == o.root || !opts.match(filepath.Base(dir)) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		names, err := fileop.ListFiles(dir, o.cfg.FileExtension)
		if err != nil {
			o.log.Error("list files failed", "dir", dir, "err", err)
			continue
		}
		res.Dirs++
		parent := filepath.Dir(dir)
		for _, name := range names {
			if err := fileop.Move(filepath.Join(dir, name), parent); err != nil {
				o.log.Warn("move failed", "error", err)
				res.Failed++
				continue
			}
			res.Moved++
		}
		if removed, err := fileop.RemoveIfEmpty(dir); err != nil {
			o.log.Warn("remove folder failed", "dir", dir, "err", err)
		} else if removed {
			o.log.Debug("removed empty folder", "dir", dir)
		}
	}
	return res, nil
}
