package organizer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rcliao/exifnaming/internal/fileop"
	"github.com/rcliao/exifnaming/internal/imagesim"
)

// DetectBlurry moves pictures whose sharpness score is below the
// configured threshold into a "blurry" subfolder.
func (o *Organizer) DetectBlurry(ctx context.Context) (*MoveResult, error) {
	dirs, err := o.dirs(BlurryDir)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", o.root, err)
	}

	res := &MoveResult{}
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		names, err := fileop.ListFiles(dir, o.cfg.FileExtension)
		if err != nil {
			o.log.Error("list files failed", "dir", dir, "err", err)
			continue
		}
		res.Dirs++
		pb := o.newBar(len(names), filepath.Base(dir))
		for _, name := range names {
			_ = pb.Add(1)
			blurry, score, err := imagesim.IsBlurry(filepath.Join(dir, name), o.cfg.Blur.Threshold, o.cfg.Blur.MaxSide)
			if err != nil {
				o.log.Warn("blur check failed", "file", name, "err", err)
				continue
			}
			if !blurry {
				continue
			}
			o.log.Debug("blurry", "file", name, "score", score)
			if err := fileop.MoveToSubpath(name, dir, BlurryDir); err != nil {
				o.log.Warn("move failed", "error", err)
				res.Failed++
				continue
			}
			res.Moved++
		}
		_ = pb.Finish()
	}
	return res, nil
}

// DetectSimilar groups similar pictures into numbered subfolders "000",
// "001", ... of their directory. Each picture is compared with the ones
// after it in name order; the scan for one picture stops after the
// configured number of consecutive dissimilar ones.
func (o *Organizer) DetectSimilar(ctx context.Context) (*MoveResult, error) {
	dirs, err := o.dirs()
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", o.root, err)
	}

	res := &MoveResult{}
	for _, dir := range dirs {
		if similarDir.MatchString(filepath.Base(dir)) && dir != o.root {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		cmp, err := imagesim.NewComparer(o.cfg.Similar.Method, o.cfg.Similar.Threshold)
		if err != nil {
			return res, err
		}
		names, err := fileop.ListFiles(dir, o.cfg.FileExtension)
		if err != nil {
			o.log.Error("list files failed", "dir", dir, "err", err)
			continue
		}
		res.Dirs++
		o.groupSimilar(res, cmp, dir, names)
	}
	return res, nil
}

func (o *Organizer) groupSimilar(res *MoveResult, cmp *imagesim.Comparer, dir string, names []string) {
	moved := make(map[string]bool)
	counter := 0
	pb := o.newBar(len(names), filepath.Base(dir))
	defer func() { _ = pb.Finish() }()

	for i, a := range names {
		_ = pb.Add(1)
		if moved[a] {
			continue
		}
		for exists(filepath.Join(dir, fmt.Sprintf("%03d", counter))) {
			counter++
		}
		group := fmt.Sprintf("%03d", counter)

		var members []string
		notSimilar := 0
		for _, b := range names[i+1:] {
			if notSimilar == o.cfg.Similar.NotSimilarCutoff {
				break
			}
			if moved[b] {
				continue
			}
			ok, err := cmp.Similar(filepath.Join(dir, a), filepath.Join(dir, b))
			if err != nil {
				o.log.Warn("compare failed", "a", a, "b", b, "err", err)
				notSimilar++
				continue
			}
			if !ok {
				notSimilar++
				continue
			}
			notSimilar = 0
			members = append(members, b)
			moved[b] = true
		}
		if len(members) == 0 {
			continue
		}
		for _, name := range append(members, a) {
			if err := fileop.MoveToSubpath(name, dir, group); err != nil {
				o.log.Warn("move failed", "error", err)
				res.Failed++
				continue
			}
			cmp.Forget(filepath.Join(dir, name))
			res.Moved++
		}
		counter++
	}
}
