// Package organizer runs the batch operations over a photo library: reading
// tags, renaming, undoing renames, writing tags and sorting files into
// folders.
package organizer

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	bar "github.com/schollz/progressbar/v3"

	"github.com/rcliao/exifnaming/internal/config"
	"github.com/rcliao/exifnaming/internal/exiftool"
	"github.com/rcliao/exifnaming/internal/fileop"
	"github.com/rcliao/exifnaming/internal/logging"
	"github.com/rcliao/exifnaming/internal/prompt"
	"github.com/rcliao/exifnaming/internal/store"
)

// Organizer operates on the library under one root directory.
type Organizer struct {
	root     string
	cfg      config.Config
	store    store.Store
	reader   exiftool.Reader
	writer   exiftool.TagWriter
	confirm  prompt.Confirmer
	log      *slog.Logger
	progress io.Writer
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithReader replaces the tag reader chosen from the configuration.
func WithReader(r exiftool.Reader) Option {
	return func(o *Organizer) { o.reader = r }
}

// WithWriter sets the tag writer used by WriteTags.
func WithWriter(w exiftool.TagWriter) Option {
	return func(o *Organizer) { o.writer = w }
}

// WithConfirmer sets who answers the gap confirmation. Default: prompt.Survey.
func WithConfirmer(c prompt.Confirmer) Option {
	return func(o *Organizer) { o.confirm = c }
}

// WithLogger sets the logger. Default: logging.Discard().
func WithLogger(l *slog.Logger) Option {
	return func(o *Organizer) { o.log = l }
}

// WithPrefix overrides the configured name prefix.
func WithPrefix(prefix string) Option {
	return func(o *Organizer) { o.cfg.Prefix = prefix }
}

// WithProgress sets where progress bars are drawn. Default: no bars.
func WithProgress(w io.Writer) Option {
	return func(o *Organizer) { o.progress = w }
}

// New returns an Organizer for root. st may be nil for operations that
// never touch snapshots.
func New(root string, cfg config.Config, st store.Store, opts ...Option) *Organizer {
	o := &Organizer{
		root:     filepath.Clean(root),
		cfg:      cfg,
		store:    st,
		confirm:  prompt.Survey{},
		log:      logging.Discard(),
		progress: io.Discard,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.reader == nil {
		o.reader = newReader(cfg, o.log)
	}
	return o
}

func newReader(cfg config.Config, log logging.Reporter) exiftool.Reader {
	if cfg.Reader == config.ReaderNative {
		return &exiftool.NativeReader{Log: log}
	}
	return exiftool.New(cfg.Exiftool, cfg.ToolTimeout, log)
}

// Root returns the library root.
func (o *Organizer) Root() string { return o.root }

// dirs lists the directories an operation visits, honoring IncludeSubdirs
// and the configured skip list plus extra.
func (o *Organizer) dirs(extra ...string) ([]string, error) {
	return o.walk(o.cfg.IncludeSubdirs, extra...)
}

func (o *Organizer) walk(subdirs bool, extra ...string) ([]string, error) {
	skip := o.cfg.SkipSet()
	skip[config.ProgramDir] = true
	for _, d := range extra {
		skip[d] = true
	}
	var dirs []string
	err := fileop.Walk(o.root, fileop.WalkOptions{
		IncludeSubdirs: subdirs,
		SkipDirs:       skip,
		Log:            o.log,
	}, func(dir string) error {
		dirs = append(dirs, dir)
		return nil
	})
	return dirs, err
}

func (o *Organizer) newBar(n int, desc string) *bar.ProgressBar {
	return bar.NewOptions(n,
		bar.OptionSetWriter(o.progress),
		bar.OptionSetDescription(desc),
		bar.OptionClearOnFinish(),
	)
}

// programPath returns a path below the root's program directory.
func (o *Organizer) programPath(parts ...string) string {
	return filepath.Join(append([]string{o.root, config.ProgramDir}, parts...)...)
}

// logErrs logs every non-nil error in errs and returns how many there were.
func (o *Organizer) logErrs(msg string, errs []error) int {
	n := 0
	for _, err := range errs {
		if err != nil {
			o.log.Warn(msg, "error", err)
			n++
		}
	}
	return n
}

// MoveResult summarizes a sorting operation.
type MoveResult struct {
	Dirs   int `json:"dirs"`
	Moved  int `json:"moved"`
	Failed int `json:"failed"`
}

// track records one fileop.Move* call that left rest of the before names in place.
func (r *MoveResult) track(o *Organizer, before int, rest []string, errs []error) []string {
	r.Moved += before - len(rest)
	r.Failed += o.logErrs("move failed", errs)
	return rest
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
