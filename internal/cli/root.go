// Package cli implements the exifnaming CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rcliao/exifnaming/internal/config"
	"github.com/rcliao/exifnaming/internal/logging"
	"github.com/rcliao/exifnaming/internal/organizer"
	"github.com/rcliao/exifnaming/internal/prompt"
	"github.com/rcliao/exifnaming/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	rootDir    string
	configPath string
	extFlag    string
	modelFlag  string
	readerFlag string
	logLevel   string
	noSubdirs  bool
	assumeYes  bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "exifnaming",
	Short: "Rename and sort photos by their EXIF tags",
	Long: "Reads EXIF tags with exiftool, renames pictures to <prefix><YYMMDD>_<counter><group><modes><styles>.<ext>, " +
		"keeps snapshots to undo renames and sorts series, brackets, blurry and similar shots into folders.",
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVarP(&rootDir, "dir", "C", "", "Library root (default: current directory)")
	pf.StringVarP(&dbPath, "db", "d", "", "Snapshot database (default: $EXIFNAMING_DB or <dir>/.EXIFnaming/saves/snapshots.db)")
	pf.StringVar(&configPath, "config", "", "Config file (default: <dir>/.EXIFnaming/config.yaml)")
	pf.StringVarP(&extFlag, "ext", "e", "", "File extension to process, e.g. .JPG")
	pf.StringVarP(&modelFlag, "model", "m", "", "Camera model, or \"auto\"")
	pf.StringVar(&readerFlag, "reader", "", "Tag reader: exiftool or native")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&noSubdirs, "no-subdirs", false, "Only process the root directory")
	pf.BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation")
}

// getRoot returns the absolute library root, so snapshots of one library
// share a key whichever directory the command runs from.
func getRoot() string {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		exitErr("library root", err)
	}
	return root
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("EXIFNAMING_DB"); env != "" {
		return env
	}
	return filepath.Join(getRoot(), config.ProgramDir, "saves", "snapshots.db")
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// loadConfig applies the command-line flags over the config file.
func loadConfig() config.Config {
	path, required := configPath, true
	if path == "" {
		path, required = config.Path(getRoot()), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		exitErr("load config", err)
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		exitErr("config", err)
	}
	return cfg
}

func applyFlags(cfg *config.Config) {
	if extFlag != "" {
		cfg.FileExtension = extFlag
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if readerFlag != "" {
		cfg.Reader = readerFlag
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if noSubdirs {
		cfg.IncludeSubdirs = false
	}
}

func newLogger(cfg config.Config) (*slog.Logger, func() error) {
	log, closeLog, err := logging.New(logging.Options{
		Level:  logging.ParseLevel(cfg.LogLevel),
		JSON:   cfg.LogJSON,
		LogDir: filepath.Join(getRoot(), config.ProgramDir, "log"),
	})
	if err != nil {
		exitErr("open log", err)
	}
	return log, closeLog
}

// newOrganizer wires an Organizer for the library root. The returned func
// closes the store and the log file.
func newOrganizer(opts ...organizer.Option) (*organizer.Organizer, func()) {
	cfg := loadConfig()
	log, closeLog := newLogger(cfg)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}

	var confirm prompt.Confirmer = prompt.Survey{}
	if assumeYes {
		confirm = prompt.Auto(true)
	}
	opts = append([]organizer.Option{
		organizer.WithLogger(log),
		organizer.WithConfirmer(confirm),
		organizer.WithProgress(os.Stderr),
	}, opts...)

	o := organizer.New(getRoot(), cfg, s, opts...)
	return o, func() {
		s.Close()
		closeLog()
	}
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
