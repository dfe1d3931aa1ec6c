// Package config loads the organizer settings from defaults, an optional
// YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/exifnaming/internal/camera"
	"github.com/rcliao/exifnaming/internal/exiftool"
	"github.com/rcliao/exifnaming/internal/imagesim"
)

// ProgramDir is the per-library working directory, created under the root.
const ProgramDir = ".EXIFnaming"

// Tag readers.
const (
	ReaderExiftool = "exiftool"
	ReaderNative   = "native"
)

// Config holds every tunable of the organizer.
type Config struct {
	IncludeSubdirs  bool          `yaml:"include_subdirs"`
	AskOnGap        bool          `yaml:"ask_on_gap"`
	FileExtension   string        `yaml:"file_extension"`
	SkipDirs        []string      `yaml:"skip_dirs"`
	StrictEssential bool          `yaml:"strict_essential"`
	Model           string        `yaml:"model"`
	Prefix          string        `yaml:"prefix"`
	Reader          string        `yaml:"reader"`
	Exiftool        string        `yaml:"exiftool"`
	ToolTimeout     time.Duration `yaml:"tool_timeout"`
	KeepSnapshots   int           `yaml:"keep_snapshots"`
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
	Blur            Blur          `yaml:"blur"`
	Similar         Similar       `yaml:"similar"`
	HDR             HDR           `yaml:"hdr"`
}

// Blur configures blurry-picture detection.
type Blur struct {
	Threshold float64 `yaml:"threshold"`
	MaxSide   int     `yaml:"max_side"`
}

// Similar configures near-duplicate detection.
type Similar struct {
	Threshold        float64 `yaml:"threshold"`
	NotSimilarCutoff int     `yaml:"not_similar_cutoff"`
	Method           string  `yaml:"method"`
}

// HDR configures renaming of merged HDR output.
type HDR struct {
	Mode   string `yaml:"mode"`
	Ext    string `yaml:"ext"`
	Folder string `yaml:"folder"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		IncludeSubdirs: true,
		AskOnGap:       true,
		FileExtension:  ".JPG",
		Model:          camera.Auto,
		Reader:         ReaderExiftool,
		ToolTimeout:    exiftool.DefaultTimeout,
		LogLevel:       "info",
		Blur: Blur{
			Threshold: imagesim.DefaultBlurThreshold,
			MaxSide:   imagesim.DefaultBlurMaxSide,
		},
		Similar: Similar{
			Threshold:        imagesim.DefaultSimilarity,
			NotSimilarCutoff: imagesim.DefaultNotSimilarCutoff,
			Method:           imagesim.MethodCosine,
		},
		HDR: HDR{Mode: "HDRT", Ext: ".jpg", Folder: "HDR"},
	}
}

// Path returns the default config file location for root.
func Path(root string) string {
	return filepath.Join(root, ProgramDir, "config.yaml")
}

// Load reads the YAML file at path over the defaults and then applies the
// environment. A missing file is an error only when required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !required:
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

// ApplyEnv overrides settings from EXIFNAMING_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("EXIFNAMING_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("EXIFNAMING_EXIFTOOL"); v != "" {
		c.Exiftool = v
	}
	if v := getenv("EXIFNAMING_READER"); v != "" {
		c.Reader = v
	}
	if v := getenv("EXIFNAMING_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.FileExtension != "" && !strings.HasPrefix(c.FileExtension, "."):
		return fmt.Errorf("file_extension %q must start with a dot", c.FileExtension)
	case c.Reader != ReaderExiftool && c.Reader != ReaderNative:
		return fmt.Errorf("reader %q must be %q or %q", c.Reader, ReaderExiftool, ReaderNative)
	case c.ToolTimeout <= 0:
		return fmt.Errorf("tool_timeout must be positive")
	case c.KeepSnapshots < 0:
		return fmt.Errorf("keep_snapshots must not be negative")
	case c.Blur.Threshold < 0:
		return fmt.Errorf("blur.threshold must not be negative")
	case c.Similar.Threshold < -1 || c.Similar.Threshold > 1:
		return fmt.Errorf("similar.threshold %v outside [-1, 1]", c.Similar.Threshold)
	case c.Similar.NotSimilarCutoff < 1:
		return fmt.Errorf("similar.not_similar_cutoff must be at least 1")
	case c.Similar.Method != imagesim.MethodCosine && c.Similar.Method != imagesim.MethodPHash:
		return fmt.Errorf("similar.method %q must be %q or %q", c.Similar.Method, imagesim.MethodCosine, imagesim.MethodPHash)
	case c.HDR.Mode == "":
		return fmt.Errorf("hdr.mode must not be empty")
	}
	return nil
}

// SkipSet returns SkipDirs as a set.
func (c Config) SkipSet() map[string]bool {
	set := make(map[string]bool, len(c.SkipDirs))
	for _, d := range c.SkipDirs {
		set[d] = true
	}
	return set
}

// Save writes c as YAML to path.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
