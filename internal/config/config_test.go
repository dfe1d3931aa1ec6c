package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.yaml")
	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FileExtension != ".JPG" || !cfg.IncludeSubdirs {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err := Load(path, true); err == nil {
		t.Error("expected error for a required missing file")
	}
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
include_subdirs: false
file_extension: .MP4
skip_dirs: [HDR, tags]
tool_timeout: 30s
similar:
  threshold: 0.8
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IncludeSubdirs {
		t.Error("expected include_subdirs false")
	}
	if cfg.FileExtension != ".MP4" {
		t.Errorf("expected .MP4, got %q", cfg.FileExtension)
	}
	if cfg.ToolTimeout != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.ToolTimeout)
	}
	if cfg.Similar.Threshold != 0.8 || cfg.Similar.NotSimilarCutoff != 10 {
		t.Errorf("expected threshold overlaid and cutoff kept, got %+v", cfg.Similar)
	}
	skip := cfg.SkipSet()
	if !skip["HDR"] || !skip["tags"] || len(skip) != 2 {
		t.Errorf("unexpected skip set %v", skip)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{"EXIFNAMING_MODEL": "generic", "EXIFNAMING_READER": "native"}
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.Model != "generic" || cfg.Reader != "native" {
		t.Errorf("expected env overrides, got model=%q reader=%q", cfg.Model, cfg.Reader)
	}
	if cfg.Exiftool != "" {
		t.Errorf("expected unset variable ignored, got %q", cfg.Exiftool)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"extension", func(c *Config) { c.FileExtension = "JPG" }, "file_extension"},
		{"reader", func(c *Config) { c.Reader = "magic" }, "reader"},
		{"similarity", func(c *Config) { c.Similar.Threshold = 1.5 }, "similar.threshold"},
		{"cutoff", func(c *Config) { c.Similar.NotSimilarCutoff = 0 }, "not_similar_cutoff"},
		{"method", func(c *Config) { c.Similar.Method = "ssim" }, "similar.method"},
		{"timeout", func(c *Config) { c.ToolTimeout = 0 }, "tool_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := Path(t.TempDir())
	cfg := Default()
	cfg.Prefix = "T"
	cfg.ToolTimeout = time.Minute
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Prefix != "T" || got.ToolTimeout != time.Minute {
		t.Errorf("expected saved values back, got prefix=%q timeout=%v", got.Prefix, got.ToolTimeout)
	}
}
