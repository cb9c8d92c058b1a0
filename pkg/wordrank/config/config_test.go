package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/wordrank/pkg/wordrank/ingest"
	"github.com/cognicore/wordrank/pkg/wordrank/internalerr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Preset != PresetEnhanced {
		t.Errorf("Expected enhanced preset, got %q", cfg.Preset)
	}
	if cfg.TopN != 10 {
		t.Errorf("Expected TopN 10, got %d", cfg.TopN)
	}
	if !cfg.Normalize.StripPossessive || cfg.Normalize.Punctuation != ingest.DefaultPunctuation {
		t.Errorf("Unexpected normalize defaults: %+v", cfg.Normalize)
	}
	if !cfg.Stopwords.Enabled {
		t.Error("Stopwords should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestBasicPreset(t *testing.T) {
	cfg, err := ForPreset("basic")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TopN != 5 || cfg.Stopwords.Enabled || cfg.Normalize.StripPossessive || cfg.Normalize.Punctuation != "" {
		t.Errorf("Unexpected basic preset: %+v", cfg)
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := ForPreset("fancy"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("", noEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TopN != 10 {
		t.Errorf("Expected defaults, got TopN=%d", cfg.TopN)
	}
}

func TestLoadYAMLOverridesPreset(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wordrank.yaml", `
preset: basic
top_n: 3
tie_break: descending
normalize:
  punctuation: ".,"
`)

	cfg, err := Load(path, noEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Preset != PresetBasic {
		t.Errorf("Preset = %q", cfg.Preset)
	}
	if cfg.TopN != 3 {
		t.Errorf("TopN = %d, want 3", cfg.TopN)
	}
	if cfg.TieBreak != "descending" {
		t.Errorf("TieBreak = %q", cfg.TieBreak)
	}
	if cfg.Normalize.Punctuation != ".," {
		t.Errorf("Punctuation = %q", cfg.Normalize.Punctuation)
	}
	// Untouched basic preset settings survive.
	if cfg.Stopwords.Enabled || cfg.Normalize.StripPossessive {
		t.Errorf("basic preset settings should survive: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad tie", "tie_break: sideways\n"},
		{"bad format", "format: xml\n"},
		{"bad preset", "preset: fancy\n"},
		{"bad yaml", "top_n: [1, 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.yaml", tt.content)
			_, err := Load(path, noEnvFile(t))
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/wordrank.yaml", noEnvFile(t)); err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvTopN, "7")
	t.Setenv(EnvTieBreak, "desc")
	t.Setenv(EnvStem, "true")

	cfg, err := Load("", noEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TopN != 7 || cfg.TieBreak != "desc" || !cfg.Normalize.Stem {
		t.Errorf("Env overrides not applied: %+v", cfg)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "WORDRANK_TOP_N=4\nWORDRANK_FORMAT=json\nWORDRANK_STOPWORDS=false\n")

	// Process environment wins over the dotenv file.
	t.Setenv(EnvFormat, "text")

	cfg, err := Load("", envPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TopN != 4 {
		t.Errorf("TopN = %d, want 4", cfg.TopN)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want process env value", cfg.Format)
	}
	if cfg.Stopwords.Enabled {
		t.Error("Stopwords should be disabled by dotenv file")
	}
	if v, ok := os.LookupEnv(EnvTopN); ok {
		t.Errorf("dotenv file should not modify the process environment, got %s=%s", EnvTopN, v)
	}
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv(EnvTopN, "lots")
	if _, err := Load("", noEnvFile(t)); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadStoplist(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stoplist.yaml", "terms:\n  - the\n  - a\n")

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("LoadStoplist: %v", err)
	}
	if len(sl.Terms) != 2 || sl.Terms[0] != "the" {
		t.Errorf("Unexpected terms: %v", sl.Terms)
	}
}
