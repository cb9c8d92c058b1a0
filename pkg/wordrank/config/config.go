package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordrank/pkg/wordrank/ingest"
	"github.com/cognicore/wordrank/pkg/wordrank/internalerr"
	"github.com/cognicore/wordrank/pkg/wordrank/rank"
	"github.com/cognicore/wordrank/pkg/wordrank/report"
)

// Presets
const (
	PresetEnhanced = "enhanced"
	PresetBasic    = "basic"
)

// Environment variables that override file settings
const (
	EnvTopN      = "WORDRANK_TOP_N"
	EnvTieBreak  = "WORDRANK_TIE_BREAK"
	EnvFormat    = "WORDRANK_FORMAT"
	EnvStem      = "WORDRANK_STEM"
	EnvStopwords = "WORDRANK_STOPWORDS"
)

// Config is the full run configuration
type Config struct {
	Preset    string    `yaml:"preset"`
	TopN      int       `yaml:"top_n"`
	TieBreak  string    `yaml:"tie_break"`
	Format    string    `yaml:"format"`
	Normalize Normalize `yaml:"normalize"`
	Stopwords Stopwords `yaml:"stopwords"`
}

// Normalize configures the token normalizer
type Normalize struct {
	StripPossessive  bool   `yaml:"strip_possessive"`
	PossessiveSuffix string `yaml:"possessive_suffix"`
	Punctuation      string `yaml:"punctuation"`
	Stem             bool   `yaml:"stem"`
}

// Stopwords configures the stopword classifier
type Stopwords struct {
	Enabled bool     `yaml:"enabled"`
	File    string   `yaml:"file"`  // stoplist YAML with a terms list
	Terms   []string `yaml:"terms"` // replaces the built-in list when non-empty
	Extra   []string `yaml:"extra"` // added to the active list
}

// Default returns the enhanced preset.
func Default() *Config {
	cfg, _ := ForPreset(PresetEnhanced)
	return cfg
}

// ForPreset returns the base configuration for a named preset.
func ForPreset(name string) (*Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetEnhanced:
		return &Config{
			Preset:   PresetEnhanced,
			TopN:     10,
			TieBreak: "ascending",
			Format:   string(report.FormatText),
			Normalize: Normalize{
				StripPossessive:  true,
				PossessiveSuffix: ingest.DefaultPossessiveSuffix,
				Punctuation:      ingest.DefaultPunctuation,
			},
			Stopwords: Stopwords{Enabled: true},
		}, nil
	case PresetBasic:
		// Lowercasing only, every word ranked.
		return &Config{
			Preset:   PresetBasic,
			TopN:     5,
			TieBreak: "ascending",
			Format:   string(report.FormatText),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown preset %q", internalerr.ErrInvalidConfig, name)
	}
}

// Load reads a YAML config on top of its preset and applies environment
// overrides. An empty path yields the defaults. envFile names an optional
// dotenv file; a missing file is ignored.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var head struct {
			Preset string `yaml:"preset"`
		}
		if err := yaml.Unmarshal(data, &head); err != nil {
			return nil, fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, err)
		}
		cfg, err = ForPreset(head.Preset)
		if err != nil {
			return nil, err
		}
		// Second pass: explicit fields override the preset.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, err)
		}
	}

	env, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		path = ".env"
	}
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}
	return vars, nil
}

// applyEnv overrides settings from the process environment, falling back
// to values read from the dotenv file.
func (c *Config) applyEnv(file map[string]string) error {
	get := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return file[key]
	}

	if v := get(EnvTopN); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", internalerr.ErrInvalidConfig, EnvTopN, v)
		}
		c.TopN = n
	}
	if v := get(EnvTieBreak); v != "" {
		c.TieBreak = v
	}
	if v := get(EnvFormat); v != "" {
		c.Format = v
	}
	if v := get(EnvStem); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", internalerr.ErrInvalidConfig, EnvStem, v)
		}
		c.Normalize.Stem = b
	}
	if v := get(EnvStopwords); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", internalerr.ErrInvalidConfig, EnvStopwords, v)
		}
		c.Stopwords.Enabled = b
	}
	return nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	if _, err := ForPreset(c.Preset); err != nil {
		return err
	}
	if _, err := rank.ParseTieBreak(c.TieBreak); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// NormalizerOptions converts the normalize section for the ingest package.
func (c *Config) NormalizerOptions() ingest.NormalizerOptions {
	return ingest.NormalizerOptions{
		StripPossessive:  c.Normalize.StripPossessive,
		PossessiveSuffix: c.Normalize.PossessiveSuffix,
		Punctuation:      c.Normalize.Punctuation,
		Stem:             c.Normalize.Stem,
	}
}

// Stoplist represents the stopword list file
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
