package config

import (
	"fmt"

	"github.com/cognicore/wordrank/pkg/wordrank/ingest"
	"github.com/cognicore/wordrank/pkg/wordrank/rank"
	"github.com/cognicore/wordrank/pkg/wordrank/report"
	"github.com/cognicore/wordrank/pkg/wordrank/stoplist"
)

// Loader loads configuration files and constructs components
type Loader struct {
	ConfigPath string
	EnvFile    string
}

// Components holds all configured pipeline components
type Components struct {
	Config   *Config
	Pipeline *ingest.Pipeline
	Reporter *report.Reporter
	Tie      rank.TieBreak
}

// Load reads the configuration and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg, err := Load(l.ConfigPath, l.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg.Build()
}

// Build constructs components from a validated config.
func (c *Config) Build() (*Components, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	stops, err := c.buildStoplist()
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}

	tie, _ := rank.ParseTieBreak(c.TieBreak)
	format, _ := report.ParseFormat(c.Format)

	return &Components{
		Config:   c,
		Pipeline: ingest.NewPipeline(ingest.NewNormalizer(c.NormalizerOptions()), stops),
		Reporter: &report.Reporter{N: c.TopN, Format: format},
		Tie:      tie,
	}, nil
}

func (c *Config) buildStoplist() (*stoplist.Manager, error) {
	if !c.Stopwords.Enabled {
		return stoplist.Empty(), nil
	}

	configured := append([]string{}, c.Stopwords.Terms...)
	if c.Stopwords.File != "" {
		sl, err := LoadStoplist(c.Stopwords.File)
		if err != nil {
			return nil, err
		}
		configured = append(configured, sl.Terms...)
	}

	var mgr *stoplist.Manager
	if len(configured) > 0 {
		mgr = stoplist.NewManager(configured)
	} else {
		mgr = stoplist.Default()
	}

	for _, w := range c.Stopwords.Extra {
		mgr.Add(w, stoplist.Extra)
	}
	return mgr, nil
}
