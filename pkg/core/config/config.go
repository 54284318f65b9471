// Package config loads runtime configuration for the cleaning pipeline.
// Values come from an optional YAML or HJSON file layered over defaults;
// credentials (DATABASE_URL) stay in the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"
)

// Config holds the tunable knobs of the pipeline. The heuristic constants
// (table ratio, minimum section length) are configuration, not code: they
// were tuned empirically and may need retuning per corpus.
type Config struct {
	// OutputRoot is the corpus root directory.
	OutputRoot string `yaml:"output_root" json:"output_root"`
	// UserAgent identifies the scraper to SEC EDGAR ("ORG_NAME MAIL_ADDRESS").
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	// TableRatio is the digit-density threshold at and above which a table
	// is dropped during normalization.
	TableRatio float64 `yaml:"table_ratio" json:"table_ratio"`
	// Workers bounds concurrent document processing in batch runs.
	Workers int `yaml:"workers" json:"workers"`
	// MinSectionLen is the minimum section length (in characters) for
	// inclusion in a gathered corpus file.
	MinSectionLen int `yaml:"min_section_length" json:"min_section_length"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputRoot:    "output",
		UserAgent:     "scraper-edgar/1.0 (contact@example.com)",
		TableRatio:    0.1,
		Workers:       4,
		MinSectionLen: 2500,
	}
}

// Load reads a config file over the defaults. YAML is the primary format;
// .hjson files are parsed tolerantly. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hjson":
		if err := hjson.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse hjson config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml config: %w", err)
		}
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.TableRatio <= 0 {
		cfg.TableRatio = Default().TableRatio
	}
	return cfg, nil
}
