// Package config loads the engine configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Corpus sources.
const (
	SourceJSONL    = "jsonl"
	SourceSnapshot = "snapshot"
)

// Config holds all quranlex configuration.
type Config struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Cache    CacheConfig    `yaml:"cache"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CorpusConfig locates the corpora.
type CorpusConfig struct {
	// Source selects where the corpora load from: "jsonl" reads the three
	// JSONL files, "snapshot" reads the SQLite snapshot.
	Source         string `yaml:"source"`
	MorphologyPath string `yaml:"morphology_path"`
	RootsPath      string `yaml:"roots_path"`
	DictionaryPath string `yaml:"dictionary_path"`
	SnapshotPath   string `yaml:"snapshot_path"`
}

// CacheConfig configures the word-match cache.
type CacheConfig struct {
	Size int    `yaml:"size"`
	TTL  string `yaml:"ttl"`
}

// DispatchConfig configures the retrieval dispatcher.
type DispatchConfig struct {
	// SampleLimit caps the verses attached by sample-collecting steps.
	SampleLimit int `yaml:"sample_limit"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Source:         SourceJSONL,
			MorphologyPath: "data/quran_morphology.jsonl",
			RootsPath:      "data/root_analysis.jsonl",
			DictionaryPath: "data/arabic_dictionary.jsonl",
			SnapshotPath:   "data/quranlex.db",
		},
		Cache: CacheConfig{
			Size: 1024,
			TTL:  "1h",
		},
		Dispatch: DispatchConfig{
			SampleLimit: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; a present file overrides them field by field.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("QURANLEX_MORPHOLOGY"); p != "" {
		c.Corpus.MorphologyPath = p
	}
	if p := os.Getenv("QURANLEX_ROOTS"); p != "" {
		c.Corpus.RootsPath = p
	}
	if p := os.Getenv("QURANLEX_DICTIONARY"); p != "" {
		c.Corpus.DictionaryPath = p
	}
	if p := os.Getenv("QURANLEX_SNAPSHOT"); p != "" {
		c.Corpus.SnapshotPath = p
	}
}

// Validate rejects configurations the engine cannot start with.
func (c *Config) Validate() error {
	switch c.Corpus.Source {
	case SourceJSONL, SourceSnapshot:
	default:
		return fmt.Errorf("corpus.source must be %q or %q, got %q",
			SourceJSONL, SourceSnapshot, c.Corpus.Source)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size)
	}
	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}
	if c.Dispatch.SampleLimit <= 0 {
		return fmt.Errorf("dispatch.sample_limit must be positive, got %d", c.Dispatch.SampleLimit)
	}
	return nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return time.Hour
	}
	return d
}
