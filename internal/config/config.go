package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SegmenterConfig holds all caption segmentation parameters.
type SegmenterConfig struct {
	Language            string  `yaml:"language"`
	MaxWords            int     `yaml:"max_words"`
	MaxLength           int     `yaml:"max_length"`
	MergeCharThreshold  int     `yaml:"merge_char_threshold"`
	SilenceGapThreshold float64 `yaml:"silence_gap_threshold"`
}

// PathsConfig holds the data directories.
type PathsConfig struct {
	Data        string `yaml:"data"`
	Transcripts string `yaml:"transcripts"`
}

// TranslateConfig holds the translation pool parameters.
type TranslateConfig struct {
	PoolSize        int      `yaml:"pool_size"`
	RateLimitPerMin int      `yaml:"rate_limit_per_min"`
	Model           string   `yaml:"model"`
	APIKeys         []string `yaml:"api_keys"`
}

// ServerConfig holds the HTTP server parameters.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// PerformanceConfig limits pipeline concurrency.
type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Config holds the full application configuration.
type Config struct {
	Segmenter   SegmenterConfig   `yaml:"segmenter"`
	Paths       PathsConfig       `yaml:"paths"`
	Translate   TranslateConfig   `yaml:"translate"`
	Server      ServerConfig      `yaml:"server"`
	Performance PerformanceConfig `yaml:"performance"`

	VocabularyName string `yaml:"vocabulary_name"`
}

// Default returns a Config with the tuned segmentation constants.
func Default() *Config {
	return &Config{
		Segmenter: SegmenterConfig{
			Language:            "en-US",
			MaxWords:            20,
			MaxLength:           50,
			MergeCharThreshold:  15,
			SilenceGapThreshold: 0.15,
		},
		Paths: PathsConfig{
			Data:        "data/store",
			Transcripts: "data/transcripts",
		},
		Translate: TranslateConfig{
			PoolSize:        10,
			RateLimitPerMin: 60,
			Model:           "gemini-2.5-flash",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Performance: PerformanceConfig{
			MaxConcurrent: 2,
		},
		VocabularyName: "captionforge",
	}
}

// Load reads a yaml config file and applies defaults for missing values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate fills in defaults and rejects unusable values.
func (c *Config) Validate() error {
	d := Default()

	if c.Segmenter.MaxWords < 0 || c.Segmenter.MaxLength < 0 {
		return fmt.Errorf("segmenter limits must be positive")
	}
	if c.Segmenter.Language == "" {
		c.Segmenter.Language = d.Segmenter.Language
	}
	if c.Segmenter.MaxWords == 0 {
		c.Segmenter.MaxWords = d.Segmenter.MaxWords
	}
	if c.Segmenter.MaxLength == 0 {
		c.Segmenter.MaxLength = d.Segmenter.MaxLength
	}
	if c.Segmenter.MergeCharThreshold == 0 {
		c.Segmenter.MergeCharThreshold = d.Segmenter.MergeCharThreshold
	}
	if c.Segmenter.SilenceGapThreshold == 0 {
		c.Segmenter.SilenceGapThreshold = d.Segmenter.SilenceGapThreshold
	}

	if c.Paths.Data == "" {
		c.Paths.Data = d.Paths.Data
	}
	if c.Paths.Transcripts == "" {
		c.Paths.Transcripts = d.Paths.Transcripts
	}

	if c.Translate.PoolSize == 0 {
		c.Translate.PoolSize = d.Translate.PoolSize
	}
	if c.Translate.RateLimitPerMin == 0 {
		c.Translate.RateLimitPerMin = d.Translate.RateLimitPerMin
	}
	if c.Translate.Model == "" {
		c.Translate.Model = d.Translate.Model
	}

	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = d.Performance.MaxConcurrent
	}
	if c.VocabularyName == "" {
		c.VocabularyName = d.VocabularyName
	}

	return nil
}
