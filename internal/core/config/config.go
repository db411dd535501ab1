package config

import (
	"time"

	"github.com/vietddude/loresmith/internal/infra/feed"
	redisclient "github.com/vietddude/loresmith/internal/infra/redis"
	"github.com/vietddude/loresmith/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Composer ComposerConfig     `yaml:"composer"`
	Retry    RetryConfig        `yaml:"retry"`
	Redis    redisclient.Config `yaml:"redis"`
	Database postgres.Config    `yaml:"database"`
	Feed     feed.Config        `yaml:"feed"`
	Logging  LoggingConfig      `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// ComposerConfig shapes the periodic composition requests. Paragraph
// and sentence counts are drawn uniformly from the configured ranges.
type ComposerConfig struct {
	Interval      time.Duration `yaml:"interval"`
	MinParagraphs int           `yaml:"min_paragraphs"`
	MaxParagraphs int           `yaml:"max_paragraphs"`
	MinSentences  int           `yaml:"min_sentences"`
	MaxSentences  int           `yaml:"max_sentences"`
	GraphFile     string        `yaml:"graph_file"` // in-memory mode seed
}

// RetryConfig carries the encoded retry policy, e.g. "~60s:2".
type RetryConfig struct {
	Policy string `yaml:"policy"`
}
