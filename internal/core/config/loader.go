package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if necessary
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Composer.Interval == 0 {
		cfg.Composer.Interval = time.Hour
	}
	if cfg.Composer.MinParagraphs == 0 {
		cfg.Composer.MinParagraphs = 1
	}
	if cfg.Composer.MaxParagraphs == 0 {
		cfg.Composer.MaxParagraphs = 3
	}
	if cfg.Composer.MinSentences == 0 {
		cfg.Composer.MinSentences = 2
	}
	if cfg.Composer.MaxSentences == 0 {
		cfg.Composer.MaxSentences = 5
	}
	if cfg.Composer.GraphFile == "" {
		cfg.Composer.GraphFile = "lore_graph.yaml"
	}
	if cfg.Composer.MaxParagraphs < cfg.Composer.MinParagraphs ||
		cfg.Composer.MaxSentences < cfg.Composer.MinSentences {
		return nil, fmt.Errorf("invalid composer shape ranges")
	}

	return &cfg, nil
}
