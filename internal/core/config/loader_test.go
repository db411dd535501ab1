package config

import (
	"os"
	"testing"
)

func TestLoad_EnvSubstitution(t *testing.T) {
	os.Setenv("TEST_FEED_TOKEN", "secret-token")
	defer os.Unsetenv("TEST_FEED_TOKEN")

	configContent := `
feed:
  url: https://feed.example.org
  access_token: ${TEST_FEED_TOKEN}
retry:
  policy: "~30s:4"
`
	tmpFile, err := os.CreateTemp("", "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Feed.AccessToken != "secret-token" {
		t.Errorf("Expected access token secret-token, got %s", cfg.Feed.AccessToken)
	}
	if cfg.Retry.Policy != "~30s:4" {
		t.Errorf("Expected policy ~30s:4, got %s", cfg.Retry.Policy)
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())
	tmpFile.Close()

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Composer.MinParagraphs != 1 || cfg.Composer.MaxParagraphs != 3 {
		t.Errorf("Unexpected paragraph range %d-%d", cfg.Composer.MinParagraphs, cfg.Composer.MaxParagraphs)
	}
	if cfg.Composer.MinSentences != 2 || cfg.Composer.MaxSentences != 5 {
		t.Errorf("Unexpected sentence range %d-%d", cfg.Composer.MinSentences, cfg.Composer.MaxSentences)
	}
}

func TestLoad_RejectsInvertedRanges(t *testing.T) {
	configContent := `
composer:
  min_sentences: 5
  max_sentences: 2
`
	tmpFile, err := os.CreateTemp("", "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())
	if _, err := tmpFile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()

	if _, err := Load(tmpFile.Name()); err == nil {
		t.Error("Expected error for inverted sentence range")
	}
}
