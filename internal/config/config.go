// Package config resolves where the word list lives and which matcher
// variant to build. Values come from an optional YAML file overridden by
// environment variables; nothing is kept in process-wide mutable state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// WordList is a file path or a postgres:// DSN.
	WordList string `yaml:"wordlist"`
	// Matcher names the strategy: linear, bucketed, trie or ahocorasick.
	Matcher string `yaml:"matcher"`
	// Mask is the replacement character, one rune.
	Mask string `yaml:"mask"`
}

// Default mirrors the historical service defaults.
func Default() Config {
	return Config{
		Addr:     ":3004",
		WordList: "keywords.txt",
		Matcher:  "ahocorasick",
		Mask:     "*",
	}
}

// Load resolves the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FILTER_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("FILTER_WORDLIST"); v != "" {
		c.WordList = v
	}
	if v := os.Getenv("FILTER_MATCHER"); v != "" {
		c.Matcher = v
	}
	if v := os.Getenv("FILTER_MASK"); v != "" {
		c.Mask = v
	}
}

// MaskRune returns the configured mask character.
func (c Config) MaskRune() rune {
	for _, r := range c.Mask {
		return r
	}
	return '*'
}
