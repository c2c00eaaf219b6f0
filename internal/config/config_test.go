package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":3004" || cfg.Matcher != "ahocorasick" || cfg.MaskRune() != '*' {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "filter.yaml")
	yml := "addr: \":9000\"\nwordlist: /srv/words.txt\nmatcher: trie\nmask: \"#\"\n"
	if err := os.WriteFile(p, []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FILTER_MATCHER", "linear")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.WordList != "/srv/words.txt" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Matcher != "linear" {
		t.Fatalf("env must override file, got %q", cfg.Matcher)
	}
	if cfg.MaskRune() != '#' {
		t.Fatalf("mask = %q", cfg.MaskRune())
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
