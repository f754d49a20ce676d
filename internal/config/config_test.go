package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bf.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.TapeSize != 30000 {
		t.Errorf("expected tape size 30000, got %d", cfg.TapeSize)
	}
	if cfg.Bench.Iterations != 1000 || cfg.Bench.OutputCapacity != 131072 {
		t.Errorf("unexpected bench defaults %+v", cfg.Bench)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
tape_size = 100000
trace_dir = "/tmp/bftrace"
strict_brackets = true

[bench]
iterations = 50
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TapeSize != 100000 || cfg.TraceDir != "/tmp/bftrace" || !cfg.StrictBrackets {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Bench.Iterations != 50 {
		t.Errorf("expected 50 iterations, got %d", cfg.Bench.Iterations)
	}
	// Unset keys keep their defaults
	if cfg.DB != "bf.db" || cfg.Bench.OutputCapacity != 131072 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"tape_size = 0", "tape_size"},
		{"[bench]\niterations = -1", "iterations"},
		{"colour = 'blue'", "unknown key"},
		{"tape_size = ", "config"},
	}
	for _, tc := range tests {
		_, err := Load(writeConfig(t, tc.content))
		if err == nil {
			t.Errorf("%q: expected error", tc.content)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%q: expected error mentioning %q, got %v", tc.content, tc.want, err)
		}
	}
}
