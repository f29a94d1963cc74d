package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Path == "" {
		t.Error("default Path should resolve to a directory")
	}
	if cfg.Output != "host" {
		t.Errorf("default Output = %q, want host", cfg.Output)
	}
	if cfg.Port != 22 {
		t.Errorf("default Port = %d, want 22", cfg.Port)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got: %v", err)
	}
	if cfg.Output != "host" {
		t.Errorf("Output = %q, want host", cfg.Output)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `targets:
  - web01
  - db02
path: /tmp/reports
output: csv
user: probe
key_file: /etc/remprobe/id_rsa
port: 2222
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Targets) != 2 || cfg.Targets[0] != "web01" || cfg.Targets[1] != "db02" {
		t.Errorf("Targets = %v", cfg.Targets)
	}
	if cfg.Path != "/tmp/reports" || cfg.Output != "csv" || cfg.User != "probe" || cfg.Port != 2222 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("targets: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
