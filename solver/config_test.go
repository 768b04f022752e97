package solver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if !config.Z3 || config.CVC4 || config.Timeout != 0 {
		t.Errorf("got %+v; want z3 only with no timeout", config)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solvers.yaml")
	data := "z3: true\ncvc4: true\ntimeout: 10000\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !config.Z3 || !config.CVC4 || config.Timeout != 10000 {
		t.Errorf("got %+v; want both backends and timeout 10000", config)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solvers.yaml")
	if err := os.WriteFile(path, []byte("z3: [not a bool"), 0o644); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected error for malformed yaml")
	}
}
