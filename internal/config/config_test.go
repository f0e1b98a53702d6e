package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Manifest != DefaultManifest {
		t.Errorf("expected manifest %q, got %q", DefaultManifest, cfg.Manifest)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("expected addr %q, got %q", DefaultServeAddr, cfg.Serve.Addr)
	}
	if cfg.Serve.MetricsNamespace != DefaultMetricsNamespace {
		t.Errorf("expected namespace %q, got %q", DefaultMetricsNamespace, cfg.Serve.MetricsNamespace)
	}
	if cfg.CaseInsensitive {
		t.Error("expected case-sensitive matching by default")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmdroute.toml")
	content := `
manifest = "routes.yaml"
case_insensitive = true

[serve]
addr = "localhost:9000"
metrics_namespace = "myapp"
tracing = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Manifest != "routes.yaml" {
		t.Errorf("expected routes.yaml, got %q", cfg.Manifest)
	}
	if !cfg.CaseInsensitive {
		t.Error("expected case_insensitive to be set")
	}
	if cfg.Serve.Addr != "localhost:9000" {
		t.Errorf("expected localhost:9000, got %q", cfg.Serve.Addr)
	}
	if cfg.Serve.MetricsNamespace != "myapp" {
		t.Errorf("expected myapp, got %q", cfg.Serve.MetricsNamespace)
	}
	if !cfg.Serve.Tracing {
		t.Error("expected tracing enabled")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmdroute.toml")
	if err := os.WriteFile(path, []byte(`manifest = "custom.yaml"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Manifest != "custom.yaml" {
		t.Errorf("expected custom.yaml, got %q", cfg.Manifest)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("expected the default addr to survive, got %q", cfg.Serve.Addr)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("expected an error for an explicitly named missing file")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmdroute.toml")
	if err := os.WriteFile(path, []byte("manifest = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}

	cfg.Manifest = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an empty manifest path")
	}

	cfg = Default()
	cfg.Serve.Addr = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an empty serve address")
	}
}
