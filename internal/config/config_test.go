package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "crosswind.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tailwind.Version != "latest" {
		t.Fatalf("expected latest version default, got %q", cfg.Tailwind.Version)
	}
	if cfg.Tailwind.Input != "tailwind.css" || cfg.Tailwind.Output != "assets/tailwind.css" {
		t.Fatalf("unexpected io defaults: %+v", cfg.Tailwind)
	}
	if !cfg.Tailwind.MinifyValue() {
		t.Fatalf("expected minify default true")
	}
	if cfg.Serve.Command != "go run ." {
		t.Fatalf("unexpected serve default %q", cfg.Serve.Command)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crosswind.yaml")
	body := "tailwind:\n  version: v4.1.6\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tailwind.Version != "v4.1.6" {
		t.Fatalf("expected pinned version, got %q", cfg.Tailwind.Version)
	}
	if cfg.Tailwind.Input != "tailwind.css" {
		t.Fatalf("expected default input, got %q", cfg.Tailwind.Input)
	}
	if cfg.Version != CurrentVersion {
		t.Fatalf("expected version default %d, got %d", CurrentVersion, cfg.Version)
	}
}

func TestLoadExplicitMinifyFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crosswind.yaml")
	body := "tailwind:\n  minify: false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tailwind.MinifyValue() {
		t.Fatalf("explicit minify: false should stick")
	}
}

func TestLoadBinaryOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crosswind.yaml")
	body := "tailwind:\n  binary: /opt/tailwindcss\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tailwind.Binary != "/opt/tailwindcss" {
		t.Fatalf("expected binary override, got %q", cfg.Tailwind.Binary)
	}
	if cfg.Tailwind.Input != "tailwind.css" {
		t.Fatalf("override should not disturb defaults, got input %q", cfg.Tailwind.Input)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crosswind.yaml")
	if err := os.WriteFile(path, []byte("tailwind: [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestMinifyValueDefault(t *testing.T) {
	if !(TailwindConfig{}).MinifyValue() {
		t.Fatal("expected MinifyValue() = true when Minify is nil")
	}
	if (TailwindConfig{Minify: boolPtr(false)}).MinifyValue() {
		t.Fatal("expected MinifyValue() = false")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Serve.Port = 8080

	buf, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "crosswind.yaml")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Serve.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", loaded.Serve.Port)
	}
	if loaded.Tailwind.Version != cfg.Tailwind.Version {
		t.Fatalf("version changed across round trip: %q", loaded.Tailwind.Version)
	}
}
