package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crosswind/internal/config"
)

func TestInitScaffoldsProject(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(t, "init", "--manifest-path", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	css, err := os.ReadFile(filepath.Join(dir, "tailwind.css"))
	if err != nil {
		t.Fatalf("read tailwind.css: %v", err)
	}
	if string(css) != "@import \"tailwindcss\";\n" {
		t.Fatalf("unexpected stylesheet template %q", css)
	}

	gitignore, err := os.ReadFile(filepath.Join(dir, "assets", ".gitignore"))
	if err != nil {
		t.Fatalf("read assets/.gitignore: %v", err)
	}
	if string(gitignore) != "tailwind.css\n" {
		t.Fatalf("unexpected gitignore %q", gitignore)
	}

	for _, name := range []string{"tailwind.css", "crosswind.yaml", "assets/", "assets/.gitignore"} {
		if !strings.Contains(out, "created "+name) {
			t.Fatalf("output missing created %s:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "Next steps:") {
		t.Fatalf("output missing next-step guidance:\n%s", out)
	}
}

func TestInitConfigTemplateLoads(t *testing.T) {
	dir := t.TempDir()

	if _, err := executeCommand(t, "init", "--manifest-path", dir); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, "crosswind.yaml"))
	if err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
	if err := cfg.Check(); err != nil {
		t.Fatalf("scaffolded config should validate: %v", err)
	}
	if cfg.Tailwind.Version != "latest" || cfg.Tailwind.Input != "tailwind.css" {
		t.Fatalf("unexpected scaffolded config: %+v", cfg.Tailwind)
	}
	if cfg.Serve.Command != "go run ." {
		t.Fatalf("unexpected serve command %q", cfg.Serve.Command)
	}
}

func TestInitSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := "@import \"tailwindcss\";\n@theme { --font-display: ui-serif; }\n"
	if err := os.WriteFile(filepath.Join(dir, "tailwind.css"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write stylesheet: %v", err)
	}

	out, err := executeCommand(t, "init", "--manifest-path", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "tailwind.css already exists, skipping") {
		t.Fatalf("expected a skip notice:\n%s", out)
	}

	got, err := os.ReadFile(filepath.Join(dir, "tailwind.css"))
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if string(got) != custom {
		t.Fatalf("existing stylesheet was overwritten")
	}
}

func TestInitForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tailwind.css"), []byte("stale\n"), 0o644); err != nil {
		t.Fatalf("write stylesheet: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "assets"), 0o755); err != nil {
		t.Fatalf("mkdir assets: %v", err)
	}
	customIgnore := "tailwind.css\n*.map\n"
	if err := os.WriteFile(filepath.Join(dir, "assets", ".gitignore"), []byte(customIgnore), 0o644); err != nil {
		t.Fatalf("write gitignore: %v", err)
	}

	if _, err := executeCommand(t, "init", "--manifest-path", dir, "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}

	css, err := os.ReadFile(filepath.Join(dir, "tailwind.css"))
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if string(css) != "@import \"tailwindcss\";\n" {
		t.Fatalf("force should rewrite the stylesheet, got %q", css)
	}

	ignore, err := os.ReadFile(filepath.Join(dir, "assets", ".gitignore"))
	if err != nil {
		t.Fatalf("read gitignore: %v", err)
	}
	if string(ignore) != customIgnore {
		t.Fatalf("force must not touch an existing gitignore, got %q", ignore)
	}
}

func TestInitAlreadyInitialized(t *testing.T) {
	dir := t.TempDir()

	if _, err := executeCommand(t, "init", "--manifest-path", dir); err != nil {
		t.Fatalf("first init: %v", err)
	}
	out, err := executeCommand(t, "init", "--manifest-path", dir)
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(out, "already initialized") {
		t.Fatalf("expected already-initialized notice:\n%s", out)
	}
}

func TestInitCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "web", "app")

	if _, err := executeCommand(t, "init", "--manifest-path", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "crosswind.yaml")); err != nil {
		t.Fatalf("config not scaffolded in new directory: %v", err)
	}
}
