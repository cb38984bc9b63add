package cli

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeWatchProject pins minify on in the config, so the argv capture
// can show the watcher ignoring it.
func writeWatchProject(t *testing.T, script string) string {
	t.Helper()
	root := t.TempDir()
	input := []byte("@import \"tailwindcss\";\n")
	if err := os.WriteFile(filepath.Join(root, "tailwind.css"), input, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfg := []byte("tailwind:\n  binary: ./fake-tailwind\n  minify: true\n")
	if err := os.WriteFile(filepath.Join(root, "crosswind.yaml"), cfg, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "fake-tailwind"), []byte(script), 0o755); err != nil {
		t.Fatalf("write stub binary: %v", err)
	}
	return root
}

func TestWatchSpawnsWithWatchFlag(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binary is a shell script")
	}
	t.Setenv("CROSSWIND_CACHE_DIR", t.TempDir())
	root := writeWatchProject(t, "#!/bin/sh\necho \"$@\" > args.txt\n")

	if _, err := executeCommand(t, "--manifest-path", root, "watch"); err != nil {
		t.Fatalf("watch: %v", err)
	}

	argsOut, err := os.ReadFile(filepath.Join(root, "args.txt"))
	if err != nil {
		t.Fatalf("stub should run with the project root as cwd: %v", err)
	}
	got := strings.TrimSpace(string(argsOut))
	if got != "-i tailwind.css -o assets/tailwind.css --watch" {
		t.Fatalf("unexpected argv %q, minify must stay off while watching", got)
	}
}

func TestWatchPropagatesChildExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binary is a shell script")
	}
	t.Setenv("CROSSWIND_CACHE_DIR", t.TempDir())
	root := writeWatchProject(t, "#!/bin/sh\nexit 3\n")

	_, err := executeCommand(t, "--manifest-path", root, "watch")
	var child *childExitError
	if !errors.As(err, &child) {
		t.Fatalf("expected child exit error, got %v", err)
	}
	if child.result.Code != 3 {
		t.Fatalf("expected child code 3, got %d", child.result.Code)
	}
	if exitCode(err) != 3 {
		t.Fatalf("expected process exit 3, got %d", exitCode(err))
	}
}
