package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crosswind/internal/config"
)

// ConfigFileName is the project manifest crosswind looks for.
const ConfigFileName = "crosswind.yaml"

// ProjectPaths captures canonical locations inside one project. All
// fields are absolute.
type ProjectPaths struct {
	Root       string
	ConfigFile string
	InputFile  string
	OutputFile string
	AssetsDir  string
}

// Resolve determines the project root from the optional manifest flag;
// empty means the current working directory. A flag naming a file
// selects that file's directory as the root and that file as the
// config.
func Resolve(manifestFlag string) (ProjectPaths, error) {
	if manifestFlag == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ProjectPaths{}, fmt.Errorf("resolve working directory: %w", err)
		}
		return newProjectPaths(wd), nil
	}

	abs, err := filepath.Abs(manifestFlag)
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve manifest path: %w", err)
	}

	info, err := os.Stat(abs)
	if err == nil && !info.IsDir() {
		pp := newProjectPaths(filepath.Dir(abs))
		pp.ConfigFile = abs
		return pp, nil
	}
	// A directory, or a path that does not exist yet (init creates it).
	return newProjectPaths(abs), nil
}

func newProjectPaths(root string) ProjectPaths {
	return ProjectPaths{
		Root:       root,
		ConfigFile: filepath.Join(root, ConfigFileName),
		InputFile:  filepath.Join(root, "tailwind.css"),
		OutputFile: filepath.Join(root, "assets", "tailwind.css"),
		AssetsDir:  filepath.Join(root, "assets"),
	}
}

// ApplyConfig overlays configured input and output locations onto the
// default layout. Relative values resolve against the project root.
func ApplyConfig(pp ProjectPaths, cfg config.Config) ProjectPaths {
	if input := strings.TrimSpace(cfg.Tailwind.Input); input != "" {
		pp.InputFile = resolveProjectPath(pp.Root, input)
	}
	if output := strings.TrimSpace(cfg.Tailwind.Output); output != "" {
		pp.OutputFile = resolveProjectPath(pp.Root, output)
		pp.AssetsDir = filepath.Dir(pp.OutputFile)
	}
	return pp
}

func resolveProjectPath(root, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

// EnsureRoot makes sure the project root exists on disk.
func (p ProjectPaths) EnsureRoot() error {
	if err := os.MkdirAll(p.Root, 0o755); err != nil {
		return fmt.Errorf("create project root: %w", err)
	}
	return nil
}

// EnsureOutputDir creates the compiled stylesheet's parent directory.
func (p ProjectPaths) EnsureOutputDir() error {
	if err := os.MkdirAll(filepath.Dir(p.OutputFile), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
