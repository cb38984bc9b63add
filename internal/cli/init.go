package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"crosswind/internal/logx"
	"crosswind/internal/paths"
)

const (
	tailwindCSSTemplate = `@import "tailwindcss";
`

	configTemplate = `version: 1

tailwind:
  # Release tag like v4.1.6, or latest/v4/4 for the newest release.
  version: latest
  input: tailwind.css
  output: assets/tailwind.css
  minify: true
  # binary: /path/to/tailwindcss  # skip downloads and run this executable

serve:
  # Command dev runs next to the watcher, split on whitespace.
  command: go run .
  # port: 8080
  # address: 127.0.0.1
  # watch: [templates]
`

	assetsGitignore = `tailwind.css
`
)

var initForce bool

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold Tailwind files in the project",
		RunE:  runInit,
	}

	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(manifestPath)
	if err != nil {
		return err
	}
	if err := pp.EnsureRoot(); err != nil {
		return err
	}

	logger := logx.New(verboseFlag)
	logger.Printf("init project=%s force=%t", pp.Root, initForce)

	created := make([]string, 0, 4)

	if err := ensureTemplate(cmd, pp.Root, pp.InputFile, tailwindCSSTemplate, initForce, &created); err != nil {
		return err
	}
	if err := ensureTemplate(cmd, pp.Root, pp.ConfigFile, configTemplate, initForce, &created); err != nil {
		return err
	}
	if err := ensureAssetsDir(pp, &created); err != nil {
		return err
	}
	if err := ensureGitignore(pp, &created); err != nil {
		return err
	}

	if len(created) == 0 {
		cmd.Printf("Project already initialized at %s\n", pp.Root)
		return nil
	}

	cmd.Printf("Initialized Tailwind at %s\n", pp.Root)
	for _, entry := range created {
		cmd.Printf("  created %s\n", entry)
	}
	cmd.Println()
	cmd.Println("Next steps:")
	cmd.Println("  1. Build CSS once:      crosswind build")
	cmd.Println("  2. Or keep it fresh:    crosswind watch")
	cmd.Println("  3. Watch and serve:     crosswind dev")

	return nil
}

func ensureTemplate(cmd *cobra.Command, root, path, contents string, force bool, created *[]string) error {
	name := relName(root, path)
	exists, err := paths.FileExists(path)
	if err != nil {
		return fmt.Errorf("check %s: %w", name, err)
	}
	if exists && !force {
		cmd.Printf("  %s already exists, skipping (use --force to overwrite)\n", name)
		return nil
	}

	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	*created = append(*created, name)
	return nil
}

func ensureAssetsDir(pp paths.ProjectPaths, created *[]string) error {
	exists, err := paths.DirExists(pp.AssetsDir)
	if err != nil {
		return fmt.Errorf("check assets dir: %w", err)
	}
	if exists {
		return nil
	}

	if err := os.MkdirAll(pp.AssetsDir, 0o755); err != nil {
		return fmt.Errorf("create assets dir: %w", err)
	}
	*created = append(*created, relName(pp.Root, pp.AssetsDir)+"/")
	return nil
}

// ensureGitignore keeps the generated stylesheet out of version
// control. An existing ignore file is left alone, forced or not.
func ensureGitignore(pp paths.ProjectPaths, created *[]string) error {
	path := filepath.Join(pp.AssetsDir, ".gitignore")
	exists, err := paths.FileExists(path)
	if err != nil {
		return fmt.Errorf("check assets gitignore: %w", err)
	}
	if exists {
		return nil
	}

	if err := os.WriteFile(path, []byte(assetsGitignore), 0o644); err != nil {
		return fmt.Errorf("write assets gitignore: %w", err)
	}
	*created = append(*created, relName(pp.Root, path))
	return nil
}

func relName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
