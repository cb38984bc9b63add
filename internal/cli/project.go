package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"crosswind/internal/config"
	"crosswind/internal/logx"
	"crosswind/internal/paths"
	"crosswind/internal/tailwind"
	"crosswind/internal/tui"
)

// project bundles everything a command needs once flags and config have
// been reconciled.
type project struct {
	pp  paths.ProjectPaths
	cfg config.Config
	log *log.Logger
}

// loadProject resolves the manifest directory, loads crosswind.yaml,
// overlays the command-line flags, and validates the result. Flags win
// over config values, config values win over defaults.
func loadProject() (*project, error) {
	pp, err := paths.Resolve(manifestPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return nil, err
	}
	if inputFlag != "" {
		cfg.Tailwind.Input = inputFlag
	}
	if outputFlag != "" {
		cfg.Tailwind.Output = outputFlag
	}
	if versionFlag != "" {
		cfg.Tailwind.Version = versionFlag
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	pp = paths.ApplyConfig(pp, cfg)
	return &project{pp: pp, cfg: cfg, log: logx.New(verboseFlag)}, nil
}

// requireInput rejects runs whose input stylesheet does not exist, with
// a pointer at init the way a missing project usually wants.
func (p *project) requireInput() error {
	exists, err := paths.FileExists(p.pp.InputFile)
	if err != nil {
		return fmt.Errorf("stat tailwind input: %w", err)
	}
	if !exists {
		return fmt.Errorf("tailwind input %s does not exist; pass --input or run 'crosswind init' first", p.pp.InputFile)
	}
	return nil
}

// binaryOverride returns the configured executable override resolved
// against the project root, or empty when unset.
func (p *project) binaryOverride() string {
	bin := strings.TrimSpace(p.cfg.Tailwind.Binary)
	if bin == "" {
		return ""
	}
	if filepath.IsAbs(bin) {
		return filepath.Clean(bin)
	}
	return filepath.Join(p.pp.Root, bin)
}

// acquireBinary runs the resolution policy for this invocation, showing
// a status line while the network work happens.
func (p *project) acquireBinary(ctx context.Context) (tailwind.ResolvedBinary, error) {
	spec, err := tailwind.ParseSpec(p.cfg.Tailwind.Version)
	if err != nil {
		return tailwind.ResolvedBinary{}, &tailwind.ResolveError{Spec: p.cfg.Tailwind.Version, Err: err}
	}

	mgr, err := tailwind.NewManager(nil, p.log)
	if err != nil {
		return tailwind.ResolvedBinary{}, err
	}

	var status *tui.StatusWriter
	if tui.DetectMode(os.Stderr, noProgress) == tui.ModeTUI {
		status = tui.NewStatusWriter(os.Stderr)
		status.Update(fmt.Sprintf("resolving tailwindcss %s", spec))
		mgr.Cache.Progress = func(written, total int64) {
			if total > 0 {
				status.Update(fmt.Sprintf("downloading tailwindcss %s / %s", tui.FormatBytes(written), tui.FormatBytes(total)))
				return
			}
			status.Update(fmt.Sprintf("downloading tailwindcss %s", tui.FormatBytes(written)))
		}
	}

	bin, err := mgr.ResolveBinary(ctx, tailwind.Options{
		Version:     spec,
		NoDownloads: noDownloadsEnabled(),
		BinaryPath:  p.binaryOverride(),
	})
	if status != nil {
		if err != nil {
			status.Stop()
		} else if bin.Tag != "" {
			status.StopWith(fmt.Sprintf("tailwindcss %s ready", bin.Tag))
		} else {
			status.StopWith("tailwindcss ready")
		}
	}
	if err != nil {
		return tailwind.ResolvedBinary{}, err
	}

	p.log.Printf("tailwindcss binary=%s source=%s", bin.Path, bin.Source)
	return bin, nil
}

// noDownloadsEnabled folds the flag and its environment alias together.
// The flag wins when set; the variable only ever enables.
func noDownloadsEnabled() bool {
	return noDownloads || envFlag("CROSSWIND_NO_DOWNLOADS")
}

// envFlag reports whether name is set to a recognized truthy value.
func envFlag(name string) bool {
	switch os.Getenv(name) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	}
	return false
}

// tailwindArgs builds the child argv from the configured input and
// output values as written, relative paths included; the child runs
// with the project root as its working directory.
func tailwindArgs(cfg config.Config, watch, minify bool) []string {
	args := []string{"-i", cfg.Tailwind.Input, "-o", cfg.Tailwind.Output}
	if watch {
		args = append(args, "--watch")
	}
	if minify {
		args = append(args, "--minify")
	}
	return args
}
