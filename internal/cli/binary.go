package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"crosswind/internal/tailwind"
	"crosswind/internal/tui"
)

var (
	binaryStatusJSON   bool
	binaryInstallForce bool
	binaryCleanAll     bool
	binaryCleanDryRun  bool
)

func newBinaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "binary",
		Short: "Manage the cached tailwindcss binary",
	}

	cmd.AddCommand(newBinaryStatusCmd())
	cmd.AddCommand(newBinaryInstallCmd())
	cmd.AddCommand(newBinaryCleanCmd())

	return cmd
}

func newBinaryStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the resolved platform, cache contents, and PATH lookup",
		RunE:  runBinaryStatus,
	}

	cmd.Flags().BoolVar(&binaryStatusJSON, "json", false, "Output machine-readable JSON")

	return cmd
}

type binaryStatus struct {
	Platform    string           `json:"platform"`
	Version     string           `json:"version"`
	NoDownloads bool             `json:"no_downloads"`
	CacheDir    string           `json:"cache_dir"`
	PathBinary  string           `json:"path_binary,omitempty"`
	Cached      []tailwind.Entry `json:"cached"`
}

func runBinaryStatus(cmd *cobra.Command, _ []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	mgr, err := tailwind.NewManager(nil, p.log)
	if err != nil {
		return err
	}
	entries, err := mgr.Cache.Entries()
	if err != nil {
		return err
	}

	st := binaryStatus{
		Platform:    mgr.Platform.String(),
		Version:     p.cfg.Tailwind.Version,
		NoDownloads: noDownloadsEnabled(),
		CacheDir:    mgr.Cache.Root,
		Cached:      entries,
	}
	if path, err := exec.LookPath("tailwindcss"); err == nil {
		st.PathBinary = path
	}

	if binaryStatusJSON {
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printBinaryStatus(cmd, st)
	return nil
}

func printBinaryStatus(cmd *cobra.Command, st binaryStatus) {
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)

	pathBinary := st.PathBinary
	if pathBinary == "" {
		pathBinary = yellow.Render("(missing)")
	}
	downloads := green.Render("enabled")
	if st.NoDownloads {
		downloads = yellow.Render("disabled")
	}

	cmd.Printf("%-12s %s\n", "Platform", st.Platform)
	cmd.Printf("%-12s %s\n", "Version", st.Version)
	cmd.Printf("%-12s %s\n", "Downloads", downloads)
	cmd.Printf("%-12s %s\n", "Cache", st.CacheDir)
	cmd.Printf("%-12s %s\n", "PATH", pathBinary)
	cmd.Println()

	if len(st.Cached) == 0 {
		cmd.Println("(no cached binaries)")
		return
	}

	cmd.Printf("%-10s %-14s %-10s %s\n", "Tag", "Platform", "Size", "Path")
	for _, entry := range st.Cached {
		cmd.Printf("%-10s %-14s %-10s %s\n", entry.Tag, entry.Platform, tui.FormatBytes(entry.Size), entry.Path)
	}
}

func newBinaryInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download the configured release into the cache",
		RunE:  runBinaryInstall,
	}

	cmd.Flags().BoolVar(&binaryInstallForce, "force", false, "Reinstall even if a cached copy exists")

	return cmd
}

func runBinaryInstall(cmd *cobra.Command, _ []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	if noDownloadsEnabled() {
		return errors.New("downloads are disabled; re-enable them to install")
	}

	spec, err := tailwind.ParseSpec(p.cfg.Tailwind.Version)
	if err != nil {
		return &tailwind.ResolveError{Spec: p.cfg.Tailwind.Version, Err: err}
	}
	mgr, err := tailwind.NewManager(nil, p.log)
	if err != nil {
		return err
	}

	if tui.DetectMode(os.Stderr, noProgress) == tui.ModeTUI {
		return installWithProgress(cmd.Context(), mgr, spec)
	}
	return installPlain(cmd, mgr, spec)
}

func installPlain(cmd *cobra.Command, mgr *tailwind.Manager, spec tailwind.Spec) error {
	ctx := cmd.Context()

	release, err := mgr.Releases.Resolve(ctx, spec)
	if err != nil {
		return err
	}
	cmd.Printf("resolved tailwindcss %s\n", release.Tag)

	if binaryInstallForce {
		if err := mgr.Cache.Evict(release.Tag, mgr.Platform); err != nil {
			return err
		}
	}
	if path, ok := mgr.Cache.Lookup(release.Tag, mgr.Platform); ok {
		cmd.Printf("already cached at %s\n", path)
		return nil
	}

	asset, err := mgr.Releases.Locate(release, mgr.Platform)
	if err != nil {
		return err
	}
	cmd.Printf("downloading %s\n", asset.URL)

	path, err := mgr.Cache.EnsureBinary(ctx, asset, release.Tag, mgr.Platform)
	if err != nil {
		return err
	}
	cmd.Printf("installed %s\n", path)
	return nil
}

func installWithProgress(ctx context.Context, mgr *tailwind.Manager, spec tailwind.Spec) error {
	model := tui.NewInstallModel(fmt.Sprintf("crosswind binary install (%s)", mgr.Platform))

	return tui.RunWithWork(os.Stderr, model, func(send func(tea.Msg)) {
		send(tui.StepUpdateMsg{Step: tui.StepResolve, Status: tui.StepRunning, Detail: spec.String()})
		release, err := mgr.Releases.Resolve(ctx, spec)
		if err != nil {
			send(tui.ErrorMsg{Err: err})
			return
		}
		send(tui.StepUpdateMsg{Step: tui.StepResolve, Status: tui.StepDone, Detail: release.Tag})

		if binaryInstallForce {
			if err := mgr.Cache.Evict(release.Tag, mgr.Platform); err != nil {
				send(tui.ErrorMsg{Err: err})
				return
			}
		}
		if path, ok := mgr.Cache.Lookup(release.Tag, mgr.Platform); ok {
			send(tui.StepUpdateMsg{Step: tui.StepDownload, Status: tui.StepSkipped, Detail: "cached"})
			send(tui.StepUpdateMsg{Step: tui.StepVerify, Status: tui.StepSkipped, Detail: "cached"})
			send(tui.StepUpdateMsg{Step: tui.StepInstall, Status: tui.StepDone, Detail: path})
			return
		}

		asset, err := mgr.Releases.Locate(release, mgr.Platform)
		if err != nil {
			send(tui.ErrorMsg{Err: err})
			return
		}
		send(tui.StepUpdateMsg{Step: tui.StepDownload, Status: tui.StepRunning, Detail: asset.Name})
		mgr.Cache.Progress = func(written, total int64) {
			send(tui.ByteProgressMsg{Written: written, Total: total})
		}

		path, err := mgr.Cache.EnsureBinary(ctx, asset, release.Tag, mgr.Platform)
		if err != nil {
			send(tui.ErrorMsg{Err: err})
			return
		}
		var downloaded string
		if asset.Size > 0 {
			downloaded = tui.FormatBytes(asset.Size)
		}
		send(tui.StepUpdateMsg{Step: tui.StepDownload, Status: tui.StepDone, Detail: downloaded})
		send(tui.StepUpdateMsg{Step: tui.StepVerify, Status: tui.StepDone})
		send(tui.StepUpdateMsg{Step: tui.StepInstall, Status: tui.StepDone, Detail: path})
	})
}

func newBinaryCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [tag]",
		Short: "Remove cached binaries",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBinaryClean,
	}

	cmd.Flags().BoolVar(&binaryCleanAll, "all", false, "Remove every cached release")
	cmd.Flags().BoolVar(&binaryCleanDryRun, "dry-run", false, "List what would be removed without deleting")

	return cmd
}

// removeEntry is a seam for tests.
var removeEntry = os.Remove

func runBinaryClean(cmd *cobra.Command, args []string) error {
	if !binaryCleanAll && len(args) == 0 {
		return errors.New("specify a release tag or --all")
	}
	if binaryCleanAll && len(args) > 0 {
		return errors.New("--all does not take a tag")
	}

	root, err := tailwind.CacheRoot()
	if err != nil {
		return err
	}
	cache := tailwind.NewCache(root, nil, nil)
	entries, err := cache.Entries()
	if err != nil {
		return err
	}

	var tag string
	if len(args) == 1 {
		tag = args[0]
	}

	out := cmd.OutOrStdout()
	var removed, skipped int
	var freed int64
	for _, entry := range entries {
		if tag != "" && entry.Tag != tag {
			continue
		}
		if binaryCleanDryRun {
			fmt.Fprintf(out, "would remove %s (%s)\n", entry.Path, tui.FormatBytes(entry.Size))
			removed++
			freed += entry.Size
			continue
		}
		if err := removeEntry(entry.Path); err != nil {
			fmt.Fprintf(out, "error removing %s: %v\n", entry.Path, err)
			skipped++
			continue
		}
		fmt.Fprintf(out, "removed %s (%s)\n", entry.Path, tui.FormatBytes(entry.Size))
		removed++
		freed += entry.Size
	}

	// The directory sweep runs only when every file is gone; a skipped
	// file keeps its tag dir in place.
	if !binaryCleanDryRun && removed > 0 && skipped == 0 {
		if binaryCleanAll {
			err = cache.Clear()
		} else {
			err = cache.Remove(tag)
		}
		if err != nil {
			return err
		}
	}

	action := "complete"
	if binaryCleanDryRun {
		action = "(dry run)"
	}
	fmt.Fprintf(out, "\nClean %s: %d removed, %s freed, %d skipped\n", action, removed, tui.FormatBytes(freed), skipped)
	return nil
}
