package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"crosswind/internal/proc"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch inputs and rebuild on changes",
		RunE:  runWatch,
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	if err := p.requireInput(); err != nil {
		return err
	}

	bin, err := p.acquireBinary(cmd.Context())
	if err != nil {
		return err
	}
	if err := p.pp.EnsureOutputDir(); err != nil {
		return err
	}

	// The watcher rebuilds unminified; Ctrl-C ends the run.
	argv := append([]string{bin.Path}, tailwindArgs(p.cfg, true, false)...)
	p.log.Printf("watch input=%s output=%s", p.cfg.Tailwind.Input, p.cfg.Tailwind.Output)

	res, err := proc.Run(cmd.Context(), "tailwindcss watch", argv, proc.Options{
		Dir:       p.pp.Root,
		HoldStdin: true,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errInterrupted
		}
		return err
	}
	if !res.Success() {
		return &childExitError{label: "tailwindcss watch", result: res}
	}
	return nil
}
