package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"crosswind/internal/proc"
)

var buildNoMinify bool

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the stylesheet once",
		RunE:  runBuild,
	}

	cmd.Flags().BoolVar(&buildNoMinify, "no-minify", false, "Disable CSS minification")

	return cmd
}

func runBuild(cmd *cobra.Command, _ []string) error {
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

	minify := p.cfg.Tailwind.MinifyValue() && !buildNoMinify
	argv := append([]string{bin.Path}, tailwindArgs(p.cfg, false, minify)...)
	p.log.Printf("build input=%s output=%s minify=%t", p.cfg.Tailwind.Input, p.cfg.Tailwind.Output, minify)

	res, err := proc.Run(cmd.Context(), "tailwindcss", argv, proc.Options{Dir: p.pp.Root})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errInterrupted
		}
		return err
	}
	if !res.Success() {
		return &childExitError{label: "tailwindcss", result: res}
	}

	p.log.Printf("build complete output=%s", p.pp.OutputFile)
	return nil
}
