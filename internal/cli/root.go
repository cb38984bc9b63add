package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	manifestPath string
	inputFlag    string
	outputFlag   string
	versionFlag  string
	noDownloads  bool
	verboseFlag  bool
	noProgress   bool
)

// Execute runs the root cobra command and exits with the mapped code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	// An interrupt already echoed ^C; a second error line helps nobody.
	if !errors.Is(err, errInterrupted) && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "crosswind",
		Short:         "Tailwind CSS sidekick for Go web projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&manifestPath, "manifest-path", "", "Path to the project directory or a file inside it")
	cmd.PersistentFlags().StringVarP(&inputFlag, "input", "i", "", "Tailwind input CSS file")
	cmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Generated CSS output file")
	cmd.PersistentFlags().StringVar(&versionFlag, "version", "", "Tailwind release tag (e.g. v4.1.6) or shorthand (v4/latest)")
	cmd.PersistentFlags().BoolVar(&noDownloads, "no-downloads", false, "Only use a tailwindcss binary already on PATH")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log progress details to stderr")
	cmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable interactive progress output")

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newDevCmd())
	cmd.AddCommand(newBinaryCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}
