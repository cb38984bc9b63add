package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"crosswind/internal/config"
	"crosswind/internal/proc"
)

var (
	devServeCmd     string
	devServePort    int
	devServeAddress []string
	devServeWatch   []string
)

func newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev [flags] [-- serve args]",
		Short: "Run Tailwind watch and the serve command together",
		Long: `Run the Tailwind watcher and the project's serve command as one
session. Whichever process exits first stops the other; arguments after
-- are passed to the serve command verbatim.`,
		RunE: runDev,
	}

	cmd.Flags().StringVar(&devServeCmd, "serve-cmd", "", "Serve command, split on whitespace (default from config)")
	cmd.Flags().IntVarP(&devServePort, "port", "p", 0, "Port forwarded to the serve command as --port")
	cmd.Flags().StringArrayVarP(&devServeAddress, "address", "a", nil, "Address forwarded to the serve command as --address (repeatable)")
	cmd.Flags().StringArrayVarP(&devServeWatch, "serve-watch", "w", nil, "Path forwarded to the serve command as --watch (repeatable)")

	return cmd
}

func runDev(cmd *cobra.Command, args []string) error {
	var extra []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		extra = args[dash:]
		args = args[:dash]
	}
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q; serve args go after --", args[0])
	}

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

	serve, err := serveArgv(p.cfg.Serve, extra)
	if err != nil {
		return err
	}
	p.log.Printf("dev watch=%v serve=%v", tailwindArgs(p.cfg, true, false), serve)

	runner := &proc.DevRunner{
		Watch: proc.Command{
			Name:      "tailwindcss watch",
			Argv:      append([]string{bin.Path}, tailwindArgs(p.cfg, true, false)...),
			Dir:       p.pp.Root,
			HoldStdin: true,
		},
		Serve: proc.Command{
			Name: "serve command",
			Argv: serve,
			Dir:  p.pp.Root,
			Env:  noColorEnv(),
		},
		Logger: p.log,
	}

	res, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	switch res.Trigger {
	case proc.TriggerInterrupt:
		return errInterrupted
	case proc.TriggerWatch:
		if !res.Watch.Success() {
			return &childExitError{label: "tailwindcss watch", result: res.Watch}
		}
	case proc.TriggerServe:
		if !res.Serve.Success() {
			return &childExitError{label: "serve command", result: res.Serve}
		}
	}
	return nil
}

// serveArgv assembles the serve child's argv: the command itself, then
// the forwarded options, then any passthrough args. Flags win over
// config values field by field.
func serveArgv(cfg config.ServeConfig, extra []string) ([]string, error) {
	command := devServeCmd
	if command == "" {
		command = cfg.Command
	}
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return nil, errors.New("serve command is empty; set serve.command or --serve-cmd")
	}

	port := devServePort
	if port == 0 {
		port = cfg.Port
	}
	if port != 0 {
		argv = append(argv, "--port", strconv.Itoa(port))
	}

	addresses := devServeAddress
	if len(addresses) == 0 && cfg.Address != "" {
		addresses = []string{cfg.Address}
	}
	for _, address := range addresses {
		argv = append(argv, "--address", address)
	}

	watches := devServeWatch
	if len(watches) == 0 {
		watches = cfg.Watch
	}
	for _, watch := range watches {
		argv = append(argv, "--watch", watch)
	}

	return append(argv, extra...), nil
}

// noColorEnv normalizes numeric NO_COLOR values to the boolean words
// some serve tools parse.
func noColorEnv() []string {
	switch os.Getenv("NO_COLOR") {
	case "1":
		return []string{"NO_COLOR=true"}
	case "0":
		return []string{"NO_COLOR=false"}
	}
	return nil
}
