package cli

import (
	"context"
	"errors"
	"fmt"

	"crosswind/internal/proc"
	"crosswind/internal/tailwind"
)

// Tooling failures get their own code family so callers can tell them
// apart from the wrapped binary's exit codes.
const (
	exitGeneric             = 1
	exitResolve             = 10
	exitDownload            = 11
	exitIntegrity           = 12
	exitUnsupportedPlatform = 13
	exitNotFound            = 14
	exitSpawn               = 15
	exitTerminationTimeout  = 16
	exitInterrupt           = 130
)

// errInterrupted marks a run that ended because the user asked it to.
var errInterrupted = errors.New("interrupted")

// childExitError carries a wrapped process's own termination through to
// the crosswind exit code.
type childExitError struct {
	label  string
	result proc.Result
}

func (e *childExitError) Error() string {
	if e.result.Signaled {
		return fmt.Sprintf("%s terminated by signal", e.label)
	}
	return fmt.Sprintf("%s exited with status %d", e.label, e.result.Code)
}

func (e *childExitError) exitCode() int {
	if e.result.Signaled || e.result.Code < 0 {
		return exitGeneric
	}
	return e.result.Code
}

// exitCode maps an error to the process exit code. A ResolveError can
// wrap a DownloadError from the release listing, so it is checked
// first; a bare DownloadError always means the artifact itself.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, errInterrupted) || errors.Is(err, context.Canceled) {
		return exitInterrupt
	}

	var child *childExitError
	if errors.As(err, &child) {
		return child.exitCode()
	}

	var (
		resolveErr   *tailwind.ResolveError
		downloadErr  *tailwind.DownloadError
		integrityErr *tailwind.IntegrityError
		platformErr  *tailwind.UnsupportedPlatformError
		notFoundErr  *tailwind.NotFoundError
		spawnErr     *proc.SpawnError
		termErr      *proc.TerminationTimeoutError
	)
	switch {
	case errors.As(err, &resolveErr):
		return exitResolve
	case errors.As(err, &downloadErr):
		return exitDownload
	case errors.As(err, &integrityErr):
		return exitIntegrity
	case errors.As(err, &platformErr):
		return exitUnsupportedPlatform
	case errors.As(err, &notFoundErr):
		return exitNotFound
	case errors.As(err, &spawnErr):
		return exitSpawn
	case errors.As(err, &termErr):
		return exitTerminationTimeout
	}
	return exitGeneric
}
