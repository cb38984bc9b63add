package logx

import (
	"io"
	"log"
	"os"
)

// New returns the diagnostic logger commands hand to their
// collaborators. Quiet runs get a logger that discards everything, so
// callers never nil-check.
func New(verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
}
