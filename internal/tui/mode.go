package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode describes how progress output should be rendered.
type OutputMode int

const (
	// ModeTUI uses bubbletea for interactive progress rendering.
	ModeTUI OutputMode = iota
	// ModePlain writes sequential log lines instead.
	ModePlain
)

// DetectMode determines the appropriate output mode for the given
// writer. Anything that is not an interactive terminal gets plain
// output, as does a dumb TERM.
func DetectMode(out io.Writer, noProgress bool) OutputMode {
	if noProgress {
		return ModePlain
	}
	file, ok := out.(*os.File)
	if !ok {
		return ModePlain
	}
	info, err := file.Stat()
	if err != nil {
		return ModePlain
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return ModePlain
		}
	}
	return ModeTUI
}
