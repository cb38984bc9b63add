//go:build windows

package proc

import "os/exec"

func setSysProcAttr(*exec.Cmd) {}

// Windows has no polite signal equivalent; both stages force-kill. The
// stdin close that precedes this still gives watchers a clean way out.
func (s *Session) signalTerm() {
	s.signalKill()
}

func (s *Session) signalKill() {
	if s.cmd.Process == nil {
		return
	}
	_ = s.cmd.Process.Kill()
}
