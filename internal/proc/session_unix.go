//go:build !windows

package proc

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr places the child in its own process group so signals
// reach grandchildren (go run wrappers, shells) as well.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func (s *Session) signalTerm() {
	if s.cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-s.cmd.Process.Pid, syscall.SIGTERM)
}

func (s *Session) signalKill() {
	if s.cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-s.cmd.Process.Pid, syscall.SIGKILL)
}
