//go:build !windows

package gateway

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setupPTYCommand puts the shell in its own process group so a kill can
// take down the shell's children as well.
func setupPTYCommand(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// killProcessGroup signals the whole process group rooted at pid.
// Best effort; failures are ignored.
func killProcessGroup(pid int) {
	pgid, err := unix.Getpgid(pid)
	if err != nil {
		return
	}
	_ = unix.Kill(-pgid, unix.SIGKILL)
}
