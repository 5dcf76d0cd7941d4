//go:build windows

package gateway

import "os/exec"

// setupPTYCommand is a no-op on Windows; conpty manages the console.
func setupPTYCommand(_ *exec.Cmd) {}

// killProcessGroup is a no-op on Windows; Process.Kill suffices there.
func killProcessGroup(_ int) {}
