package gateway

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/colorprofile"
)

var (
	localEnvOnce   sync.Once
	localTermType  string
	localColorTerm string
)

// DetectShell picks the shell binary to spawn. The preferred shell from
// user config wins when it exists, then $SHELL, then a platform fallback
// chain.
func DetectShell(preferred string) string {
	if preferred != "" {
		if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(preferred), ".exe") {
			preferred += ".exe"
		}

		shellExists := false
		if runtime.GOOS == "windows" {
			_, err := exec.LookPath(preferred)
			shellExists = err == nil
		} else {
			_, err := os.Stat(preferred)
			shellExists = err == nil
		}

		if shellExists {
			return preferred
		}
		os.Stderr.WriteString("Warning: configured shell '" + preferred + "' not found, falling back to defaults\n")
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}

	if runtime.GOOS == "windows" {
		shells := []string{"powershell.exe", "pwsh.exe", "cmd.exe"}
		for _, shell := range shells {
			if _, err := exec.LookPath(shell); err == nil {
				return shell
			}
		}
		return "cmd.exe"
	}

	shells := []string{"/bin/bash", "/bin/zsh", "/bin/fish", "/bin/sh"}
	for _, shell := range shells {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh"
}

// terminalEnv returns TERM and COLORTERM values for spawned shells,
// detected once per process from the hosting terminal's capabilities.
func terminalEnv() (termType, colorTerm string) {
	localEnvOnce.Do(func() {
		envTerm := os.Getenv("TERM")
		envColorTerm := os.Getenv("COLORTERM")

		// If COLORTERM=truecolor is already set, trust the environment.
		if envColorTerm == "truecolor" && envTerm != "" && envTerm != "dumb" {
			localTermType = envTerm
			localColorTerm = envColorTerm
			return
		}

		// colorprofile handles TERM, COLORTERM, NO_COLOR, CLICOLOR,
		// terminfo, and tmux detection.
		profile := colorprofile.Detect(os.Stdout, os.Environ())
		localTermType, localColorTerm = profileToEnv(profile)
	})
	return localTermType, localColorTerm
}

// profileToEnv converts a colorprofile.Profile to TERM and COLORTERM
// values. COLORTERM may be empty.
func profileToEnv(profile colorprofile.Profile) (termType, colorTerm string) {
	parentTerm := os.Getenv("TERM")

	switch profile {
	case colorprofile.TrueColor:
		if parentTerm != "" {
			termType = parentTerm
		} else {
			termType = "xterm-256color"
		}
		colorTerm = "truecolor"

	case colorprofile.ANSI256:
		switch {
		case parentTerm != "" && strings.Contains(parentTerm, "256color"):
			termType = parentTerm
		case strings.HasPrefix(parentTerm, "screen"):
			termType = "screen-256color"
		case strings.HasPrefix(parentTerm, "tmux"):
			termType = "tmux-256color"
		default:
			termType = "xterm-256color"
		}

	case colorprofile.ANSI:
		if parentTerm != "" && parentTerm != "dumb" {
			termType = parentTerm
		} else {
			termType = "xterm"
		}

	case colorprofile.Ascii, colorprofile.NoTTY:
		termType = "dumb"

	default:
		termType = "xterm-256color"
	}

	return termType, colorTerm
}
