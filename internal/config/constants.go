// Package config provides configuration constants, user settings, and CLI
// flag overrides.
package config

import "time"

// =============================================================================
// Animation Durations
// =============================================================================

const (
	// EntranceAnimationMaxAge is the tab age cutoff for playing an entrance
	// animation. Tabs older than this at first render appear instantly.
	EntranceAnimationMaxAge = 500 * time.Millisecond

	// TabCloseAnimationDuration is how long a closing tab collapses before
	// it is committed and removed.
	TabCloseAnimationDuration = 150 * time.Millisecond

	// TabCloseFallbackTimeout guarantees a closing tab commits even if the
	// animation-done signal never arrives. Whichever fires first wins.
	TabCloseFallbackTimeout = 200 * time.Millisecond
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// ProcessWaitDelay is the delay after a shell exits before the exit is
	// reported, giving the read pump time to capture final output.
	ProcessWaitDelay = 50 * time.Millisecond

	// StatsUpdateInterval is the interval between CPU/memory footer updates.
	StatsUpdateInterval = 500 * time.Millisecond
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the refresh rate during regular operation.
	NormalFPS = 60

	// IdleFPS is the refresh rate when no terminal has produced output
	// recently. Keeps CPU usage near zero on idle.
	IdleFPS = 10

	// IdleThresholdFrames is the number of consecutive idle frames at
	// NormalFPS before switching to IdleFPS (~500ms at 60 FPS).
	IdleThresholdFrames = 30
)

// =============================================================================
// Buffer Sizes
// =============================================================================

const (
	// ReadBufferSize is the size of the PTY read pump buffer.
	ReadBufferSize = 32 * 1024

	// ExitChannelBuffer is the buffer size for the gateway exit channel.
	ExitChannelBuffer = 10

	// RawBufferSize is the capacity of the per-surface raw output ring.
	RawBufferSize = 1024 * 1024
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxLogMessages is the maximum number of log messages kept in memory.
	MaxLogMessages = 100

	// MaxTabNameLength is the maximum length of a tab label before
	// truncation with an ellipsis.
	MaxTabNameLength = 20

	// MinScrollbackLines and MaxScrollbackLines bound the scrollback
	// configuration.
	MinScrollbackLines = 100
	MaxScrollbackLines = 1000000
)

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultScrollbackLines is the default scrollback buffer size.
	DefaultScrollbackLines = 10000

	// DefaultTerminalWidth is the fallback width when screen size is unknown.
	DefaultTerminalWidth = 80

	// DefaultTerminalHeight is the fallback height when screen size is unknown.
	DefaultTerminalHeight = 24
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// AnimationsEnabled controls whether tab animations play.
// Set via --no-animations flag or appearance.animations_enabled config.
var AnimationsEnabled = true

// ScrollbackLines is the number of lines kept per terminal surface.
// Set via --scrollback-lines flag or appearance.scrollback_lines config.
var ScrollbackLines = DefaultScrollbackLines

// GetCloseAnimationDuration returns the close animation duration, or 0 when
// animations are disabled so the commit happens on the next tick.
func GetCloseAnimationDuration() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return TabCloseAnimationDuration
}
