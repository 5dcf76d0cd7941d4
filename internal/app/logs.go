package app

import (
	"fmt"
	"time"

	"github.com/fraywing/termdock/internal/config"
)

// LogMessage is one entry in the in-model debug log ring.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// Log appends a message to the ring, evicting the oldest entries past
// the cap. When the overlay is open and scrolled to the bottom, it stays
// pinned to the bottom.
func (a *App) Log(level, format string, args ...any) {
	msg := LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	}

	wasAtBottom := false
	if a.ShowLogs {
		wasAtBottom = a.LogScrollOffset >= a.maxLogScroll()-1
	}

	a.LogMessages = append(a.LogMessages, msg)
	if len(a.LogMessages) > config.MaxLogMessages {
		a.LogMessages = a.LogMessages[len(a.LogMessages)-config.MaxLogMessages:]
	}

	if wasAtBottom && a.ShowLogs {
		a.LogScrollOffset = a.maxLogScroll()
	}
}

// LogInfo logs an informational message.
func (a *App) LogInfo(format string, args ...any) {
	a.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (a *App) LogWarn(format string, args ...any) {
	a.Log("WARN", format, args...)
}

// LogError logs an error message.
func (a *App) LogError(format string, args ...any) {
	a.Log("ERROR", format, args...)
}

// logsPerPage is how many entries fit in the overlay at the current
// height, leaving room for the title and hint lines.
func (a *App) logsPerPage() int {
	return max(a.Height-6, 1)
}

func (a *App) maxLogScroll() int {
	return max(len(a.LogMessages)-a.logsPerPage(), 0)
}

// ScrollLogs moves the overlay viewport by delta lines, clamped.
func (a *App) ScrollLogs(delta int) {
	a.LogScrollOffset += delta
	if a.LogScrollOffset < 0 {
		a.LogScrollOffset = 0
	}
	if m := a.maxLogScroll(); a.LogScrollOffset > m {
		a.LogScrollOffset = m
	}
}
