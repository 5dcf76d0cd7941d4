// Package tab defines the terminal tab entity, the session snapshot that
// owns an ordered list of tabs, and the closed-tab history used for
// reopening tabs.
package tab

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State describes a tab's shell lifecycle as seen by the owner.
// Spawned-but-running is implicit: a tab that is not exited and has a
// nonzero pid is running.
type State string

const (
	// StateIdle means the tab has no terminated shell. Freshly created
	// tabs and tabs re-armed for a retry are idle.
	StateIdle State = "idle"

	// StateExited means the tab's shell terminated or its spawn failed.
	// Pid distinguishes the two: pid > 0 is a normal exit, pid == 0 is a
	// spawn failure.
	StateExited State = "exited"
)

// Exit codes recorded for spawn outcomes that never produced a shell exit.
const (
	// ExitCodeSpawnFailed marks a spawn the gateway reported as unsuccessful.
	ExitCodeSpawnFailed = -1

	// ExitCodeSpawnError marks a spawn that errored outright.
	ExitCodeSpawnError = 1
)

// Tab is one PTY-backed shell session bound to one tab affordance.
type Tab struct {
	// ID is generated once at creation and never reused.
	ID string

	// Name is the user-assigned label. Empty means the display name is
	// derived from the tab's position.
	Name string

	// Cwd is the working directory the shell starts in. Empty falls back
	// to the owning session's cwd.
	Cwd string

	// Pid is 0 until a spawn succeeds, then the OS process id. It keeps
	// the last known value after exit.
	Pid int

	// State is idle until the shell terminates or the spawn fails.
	State State

	// ExitCode is meaningful only when State is StateExited.
	ExitCode int

	// CreatedAt decides whether an entrance animation plays at first
	// render.
	CreatedAt time.Time
}

// New creates an idle tab with a fresh unique id.
func New(cwd, name string) *Tab {
	return &Tab{
		ID:        uuid.New().String(),
		Name:      name,
		Cwd:       cwd,
		State:     StateIdle,
		CreatedAt: time.Now(),
	}
}

// IsSpawnFailure reports whether the tab exited without ever getting a pid.
func (t *Tab) IsSpawnFailure() bool {
	return t.State == StateExited && t.Pid == 0
}

// IsNormalExit reports whether the tab's shell ran and then terminated.
func (t *Tab) IsNormalExit() bool {
	return t.State == StateExited && t.Pid > 0
}

// DisplayName returns the tab's label: the user-assigned name, or
// "Terminal N" by position among the currently rendered tabs. The index is
// positional and recomputed every render, never stored.
func DisplayName(t *Tab, index int) string {
	if t != nil && t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("Terminal %d", index+1)
}

// Session is the externally owned snapshot the controller reads. The
// controller never mutates it in place; all writes go through owner
// callbacks.
type Session struct {
	ID   string
	Cwd  string
	Tabs []*Tab

	// ActiveTerminalTabID may reference a tab that no longer exists, which
	// is treated the same as having no active tab.
	ActiveTerminalTabID string
}

// Active returns the session's active tab, or nil when the list is empty or
// the active id does not match any tab.
func (s *Session) Active() *Tab {
	if s == nil || s.ActiveTerminalTabID == "" {
		return nil
	}
	for _, t := range s.Tabs {
		if t.ID == s.ActiveTerminalTabID {
			return t
		}
	}
	return nil
}

// IndexOf returns the position of the tab with the given id, or -1.
func (s *Session) IndexOf(tabID string) int {
	if s == nil {
		return -1
	}
	for i, t := range s.Tabs {
		if t.ID == tabID {
			return i
		}
	}
	return -1
}
