// Package app provides the termdock application model: a session of
// terminal tabs, the panel controller driving their PTYs, and the
// bubbletea update/render loop tying them together.
package app

import (
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/fraywing/termdock/internal/config"
	"github.com/fraywing/termdock/internal/gateway"
	"github.com/fraywing/termdock/internal/panel"
	"github.com/fraywing/termdock/internal/tab"
	"github.com/fraywing/termdock/internal/tabbar"
)

// App is the top-level bubbletea model. It owns the canonical session
// state; the panel controller requests mutations through callbacks and
// never writes tab state directly.
type App struct {
	Session    *tab.Session
	Gateway    gateway.Gateway
	Controller *panel.Controller
	Bar        *tabbar.Model
	History    *tab.History

	Width  int
	Height int

	Keys          config.KeybindingsConfig
	HideStatusBar bool

	// Rename flow state. RenamingTabID empty means no rename in progress.
	RenamingTabID string
	RenameBuffer  string

	// Search bar state.
	SearchOpen   bool
	SearchBuffer string

	// Log overlay state.
	ShowLogs        bool
	LogScrollOffset int
	LogMessages     []LogMessage

	// System stats for the status bar.
	cpuPercent  float64
	ramMB       float64
	lastStatsAt time.Time

	idleFrames int
}

// New builds the application model around a fresh local PTY gateway.
func New(cfg *config.UserConfig) *App {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}

	a := &App{
		Gateway: gateway.NewLocal(),
		Bar:     tabbar.New(),
		History: &tab.History{},
		Keys:    cfg.Keybindings,
		Session: &tab.Session{
			ID:  uuid.New().String(),
			Cwd: cwd,
		},
		HideStatusBar: cfg.Appearance.HideStatusBar,
	}

	a.Controller = panel.New(a.Gateway, a.ownerCallbacks(), panel.SpawnConfig{
		Shell:     cfg.Shell.Preferred,
		ShellArgs: cfg.Shell.Args,
		ShellEnv:  cfg.Shell.Env,
		Cols:      config.DefaultTerminalWidth,
		Rows:      config.DefaultTerminalHeight,
	})

	a.Bar.SetClosingFunc(a.Controller.IsClosing)
	a.Bar.SetSpawnStateFunc(a.Controller.SpawnStateFor)

	// Start with one tab so the first render has a shell to show.
	first := tab.New("", "")
	a.Session.Tabs = append(a.Session.Tabs, first)
	a.Session.ActiveTerminalTabID = first.ID

	return a
}

// ownerCallbacks wires the controller's mutation requests back into the
// session this model owns.
func (a *App) ownerCallbacks() panel.OwnerCallbacks {
	return panel.OwnerCallbacks{
		OnTabSelect:  a.selectTab,
		OnTabClose:   a.removeTab,
		OnNewTab:     func() { a.addTab() },
		OnTabRename:  a.renameTab,
		OnTabReorder: a.reorderTabs,
		OnTabStateChange: func(tabID string, state tab.State, exitCode int) {
			t := a.findTab(tabID)
			if t == nil {
				return
			}
			t.State = state
			t.ExitCode = exitCode
			if state == tab.StateExited {
				if t.IsSpawnFailure() {
					a.LogError("Tab %s failed to spawn (code %d)", tabID[:8], exitCode)
				} else {
					a.LogInfo("Tab %s exited with code %d", tabID[:8], exitCode)
				}
			}
		},
		OnTabPidChange: func(tabID string, pid int) {
			if t := a.findTab(tabID); t != nil {
				t.Pid = pid
				a.LogInfo("Tab %s spawned (pid %d)", tabID[:8], pid)
			}
		},
		OnTabCwdChange: func(tabID, cwd string) {
			if t := a.findTab(tabID); t != nil {
				t.Cwd = cwd
			}
		},
	}
}

func (a *App) findTab(tabID string) *tab.Tab {
	for _, t := range a.Session.Tabs {
		if t.ID == tabID {
			return t
		}
	}
	return nil
}

func (a *App) selectTab(tabID string) {
	if a.findTab(tabID) == nil {
		return
	}
	a.Session.ActiveTerminalTabID = tabID
}

// addTab appends a fresh tab and activates it. The cwd is inherited from
// the current active tab when it has one.
func (a *App) addTab() *tab.Tab {
	cwd := ""
	if active := a.Session.Active(); active != nil {
		cwd = active.Cwd
	}
	t := tab.New(cwd, "")
	a.Session.Tabs = append(a.Session.Tabs, t)
	a.Session.ActiveTerminalTabID = t.ID
	a.LogInfo("New tab %s", t.ID[:8])
	return t
}

// removeTab takes a tab out of the session, records it in the closed
// history, and moves activation to a neighbour.
func (a *App) removeTab(tabID string) {
	idx := a.Session.IndexOf(tabID)
	if idx < 0 {
		return
	}
	t := a.Session.Tabs[idx]
	a.History.Push(tab.RecordClosed(t, idx))

	a.Session.Tabs = append(a.Session.Tabs[:idx], a.Session.Tabs[idx+1:]...)

	if a.Session.ActiveTerminalTabID == tabID {
		a.Session.ActiveTerminalTabID = ""
		if len(a.Session.Tabs) > 0 {
			next := min(idx, len(a.Session.Tabs)-1)
			a.Session.ActiveTerminalTabID = a.Session.Tabs[next].ID
		}
	}
	a.LogInfo("Closed tab %s", tabID[:8])
}

// reopenClosed restores the most recently closed tab at its old index
// with a fresh identity, so the controller treats it as a brand new tab.
func (a *App) reopenClosed() {
	closed, ok := a.History.PopLast()
	if !ok {
		return
	}
	t := tab.New(closed.Cwd, closed.Name)
	idx := min(closed.Index, len(a.Session.Tabs))
	a.Session.Tabs = append(a.Session.Tabs[:idx], append([]*tab.Tab{t}, a.Session.Tabs[idx:]...)...)
	a.Session.ActiveTerminalTabID = t.ID
	a.LogInfo("Reopened tab %s at %d", t.ID[:8], idx)
}

func (a *App) renameTab(tabID, name string) {
	if t := a.findTab(tabID); t != nil {
		t.Name = name
	}
}

func (a *App) reorderTabs(from, to int) {
	n := len(a.Session.Tabs)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	t := a.Session.Tabs[from]
	rest := append(a.Session.Tabs[:from], a.Session.Tabs[from+1:]...)
	a.Session.Tabs = append(rest[:to], append([]*tab.Tab{t}, rest[to:]...)...)
}

// retryTab re-arms a spawn-failed or exited tab. The controller picks the
// reset up on the next sync.
func (a *App) retryTab(tabID string) {
	t := a.findTab(tabID)
	if t == nil || t.State != tab.StateExited {
		return
	}
	t.State = tab.StateIdle
	t.Pid = 0
	t.ExitCode = 0
	a.LogInfo("Retrying tab %s", tabID[:8])
}

// Cleanup shuts the controller and gateway down. Called once on exit.
func (a *App) Cleanup() {
	a.Controller.Shutdown()
	if g, ok := a.Gateway.(*gateway.Local); ok {
		g.Shutdown()
	}
}
