package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/fraywing/termdock/internal/config"
)

// handleKey dispatches a key press: overlay modes first, then global
// bindings, then raw forwarding to the active shell.
func (a *App) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.ShowLogs {
		return a.handleLogKey(key)
	}
	if a.RenamingTabID != "" {
		return a.handleRenameKey(msg, key)
	}
	if a.SearchOpen {
		return a.handleSearchKey(msg, key)
	}

	switch key {
	case a.Keys.Quit:
		a.Cleanup()
		return a, tea.Quit

	case a.Keys.NewTab:
		a.addTab()
		return a, a.Controller.Sync(a.Session)

	case a.Keys.CloseTab:
		if active := a.Session.Active(); active != nil {
			return a, tea.Batch(a.Controller.Close(active.ID), a.Controller.Sync(a.Session))
		}
		return a, nil

	case a.Keys.NextTab:
		a.cycleTab(1)
		return a, a.Controller.Sync(a.Session)

	case a.Keys.PrevTab:
		a.cycleTab(-1)
		return a, a.Controller.Sync(a.Session)

	case a.Keys.ReopenTab:
		a.reopenClosed()
		return a, a.Controller.Sync(a.Session)

	case a.Keys.RenameTab:
		if active := a.Session.Active(); active != nil {
			a.startRename(active.ID)
		}
		return a, nil

	case a.Keys.RetryTab:
		if active := a.Session.Active(); active != nil {
			a.retryTab(active.ID)
		}
		return a, a.Controller.Sync(a.Session)

	case a.Keys.Search:
		a.SearchOpen = true
		a.SearchBuffer = ""
		cols, rows := a.surfaceSize()
		a.Controller.ResizeAll(cols, rows)
		return a, nil

	case a.Keys.ClearActive:
		a.Controller.ClearActive()
		return a, nil

	case a.Keys.ToggleLogs:
		a.ShowLogs = true
		a.LogScrollOffset = a.maxLogScroll()
		return a, nil
	}

	// Everything else goes to the shell.
	if raw := encodeKey(msg); len(raw) > 0 {
		a.Controller.KeyInputActive(raw)
	}
	return a, a.drainCloseRequests()
}

func (a *App) handleLogKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "q", a.Keys.ToggleLogs:
		a.ShowLogs = false
	case "up", "k":
		a.ScrollLogs(-1)
	case "down", "j":
		a.ScrollLogs(1)
	case "pgup":
		a.ScrollLogs(-a.logsPerPage())
	case "pgdown":
		a.ScrollLogs(a.logsPerPage())
	case "home":
		a.LogScrollOffset = 0
	case "end":
		a.LogScrollOffset = a.maxLogScroll()
	}
	return a, nil
}

func (a *App) handleRenameKey(msg tea.KeyPressMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		a.RenamingTabID = ""
		a.RenameBuffer = ""
	case "enter":
		a.renameTab(a.RenamingTabID, a.RenameBuffer)
		a.RenamingTabID = ""
		a.RenameBuffer = ""
	case "backspace":
		if len(a.RenameBuffer) > 0 {
			runes := []rune(a.RenameBuffer)
			a.RenameBuffer = string(runes[:len(runes)-1])
		}
	default:
		if msg.Text != "" && len([]rune(a.RenameBuffer)) < config.MaxTabNameLength {
			a.RenameBuffer += msg.Text
		}
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyPressMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		a.SearchOpen = false
		a.SearchBuffer = ""
		a.Controller.ClearSearchActive()
		cols, rows := a.surfaceSize()
		a.Controller.ResizeAll(cols, rows)
	case "enter":
		if a.SearchBuffer != "" && !a.Controller.SearchActive(a.SearchBuffer) {
			a.LogInfo("No matches for %q", a.SearchBuffer)
		}
	case "up":
		a.Controller.SearchPrevious()
	case "down":
		a.Controller.SearchNext()
	case "backspace":
		if len(a.SearchBuffer) > 0 {
			runes := []rune(a.SearchBuffer)
			a.SearchBuffer = string(runes[:len(runes)-1])
		}
	default:
		if msg.Text != "" {
			a.SearchBuffer += msg.Text
		}
	}
	return a, nil
}

// cycleTab moves activation forwards or backwards with wraparound.
func (a *App) cycleTab(delta int) {
	n := len(a.Session.Tabs)
	if n == 0 {
		return
	}
	idx := a.Session.IndexOf(a.Session.ActiveTerminalTabID)
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+delta)%n + n) % n
	a.Session.ActiveTerminalTabID = a.Session.Tabs[idx].ID
}

// encodeKey converts a key press into the byte sequence a shell expects.
// Plain text passes through; special keys map to their xterm sequences.
func encodeKey(msg tea.KeyPressMsg) []byte {
	if msg.Text != "" {
		return []byte(msg.Text)
	}

	switch msg.String() {
	case "enter":
		return []byte{'\r'}
	case "tab":
		return []byte{'\t'}
	case "shift+tab":
		return []byte("\x1b[Z")
	case "backspace":
		return []byte{0x7f}
	case "esc":
		return []byte{0x1b}
	case "space":
		return []byte{' '}
	case "up":
		return []byte("\x1b[A")
	case "down":
		return []byte("\x1b[B")
	case "right":
		return []byte("\x1b[C")
	case "left":
		return []byte("\x1b[D")
	case "home":
		return []byte("\x1b[H")
	case "end":
		return []byte("\x1b[F")
	case "insert":
		return []byte("\x1b[2~")
	case "delete":
		return []byte("\x1b[3~")
	case "pgup":
		return []byte("\x1b[5~")
	case "pgdown":
		return []byte("\x1b[6~")
	}

	// ctrl+a .. ctrl+z become the control bytes 0x01 .. 0x1a.
	if s := msg.String(); len(s) == 6 && s[:5] == "ctrl+" && s[5] >= 'a' && s[5] <= 'z' {
		return []byte{s[5] - 'a' + 1}
	}

	return nil
}
