package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/fraywing/termdock/internal/config"
	"github.com/fraywing/termdock/internal/panel"
	"github.com/fraywing/termdock/internal/tabbar"
)

// TickerMsg drives periodic UI refreshes.
type TickerMsg time.Time

// TickCmd emits ticks at the normal frame rate.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// IdleTickCmd emits ticks at the reduced idle rate to save CPU.
func IdleTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.IdleFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Init starts the tick loop, the gateway event listeners, and the first
// spawn for the initial tab.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		TickCmd(),
		panel.ListenForExits(a.Controller.ExitEvents()),
		panel.ListenForRawData(a.Controller.RawData()),
	}
	if cmd := a.Controller.Sync(a.Session); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		if !a.HideStatusBar {
			a.UpdateStats()
		}

		nextTick := TickCmd()
		a.idleFrames++
		if a.idleFrames >= config.IdleThresholdFrames {
			nextTick = IdleTickCmd()
		}

		cmds := []tea.Cmd{nextTick}
		if cmd := a.Controller.Sync(a.Session); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case panel.SpawnResultMsg:
		a.Controller.HandleSpawnResult(msg)
		return a, nil

	case panel.ExitMsg:
		a.Controller.HandleExit(msg)
		return a, panel.ListenForExits(a.Controller.ExitEvents())

	case panel.RawDataMsg:
		a.idleFrames = 0
		a.Controller.HandleRawData(msg)
		return a, panel.ListenForRawData(a.Controller.RawData())

	case panel.CloseAnimationDoneMsg:
		a.Controller.HandleCloseSignal(msg.TabID)
		return a, a.Controller.Sync(a.Session)

	case panel.CloseFallbackMsg:
		a.Controller.HandleCloseSignal(msg.TabID)
		return a, a.Controller.Sync(a.Session)

	case tea.KeyPressMsg:
		a.idleFrames = 0
		return a.handleKey(msg)

	case tea.PasteMsg:
		a.idleFrames = 0
		a.Controller.KeyInputActive([]byte(msg.Content))
		return a, a.drainCloseRequests()

	case tea.MouseClickMsg:
		a.idleFrames = 0
		return a.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		m := msg.Mouse()
		if m.Y == 0 {
			a.Bar.Motion(m.X)
		}
		return a, nil

	case tea.MouseReleaseMsg:
		m := msg.Mouse()
		if ev := a.Bar.Release(m.X); ev.Kind == tabbar.EventReorder {
			a.reorderTabs(ev.From, ev.To)
		}
		return a, a.Controller.Sync(a.Session)

	case tea.MouseWheelMsg:
		if a.ShowLogs {
			switch msg.Button {
			case tea.MouseWheelUp:
				a.ScrollLogs(-2)
			case tea.MouseWheelDown:
				a.ScrollLogs(2)
			}
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.Width = msg.Width
		a.Height = msg.Height
		a.Bar.SetWidth(msg.Width)
		cols, rows := a.surfaceSize()
		a.Controller.ResizeAll(cols, rows)
		return a, a.Controller.Sync(a.Session)
	}

	return a, nil
}

// handleMouseClick routes a click either to the tab bar row or to the
// active surface area.
func (a *App) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	m := msg.Mouse()

	if m.Y == 0 {
		var ev tabbar.Event
		switch m.Button {
		case tea.MouseLeft:
			ev = a.Bar.Click(m.X)
		case tea.MouseMiddle:
			ev = a.Bar.MiddleClick(m.X)
		default:
			return a, nil
		}
		return a.applyBarEvent(ev)
	}

	// A click in the surface area focuses the active surface.
	a.Controller.FocusActive()
	return a, nil
}

// applyBarEvent turns a tab bar intent into session mutations and
// controller commands.
func (a *App) applyBarEvent(ev tabbar.Event) (tea.Model, tea.Cmd) {
	switch ev.Kind {
	case tabbar.EventSelect:
		a.selectTab(ev.TabID)
	case tabbar.EventNew:
		a.addTab()
	case tabbar.EventClose:
		return a, tea.Batch(a.Controller.Close(ev.TabID), a.Controller.Sync(a.Session))
	case tabbar.EventRename:
		a.startRename(ev.TabID)
		return a, nil
	case tabbar.EventReorder:
		a.reorderTabs(ev.From, ev.To)
	}
	return a, a.Controller.Sync(a.Session)
}

// startRename opens the inline rename prompt seeded with the current
// name.
func (a *App) startRename(tabID string) {
	t := a.findTab(tabID)
	if t == nil {
		return
	}
	a.RenamingTabID = tabID
	a.RenameBuffer = t.Name
}

// drainCloseRequests converts close requests raised by exited surfaces
// (keypress-to-dismiss) into deferred closes.
func (a *App) drainCloseRequests() tea.Cmd {
	var cmds []tea.Cmd
	for _, tabID := range a.Controller.TakeCloseRequests() {
		if cmd := a.Controller.Close(tabID); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// surfaceSize is the terminal cell area left after the bar and status
// rows.
func (a *App) surfaceSize() (cols, rows int) {
	cols = max(a.Width, 1)
	chrome := 1 // tab bar
	if !a.HideStatusBar {
		chrome++
	}
	if a.SearchOpen {
		chrome++
	}
	rows = max(a.Height-chrome, 1)
	return cols, rows
}
