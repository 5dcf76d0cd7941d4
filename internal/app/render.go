package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fraywing/termdock/internal/panel"
	"github.com/fraywing/termdock/internal/tab"
	"github.com/fraywing/termdock/internal/theme"
)

// View renders the full frame: tab bar, surface area, optional search
// bar, and the status line. The log overlay replaces the surface area
// when open.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if a.Width == 0 || a.Height == 0 {
		view.SetContent("")
		return view
	}

	a.Bar.SetTabs(a.Session.Tabs, a.Session.ActiveTerminalTabID)
	a.Bar.SetWidth(a.Width)

	var b strings.Builder
	b.WriteString(a.Bar.Render())
	b.WriteByte('\n')

	_, rows := a.surfaceSize()
	if a.ShowLogs {
		b.WriteString(a.renderLogs(rows))
	} else {
		b.WriteString(a.renderBody(rows))
	}

	if a.SearchOpen {
		b.WriteByte('\n')
		b.WriteString(a.renderSearchBar())
	}
	if !a.HideStatusBar {
		b.WriteByte('\n')
		b.WriteString(a.renderStatusBar())
	}

	view.SetContent(b.String())
	return view
}

// renderBody draws the active tab's surface, or the appropriate empty,
// failure, or exit affordance.
func (a *App) renderBody(rows int) string {
	active := a.Session.Active()
	if active == nil {
		return a.centered(rows,
			lipgloss.NewStyle().Foreground(theme.PlaceholderFg()).
				Render("No open tabs. Press "+a.Keys.NewTab+" to open one."))
	}

	switch a.Controller.SpawnStateFor(active.ID) {
	case panel.SpawnFailed:
		msg := "Shell failed to start."
		if active.ExitCode == tab.ExitCodeSpawnError {
			msg = "Shell could not be spawned."
		}
		return a.centered(rows,
			lipgloss.NewStyle().Foreground(theme.ErrorAffordanceFg()).Render(msg)+
				"\n"+
				lipgloss.NewStyle().Foreground(theme.PlaceholderFg()).
					Render("Press "+a.Keys.RetryTab+" to retry or "+a.Keys.CloseTab+" to close."))
	case panel.SpawnExited:
		s := a.Controller.Surface(active.ID)
		if s == nil {
			return a.pad("", rows)
		}
		notice := lipgloss.NewStyle().Foreground(theme.TabExitedFg()).
			Render(fmt.Sprintf("[process exited with code %d, press any key to close]", active.ExitCode))
		return a.pad(s.View(rows-1)+"\n"+notice, rows)
	}

	s := a.Controller.Surface(active.ID)
	if s == nil {
		return a.pad("", rows)
	}
	return a.pad(s.View(rows), rows)
}

// renderLogs draws the debug log overlay.
func (a *App) renderLogs(rows int) string {
	title := lipgloss.NewStyle().Foreground(theme.LogViewerTitle()).Bold(true).Render("Debug Logs")
	hint := lipgloss.NewStyle().Foreground(theme.PlaceholderFg()).
		Render("esc close · up/down scroll · home/end jump")

	perPage := a.logsPerPage()
	start := min(a.LogScrollOffset, a.maxLogScroll())
	end := min(start+perPage, len(a.LogMessages))

	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')
	for _, msg := range a.LogMessages[start:end] {
		var levelStyle lipgloss.Style
		switch msg.Level {
		case "ERROR":
			levelStyle = lipgloss.NewStyle().Foreground(theme.LogViewerError())
		case "WARN":
			levelStyle = lipgloss.NewStyle().Foreground(theme.LogViewerWarn())
		default:
			levelStyle = lipgloss.NewStyle().Foreground(theme.LogViewerInfo())
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			msg.Time.Format("15:04:05"),
			levelStyle.Render(fmt.Sprintf("%-5s", msg.Level)),
			msg.Message))
	}
	b.WriteString(hint)

	return a.pad(b.String(), rows)
}

// renderSearchBar draws the search input with the current match position.
func (a *App) renderSearchBar() string {
	style := lipgloss.NewStyle().
		Foreground(theme.SearchBarFg()).
		Background(theme.SearchBarBg())

	status := ""
	if n := a.Controller.MatchCountActive(); n > 0 {
		status = fmt.Sprintf(" [%d/%d]", a.Controller.CurrentMatchActive()+1, n)
	}
	line := " Search: " + a.SearchBuffer + "_" + status + " "
	return style.Render(line)
}

// renderStatusBar draws tab count, system stats, and the rename prompt
// when one is active.
func (a *App) renderStatusBar() string {
	style := lipgloss.NewStyle().
		Foreground(theme.StatusBarFg()).
		Background(theme.StatusBarBg()).
		Width(a.Width)

	if a.RenamingTabID != "" {
		return style.Render(" Rename: " + a.RenameBuffer + "_ (enter to confirm, esc to cancel)")
	}

	left := fmt.Sprintf(" %d tab(s)", len(a.Session.Tabs))
	if active := a.Session.Active(); active != nil && active.Pid > 0 {
		left += fmt.Sprintf(" · pid %d", active.Pid)
	}
	right := fmt.Sprintf("cpu %.1f%% · mem %.0f MB ", a.cpuPercent, a.ramMB)

	gap := a.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return style.Render(left)
	}
	return style.Render(left + strings.Repeat(" ", gap) + right)
}

// pad bottom-fills content to exactly rows lines.
func (a *App) pad(content string, rows int) string {
	lines := strings.Split(content, "\n")
	if len(lines) >= rows {
		return strings.Join(lines[:rows], "\n")
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// centered vertically centers a short message block.
func (a *App) centered(rows int, content string) string {
	lines := strings.Split(content, "\n")
	top := max((rows-len(lines))/2, 0)
	var b strings.Builder
	for range top {
		b.WriteByte('\n')
	}
	b.WriteString(content)
	return a.pad(b.String(), rows)
}
