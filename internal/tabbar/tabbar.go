// Package tabbar renders the tab strip and translates mouse gestures into
// intent events (select, close, rename, reorder, new tab). It never
// mutates tab state itself; the owner consumes the events.
package tabbar

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/fraywing/termdock/internal/config"
	"github.com/fraywing/termdock/internal/panel"
	"github.com/fraywing/termdock/internal/tab"
	"github.com/fraywing/termdock/internal/theme"
)

const (
	newTabButton = " + "
	closeGlyph   = "×"

	// collapsedWidth is the width a closing tab shrinks to.
	collapsedWidth = 2

	doubleClickWindow = 500 * time.Millisecond
)

// EventKind identifies a user intent raised by the bar.
type EventKind int

const (
	// EventNone means the gesture hit nothing actionable.
	EventNone EventKind = iota
	// EventSelect activates a tab.
	EventSelect
	// EventClose requests the deferred close sequence for a tab.
	EventClose
	// EventRename requests the rename flow for a tab.
	EventRename
	// EventNew requests a fresh tab.
	EventNew
	// EventReorder moves a tab from one index to another.
	EventReorder
)

// Event is one user intent. From and To are only meaningful for
// EventReorder.
type Event struct {
	Kind  EventKind
	TabID string
	From  int
	To    int
}

// itemPos is the horizontal extent of one rendered tab, recomputed on
// every Render and used for hit testing so clicks always match what is
// on screen.
type itemPos struct {
	tabID   string
	index   int
	startX  int
	endX    int
	closeX  int // -1 when the close affordance is not rendered
	closing bool
}

// Model is the tab bar state for one mounted panel.
type Model struct {
	width int

	tabs     []*tab.Tab
	activeID string

	// closing and spawnState are supplied by the owner each frame so the
	// bar can collapse closing tabs and color exited/failed ones.
	closing    func(tabID string) bool
	spawnState func(tabID string) panel.SpawnState

	items      []itemPos
	newTabX    int
	newTabEndX int

	lastClickTime time.Time
	lastClickID   string

	dragFromIndex int
	dragFromID    string
	dragging      bool
}

// New returns an empty tab bar.
func New() *Model {
	return &Model{dragFromIndex: -1, newTabX: -1}
}

// SetWidth sets the rendering width in cells.
func (m *Model) SetWidth(width int) { m.width = width }

// SetTabs replaces the rendered tab snapshot.
func (m *Model) SetTabs(tabs []*tab.Tab, activeID string) {
	m.tabs = tabs
	m.activeID = activeID
}

// SetClosingFunc wires the closing predicate, usually Controller.IsClosing.
func (m *Model) SetClosingFunc(fn func(tabID string) bool) { m.closing = fn }

// SetSpawnStateFunc wires the spawn state lookup, usually
// Controller.SpawnStateFor.
func (m *Model) SetSpawnStateFunc(fn func(tabID string) panel.SpawnState) { m.spawnState = fn }

// label returns the text shown inside a tab cell, truncated by display
// width with an ellipsis.
func label(t *tab.Tab, index int) string {
	name := tab.DisplayName(t, index)
	if ansi.StringWidth(name) <= config.MaxTabNameLength {
		return name
	}
	runes := []rune(name)
	for ansi.StringWidth(string(runes)) > config.MaxTabNameLength-1 && len(runes) > 0 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// stateGlyph returns a one-cell marker for exited and failed tabs.
func (m *Model) stateGlyph(t *tab.Tab) string {
	if m.spawnState == nil {
		return ""
	}
	switch m.spawnState(t.ID) {
	case panel.SpawnFailed:
		return "! "
	case panel.SpawnExited:
		return "✝ "
	default:
		return ""
	}
}

func (m *Model) labelStyle(t *tab.Tab, active bool) lipgloss.Style {
	s := lipgloss.NewStyle()
	if m.spawnState != nil {
		switch m.spawnState(t.ID) {
		case panel.SpawnFailed:
			return s.Foreground(theme.TabFailedFg())
		case panel.SpawnExited:
			return s.Foreground(theme.TabExitedFg())
		}
	}
	if active {
		return s.Foreground(theme.TabActiveFg()).Background(theme.TabActiveBg()).Bold(true)
	}
	return s.Foreground(theme.TabInactiveFg())
}

// isEntering reports whether the tab is young enough for its entrance
// animation. Disabled animations suppress it entirely.
func isEntering(t *tab.Tab) bool {
	if !config.AnimationsEnabled {
		return false
	}
	return time.Since(t.CreatedAt) < config.EntranceAnimationMaxAge
}

// Render draws the bar and records hit regions for the mouse handlers.
func (m *Model) Render() string {
	m.items = m.items[:0]
	m.newTabX, m.newTabEndX = -1, -1

	var b strings.Builder
	x := 0

	for i, t := range m.tabs {
		active := t.ID == m.activeID
		closing := m.closing != nil && m.closing(t.ID)

		var cell string
		closeX := -1

		if closing {
			// Collapsed: the tab shrinks to a sliver until the close
			// commits.
			cell = lipgloss.NewStyle().Foreground(theme.TabClosingFg()).Render(strings.Repeat("▏", collapsedWidth))
		} else {
			text := " " + m.stateGlyph(t) + label(t, i) + " "
			if isEntering(t) {
				text = "▸" + text
			}
			styled := m.labelStyle(t, active).Render(text)
			closeStyled := lipgloss.NewStyle().Foreground(theme.TabInactiveFg()).Render(closeGlyph + " ")
			closeX = x + ansi.StringWidth(text)
			cell = styled + closeStyled
		}

		w := lipgloss.Width(cell)
		m.items = append(m.items, itemPos{
			tabID:   t.ID,
			index:   i,
			startX:  x,
			endX:    x + w,
			closeX:  closeX,
			closing: closing,
		})
		b.WriteString(cell)
		x += w
	}

	button := lipgloss.NewStyle().Foreground(theme.TabActiveFg()).Render(newTabButton)
	m.newTabX = x
	m.newTabEndX = x + lipgloss.Width(button)
	b.WriteString(button)
	x = m.newTabEndX

	if m.width > x {
		b.WriteString(strings.Repeat(" ", m.width-x))
	}
	return b.String()
}

// hitTest returns the rendered item under x, or nil.
func (m *Model) hitTest(x int) *itemPos {
	for i := range m.items {
		if x >= m.items[i].startX && x < m.items[i].endX {
			return &m.items[i]
		}
	}
	return nil
}

// overNewTab reports whether x is on the new-tab button.
func (m *Model) overNewTab(x int) bool {
	return m.newTabX >= 0 && x >= m.newTabX && x < m.newTabEndX
}

// Click handles a primary-button press at bar-local x. Double clicks on
// the same tab within the click window become a rename request.
func (m *Model) Click(x int) Event {
	if m.overNewTab(x) {
		m.lastClickID = ""
		return Event{Kind: EventNew}
	}

	item := m.hitTest(x)
	if item == nil || item.closing {
		m.lastClickID = ""
		return Event{Kind: EventNone}
	}

	if item.closeX >= 0 && x >= item.closeX && x < item.endX {
		m.lastClickID = ""
		return Event{Kind: EventClose, TabID: item.tabID}
	}

	now := time.Now()
	if item.tabID == m.lastClickID && now.Sub(m.lastClickTime) <= doubleClickWindow {
		m.lastClickID = ""
		return Event{Kind: EventRename, TabID: item.tabID}
	}
	m.lastClickID = item.tabID
	m.lastClickTime = now

	// A primary click also arms a potential drag reorder.
	m.dragging = false
	m.dragFromIndex = item.index
	m.dragFromID = item.tabID

	return Event{Kind: EventSelect, TabID: item.tabID}
}

// MiddleClick closes the tab under x, matching the close affordance.
func (m *Model) MiddleClick(x int) Event {
	item := m.hitTest(x)
	if item == nil || item.closing {
		return Event{Kind: EventNone}
	}
	return Event{Kind: EventClose, TabID: item.tabID}
}

// Motion tracks a pressed-pointer move. Leaving the origin tab turns the
// armed click into a drag.
func (m *Model) Motion(x int) {
	if m.dragFromIndex < 0 {
		return
	}
	if item := m.hitTest(x); item == nil || item.tabID != m.dragFromID {
		m.dragging = true
	}
}

// Release ends a drag. Dropping on another tab yields a reorder; anything
// else is a no-op.
func (m *Model) Release(x int) Event {
	from := m.dragFromIndex
	wasDragging := m.dragging
	m.dragFromIndex = -1
	m.dragFromID = ""
	m.dragging = false

	if !wasDragging || from < 0 {
		return Event{Kind: EventNone}
	}
	item := m.hitTest(x)
	if item == nil || item.index == from {
		return Event{Kind: EventNone}
	}
	return Event{Kind: EventReorder, From: from, To: item.index}
}

// Dragging reports whether a reorder drag is in progress, for render
// feedback.
func (m *Model) Dragging() bool { return m.dragging }

// Describe returns a short accessibility line for logs and tests.
func Describe(t *tab.Tab, index int) string {
	return fmt.Sprintf("%s (#%d)", tab.DisplayName(t, index), index+1)
}
