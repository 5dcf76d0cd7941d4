package app

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/fraywing/termdock/internal/config"
	"github.com/fraywing/termdock/internal/tab"
)

func newTestApp() *App {
	return New(config.DefaultConfig())
}

func TestNewStartsWithOneActiveTab(t *testing.T) {
	a := newTestApp()

	if len(a.Session.Tabs) != 1 {
		t.Fatalf("tabs = %d, want 1", len(a.Session.Tabs))
	}
	if a.Session.Active() == nil {
		t.Error("initial tab should be active")
	}
}

func TestAddTabActivatesAndInheritsCwd(t *testing.T) {
	a := newTestApp()
	a.Session.Tabs[0].Cwd = "/somewhere"

	added := a.addTab()

	if a.Session.ActiveTerminalTabID != added.ID {
		t.Error("new tab should become active")
	}
	if added.Cwd != "/somewhere" {
		t.Errorf("cwd = %q, want inherited /somewhere", added.Cwd)
	}
	if len(a.Session.Tabs) != 2 {
		t.Errorf("tabs = %d, want 2", len(a.Session.Tabs))
	}
}

func TestRemoveTabMovesActivation(t *testing.T) {
	a := newTestApp()
	first := a.Session.Tabs[0]
	second := a.addTab()
	third := a.addTab()

	// Remove the middle tab while the last is active: activation stays.
	a.removeTab(second.ID)
	if a.Session.ActiveTerminalTabID != third.ID {
		t.Error("removing an inactive tab should not move activation")
	}

	// Remove the active last tab: activation falls back to the neighbour.
	a.removeTab(third.ID)
	if a.Session.ActiveTerminalTabID != first.ID {
		t.Errorf("active = %s, want %s", a.Session.ActiveTerminalTabID, first.ID)
	}

	// Remove the final tab: no active tab remains.
	a.removeTab(first.ID)
	if a.Session.ActiveTerminalTabID != "" || len(a.Session.Tabs) != 0 {
		t.Error("empty session should have no active tab")
	}
}

func TestRemoveTabRecordsHistory(t *testing.T) {
	a := newTestApp()
	a.Session.Tabs[0].Name = "work"
	a.Session.Tabs[0].Cwd = "/repo"
	id := a.Session.Tabs[0].ID

	a.removeTab(id)

	closed, ok := a.History.PopLast()
	if !ok {
		t.Fatal("close should record history")
	}
	if closed.ID != id || closed.Name != "work" || closed.Cwd != "/repo" || closed.Index != 0 {
		t.Errorf("closed record = %+v", closed)
	}
}

func TestReopenClosedRestoresTab(t *testing.T) {
	a := newTestApp()
	a.addTab()
	target := a.Session.Tabs[0]
	target.Name = "db"
	target.Cwd = "/db"
	oldID := target.ID

	a.removeTab(oldID)
	a.reopenClosed()

	if len(a.Session.Tabs) != 2 {
		t.Fatalf("tabs = %d, want 2", len(a.Session.Tabs))
	}
	reopened := a.Session.Tabs[0]
	if reopened.Name != "db" || reopened.Cwd != "/db" {
		t.Errorf("reopened tab = %+v, want name/cwd restored at old index", reopened)
	}
	if reopened.ID == oldID {
		t.Error("reopened tab must have a fresh identity")
	}
	if reopened.Pid != 0 || reopened.State != tab.StateIdle {
		t.Error("reopened tab should start idle and unspawned")
	}
	if a.Session.ActiveTerminalTabID != reopened.ID {
		t.Error("reopened tab should become active")
	}
}

func TestReopenWithEmptyHistoryIsNoop(t *testing.T) {
	a := newTestApp()
	a.reopenClosed()
	if len(a.Session.Tabs) != 1 {
		t.Errorf("tabs = %d, want 1", len(a.Session.Tabs))
	}
}

func TestReorderTabs(t *testing.T) {
	a := newTestApp()
	b := a.addTab()
	c := a.addTab()
	first := a.Session.Tabs[0]

	a.reorderTabs(0, 2)

	want := []string{b.ID, c.ID, first.ID}
	for i, id := range want {
		if a.Session.Tabs[i].ID != id {
			t.Fatalf("tab[%d] = %s, want %s", i, a.Session.Tabs[i].ID, id)
		}
	}

	// Out of range moves are ignored.
	a.reorderTabs(0, 7)
	a.reorderTabs(-1, 1)
	for i, id := range want {
		if a.Session.Tabs[i].ID != id {
			t.Fatalf("invalid reorder changed order at %d", i)
		}
	}
}

func TestCycleTabWraps(t *testing.T) {
	a := newTestApp()
	first := a.Session.Tabs[0]
	second := a.addTab()

	a.cycleTab(1)
	if a.Session.ActiveTerminalTabID != first.ID {
		t.Error("cycle forward from last should wrap to first")
	}
	a.cycleTab(-1)
	if a.Session.ActiveTerminalTabID != second.ID {
		t.Error("cycle backward from first should wrap to last")
	}
}

func TestRetryTabOnlyResetsExited(t *testing.T) {
	a := newTestApp()
	tb := a.Session.Tabs[0]

	tb.Pid = 42
	a.retryTab(tb.ID)
	if tb.Pid != 42 {
		t.Error("retry should not touch a running tab")
	}

	tb.State = tab.StateExited
	tb.ExitCode = -1
	tb.Pid = 0
	a.retryTab(tb.ID)
	if tb.State != tab.StateIdle || tb.ExitCode != 0 || tb.Pid != 0 {
		t.Errorf("retry left tab at %+v, want idle/0/0", tb)
	}
}

func TestRenameFlow(t *testing.T) {
	a := newTestApp()
	tb := a.Session.Tabs[0]
	a.startRename(tb.ID)

	for _, r := range "logs" {
		a.handleKey(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	a.handleKey(tea.KeyPressMsg{Code: tea.KeyBackspace})
	a.handleKey(tea.KeyPressMsg{Code: tea.KeyEnter})

	if tb.Name != "log" {
		t.Errorf("name = %q, want log", tb.Name)
	}
	if a.RenamingTabID != "" {
		t.Error("rename prompt should close on enter")
	}
}

func TestRenameEscCancels(t *testing.T) {
	a := newTestApp()
	tb := a.Session.Tabs[0]
	tb.Name = "keep"
	a.startRename(tb.ID)
	a.handleKey(tea.KeyPressMsg{Code: 'x', Text: "x"})
	a.handleKey(tea.KeyPressMsg{Code: tea.KeyEscape})

	if tb.Name != "keep" {
		t.Errorf("name = %q, want unchanged", tb.Name)
	}
}

func TestEncodeKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		want string
	}{
		{"plain text", tea.KeyPressMsg{Code: 'a', Text: "a"}, "a"},
		{"enter", tea.KeyPressMsg{Code: tea.KeyEnter}, "\r"},
		{"tab", tea.KeyPressMsg{Code: tea.KeyTab}, "\t"},
		{"backspace", tea.KeyPressMsg{Code: tea.KeyBackspace}, "\x7f"},
		{"up arrow", tea.KeyPressMsg{Code: tea.KeyUp}, "\x1b[A"},
		{"ctrl+c", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, "\x03"},
		{"page down", tea.KeyPressMsg{Code: tea.KeyPgDown}, "\x1b[6~"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(encodeKey(tc.msg)); got != tc.want {
				t.Errorf("encodeKey = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLogRingCaps(t *testing.T) {
	a := newTestApp()
	for i := range config.MaxLogMessages + 25 {
		a.LogInfo("entry %d", i)
	}
	if len(a.LogMessages) != config.MaxLogMessages {
		t.Errorf("log ring = %d entries, want %d", len(a.LogMessages), config.MaxLogMessages)
	}
	last := a.LogMessages[len(a.LogMessages)-1]
	if want := fmt.Sprintf("entry %d", config.MaxLogMessages+24); last.Message != want {
		t.Errorf("newest entry = %q, want %q", last.Message, want)
	}
}
