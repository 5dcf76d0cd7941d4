package tabbar

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/fraywing/termdock/internal/config"
	"github.com/fraywing/termdock/internal/panel"
	"github.com/fraywing/termdock/internal/tab"
)

// aged returns a tab old enough that the entrance animation is over.
func aged(name string) *tab.Tab {
	t := tab.New("", name)
	t.CreatedAt = time.Now().Add(-time.Second)
	return t
}

func newBar(tabs ...*tab.Tab) *Model {
	m := New()
	m.SetWidth(120)
	active := ""
	if len(tabs) > 0 {
		active = tabs[0].ID
	}
	m.SetTabs(tabs, active)
	return m
}

func TestLabelTruncation(t *testing.T) {
	tests := []struct {
		name  string
		tab   *tab.Tab
		index int
		want  string
	}{
		{"custom name", aged("build"), 0, "build"},
		{"positional fallback", aged(""), 2, "Terminal 3"},
		{"truncated", aged("a really long tab name that overflows"), 0, "a really long tab n…"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := label(tc.tab, tc.index)
			if got != tc.want {
				t.Errorf("label = %q, want %q", got, tc.want)
			}
			if w := ansi.StringWidth(got); w > config.MaxTabNameLength {
				t.Errorf("label width = %d, want <= %d", w, config.MaxTabNameLength)
			}
		})
	}
}

func TestClickSelectsTab(t *testing.T) {
	a, b := aged("one"), aged("two")
	m := newBar(a, b)
	m.Render()

	ev := m.Click(m.items[1].startX + 1)
	if ev.Kind != EventSelect || ev.TabID != b.ID {
		t.Errorf("event = %+v, want select %s", ev, b.ID)
	}
}

func TestClickCloseAffordance(t *testing.T) {
	a := aged("one")
	m := newBar(a)
	m.Render()

	ev := m.Click(m.items[0].closeX)
	if ev.Kind != EventClose || ev.TabID != a.ID {
		t.Errorf("event = %+v, want close %s", ev, a.ID)
	}
}

func TestMiddleClickCloses(t *testing.T) {
	a := aged("one")
	m := newBar(a)
	m.Render()

	ev := m.MiddleClick(m.items[0].startX)
	if ev.Kind != EventClose || ev.TabID != a.ID {
		t.Errorf("event = %+v, want close %s", ev, a.ID)
	}
}

func TestNewTabButton(t *testing.T) {
	m := newBar(aged("one"))
	m.Render()

	if ev := m.Click(m.newTabX); ev.Kind != EventNew {
		t.Errorf("event = %+v, want new tab", ev)
	}
}

func TestClickPastEndIsNothing(t *testing.T) {
	m := newBar(aged("one"))
	m.Render()

	if ev := m.Click(m.newTabEndX + 5); ev.Kind != EventNone {
		t.Errorf("event = %+v, want none", ev)
	}
}

func TestDoubleClickRenames(t *testing.T) {
	a := aged("one")
	m := newBar(a)
	m.Render()

	if ev := m.Click(m.items[0].startX); ev.Kind != EventSelect {
		t.Fatalf("first click = %+v, want select", ev)
	}
	ev := m.Click(m.items[0].startX)
	if ev.Kind != EventRename || ev.TabID != a.ID {
		t.Errorf("second click = %+v, want rename %s", ev, a.ID)
	}

	// The pair consumed the click memory; a third click is a fresh select.
	if ev := m.Click(m.items[0].startX); ev.Kind != EventSelect {
		t.Errorf("third click = %+v, want select", ev)
	}
}

func TestDoubleClickExpires(t *testing.T) {
	a := aged("one")
	m := newBar(a)
	m.Render()

	m.Click(m.items[0].startX)
	m.lastClickTime = time.Now().Add(-time.Second)

	if ev := m.Click(m.items[0].startX); ev.Kind != EventSelect {
		t.Errorf("stale second click = %+v, want select", ev)
	}
}

func TestDragReorder(t *testing.T) {
	a, b, c := aged("one"), aged("two"), aged("three")
	m := newBar(a, b, c)
	m.Render()

	m.Click(m.items[0].startX)
	m.Motion(m.items[2].startX)
	if !m.Dragging() {
		t.Fatal("motion off the origin tab should start a drag")
	}

	ev := m.Release(m.items[2].startX)
	if ev.Kind != EventReorder || ev.From != 0 || ev.To != 2 {
		t.Errorf("event = %+v, want reorder 0 -> 2", ev)
	}
}

func TestReleaseWithoutDragIsNothing(t *testing.T) {
	a, b := aged("one"), aged("two")
	m := newBar(a, b)
	m.Render()

	m.Click(m.items[0].startX)
	if ev := m.Release(m.items[0].startX); ev.Kind != EventNone {
		t.Errorf("release in place = %+v, want none", ev)
	}
}

func TestClosingTabCollapses(t *testing.T) {
	a, b := aged("one"), aged("two")
	m := newBar(a, b)
	m.SetClosingFunc(func(id string) bool { return id == a.ID })
	m.Render()

	if got := m.items[0].endX - m.items[0].startX; got != collapsedWidth {
		t.Errorf("closing tab width = %d, want %d", got, collapsedWidth)
	}
	// Clicks on a collapsing tab are inert.
	if ev := m.Click(m.items[0].startX); ev.Kind != EventNone {
		t.Errorf("click on closing tab = %+v, want none", ev)
	}
	if ev := m.MiddleClick(m.items[0].startX); ev.Kind != EventNone {
		t.Errorf("middle click on closing tab = %+v, want none", ev)
	}
}

func TestEntranceAnimationWindow(t *testing.T) {
	defer func(prev bool) { config.AnimationsEnabled = prev }(config.AnimationsEnabled)

	fresh := tab.New("", "new")
	old := aged("old")

	config.AnimationsEnabled = true
	if !isEntering(fresh) {
		t.Error("freshly created tab should animate in")
	}
	if isEntering(old) {
		t.Error("aged tab should not animate")
	}

	config.AnimationsEnabled = false
	if isEntering(fresh) {
		t.Error("animations disabled should suppress the entrance")
	}
}

func TestStateGlyphs(t *testing.T) {
	a, b, c := aged("ok"), aged("dead"), aged("broken")
	m := newBar(a, b, c)
	states := map[string]panel.SpawnState{
		a.ID: panel.SpawnSpawned,
		b.ID: panel.SpawnExited,
		c.ID: panel.SpawnFailed,
	}
	m.SetSpawnStateFunc(func(id string) panel.SpawnState { return states[id] })

	if g := m.stateGlyph(a); g != "" {
		t.Errorf("running tab glyph = %q, want empty", g)
	}
	if g := m.stateGlyph(b); g == "" {
		t.Error("exited tab should carry a glyph")
	}
	if g := m.stateGlyph(c); g == "" {
		t.Error("failed tab should carry a glyph")
	}
}

func TestRenderPadsToWidth(t *testing.T) {
	m := newBar(aged("one"))
	m.SetWidth(60)
	out := m.Render()

	if w := ansi.StringWidth(out); w != 60 {
		t.Errorf("rendered width = %d, want 60", w)
	}
}
