package surface_test

import (
	"testing"

	"github.com/fraywing/termdock/internal/surface"
	"github.com/fraywing/termdock/internal/testutil"
)

func newTestSurface(cb surface.Callbacks) *surface.Surface {
	return surface.New("s1-terminal-t1", surface.NewLineEngine(100), cb)
}

func TestSurface_KeyInputForwards(t *testing.T) {
	var got []byte
	s := newTestSurface(surface.Callbacks{
		OnData: func(data []byte) { got = data },
	})

	s.KeyInput([]byte("ls\r"))
	if string(got) != "ls\r" {
		t.Errorf("OnData got %q, want ls\\r", got)
	}
}

func TestSurface_KeyInputAfterExitRequestsClose(t *testing.T) {
	var dataCalls, closeCalls int
	s := newTestSurface(surface.Callbacks{
		OnData:         func([]byte) { dataCalls++ },
		OnCloseRequest: func() { closeCalls++ },
	})

	s.SetExited(true)
	s.KeyInput([]byte("q"))

	if dataCalls != 0 {
		t.Errorf("OnData called %d times after exit, want 0", dataCalls)
	}
	if closeCalls != 1 {
		t.Errorf("OnCloseRequest called %d times, want 1", closeCalls)
	}
}

func TestSurface_FocusRing(t *testing.T) {
	var focus, blur int
	s := newTestSurface(surface.Callbacks{
		OnFocus: func() { focus++ },
		OnBlur:  func() { blur++ },
	})

	// Focus is edge triggered: repeated Focus fires once.
	s.Focus()
	s.Focus()
	if !s.Focused() || focus != 1 {
		t.Errorf("focused=%v focus calls=%d, want true/1", s.Focused(), focus)
	}

	s.Blur()
	s.Blur()
	if s.Focused() || blur != 1 {
		t.Errorf("focused=%v blur calls=%d, want false/1", s.Focused(), blur)
	}
}

func TestSurface_HiddenKeepsOutput(t *testing.T) {
	s := newTestSurface(surface.Callbacks{})
	s.SetVisible(false)

	s.HandleOutput([]byte("background output\n"))

	if s.View(10) != "background output" {
		t.Errorf("hidden surface lost output: %q", s.View(10))
	}
}

func TestSurface_Search(t *testing.T) {
	s := newTestSurface(surface.Callbacks{})
	s.HandleOutput([]byte("error: one\nok\nerror: two\n"))

	if !s.Search("ERROR") {
		t.Fatal("case-insensitive search should match")
	}
	if s.MatchCount() != 2 {
		t.Errorf("MatchCount = %d, want 2", s.MatchCount())
	}
	// Most recent match is selected first.
	if s.CurrentMatch() != 2 {
		t.Errorf("CurrentMatch = %d, want 2", s.CurrentMatch())
	}

	if !s.SearchPrevious() || s.CurrentMatch() != 0 {
		t.Errorf("SearchPrevious landed on %d, want 0", s.CurrentMatch())
	}
	// Wrap around.
	if !s.SearchPrevious() || s.CurrentMatch() != 2 {
		t.Errorf("SearchPrevious wrap landed on %d, want 2", s.CurrentMatch())
	}
	if !s.SearchNext() || s.CurrentMatch() != 0 {
		t.Errorf("SearchNext wrap landed on %d, want 0", s.CurrentMatch())
	}

	if got := s.Selection(); got != "error: one" {
		t.Errorf("Selection = %q, want matched line", got)
	}

	s.ClearSearch()
	if s.SearchNext() || s.SearchPrevious() || s.MatchCount() != 0 {
		t.Error("search navigation should be inert after ClearSearch")
	}
}

func TestSurface_SearchNoMatch(t *testing.T) {
	s := newTestSurface(surface.Callbacks{})
	s.HandleOutput([]byte("hello\n"))

	if s.Search("absent") {
		t.Error("Search should report false for no matches")
	}
	if s.CurrentMatch() != -1 {
		t.Errorf("CurrentMatch = %d, want -1", s.CurrentMatch())
	}
}

func TestSurface_SearchIgnoresStyling(t *testing.T) {
	s := newTestSurface(surface.Callbacks{})
	s.HandleOutput(testutil.NewANSIBuilder().
		FgColor(31).
		Text("fatal: broken").
		Reset().
		Newline().
		Bytes())

	if !s.Search("fatal: broken") {
		t.Error("search should match text regardless of color codes")
	}
}

func TestSurface_TitleChange(t *testing.T) {
	var got string
	s := newTestSurface(surface.Callbacks{
		OnTitleChange: func(title string) { got = title },
	})

	s.SetTitle("vim README.md")
	if got != "vim README.md" || s.Title() != "vim README.md" {
		t.Errorf("title = %q / callback %q", s.Title(), got)
	}
}

func TestSurface_Clear(t *testing.T) {
	s := newTestSurface(surface.Callbacks{})
	s.HandleOutput([]byte("old\n"))
	s.Clear()

	if s.View(10) != "" {
		t.Errorf("View after clear = %q, want empty", s.View(10))
	}
	if len(s.RawBytes()) != 0 {
		t.Error("raw ring should be empty after clear")
	}
}
