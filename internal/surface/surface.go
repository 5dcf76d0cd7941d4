package surface

import (
	"strings"
	"sync"

	"github.com/fraywing/termdock/internal/config"
)

// Callbacks are the signals a surface bubbles up to its owner.
type Callbacks struct {
	// OnData receives user keystrokes destined for the PTY.
	OnData func(data []byte)

	// OnCloseRequest fires when the user asks to dismiss the surface, e.g.
	// a keypress after the shell already exited.
	OnCloseRequest func()

	// OnFocus and OnBlur track the focus ring.
	OnFocus func()
	OnBlur  func()

	// OnTitleChange reports terminal title updates.
	OnTitleChange func(title string)
}

// Surface binds one composite session id to one engine instance plus the
// raw output ring. It stays mounted while its tab is hidden.
type Surface struct {
	// SessionID is the composite id this surface renders.
	SessionID string

	engine Engine
	raw    *Buffer
	cb     Callbacks

	mu      sync.Mutex
	visible bool
	focused bool
	exited  bool
	title   string

	searchQuery   string
	searchMatches []int
	searchCurrent int
}

// New creates a surface for the session id using the given engine. A nil
// engine gets a LineEngine with the configured scrollback.
func New(sessionID string, engine Engine, cb Callbacks) *Surface {
	if engine == nil {
		engine = NewLineEngine(config.ScrollbackLines)
	}
	return &Surface{
		SessionID: sessionID,
		engine:    engine,
		raw:       NewBuffer(config.RawBufferSize),
		cb:        cb,
	}
}

// HandleOutput feeds PTY output into the engine and the raw ring.
func (s *Surface) HandleOutput(chunk []byte) {
	_, _ = s.raw.Write(chunk)
	_, _ = s.engine.Write(chunk)
}

// KeyInput forwards user keystrokes to the owner. After the shell exits, a
// keypress becomes a close request instead.
func (s *Surface) KeyInput(data []byte) {
	s.mu.Lock()
	exited := s.exited
	s.mu.Unlock()

	if exited {
		if s.cb.OnCloseRequest != nil {
			s.cb.OnCloseRequest()
		}
		return
	}
	if s.cb.OnData != nil {
		s.cb.OnData(data)
	}
}

// SetExited marks the surface's shell as terminated.
func (s *Surface) SetExited(exited bool) {
	s.mu.Lock()
	s.exited = exited
	s.mu.Unlock()
}

// Focus marks the surface focused and fires OnFocus.
func (s *Surface) Focus() {
	s.mu.Lock()
	was := s.focused
	s.focused = true
	s.mu.Unlock()
	if !was && s.cb.OnFocus != nil {
		s.cb.OnFocus()
	}
}

// Blur clears focus and fires OnBlur.
func (s *Surface) Blur() {
	s.mu.Lock()
	was := s.focused
	s.focused = false
	s.mu.Unlock()
	if was && s.cb.OnBlur != nil {
		s.cb.OnBlur()
	}
}

// Focused reports the focus-ring boolean.
func (s *Surface) Focused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// SetVisible toggles whether the surface is the one shown. Hidden surfaces
// keep their engine and buffers alive.
func (s *Surface) SetVisible(v bool) {
	s.mu.Lock()
	s.visible = v
	s.mu.Unlock()
}

// Visible reports whether the surface is currently shown.
func (s *Surface) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Clear wipes the engine's screen and the raw ring.
func (s *Surface) Clear() {
	s.engine.Clear()
	s.raw.Reset()
}

// Resize forwards new dimensions to the engine.
func (s *Surface) Resize(cols, rows int) {
	s.engine.Resize(cols, rows)
}

// View renders the last rows lines of the surface.
func (s *Surface) View(rows int) string {
	return s.engine.View(rows)
}

// Title returns the last reported terminal title.
func (s *Surface) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// SetTitle records a terminal title update and fires OnTitleChange.
func (s *Surface) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
	if s.cb.OnTitleChange != nil {
		s.cb.OnTitleChange(title)
	}
}

// Search finds case-insensitive matches for query in the scrollback and
// selects the most recent one. Returns false when nothing matches.
func (s *Surface) Search(query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchQuery = query
	s.searchMatches = s.searchMatches[:0]
	if query == "" {
		return false
	}

	needle := strings.ToLower(query)
	for i, line := range s.engine.Lines() {
		if strings.Contains(strings.ToLower(line), needle) {
			s.searchMatches = append(s.searchMatches, i)
		}
	}
	if len(s.searchMatches) == 0 {
		return false
	}
	s.searchCurrent = len(s.searchMatches) - 1
	return true
}

// SearchNext advances to the next match, wrapping. Returns false when no
// search is active.
func (s *Surface) SearchNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.searchMatches) == 0 {
		return false
	}
	s.searchCurrent = (s.searchCurrent + 1) % len(s.searchMatches)
	return true
}

// SearchPrevious steps back to the previous match, wrapping. Returns false
// when no search is active.
func (s *Surface) SearchPrevious() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.searchMatches) == 0 {
		return false
	}
	s.searchCurrent--
	if s.searchCurrent < 0 {
		s.searchCurrent = len(s.searchMatches) - 1
	}
	return true
}

// ClearSearch drops the active search.
func (s *Surface) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = ""
	s.searchMatches = s.searchMatches[:0]
	s.searchCurrent = 0
}

// CurrentMatch returns the scrollback line index of the selected match,
// or -1 when no search is active.
func (s *Surface) CurrentMatch() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.searchMatches) == 0 {
		return -1
	}
	return s.searchMatches[s.searchCurrent]
}

// MatchCount returns how many scrollback lines match the active search.
func (s *Surface) MatchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.searchMatches)
}

// RawBytes returns a copy of the recent raw output, for selection export.
func (s *Surface) RawBytes() []byte {
	return s.raw.Bytes()
}

// Selection returns the text of the currently selected search match line.
// Without an active search it returns the empty string.
func (s *Surface) Selection() string {
	idx := s.CurrentMatch()
	if idx < 0 {
		return ""
	}
	lines := s.engine.Lines()
	if idx >= len(lines) {
		return ""
	}
	return lines[idx]
}
