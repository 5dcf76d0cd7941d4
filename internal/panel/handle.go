package panel

import (
	"github.com/fraywing/termdock/internal/sessionid"
	"github.com/fraywing/termdock/internal/surface"
)

// The imperative handle: search, focus, and clear delegation to the active
// tab's surface. Every method is a no-op returning false when there is no
// active tab, so external callers (search bar, shortcut layer) never need
// nil checks.

// activeSurface resolves the active tab's surface, or nil.
func (c *Controller) activeSurface() *surface.Surface {
	if c.session == nil {
		return nil
	}
	active := c.session.Active()
	if active == nil {
		return nil
	}
	return c.surfaces[sessionid.Build(c.session.ID, active.ID)]
}

// FocusActive focuses the active tab's surface. Returns false when there
// is no active tab.
func (c *Controller) FocusActive() bool {
	s := c.activeSurface()
	if s == nil {
		return false
	}
	s.Focus()
	return true
}

// ClearActive clears the active tab's surface. Returns false when there is
// no active tab.
func (c *Controller) ClearActive() bool {
	s := c.activeSurface()
	if s == nil {
		return false
	}
	s.Clear()
	return true
}

// SearchActive runs a search on the active tab's surface. Returns false
// when there is no active tab or nothing matches.
func (c *Controller) SearchActive(query string) bool {
	s := c.activeSurface()
	if s == nil {
		return false
	}
	return s.Search(query)
}

// SearchNext advances the active tab's search. Returns false when there is
// no active tab or no active search.
func (c *Controller) SearchNext() bool {
	s := c.activeSurface()
	if s == nil {
		return false
	}
	return s.SearchNext()
}

// SearchPrevious steps the active tab's search backwards. Returns false
// when there is no active tab or no active search.
func (c *Controller) SearchPrevious() bool {
	s := c.activeSurface()
	if s == nil {
		return false
	}
	return s.SearchPrevious()
}

// MatchCountActive returns the number of matches of the active tab's
// search, or 0.
func (c *Controller) MatchCountActive() int {
	s := c.activeSurface()
	if s == nil {
		return 0
	}
	return s.MatchCount()
}

// CurrentMatchActive returns the selected match index of the active
// tab's search, or -1.
func (c *Controller) CurrentMatchActive() int {
	s := c.activeSurface()
	if s == nil {
		return -1
	}
	return s.CurrentMatch()
}

// ClearSearchActive drops the active tab's search, if any.
func (c *Controller) ClearSearchActive() {
	if s := c.activeSurface(); s != nil {
		s.ClearSearch()
	}
}

// KeyInputActive forwards keystrokes to the active tab's surface. Returns
// false when there is no active tab.
func (c *Controller) KeyInputActive(data []byte) bool {
	s := c.activeSurface()
	if s == nil {
		return false
	}
	s.KeyInput(data)
	return true
}

// ResizeAll propagates new terminal dimensions to every surface and every
// running PTY.
func (c *Controller) ResizeAll(cols, rows int) {
	c.cfg.Cols, c.cfg.Rows = cols, rows
	for comp, s := range c.surfaces {
		s.Resize(cols, rows)
		if c.spawnStates[comp] == SpawnSpawned {
			_ = c.gw.Resize(comp, cols, rows)
		}
	}
}
