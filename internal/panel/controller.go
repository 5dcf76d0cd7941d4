// Package panel implements the terminal view controller: the per-tab PTY
// spawn state machine, exit routing by composite session id, deferred tab
// close, and the imperative handle over the active tab's surface.
//
// The controller runs entirely on the bubbletea program loop. Gateway
// goroutines hand events over through channels drained by re-arming
// commands, so controller state needs no locking.
package panel

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/fraywing/termdock/internal/config"
	"github.com/fraywing/termdock/internal/gateway"
	"github.com/fraywing/termdock/internal/sessionid"
	"github.com/fraywing/termdock/internal/surface"
	"github.com/fraywing/termdock/internal/tab"
)

// SpawnState is the controller's explicit per-tab spawn lifecycle, keyed
// by composite session id.
type SpawnState int

const (
	// SpawnIdle means no spawn has been attempted for this composite id,
	// or the tab was re-armed for a retry.
	SpawnIdle SpawnState = iota

	// SpawnSpawning means a spawn is in flight. Set before the async call
	// is issued so rapid re-syncs cannot double spawn.
	SpawnSpawning

	// SpawnSpawned means the gateway reported a running shell.
	SpawnSpawned

	// SpawnFailed means the spawn settled unsuccessfully.
	SpawnFailed

	// SpawnExited means the shell terminated. An exit observed while the
	// spawn is still in flight lands here and stays here.
	SpawnExited
)

// String returns a short label for logs.
func (s SpawnState) String() string {
	switch s {
	case SpawnIdle:
		return "idle"
	case SpawnSpawning:
		return "spawning"
	case SpawnSpawned:
		return "spawned"
	case SpawnFailed:
		return "failed"
	case SpawnExited:
		return "exited"
	default:
		return "unknown"
	}
}

// OwnerCallbacks are how the controller requests state changes from
// whoever owns the session. The controller never mutates the session
// snapshot in place.
type OwnerCallbacks struct {
	OnTabSelect  func(tabID string)
	OnTabClose   func(tabID string)
	OnNewTab     func()
	OnTabRename  func(tabID, name string)
	OnTabReorder func(from, to int)

	// OnTabStateChange reports a lifecycle transition. exitCode is
	// meaningful only when state is tab.StateExited.
	OnTabStateChange func(tabID string, state tab.State, exitCode int)
	OnTabPidChange   func(tabID string, pid int)
	OnTabCwdChange   func(tabID, cwd string)
}

// SpawnConfig carries the shell settings every spawn request uses.
type SpawnConfig struct {
	Shell     string
	ShellArgs []string
	ShellEnv  map[string]string
	Cols      int
	Rows      int
}

// closeLatch is the single-fire guard for one tab's deferred close. The
// animation-done signal and the fallback timer race; the first one to
// arrive commits the close, the other becomes a no-op.
type closeLatch struct {
	fired bool
}

// Controller owns the spawn state machine for one mounted panel instance.
// All of its maps are per mount, never shared between instances.
type Controller struct {
	gw  gateway.Gateway
	cb  OwnerCallbacks
	cfg SpawnConfig

	session *tab.Session

	spawnStates map[string]SpawnState
	generations map[string]uint64
	killed      map[string]bool
	surfaces    map[string]*surface.Surface
	closing     map[string]*closeLatch

	exitCh chan ExitMsg
	rawCh  chan RawDataMsg

	// closeRequests collects tab ids whose surfaces asked to be
	// dismissed. Drained by TakeCloseRequests on the loop.
	closeRequests []string

	unsubExit func()
	unsubRaw  func()

	shutdown bool
}

// New creates a controller over the gateway and subscribes to its event
// streams. The owner must drain ExitEvents and RawData via the listener
// commands.
func New(gw gateway.Gateway, cb OwnerCallbacks, cfg SpawnConfig) *Controller {
	c := &Controller{
		gw:          gw,
		cb:          cb,
		cfg:         cfg,
		spawnStates: make(map[string]SpawnState),
		generations: make(map[string]uint64),
		killed:      make(map[string]bool),
		surfaces:    make(map[string]*surface.Surface),
		closing:     make(map[string]*closeLatch),
		exitCh:      make(chan ExitMsg, config.ExitChannelBuffer),
		rawCh:       make(chan RawDataMsg, config.ExitChannelBuffer*16),
	}

	c.unsubExit = gw.OnExit(func(sessionID string, exitCode int) {
		select {
		case c.exitCh <- ExitMsg{SessionID: sessionID, ExitCode: exitCode}:
		default:
		}
	})
	c.unsubRaw = gw.OnRawData(func(sessionID string, chunk []byte) {
		select {
		case c.rawCh <- RawDataMsg{SessionID: sessionID, Chunk: chunk}:
		default:
		}
	})

	return c
}

// ExitEvents is the channel ListenForExits drains.
func (c *Controller) ExitEvents() <-chan ExitMsg { return c.exitCh }

// RawData is the channel ListenForRawData drains.
func (c *Controller) RawData() <-chan RawDataMsg { return c.rawCh }

// Sync applies a session snapshot: creates surfaces for new tabs, retires
// state for removed tabs, re-arms retried tabs, and decides whether the
// active tab needs a spawn. The returned command, when non-nil, performs
// the spawn off the loop and resolves to a SpawnResultMsg.
func (c *Controller) Sync(session *tab.Session) tea.Cmd {
	if c.shutdown || session == nil {
		return nil
	}
	c.session = session

	live := make(map[string]bool, len(session.Tabs))
	for _, t := range session.Tabs {
		live[sessionid.Build(session.ID, t.ID)] = true
	}

	// Tabs removed from the session: kill anything still tracked, retire
	// the surface, and invalidate in-flight spawns.
	for comp := range c.spawnStates {
		if live[comp] {
			continue
		}
		c.killTracked(comp)
		c.generations[comp]++
		delete(c.spawnStates, comp)
		delete(c.surfaces, comp)
	}

	for _, t := range session.Tabs {
		comp := sessionid.Build(session.ID, t.ID)

		if _, ok := c.surfaces[comp]; !ok {
			c.surfaces[comp] = c.newSurface(comp, t.ID)
		}

		// Retry re-arm: the owner reset a failed or exited tab back to
		// idle with pid 0, making it eligible to spawn again. Bump the
		// generation so a stale in-flight result cannot land afterwards.
		st := c.spawnStates[comp]
		if (st == SpawnFailed || st == SpawnExited) && t.State == tab.StateIdle && t.Pid == 0 {
			c.spawnStates[comp] = SpawnIdle
			c.generations[comp]++
			c.killed[comp] = false
			c.surfaces[comp].SetExited(false)
		}
	}

	c.applyVisibility()

	return c.maybeSpawn()
}

// maybeSpawn applies the spawn decision rule to the active tab: spawn iff
// it is active, never spawned under the current generation, pid is 0, and
// it has not exited. The guard state is set before the async call runs.
func (c *Controller) maybeSpawn() tea.Cmd {
	active := c.session.Active()
	if active == nil {
		return nil
	}
	if active.Pid != 0 || active.State == tab.StateExited {
		return nil
	}

	comp := sessionid.Build(c.session.ID, active.ID)
	if c.spawnStates[comp] != SpawnIdle {
		return nil
	}

	// Optimistic guard: set before the command runs so a second Sync
	// observing the same snapshot cannot double spawn.
	c.spawnStates[comp] = SpawnSpawning
	gen := c.generations[comp]

	cwd := active.Cwd
	if cwd == "" {
		cwd = c.session.Cwd
	}
	req := gateway.SpawnRequest{
		SessionID: comp,
		Cwd:       cwd,
		Shell:     c.cfg.Shell,
		ShellArgs: c.cfg.ShellArgs,
		ShellEnv:  c.cfg.ShellEnv,
		Cols:      c.cfg.Cols,
		Rows:      c.cfg.Rows,
	}
	tabID := active.ID
	gw := c.gw

	return func() tea.Msg {
		res, err := gw.Spawn(req)
		return SpawnResultMsg{
			SessionID:  comp,
			TabID:      tabID,
			Generation: gen,
			Result:     res,
			Err:        err,
		}
	}
}

// HandleSpawnResult settles an in-flight spawn. Stale results (generation
// mismatch, post-shutdown arrival) are discarded; an exit that won the
// race keeps the tab exited.
func (c *Controller) HandleSpawnResult(msg SpawnResultMsg) {
	if c.shutdown {
		return
	}
	if msg.Generation != c.generations[msg.SessionID] {
		return
	}

	switch c.spawnStates[msg.SessionID] {
	case SpawnSpawning:
		// The expected case; fall through.
	case SpawnExited:
		// The shell exited before the spawn result arrived. The exit
		// already transitioned the tab; do not resurrect it.
		return
	default:
		return
	}

	switch {
	case msg.Err != nil:
		c.spawnStates[msg.SessionID] = SpawnFailed
		c.stateChange(msg.TabID, tab.StateExited, tab.ExitCodeSpawnError)
	case !msg.Result.Success:
		c.spawnStates[msg.SessionID] = SpawnFailed
		c.stateChange(msg.TabID, tab.StateExited, tab.ExitCodeSpawnFailed)
	default:
		c.spawnStates[msg.SessionID] = SpawnSpawned
		if c.cb.OnTabPidChange != nil {
			c.cb.OnTabPidChange(msg.TabID, msg.Result.Pid)
		}
		c.stateChange(msg.TabID, tab.StateIdle, 0)
	}
}

// HandleExit routes an exit notification to the tab owning the composite
// id. Foreign and unknown ids are dropped silently, including composite
// ids that merely share a tab-id suffix.
func (c *Controller) HandleExit(msg ExitMsg) {
	if c.shutdown || c.session == nil {
		return
	}
	owner, tabID, ok := sessionid.Parse(msg.SessionID)
	if !ok || owner != c.session.ID {
		return
	}
	if _, tracked := c.spawnStates[msg.SessionID]; !tracked {
		return
	}
	if c.session.IndexOf(tabID) < 0 {
		return
	}

	c.spawnStates[msg.SessionID] = SpawnExited
	if s := c.surfaces[msg.SessionID]; s != nil {
		s.SetExited(true)
	}
	c.stateChange(tabID, tab.StateExited, msg.ExitCode)
}

// HandleRawData feeds PTY output into the owning surface. Hidden surfaces
// receive their output too, preserving scrollback across switches.
func (c *Controller) HandleRawData(msg RawDataMsg) {
	if c.shutdown {
		return
	}
	if s := c.surfaces[msg.SessionID]; s != nil {
		s.HandleOutput(msg.Chunk)
	}
}

// Close begins the deferred close sequence for a tab: the tab is marked
// closing immediately, and the commit races an animation-done signal
// against a fallback timer. A second close trigger for the same tab is a
// no-op.
func (c *Controller) Close(tabID string) tea.Cmd {
	if c.shutdown || c.session == nil {
		return nil
	}
	if c.session.IndexOf(tabID) < 0 {
		return nil
	}
	if _, already := c.closing[tabID]; already {
		return nil
	}
	c.closing[tabID] = &closeLatch{}

	animDuration := config.GetCloseAnimationDuration()
	return tea.Batch(
		tea.Tick(animDuration, func(time.Time) tea.Msg {
			return CloseAnimationDoneMsg{TabID: tabID}
		}),
		tea.Tick(config.TabCloseFallbackTimeout, func(time.Time) tea.Msg {
			return CloseFallbackMsg{TabID: tabID}
		}),
	)
}

// HandleCloseSignal commits a pending close on the first signal for the
// tab and ignores the second. Works for both the animation-done and
// fallback-timer message.
func (c *Controller) HandleCloseSignal(tabID string) {
	latch, ok := c.closing[tabID]
	if !ok || latch.fired {
		return
	}
	latch.fired = true
	c.commitClose(tabID)
}

// IsClosing reports whether a tab is mid close animation.
func (c *Controller) IsClosing(tabID string) bool {
	latch, ok := c.closing[tabID]
	return ok && !latch.fired
}

// commitClose kills the tab's process if one was tracked and asks the
// owner to remove the tab.
func (c *Controller) commitClose(tabID string) {
	if c.session != nil {
		comp := sessionid.Build(c.session.ID, tabID)
		c.killTracked(comp)
		c.generations[comp]++
		delete(c.spawnStates, comp)
		delete(c.surfaces, comp)
	}
	delete(c.closing, tabID)

	if c.cb.OnTabClose != nil {
		c.cb.OnTabClose(tabID)
	}
}

// killTracked issues at most one kill per composite id, and only for ids
// whose spawn was actually attempted. Kill failures are not surfaced.
func (c *Controller) killTracked(comp string) {
	st, tracked := c.spawnStates[comp]
	if !tracked || c.killed[comp] {
		return
	}
	if st == SpawnIdle || st == SpawnFailed {
		// Nothing was started; a failed spawn has no process either.
		return
	}
	c.killed[comp] = true
	_ = c.gw.Kill(comp)
}

// Shutdown kills every composite id the controller attempted to spawn and
// has not yet confirmed killed, then unsubscribes from the gateway.
// In-flight spawns may still settle afterwards; their results are
// discarded by the shutdown flag and generation bumps.
func (c *Controller) Shutdown() {
	if c.shutdown {
		return
	}
	for comp := range c.spawnStates {
		c.killTracked(comp)
		c.generations[comp]++
	}
	if c.unsubExit != nil {
		c.unsubExit()
	}
	if c.unsubRaw != nil {
		c.unsubRaw()
	}
	c.shutdown = true
}

// Surface returns the surface mounted for a tab, or nil.
func (c *Controller) Surface(tabID string) *surface.Surface {
	if c.session == nil {
		return nil
	}
	return c.surfaces[sessionid.Build(c.session.ID, tabID)]
}

// SpawnStateFor exposes the tracked spawn state for a tab, for rendering
// decisions (error affordance vs surface).
func (c *Controller) SpawnStateFor(tabID string) SpawnState {
	if c.session == nil {
		return SpawnIdle
	}
	return c.spawnStates[sessionid.Build(c.session.ID, tabID)]
}

func (c *Controller) newSurface(comp, tabID string) *surface.Surface {
	gw := c.gw
	return surface.New(comp, nil, surface.Callbacks{
		OnData: func(data []byte) {
			_ = gw.Write(comp, data)
		},
		OnCloseRequest: func() {
			// Surfaces fire this synchronously from KeyInput on the loop.
			c.closeRequests = append(c.closeRequests, tabID)
		},
	})
}

// TakeCloseRequests drains the close requests surfaces raised since the
// last call. The owner converts each into a Close.
func (c *Controller) TakeCloseRequests() []string {
	reqs := c.closeRequests
	c.closeRequests = nil
	return reqs
}

func (c *Controller) applyVisibility() {
	activeComp := ""
	if active := c.session.Active(); active != nil {
		activeComp = sessionid.Build(c.session.ID, active.ID)
	}
	for comp, s := range c.surfaces {
		visible := comp == activeComp
		s.SetVisible(visible)
		if visible {
			s.Focus()
		} else {
			s.Blur()
		}
	}
}

func (c *Controller) stateChange(tabID string, state tab.State, exitCode int) {
	if c.cb.OnTabStateChange != nil {
		c.cb.OnTabStateChange(tabID, state, exitCode)
	}
}
