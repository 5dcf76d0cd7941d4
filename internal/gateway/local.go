package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	xpty "github.com/charmbracelet/x/xpty"

	"github.com/fraywing/termdock/internal/config"
)

// Local is an in-process Gateway that spawns shells on local PTYs.
type Local struct {
	mu       sync.Mutex
	sessions map[string]*ptySession

	subMu    sync.Mutex
	nextSub  int
	rawSubs  map[int]RawDataFunc
	exitSubs map[int]ExitFunc
}

// ptySession tracks one spawned shell and its PTY.
type ptySession struct {
	id     string
	pty    xpty.Pty
	cmd    *exec.Cmd
	cancel context.CancelFunc

	// waitOnce ensures cmd.Wait() is called exactly once even when Kill
	// races the exit monitor.
	waitOnce sync.Once
	waitErr  error
}

// NewLocal creates an empty local gateway.
func NewLocal() *Local {
	return &Local{
		sessions: make(map[string]*ptySession),
		rawSubs:  make(map[int]RawDataFunc),
		exitSubs: make(map[int]ExitFunc),
	}
}

// Spawn starts a shell on a fresh PTY for the request's session id.
func (g *Local) Spawn(req SpawnRequest) (SpawnResult, error) {
	if req.SessionID == "" {
		return SpawnResult{}, errors.New("spawn: empty session id")
	}

	g.mu.Lock()
	if _, exists := g.sessions[req.SessionID]; exists {
		g.mu.Unlock()
		return SpawnResult{}, fmt.Errorf("spawn: session %q already exists", req.SessionID)
	}
	g.mu.Unlock()

	shell := req.Shell
	if shell == "" {
		shell = DetectShell("")
	}

	// #nosec G204 - shell is intentionally user-controlled for terminal functionality
	cmd := exec.Command(shell, req.ShellArgs...)
	if req.Cwd != "" {
		cmd.Dir = req.Cwd
	}

	termType, colorTerm := terminalEnv()
	cmd.Env = append(os.Environ(),
		"TERM="+termType,
		"COLORTERM="+colorTerm,
		"TERM_PROGRAM=termdock",
		"TERMDOCK_SESSION="+req.SessionID,
	)
	for k, v := range req.ShellEnv {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	cols, rows := req.Cols, req.Rows
	if cols <= 0 {
		cols = config.DefaultTerminalWidth
	}
	if rows <= 0 {
		rows = config.DefaultTerminalHeight
	}

	// xpty requires dimensions at creation time
	pty, err := xpty.NewPty(cols, rows)
	if err != nil {
		return SpawnResult{Success: false, Error: fmt.Sprintf("create pty: %v", err)}, nil
	}

	// Make the PTY the controlling terminal; platform-specific.
	setupPTYCommand(cmd)

	if err := pty.Start(cmd); err != nil {
		_ = pty.Close()
		return SpawnResult{Success: false, Error: fmt.Sprintf("start shell: %v", err)}, nil
	}

	// Some PTY implementations want the process running before accepting a
	// resize.
	_ = pty.Resize(cols, rows)

	ctx, cancel := context.WithCancel(context.Background())
	sess := &ptySession{
		id:     req.SessionID,
		pty:    pty,
		cmd:    cmd,
		cancel: cancel,
	}

	g.mu.Lock()
	g.sessions[req.SessionID] = sess
	g.mu.Unlock()

	go g.readPump(ctx, sess)
	go g.monitorExit(sess)

	pid := 0
	if cmd.Process != nil {
		pid = cmd.Process.Pid
	}
	return SpawnResult{Success: true, Pid: pid}, nil
}

// readPump copies PTY output to raw-data subscribers until the PTY closes.
func (g *Local) readPump(ctx context.Context, sess *ptySession) {
	buf := make([]byte, config.ReadBufferSize)
	for {
		n, err := sess.pty.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			g.fanOutRaw(sess.id, chunk)
		}
		if err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// monitorExit waits for the shell to terminate and notifies subscribers.
func (g *Local) monitorExit(sess *ptySession) {
	sess.wait()

	exitCode := 0
	var exitErr *exec.ExitError
	if errors.As(sess.waitErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	} else if sess.waitErr != nil {
		exitCode = 1
	}

	// Give the read pump a moment to capture final output.
	time.Sleep(config.ProcessWaitDelay)

	sess.cancel()
	g.mu.Lock()
	delete(g.sessions, sess.id)
	g.mu.Unlock()

	g.fanOutExit(sess.id, exitCode)
}

func (s *ptySession) wait() {
	s.waitOnce.Do(func() {
		s.waitErr = s.cmd.Wait()
	})
}

// Kill terminates the session's process group, best effort.
func (g *Local) Kill(sessionID string) error {
	g.mu.Lock()
	sess, ok := g.sessions[sessionID]
	g.mu.Unlock()
	if !ok {
		return nil
	}

	sess.cancel()
	_ = sess.pty.Close()
	if sess.cmd.Process != nil {
		killProcessGroup(sess.cmd.Process.Pid)
		_ = sess.cmd.Process.Kill()
	}
	return nil
}

// Write sends input to the session's PTY.
func (g *Local) Write(sessionID string, data []byte) error {
	g.mu.Lock()
	sess, ok := g.sessions[sessionID]
	g.mu.Unlock()
	if !ok {
		return fmt.Errorf("write: unknown session %q", sessionID)
	}
	_, err := sess.pty.Write(data)
	return err
}

// Resize changes the session's PTY dimensions.
func (g *Local) Resize(sessionID string, cols, rows int) error {
	g.mu.Lock()
	sess, ok := g.sessions[sessionID]
	g.mu.Unlock()
	if !ok {
		return fmt.Errorf("resize: unknown session %q", sessionID)
	}
	return sess.pty.Resize(cols, rows)
}

// OnRawData subscribes to raw PTY output. The returned func unsubscribes.
func (g *Local) OnRawData(fn RawDataFunc) func() {
	g.subMu.Lock()
	defer g.subMu.Unlock()
	id := g.nextSub
	g.nextSub++
	g.rawSubs[id] = fn
	return func() {
		g.subMu.Lock()
		defer g.subMu.Unlock()
		delete(g.rawSubs, id)
	}
}

// OnExit subscribes to exit notifications. The returned func unsubscribes.
func (g *Local) OnExit(fn ExitFunc) func() {
	g.subMu.Lock()
	defer g.subMu.Unlock()
	id := g.nextSub
	g.nextSub++
	g.exitSubs[id] = fn
	return func() {
		g.subMu.Lock()
		defer g.subMu.Unlock()
		delete(g.exitSubs, id)
	}
}

func (g *Local) fanOutRaw(sessionID string, chunk []byte) {
	g.subMu.Lock()
	subs := make([]RawDataFunc, 0, len(g.rawSubs))
	for _, fn := range g.rawSubs {
		subs = append(subs, fn)
	}
	g.subMu.Unlock()
	for _, fn := range subs {
		fn(sessionID, chunk)
	}
}

func (g *Local) fanOutExit(sessionID string, exitCode int) {
	g.subMu.Lock()
	subs := make([]ExitFunc, 0, len(g.exitSubs))
	for _, fn := range g.exitSubs {
		subs = append(subs, fn)
	}
	g.subMu.Unlock()
	for _, fn := range subs {
		fn(sessionID, exitCode)
	}
}

// Shutdown kills every live session. Used on program teardown.
func (g *Local) Shutdown() {
	g.mu.Lock()
	ids := make([]string, 0, len(g.sessions))
	for id := range g.sessions {
		ids = append(ids, id)
	}
	g.mu.Unlock()
	for _, id := range ids {
		_ = g.Kill(id)
	}
}
