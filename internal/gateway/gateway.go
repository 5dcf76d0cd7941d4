// Package gateway manages the PTY processes behind terminal tabs. The
// Gateway interface is what the panel controller consumes; Local is the
// in-process implementation backed by xpty.
package gateway

// SpawnRequest describes the shell process to start for one composite
// session id.
type SpawnRequest struct {
	// SessionID is the composite identifier the spawned process is keyed
	// under. All events for this process carry it.
	SessionID string

	// Cwd is the working directory for the shell. Empty means inherit.
	Cwd string

	// Shell is the shell binary. Empty auto-detects.
	Shell string

	// ShellArgs are extra arguments passed to the shell.
	ShellArgs []string

	// ShellEnv are extra environment variables for the shell.
	ShellEnv map[string]string

	// Cols and Rows are the initial PTY dimensions. Zero values fall back
	// to 80x24.
	Cols, Rows int
}

// SpawnResult reports the outcome of a spawn.
type SpawnResult struct {
	Success bool
	Pid     int
	Error   string
}

// RawDataFunc receives raw PTY output for a session.
type RawDataFunc func(sessionID string, chunk []byte)

// ExitFunc receives process exit notifications for a session.
type ExitFunc func(sessionID string, exitCode int)

// Gateway spawns and manages PTY-backed shell processes keyed by composite
// session id.
type Gateway interface {
	// Spawn starts a shell for the request's session id. The returned
	// result reports Success=false with an Error string for failures the
	// gateway could classify; err is reserved for programmer errors such
	// as a duplicate session id.
	Spawn(req SpawnRequest) (SpawnResult, error)

	// Kill terminates the session's process. Best effort: unknown session
	// ids are not an error.
	Kill(sessionID string) error

	// Write sends input bytes to the session's PTY.
	Write(sessionID string, data []byte) error

	// Resize changes the session's PTY dimensions.
	Resize(sessionID string, cols, rows int) error

	// OnRawData subscribes to raw PTY output across all sessions. The
	// returned function unsubscribes.
	OnRawData(fn RawDataFunc) (unsubscribe func())

	// OnExit subscribes to process exit notifications across all sessions.
	// The returned function unsubscribes.
	OnExit(fn ExitFunc) (unsubscribe func())
}
