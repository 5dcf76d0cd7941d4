package panel

import (
	tea "charm.land/bubbletea/v2"

	"github.com/fraywing/termdock/internal/gateway"
)

// SpawnResultMsg delivers a settled spawn back onto the program loop.
type SpawnResultMsg struct {
	// SessionID is the composite id the spawn was issued for.
	SessionID string

	// TabID is the tab the spawn belongs to.
	TabID string

	// Generation is the spawn generation captured when the spawn was
	// initiated. Stale generations are discarded on arrival.
	Generation uint64

	Result gateway.SpawnResult
	Err    error
}

// ExitMsg delivers a PTY exit notification onto the program loop.
type ExitMsg struct {
	SessionID string
	ExitCode  int
}

// RawDataMsg delivers a chunk of PTY output onto the program loop.
type RawDataMsg struct {
	SessionID string
	Chunk     []byte
}

// CloseAnimationDoneMsg signals that a closing tab's exit animation
// finished.
type CloseAnimationDoneMsg struct {
	TabID string
}

// CloseFallbackMsg fires when the close fallback timer elapses. It races
// CloseAnimationDoneMsg; whichever arrives first commits the close.
type CloseFallbackMsg struct {
	TabID string
}

// ListenForExits returns a command that blocks on the exit channel and
// re-delivers the next exit as an ExitMsg. The caller re-arms it after
// every ExitMsg.
func ListenForExits(ch <-chan ExitMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// ListenForRawData returns a command that blocks on the raw-data channel
// and re-delivers the next chunk as a RawDataMsg. The caller re-arms it
// after every RawDataMsg.
func ListenForRawData(ch <-chan RawDataMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
