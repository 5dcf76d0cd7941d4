// Package surface wraps a terminal-emulation engine behind an imperative
// handle. One surface exists per tab; hidden surfaces keep receiving output
// so scrollback survives tab switches.
package surface

import (
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Engine is the terminal-emulation engine a surface draws through. Glyph
// rendering, color mapping, and cursor handling live behind this interface.
type Engine interface {
	// Write feeds raw PTY output into the engine.
	Write(p []byte) (int, error)

	// Resize changes the engine's dimensions.
	Resize(cols, rows int)

	// Clear resets the visible screen and scrollback.
	Clear()

	// Lines returns the scrollback as plain text lines, oldest first.
	Lines() []string

	// View renders the last rows lines as a single string.
	View(rows int) string
}

// LineEngine is a plain-text engine: it strips ANSI escape sequences and
// keeps a capped scrollback of lines. Good enough to display shell output
// and power search; anything needing a real cell grid plugs in its own
// Engine.
type LineEngine struct {
	mu       sync.Mutex
	lines    []string
	partial  string
	maxLines int
	cols     int
}

// NewLineEngine creates a line engine with the given scrollback cap.
func NewLineEngine(maxLines int) *LineEngine {
	if maxLines <= 0 {
		maxLines = 1
	}
	return &LineEngine{maxLines: maxLines}
}

// Write feeds raw output into the scrollback. Escape sequences are
// stripped; carriage returns rewrite the current partial line the way a
// progress bar would on a real terminal.
func (e *LineEngine) Write(p []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	text := ansi.Strip(string(p))
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			break
		}
		e.partial = applyCarriageReturns(e.partial + text[:i])
		e.pushLine(e.partial)
		e.partial = ""
		text = text[i+1:]
	}
	if text != "" {
		e.partial = applyCarriageReturns(e.partial + text)
	}
	return len(p), nil
}

// applyCarriageReturns keeps only the text after the last carriage return,
// matching the visual result of in-place line rewrites.
func applyCarriageReturns(s string) string {
	if i := strings.LastIndexByte(s, '\r'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func (e *LineEngine) pushLine(line string) {
	e.lines = append(e.lines, line)
	if len(e.lines) > e.maxLines {
		e.lines = e.lines[len(e.lines)-e.maxLines:]
	}
}

// Resize records the column count used when rendering the view.
func (e *LineEngine) Resize(cols, _ int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cols = cols
}

// Clear drops the scrollback and any partial line.
func (e *LineEngine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = nil
	e.partial = ""
}

// Lines returns a copy of the scrollback, including the current partial
// line when nonempty.
func (e *LineEngine) Lines() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]string, len(e.lines), len(e.lines)+1)
	copy(out, e.lines)
	if e.partial != "" {
		out = append(out, e.partial)
	}
	return out
}

// View renders the last rows lines joined by newlines.
func (e *LineEngine) View(rows int) string {
	lines := e.Lines()
	if rows > 0 && len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	return strings.Join(lines, "\n")
}
