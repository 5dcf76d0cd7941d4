// Package testutil provides helpers for building terminal output in tests.
package testutil

import (
	"fmt"
	"strings"
)

// ANSIBuilder builds byte sequences containing ANSI escape codes, for
// feeding surfaces and engines in tests.
type ANSIBuilder struct {
	sb strings.Builder
}

// NewANSIBuilder creates an empty builder.
func NewANSIBuilder() *ANSIBuilder {
	return &ANSIBuilder{}
}

// Text appends literal text.
func (b *ANSIBuilder) Text(s string) *ANSIBuilder {
	b.sb.WriteString(s)
	return b
}

// Newline appends a CRLF pair, as a PTY in cooked mode would emit.
func (b *ANSIBuilder) Newline() *ANSIBuilder {
	b.sb.WriteString("\r\n")
	return b
}

// ClearScreen appends the clear-screen sequence.
func (b *ANSIBuilder) ClearScreen() *ANSIBuilder {
	b.sb.WriteString("\x1b[2J")
	return b
}

// CursorHome appends the cursor-home sequence.
func (b *ANSIBuilder) CursorHome() *ANSIBuilder {
	b.sb.WriteString("\x1b[H")
	return b
}

// Bold appends the bold SGR sequence.
func (b *ANSIBuilder) Bold() *ANSIBuilder {
	b.sb.WriteString("\x1b[1m")
	return b
}

// Reset appends the SGR reset sequence.
func (b *ANSIBuilder) Reset() *ANSIBuilder {
	b.sb.WriteString("\x1b[0m")
	return b
}

// FgColor appends a basic foreground color SGR sequence (30-37, 90-97).
func (b *ANSIBuilder) FgColor(code int) *ANSIBuilder {
	fmt.Fprintf(&b.sb, "\x1b[%dm", code)
	return b
}

// Fg256 appends a 256-color foreground sequence.
func (b *ANSIBuilder) Fg256(n int) *ANSIBuilder {
	fmt.Fprintf(&b.sb, "\x1b[38;5;%dm", n)
	return b
}

// FgRGB appends a truecolor foreground sequence.
func (b *ANSIBuilder) FgRGB(r, g, bl int) *ANSIBuilder {
	fmt.Fprintf(&b.sb, "\x1b[38;2;%d;%d;%dm", r, g, bl)
	return b
}

// OSCTitle appends a window title escape sequence.
func (b *ANSIBuilder) OSCTitle(title string) *ANSIBuilder {
	b.sb.WriteString("\x1b]0;" + title + "\x07")
	return b
}

// String returns the built sequence.
func (b *ANSIBuilder) String() string {
	return b.sb.String()
}

// Bytes returns the built sequence as a byte slice.
func (b *ANSIBuilder) Bytes() []byte {
	return []byte(b.sb.String())
}

// Clear resets the builder.
func (b *ANSIBuilder) Clear() {
	b.sb.Reset()
}

// ColoredLine returns a full colored output line terminated with CRLF.
func ColoredLine(colorCode int, text string) string {
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m\r\n", colorCode, text)
}

// ShellPrompt returns a typical colored shell prompt string.
func ShellPrompt(user, host, dir string) string {
	return fmt.Sprintf("\x1b[32m%s@%s\x1b[0m:\x1b[34m%s\x1b[0m$ ", user, host, dir)
}
