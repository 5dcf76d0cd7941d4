package testutil_test

import (
	"strings"
	"testing"

	"github.com/fraywing/termdock/internal/testutil"
)

func TestANSIBuilder_Sequences(t *testing.T) {
	tests := []struct {
		name     string
		build    func(*testutil.ANSIBuilder) string
		expected string
	}{
		{
			name: "clear screen",
			build: func(b *testutil.ANSIBuilder) string {
				return b.ClearScreen().String()
			},
			expected: "\x1b[2J",
		},
		{
			name: "cursor home",
			build: func(b *testutil.ANSIBuilder) string {
				return b.CursorHome().String()
			},
			expected: "\x1b[H",
		},
		{
			name: "bold",
			build: func(b *testutil.ANSIBuilder) string {
				return b.Bold().String()
			},
			expected: "\x1b[1m",
		},
		{
			name: "fg color",
			build: func(b *testutil.ANSIBuilder) string {
				return b.FgColor(31).String()
			},
			expected: "\x1b[31m",
		},
		{
			name: "256 color fg",
			build: func(b *testutil.ANSIBuilder) string {
				return b.Fg256(196).String()
			},
			expected: "\x1b[38;5;196m",
		},
		{
			name: "rgb fg",
			build: func(b *testutil.ANSIBuilder) string {
				return b.FgRGB(255, 128, 0).String()
			},
			expected: "\x1b[38;2;255;128;0m",
		},
		{
			name: "osc title",
			build: func(b *testutil.ANSIBuilder) string {
				return b.OSCTitle("My Terminal").String()
			},
			expected: "\x1b]0;My Terminal\x07",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.build(testutil.NewANSIBuilder())
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestANSIBuilder_Chaining(t *testing.T) {
	result := testutil.NewANSIBuilder().
		ClearScreen().
		Bold().
		FgColor(32).
		Text("Hello").
		Reset().
		Newline().
		String()

	for _, part := range []string{"\x1b[2J", "\x1b[1m", "\x1b[32m", "Hello", "\x1b[0m", "\r\n"} {
		if !strings.Contains(result, part) {
			t.Errorf("missing %q in %q", part, result)
		}
	}
}

func TestANSIBuilder_Clear(t *testing.T) {
	b := testutil.NewANSIBuilder()
	b.Text("First")
	b.Clear()
	b.Text("Second")

	if got := b.String(); got != "Second" {
		t.Errorf("Expected 'Second' after clear, got %q", got)
	}
}

func TestColoredLine(t *testing.T) {
	line := testutil.ColoredLine(31, "Red text")
	if !strings.Contains(line, "Red text") || !strings.Contains(line, "\x1b[31m") || !strings.HasSuffix(line, "\r\n") {
		t.Errorf("unexpected line %q", line)
	}
}

func BenchmarkANSIBuilder(b *testing.B) {
	for b.Loop() {
		builder := testutil.NewANSIBuilder()
		_ = builder.Bold().FgRGB(255, 128, 0).Text("Styled").Reset().Newline().String()
	}
}
