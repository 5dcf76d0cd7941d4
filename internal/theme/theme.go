// Package theme provides color themes and styling for the termdock panel.
package theme

import (
	"fmt"
	"image/color"
	"log"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and standard terminal colors
// are used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	// Load custom themes from the user's themes directory
	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Printf("Warning: error loading custom themes: %v", err)
		}
	}

	if ok := tint.SetTintID(themeName); !ok {
		tint.SetTintID("default")
	}

	return nil
}

// IsEnabled returns true if theming is enabled.
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme, or nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// GetANSIPalette returns the 16 ANSI colors (0-15) from the current theme.
// These are handed to terminal surfaces for rendering.
func GetANSIPalette() [16]color.Color {
	t := Current()
	if t == nil {
		// Fallback to default xterm colors
		return [16]color.Color{
			lipgloss.Color("#000000"), lipgloss.Color("#cd0000"), lipgloss.Color("#00cd00"), lipgloss.Color("#cdcd00"),
			lipgloss.Color("#0000ee"), lipgloss.Color("#cd00cd"), lipgloss.Color("#00cdcd"), lipgloss.Color("#e5e5e5"),
			lipgloss.Color("#7f7f7f"), lipgloss.Color("#ff0000"), lipgloss.Color("#00ff00"), lipgloss.Color("#ffff00"),
			lipgloss.Color("#5c5cff"), lipgloss.Color("#ff00ff"), lipgloss.Color("#00ffff"), lipgloss.Color("#ffffff"),
		}
	}
	return [16]color.Color{
		t.Black, t.Red, t.Green, t.Yellow,
		t.Blue, t.Purple, t.Cyan, t.White,
		t.BrightBlack, t.BrightRed, t.BrightGreen, t.BrightYellow,
		t.BrightBlue, t.BrightPurple, t.BrightCyan, t.BrightWhite,
	}
}

// TerminalFg returns the foreground color for terminal text.
func TerminalFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// TerminalBg returns the background color for terminal surfaces.
func TerminalBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

// TabActiveFg returns the foreground color for the active tab label.
func TabActiveFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffffff")
	}
	return t.BrightWhite
}

// TabActiveBg returns the background color for the active tab.
func TabActiveBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

// TabInactiveFg returns the foreground color for inactive tab labels.
func TabInactiveFg() color.Color {
	return lipgloss.Color("#808090")
}

// TabClosingFg returns the foreground color for a tab mid close animation.
func TabClosingFg() color.Color {
	return lipgloss.Color("#505060")
}

// TabExitedFg returns the label color for tabs whose shell has exited.
func TabExitedFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

// TabFailedFg returns the label color for tabs whose spawn failed.
func TabFailedFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

// FocusRing returns the color of the focus ring around the focused surface.
func FocusRing() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

// BorderUnfocused returns the border color for an unfocused surface.
func BorderUnfocused() color.Color {
	return lipgloss.Color("#303040")
}

// ErrorAffordanceFg returns the text color of the spawn-failure retry view.
func ErrorAffordanceFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ff6b6b")
	}
	return t.BrightRed
}

// PlaceholderFg returns the text color of the zero-tabs placeholder.
func PlaceholderFg() color.Color {
	return lipgloss.Color("8")
}

// SearchBarBg and friends style the search input line.
func SearchBarBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffff00")
	}
	return t.Yellow
}

// SearchBarFg returns the foreground color of the search input line.
func SearchBarFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Black
}

// StatusBarBg returns the background color of the status bar.
func StatusBarBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

// StatusBarFg returns the foreground color of the status bar.
func StatusBarFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

// LogViewerTitle returns the color for log overlay titles.
func LogViewerTitle() color.Color {
	return lipgloss.Color("14")
}

// LogViewerError returns the color for error messages in the log overlay.
func LogViewerError() color.Color {
	return lipgloss.Color("9")
}

// LogViewerWarn returns the color for warning messages in the log overlay.
func LogViewerWarn() color.Color {
	return lipgloss.Color("11")
}

// LogViewerInfo returns the color for info messages in the log overlay.
func LogViewerInfo() color.Color {
	return lipgloss.Color("10")
}

// LogViewerBg returns the background color for the log overlay.
func LogViewerBg() color.Color {
	return lipgloss.Color("#1a1a2a")
}

// CLITableHeader returns the color for CLI table headers.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableBorder returns the color for CLI table borders.
func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
