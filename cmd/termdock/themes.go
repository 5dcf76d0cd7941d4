package main

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/fraywing/termdock/internal/theme"
)

// previewThemeColors prints a theme's 16 ANSI colors as swatches.
func previewThemeColors(name string) error {
	if err := theme.Initialize(name); err != nil {
		return fmt.Errorf("failed to initialize theme: %w", err)
	}
	if !tint.SetTintID(name) {
		available := strings.Join(tint.TintIDs(), ", ")
		return fmt.Errorf("unknown theme %q (available: %s)", name, available)
	}

	labels := []string{
		"black", "red", "green", "yellow",
		"blue", "purple", "cyan", "white",
		"bright black", "bright red", "bright green", "bright yellow",
		"bright blue", "bright purple", "bright cyan", "bright white",
	}

	header := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true)
	fmt.Println(header.Render("Theme: " + name))
	fmt.Println()

	palette := theme.GetANSIPalette()
	for i, c := range palette {
		swatch := lipgloss.NewStyle().Background(c).Render("        ")
		fmt.Printf("%2d  %s  %-14s %s\n", i, swatch, labels[i], theme.ColorToString(c))
	}
	return nil
}
