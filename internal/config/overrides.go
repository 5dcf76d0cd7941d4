package config

import (
	"log"

	"github.com/fraywing/termdock/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and the user config default
// applies.
type Overrides struct {
	// ScrollbackLines overrides the scrollback buffer size (0 means unset).
	ScrollbackLines int

	// NoAnimations disables tab animations.
	NoAnimations bool

	// ThemeName is the theme to load.
	ThemeName string
}

// ApplyOverrides applies CLI flag overrides on top of user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.ScrollbackLines > 0 {
		lines := overrides.ScrollbackLines
		if lines < MinScrollbackLines {
			lines = MinScrollbackLines
		} else if lines > MaxScrollbackLines {
			lines = MaxScrollbackLines
		}
		ScrollbackLines = lines
	} else if userConfig != nil && userConfig.Appearance.ScrollbackLines > 0 {
		ScrollbackLines = userConfig.Appearance.ScrollbackLines
	}

	if overrides.NoAnimations {
		AnimationsEnabled = false
	} else if userConfig != nil && userConfig.Appearance.AnimationsEnabled != nil {
		AnimationsEnabled = *userConfig.Appearance.AnimationsEnabled
	}

	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil && userConfig.Appearance.Theme != "" {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Printf("Warning: Failed to load theme '%s': %v", themeName, err)
		}
	}
}
