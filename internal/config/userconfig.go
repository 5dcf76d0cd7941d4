package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// UserConfig is the user-editable configuration, stored as TOML at
// ~/.config/termdock/config.toml.
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Shell       ShellConfig       `toml:"shell"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig groups visual settings.
type AppearanceConfig struct {
	Theme             string `toml:"theme"`              // Color theme name (e.g., dracula, nord, my-custom-theme). Empty disables theming.
	ScrollbackLines   int    `toml:"scrollback_lines"`   // Lines kept per terminal (default: 10000, min: 100, max: 1000000)
	AnimationsEnabled *bool  `toml:"animations_enabled"` // Enable tab animations (default: true)
	HideStatusBar     bool   `toml:"hide_status_bar"`    // Hide the CPU/memory status bar (default: false)
}

// ShellConfig groups settings passed through to spawned shells.
type ShellConfig struct {
	Preferred string            `toml:"preferred"` // Preferred shell binary. Empty auto-detects per platform.
	Args      []string          `toml:"args"`      // Extra arguments passed to the shell.
	Env       map[string]string `toml:"env"`       // Extra environment variables for spawned shells.
}

// KeybindingsConfig maps tab actions to key names. Each action accepts a
// single bubbletea key string (e.g. "ctrl+t", "alt+right").
type KeybindingsConfig struct {
	NewTab      string `toml:"new_tab"`
	CloseTab    string `toml:"close_tab"`
	NextTab     string `toml:"next_tab"`
	PrevTab     string `toml:"prev_tab"`
	ReopenTab   string `toml:"reopen_tab"`
	RenameTab   string `toml:"rename_tab"`
	RetryTab    string `toml:"retry_tab"`
	Search      string `toml:"search"`
	ClearActive string `toml:"clear_active"`
	ToggleLogs  string `toml:"toggle_logs"`
	Quit        string `toml:"quit"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *UserConfig {
	animations := true
	return &UserConfig{
		Appearance: AppearanceConfig{
			ScrollbackLines:   DefaultScrollbackLines,
			AnimationsEnabled: &animations,
		},
		Shell: ShellConfig{},
		Keybindings: KeybindingsConfig{
			NewTab:      "ctrl+t",
			CloseTab:    "ctrl+w",
			NextTab:     "ctrl+right",
			PrevTab:     "ctrl+left",
			ReopenTab:   "ctrl+shift+t",
			RenameTab:   "ctrl+r",
			RetryTab:    "ctrl+y",
			Search:      "ctrl+f",
			ClearActive: "ctrl+l",
			ToggleLogs:  "ctrl+g",
			Quit:        "ctrl+q",
		},
	}
}

// LoadUserConfig loads the user configuration from the XDG config
// directory, creating a default config file if none exists.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile("termdock/config.toml")
	if err != nil {
		return createDefaultConfig()
	}

	// #nosec G304 - configPath is from XDG search, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	fillMissing(&cfg, DefaultConfig())
	return &cfg, nil
}

// createDefaultConfig writes a commented default config file and returns
// the defaults.
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile("termdock/config.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# termdock configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# [appearance]\n")
	sb.WriteString("# theme: Color theme name (e.g., dracula, nord, my-custom-theme)\n")
	sb.WriteString("#   Leave empty to use standard terminal colors.\n")
	sb.WriteString("#   Custom themes: ~/.config/termdock/themes/*.json\n")
	sb.WriteString("# scrollback_lines: Lines kept per terminal (100 to 1000000, default 10000)\n")
	sb.WriteString("#\n")
	sb.WriteString("# [shell]\n")
	sb.WriteString("# preferred: Shell binary to spawn. Empty auto-detects ($SHELL, then\n")
	sb.WriteString("#   /bin/bash, /bin/zsh, /bin/fish, /bin/sh).\n")
	sb.WriteString("#\n")
	sb.WriteString("# [keybindings]\n")
	sb.WriteString("# One bubbletea key name per action, e.g. new_tab = \"ctrl+t\".\n\n")

	if _, err := sb.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write config data: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}

// fillMissing fills unset fields with defaults so partial config files work.
func fillMissing(cfg, def *UserConfig) {
	if cfg.Appearance.ScrollbackLines == 0 {
		cfg.Appearance.ScrollbackLines = def.Appearance.ScrollbackLines
	}
	if cfg.Appearance.AnimationsEnabled == nil {
		cfg.Appearance.AnimationsEnabled = def.Appearance.AnimationsEnabled
	}

	kb, dkb := &cfg.Keybindings, def.Keybindings
	fill := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}
	fill(&kb.NewTab, dkb.NewTab)
	fill(&kb.CloseTab, dkb.CloseTab)
	fill(&kb.NextTab, dkb.NextTab)
	fill(&kb.PrevTab, dkb.PrevTab)
	fill(&kb.ReopenTab, dkb.ReopenTab)
	fill(&kb.RenameTab, dkb.RenameTab)
	fill(&kb.RetryTab, dkb.RetryTab)
	fill(&kb.Search, dkb.Search)
	fill(&kb.ClearActive, dkb.ClearActive)
	fill(&kb.ToggleLogs, dkb.ToggleLogs)
	fill(&kb.Quit, dkb.Quit)
}

// GetConfigPath returns the path to the user's config file.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile("termdock/config.toml")
}
