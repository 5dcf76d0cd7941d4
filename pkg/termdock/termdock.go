// Package termdock provides an embeddable tabbed terminal panel for
// Bubble Tea applications, or a standalone TUI.
//
// # Basic Usage
//
// Create a new termdock instance with default options:
//
//	model := termdock.New()
//	p := tea.NewProgram(model)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
// Use options to customize behavior:
//
//	model := termdock.New(
//		termdock.WithTheme("dracula"),
//		termdock.WithShell("/bin/zsh"),
//		termdock.WithScrollback(50000),
//		termdock.WithAnimations(false),
//	)
package termdock

import (
	tea "charm.land/bubbletea/v2"

	"github.com/fraywing/termdock/internal/app"
	"github.com/fraywing/termdock/internal/config"
)

// Model is the main termdock model implementing tea.Model. It wraps the
// internal application struct behind a stable public API.
type Model = app.App

// Option configures a termdock instance.
type Option func(*options)

type options struct {
	theme       string
	shell       string
	shellArgs   []string
	scrollback  int
	animations  *bool
	hideStatus  bool
	keybindings *config.KeybindingsConfig
}

// WithTheme sets the color theme (e.g. "dracula", "nord"). An empty
// name keeps the terminal's standard colors.
func WithTheme(name string) Option {
	return func(o *options) { o.theme = name }
}

// WithShell sets the shell binary spawned in every tab. Empty
// auto-detects from $SHELL and platform defaults.
func WithShell(path string, args ...string) Option {
	return func(o *options) {
		o.shell = path
		o.shellArgs = args
	}
}

// WithScrollback sets the number of scrollback lines kept per tab.
func WithScrollback(lines int) Option {
	return func(o *options) { o.scrollback = lines }
}

// WithAnimations enables or disables tab animations.
func WithAnimations(enabled bool) Option {
	return func(o *options) { o.animations = &enabled }
}

// WithHiddenStatusBar hides the CPU/memory status line.
func WithHiddenStatusBar() Option {
	return func(o *options) { o.hideStatus = true }
}

// WithKeybindings replaces the default key map.
func WithKeybindings(kb config.KeybindingsConfig) Option {
	return func(o *options) { o.keybindings = &kb }
}

// New creates a termdock model ready to hand to tea.NewProgram.
func New(opts ...Option) *Model {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := config.DefaultConfig()
	if o.shell != "" {
		cfg.Shell.Preferred = o.shell
		cfg.Shell.Args = o.shellArgs
	}
	if o.scrollback > 0 {
		cfg.Appearance.ScrollbackLines = o.scrollback
	}
	if o.animations != nil {
		cfg.Appearance.AnimationsEnabled = o.animations
	}
	if o.hideStatus {
		cfg.Appearance.HideStatusBar = true
	}
	if o.keybindings != nil {
		cfg.Keybindings = *o.keybindings
	}

	config.ApplyOverrides(config.Overrides{ThemeName: o.theme}, cfg)

	return app.New(cfg)
}

// ProgramOptions returns the tea options termdock works best with.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
	}
}
