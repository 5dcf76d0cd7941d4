// Package main implements termdock, a tabbed terminal panel for the
// command line. One window, many shells, with searchable scrollback and
// an undo history for closed tabs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/spf13/cobra"

	"github.com/fraywing/termdock/internal/theme"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	debugMode       bool
	themeName       string
	listThemes      bool
	previewTheme    string
	scrollbackLines int
	noAnimations    bool
	hideStatusBar   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "termdock",
		Short: "Tabbed terminal panel",
		Long: `termdock - a tabbed terminal panel

Run multiple shells as tabs in a single terminal window. Tabs can be
renamed, reordered by dragging, closed and reopened, and their
scrollback searched.`,
		Example: `  # Run termdock
  termdock

  # Run with a specific theme
  termdock --theme dracula

  # List all available themes
  termdock --list-themes

  # Preview a theme's colors
  termdock --preview-theme dracula

  # Edit configuration
  termdock config edit`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if previewTheme != "" {
				return previewThemeColors(previewTheme)
			}

			if listThemes {
				if err := theme.Initialize("default"); err != nil {
					return fmt.Errorf("failed to initialize themes: %w", err)
				}
				for _, t := range tint.TintIDs() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&previewTheme, "preview-theme", "", "Preview a theme's 16 ANSI colors")
	rootCmd.PersistentFlags().IntVar(&scrollbackLines, "scrollback-lines", 0, "Number of lines to keep per tab (default: from config or 10000, min: 100, max: 1000000)")
	rootCmd.PersistentFlags().BoolVar(&noAnimations, "no-animations", false, "Disable tab animations for instant transitions")
	rootCmd.PersistentFlags().BoolVar(&hideStatusBar, "hide-status-bar", false, "Hide the CPU/memory status bar")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage termdock configuration",
		Long:  `Manage the termdock configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the termdock configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, and nano in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "Manage color themes",
		Long: `List, preview, and inspect color themes.

Custom themes can be placed as JSON files in the themes directory
(see 'termdock themes dir').`,
	}

	themesListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all available themes",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := theme.Initialize("default"); err != nil {
				return err
			}
			for _, t := range tint.TintIDs() {
				fmt.Println(t)
			}
			return nil
		},
	}

	themesPreviewCmd := &cobra.Command{
		Use:   "preview <name>",
		Short: "Preview a theme's 16 ANSI colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return previewThemeColors(args[0])
		},
	}

	themesDirCmd := &cobra.Command{
		Use:   "dir",
		Short: "Print the custom themes directory path",
		RunE: func(_ *cobra.Command, _ []string) error {
			dir, err := theme.GetThemesDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}

	themesCmd.AddCommand(themesListCmd, themesPreviewCmd, themesDirCmd)

	rootCmd.AddCommand(configCmd, themesCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}
