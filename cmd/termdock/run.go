package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/fraywing/termdock/internal/app"
	"github.com/fraywing/termdock/internal/config"
)

func runLocal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("termdock must be run in a terminal")
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ScrollbackLines: scrollbackLines,
		NoAnimations:    noAnimations,
		ThemeName:       themeName,
	}, userConfig)

	if hideStatusBar {
		userConfig.Appearance.HideStatusBar = true
	}

	if debugMode {
		configPath, _ := config.GetConfigPath()
		log.Printf("Configuration: %s", configPath)
	}

	model := app.New(userConfig)

	p := tea.NewProgram(
		model,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if finalApp, ok := finalModel.(*app.App); ok {
		finalApp.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
