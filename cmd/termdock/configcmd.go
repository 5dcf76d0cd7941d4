package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/fraywing/termdock/internal/config"
)

// printConfigPath prints the config file location, creating the default
// file first so the path always exists.
func printConfigPath() error {
	if _, err := config.LoadUserConfig(); err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config in the user's editor.
func editConfigFile() error {
	if _, err := config.LoadUserConfig(); err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found: set $EDITOR or install vim, vi, or nano")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func findEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	for _, candidate := range []string{"vim", "vi", "nano"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path
		}
	}
	return ""
}

// resetConfigToDefaults overwrites the config file with defaults after
// confirmation.
func resetConfigToDefaults() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	fmt.Printf("Reset %s to defaults? [y/N] ", path)
	var answer string
	_, _ = fmt.Scanln(&answer)
	if answer != "y" && answer != "Y" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config: %w", err)
	}
	if _, err := config.LoadUserConfig(); err != nil {
		return fmt.Errorf("failed to recreate config: %w", err)
	}
	fmt.Println("Configuration reset to defaults.")
	return nil
}
