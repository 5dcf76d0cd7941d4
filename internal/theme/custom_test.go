package theme

import (
	"os"
	"path/filepath"
	"testing"

	tint "github.com/lrstanley/bubbletint/v2"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCustomThemeFileComplete(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "midnight.json", `{
		"id": "midnight",
		"display_name": "Midnight",
		"dark": true,
		"fg": "#c8d3f5",
		"bg": "#222436",
		"cursor": "#c8d3f5",
		"black": "#1b1d2b",
		"red": "#ff757f",
		"green": "#c3e88d",
		"yellow": "#ffc777",
		"blue": "#82aaff",
		"purple": "#c099ff",
		"cyan": "#86e1fc",
		"white": "#828bb8",
		"bright_black": "#444a73",
		"bright_red": "#ff757f",
		"bright_green": "#c3e88d",
		"bright_yellow": "#ffc777",
		"bright_blue": "#82aaff",
		"bright_purple": "#c099ff",
		"bright_cyan": "#86e1fc",
		"bright_white": "#c8d3f5"
	}`)

	loaded, err := LoadCustomThemeFile(path)
	if err != nil {
		t.Fatalf("LoadCustomThemeFile: %v", err)
	}

	if loaded.ID != "midnight" {
		t.Errorf("ID = %q, want midnight", loaded.ID)
	}
	if loaded.DisplayName != "Midnight" {
		t.Errorf("DisplayName = %q, want Midnight", loaded.DisplayName)
	}
	if !loaded.Dark {
		t.Error("Dark = false, want true")
	}

	all := map[string]*tint.Color{
		"fg": loaded.Fg, "bg": loaded.Bg, "cursor": loaded.Cursor,
		"black": loaded.Black, "red": loaded.Red, "green": loaded.Green,
		"yellow": loaded.Yellow, "blue": loaded.Blue, "purple": loaded.Purple,
		"cyan": loaded.Cyan, "white": loaded.White,
		"bright_black": loaded.BrightBlack, "bright_white": loaded.BrightWhite,
	}
	for field, c := range all {
		if c == nil {
			t.Errorf("%s is nil after load", field)
		}
	}
}

func TestLoadCustomThemeFileFillsDefaults(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "sparse.json", `{
		"id": "sparse",
		"fg": "#c0c0c0",
		"bg": "#1a1a1a"
	}`)

	loaded, err := LoadCustomThemeFile(path)
	if err != nil {
		t.Fatalf("LoadCustomThemeFile: %v", err)
	}

	for field, c := range map[string]*tint.Color{
		"cursor":       loaded.Cursor,
		"black":        loaded.Black,
		"red":          loaded.Red,
		"white":        loaded.White,
		"bright_black": loaded.BrightBlack,
		"bright_white": loaded.BrightWhite,
	} {
		if c == nil {
			t.Fatalf("%s not defaulted", field)
		}
	}

	if *loaded.Cursor != *loaded.Fg {
		t.Error("cursor should inherit fg when unset")
	}
	if *loaded.BrightRed != *loaded.Red {
		t.Error("bright_red should inherit red when unset")
	}
	if loaded.BrightRed == loaded.Red {
		t.Error("inherited bright color should not alias the normal pointer")
	}
}

func TestLoadCustomThemeFileDerivedIdentity(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "My-Cool-Theme.json", `{
		"fg": "#ffffff",
		"bg": "#000000"
	}`)

	loaded, err := LoadCustomThemeFile(path)
	if err != nil {
		t.Fatalf("LoadCustomThemeFile: %v", err)
	}
	if loaded.ID != "my-cool-theme" {
		t.Errorf("ID = %q, want my-cool-theme", loaded.ID)
	}
	if loaded.DisplayName != "my-cool-theme" {
		t.Errorf("DisplayName = %q, want my-cool-theme", loaded.DisplayName)
	}
}

func TestLoadCustomThemeFileBadJSON(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "broken.json", "not valid json{{{")
	if _, err := LoadCustomThemeFile(path); err == nil {
		t.Fatal("want error for invalid JSON")
	}
}

func TestLoadCustomThemesScansOnlyJSON(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "readme.txt", "not a theme")
	writeTheme(t, dir, "notes.md", "not a theme")
	writeTheme(t, dir, ".hidden", "not a theme")

	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatalf("LoadCustomThemes: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("loaded %d themes from non-JSON files, want 0", len(loaded))
	}
}

func TestLoadCustomThemesSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "good.json", `{"id": "good-theme", "fg": "#fff", "bg": "#000"}`)
	writeTheme(t, dir, "bad.json", "{{{")

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatalf("LoadCustomThemes: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != "good-theme" {
		t.Fatalf("loaded = %v, want [good-theme]", loaded)
	}
}

func TestLoadCustomThemesRegisters(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "register-probe.json", `{
		"id": "register-probe",
		"fg": "#ffffff",
		"bg": "#000000"
	}`)

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatalf("LoadCustomThemes: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded %d themes, want 1", len(loaded))
	}

	found := false
	for _, id := range tint.TintIDs() {
		if id == "register-probe" {
			found = true
			break
		}
	}
	if !found {
		t.Error("register-probe missing from TintIDs after load")
	}
}

func TestCopyColorIndependence(t *testing.T) {
	original := &tint.Color{R: 255, G: 128, B: 0, A: 255}
	dup := copyColor(original)

	if dup == original {
		t.Fatal("copy aliases the original pointer")
	}
	if *dup != *original {
		t.Fatalf("copy = %+v, want %+v", *dup, *original)
	}

	dup.R = 0
	if original.R != 255 {
		t.Error("mutating the copy changed the original")
	}

	if copyColor(nil) != nil {
		t.Error("copyColor(nil) should be nil")
	}
}
