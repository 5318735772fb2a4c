package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load macchiato theme", themeName: "macchiato", wantName: "macchiato"},
		{name: "load frappe theme", themeName: "frappe", wantName: "frappe"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "load light theme", themeName: "light", wantName: "light"},
		{name: "case insensitive", themeName: "Latte", wantName: "latte"},
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha"},
		{name: "invalid theme falls back to mocha", themeName: "nonexistent", wantName: "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_ThemeColors(t *testing.T) {
	for _, name := range Available() {
		theme, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%s) unexpected error: %v", name, err)
		}

		colors := map[string]string{
			"Bg":            theme.Bg,
			"BgHighlight":   theme.BgHighlight,
			"BgSelection":   theme.BgSelection,
			"Fg":            theme.Fg,
			"FgMuted":       theme.FgMuted,
			"Accent":        theme.Accent,
			"Warning":       theme.Warning,
			"Error":         theme.Error,
			"SidebarBg":     theme.SidebarBg,
			"SidebarBorder": theme.SidebarBorder,
		}

		for field, hex := range colors {
			if len(hex) != 7 || hex[0] != '#' {
				t.Errorf("%s.%s = %q, want 7-char hex string", name, field, hex)
			}
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solar.toml")
	content := `
bg = "#002b36"
fg = "#eee8d5"
accent = "#b58900"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write theme: %v", err)
	}

	theme, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	if theme.Name != "solar" {
		t.Errorf("expected name from file, got %q", theme.Name)
	}
	if theme.Bg != "#002b36" || theme.Accent != "#b58900" {
		t.Errorf("file colors not applied: %+v", theme)
	}
	if theme.Warning != "#fab387" {
		t.Errorf("missing keys should come from mocha, got warning %q", theme.Warning)
	}
	if theme.SidebarBorder != "#b58900" {
		t.Errorf("sidebar border should default to accent, got %q", theme.SidebarBorder)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("bg = "), 0o644); err != nil {
		t.Fatalf("failed to write theme: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestAvailable(t *testing.T) {
	available := Available()

	expected := []string{"frappe", "latte", "light", "macchiato", "mocha"}
	if len(available) != len(expected) {
		t.Fatalf("Available() returned %d themes, want %d", len(available), len(expected))
	}
	for i, want := range expected {
		if available[i] != want {
			t.Errorf("Available()[%d] = %q, want %q", i, available[i], want)
		}
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected bool
	}{
		{name: "exact match", theme: "mocha", expected: true},
		{name: "case insensitive", theme: "Mocha", expected: true},
		{name: "missing theme", theme: "unknown", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.theme); got != tt.expected {
				t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.expected)
			}
		})
	}
}

func TestColor(t *testing.T) {
	hex := "#89b4fa"
	c := Color(hex)
	if string(c) != hex {
		t.Errorf("Color(%q) = %q, want %q", hex, string(c), hex)
	}
}
