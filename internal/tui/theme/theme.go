// Package theme provides color themes for the TUI.
package theme

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Day header, alternating hour rows
	BgSelection string `toml:"bg_selection"` // Selected schedule, hover row
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Clock labels, grid lines
	Accent      string `toml:"accent"`       // Title, focused borders
	Warning     string `toml:"warning"`      // Prompts, collapsed resize
	Error       string `toml:"error"`        // Persistence failures

	// Sidebar palette (can override base theme values)
	SidebarBg     string `toml:"sidebar_bg"`
	SidebarBorder string `toml:"sidebar_border"`
}

var builtin = map[string]Theme{
	"mocha": {
		Name: "mocha", Bg: "#1e1e2e", BgHighlight: "#313244", BgSelection: "#45475a",
		Fg: "#cdd6f4", FgMuted: "#6c7086", Accent: "#cba6f7", Warning: "#fab387", Error: "#f38ba8",
	},
	"macchiato": {
		Name: "macchiato", Bg: "#24273a", BgHighlight: "#363a4f", BgSelection: "#494d64",
		Fg: "#cad3f5", FgMuted: "#6e738d", Accent: "#c6a0f6", Warning: "#f5a97f", Error: "#ed8796",
	},
	"frappe": {
		Name: "frappe", Bg: "#303446", BgHighlight: "#414559", BgSelection: "#51576d",
		Fg: "#c6d0f5", FgMuted: "#737994", Accent: "#ca9ee6", Warning: "#ef9f76", Error: "#e78284",
	},
	"latte": {
		Name: "latte", Bg: "#eff1f5", BgHighlight: "#ccd0da", BgSelection: "#bcc0cc",
		Fg: "#4c4f69", FgMuted: "#9ca0b0", Accent: "#8839ef", Warning: "#fe640b", Error: "#d20f39",
	},
	"light": {
		Name: "light", Bg: "#ffffff", BgHighlight: "#f0f0f0", BgSelection: "#dcdcdc",
		Fg: "#1f1f1f", FgMuted: "#8a8a8a", Accent: "#3b5bdb", Warning: "#e67700", Error: "#c92a2a",
	},
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load returns a theme by built-in name or from a .toml file path.
// Unknown names fall back to mocha.
func Load(name string) (*Theme, error) {
	if strings.HasSuffix(strings.ToLower(name), ".toml") {
		return LoadFile(name)
	}
	if name == "" {
		name = "mocha"
	}
	t, ok := builtin[strings.ToLower(name)]
	if !ok {
		t = builtin["mocha"]
	}
	t.applyDefaults()
	return &t, nil
}

// LoadFile parses a theme from a TOML file. Missing keys are taken from mocha.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", path, err)
	}

	t := builtin["mocha"]
	t.Name = ""
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", path, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(lastElem(path), ".toml")
	}
	t.applyDefaults()

	return &t, nil
}

func lastElem(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func (t *Theme) applyDefaults() {
	if t.SidebarBg == "" {
		t.SidebarBg = coalesce(t.BgHighlight, t.Bg)
	}
	if t.SidebarBorder == "" {
		t.SidebarBorder = t.Accent
	}
	if t.Error == "" {
		t.Error = t.Warning
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	_, ok := builtin[strings.ToLower(name)]
	return ok
}
