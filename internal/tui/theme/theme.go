// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Selected rows, subtle highlight
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Gridlines, muted elements
	Accent      string `toml:"accent"`       // Titles, borders

	// Priority colors
	Urgent string `toml:"urgent"`
	High   string `toml:"high"`
	Medium string `toml:"medium"`
	Low    string `toml:"low"`

	// Schedule status colors (block backgrounds)
	Draft     string `toml:"draft"`
	Pending   string `toml:"pending"`
	Confirmed string `toml:"confirmed"`
	Cancelled string `toml:"cancelled"`

	// Grid furniture
	Busy    string `toml:"busy"`    // busy-time overlay
	Preview string `toml:"preview"` // drop-preview ghost
	Now     string `toml:"now"`     // now marker
	Warning string `toml:"warning"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	return &t, nil
}

// Available returns the names of the embedded themes.
func Available() []string {
	entries, err := embeddedThemes.ReadDir("embedded")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	return names
}
