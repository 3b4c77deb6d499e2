package tui

import (
	_ "embed"
	"fmt"

	"github.com/kvhuynh/sovereign/pkg/turn"
	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var themesYAML []byte

// ThemePreset seeds the world-creation form with a coherent setting.
type ThemePreset struct {
	Name        string `yaml:"name"`
	Theme       string `yaml:"theme"`
	Kingdom     string `yaml:"kingdom"`
	Background  string `yaml:"background"`
	Leader      string `yaml:"leader"`
	Description string `yaml:"description"`
}

// Settings converts the preset into session settings.
func (p ThemePreset) Settings() turn.Settings {
	return turn.Settings{
		WorldTheme:        p.Theme,
		KingdomName:       p.Kingdom,
		Background:        p.Background,
		LeaderName:        p.Leader,
		LeaderDescription: p.Description,
	}
}

// LoadThemePresets parses the embedded preset catalogue.
func LoadThemePresets() ([]ThemePreset, error) {
	var doc struct {
		Presets []ThemePreset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(themesYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse theme presets: %w", err)
	}
	if len(doc.Presets) == 0 {
		return nil, fmt.Errorf("theme preset catalogue is empty")
	}
	return doc.Presets, nil
}
