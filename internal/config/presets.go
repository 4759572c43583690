package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vancomm/minesweeper-cli/internal/mines"
)

//go:embed presets.yaml
var defaultPresetsYAML []byte

type Presets struct {
	Default string                  `yaml:"default"`
	Presets map[string]mines.Config `yaml:"presets"`
}

// LoadPresets reads game presets. Search order: customPath, then
// ~/.mines/presets.yaml, then the built-in defaults.
func LoadPresets(customPath string) (*Presets, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read presets %s: %w", customPath, err)
		}
		return parsePresets(data, customPath)
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".mines", "presets.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return parsePresets(data, path)
		}
	}

	return parsePresets(defaultPresetsYAML, "built-in presets")
}

func parsePresets(data []byte, source string) (*Presets, error) {
	var p Presets
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", source, err)
	}
	if len(p.Presets) == 0 {
		return nil, fmt.Errorf("%s: no presets defined", source)
	}

	// names are matched case-insensitively
	presets := make(map[string]mines.Config, len(p.Presets))
	for name, cfg := range p.Presets {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: preset %q: %w", source, name, err)
		}
		key := strings.ToLower(name)
		if _, ok := presets[key]; ok {
			return nil, fmt.Errorf("%s: preset %q defined twice", source, key)
		}
		presets[key] = cfg
	}
	p.Presets = presets
	p.Default = strings.ToLower(p.Default)
	if _, ok := p.Presets[p.Default]; !ok {
		return nil, fmt.Errorf("%s: default preset %q is not defined", source, p.Default)
	}
	return &p, nil
}

// Get looks a preset up by name; the empty name selects the default.
func (p *Presets) Get(name string) (mines.Config, error) {
	if name == "" {
		name = p.Default
	}
	cfg, ok := p.Presets[strings.ToLower(name)]
	if !ok {
		return mines.Config{}, fmt.Errorf(
			"unknown preset %q (have %s)", name, strings.Join(p.Names(), ", "),
		)
	}
	return cfg, nil
}

func (p *Presets) Names() []string {
	names := make([]string, 0, len(p.Presets))
	for name := range p.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
