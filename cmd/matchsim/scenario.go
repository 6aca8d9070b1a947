package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"match3core/internal/config"
	"match3core/internal/grid"
	"match3core/internal/sim"
)

// Scenario is the YAML-loadable shape of a demo run: board shape plus the
// tick-pacing preset to drive it with. Grounded on dshills-dungo's
// pkg/dungeon/config.go YAML-tagged struct style.
type Scenario struct {
	Seed    uint64  `yaml:"seed"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Colors  int     `yaml:"colors"`
	Preset  string  `yaml:"preset"` // "human" or "ai"
	Ticks   int     `yaml:"ticks"`
	Weights []float64 `yaml:"weights,omitempty"`
}

// DefaultScenario mirrors grid.DefaultGameConfig with a human-play preset.
func DefaultScenario() Scenario {
	return Scenario{
		Seed:   1,
		Width:  8,
		Height: 8,
		Colors: 5,
		Preset: "human",
		Ticks:  120,
	}
}

// LoadScenario reads a YAML scenario file over DefaultScenario's values,
// returning DefaultScenario unchanged when path is empty. A file that cannot
// be read or parsed yields an error.
func LoadScenario(path string) (Scenario, error) {
	s := DefaultScenario()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, nil
}

// ApplyEnvOverrides layers MATCHSIM_* environment variables on top of s,
// giving the demo binary a quick way to tweak a run without editing the
// scenario file.
func (s Scenario) ApplyEnvOverrides() Scenario {
	s.Seed = config.GetEnvUint64("MATCHSIM_SEED", s.Seed)
	s.Width = config.GetEnvInt("MATCHSIM_WIDTH", s.Width)
	s.Height = config.GetEnvInt("MATCHSIM_HEIGHT", s.Height)
	s.Colors = config.GetEnvInt("MATCHSIM_COLORS", s.Colors)
	s.Preset = config.GetEnvString("MATCHSIM_PRESET", s.Preset)
	s.Ticks = config.GetEnvInt("MATCHSIM_TICKS", s.Ticks)
	return s
}

// GameConfig builds the grid.GameConfig this scenario describes.
func (s Scenario) GameConfig() grid.GameConfig {
	cfg := grid.DefaultGameConfig()
	cfg.Width = s.Width
	cfg.Height = s.Height
	cfg.TileTypesCount = s.Colors
	cfg.TypeWeights = s.Weights
	return cfg
}

// SimConfig builds the sim.Config this scenario's preset names.
func (s Scenario) SimConfig() sim.Config {
	if s.Preset == "ai" {
		return sim.ForAI()
	}
	return sim.ForHumanPlay()
}
