package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"textbook": {
		RodLength: 10,
		Prices:    []float64{1, 5, 8, 9, 10, 17, 17, 20, 24, 30},
	},
	"single": {
		RodLength: 1,
		Prices:    []float64{5},
	},
	"linear": {
		RodLength: 6,
		Prices:    []float64{2, 4, 6, 8, 10, 12},
	},
	"ties": {
		RodLength: 4,
		Prices:    []float64{1, 2, 3, 4},
	},
	"bulk": {
		RodLength: 8,
		Prices:    []float64{1, 2, 3, 4, 5, 6, 7, 20},
	},
	"fractional": {
		RodLength: 5,
		Prices:    []float64{0.5, 1.5, 2, 3.25, 3.5},
	},
}

// GetPreset returns a copy of the named preset filled in with defaults, or
// nil when there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.RodLength = p.RodLength
	cfg.Prices = append([]float64(nil), p.Prices...)
	return cfg
}

// LookupPreset is GetPreset with an error naming the available presets.
func LookupPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
