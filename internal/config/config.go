package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rodviz/internal/rod"
)

const (
	DefaultRodLength = 10
	DefaultInterval  = time.Second
	DefaultTheme     = "ocean"
	DefaultDataDir   = ".rodviz"
)

// DefaultPrices is the textbook price table.
var DefaultPrices = []float64{1, 5, 8, 9, 10, 17, 17, 20, 24, 30}

var ErrUnknownPreset = errors.New("config: unknown preset")

type Config struct {
	RodLength int           `yaml:"rod_length"`
	Prices    []float64     `yaml:"prices"`
	Interval  time.Duration `yaml:"interval"`
	Theme     string        `yaml:"theme"`
	DataDir   string        `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		RodLength: DefaultRodLength,
		Prices:    append([]float64(nil), DefaultPrices...),
		Interval:  DefaultInterval,
		Theme:     DefaultTheme,
		DataDir:   DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the inputs against the same rules the trace generator
// applies, plus a positive playback interval.
func (c *Config) Validate() error {
	if err := rod.Validate(c.Prices, c.RodLength); err != nil {
		return err
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	return nil
}

// PricesInput renders the price table the way the input form expects it.
func (c *Config) PricesInput() string {
	return rod.FormatPrices(c.Prices)
}
