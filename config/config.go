// Package config loads the YAML configuration shared by the CLI and the
// HTTP server.
package config

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/errors"
)

// Config is the file layout. Zero values are replaced by Default's.
type Config struct {
	Module struct {
		Wasm             string `yaml:"wasm"`
		EpheDir          string `yaml:"ephe_dir"`
		EphePath         string `yaml:"ephe_path"`
		MemoryLimitPages uint32 `yaml:"memory_limit_pages"`
	} `yaml:"module"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Server struct {
		Addr string `yaml:"addr"`
		Mode string `yaml:"mode"` // gin mode: debug, release or test
	} `yaml:"server"`

	Chart struct {
		HouseSystem string  `yaml:"house_system"`
		Latitude    float64 `yaml:"latitude"`
		Longitude   float64 `yaml:"longitude"`
	} `yaml:"chart"`

	Table struct {
		Bodies []string `yaml:"bodies"`
		Step   float64  `yaml:"step"` // days
	} `yaml:"table"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.Module.EphePath = "/sweph"
	c.Log.Level = "info"
	c.Server.Addr = ":8080"
	c.Server.Mode = "release"
	c.Chart.HouseSystem = "P"
	c.Table.Bodies = []string{"sun", "moon", "mercury", "venus", "mars", "jupiter", "saturn", "uranus", "neptune", "pluto"}
	c.Table.Step = 1
	return c
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read config")
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values yaml cannot.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.HouseSystem(); err != nil {
		return err
	}
	if _, err := c.Bodies(); err != nil {
		return err
	}
	if c.Table.Step <= 0 {
		return invalid("table.step must be positive")
	}
	if c.Chart.Latitude < -90 || c.Chart.Latitude > 90 {
		return invalid("chart.latitude out of range")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return invalid("server.mode must be debug, release or test")
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log.level")
	}
	return lvl, nil
}

// HouseSystem parses Chart.HouseSystem, a single letter such as "P".
func (c *Config) HouseSystem() (swisseph.HouseSystem, error) {
	if len(c.Chart.HouseSystem) != 1 {
		return 0, invalid("chart.house_system must be one letter")
	}
	return swisseph.HouseSystem(strings.ToUpper(c.Chart.HouseSystem)[0]), nil
}

// Bodies resolves Table.Bodies by name.
func (c *Config) Bodies() ([]swisseph.Body, error) {
	return ParseBodies(c.Table.Bodies)
}

var bodyNames = map[string]swisseph.Body{
	"sun":      swisseph.Sun,
	"moon":     swisseph.Moon,
	"mercury":  swisseph.Mercury,
	"venus":    swisseph.Venus,
	"mars":     swisseph.Mars,
	"jupiter":  swisseph.Jupiter,
	"saturn":   swisseph.Saturn,
	"uranus":   swisseph.Uranus,
	"neptune":  swisseph.Neptune,
	"pluto":    swisseph.Pluto,
	"meannode": swisseph.MeanNode,
	"truenode": swisseph.TrueNode,
	"meanapog": swisseph.MeanApog,
	"oscuapog": swisseph.OscuApog,
	"earth":    swisseph.Earth,
	"chiron":   swisseph.Chiron,
	"pholus":   swisseph.Pholus,
	"ceres":    swisseph.Ceres,
	"pallas":   swisseph.Pallas,
	"juno":     swisseph.Juno,
	"vesta":    swisseph.Vesta,
	"intpapog": swisseph.IntpApog,
	"intpperg": swisseph.IntpPerg,
}

// ParseBody resolves a body by its lower-case name, e.g. "mars".
func ParseBody(name string) (swisseph.Body, error) {
	b, ok := bodyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.NotFound(errors.PhaseConfig, "body", name)
	}
	return b, nil
}

// ParseBodies resolves a list of names.
func ParseBodies(names []string) ([]swisseph.Body, error) {
	out := make([]swisseph.Body, 0, len(names))
	for _, n := range names {
		b, err := ParseBody(n)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func invalid(msg string) error {
	return errors.InvalidInput(errors.PhaseConfig, msg)
}
