package config

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatloop/internal/control"
	"github.com/san-kum/heatloop/internal/plant"
	"github.com/san-kum/heatloop/internal/schedule"
)

const (
	DefaultWarmupSamples   = 5
	DefaultHeatingSamples  = 20
	DefaultCooldownSamples = 10
	DefaultPassiveInterval = time.Second
	DefaultBand            = 1.0
)

var (
	ErrNegativeSamples = errors.New("config: passive sample counts must not be negative")
	ErrInvalidInterval = errors.New("config: intervals must not be negative")
	ErrSampleTime      = errors.New("config: controller sample time must be positive")
	ErrBand            = errors.New("config: metrics band must not be negative")
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Plant          plant.Params     `yaml:"plant"`
	Passive        PassiveConfig    `yaml:"passive"`
	GainScheduling schedule.Config  `yaml:"gain_scheduling"`
	Controller     ControllerConfig `yaml:"controller"`
	Metrics        MetricsConfig    `yaml:"metrics"`
}

// PassiveConfig scripts the open-loop scenario: samples before, during and
// after a single heating period, spaced by Interval.
type PassiveConfig struct {
	WarmupSamples   int           `yaml:"warmup_samples"`
	HeatingSamples  int           `yaml:"heating_samples"`
	CooldownSamples int           `yaml:"cooldown_samples"`
	Interval        time.Duration `yaml:"interval"`
}

type ControllerConfig struct {
	SampleTime time.Duration `yaml:"sample_time"`
}

type MetricsConfig struct {
	Band float64 `yaml:"band"`
}

func DefaultConfig() *Config {
	return &Config{
		Plant: plant.DefaultParams(),
		Passive: PassiveConfig{
			WarmupSamples:   DefaultWarmupSamples,
			HeatingSamples:  DefaultHeatingSamples,
			CooldownSamples: DefaultCooldownSamples,
			Interval:        DefaultPassiveInterval,
		},
		GainScheduling: schedule.DefaultConfig(),
		Controller: ControllerConfig{
			SampleTime: control.DefaultSampleTime,
		},
		Metrics: MetricsConfig{
			Band: DefaultBand,
		},
	}
}

// Embedded returns the configuration shipped with the binary.
func Embedded() (*Config, error) {
	return Parse(defaultsYAML)
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Plant.Validate(); err != nil {
		return err
	}
	if err := c.GainScheduling.Validate(); err != nil {
		return fmt.Errorf("config: gain_scheduling: %w", err)
	}
	p := c.Passive
	if p.WarmupSamples < 0 || p.HeatingSamples < 0 || p.CooldownSamples < 0 {
		return ErrNegativeSamples
	}
	if p.Interval < 0 {
		return ErrInvalidInterval
	}
	if c.Controller.SampleTime <= 0 {
		return ErrSampleTime
	}
	if c.Metrics.Band < 0 {
		return ErrBand
	}
	return nil
}
