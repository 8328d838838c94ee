package schedule

import "errors"

// ErrNegativeGain indicates a profile with a negative kp, ki or kd.
var ErrNegativeGain = errors.New("schedule: profile gains must not be negative")

type Tuning struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

func (t Tuning) Validate() error {
	if t.Kp < 0 || t.Ki < 0 || t.Kd < 0 {
		return ErrNegativeGain
	}
	return nil
}

// Profiles holds one tuning per gap class.
type Profiles struct {
	LargeGap Tuning `yaml:"large_gap"`
	SmallGap Tuning `yaml:"small_gap"`
}

func DefaultProfiles() Profiles {
	return Profiles{
		LargeGap: Tuning{Kp: 4, Ki: 0.2, Kd: 1},
		SmallGap: Tuning{Kp: 1, Ki: 0.05, Kd: 0.25},
	}
}

func (p Profiles) For(g Gap) Tuning {
	if g == LargeGap {
		return p.LargeGap
	}
	return p.SmallGap
}

func (p Profiles) Validate() error {
	if err := p.LargeGap.Validate(); err != nil {
		return err
	}
	return p.SmallGap.Validate()
}
