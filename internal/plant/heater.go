package plant

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultAmbientTemperature = 18.0
	DefaultMaxTemperature     = 100.0
	DefaultHeatLossRate       = 0.25
	DefaultHeatGainRate       = 5.0
)

// Params are the constants of the thermal model. Rates are in degrees per
// second.
type Params struct {
	AmbientTemperature float64 `yaml:"ambient_temperature"`
	MaxTemperature     float64 `yaml:"max_temperature"`
	HeatLossRate       float64 `yaml:"heat_loss_rate"`
	HeatGainRate       float64 `yaml:"heat_gain_rate"`
}

func DefaultParams() Params {
	return Params{
		AmbientTemperature: DefaultAmbientTemperature,
		MaxTemperature:     DefaultMaxTemperature,
		HeatLossRate:       DefaultHeatLossRate,
		HeatGainRate:       DefaultHeatGainRate,
	}
}

func (p Params) Validate() error {
	if p.MaxTemperature <= p.AmbientTemperature {
		return ErrInvalidRange
	}
	if p.HeatLossRate < 0 || p.HeatGainRate < 0 {
		return ErrNegativeRate
	}
	return nil
}

// Observer is notified whenever the heating state actually changes.
type Observer interface {
	OnHeatingChange(on bool, temperature float64, at time.Time)
}

type Option func(*Heater)

func WithClock(c clockwork.Clock) Option {
	return func(h *Heater) { h.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Heater) { h.log = l }
}

// Heater is a tank of water with an on/off heating element. It is not safe
// for concurrent use.
type Heater struct {
	params      Params
	clock       clockwork.Clock
	log         *slog.Logger
	observers   []Observer
	temperature float64
	heating     bool
	lastUpdate  time.Time
}

func NewHeater(params Params, opts ...Option) *Heater {
	h := &Heater{
		params:      params,
		clock:       clockwork.NewRealClock(),
		log:         slog.Default(),
		observers:   make([]Observer, 0),
		temperature: params.AmbientTemperature,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.lastUpdate = h.clock.Now()
	return h
}

func (h *Heater) AddObserver(o Observer) { h.observers = append(h.observers, o) }

// Temperature advances the model to the current instant and returns the new
// temperature. Every call both updates and returns the state, so two calls
// over an interval exchange exactly as much heat as one call at its end.
func (h *Heater) Temperature() float64 {
	h.advance()
	return h.temperature
}

// Heating reports the current heating state without advancing the model.
func (h *Heater) Heating() bool { return h.heating }

// ApplyCommand sets heating from a controller output. Only an output of
// exactly zero turns heating off; any other value, however small, turns it
// fully on.
func (h *Heater) ApplyCommand(u float64) {
	h.SetHeating(u != 0)
}

// SetHeating switches the element. The model is first brought current under
// the old state so the switching instant is attributed correctly.
func (h *Heater) SetHeating(on bool) {
	if on == h.heating {
		return
	}
	h.advance()
	h.heating = on
	for _, o := range h.observers {
		o.OnHeatingChange(on, h.temperature, h.lastUpdate)
	}
}

func (h *Heater) advance() {
	now := h.clock.Now()
	elapsed := now.Sub(h.lastUpdate).Seconds()
	if elapsed < 0 {
		h.log.Warn("clock moved backwards, ignoring interval",
			"elapsed", elapsed, "last", h.lastUpdate, "now", now)
		elapsed = 0
	}

	t := h.temperature - h.params.HeatLossRate*elapsed
	if h.heating {
		t += h.params.HeatGainRate * elapsed
	}

	h.temperature = clamp(t, h.params.AmbientTemperature, h.params.MaxTemperature)
	h.lastUpdate = now
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}
