package scenario

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/san-kum/heatloop/internal/config"
	"github.com/san-kum/heatloop/internal/metrics"
)

// Heater is what the passive scenario needs from the plant.
type Heater interface {
	Temperature() float64
	SetHeating(on bool)
	Heating() bool
}

type Reporter interface {
	Status(elapsed, temperature float64)
	Event(msg string)
}

// Passive samples the heater's unforced response: idle, one heating period,
// idle again. It applies no feedback.
type Passive struct {
	cfg      config.PassiveConfig
	heater   Heater
	reporter Reporter
	clock    clockwork.Clock
	log      *slog.Logger
	metrics  []metrics.Metric
}

func NewPassive(cfg config.PassiveConfig, heater Heater, reporter Reporter, opts ...Option) *Passive {
	o := newOptions(opts)
	return &Passive{
		cfg:      cfg,
		heater:   heater,
		reporter: reporter,
		clock:    o.clock,
		log:      o.log,
		metrics:  []metrics.Metric{metrics.NewDutyCycle()},
	}
}

func (p *Passive) Name() string { return "passive" }

func (p *Passive) Run(ctx context.Context) (*Trace, error) {
	start := p.clock.Now()
	trace := newTrace(p.Name(), p.cfg.WarmupSamples+p.cfg.HeatingSamples+p.cfg.CooldownSamples)
	for _, m := range p.metrics {
		m.Reset()
	}

	phases := []struct {
		event   string
		heating bool
		samples int
	}{
		{"", false, p.cfg.WarmupSamples},
		{"STARTING TO HEAT", true, p.cfg.HeatingSamples},
		{"NO MORE HEAT", false, p.cfg.CooldownSamples},
	}

	for _, phase := range phases {
		if phase.event != "" {
			p.reporter.Event(phase.event)
			p.heater.SetHeating(phase.heating)
		}
		for i := 0; i < phase.samples; i++ {
			select {
			case <-ctx.Done():
				p.collect(trace)
				return trace, ctx.Err()
			default:
			}
			p.sample(start, trace)
			p.clock.Sleep(p.cfg.Interval)
		}
	}

	p.log.Debug("passive scenario finished", "samples", len(trace.Times))
	p.collect(trace)
	return trace, nil
}

// sample reports whole elapsed seconds; a sleep that wakes slightly early
// still counts as the full second.
func (p *Passive) sample(start time.Time, trace *Trace) {
	elapsed := float64(int(p.clock.Since(start).Seconds() + 0.005))
	temp := p.heater.Temperature()
	p.reporter.Status(elapsed, temp)

	s := metrics.Sample{Time: elapsed, Temperature: temp, Heating: p.heater.Heating()}
	for _, m := range p.metrics {
		m.Observe(s)
	}
	trace.add(elapsed, temp)
}

func (p *Passive) collect(trace *Trace) {
	for _, m := range p.metrics {
		trace.Metrics[m.Name()] = m.Value()
	}
}
