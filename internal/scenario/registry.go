package scenario

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/san-kum/heatloop/internal/config"
	"github.com/san-kum/heatloop/internal/control"
	"github.com/san-kum/heatloop/internal/metrics"
	"github.com/san-kum/heatloop/internal/plant"
	"github.com/san-kum/heatloop/internal/report"
	"github.com/san-kum/heatloop/internal/schedule"
)

const (
	PassiveID        = 0
	GainSchedulingID = 1
)

var ErrUnknownScenario = errors.New("scenario: unknown scenario")

// Registry maps scenario numbers to constructors. Each Get builds a fresh
// plant so runs never share state.
type Registry struct {
	scenarios map[int]func() Scenario
}

func NewRegistry() *Registry {
	return &Registry{
		scenarios: make(map[int]func() Scenario),
	}
}

// Default registers the passive scenario as 0 and the gain-scheduling loop
// as 1, both reporting to out.
func Default(cfg *config.Config, out io.Writer, opts ...Option) *Registry {
	o := newOptions(opts)
	r := NewRegistry()

	r.Register(PassiveID, func() Scenario {
		rep := report.New(out)
		h := plant.NewHeater(cfg.Plant, plant.WithClock(o.clock), plant.WithLogger(o.log))
		h.AddObserver(rep)
		return NewPassive(cfg.Passive, h, rep, opts...)
	})

	r.Register(GainSchedulingID, func() Scenario {
		rep := report.New(out)
		h := plant.NewHeater(cfg.Plant, plant.WithClock(o.clock), plant.WithLogger(o.log))
		h.AddObserver(rep)

		factory := func(in func() float64, sink func(float64), sp float64, t schedule.Tuning) schedule.Controller {
			return control.NewPID(in, sink, sp, t.Kp, t.Ki, t.Kd, true,
				control.WithClock(o.clock),
				control.WithSampleTime(cfg.Controller.SampleTime))
		}

		loop := schedule.New(cfg.GainScheduling, h, factory, rep,
			schedule.WithClock(o.clock), schedule.WithLogger(o.log))
		for _, m := range metrics.Defaults(cfg.GainScheduling.Setpoint, cfg.Metrics.Band) {
			loop.AddMetric(m)
		}
		return NewGainScheduling(loop)
	})

	return r
}

func (r *Registry) Register(id int, fn func() Scenario) {
	r.scenarios[id] = fn
}

func (r *Registry) Get(id int) (Scenario, error) {
	fn, ok := r.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScenario, id)
	}
	return fn(), nil
}

func (r *Registry) IDs() []int {
	return slices.Sorted(maps.Keys(r.scenarios))
}
