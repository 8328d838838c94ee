package scenario

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
)

// Scenario is one runnable script against a fresh plant.
type Scenario interface {
	Name() string
	Run(ctx context.Context) (*Trace, error)
}

// Trace is the sampled temperature history of a run and its metrics.
type Trace struct {
	Name         string
	Times        []float64
	Temperatures []float64
	Metrics      map[string]float64
}

func newTrace(name string, capacity int) *Trace {
	return &Trace{
		Name:         name,
		Times:        make([]float64, 0, capacity),
		Temperatures: make([]float64, 0, capacity),
		Metrics:      make(map[string]float64),
	}
}

func (t *Trace) add(elapsed, temperature float64) {
	t.Times = append(t.Times, elapsed)
	t.Temperatures = append(t.Temperatures, temperature)
}

type options struct {
	clock clockwork.Clock
	log   *slog.Logger
}

type Option func(*options)

func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

func newOptions(opts []Option) options {
	o := options{
		clock: clockwork.NewRealClock(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
