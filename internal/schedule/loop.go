package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/san-kum/heatloop/internal/metrics"
)

// Plant is the controlled process. Temperature advances the process model
// on every call.
type Plant interface {
	Temperature() float64
	ApplyCommand(u float64)
	Heating() bool
}

// Controller is the single-step control algorithm driven by the loop.
type Controller interface {
	Compute()
	SetTunings(kp, ki, kd float64) error
	SetOutputLimits(min, max float64) error
	SetAuto(auto bool)
}

// ControllerFactory builds a controller that reads its measurement from
// input and writes its command to output.
type ControllerFactory func(input func() float64, output func(float64), setpoint float64, t Tuning) Controller

type Reporter interface {
	Status(elapsed, temperature float64)
	Event(msg string)
}

type Result struct {
	Times        []float64
	Temperatures []float64
	Outputs      []float64
	Retunes      int
	Gap          Gap
	Metrics      map[string]float64
}

type Option func(*Loop)

func WithClock(c clockwork.Clock) Option {
	return func(l *Loop) { l.clock = c }
}

func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// Loop runs a PID controller against a plant and swaps the controller's
// tuning whenever the gap to the setpoint crosses the large-gap threshold.
type Loop struct {
	cfg           Config
	plant         Plant
	newController ControllerFactory
	reporter      Reporter
	clock         clockwork.Clock
	log           *slog.Logger
	metrics       []metrics.Metric
}

func New(cfg Config, plant Plant, factory ControllerFactory, reporter Reporter, opts ...Option) *Loop {
	l := &Loop{
		cfg:           cfg,
		plant:         plant,
		newController: factory,
		reporter:      reporter,
		clock:         clockwork.NewRealClock(),
		log:           slog.Default(),
		metrics:       make([]metrics.Metric, 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) AddMetric(m metrics.Metric) { l.metrics = append(l.metrics, m) }

func (l *Loop) Run(ctx context.Context) (*Result, error) {
	if err := l.cfg.Validate(); err != nil {
		return nil, err
	}

	start := l.clock.Now()
	result := &Result{
		Times:        make([]float64, 0, l.cfg.Iterations),
		Temperatures: make([]float64, 0, l.cfg.Iterations),
		Outputs:      make([]float64, 0, l.cfg.Iterations),
		Metrics:      make(map[string]float64),
	}
	for _, m := range l.metrics {
		m.Reset()
	}

	gap := l.classify(l.plant.Temperature())
	tuning := l.cfg.Profiles.For(gap)

	var lastOut float64
	output := func(u float64) {
		lastOut = u
		l.plant.ApplyCommand(u)
	}

	ctrl := l.newController(l.plant.Temperature, output, l.cfg.Setpoint, tuning)
	if err := ctrl.SetOutputLimits(l.cfg.OutputMin, l.cfg.OutputMax); err != nil {
		return nil, fmt.Errorf("set output limits: %w", err)
	}
	ctrl.SetAuto(true)
	l.log.Debug("controller ready", "gap", gap, "kp", tuning.Kp, "ki", tuning.Ki, "kd", tuning.Kd)

	for i := 0; i < l.cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			result.Gap = gap
			l.collect(result)
			return result, ctx.Err()
		default:
		}

		temp := l.plant.Temperature()
		if g := l.classify(temp); g != gap {
			l.reporter.Event(retuneMessage(g))
			t := l.cfg.Profiles.For(g)
			if err := ctrl.SetTunings(t.Kp, t.Ki, t.Kd); err != nil {
				return result, fmt.Errorf("retune for %s: %w", g, err)
			}
			l.log.Debug("retuned", "gap", g, "temperature", temp, "iteration", i)
			gap = g
			result.Retunes++
		}

		ctrl.Compute()

		elapsed := l.clock.Since(start).Seconds()
		s := metrics.Sample{Time: elapsed, Temperature: temp, Heating: l.plant.Heating(), Output: lastOut}
		for _, m := range l.metrics {
			m.Observe(s)
		}
		result.Times = append(result.Times, elapsed)
		result.Temperatures = append(result.Temperatures, temp)
		result.Outputs = append(result.Outputs, lastOut)

		if i%l.cfg.ReportEvery == 0 {
			l.reporter.Status(elapsed, l.plant.Temperature())
		}

		l.clock.Sleep(l.cfg.Interval)
	}

	result.Gap = gap
	l.collect(result)
	return result, nil
}

func (l *Loop) classify(temperature float64) Gap {
	return Classify(temperature, l.cfg.Setpoint, l.cfg.LargeGapThreshold)
}

func (l *Loop) collect(result *Result) {
	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func retuneMessage(g Gap) string {
	if g == LargeGap {
		return "RETUNING FOR LARGE GAP"
	}
	return "RETUNING FOR SMALL GAP"
}

// Config parameterizes one run of the loop.
type Config struct {
	Setpoint          float64       `yaml:"setpoint"`
	LargeGapThreshold float64       `yaml:"large_gap_threshold"`
	Iterations        int           `yaml:"iterations"`
	ReportEvery       int           `yaml:"report_every"`
	Interval          time.Duration `yaml:"interval"`
	OutputMin         float64       `yaml:"output_min"`
	OutputMax         float64       `yaml:"output_max"`
	Profiles          Profiles      `yaml:"profiles"`
}

func DefaultConfig() Config {
	return Config{
		Setpoint:          88,
		LargeGapThreshold: 10,
		Iterations:        100000,
		ReportEvery:       1000,
		Interval:          time.Millisecond,
		OutputMin:         0,
		OutputMax:         1,
		Profiles:          DefaultProfiles(),
	}
}

func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", c.Iterations)
	}
	if c.ReportEvery <= 0 {
		return fmt.Errorf("report_every must be positive, got %d", c.ReportEvery)
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %v", c.Interval)
	}
	if c.LargeGapThreshold < 0 {
		return fmt.Errorf("large_gap_threshold must not be negative, got %f", c.LargeGapThreshold)
	}
	if c.OutputMin >= c.OutputMax {
		return fmt.Errorf("output limits [%f, %f] are empty", c.OutputMin, c.OutputMax)
	}
	return c.Profiles.Validate()
}
