package control

import (
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultSampleTime = 100 * time.Millisecond
	DefaultOutputMin  = 0.0
	DefaultOutputMax  = 255.0
)

type Option func(*PID)

func WithClock(c clockwork.Clock) Option {
	return func(p *PID) { p.clock = c }
}

func WithSampleTime(d time.Duration) Option {
	return func(p *PID) {
		if d > 0 {
			p.sampleTime = d
		}
	}
}

// PID is a sample-time gated controller with derivative on measurement and
// an integral term clamped to the output limits.
type PID struct {
	input  func() float64
	output func(float64)

	Setpoint float64

	// user-facing gains
	Kp float64
	Ki float64
	Kd float64

	// gains scaled by the sample time
	kp float64
	ki float64
	kd float64

	outMin float64
	outMax float64

	iTerm     float64
	lastInput float64
	lastOut   float64
	lastTime  time.Time

	sampleTime time.Duration
	auto       bool
	clock      clockwork.Clock
}

// NewPID builds a controller reading from input and writing to output.
// enabled sets the initial automatic mode. Negative gains are replaced by
// zero.
func NewPID(input func() float64, output func(float64), setpoint, kp, ki, kd float64, enabled bool, opts ...Option) *PID {
	p := &PID{
		input:      input,
		output:     output,
		Setpoint:   setpoint,
		outMin:     DefaultOutputMin,
		outMax:     DefaultOutputMax,
		sampleTime: DefaultSampleTime,
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.SetTunings(kp, ki, kd); err != nil {
		_ = p.SetTunings(0, 0, 0)
	}
	// first Compute runs immediately
	p.lastTime = p.clock.Now().Add(-p.sampleTime)
	p.SetAuto(enabled)
	return p
}

// Compute performs one control step if the sample time has elapsed. It is a
// no-op in manual mode.
func (p *PID) Compute() {
	if !p.auto {
		return
	}

	now := p.clock.Now()
	if now.Sub(p.lastTime) < p.sampleTime {
		return
	}

	in := p.input()
	err := p.Setpoint - in

	p.iTerm = clamp(p.iTerm+p.ki*err, p.outMin, p.outMax)
	dInput := in - p.lastInput

	out := clamp(p.kp*err+p.iTerm-p.kd*dInput, p.outMin, p.outMax)
	p.output(out)

	p.lastOut = out
	p.lastInput = in
	p.lastTime = now
}

// SetTunings retunes the controller; the new gains apply from the next
// Compute.
func (p *PID) SetTunings(kp, ki, kd float64) error {
	if kp < 0 || ki < 0 || kd < 0 {
		return ErrNegativeGain
	}

	p.Kp, p.Ki, p.Kd = kp, ki, kd

	secs := p.sampleTime.Seconds()
	p.kp = kp
	p.ki = ki * secs
	p.kd = kd / secs
	return nil
}

func (p *PID) SetOutputLimits(min, max float64) error {
	if min >= max {
		return ErrInvalidLimits
	}
	p.outMin, p.outMax = min, max

	if p.auto {
		p.iTerm = clamp(p.iTerm, min, max)
		p.lastOut = clamp(p.lastOut, min, max)
	}
	return nil
}

// SetAuto switches between automatic and manual mode. Entering automatic
// mode re-initializes the controller from the current input so the switch
// is bumpless.
func (p *PID) SetAuto(auto bool) {
	if auto && !p.auto {
		p.initialize()
	}
	p.auto = auto
}

func (p *PID) Auto() bool { return p.auto }

func (p *PID) initialize() {
	p.iTerm = clamp(p.lastOut, p.outMin, p.outMax)
	p.lastInput = p.input()
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
