package metrics

// Overshoot is the largest excursion above the setpoint, in degrees.
type Overshoot struct {
	name     string
	setpoint float64
	max      float64
}

func NewOvershoot(setpoint float64) *Overshoot {
	return &Overshoot{
		name:     "overshoot",
		setpoint: setpoint,
	}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(s Sample) {
	if d := s.Temperature - o.setpoint; d > o.max {
		o.max = d
	}
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() { o.max = 0 }
