package metrics

// Sample is one observation of the loop: elapsed seconds, measured
// temperature, heating state and the last controller output.
type Sample struct {
	Time        float64
	Temperature float64
	Heating     bool
	Output      float64
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Defaults returns the metrics reported for a run towards setpoint.
func Defaults(setpoint, band float64) []Metric {
	return []Metric{
		NewOvershoot(setpoint),
		NewDutyCycle(),
		NewBandOccupancy(setpoint, band),
	}
}
