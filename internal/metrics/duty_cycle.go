package metrics

// DutyCycle is the fraction of samples taken with heating on.
type DutyCycle struct {
	name    string
	on      int
	samples int
}

func NewDutyCycle() *DutyCycle {
	return &DutyCycle{
		name: "duty_cycle",
	}
}

func (d *DutyCycle) Name() string {
	return d.name
}

func (d *DutyCycle) Observe(s Sample) {
	d.samples++
	if s.Heating {
		d.on++
	}
}

func (d *DutyCycle) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.on) / float64(d.samples)
}

func (d *DutyCycle) Reset() {
	d.on = 0
	d.samples = 0
}
