package metrics

import "math"

// BandOccupancy is the fraction of samples within band degrees of the
// setpoint.
type BandOccupancy struct {
	name     string
	setpoint float64
	band     float64
	inside   int
	samples  int
}

func NewBandOccupancy(setpoint, band float64) *BandOccupancy {
	return &BandOccupancy{
		name:     "band_occupancy",
		setpoint: setpoint,
		band:     band,
	}
}

func (b *BandOccupancy) Name() string {
	return b.name
}

func (b *BandOccupancy) Observe(s Sample) {
	b.samples++
	if math.Abs(s.Temperature-b.setpoint) <= b.band {
		b.inside++
	}
}

func (b *BandOccupancy) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return float64(b.inside) / float64(b.samples)
}

func (b *BandOccupancy) Reset() {
	b.inside = 0
	b.samples = 0
}
