package schedule

import "math"

// Gap classifies the distance between measurement and setpoint.
type Gap int

const (
	SmallGap Gap = iota
	LargeGap
)

func (g Gap) String() string {
	switch g {
	case SmallGap:
		return "small_gap"
	case LargeGap:
		return "large_gap"
	default:
		return "unknown"
	}
}

// Classify reports LargeGap when |measurement - setpoint| >= threshold. A gap
// exactly at the threshold counts as large.
func Classify(measurement, setpoint, threshold float64) Gap {
	if math.Abs(measurement-setpoint) >= threshold {
		return LargeGap
	}
	return SmallGap
}
