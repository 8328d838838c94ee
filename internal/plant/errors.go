package plant

import "errors"

var (
	// ErrInvalidRange indicates a ceiling that is not above the ambient floor.
	ErrInvalidRange = errors.New("plant: max temperature must be above ambient temperature")

	// ErrNegativeRate indicates a negative heat loss or heat gain rate.
	ErrNegativeRate = errors.New("plant: heat rates must not be negative")
)
