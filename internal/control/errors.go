package control

import "errors"

var (
	// ErrNegativeGain indicates a tuning with a negative kp, ki or kd.
	ErrNegativeGain = errors.New("control: gains must not be negative")

	// ErrInvalidLimits indicates output limits with min >= max.
	ErrInvalidLimits = errors.New("control: output min must be below output max")
)
