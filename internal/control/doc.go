// Package control provides the PID controller that drives the heater.
//
// [PID] is wired to its plant through two callbacks: an input source that
// returns the current measurement and an output sink that applies the
// command. Each call to [PID.Compute] reads the input, computes a command
// clamped to the output limits and writes it to the sink, provided at
// least one sample time has elapsed since the previous computation.
//
// # Usage
//
//	pid := control.NewPID(heater.Temperature, heater.ApplyCommand, 88, 4, 0.2, 1, true)
//	pid.SetOutputLimits(0, 1)
//	pid.SetAuto(true)
//	pid.Compute()
//
// Gains can be changed between computations with [PID.SetTunings].
package control
