// Package plant simulates a heated water reservoir.
//
// The [Heater] keeps a single temperature that evolves with real elapsed
// time: heat is lost at a constant rate and, while heating is on, gained at
// a constant rate. The model is evaluated lazily over the exact interval
// since the previous evaluation, so the result does not depend on how often
// it is sampled.
//
// # Usage
//
//	h := plant.NewHeater(plant.DefaultParams())
//	h.SetHeating(true)
//	t := h.Temperature() // advances the model, then returns it
//
// Every call to [Heater.Temperature] commits the new state. There is no
// side-effect free read of the temperature.
package plant
