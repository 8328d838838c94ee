package scenario

import (
	"context"

	"github.com/san-kum/heatloop/internal/schedule"
)

// GainScheduling adapts a schedule.Loop to the Scenario interface.
type GainScheduling struct {
	loop *schedule.Loop
}

func NewGainScheduling(loop *schedule.Loop) *GainScheduling {
	return &GainScheduling{loop: loop}
}

func (g *GainScheduling) Name() string { return "gain_scheduling" }

func (g *GainScheduling) Run(ctx context.Context) (*Trace, error) {
	res, err := g.loop.Run(ctx)
	if res == nil {
		return nil, err
	}

	trace := &Trace{
		Name:         g.Name(),
		Times:        res.Times,
		Temperatures: res.Temperatures,
		Metrics:      res.Metrics,
	}
	trace.Metrics["retunes"] = float64(res.Retunes)
	return trace, err
}
