package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/heatloop/internal/config"
	"github.com/san-kum/heatloop/internal/report"
	"github.com/san-kum/heatloop/internal/scenario"
)

// main runs the selected scenario against the embedded configuration and
// exits with status 1 only if the command itself fails.
func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Embedded()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	reg := scenario.Default(cfg, os.Stdout, scenario.WithLogger(log))
	if err := newRootCmd(reg).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(reg *scenario.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "heatloop [scenario]",
		Short: "heated water tank simulation and gain-scheduled PID loop",
		Long: `Runs a scenario against a simulated heated water tank.

  0  passive: heat on and off on a fixed schedule (default)
  1  gain scheduling: PID loop retuned by distance to the setpoint`,
		Args: cobra.MaximumNArgs(1),
		// the only argument is a possibly negative integer
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, reg, args)
		},
	}
}

func runScenario(cmd *cobra.Command, reg *scenario.Registry, args []string) error {
	id := scenario.PassiveID
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("scenario must be an integer, got %q", args[0])
		}
		id = n
	}

	out := cmd.OutOrStdout()
	s, err := reg.Get(id)
	if errors.Is(err, scenario.ErrUnknownScenario) {
		fmt.Fprintf(out, "No scenario #%d\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	trace, err := s.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s: %w", s.Name(), err)
	}

	rep := report.New(out)
	fmt.Fprintln(out)
	rep.Metrics(trace.Metrics)
	fmt.Fprintln(out)
	rep.Plot(trace.Temperatures, fmt.Sprintf("%s: temperature vs sample", trace.Name))
	return nil
}
