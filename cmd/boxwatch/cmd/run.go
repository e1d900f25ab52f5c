package cmd

import (
	"fmt"

	"github.com/go-drift/boxwatch/cmd/boxwatch/internal/scenario"
	"github.com/go-drift/boxwatch/pkg/boxtest"
	"github.com/go-drift/boxwatch/pkg/config"
	"github.com/go-drift/boxwatch/pkg/errors"
	"github.com/go-drift/boxwatch/pkg/resize"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Replay a scenario against the engine",
		Long: `Replay a YAML scenario: build its element tree, observe the listed
targets, apply each mutation step, and print every callback batch the
engine delivers.

Structural steps (resize, detach, attach) fire the change signal; text
mutations are deliberately silent and need an explicit tick step, which
demonstrates the periodic fallback trigger.

Controller tuning is read from boxwatch.yaml in the working directory
if present.`,
		Usage: "boxwatch run <scenario.yaml>",
		Run:   runScenario,
	})
}

func runScenario(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("scenario file is required\n\nUsage: boxwatch run <scenario.yaml>")
	}

	resolved, err := config.Load(".")
	if err != nil {
		return err
	}
	errors.SetHandler(&errors.LogHandler{Verbose: resolved.Verbose})
	fmt.Printf("config: max_cycles=%d tick_interval=%s\n", resolved.MaxCycles, resolved.TickInterval)

	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	tree, err := sc.Build()
	if err != nil {
		return err
	}

	binding, signal, ticker := boxtest.NewBinding()
	ctrl := resize.NewController(binding, resize.WithMaxCycles(resolved.MaxCycles))
	obs, err := ctrl.NewObserver(func(entries []resize.Entry, _ *resize.Observer) {
		for _, entry := range entries {
			fmt.Printf("  -> %s: %gx%g\n", scenario.Name(entry.Target), entry.ContentBox.Width, entry.ContentBox.Height)
		}
	})
	if err != nil {
		return err
	}

	for _, name := range sc.Observe {
		element, ok := tree.Lookup(name)
		if !ok {
			return fmt.Errorf("observe references unknown element %q", name)
		}
		fmt.Printf("observe %s\n", name)
		if err := obs.Observe(element); err != nil {
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	for i, step := range sc.Steps {
		fmt.Printf("step %d: %s\n", i+1, step.Describe())
		trigger, err := tree.Apply(step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		switch trigger {
		case scenario.TriggerChange:
			signal.Fire()
		case scenario.TriggerTick:
			ticker.Tick()
		}
	}

	stats := ctrl.Stats()
	fmt.Printf("stats: refreshes=%d cycles=%d broadcasts=%d loops_suppressed=%d\n",
		stats.Refreshes, stats.Cycles, stats.Broadcasts, stats.LoopsSuppressed)
	return nil
}
