package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tarski/engine"
	"github.com/lixenwraith/tarski/status"
)

func newEvalCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a scene once and print every predicate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.OutOrStdout(), g)
		},
	}
}

func runEval(out io.Writer, g *globals) error {
	tier, err := g.parseTier()
	if err != nil {
		return err
	}
	world, err := g.loadWorld()
	if err != nil {
		return err
	}

	rec := &status.Recorder{}
	eng := engine.New(engine.WithLogger(g.logger), engine.WithSink(rec))
	if err := eng.Initialize(world.Store, world.Catalog, world.Levels, tier); err != nil {
		return err
	}
	eng.NotifyChanged()

	fmt.Fprint(out, eng.DebugState())

	last := rec.Last()
	fmt.Fprintln(out, "catalog:")
	for _, e := range last.Statuses {
		var state string
		switch {
		case e.InLevel && e.Active:
			state = "true"
		case e.InLevel:
			state = "false"
		default:
			if res := world.Catalog.Evaluate(e.Name, world.Store); res.Holds {
				state = "(true)"
			} else {
				state = "(false)"
			}
		}
		fmt.Fprintf(out, "  %-8s %s\n", state, e.Name)
	}
	return nil
}
