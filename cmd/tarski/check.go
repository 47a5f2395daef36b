package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tarski/diagnose"
	"github.com/lixenwraith/tarski/registry"
)

var errSetup = errors.New("scene setup has errors")

func newCheckCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Diagnose a scene: missing figures, dangling predicates, unused entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), g)
		},
	}
}

func runCheck(out io.Writer, g *globals) error {
	scene, err := registry.Open(g.scene)
	if err != nil {
		return err
	}
	world, err := scene.Build()
	if err != nil {
		fmt.Fprintf(out, "Errors\n  ✗ %v\n", err)
		return errSetup
	}

	report := diagnose.Run(diagnose.Input{
		View:     world.Store,
		Catalog:  world.Catalog,
		Levels:   world.Levels,
		Expected: world.Expected,
	})
	report.Warnings = append(world.Warnings, report.Warnings...)
	report.Write(out)

	if report.HasErrors() {
		return errSetup
	}
	return nil
}
