package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tarski/registry"
)

func newLevelsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the scene's levels and their predicates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLevels(cmd.OutOrStdout(), g)
		},
	}
}

func runLevels(out io.Writer, g *globals) error {
	world, err := g.loadWorld()
	if err != nil {
		return err
	}
	for _, t := range world.Levels.Tiers() {
		fmt.Fprintf(out, "%d %-7s %s\n", int(t), t, world.Levels.Label(t))
		for _, name := range world.Levels.GetActivePredicates(t) {
			p, ok := world.Catalog.Lookup(name)
			if !ok {
				fmt.Fprintf(out, "    %s (unknown)\n", name)
				continue
			}
			fmt.Fprintf(out, "    %s  %s%v\n", name, p.Family, p.Indices)
		}
	}
	return nil
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, name := range registry.SceneNames() {
				e, _ := registry.GetScene(name)
				fmt.Fprintf(out, "%-10s %s\n", name, e.Description)
			}
		},
	}
}
