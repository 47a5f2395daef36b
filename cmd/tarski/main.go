package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/tarski/config"
	"github.com/lixenwraith/tarski/level"
	"github.com/lixenwraith/tarski/logging"
	"github.com/lixenwraith/tarski/registry"
)

// globals holds flags shared by every subcommand
type globals struct {
	scene    string
	tier     string
	logLevel string
	logFile  string
	logger   *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "tarski",
		Short: "Spatial predicate puzzles over movable figures",
		Long: `tarski evaluates named spatial relations (near, far, in front of,
between, collinear, ...) over a set of figures and reports level completion
when every predicate of the selected difficulty holds.

Scenes are either built in (see "tarski scenes") or YAML files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to tcell while playing; logs go to a file
			if cmd.Name() == "play" && g.logFile == "" {
				g.logFile = "tarski.log"
			}
			var err error
			g.logger, err = logging.New(logging.Options{Level: g.logLevel, File: g.logFile})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.logger != nil {
				_ = g.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&g.scene, "scene", "s", registry.DefaultScene, "built-in scene name or scene file path")
	root.PersistentFlags().StringVarP(&g.tier, "tier", "t", "easy", "difficulty: 1-3 or easy, medium, hard")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(
		newPlayCmd(g),
		newEvalCmd(g),
		newCheckCmd(g),
		newLevelsCmd(g),
		newScenesCmd(),
	)
	return root
}

// loadWorld resolves and builds the selected scene
func (g *globals) loadWorld() (*config.World, error) {
	scene, err := registry.Open(g.scene)
	if err != nil {
		return nil, err
	}
	world, err := scene.Build()
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", g.scene, err)
	}
	return world, nil
}

func (g *globals) parseTier() (level.Tier, error) {
	t, ok := level.ParseTier(g.tier)
	if !ok {
		return level.TierNone, fmt.Errorf("unknown tier %q", g.tier)
	}
	return t, nil
}

// sceneFile returns the path to watch, empty for built-in scenes
func (g *globals) sceneFile() string {
	if _, builtin := registry.GetScene(g.scene); builtin {
		return ""
	}
	return g.scene
}
