package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/tarski/audio"
	"github.com/lixenwraith/tarski/board"
	"github.com/lixenwraith/tarski/config"
	"github.com/lixenwraith/tarski/engine"
	"github.com/lixenwraith/tarski/events"
	"github.com/lixenwraith/tarski/status"
)

type playFlags struct {
	metricsAddr string
	mute        bool
	volume      float64
	debounce    time.Duration
}

func newPlayCmd(g *globals) *cobra.Command {
	f := &playFlags{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a scene in the terminal",
		Long: `Opens the board view. Figures are moved with the keyboard the way a
tracked hand would move them: grab with Space, move, release. Releasing a figure
or letting it settle re-evaluates the level.

A scene file given with --scene is watched and reloaded on save.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), g, f)
		},
	}
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().BoolVar(&f.mute, "mute", false, "disable chimes")
	cmd.Flags().Float64Var(&f.volume, "volume", 0.5, "chime volume 0..1")
	cmd.Flags().DurationVar(&f.debounce, "reload-debounce", config.DefaultDebounce, "delay before reloading a changed scene file")
	return cmd
}

func runPlay(parent context.Context, g *globals, f *playFlags) error {
	log := g.logger
	tier, err := g.parseTier()
	if err != nil {
		return err
	}
	world, err := g.loadWorld()
	if err != nil {
		return err
	}

	bus := events.NewBus()
	panel := status.NewRegistry()
	metrics := prometheus.NewRegistry()
	metrics.MustRegister(collectors.NewGoCollector())
	eng := engine.New(
		engine.WithLogger(log.Named("engine")),
		engine.WithSink(status.Multi{panel, status.NewPromSink(metrics)}),
		engine.WithBus(bus),
	)

	var player audio.Player = audio.Nop{}
	if !f.mute {
		spk := audio.NewSpeaker(f.volume, log.Named("audio"))
		if err := spk.Initialize(); err != nil {
			log.Warn("Audio unavailable, continuing silently", zap.Error(err))
		} else {
			defer spk.Close()
			player = spk
		}
	}
	audio.Attach(bus, player)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	b := board.New(board.Options{
		Screen: screen,
		Engine: eng,
		Bus:    bus,
		Panel:  panel,
		Player: player,
		Log:    log.Named("board"),
		Tier:   tier,
	})

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	grp, ctx := errgroup.WithContext(ctx)

	reloads := make(chan *config.World, 1)
	if path := g.sceneFile(); path != "" {
		grp.Go(func() error {
			return config.Watch(ctx, path, f.debounce, func(s *config.Scene, err error) {
				if err == nil {
					var w *config.World
					if w, err = s.Build(); err == nil {
						select {
						case reloads <- w:
						case <-ctx.Done():
						}
						return
					}
				}
				log.Warn("Scene reload skipped", zap.String("path", path), zap.Error(err))
			})
		})
	}

	if f.metricsAddr != "" {
		srv := &http.Server{
			Addr:              f.metricsAddr,
			Handler:           metricsMux(metrics),
			ReadHeaderTimeout: 5 * time.Second,
		}
		grp.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		grp.Go(func() error {
			<-ctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	// Board loop stays on this goroutine so a panic is recovered with the screen restored
	runErr := runGuarded(screen, os.Stderr, func() error {
		if err := b.Load(world); err != nil {
			log.Error("Scene failed to load", zap.Error(err))
		}
		return b.Run(ctx, reloads)
	})
	cancel()
	return errors.Join(runErr, grp.Wait())
}

// runGuarded runs fn and converts a panic into an error after restoring the terminal
func runGuarded(screen tcell.Screen, crash io.Writer, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(crash, "\r\nTARSKI CRASHED: %v\r\n%s\r\n", r, debug.Stack())
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func metricsMux(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}
