// Package board is the terminal host: a top-down figure view, the predicate
// panel, and keyboard control standing in for hand tracking
package board

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/tarski/audio"
	"github.com/lixenwraith/tarski/config"
	"github.com/lixenwraith/tarski/engine"
	"github.com/lixenwraith/tarski/events"
	"github.com/lixenwraith/tarski/figure"
	"github.com/lixenwraith/tarski/level"
	"github.com/lixenwraith/tarski/status"
	"github.com/lixenwraith/tarski/tracker"
	"github.com/lixenwraith/tarski/vmath"
)

const (
	frameInterval  = 33 * time.Millisecond
	moveStep       = 0.05
	rotateStep     = math.Pi / 8
	bannerDuration = 3 * time.Second
	noGrab         = -1
)

// palette is cycled by the paint key; values match tcell's named colors
var palette = []figure.Color{0xff0000, 0xffa500, 0xffff00, 0x008000, 0x0000ff, 0x800080, 0xffffff}

// Options wires the board to its collaborators; Screen and Engine are required
type Options struct {
	Screen tcell.Screen
	Engine *engine.Engine
	Bus    *events.Bus
	Panel  *status.Registry
	Player audio.Player
	Clock  tracker.Clock
	Log    *zap.Logger
	Tier   level.Tier
}

// Board owns the screen and drives the engine from its single loop
type Board struct {
	screen tcell.Screen
	engine *engine.Engine
	panel  *status.Registry
	player audio.Player
	clock  tracker.Clock
	log    *zap.Logger

	world    *config.World
	trackers *tracker.Group
	tier     level.Tier

	selected int
	grabbed  int

	banner      string
	bannerUntil time.Time
	message     string
}

// New creates a board and subscribes it to level events
func New(opts Options) *Board {
	b := &Board{
		screen:  opts.Screen,
		engine:  opts.Engine,
		panel:   opts.Panel,
		player:  opts.Player,
		clock:   opts.Clock,
		log:     opts.Log,
		tier:    opts.Tier,
		grabbed: noGrab,
	}
	if b.panel == nil {
		b.panel = status.NewRegistry()
	}
	if b.player == nil {
		b.player = audio.Nop{}
	}
	if b.clock == nil {
		b.clock = tracker.RealClock{}
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	if !b.tier.Valid() {
		b.tier = level.Easy
	}
	b.trackers = tracker.NewGroup(b.engine, tracker.Options{Clock: b.clock}, b.log)

	if opts.Bus != nil {
		opts.Bus.Subscribe(b.onLevelCompleted, events.EventLevelCompleted)
		opts.Bus.Subscribe(b.onLevelChanged, events.EventLevelChanged)
	}
	return b
}

// Load (re)binds the engine to world, keeping the current tier
func (b *Board) Load(world *config.World) error {
	b.panel.Reset()
	b.trackers.Reset()
	b.world = world
	b.selected = 0
	b.grabbed = noGrab

	for _, w := range world.Warnings {
		b.log.Warn("Scene configuration", zap.String("detail", w))
	}
	if err := b.engine.Initialize(world.Store, world.Catalog, world.Levels, b.tier); err != nil {
		b.message = "engine disabled: " + err.Error()
		return err
	}
	b.message = "loaded scene " + world.Name
	b.trackers.Update(world.Store, b.isGrabbed)
	b.engine.NotifyChanged()
	return nil
}

func (b *Board) isGrabbed(i int) bool {
	return i == b.grabbed
}

func (b *Board) onLevelCompleted(ev events.Event) {
	p, ok := ev.Payload.(*events.LevelCompletedPayload)
	if !ok {
		return
	}
	b.banner = "LEVEL COMPLETE: " + p.Label
	b.bannerUntil = b.clock.Now().Add(bannerDuration)
	b.log.Info("Banner shown", zap.String("label", p.Label))
}

func (b *Board) onLevelChanged(ev events.Event) {
	b.banner = ""
	if p, ok := ev.Payload.(*events.LevelChangedPayload); ok {
		b.message = "level " + p.Label
	}
}

// Banner returns the active completion banner, empty when none
func (b *Board) Banner() string {
	if b.banner == "" || b.clock.Now().After(b.bannerUntil) {
		return ""
	}
	return b.banner
}

// Selected returns the selected figure index
func (b *Board) Selected() int {
	return b.selected
}

// Grabbed returns the held figure index, -1 when none
func (b *Board) Grabbed() int {
	return b.grabbed
}

// Tick advances trackers and redraws
func (b *Board) Tick() {
	if b.world != nil {
		b.trackers.Update(b.world.Store, b.isGrabbed)
	}
	b.Draw()
}

// Run is the host loop; reloads deliver rebuilt scenes from the watcher
// Returns when ctx is done or the user quits
func (b *Board) Run(ctx context.Context, reloads <-chan *config.World) error {
	eventCh := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go b.screen.ChannelEvents(eventCh, quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	b.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventCh:
			if ev == nil {
				return nil
			}
			if !b.HandleEvent(ev) {
				return nil
			}

		case w := <-reloads:
			if err := b.Load(w); err != nil {
				b.log.Error("Scene reload failed", zap.Error(err))
			} else {
				b.log.Info("Scene reloaded", zap.String("scene", w.Name))
			}

		case <-ticker.C:
			b.Tick()
		}
	}
}

// HandleEvent applies one input event; false means quit
func (b *Board) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return b.handleKey(ev)
	case *tcell.EventResize:
		b.screen.Sync()
	}
	return true
}

func (b *Board) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		b.cycleSelection(1)
	case tcell.KeyBacktab:
		b.cycleSelection(-1)
	case tcell.KeyLeft:
		b.move(vmath.V3F(-moveStep, 0, 0))
	case tcell.KeyRight:
		b.move(vmath.V3F(moveStep, 0, 0))
	case tcell.KeyUp:
		b.move(vmath.V3F(0, 0, -moveStep))
	case tcell.KeyDown:
		b.move(vmath.V3F(0, 0, moveStep))
	case tcell.KeyPgUp:
		b.move(vmath.V3F(0, moveStep, 0))
	case tcell.KeyPgDn:
		b.move(vmath.V3F(0, -moveStep, 0))
	case tcell.KeyRune:
		return b.handleRune(ev.Rune())
	}
	return true
}

func (b *Board) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		b.toggleGrab()
	case 'r':
		b.rotate()
	case 'c':
		b.paint()
	case '1', '2', '3':
		if t, ok := level.ParseTier(string(r)); ok {
			b.tier = t
			b.engine.SetLevel(t)
			b.engine.NotifyChanged()
		}
	case 'e':
		b.engine.NotifyChanged()
		b.log.Debug("Forced evaluation", zap.String("state", b.engine.DebugState()))
	case 'm':
		if m, ok := b.player.(interface{ ToggleMute() bool }); ok {
			if m.ToggleMute() {
				b.message = "muted"
			} else {
				b.message = "sound on"
			}
		}
	}
	return true
}

func (b *Board) cycleSelection(dir int) {
	if b.world == nil || b.world.Store.Len() == 0 {
		return
	}
	n := b.world.Store.Len()
	b.selected = ((b.selected+dir)%n + n) % n
}

func (b *Board) toggleGrab() {
	if b.world == nil {
		return
	}
	if b.grabbed == noGrab {
		b.grabbed = b.selected
	} else {
		b.grabbed = noGrab
	}
}

// move only offsets the figure; the trackers decide when the engine hears of it
func (b *Board) move(delta vmath.Vec3F) {
	if b.world == nil {
		return
	}
	b.world.Store.Translate(b.selected, delta)
}

// Rotation and paint leave positions unchanged, so they notify directly
func (b *Board) rotate() {
	if b.world == nil {
		return
	}
	if b.world.Store.Rotate(b.selected, rotateStep) {
		b.engine.NotifyChanged()
	}
}

func (b *Board) paint() {
	if b.world == nil {
		return
	}
	next := palette[0]
	if c, ok := b.world.Store.Color(b.selected); ok {
		for i, p := range palette {
			if p == c {
				next = palette[(i+1)%len(palette)]
				break
			}
		}
	}
	if b.world.Store.Paint(b.selected, next) {
		b.engine.NotifyChanged()
	}
}
