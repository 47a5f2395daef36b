package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/tarski/events"
)

// Player plays chimes; implementations must not block the caller
type Player interface {
	Play(st SoundType)
}

// Nop discards every chime
type Nop struct{}

func (Nop) Play(SoundType) {}

// Speaker plays through the system audio device
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	muted       atomic.Bool
	played      atomic.Uint64
	log         *zap.Logger
}

// NewSpeaker creates an uninitialized speaker player
func NewSpeaker(vol float64, log *zap.Logger) *Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Speaker{
		mixer:  &beep.Mixer{},
		volume: vol,
		log:    log,
	}
}

// Initialize opens the audio device; safe to call more than once
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences pending chimes
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

func (s *Speaker) Play(st SoundType) {
	if s.muted.Load() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}

	stream, err := Build(st, SampleRate, s.volume)
	if err != nil {
		s.log.Warn("Chime unavailable", zap.Stringer("sound", st), zap.Error(err))
		return
	}
	speaker.Lock()
	s.mixer.Add(stream)
	speaker.Unlock()
	s.played.Add(1)
}

// ToggleMute flips mute and returns the new state
func (s *Speaker) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (s *Speaker) IsMuted() bool {
	return s.muted.Load()
}

// Played returns the number of chimes queued
func (s *Speaker) Played() uint64 {
	return s.played.Load()
}

// Attach subscribes p to completion and predicate flip events
func Attach(bus *events.Bus, p Player) {
	bus.Subscribe(func(events.Event) {
		p.Play(SoundComplete)
	}, events.EventLevelCompleted)

	bus.Subscribe(func(ev events.Event) {
		payload, ok := ev.Payload.(*events.PredicateChangedPayload)
		if !ok {
			return
		}
		if payload.Active {
			p.Play(SoundToggleOn)
		} else {
			p.Play(SoundToggleOff)
		}
	}, events.EventPredicateChanged)
}
