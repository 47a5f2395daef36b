// Package audio plays short chimes for level completion and predicate flips
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
)

const (
	SampleRate = beep.SampleRate(44100)

	noteAttack  = 5 * time.Millisecond
	noteRelease = 40 * time.Millisecond
)

// SoundType identifies a chime
type SoundType int

const (
	SoundComplete SoundType = iota
	SoundToggleOn
	SoundToggleOff
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundComplete:
		return "complete"
	case SoundToggleOn:
		return "toggle_on"
	case SoundToggleOff:
		return "toggle_off"
	default:
		return fmt.Sprintf("sound(%d)", int(s))
	}
}

type note struct {
	freq float64
	dur  time.Duration
}

// Ascending major arpeggio for completion, single blips for flips
var chimes = [soundTypeCount][]note{
	SoundComplete:  {{523.25, 120 * time.Millisecond}, {659.25, 120 * time.Millisecond}, {783.99, 120 * time.Millisecond}, {1046.50, 300 * time.Millisecond}},
	SoundToggleOn:  {{880.0, 70 * time.Millisecond}},
	SoundToggleOff: {{440.0, 70 * time.Millisecond}},
}

// Build returns a fresh streamer for st at the given linear volume
func Build(st SoundType, rate beep.SampleRate, vol float64) (beep.Streamer, error) {
	if st < 0 || st >= soundTypeCount {
		return nil, fmt.Errorf("unknown sound %s", st)
	}
	notes := chimes[st]
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := tone(n.freq, n.dur, rate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", st, err)
		}
		parts = append(parts, s)
	}
	return volume(beep.Seq(parts...), vol), nil
}

// Duration returns the total length of st
func Duration(st SoundType) time.Duration {
	if st < 0 || st >= soundTypeCount {
		return 0
	}
	var d time.Duration
	for _, n := range chimes[st] {
		d += n.dur
	}
	return d
}
