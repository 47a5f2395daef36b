package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finiScreen struct {
	tcell.Screen
	finalized int
}

func (s *finiScreen) Fini() {
	s.finalized++
	s.Screen.Fini()
}

func newFiniScreen(t *testing.T) *finiScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	require.NoError(t, sim.Init())
	return &finiScreen{Screen: sim}
}

// TestRunGuardedRestoresScreenOnPanic verifies a crashing board loop leaves the terminal usable
func TestRunGuardedRestoresScreenOnPanic(t *testing.T) {
	screen := newFiniScreen(t)
	var crash bytes.Buffer

	err := runGuarded(screen, &crash, func() error {
		panic("board exploded")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: board exploded")
	assert.Equal(t, 1, screen.finalized)
	assert.Contains(t, crash.String(), "TARSKI CRASHED: board exploded")
	assert.Contains(t, crash.String(), "goroutine")
}

func TestRunGuardedPassesThrough(t *testing.T) {
	screen := newFiniScreen(t)
	var crash bytes.Buffer
	want := errors.New("quit")

	assert.NoError(t, runGuarded(screen, &crash, func() error { return nil }))
	assert.ErrorIs(t, runGuarded(screen, &crash, func() error { return want }), want)
	assert.Zero(t, screen.finalized)
	assert.Empty(t, crash.String())
	screen.Screen.Fini()
}
