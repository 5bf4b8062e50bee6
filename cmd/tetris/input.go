package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/tetromino/internal/config"
)

// Bindings maps input actions to keys.
type Bindings struct {
	Keys map[string][]ebiten.Key
}

// NewBindings resolves key names from the configuration. Names match
// ebiten.Key.String case-insensitively, e.g. "ArrowLeft", "Space", "R".
func NewBindings(keys map[string][]string) (Bindings, error) {
	b := Bindings{Keys: make(map[string][]ebiten.Key, len(keys))}
	for action, names := range keys {
		for _, name := range names {
			k, err := parseKey(name)
			if err != nil {
				return Bindings{}, fmt.Errorf("%s: %w", action, err)
			}
			b.Keys[action] = append(b.Keys[action], k)
		}
	}
	return b, nil
}

func parseKey(name string) (ebiten.Key, error) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown key %q", config.ErrInvalid, name)
}

// JustPressed reports whether any key bound to action went down this tick.
func (b Bindings) JustPressed(action string) bool {
	for _, k := range b.Keys[action] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Held reports whether any key bound to action is down.
func (b Bindings) Held(action string) bool {
	for _, k := range b.Keys[action] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// Input is the state of every action this frame.
type Input map[string]KeyState

type KeyState struct {
	Pressed bool // went down this frame
	Held    bool
}

// Poll reads the keyboard for every bound action.
func (b Bindings) Poll() Input {
	in := make(Input, len(b.Keys))
	for action := range b.Keys {
		in[action] = KeyState{Pressed: b.JustPressed(action), Held: b.Held(action)}
	}
	return in
}

// Repeat holds delayed auto-repeat timers.
type Repeat struct {
	Delay time.Duration
	Rate  time.Duration

	Left, Right, Down repeater
}

type repeater struct {
	held time.Duration
}

// step reports whether the action fires this frame: once on press, then
// after delay every rate while held. It fires at most once per frame.
func (r *repeater) step(k KeyState, dt, delay, rate time.Duration) bool {
	switch {
	case k.Pressed:
		r.held = 0
		return true
	case k.Held:
		r.held += dt
		if r.held > delay {
			r.held -= max(rate, dt)
			return true
		}
		return false
	default:
		r.held = 0
		return false
	}
}
