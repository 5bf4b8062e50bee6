// Package sound synthesises short procedural tones for game events and
// plays them through ebiten's audio context.
package sound

import (
	"time"

	"github.com/plus3/tetromino/tetris"
)

// Wave is an oscillator shape.
type Wave uint8

const (
	Sine Wave = iota
	Square
	Triangle
	Sawtooth
)

// Note is one tone inside a cue. Its gain starts at Volume and decays
// exponentially to 0.01 at the end of Duration.
type Note struct {
	Freq     float64
	Start    time.Duration
	Duration time.Duration
	Volume   float64
	Wave     Wave
}

// CueID identifies a rendered cue in the PCM cache.
type CueID uint32

const (
	CueMove CueID = iota + 1
	CueRotate
	CueLock
	CueLevelUp
	CueGameOver
	// CueLineClear+n is the cue for n rows cleared at once.
	CueLineClear CueID = 16
)

type Cue struct {
	ID    CueID
	Notes []Note
}

// Duration is the time until the last note ends.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, n := range c.Notes {
		d = max(d, n.Start+n.Duration)
	}
	return d
}

var chime = [...]float64{523, 659, 784, 1047}

func tone(freq float64, start, dur time.Duration, vol float64, w Wave) Note {
	return Note{Freq: freq, Start: start, Duration: dur, Volume: vol, Wave: w}
}

const ms = time.Millisecond

var (
	moveCue   = Cue{ID: CueMove, Notes: []Note{tone(300, 0, 50*ms, 0.08, Square)}}
	rotateCue = Cue{ID: CueRotate, Notes: []Note{tone(400, 0, 60*ms, 0.10, Sine)}}
	lockCue   = Cue{ID: CueLock, Notes: []Note{tone(200, 0, 80*ms, 0.12, Triangle)}}

	levelUpCue = Cue{ID: CueLevelUp, Notes: []Note{
		tone(chime[0], 0, 100*ms, 0.12, Sine),
		tone(chime[1], 100*ms, 100*ms, 0.12, Sine),
		tone(chime[2], 200*ms, 150*ms, 0.12, Sine),
	}}

	gameOverCue = Cue{ID: CueGameOver, Notes: []Note{
		tone(440, 0, 200*ms, 0.15, Sawtooth),
		tone(349, 100*ms, 200*ms, 0.15, Sawtooth),
		tone(262, 200*ms, 400*ms, 0.15, Sawtooth),
	}}
)

func lineClearCue(count int) Cue {
	count = min(max(count, 1), len(chime))
	notes := make([]Note, count)
	for i := range notes {
		notes[i] = tone(chime[i], time.Duration(i)*50*ms, 150*ms, 0.15, Sine)
	}
	return Cue{ID: CueLineClear + CueID(count), Notes: notes}
}

// CueFor maps a game event to its cue. Events without a sound report false.
func CueFor(e tetris.Event) (Cue, bool) {
	switch e.Type {
	case tetris.EventMove:
		return moveCue, true
	case tetris.EventRotate:
		return rotateCue, true
	case tetris.EventLock:
		return lockCue, true
	case tetris.EventLineClear:
		return lineClearCue(e.Count), true
	case tetris.EventLevelUp:
		return levelUpCue, true
	case tetris.EventGameOver:
		return gameOverCue, true
	default:
		return Cue{}, false
	}
}
