package sound

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/plus3/tetromino/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		event tetris.Event
		id    CueID
		notes int
	}{
		{tetris.Event{Type: tetris.EventMove}, CueMove, 1},
		{tetris.Event{Type: tetris.EventRotate}, CueRotate, 1},
		{tetris.Event{Type: tetris.EventLock}, CueLock, 1},
		{tetris.Event{Type: tetris.EventLineClear, Count: 1}, CueLineClear + 1, 1},
		{tetris.Event{Type: tetris.EventLineClear, Count: 4}, CueLineClear + 4, 4},
		{tetris.Event{Type: tetris.EventLevelUp}, CueLevelUp, 3},
		{tetris.Event{Type: tetris.EventGameOver}, CueGameOver, 3},
	}

	for _, tt := range tests {
		t.Run(tt.event.Type.String(), func(t *testing.T) {
			cue, ok := CueFor(tt.event)
			require.True(t, ok)
			assert.Equal(t, tt.id, cue.ID)
			assert.Len(t, cue.Notes, tt.notes)
		})
	}

	for _, silent := range []tetris.EventType{tetris.EventPause, tetris.EventResume, tetris.EventRestart, tetris.EventHardDrop} {
		_, ok := CueFor(tetris.Event{Type: silent})
		assert.False(t, ok, silent.String())
	}
}

func TestCueDuration(t *testing.T) {
	assert.Equal(t, 50*time.Millisecond, moveCue.Duration())
	assert.Equal(t, 600*time.Millisecond, gameOverCue.Duration())
	assert.Equal(t, 300*time.Millisecond, lineClearCue(4).Duration())
	assert.Len(t, lineClearCue(9).Notes, 4, "count is capped")
}

func TestRenderLength(t *testing.T) {
	pcm := NewSynth().Render(moveCue)
	assert.Len(t, pcm, frames(50*time.Millisecond)*bytesPerFrame)
}

func TestRenderStaysWithinVolume(t *testing.T) {
	pcm := NewSynth().Render(rotateCue)
	limit := int(math.Ceil(0.10*math.MaxInt16)) + 1

	var peak int
	for i := 0; i < len(pcm); i += bytesPerFrame {
		left := int16(binary.LittleEndian.Uint16(pcm[i:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
		require.Equal(t, left, right, "channels are identical")
		peak = max(peak, int(math.Abs(float64(left))))
	}
	assert.LessOrEqual(t, peak, limit)
	assert.Positive(t, peak)
}

func TestRenderDecays(t *testing.T) {
	pcm := NewSynth().Render(lockCue)
	n := len(pcm) / bytesPerFrame

	peakOf := func(from, to int) int {
		var peak int
		for i := from; i < to; i++ {
			v := int(math.Abs(float64(int16(binary.LittleEndian.Uint16(pcm[i*bytesPerFrame:])))))
			peak = max(peak, v)
		}
		return peak
	}
	assert.Greater(t, peakOf(0, n/4), peakOf(3*n/4, n))
}

func TestSynthCache(t *testing.T) {
	s := NewSynth()
	first := s.Render(levelUpCue)
	second := s.Render(levelUpCue)

	assert.Equal(t, 1, s.Cached())
	assert.Same(t, &first[0], &second[0])

	s.Render(lineClearCue(2))
	assert.Equal(t, 2, s.Cached())
}

func TestOscillate(t *testing.T) {
	assert.InDelta(t, 0, oscillate(Sine, 0), 1e-9)
	assert.InDelta(t, 1, oscillate(Sine, 0.25), 1e-9)
	assert.Equal(t, 1.0, oscillate(Square, 0.1))
	assert.Equal(t, -1.0, oscillate(Square, 0.6))
	assert.InDelta(t, 1, oscillate(Triangle, 0.5), 1e-9)
	assert.InDelta(t, -1, oscillate(Triangle, 0), 1e-9)
	assert.InDelta(t, 0, oscillate(Sawtooth, 1.5), 1e-9)
}

func TestCueTones(t *testing.T) {
	levelUp, _ := CueFor(tetris.Event{Type: tetris.EventLevelUp})
	require.Len(t, levelUp.Notes, 3)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 150 * time.Millisecond},
		[]time.Duration{levelUp.Notes[0].Duration, levelUp.Notes[1].Duration, levelUp.Notes[2].Duration})
	assert.Equal(t, 350*time.Millisecond, levelUp.Duration())

	clear, _ := CueFor(tetris.Event{Type: tetris.EventLineClear, Count: 3})
	for i, n := range clear.Notes {
		assert.Equal(t, 0.15, n.Volume)
		assert.Equal(t, chime[i], n.Freq)
		assert.Equal(t, time.Duration(i)*50*time.Millisecond, n.Start)
	}
}

func TestPlayerMuteAndVolume(t *testing.T) {
	p := NewPlayer(nil, 1.7, false)
	assert.Equal(t, 1.0, p.Volume(), "clamped on construction")
	assert.False(t, p.Muted())

	assert.True(t, p.ToggleMute())
	assert.True(t, p.Muted())
	p.Listen(tetris.Event{Type: tetris.EventMove})
	assert.Zero(t, p.synth.Cached(), "muted players render nothing")

	assert.False(t, p.ToggleMute())

	p.SetVolume(-1)
	assert.Zero(t, p.Volume())
	p.Listen(tetris.Event{Type: tetris.EventMove})
	assert.Zero(t, p.synth.Cached(), "silent players render nothing")
}
