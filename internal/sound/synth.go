package sound

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/kamstrup/intmap"
)

const (
	SampleRate = 44100
	// bytesPerFrame is two 16-bit little-endian channels.
	bytesPerFrame = 4
	rampFloor     = 0.01
)

// Synth renders cues to PCM and caches the result by cue id.
type Synth struct {
	mu    sync.Mutex
	cache *intmap.Map[CueID, []byte]
}

func NewSynth() *Synth {
	return &Synth{cache: intmap.New[CueID, []byte](16)}
}

// Render returns 16-bit little-endian stereo PCM at SampleRate. The
// returned slice is shared; callers must not modify it.
func (s *Synth) Render(c Cue) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pcm, ok := s.cache.Get(c.ID); ok {
		return pcm
	}
	pcm := render(c)
	s.cache.Put(c.ID, pcm)
	return pcm
}

// Cached reports how many cues have been rendered.
func (s *Synth) Cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

func frames(d time.Duration) int {
	return int(d.Seconds() * SampleRate)
}

func render(c Cue) []byte {
	mix := make([]float64, frames(c.Duration()))
	for _, n := range c.Notes {
		start := frames(n.Start)
		count := frames(n.Duration)
		for i := 0; i < count && start+i < len(mix); i++ {
			t := float64(i) / SampleRate
			mix[start+i] += n.gain(float64(i)/float64(count)) * oscillate(n.Wave, n.Freq*t)
		}
	}

	pcm := make([]byte, len(mix)*bytesPerFrame)
	for i, v := range mix {
		sample := uint16(int16(math.Round(max(-1, min(1, v)) * math.MaxInt16)))
		binary.LittleEndian.PutUint16(pcm[i*bytesPerFrame:], sample)
		binary.LittleEndian.PutUint16(pcm[i*bytesPerFrame+2:], sample)
	}
	return pcm
}

// gain at progress p in [0,1): exponential ramp from Volume to rampFloor.
func (n Note) gain(p float64) float64 {
	if n.Volume <= rampFloor {
		return n.Volume
	}
	return n.Volume * math.Pow(rampFloor/n.Volume, p)
}

// oscillate evaluates one period-normalised waveform at phase cycles.
func oscillate(w Wave, cycles float64) float64 {
	_, frac := math.Modf(cycles)
	switch w {
	case Square:
		if frac < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 1 - 4*math.Abs(frac-0.5)
	case Sawtooth:
		return 2*frac - 1
	default:
		return math.Sin(2 * math.Pi * frac)
	}
}
