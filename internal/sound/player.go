package sound

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/tetromino/tetris"
	"github.com/rs/zerolog/log"
)

// Player plays cues fire-and-forget on an ebiten audio context.
type Player struct {
	ctx   *audio.Context
	synth *Synth

	mu     sync.Mutex
	volume float64
	muted  bool
	active []*audio.Player
}

// NewPlayer creates a player. ctx must run at SampleRate.
func NewPlayer(ctx *audio.Context, volume float64, muted bool) *Player {
	p := &Player{
		ctx:   ctx,
		synth: NewSynth(),
		muted: muted,
	}
	p.SetVolume(volume)
	return p
}

// Listen plays the cue for e, if there is one. It has the tetris.Listener
// signature so it can be subscribed to a game's event bus.
func (p *Player) Listen(e tetris.Event) {
	if cue, ok := CueFor(e); ok {
		p.Play(cue)
	}
}

func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prune()
	if p.muted || p.volume == 0 {
		return
	}

	player := p.ctx.NewPlayerFromBytes(p.synth.Render(c))
	player.SetVolume(p.volume)
	player.Play()
	p.active = append(p.active, player)
}

// prune closes players that finished.
func (p *Player) prune() {
	live := p.active[:0]
	for _, player := range p.active {
		if player.IsPlaying() {
			live = append(live, player)
			continue
		}
		if err := player.Close(); err != nil {
			log.Debug().Err(err).Msg("closing audio player")
		}
	}
	clear(p.active[len(live):])
	p.active = live
}

// ToggleMute flips muting and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// SetVolume sets the master volume, clamped to [0,1]. Cues already playing
// keep their volume.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = max(0, min(1, v))
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}
