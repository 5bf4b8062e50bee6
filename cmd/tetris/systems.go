package main

import (
	"time"

	"github.com/plus3/tetromino/engine"
	"github.com/plus3/tetromino/engine/debugui"
	"github.com/plus3/tetromino/internal/config"
	"github.com/plus3/tetromino/internal/sound"
	"github.com/plus3/tetromino/tetris"
	"github.com/rs/zerolog/log"
)

const volumeStep = 0.1

// Session holds the game being played.
type Session struct {
	Game *tetris.Game
}

// Audio holds the sound player subscribed to the session's events.
type Audio struct {
	Player *sound.Player
}

// InputSystem translates key presses into game and audio commands.
type InputSystem struct {
	Session  engine.Singleton[Session]
	Bindings engine.Singleton[Bindings]
	Repeat   engine.Singleton[Repeat]
	Audio    engine.Singleton[Audio]
	Imgui    engine.Singleton[debugui.ImguiInputState]
	Overlay  engine.Singleton[debugui.Overlay]
}

func (s *InputSystem) Execute(frame *engine.UpdateFrame) {
	keys := s.Bindings.Get()
	if keys == nil {
		return
	}
	if imgui := s.Imgui.Get(); imgui != nil && imgui.WantCaptureKeyboard {
		return
	}
	s.apply(keys.Poll(), frame.DeltaTime)
}

func (s *InputSystem) apply(in Input, dt time.Duration) {
	if in[config.ActionDebug].Pressed {
		if overlay := s.Overlay.Get(); overlay != nil {
			overlay.Visible = !overlay.Visible
		}
	}
	if audio := s.Audio.Get(); audio != nil && audio.Player != nil {
		applyAudio(audio.Player, in)
	}

	session, repeat := s.Session.Get(), s.Repeat.Get()
	if session == nil || repeat == nil {
		return
	}
	g := session.Game

	if in[config.ActionRestart].Pressed {
		g.Restart()
		return
	}
	if in[config.ActionPause].Pressed {
		g.TogglePause()
	}

	if repeat.Left.step(in[config.ActionLeft], dt, repeat.Delay, repeat.Rate) {
		g.MoveLeft()
	}
	if repeat.Right.step(in[config.ActionRight], dt, repeat.Delay, repeat.Rate) {
		g.MoveRight()
	}
	if in[config.ActionRotate].Pressed {
		g.Rotate()
	}
	if repeat.Down.step(in[config.ActionDown], dt, repeat.Delay, repeat.Rate) {
		g.SoftDrop()
	}
	if in[config.ActionDrop].Pressed {
		g.HardDrop()
	}
}

func applyAudio(p *sound.Player, in Input) {
	if in[config.ActionMute].Pressed {
		log.Info().Bool("muted", p.ToggleMute()).Msg("audio toggled")
	}
	step := 0.0
	if in[config.ActionVolUp].Pressed {
		step += volumeStep
	}
	if in[config.ActionVolDown].Pressed {
		step -= volumeStep
	}
	if step != 0 {
		p.SetVolume(p.Volume() + step)
		log.Debug().Float64("volume", p.Volume()).Msg("volume changed")
	}
}

// GravitySystem advances the fall timer by the frame time.
type GravitySystem struct {
	Session engine.Singleton[Session]
}

func (s *GravitySystem) Execute(frame *engine.UpdateFrame) {
	if session := s.Session.Get(); session != nil {
		session.Game.Update(frame.DeltaTime)
	}
}

// logEvents reports session milestones.
func logEvents(e tetris.Event) {
	switch e.Type {
	case tetris.EventLevelUp:
		log.Info().Int("level", e.Level).Int("score", e.Score).Msg("level up")
	case tetris.EventGameOver:
		log.Info().Int("score", e.Score).Int("level", e.Level).Msg("game over")
	case tetris.EventRestart:
		log.Info().Msg("restart")
	case tetris.EventPause, tetris.EventResume:
		log.Debug().Str("event", e.Type.String()).Msg("pause toggled")
	case tetris.EventLineClear:
		log.Debug().Int("rows", e.Count).Int("score", e.Score).Msg("line clear")
	}
}
