// Command tetris is the windowed falling-block game.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/tetromino/engine"
	"github.com/plus3/tetromino/engine/debugui"
	debugui_ebiten "github.com/plus3/tetromino/engine/debugui/ebiten"
	"github.com/plus3/tetromino/internal/config"
	"github.com/plus3/tetromino/internal/logging"
	"github.com/plus3/tetromino/internal/sound"
	"github.com/plus3/tetromino/tetris"
	"github.com/rs/zerolog/log"
)

const title = "Tetromino"

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults to $TETRIS_CONFIG).")
	debug := flag.Bool("debug", false, "Enable the Dear ImGui debug overlay.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	app, err := newApp(cfg, *debug)
	if err != nil {
		log.Fatal().Err(err).Msg("setup failed")
	}

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}

func newApp(cfg *config.Config, debug bool) (*App, error) {
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	random, err := tetris.ParseRandomizer(cfg.Game.Randomizer, seed)
	if err != nil {
		return nil, err
	}
	bindings, err := NewBindings(cfg.Input.Keys)
	if err != nil {
		return nil, err
	}

	game := tetris.New(tetris.WithRandomizer(random), tetris.WithListener(logEvents))
	player := sound.NewPlayer(audio.NewContext(sound.SampleRate), cfg.Audio.Volume, cfg.Audio.Mute)
	game.Events().SubscribeAll(player.Listen)

	log.Info().
		Uint64("seed", seed).
		Str("randomizer", cfg.Game.Randomizer).
		Bool("debug", debug).
		Msg("starting game")

	resources := engine.NewResources()
	engine.NewSingleton(resources, Session{Game: game})
	engine.NewSingleton(resources, bindings)
	engine.NewSingleton(resources, Repeat{
		Delay: cfg.Input.RepeatDelay,
		Rate:  cfg.Input.RepeatRate,
	})
	engine.NewSingleton(resources, Audio{Player: player})
	engine.NewSingleton(resources, debugui.ImguiInputState{})
	overlay := engine.NewSingleton(resources, debugui.Overlay{Visible: debug})
	engine.NewSingleton(resources, Canvas{})

	updates := engine.NewScheduler(resources)
	updates.Register(&InputSystem{})
	updates.Register(&GravitySystem{})

	draws := engine.NewScheduler(resources)
	draws.Register(&RenderSystem{})
	draws.Register(&HUDSystem{})

	app := &App{
		resources: resources,
		updates:   updates,
		draws:     draws,
	}

	width := int(float64(ScreenWidth) * cfg.Window.Scale)
	height := int(float64(ScreenHeight) * cfg.Window.Scale)

	if debug {
		updates.Register(&debugui.ImguiSystem{})

		stats := debugui.NewPerformanceStats(120, resources,
			debugui.NamedScheduler{Name: "Update", Scheduler: updates},
			debugui.NamedScheduler{Name: "Draw", Scheduler: draws},
		)
		inspector := &debugui.GameInspector{Game: game, ShowBoard: true}
		overlay.Get().Add(stats.Render)
		overlay.Get().Add(inspector.Render)
		app.frameTime = stats.History.Push

		// the overlay needs room beside the playfield
		width += 640
		height = max(height, 720)
		app.imgui = debugui_ebiten.NewImguiBackend(title, width, height)
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	return app, nil
}
