// Command tetris-stress plays many autoplay games without a window and
// prints aggregate statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/plus3/tetromino/autoplay"
	"github.com/plus3/tetromino/internal/logging"
	"github.com/plus3/tetromino/internal/report"
	"github.com/plus3/tetromino/tetris"
	"github.com/rs/zerolog/log"
)

type options struct {
	games      int
	pieces     int
	workers    int
	seed       uint64
	randomizer string
	progress   bool
}

func main() {
	var opts options
	flag.IntVar(&opts.games, "games", 100, "Number of games to play.")
	flag.IntVar(&opts.pieces, "pieces", 1000, "Maximum pieces per game (0 for no limit).")
	flag.IntVar(&opts.workers, "workers", runtime.NumCPU(), "Number of games played concurrently.")
	flag.Uint64Var(&opts.seed, "seed", 1, "Base seed; game i uses seed+i.")
	flag.StringVar(&opts.randomizer, "randomizer", tetris.RandomizerUniform, "Piece randomizer: uniform or bag.")
	flag.BoolVar(&opts.progress, "progress", true, "Show a progress bar.")
	logLevel := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	if err := logging.Setup(*logLevel, "console"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := opts.validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	log.Info().
		Int("games", opts.games).
		Int("workers", opts.workers).
		Uint64("seed", opts.seed).
		Str("randomizer", opts.randomizer).
		Msg("starting stress run")

	var bar io.Writer = os.Stderr
	if !opts.progress {
		bar = io.Discard
	}
	results, elapsed, err := run(opts, bar)
	if err != nil {
		log.Fatal().Err(err).Msg("stress run failed")
	}

	summary := report.Summarize(results, elapsed)
	if err := summary.Write(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to write report")
	}
	log.Info().Dur("elapsed", elapsed).Msg("stress run complete")
}

func (o options) validate() error {
	if o.games < 1 {
		return fmt.Errorf("games must be > 0, got %d", o.games)
	}
	if o.workers < 1 {
		return fmt.Errorf("workers must be > 0, got %d", o.workers)
	}
	if o.pieces < 0 {
		return fmt.Errorf("pieces must not be negative, got %d", o.pieces)
	}
	_, err := tetris.ParseRandomizer(o.randomizer, 0)
	return err
}

// run plays opts.games games on opts.workers goroutines. Results are
// indexed by game number so the output does not depend on scheduling.
func run(opts options, progress io.Writer) ([]report.GameResult, time.Duration, error) {
	if _, err := tetris.ParseRandomizer(opts.randomizer, 0); err != nil {
		return nil, 0, err
	}
	results := make([]report.GameResult, opts.games)
	jobs := make(chan int, opts.workers)

	bar := pb.StartNew(opts.games)
	bar.SetWriter(progress)

	var wg sync.WaitGroup
	wg.Add(opts.workers)
	for range opts.workers {
		go func() {
			defer wg.Done()
			bot := autoplay.New()
			for i := range jobs {
				seed := opts.seed + uint64(i)
				random, _ := tetris.ParseRandomizer(opts.randomizer, seed)
				g := tetris.New(tetris.WithRandomizer(random))
				played := bot.Play(g, opts.pieces)
				results[i] = report.FromGame(g, seed, played)

				log.Debug().
					Uint64("seed", seed).
					Int("score", g.Score()).
					Int("lines", g.Lines()).
					Bool("over", g.Over()).
					Msg("game finished")
				bar.Increment()
			}
		}()
	}

	for i := range opts.games {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(bar.StartTime())
	bar.Finish()

	return results, elapsed, nil
}
