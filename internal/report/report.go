// Package report aggregates the outcome of many games and renders it as
// aligned text tables.
package report

import (
	"slices"
	"time"

	"github.com/plus3/tetromino/tetris"
	"gonum.org/v1/gonum/stat"
)

// GameResult is the outcome of one finished or capped game.
type GameResult struct {
	Seed   uint64
	Score  int
	Lines  int
	Level  int
	Pieces int
	Over   bool
	Clears [5]int
	Spawns [len(tetris.Kinds)]int
}

// FromGame captures g after pieces have been played.
func FromGame(g *tetris.Game, seed uint64, pieces int) GameResult {
	stats := g.Stats()
	r := GameResult{
		Seed:   seed,
		Score:  g.Score(),
		Lines:  g.Lines(),
		Level:  g.Level(),
		Pieces: pieces,
		Over:   g.Over(),
		Clears: stats.Clears,
	}
	for i, k := range tetris.Kinds {
		r.Spawns[i] = stats.Spawned(k)
	}
	return r
}

type Summary struct {
	Games     int
	GamesOver int
	Pieces    int
	Lines     int
	MaxLevel  int

	ScoreMean   float64
	ScoreStd    float64
	ScoreMedian float64
	ScoreP90    float64
	ScoreMax    int
	BestSeed    uint64

	Clears  [5]int
	Spawns  [len(tetris.Kinds)]int
	Elapsed time.Duration
}

// Summarize folds results into a Summary. elapsed is the wall time of the run.
func Summarize(results []GameResult, elapsed time.Duration) Summary {
	s := Summary{Games: len(results), Elapsed: elapsed}
	if len(results) == 0 {
		return s
	}

	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = float64(r.Score)
		s.Pieces += r.Pieces
		s.Lines += r.Lines
		s.MaxLevel = max(s.MaxLevel, r.Level)
		if r.Over {
			s.GamesOver++
		}
		if i == 0 || r.Score > s.ScoreMax {
			s.ScoreMax = r.Score
			s.BestSeed = r.Seed
		}
		for n, c := range r.Clears {
			s.Clears[n] += c
		}
		for k, c := range r.Spawns {
			s.Spawns[k] += c
		}
	}

	if len(scores) > 1 {
		s.ScoreMean, s.ScoreStd = stat.MeanStdDev(scores, nil)
	} else {
		s.ScoreMean = scores[0]
	}
	slices.Sort(scores)
	s.ScoreMedian = stat.Quantile(0.5, stat.Empirical, scores, nil)
	s.ScoreP90 = stat.Quantile(0.9, stat.Empirical, scores, nil)
	return s
}

// PiecesPerSecond is the aggregate throughput of the run.
func (s Summary) PiecesPerSecond() float64 {
	sec := s.Elapsed.Seconds()
	if sec <= 0 {
		return 0
	}
	return float64(s.Pieces) / sec
}
