package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/plus3/tetromino/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	results := []GameResult{
		{Seed: 1, Score: 100, Lines: 1, Level: 1, Pieces: 10, Over: true, Clears: [5]int{0, 1}},
		{Seed: 2, Score: 300, Lines: 12, Level: 2, Pieces: 40, Over: true, Clears: [5]int{0, 2, 1, 0, 2}},
		{Seed: 3, Score: 200, Lines: 5, Level: 1, Pieces: 30, Clears: [5]int{0, 1, 2}},
	}
	results[0].Spawns[0] = 4

	s := Summarize(results, 2*time.Second)

	assert.Equal(t, 3, s.Games)
	assert.Equal(t, 2, s.GamesOver)
	assert.Equal(t, 80, s.Pieces)
	assert.Equal(t, 18, s.Lines)
	assert.Equal(t, 2, s.MaxLevel)
	assert.Equal(t, 300, s.ScoreMax)
	assert.Equal(t, uint64(2), s.BestSeed)
	assert.InDelta(t, 200, s.ScoreMean, 1e-9)
	assert.InDelta(t, 100, s.ScoreStd, 1e-9)
	assert.InDelta(t, 200, s.ScoreMedian, 1e-9)
	assert.InDelta(t, 300, s.ScoreP90, 1e-9)
	assert.Equal(t, [5]int{0, 4, 3, 0, 2}, s.Clears)
	assert.Equal(t, 4, s.Spawns[0])
	assert.InDelta(t, 40, s.PiecesPerSecond(), 1e-9)
}

func TestSummarizeEdgeCases(t *testing.T) {
	empty := Summarize(nil, 0)
	assert.Zero(t, empty.Games)
	assert.Zero(t, empty.PiecesPerSecond())

	one := Summarize([]GameResult{{Score: 50}}, time.Second)
	assert.Equal(t, 50.0, one.ScoreMean)
	assert.Zero(t, one.ScoreStd)
	assert.Equal(t, 50.0, one.ScoreMedian)
}

func TestFromGame(t *testing.T) {
	g := tetris.New(tetris.WithSeed(5))
	g.HardDrop()

	r := FromGame(g, 5, 1)
	assert.Equal(t, uint64(5), r.Seed)
	assert.Equal(t, g.Score(), r.Score)
	assert.Equal(t, 1, r.Pieces)

	total := 0
	for _, c := range r.Spawns {
		total += c
	}
	assert.Equal(t, 3, total, "two initial pieces plus one after the lock")
}

func TestTable(t *testing.T) {
	out := Table("Title", []Row{{"Key", "1"}, {"Longer Key", "12,345"}})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 6)

	width := runewidth.StringWidth(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, runewidth.StringWidth(l), l)
	}
	assert.Contains(t, out, "| Longer Key | 12,345 |")
}

func TestTableWideTitle(t *testing.T) {
	out := Table("A Very Long Title Indeed", []Row{{"k", "v"}})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	width := runewidth.StringWidth(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, runewidth.StringWidth(l), l)
	}
}

func TestWrite(t *testing.T) {
	s := Summarize([]GameResult{{Score: 12345, Pieces: 100, Lines: 10, Level: 2}}, time.Second)

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	out := buf.String()

	assert.Contains(t, out, "Tetris Stress Report")
	assert.Contains(t, out, "12,345", "scores use thousands separators")
	assert.Contains(t, out, "Tetrises")
	assert.Contains(t, out, "Spawn Distribution")
}
