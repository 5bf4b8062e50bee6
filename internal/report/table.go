package report

import (
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/plus3/tetromino/tetris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang = language.English

// Row is one key/value line of a table.
type Row struct {
	Key, Value string
}

var clearNames = [...]string{"", "Singles", "Doubles", "Triples", "Tetrises"}

// Write renders the summary, clear and spawn tables.
func (s Summary) Write(w io.Writer) error {
	for _, t := range []string{
		Table("Tetris Stress Report", s.basic()),
		Table("Line Clears", s.clears()),
		Table("Spawn Distribution", s.spawns()),
	} {
		if _, err := io.WriteString(w, t); err != nil {
			return err
		}
	}
	return nil
}

func (s Summary) basic() []Row {
	p := message.NewPrinter(lang)
	return []Row{
		{"Games", p.Sprintf("%d", s.Games)},
		{"Games Over", p.Sprintf("%d", s.GamesOver)},
		{"Pieces", p.Sprintf("%d", s.Pieces)},
		{"Lines", p.Sprintf("%d", s.Lines)},
		{"Max Level", p.Sprintf("%d", s.MaxLevel)},
		{"Mean Score", p.Sprintf("%.1f", s.ScoreMean)},
		{"Score STD", p.Sprintf("%.1f", s.ScoreStd)},
		{"Median Score", p.Sprintf("%.0f", s.ScoreMedian)},
		{"P90 Score", p.Sprintf("%.0f", s.ScoreP90)},
		{"Best Score", p.Sprintf("%d (seed %d)", s.ScoreMax, s.BestSeed)},
		{"Elapsed", s.Elapsed.Round(time.Millisecond).String()},
		{"Pieces/sec", p.Sprintf("%.0f", s.PiecesPerSecond())},
	}
}

func (s Summary) clears() []Row {
	p := message.NewPrinter(lang)
	rows := make([]Row, 0, len(clearNames)-1)
	for n := 1; n < len(clearNames); n++ {
		rows = append(rows, Row{clearNames[n], p.Sprintf("%d", s.Clears[n])})
	}
	return rows
}

func (s Summary) spawns() []Row {
	p := message.NewPrinter(lang)
	total := 0
	for _, c := range s.Spawns {
		total += c
	}

	rows := make([]Row, 0, len(tetris.Kinds))
	for i, k := range tetris.Kinds {
		share := 0.0
		if total > 0 {
			share = 100 * float64(s.Spawns[i]) / float64(total)
		}
		rows = append(rows, Row{k.String(), p.Sprintf("%d (%.1f%%)", s.Spawns[i], share)})
	}
	return rows
}

// Table draws rows in a bordered two-column box under a centered title.
func Table(title string, rows []Row) string {
	keyW, valW := 0, 0
	for _, r := range rows {
		keyW = max(keyW, runewidth.StringWidth(r.Key))
		valW = max(valW, runewidth.StringWidth(r.Value))
	}
	keyW += 2
	valW += 2

	inner := keyW + valW + 1
	if tw := runewidth.StringWidth(title); tw > inner {
		valW += tw - inner
		inner = tw
	}
	titleW := runewidth.StringWidth(title)
	left := (inner - titleW) / 2

	var sb strings.Builder
	top := "+" + strings.Repeat("-", inner) + "+\n"
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"

	sb.WriteString(top)
	sb.WriteString("|" + blank(left) + title + blank(inner-titleW-left) + "|\n")
	sb.WriteString(divider)
	for _, r := range rows {
		sb.WriteString("| " + runewidth.FillRight(r.Key, keyW-2) + " | " + runewidth.FillRight(r.Value, valW-2) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
