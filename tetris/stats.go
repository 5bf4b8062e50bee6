package tetris

import "github.com/kamstrup/intmap"

// Stats tracks what happened during a single game.
type Stats struct {
	spawns      *intmap.Map[Kind, int]
	Locks       int
	HardDrops   int
	SoftDropped int
	// Clears[n] counts locks that cleared n rows at once; index 0 is unused.
	Clears [5]int
}

func newStats() *Stats {
	return &Stats{spawns: intmap.New[Kind, int](len(Kinds))}
}

func (s *Stats) reset() {
	s.spawns = intmap.New[Kind, int](len(Kinds))
	s.Locks = 0
	s.HardDrops = 0
	s.SoftDropped = 0
	s.Clears = [5]int{}
}

func (s *Stats) spawned(k Kind) {
	n, _ := s.spawns.Get(k)
	s.spawns.Put(k, n+1)
}

func (s *Stats) cleared(n int) {
	if n >= len(s.Clears) {
		n = len(s.Clears) - 1
	}
	s.Clears[n]++
}

// Spawned returns how many pieces of kind k entered play, including the lookahead.
func (s *Stats) Spawned(k Kind) int {
	n, _ := s.spawns.Get(k)
	return n
}

// TotalSpawned sums Spawned over all kinds.
func (s *Stats) TotalSpawned() int {
	total := 0
	for _, k := range Kinds {
		total += s.Spawned(k)
	}
	return total
}
