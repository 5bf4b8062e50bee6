package tetris

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrUnknownRandomizer = errors.New("unknown randomizer")

// Randomizer chooses the kind of each newly spawned piece.
type Randomizer interface {
	Next() Kind
}

// Uniform draws every piece independently with equal probability.
type Uniform struct {
	rng *rand.Rand
}

func NewUniform(seed uint64) *Uniform {
	return &Uniform{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (u *Uniform) Next() Kind {
	return Kinds[u.rng.IntN(len(Kinds))]
}

// Bag deals all seven kinds in shuffled order before reshuffling.
type Bag struct {
	rng  *rand.Rand
	bag  []Kind
	next int
}

func NewBag(seed uint64) *Bag {
	return &Bag{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (b *Bag) Next() Kind {
	if b.next >= len(b.bag) {
		b.bag = append(b.bag[:0], Kinds[:]...)
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
		b.next = 0
	}
	k := b.bag[b.next]
	b.next++
	return k
}

const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// ParseRandomizer builds a randomizer by name.
func ParseRandomizer(name string, seed uint64) (Randomizer, error) {
	switch name {
	case "", RandomizerUniform:
		return NewUniform(seed), nil
	case RandomizerBag:
		return NewBag(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRandomizer, name)
	}
}
