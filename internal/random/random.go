// Package random provides the injectable pseudo-random source used by history
// generation, cosmetic habit assignment and the coach.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source is the subset of *rand.Rand the rules engine draws from
type Source interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// New returns a deterministic source for the given seed
func New(seed uint64) Source {
	return &locked{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewUnseeded returns a source seeded from the runtime's entropy
func NewUnseeded() Source {
	return &locked{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// locked serialises access so one Source can back concurrent HTTP requests
type locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Between returns a value in [lo, hi], inclusive on both ends
func Between(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo+1)
}

// Choice picks one element of items. It panics on an empty slice.
func Choice[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
