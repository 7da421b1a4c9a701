package schedule

import (
	"math/rand"
	"sync"
)

// RandomTiebreak shuffles tied entries so skill pairings vary across rounds.
// Variety only; fairness never depends on it.
type RandomTiebreak struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomTiebreak(seed int64) *RandomTiebreak {
	return &RandomTiebreak{rng: rand.New(rand.NewSource(seed))}
}

func (t *RandomTiebreak) Order(tied []Entry) []Entry {
	out := make([]Entry, len(tied))
	copy(out, tied)

	t.mu.Lock()
	t.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	t.mu.Unlock()

	return out
}

// StableTiebreak keeps the incoming order. Used by tests and available as a
// round-robin style strategy.
type StableTiebreak struct{}

func (StableTiebreak) Order(tied []Entry) []Entry {
	out := make([]Entry, len(tied))
	copy(out, tied)

	return out
}
