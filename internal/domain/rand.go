package domain

import (
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Rand is the random source consumed by the resolver and generators.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// LockedRand is a ChaCha8-backed Rand safe for concurrent use. It also
// implements io.Reader over the same stream so id generation stays
// reproducible under a fixed seed.
type LockedRand struct {
	mu  sync.Mutex
	src *rand.ChaCha8
	r   *rand.Rand
}

// NewRand seeds a LockedRand. A zero seed draws a random one.
func NewRand(seed uint64) *LockedRand {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)
	return &LockedRand{src: src, r: rand.New(src)}
}

func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *LockedRand) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Read(p)
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func Pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}
