package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Roller produces the pseudo-random draw consumed by a decision.
//
// The engine never calls a global generator; callers inject a Roller so
// tests can supply fixed draws deterministically.
type Roller interface {
	// Roll returns a value in [0,1).
	Roll() float64
}

// NewRoller returns the production roller: a PCG generator seeded from
// crypto/rand. There is no reproducibility requirement across
// invocations; each process gets fresh entropy.
func NewRoller() (Roller, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	seed1 := binary.LittleEndian.Uint64(b[:8])
	seed2 := binary.LittleEndian.Uint64(b[8:])
	return NewSeededRoller(seed1, seed2), nil
}

// NewSeededRoller returns a roller with a fixed seed. Used by simulate
// runs that want a reproducible draw sequence.
func NewSeededRoller(seed1, seed2 uint64) Roller {
	return &pcgRoller{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// pcgRoller wraps math/rand/v2 behind a mutex. rand.Rand is not safe
// for concurrent use.
type pcgRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *pcgRoller) Roll() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}
