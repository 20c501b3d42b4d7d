package parallel

import (
	"errors"
	"sync"
)

// ErrBarrierBroken is returned by Barrier.Wait after Break has been called.
var ErrBarrierBroken = errors.New("parallel: barrier broken")

// Barrier is a reusable rendezvous point for a fixed number of parties.
//
// Each call to Wait blocks until all parties have called Wait for the
// current generation; the last arrival advances the generation and
// releases everyone. The barrier can be reused for an unlimited number of
// generations.
//
// Thread safety: Barrier is safe for concurrent use.
type Barrier struct {
	mu   sync.Mutex
	cond *sync.Cond

	// parties is the number of Wait calls that complete one generation.
	parties int

	// arrived counts Wait calls in the current generation.
	arrived int

	// generation increments each time the barrier trips.
	generation uint64

	// broken is set by Break. Once broken, Wait never blocks again.
	broken bool
}

// NewBarrier creates a barrier for the given number of parties.
// It panics with a *ProtocolViolation if parties is not positive.
func NewBarrier(parties int) *Barrier {
	if parties <= 0 {
		violate("NewBarrier", "parties %d must be positive", parties)
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Parties returns the number of parties required to trip the barrier.
func (b *Barrier) Parties() int {
	return b.parties
}

// Generation returns the number of times the barrier has tripped.
func (b *Barrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}

// Wait blocks until all parties have arrived for the current generation.
// It returns ErrBarrierBroken if the barrier is broken before or while
// waiting.
func (b *Barrier) Wait() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.broken {
		return ErrBarrierBroken
	}

	gen := b.generation
	b.arrived++
	if b.arrived > b.parties {
		violate("Barrier.Wait", "%d arrivals for %d parties", b.arrived, b.parties)
	}
	if b.arrived == b.parties {
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()
		return nil
	}

	for gen == b.generation && !b.broken {
		b.cond.Wait()
	}
	if gen == b.generation {
		return ErrBarrierBroken
	}
	return nil
}

// Break releases every waiting party with ErrBarrierBroken and makes all
// later Wait calls fail immediately. Break is safe to call multiple times.
func (b *Barrier) Break() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.broken {
		return
	}
	b.broken = true
	if b.arrived > 0 {
		slogger().Warn("barrier broken", "generation", b.generation, "waiting", b.arrived, "parties", b.parties)
	}
	b.cond.Broadcast()
}

// Broken reports whether Break has been called.
func (b *Barrier) Broken() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.broken
}
