package parallel

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBarrier_SingleParty(t *testing.T) {
	b := NewBarrier(1)
	for i := range 3 {
		if err := b.Wait(); err != nil {
			t.Fatalf("Wait() #%d error = %v", i, err)
		}
	}
	if got := b.Generation(); got != 3 {
		t.Errorf("Generation() = %d, want 3", got)
	}
}

func TestBarrier_ReleasesTogether(t *testing.T) {
	const parties = 8
	const rounds = 50

	b := NewBarrier(parties)

	// arrivals[r] counts parties that reached round r. No party may enter
	// round r+1 before all parties have arrived at round r.
	var arrivals [rounds]atomic.Int32
	var failures atomic.Int32

	var wg sync.WaitGroup
	wg.Add(parties)
	for range parties {
		go func() {
			defer wg.Done()
			for r := range rounds {
				if r > 0 && arrivals[r-1].Load() != parties {
					failures.Add(1)
				}
				arrivals[r].Add(1)
				if err := b.Wait(); err != nil {
					failures.Add(1)
					return
				}
			}
		}()
	}
	wg.Wait()

	if n := failures.Load(); n != 0 {
		t.Errorf("%d parties advanced before the barrier tripped", n)
	}
	if got := b.Generation(); got != rounds {
		t.Errorf("Generation() = %d, want %d", got, rounds)
	}
}

func TestBarrier_BreakReleasesWaiters(t *testing.T) {
	b := NewBarrier(3)

	errs := make(chan error, 2)
	for range 2 {
		go func() { errs <- b.Wait() }()
	}

	// Give the waiters a chance to block; Break must release them either way.
	time.Sleep(10 * time.Millisecond)
	b.Break()

	for range 2 {
		select {
		case err := <-errs:
			if !errors.Is(err, ErrBarrierBroken) {
				t.Errorf("Wait() error = %v, want ErrBarrierBroken", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for broken barrier to release waiters")
		}
	}

	if err := b.Wait(); !errors.Is(err, ErrBarrierBroken) {
		t.Errorf("Wait() after Break error = %v, want ErrBarrierBroken", err)
	}
	if !b.Broken() {
		t.Error("Broken() = false after Break")
	}

	// Idempotent.
	b.Break()
}

func TestBarrier_Parties(t *testing.T) {
	b := NewBarrier(65)
	if got := b.Parties(); got != 65 {
		t.Errorf("Parties() = %d, want 65", got)
	}
}

func TestNewBarrier_InvalidParties(t *testing.T) {
	expectViolation(t, "NewBarrier", func() { NewBarrier(0) })
}
