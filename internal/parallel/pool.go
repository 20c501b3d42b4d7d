package parallel

import (
	"context"
	"sync"
	"sync/atomic"
)

// Job is one pixel of work: the point to evaluate and the column whose
// row-buffer slot receives the result.
type Job struct {
	Point  complex128
	Column int
}

// Publisher receives computed values. RowAssembler implements it.
type Publisher interface {
	Publish(col int, v uint8)
}

// Engine is one slot of the engine pool: a one-deep mailbox, a lock
// serializing the column drivers that write it, and a pair of signals.
//
// The lock is a one-slot channel rather than a sync.Mutex so that a
// driver waiting for a busy engine can give up when its context is done.
type Engine struct {
	id int

	// lock is held by at most one driver for the duration of one job.
	lock chan struct{}

	// mailbox is written by the lock holder before ready is signalled and
	// read by the engine goroutine after ready is received.
	mailbox Job

	// ready signals that the mailbox holds a new job.
	ready chan struct{}

	// done signals that the mailbox job has been published.
	done chan struct{}

	// jobs counts completed jobs.
	jobs atomic.Int64
}

// ID returns the engine index within its pool.
func (e *Engine) ID() int {
	return e.id
}

// Jobs returns the number of jobs this engine has completed.
func (e *Engine) Jobs() int64 {
	return e.jobs.Load()
}

// Do runs job on this engine and waits for its result to be published.
//
// Do blocks while another driver holds the engine; drivers that route to
// the same engine are served one at a time. If ctx is done while waiting
// for the result, Do returns ctx.Err() without releasing the engine, since
// the engine may still be reading the mailbox. The pool must not be used
// for further jobs after that.
func (e *Engine) Do(ctx context.Context, job Job) error {
	select {
	case e.lock <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	e.mailbox = job
	e.ready <- struct{}{}

	select {
	case <-e.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	<-e.lock
	return nil
}

// EnginePool is a fixed set of long-lived compute goroutines.
//
// Each engine waits for a job in its mailbox, evaluates it, publishes the
// result, and signals completion. The pool never grows or shrinks.
//
// Thread safety: EnginePool is safe for concurrent use.
type EnginePool struct {
	engines []*Engine

	// compute evaluates a single point.
	compute func(complex128) uint8

	// out receives every computed value.
	out Publisher

	// stop signals engines to exit.
	stop chan struct{}

	// wg waits for all engines to finish.
	wg sync.WaitGroup

	// running indicates whether the pool accepts work.
	running atomic.Bool
}

// NewEnginePool creates n engines that evaluate points with compute and
// publish results to out. The engines start immediately.
// It panics with a *ProtocolViolation if n is not positive.
func NewEnginePool(n int, compute func(complex128) uint8, out Publisher) *EnginePool {
	if n <= 0 {
		violate("NewEnginePool", "engine count %d must be positive", n)
	}

	p := &EnginePool{
		engines: make([]*Engine, n),
		compute: compute,
		out:     out,
		stop:    make(chan struct{}),
	}
	for i := range n {
		p.engines[i] = &Engine{
			id:    i,
			lock:  make(chan struct{}, 1),
			ready: make(chan struct{}, 1),
			done:  make(chan struct{}, 1),
		}
	}

	p.running.Store(true)

	p.wg.Add(n)
	for _, e := range p.engines {
		go p.run(e)
	}

	slogger().Debug("engine pool started", "engines", n)
	return p
}

// run is the main loop for each engine goroutine.
func (p *EnginePool) run(e *Engine) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stop:
			slogger().Debug("engine stopped", "engine", e.id, "jobs", e.jobs.Load())
			return
		case <-e.ready:
		}

		job := e.mailbox
		p.out.Publish(job.Column, p.compute(job.Point))
		e.jobs.Add(1)
		e.done <- struct{}{}
	}
}

// Len returns the number of engines.
func (p *EnginePool) Len() int {
	return len(p.engines)
}

// Engine returns engine i.
func (p *EnginePool) Engine(i int) *Engine {
	return p.engines[i]
}

// Jobs returns the number of completed jobs per engine.
func (p *EnginePool) Jobs() []int64 {
	jobs := make([]int64, len(p.engines))
	for i, e := range p.engines {
		jobs[i] = e.jobs.Load()
	}
	return jobs
}

// IsRunning returns true until Close is called.
func (p *EnginePool) IsRunning() bool {
	return p.running.Load()
}

// Close stops all engines and waits for them to exit. An engine in the
// middle of a job finishes it first. Close is safe to call multiple times.
func (p *EnginePool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.stop)
	p.wg.Wait()
}
