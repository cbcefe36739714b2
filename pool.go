package qsim

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
)

/*
Pool is a fixed set of workers used for data-parallel loops. Dispatch splits
a loop range into contiguous, non-overlapping chunks, hands one to each
worker, and returns once every chunk has run. There is no suspension and no
cancellation inside a dispatch; the only shared state the callers touch is
whatever fn writes, so fn must only write locations owned by its range.
*/
type Pool struct {
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.RWMutex
	wg       sync.WaitGroup
	jobs     chan Job
	workers  int
	minChunk int
	metrics  *Metrics
	closed   bool
}

// NewPool starts workers goroutines. The pool closes itself when ctx ends.
func NewPool(ctx context.Context, workers int, opts ...PoolOption) *Pool {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	p := &Pool{
		ctx:      ctx,
		cancel:   cancel,
		jobs:     make(chan Job, workers*4),
		workers:  workers,
		minChunk: 1,
	}

	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < workers; i++ {
		p.startWorker(i)
	}

	go func() {
		<-ctx.Done()
		p.Close()
	}()

	errnie.Info("NewPool - workers %d, minChunk %d", p.workers, p.minChunk)
	return p
}

func (p *Pool) startWorker(id int) {
	worker := &Worker{id: id, pool: p}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run()
	}()
}

/*
Dispatch runs fn over [0, n) and blocks until it has covered the whole range.
Chunk k is [k*n/parts, (k+1)*n/parts), so the chunks are disjoint and their
union is [0, n). When the range fits in one chunk, or the pool is closed,
fn runs once on the calling goroutine.
*/
func (p *Pool) Dispatch(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}

	parts := p.partitions(n)

	p.mu.RLock()
	if p.closed || parts <= 1 {
		p.mu.RUnlock()
		fn(0, n)
		return
	}

	start := time.Now()

	var done sync.WaitGroup
	done.Add(parts)

	for k := 0; k < parts; k++ {
		p.jobs <- Job{
			ID:   k,
			Lo:   k * n / parts,
			Hi:   (k + 1) * n / parts,
			Fn:   fn,
			done: &done,
		}
	}
	p.mu.RUnlock()

	done.Wait()

	p.metrics.recordDispatch()
	log.Debug("dispatch", "n", n, "chunks", parts, "elapsed", time.Since(start))
}

func (p *Pool) partitions(n int) int {
	parts := n / p.minChunk
	if parts < 1 {
		parts = 1
	}

	return min(parts, p.workers)
}

func (p *Pool) Workers() int {
	return p.workers
}

func (p *Pool) Metrics() *Metrics {
	return p.metrics
}

// Close stops accepting work, lets workers drain queued chunks, and waits
// for them to exit. Safe to call more than once.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()

	errnie.Info("Pool closed - workers %d", p.workers)
}

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// DefaultPool is the shared pool registers use when none is given. It is
// sized from NewConfig and lives for the rest of the process.
func DefaultPool() *Pool {
	defaultPoolOnce.Do(func() {
		config := NewConfig()
		defaultPool = NewPool(
			context.Background(), config.Workers, WithMinChunk(config.MinChunk),
		)
	})

	return defaultPool
}
