package qsim

import "sync"

// Job is one contiguous range [Lo, Hi) of a dispatched loop.
type Job struct {
	ID   int
	Lo   int
	Hi   int
	Fn   func(lo, hi int)
	done *sync.WaitGroup
}

// PoolOption is a function type for configuring pools
type PoolOption func(*Pool)

// WithMinChunk sets the smallest range a worker is handed.
func WithMinChunk(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.minChunk = n
		}
	}
}

// WithPoolMetrics makes the pool record dispatches into m.
func WithPoolMetrics(m *Metrics) PoolOption {
	return func(p *Pool) {
		p.metrics = m
	}
}
