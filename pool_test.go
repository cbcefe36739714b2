package qsim

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type span struct{ lo, hi int }

func TestPool(t *testing.T) {
	Convey("Given a pool with four workers", t, func() {
		metrics := NewMetrics()
		pool := NewPool(context.Background(), 4, WithMinChunk(10), WithPoolMetrics(metrics))

		Reset(func() {
			pool.Close()
		})

		So(pool.Workers(), ShouldEqual, 4)
		So(pool.Metrics(), ShouldEqual, metrics)

		Convey("Dispatch should visit every index exactly once", func() {
			const n = 1000
			visits := make([]int, n)

			pool.Dispatch(n, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					visits[i]++
				}
			})

			for _, v := range visits {
				So(v, ShouldEqual, 1)
			}
			So(metrics.Dispatches, ShouldEqual, 1)
			So(metrics.ChunksProcessed, ShouldEqual, 4)
		})

		Convey("Chunks should be contiguous and disjoint", func() {
			var (
				mu    sync.Mutex
				spans []span
			)

			pool.Dispatch(103, func(lo, hi int) {
				mu.Lock()
				spans = append(spans, span{lo, hi})
				mu.Unlock()
			})

			sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

			So(len(spans), ShouldEqual, 4)
			So(spans[0].lo, ShouldEqual, 0)
			So(spans[len(spans)-1].hi, ShouldEqual, 103)

			for i := 1; i < len(spans); i++ {
				So(spans[i].lo, ShouldEqual, spans[i-1].hi)
				So(spans[i].hi, ShouldBeGreaterThan, spans[i].lo)
			}
		})

		Convey("A range smaller than two chunks should run inline", func() {
			calls := 0
			pool.Dispatch(15, func(lo, hi int) {
				calls++
				So(lo, ShouldEqual, 0)
				So(hi, ShouldEqual, 15)
			})

			So(calls, ShouldEqual, 1)
			So(metrics.Dispatches, ShouldEqual, 0)
		})

		Convey("An empty range should not call fn", func() {
			called := false
			pool.Dispatch(0, func(lo, hi int) { called = true })
			So(called, ShouldBeFalse)
		})

		Convey("After Close, Dispatch should still cover the range inline", func() {
			pool.Close()
			pool.Close()

			visits := make([]int, 500)
			pool.Dispatch(len(visits), func(lo, hi int) {
				for i := lo; i < hi; i++ {
					visits[i]++
				}
			})

			for _, v := range visits {
				So(v, ShouldEqual, 1)
			}
		})
	})

	Convey("Given a pool bound to a context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		pool := NewPool(ctx, 2)

		Convey("Cancelling the context should close the pool", func() {
			cancel()

			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) {
				pool.mu.RLock()
				closed := pool.closed
				pool.mu.RUnlock()

				if closed {
					break
				}
				time.Sleep(5 * time.Millisecond)
			}

			pool.mu.RLock()
			defer pool.mu.RUnlock()
			So(pool.closed, ShouldBeTrue)
		})
	})

	Convey("Given a non-positive worker count", t, func() {
		pool := NewPool(context.Background(), 0)
		defer pool.Close()

		Convey("It should still start one worker", func() {
			So(pool.Workers(), ShouldEqual, 1)
		})
	})
}

func TestDefaultPool(t *testing.T) {
	Convey("Given the shared pool", t, func() {
		Convey("It should be created once and sized from the config", func() {
			So(DefaultPool(), ShouldEqual, DefaultPool())
			So(DefaultPool().Workers(), ShouldEqual, NewConfig().Workers)
		})
	})
}
