package qsim

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWorker(t *testing.T) {
	Convey("Given a worker", t, func() {
		pool := &Pool{
			jobs:    make(chan Job, 2),
			metrics: NewMetrics(),
		}

		worker := &Worker{pool: pool}

		Convey("It should run every queued job and signal completion", func() {
			var (
				done sync.WaitGroup
				mu   sync.Mutex
				seen []int
			)

			record := func(lo, hi int) {
				mu.Lock()
				defer mu.Unlock()
				for i := lo; i < hi; i++ {
					seen = append(seen, i)
				}
			}

			done.Add(2)
			pool.jobs <- Job{ID: 0, Lo: 0, Hi: 2, Fn: record, done: &done}
			pool.jobs <- Job{ID: 1, Lo: 2, Hi: 3, Fn: record, done: &done}
			close(pool.jobs)

			worker.run()
			done.Wait()

			So(seen, ShouldResemble, []int{0, 1, 2})
			So(pool.metrics.ChunksProcessed, ShouldEqual, 2)
		})
	})
}
