package qsim

// Worker drains the pool's job channel until it is closed.
type Worker struct {
	id   int
	pool *Pool
}

func (w *Worker) run() {
	for job := range w.pool.jobs {
		w.processJob(job)
	}
}

func (w *Worker) processJob(job Job) {
	defer job.done.Done()

	job.Fn(job.Lo, job.Hi)
	w.pool.metrics.recordChunk()
}
