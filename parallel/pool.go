// Package parallel runs closures on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// DefaultWorkers is the worker count used when a caller asks for fewer than one.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Start launches numWorkers goroutines. With a single worker Do runs the
// closure inline and Wait returns immediately.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = DefaultWorkers()
	}

	pool := &Pool{
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// minRows is the smallest band handed to a worker.
const minRows = 16

// Rows splits [0, height) into contiguous bands and calls fn(y0, y1) for each
// band on its own worker. Bands never overlap, so fn may write the rows it is
// given without locking. Rows returns once every band is done.
func Rows(height, workers int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if workers < 1 {
		workers = DefaultWorkers()
	}
	workers = min(workers, (height+minRows-1)/minRows)
	if workers <= 1 {
		fn(0, height)
		return
	}

	pool := Start(workers)
	band := (height + workers - 1) / workers
	for y0 := 0; y0 < height; y0 += band {
		y1 := min(y0+band, height)
		pool.Do(func() { fn(y0, y1) })
	}
	pool.Wait(true)
}
