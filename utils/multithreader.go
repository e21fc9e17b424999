package utils

import (
	"runtime"
	"sync"
)

// MultiThread runs f over the integer range [start, end) from a pool of one
// goroutine per CPU. It blocks until the whole range has been handled, so it
// should be called sequentially, not from a separate goroutine.
//
// Workers claim chunks of 'chunk' consecutive indexes at a time; chunk values
// below 1 are treated as 1. f must be safe to call concurrently for distinct
// indexes. Used by the cross-validation fold evaluator, where each index is an
// independent fold.
func MultiThread(start, end int, f func(int), chunk int) {
	if chunk < 1 {
		chunk = 1
	}

	index := start
	var indexMux sync.Mutex

	var wg sync.WaitGroup
	for thread := 0; thread < runtime.NumCPU(); thread++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				indexMux.Lock()
				if index >= end {
					indexMux.Unlock()
					return
				}
				i := index
				index += chunk
				indexMux.Unlock()

				e := i + chunk
				if e > end {
					e = end
				}
				for ; i < e; i++ {
					f(i)
				}
			}
		}()
	}

	wg.Wait()
}
