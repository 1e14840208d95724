package imgfx

import (
	"runtime"
	"sync"
)

// parallel processes rows [start, stop) in separate goroutines.
// Every row index is delivered to exactly one goroutine.
func parallel(start, stop int, fn func(<-chan int)) {
	count := stop - start
	if count < 1 {
		return
	}

	procs := min(runtime.GOMAXPROCS(0), count)

	c := make(chan int, count)
	for i := start; i < stop; i++ {
		c <- i
	}
	close(c)

	var wg sync.WaitGroup
	for range procs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(c)
		}()
	}
	wg.Wait()
}
