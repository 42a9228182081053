package utils

import (
	"runtime"
	"sync"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// ParallelForEachRow calls f once for every row in [0, height). Rows are split into contiguous bands, one
// goroutine per band, and the call returns once every row is done. f must only touch memory owned by its row.
func ParallelForEachRow(height int, f func(y int)) {
	if height <= 0 {
		return
	}
	bands := ParallelFactor
	if bands > height {
		bands = height
	}
	if bands <= 1 {
		for y := 0; y < height; y++ {
			f(y)
		}
		return
	}

	var waitGroup sync.WaitGroup
	waitGroup.Add(bands)
	for i := 0; i < bands; i++ {
		start := i * height / bands
		end := (i + 1) * height / bands
		go func() {
			defer waitGroup.Done()
			for y := start; y < end; y++ {
				f(y)
			}
		}()
	}
	waitGroup.Wait()
}
