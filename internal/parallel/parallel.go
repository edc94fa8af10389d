// Package parallel provides chunked parallel iteration for the copy engine.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum iterations per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// Sequential returns a Config that runs everything on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// chunkSize returns the number of iterations each goroutine handles, or n
// when the work should not be split.
func (cfg Config) chunkSize(n int) int {
	minChunk := max(cfg.MinChunkSize, 1)
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*minChunk {
		return n
	}
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, minChunk)
}

// For calls f(lo, hi) over disjoint half-open ranges that together cover [0, n).
// Ranges are handed out in ascending order; when parallelism is disabled or n
// is too small, f is called once with [0, n) on the calling goroutine.
// For returns after every call to f has returned.
func For(n int, cfg Config, f func(lo, hi int)) {
	if n <= 0 {
		return
	}
	chunk := cfg.chunkSize(n)
	if chunk >= n {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(start, end)
	}
	wg.Wait()
}
