package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	var counter int64
	n := 1000
	seen := make([]bool, n)

	For(n, cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			seen[i] = true
			atomic.AddInt64(&counter, 1)
		}
	})

	assert.Equal(t, int64(n), counter)
	for i, ok := range seen {
		require.True(t, ok, "missing iteration %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	var calls [][2]int
	For(10, Sequential(), func(lo, hi int) {
		calls = append(calls, [2]int{lo, hi})
	})
	assert.Equal(t, [][2]int{{0, 10}}, calls)
}

func TestFor_SmallN(t *testing.T) {
	// Below 2*MinChunkSize the work stays on one goroutine.
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 16}
	var calls [][2]int
	For(20, cfg, func(lo, hi int) {
		calls = append(calls, [2]int{lo, hi})
	})
	assert.Equal(t, [][2]int{{0, 20}}, calls)
}

func TestFor_Empty(t *testing.T) {
	called := false
	For(0, DefaultConfig(), func(_, _ int) { called = true })
	assert.False(t, called)
}

func TestFor_Chunks(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}

	var mu sync.Mutex
	var ranges [][2]int
	For(7, cfg, func(lo, hi int) {
		mu.Lock()
		defer mu.Unlock()
		ranges = append(ranges, [2]int{lo, hi})
	})

	assert.ElementsMatch(t, [][2]int{{0, 3}, {3, 6}, {6, 7}}, ranges)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Positive(t, cfg.NumWorkers)
	assert.Equal(t, 1, cfg.MinChunkSize)
}
