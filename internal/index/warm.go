package index

import (
	"runtime"

	"github.com/gammazero/workerpool"
)

// Warm precomputes the analysis of every headword so the first lookups
// do not pay for it. Workers below 1 means one per logical CPU. Warm
// blocks until the pool drains and reports how many headwords it
// analyzed; without a memo it does nothing.
func (ix *Index) Warm(workers int) int {
	if ix.memo == nil {
		return 0
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	pool := workerpool.New(workers)
	n := 0
	for _, eo := range ix.eoWords {
		if n >= ix.memoCap {
			break
		}
		eo := eo
		pool.Submit(func() {
			ix.Analyze(eo)
		})
		n++
	}
	pool.StopWait()
	return n
}
