package main

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// BenchmarkResult summarises one benchmark run
type BenchmarkResult struct {
	Operation     string
	TotalOps      int
	TotalDuration time.Duration
	AvgDuration   time.Duration
	OpsPerSec     float64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	TotalResults  int64
	AvgResults    float64
	Errors        int64
}

// operation runs once with a worker-local random source and returns a result size
type operation func(r *rand.Rand) (int, error)

// runBenchmark executes op numOps times on a pool of workers. A negative count runs
// nothing.
func runBenchmark(name string, numOps, workers int, seed int64, op operation) BenchmarkResult {
	if workers < 1 {
		workers = 1
	}
	numOps = max(numOps, 0)

	var (
		totalResults atomic.Int64
		errCount     atomic.Int64
		minDuration  = time.Duration(1<<63 - 1)
		maxDuration  time.Duration
		totalDur     time.Duration
		measured     int
		mu           sync.Mutex
	)

	startTime := time.Now()

	opCh := make(chan int, numOps)
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed + int64(w)))

			for range opCh {
				opStart := time.Now()
				n, err := op(r)
				opDuration := time.Since(opStart)

				if err != nil {
					errCount.Add(1)
					continue
				}
				totalResults.Add(int64(n))

				mu.Lock()
				measured++
				totalDur += opDuration
				minDuration = min(minDuration, opDuration)
				maxDuration = max(maxDuration, opDuration)
				mu.Unlock()
			}
		}(w)
	}

	for i := 0; i < numOps; i++ {
		opCh <- i
	}
	close(opCh)

	wg.Wait()
	totalDuration := time.Since(startTime)

	result := BenchmarkResult{
		Operation:     name,
		TotalOps:      numOps,
		TotalDuration: totalDuration,
		TotalResults:  totalResults.Load(),
		Errors:        errCount.Load(),
		MaxDuration:   maxDuration,
	}
	if measured > 0 {
		result.AvgDuration = totalDur / time.Duration(measured)
		result.MinDuration = minDuration
		result.AvgResults = float64(result.TotalResults) / float64(measured)
	}
	if secs := totalDuration.Seconds(); secs > 0 {
		result.OpsPerSec = float64(numOps) / secs
	}
	return result
}
