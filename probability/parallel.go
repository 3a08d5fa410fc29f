package probability

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// minPathsPerWorker keeps tiny requests from being split across goroutines.
const minPathsPerWorker = 4096

// ParallelSampler is the accelerated backend: it splits the draws across
// worker goroutines, each with its own source seeded from the sampler seed,
// the call number and the worker index. For a fixed seed and worker count the
// sequence of results is reproducible. Distinct calls draw distinct streams,
// and Sample may be called concurrently.
type ParallelSampler struct {
	workers int
	seed    uint64
	calls   uint64
}

// NewParallelSampler returns a sampler with the given worker count and seed.
// workers <= 0 uses the logical CPU count; seed 0 seeds from the clock.
func NewParallelSampler(workers int, seed uint64) *ParallelSampler {
	if workers <= 0 {
		workers = logicalCPUs()
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &ParallelSampler{workers: workers, seed: seed}
}

func (s *ParallelSampler) Name() string { return "parallel" }

func (s *ParallelSampler) Workers() int { return s.workers }

func (s *ParallelSampler) Sample(p Params, n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrInvalidPathCount
	}

	call := atomic.AddUint64(&s.calls, 1)
	numWorkers := s.workers
	if limit := (n + minPathsPerWorker - 1) / minPathsPerWorker; numWorkers > limit {
		numWorkers = limit
	}
	perWorker := (n + numWorkers - 1) / numWorkers

	payoffs := make([]float64, n)
	t := newTerminal(p)

	var g errgroup.Group
	for w := 0; w < numWorkers; w++ {
		start := w * perWorker
		if start >= n {
			break
		}
		end := start + perWorker
		if end > n {
			end = n
		}
		rng := rand.New(rand.NewSource(streamSeed(s.seed, call, uint64(w))))
		chunk := payoffs[start:end]
		g.Go(func() error {
			return t.fill(chunk, rng)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	floats.Scale(p.Discount(), payoffs)
	return payoffs, nil
}

// streamSeed mixes the three inputs with splitmix64 so neighbouring workers
// and calls get unrelated streams.
func streamSeed(seed, call, worker uint64) uint64 {
	z := seed + call*0x9e3779b97f4a7c15 + worker*0xbf58476d1ce4e5b9
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func logicalCPUs() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
