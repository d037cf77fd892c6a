package sampler

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/CraigKelly/mcrun/rand"
)

// RunParallel executes numChains independent chains of n steps each across a
// fixed worker pool and returns their outputs in chain-index order.
//
// Reproducibility is scheduling-independent: all per-chain seeds are drawn
// sequentially from gen before any concurrent work starts, and chain k is
// computed from seed k plus per-chain deep copies of the sampler (via
// Cloner, which is required) and model (via ModelCloner, when implemented).
// The caller's gen, model, and sampler are never mutated beyond the seed
// draws, and no worker ever aliases another worker's state. Which worker
// runs a chain, and in what order workers finish, cannot affect the output.
//
// Per-chain progress reporting is disabled. If any chain fails, the first
// failure (by chain index) is returned after the pool drains and no partial
// results are fabricated.
func RunParallel(gen *rand.Generator, m Model, s Sampler, n int, numChains int, opts *Options) ([]Chain, error) {
	opts, err := opts.check()
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, errors.Errorf("Sample count must be at least 1 (got %d)", n)
	}
	if numChains < 1 {
		return nil, errors.Errorf("Chain count must be at least 1 (got %d)", numChains)
	}
	if s == nil {
		return nil, errors.Errorf("A sampler is required")
	}

	cloner, ok := s.(Cloner)
	if !ok {
		return nil, errors.Errorf("Sampler %T can not run parallel chains: Clone is not implemented", s)
	}

	if gen == nil {
		gen, err = defaultGenerator()
		if err != nil {
			return nil, err
		}
	}

	// The sequential seed draw is the single source of nondeterminism.
	seeds := make([]int64, numChains)
	for i := range seeds {
		seeds[i] = gen.Int63()
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > numChains {
		workers = numChains
	}

	// One generator clone per worker, created before any goroutine starts.
	gens := make([]*rand.Generator, workers)
	for w := range gens {
		gens[w] = gen.Clone()
	}

	chainOpts := *opts
	chainOpts.Progress = false

	// Each worker writes only its own chains' slots, so no locking is
	// needed beyond the WaitGroup barrier.
	chains := make([]Chain, numChains)
	chainErrs := make([]error, numChains)

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(wgen *rand.Generator) {
			defer wg.Done()
			for idx := range jobs {
				wgen.Seed(seeds[idx])

				wm := m
				if mc, ok := m.(ModelCloner); ok {
					wm = mc.CloneModel()
				}
				ws := cloner.Clone()

				chains[idx], chainErrs[idx] = Run(wgen, wm, ws, n, &chainOpts)
			}
		}(gens[w])
	}

	for i := 0; i < numChains; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range chainErrs {
		if err != nil {
			return nil, errors.Wrapf(err, "Chain %d failed", i)
		}
	}

	return chains, nil
}
