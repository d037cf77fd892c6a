package sampler

import (
	"time"

	"github.com/pkg/errors"

	"github.com/CraigKelly/mcrun/rand"
)

// defaultGenerator is the documented fallback when a caller passes a nil
// generator: a fresh mt19937 seeded from the wall clock. There is no shared
// process-wide generator; callers wanting reproducible output must pass
// their own.
func defaultGenerator() (*rand.Generator, error) {
	return rand.NewGenerator(time.Now().UnixNano())
}

// Run executes a single chain of n sampling steps and returns the bundled
// chain. Lifecycle: Setup (if implemented), first step against the nil
// previous-transition sentinel, container allocation, step/store/report for
// iterations 2..n, Finalize (if implemented), then bundling. gen may be nil
// (see defaultGenerator). n must be at least 1.
func Run(gen *rand.Generator, m Model, s Sampler, n int, opts *Options) (Chain, error) {
	opts, err := opts.check()
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, errors.Errorf("Sample count must be at least 1 (got %d)", n)
	}
	if s == nil {
		return nil, errors.Errorf("A sampler is required")
	}
	if gen == nil {
		gen, err = defaultGenerator()
		if err != nil {
			return nil, err
		}
	}

	if su, ok := s.(Setupper); ok {
		if err := su.Setup(gen, m, n, opts); err != nil {
			return nil, errors.Wrap(err, "Sampler setup failed")
		}
	}

	prog, err := newProgress(gen, m, s, n, opts)
	if err != nil {
		return nil, errors.Wrap(err, "Progress init failed")
	}

	// First step sees the nil sentinel; its result sizes the container.
	first, err := step(gen, m, s, n, 1, nil, opts)
	if err != nil {
		return nil, err
	}

	ts := make(Transitions, n)
	ts[0] = first
	if err := prog.report(gen, m, s, n, 1, first); err != nil {
		return nil, errors.Wrap(err, "Progress report failed")
	}

	prev := first
	for i := 2; i <= n; i++ {
		t, err := step(gen, m, s, n, i, prev, opts)
		if err != nil {
			return nil, err
		}
		ts[i-1] = t
		if err := prog.report(gen, m, s, n, i, t); err != nil {
			return nil, errors.Wrap(err, "Progress report failed")
		}
		prev = t
	}

	if f, ok := s.(Finalizer); ok {
		if err := f.Finalize(gen, m, n, ts, opts); err != nil {
			return nil, errors.Wrap(err, "Sampler finalize failed")
		}
	}

	return bundle(gen, m, s, n, ts, opts)
}

// step invokes the mandatory contract and enforces the non-nil transition
// rule that keeps the nil sentinel unambiguous.
func step(gen *rand.Generator, m Model, s Sampler, n int, iteration int, prev Transition, opts *Options) (Transition, error) {
	t, err := s.Step(gen, m, n, iteration, prev, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Step %d failed", iteration)
	}
	if t == nil {
		return nil, errors.Errorf("Sampler %T returned a nil transition at step %d: stepping cannot be defaulted", s, iteration)
	}
	return t, nil
}

// bundle runs the terminal transform. Samplers without a Bundler get the
// identity: the transition container is the chain. Requesting a chain
// representation from such a sampler is an error, not a silent fallback.
func bundle(gen *rand.Generator, m Model, s Sampler, n int, ts Transitions, opts *Options) (Chain, error) {
	if b, ok := s.(Bundler); ok {
		c, err := b.Bundle(gen, m, n, ts, opts)
		if err != nil {
			return nil, errors.Wrap(err, "Bundling failed")
		}
		return c, nil
	}

	if opts.ChainRep != "" {
		return nil, errors.Errorf("Sampler %T does not implement chain representation %q", s, opts.ChainRep)
	}

	return ts, nil
}

// StackChains combines per-chain outputs along a new chain dimension for
// representations that support it. The default RunParallel output is already
// the ordered slice of chains; stacking is strictly opt-in via Stackable.
func StackChains(chains []Chain) (Chain, error) {
	if len(chains) < 1 {
		return nil, errors.Errorf("Can not stack 0 chains")
	}

	st, ok := chains[0].(Stackable)
	if !ok {
		return nil, errors.Errorf("Chain representation %T does not support stacking", chains[0])
	}

	return st.Stack(chains[1:])
}
