package sampler

import (
	"github.com/pkg/errors"

	"github.com/CraigKelly/mcrun/rand"
)

// StepIter is an infinite pull iterator over sampling steps. Each Next
// computes exactly one further step, threading the previous transition as
// state. Termination is entirely caller-driven; there is no bound checking
// and no progress reporting in this mode. A StepIter is not restartable:
// obtain a fresh one from Steps to start over.
//
// Usage follows the usual Next/Value shape:
//
//	it, err := sampler.Steps(gen, m, s, nil)
//	for i := 0; i < want && it.Next(); i++ {
//	    use(it.Value())
//	}
//	if err := it.Err(); err != nil { ... }
type StepIter struct {
	gen  *rand.Generator
	m    Model
	s    Sampler
	opts *Options

	iteration int
	prev      Transition
	curr      Transition
	err       error
}

// Steps returns a new step iterator for the given model and sampler. Setup
// (if implemented) runs once here with n=0, signaling an unbounded run; the
// same n=0 is passed to every Step call. gen may be nil (see Run).
func Steps(gen *rand.Generator, m Model, s Sampler, opts *Options) (*StepIter, error) {
	opts, err := opts.check()
	if err != nil {
		return nil, err
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
		if err := su.Setup(gen, m, 0, opts); err != nil {
			return nil, errors.Wrap(err, "Sampler setup failed")
		}
	}

	return &StepIter{
		gen:  gen,
		m:    m,
		s:    s,
		opts: opts,
	}, nil
}

// Next advances the iterator by one step and returns true if a transition is
// available via Value. It returns false once a step fails; check Err.
func (it *StepIter) Next() bool {
	if it.err != nil {
		return false
	}

	it.iteration++
	t, err := step(it.gen, it.m, it.s, 0, it.iteration, it.prev, it.opts)
	if err != nil {
		it.err = err
		return false
	}

	it.prev = t
	it.curr = t
	return true
}

// Value returns the transition produced by the last successful Next.
func (it *StepIter) Value() Transition {
	return it.curr
}

// Err returns the first step failure, if any.
func (it *StepIter) Err() error {
	return it.err
}
