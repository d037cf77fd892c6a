package sampler

import (
	"github.com/pkg/errors"

	"github.com/CraigKelly/mcrun/rand"
)

// countTrans is the simplest possible transition: its value is one more
// than the previous transition's value.
type countTrans struct {
	Index int
	Value int
}

// countSampler is a deterministic test sampler that also records every hook
// invocation the driver makes.
type countSampler struct {
	steps     int
	setups    int
	setupNs   []int
	finalizes int
}

func (s *countSampler) Step(gen *rand.Generator, m Model, n int, iteration int, prev Transition, opts *Options) (Transition, error) {
	s.steps++
	v := 0
	if prev != nil {
		v = prev.(countTrans).Value
	}
	return countTrans{Index: iteration, Value: v + 1}, nil
}

func (s *countSampler) Setup(gen *rand.Generator, m Model, n int, opts *Options) error {
	s.setups++
	s.setupNs = append(s.setupNs, n)
	return nil
}

func (s *countSampler) Finalize(gen *rand.Generator, m Model, n int, ts Transitions, opts *Options) error {
	s.finalizes++
	return nil
}

func (s *countSampler) Clone() Sampler {
	return &countSampler{}
}

// rngTrans/rngSampler exercise generator threading: each transition is just
// the next draw from the chain's generator.
type rngTrans struct {
	Draw int64
}

type rngSampler struct{}

func (s *rngSampler) Step(gen *rand.Generator, m Model, n int, iteration int, prev Transition, opts *Options) (Transition, error) {
	return rngTrans{Draw: gen.Int63()}, nil
}

func (s *rngSampler) Clone() Sampler {
	return &rngSampler{}
}

// failSampler fails at a fixed iteration.
type failSampler struct {
	at    int
	steps int
}

func (s *failSampler) Step(gen *rand.Generator, m Model, n int, iteration int, prev Transition, opts *Options) (Transition, error) {
	s.steps++
	if iteration >= s.at {
		return nil, errors.Errorf("Deliberate failure at iteration %d", iteration)
	}
	return countTrans{Index: iteration, Value: iteration}, nil
}

func (s *failSampler) Clone() Sampler {
	return &failSampler{at: s.at}
}

// nilSampler returns the reserved nil transition, which the driver must
// reject.
type nilSampler struct{}

func (s *nilSampler) Step(gen *rand.Generator, m Model, n int, iteration int, prev Transition, opts *Options) (Transition, error) {
	return nil, nil
}

// sumChain is a custom chain representation produced by bundleSampler.
type sumChain struct {
	Sum   int
	Count int
}

// bundleSampler supports the "sum" chain representation.
type bundleSampler struct {
	countSampler
}

func (s *bundleSampler) Bundle(gen *rand.Generator, m Model, n int, ts Transitions, opts *Options) (Chain, error) {
	if opts.ChainRep == "" {
		return ts, nil
	}
	if opts.ChainRep != "sum" {
		return nil, errors.Errorf("Unknown chain representation %q", opts.ChainRep)
	}

	total := 0
	for _, t := range ts {
		total += t.(countTrans).Value
	}
	return sumChain{Sum: total, Count: len(ts)}, nil
}

// reportLog is the callback state handed out by progressSampler.
type reportLog struct {
	iterations []int
}

// progressSampler implements its own progress reporting.
type progressSampler struct {
	countSampler
	inits int
	log   *reportLog
}

func (s *progressSampler) ProgressInit(gen *rand.Generator, m Model, n int, opts *Options) (interface{}, error) {
	s.inits++
	s.log = &reportLog{}
	return s.log, nil
}

func (s *progressSampler) ProgressReport(gen *rand.Generator, m Model, n int, iteration int, t Transition, state interface{}, opts *Options) error {
	state.(*reportLog).iterations = append(state.(*reportLog).iterations, iteration)
	return nil
}

// mutModel counts how often it was stepped, so tests can verify per-chain
// model cloning keeps the caller's template untouched.
type mutModel struct {
	stepsSeen int
}

func (m *mutModel) CloneModel() Model {
	return &mutModel{}
}

// modelSampler bumps the model on every step.
type modelSampler struct {
	countSampler
}

func (s *modelSampler) Step(gen *rand.Generator, m Model, n int, iteration int, prev Transition, opts *Options) (Transition, error) {
	m.(*mutModel).stepsSeen++
	return s.countSampler.Step(gen, m, n, iteration, prev, opts)
}

func (s *modelSampler) Clone() Sampler {
	return &modelSampler{}
}

// stackChain is a chain representation that supports stacking.
type stackChain struct {
	Rows [][]int
}

func (c stackChain) Stack(others []Chain) (Chain, error) {
	out := stackChain{Rows: append([][]int{}, c.Rows...)}
	for _, o := range others {
		sc, ok := o.(stackChain)
		if !ok {
			return nil, errors.Errorf("Can not stack %T onto stackChain", o)
		}
		out.Rows = append(out.Rows, sc.Rows...)
	}
	return out, nil
}
