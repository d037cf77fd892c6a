// Package sampler is a generic driver for iterative MCMC sampling. It
// defines the stepping contract a sampler/model pair must satisfy and
// executes that contract for single-chain, iterator-based, and
// multi-chain-parallel sampling. No sampling algorithm lives here: concrete
// samplers, models, and transitions are collaborators supplied by the
// caller.
package sampler

import (
	"github.com/CraigKelly/mcrun/rand"
)

// Model is the opaque target of inference. The driver passes it through
// unexamined: whatever a concrete Sampler needs from it is between the two
// of them.
type Model interface{}

// Transition is the opaque result of one sampling step. A nil Transition is
// reserved as the "no transition yet" sentinel handed to the very first
// step, so Step implementations must always return a non-nil value.
type Transition interface{}

// Chain is the opaque caller-facing output of a completed run. The default
// chain representation is the raw Transitions container.
type Chain interface{}

// Transitions is the ordered per-iteration transition container. Slot i-1
// holds the transition produced at iteration i; slots are written exactly
// once, in increasing iteration order.
type Transitions []Transition

// A Sampler holds algorithm state and produces transitions. Step is the
// only mandatory part of the contract: everything else the driver calls is
// an optional upgrade interface with a no-op default.
//
// Step maps (generator, model, iteration, previous transition) to the next
// transition. n is the total requested sample count, or 0 when stepping is
// unbounded (see Steps). prev is nil on the first call of a chain. Step may
// mutate the sampler and model in place; that is how Markov state is carried
// between iterations.
type Sampler interface {
	Step(gen *rand.Generator, m Model, n int, iteration int, prev Transition, opts *Options) (Transition, error)
}

// Setupper is implemented by samplers that need to prepare internal state
// (warm-up, initial step-size search, ...) before the first step. n is 0
// when the upcoming run is unbounded.
type Setupper interface {
	Setup(gen *rand.Generator, m Model, n int, opts *Options) error
}

// Finalizer is implemented by samplers that post-process the completed
// transition container, sampler, or model before bundling. Mutation-only.
type Finalizer interface {
	Finalize(gen *rand.Generator, m Model, n int, ts Transitions, opts *Options) error
}

// Bundler is implemented by samplers that transform the transition
// container into a custom chain representation. Bundle must not mutate ts.
// Without a Bundler the chain is the Transitions container itself.
type Bundler interface {
	Bundle(gen *rand.Generator, m Model, n int, ts Transitions, opts *Options) (Chain, error)
}

// Cloner is implemented by samplers that can deep-copy themselves.
// RunParallel requires it: each chain mutates a private copy so chains never
// alias sampler state.
type Cloner interface {
	Clone() Sampler
}

// ModelCloner is implemented by models that carry mutable state. RunParallel
// clones such models per chain; models without it are treated as read-only
// and shared across workers.
type ModelCloner interface {
	CloneModel() Model
}

// ProgressReporter is implemented by samplers that want algorithm-specific
// progress reporting (the "default" progress style). ProgressInit runs once
// before iteration 1 and returns reporter-private state; ProgressReport runs
// exactly once per completed iteration, in order. Reports must observe only:
// they never alter model, sampler, or transition.
type ProgressReporter interface {
	ProgressInit(gen *rand.Generator, m Model, n int, opts *Options) (interface{}, error)
	ProgressReport(gen *rand.Generator, m Model, n int, iteration int, t Transition, state interface{}, opts *Options) error
}

// Stackable is implemented by chain representations that can be combined
// with others along a new chain dimension. The receiving chain decides the
// layout; the driver mandates none.
type Stackable interface {
	Stack(others []Chain) (Chain, error)
}
