package cmd

import (
	"math"

	"github.com/pkg/errors"

	"github.com/CraigKelly/mcrun/rand"
	"github.com/CraigKelly/mcrun/sampler"
)

// The demo sampler below is a collaborator for exercising the driver from
// the command line. It is deliberately tiny and lives here, NOT in the
// sampler package: the library core carries no sampling algorithm.

// normalModel is a univariate normal target density.
type normalModel struct {
	Mean   float64
	StdDev float64
}

// CloneModel lets the parallel driver hand each chain a private copy.
func (m *normalModel) CloneModel() sampler.Model {
	cp := *m
	return &cp
}

// logDensity is the unnormalized log density at x.
func (m *normalModel) logDensity(x float64) float64 {
	z := (x - m.Mean) / m.StdDev
	return -0.5 * z * z
}

// walkTrans is the demo transition: current position plus whether the
// proposal that produced it was accepted.
type walkTrans struct {
	Iteration int
	X         float64
	Accepted  bool
}

// walkSampler is a symmetric random-walk sampler over a normalModel.
type walkSampler struct {
	stepSize float64
}

func newWalkSampler(stepSize float64) *walkSampler {
	return &walkSampler{stepSize: stepSize}
}

// Step proposes a uniform perturbation of the previous position and accepts
// or rejects it against the target density.
func (s *walkSampler) Step(gen *rand.Generator, m sampler.Model, n int, iteration int, prev sampler.Transition, opts *sampler.Options) (sampler.Transition, error) {
	target, ok := m.(*normalModel)
	if !ok {
		return nil, errors.Errorf("walkSampler requires a normalModel, got %T", m)
	}

	x := target.Mean
	if prev != nil {
		x = prev.(walkTrans).X
	}

	prop := x + (gen.Float64()*2.0-1.0)*s.stepSize
	logRatio := target.logDensity(prop) - target.logDensity(x)

	if logRatio >= 0 || gen.Float64() < math.Exp(logRatio) {
		return walkTrans{Iteration: iteration, X: prop, Accepted: true}, nil
	}
	return walkTrans{Iteration: iteration, X: x, Accepted: false}, nil
}

// Clone satisfies the parallel driver's deep-copy requirement.
func (s *walkSampler) Clone() sampler.Sampler {
	cp := *s
	return &cp
}
