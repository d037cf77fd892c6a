package rand

import (
	"github.com/pkg/errors"
	"github.com/seehuhn/mt19937"
)

// A Generator is a reseedable Mersenne twister PRNG. Unlike math/rand there
// is no global instance: callers create, seed, and clone generators
// explicitly, which keeps parallel chain reproducibility simple to reason
// about.
type Generator struct {
	r         *mt19937.MT19937
	seed      int64
	seedSlice []uint64
}

// NewGenerator returns a new PRNG based on the given seed
func NewGenerator(seed int64) (*Generator, error) {
	g := &Generator{
		r: mt19937.New(),
	}
	g.Seed(seed)
	return g, nil
}

// NewGeneratorSlice returns a new PRNG seeded from a slice of values (the
// canonical mt19937 seeding method). At least one value is required.
func NewGeneratorSlice(seed []uint64) (*Generator, error) {
	if len(seed) < 1 {
		return nil, errors.Errorf("At least one seed value is required")
	}

	g := &Generator{
		r: mt19937.New(),
	}
	g.SeedSlice(seed)
	return g, nil
}

// Seed resets the generator to the deterministic state derived from seed.
// May be called at any time.
func (g *Generator) Seed(seed int64) {
	g.seed = seed
	g.seedSlice = nil
	g.r.Seed(seed)
}

// SeedSlice resets the generator from a slice of seed values.
func (g *Generator) SeedSlice(seed []uint64) {
	g.seedSlice = make([]uint64, len(seed))
	copy(g.seedSlice, seed)
	g.seed = 0
	g.r.SeedFromSlice(g.seedSlice)
}

// Clone returns an independent Generator sharing no state with g. The clone
// is re-derived from g's seed material, not from its current stream
// position, so callers that need a particular stream must Seed the clone
// before use (the parallel driver always does).
func (g *Generator) Clone() *Generator {
	cp := &Generator{
		r: mt19937.New(),
	}
	if g.seedSlice != nil {
		cp.SeedSlice(g.seedSlice)
	} else {
		cp.Seed(g.seed)
	}
	return cp
}

// Int63 provides the same interface as Go's math/rand.
func (g *Generator) Int63() int64 {
	return g.r.Int63()
}

// Uint64 returns the next raw 64-bit value from the twister.
func (g *Generator) Uint64() uint64 {
	return g.r.Uint64()
}

// Int63n is a copy of the current Go code
func (g *Generator) Int63n(n int64) int64 {
	if n <= 0 {
		panic("invalid argument to Int63n")
	}

	if n&(n-1) == 0 { // n is power of two, can mask
		return g.Int63() & (n - 1)
	}

	max := int64((1 << 63) - 1 - (1<<63)%uint64(n))
	v := g.Int63()
	for v > max {
		v = g.Int63()
	}

	return v % n
}

// Int31 is just a copy of the golang impl
func (g *Generator) Int31() int32 {
	return int32(g.Int63() >> 32)
}

// Int31n is just a copy of the golang impL
func (g *Generator) Int31n(n int32) int32 {
	if n <= 0 {
		panic("invalid argument to Int31n")
	}

	if n&(n-1) == 0 { // n is power of two, can mask
		return g.Int31() & (n - 1)
	}

	max := int32((1 << 31) - 1 - (1<<31)%uint32(n))
	v := g.Int31()

	for v > max {
		v = g.Int31()
	}

	return v % n
}

// Float64 uses the commented, simpler implmentation since we don't have the
// same support requirements for users
func (g *Generator) Float64() float64 {
	// See the Go lang comments for Rand Float64 implementation for details
	return float64(g.Int63n(1<<53)) / (1 << 53)
}
