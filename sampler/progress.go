package sampler

import (
	"fmt"
	"io"
	"time"

	"github.com/CraigKelly/mcrun/buffer"
	"github.com/CraigKelly/mcrun/rand"
)

// rateWindow is how many completion timestamps the plain display keeps for
// its rolling samples/sec estimate.
const rateWindow = 64

// progress is the driver-internal face of the callback subsystem. Exactly
// one report per completed iteration, in iteration order.
type progress interface {
	report(gen *rand.Generator, m Model, s Sampler, n int, iteration int, t Transition) error
}

// nopProgress is the disabled variant.
type nopProgress struct{}

func (nopProgress) report(gen *rand.Generator, m Model, s Sampler, n int, iteration int, t Transition) error {
	return nil
}

// plainProgress is a minimal counter-style display with a rolling
// throughput estimate over the most recent completions.
type plainProgress struct {
	out    io.Writer
	window *buffer.CircularInt64
	now    func() time.Time
}

func newPlainProgress(out io.Writer) *plainProgress {
	return &plainProgress{
		out:    out,
		window: buffer.NewCircularInt64(rateWindow),
		now:    time.Now,
	}
}

func (p *plainProgress) report(gen *rand.Generator, m Model, s Sampler, n int, iteration int, t Transition) error {
	p.window.Add(p.now().UnixNano())

	if p.window.Count > 1 {
		elapsed := time.Duration(p.window.Newest() - p.window.Oldest())
		if elapsed > 0 {
			rate := float64(p.window.Count-1) / elapsed.Seconds()
			fmt.Fprintf(p.out, "sampled %d/%d (%.1f samples/sec)\n", iteration, n, rate)
			return nil
		}
	}

	fmt.Fprintf(p.out, "sampled %d/%d\n", iteration, n)
	return nil
}

// samplerProgress routes reports to a ProgressReporter's own hooks,
// threading the state value its init returned.
type samplerProgress struct {
	rep   ProgressReporter
	opts  *Options
	state interface{}
}

func (p *samplerProgress) report(gen *rand.Generator, m Model, s Sampler, n int, iteration int, t Transition) error {
	return p.rep.ProgressReport(gen, m, n, iteration, t, p.state, p.opts)
}

// newProgress builds the progress implementation for one chain execution.
// opts must already be checked. The default style uses the sampler's own
// reporting when it implements ProgressReporter and falls back to the plain
// display otherwise.
func newProgress(gen *rand.Generator, m Model, s Sampler, n int, opts *Options) (progress, error) {
	if !opts.Progress || opts.ProgressStyle == ProgressDisabled {
		return nopProgress{}, nil
	}

	if opts.ProgressStyle == ProgressDefault {
		if rep, ok := s.(ProgressReporter); ok {
			state, err := rep.ProgressInit(gen, m, n, opts)
			if err != nil {
				return nil, err
			}
			return &samplerProgress{rep: rep, opts: opts, state: state}, nil
		}
	}

	return newPlainProgress(opts.ProgressOut), nil
}
