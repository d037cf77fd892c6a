package sampler

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ProgressStyle selects the progress reporting implementation.
type ProgressStyle string

// Recognized progress styles. Anything else is a configuration error.
const (
	ProgressDefault  ProgressStyle = "default"
	ProgressDisabled ProgressStyle = "disabled"
	ProgressPlain    ProgressStyle = "plain"
)

// Options configures a sampling run. The zero value of ProgressStyle means
// ProgressDefault; a nil *Options means DefaultOptions(). Extra is passed
// through unexamined to every sampler hook for algorithm-specific settings.
type Options struct {
	Progress      bool                   // enable per-iteration reporting
	ProgressStyle ProgressStyle          // disabled, plain, or default
	ProgressOut   io.Writer              // plain display target (default os.Stderr)
	ChainRep      string                 // requested chain representation ("" = raw Transitions)
	Workers       int                    // parallel pool size (0 = available CPUs)
	Extra         map[string]interface{} // algorithm-specific passthrough
}

// DefaultOptions returns the options used when a caller passes nil:
// reporting on, default style, raw transition container output.
func DefaultOptions() *Options {
	return &Options{
		Progress:      true,
		ProgressStyle: ProgressDefault,
	}
}

// check validates o and fills defaults, returning the options the run should
// actually use. It never mutates the caller's struct.
func (o *Options) check() (*Options, error) {
	if o == nil {
		o = DefaultOptions()
	}

	cp := *o
	if cp.ProgressStyle == "" {
		cp.ProgressStyle = ProgressDefault
	}

	switch cp.ProgressStyle {
	case ProgressDefault, ProgressDisabled, ProgressPlain:
		// recognized
	default:
		return nil, errors.Errorf("Unrecognized progress style %q", cp.ProgressStyle)
	}

	if cp.ProgressOut == nil {
		cp.ProgressOut = os.Stderr
	}
	if cp.Workers < 0 {
		return nil, errors.Errorf("Worker count may not be negative (got %d)", cp.Workers)
	}

	return &cp, nil
}
