package conform

import "time"

const (
	// DefaultMaxDepth bounds schema nesting followed by a single call.
	DefaultMaxDepth = 64
	// DefaultPatternTimeout bounds a single pattern match.
	DefaultPatternTimeout = 100 * time.Millisecond
)

// Options tunes evaluation limits. Zero fields fall back to the defaults above.
// Operations accept Options variadically; the last one wins.
type Options struct {
	// MaxDepth caps recursion into nested schemas. Exceeding it fails closed:
	// validation reports depth_exceeded and defaulting leaves the value as is.
	MaxDepth int
	// PatternTimeout caps the time spent on one pattern match. A match that
	// times out counts as not satisfied.
	PatternTimeout time.Duration
}

func resolveOptions(opts []Options) Options {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = DefaultMaxDepth
	}
	if opt.PatternTimeout <= 0 {
		opt.PatternTimeout = DefaultPatternTimeout
	}
	return opt
}
