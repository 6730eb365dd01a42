package conform

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

var errPatternFlags = errors.New("conform: invalid pattern flags")

// compiledPattern is a pattern plus the flags regexp2 has no option for.
type compiledPattern struct {
	re     *regexp2.Regexp
	sticky bool
}

// compilePattern compiles source with ECMAScript semantics. Flags follow the
// JavaScript RegExp flag letters; g and d do not affect a single test. Unknown
// or repeated flags are an error.
func compilePattern(source, flags string, timeout time.Duration) (*compiledPattern, error) {
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	cp := &compiledPattern{}
	seen := make(map[rune]bool, len(flags))
	for _, f := range flags {
		if seen[f] {
			return nil, fmt.Errorf("%w: duplicate %q", errPatternFlags, f)
		}
		seen[f] = true
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u':
			opts |= regexp2.Unicode
		case 'y':
			cp.sticky = true
		case 'g', 'd':
		default:
			return nil, fmt.Errorf("%w: unknown %q", errPatternFlags, f)
		}
	}
	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = timeout
	cp.re = re
	return cp, nil
}

// test reports whether s matches. A sticky pattern must match at offset 0;
// the leftmost match starts there whenever any match does.
func (cp *compiledPattern) test(s string) bool {
	m, err := cp.re.FindStringMatch(s)
	if err != nil || m == nil {
		return false
	}
	if cp.sticky {
		return m.Index == 0
	}
	return true
}

// matchPattern evaluates the pattern constraint. Malformed sources or flags
// and timeouts all reduce to not satisfied.
func matchPattern(s, source, flags string, timeout time.Duration) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	cp, err := compilePattern(source, flags, timeout)
	if err != nil {
		return false
	}
	return cp.test(s)
}
