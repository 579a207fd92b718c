package detect

import (
	"path/filepath"
	"regexp"
	"strings"
)

// -- Exemption Contexts --
//
// Legitimate, intentional uses of randomness (reproducible experiments,
// dataset partitioning) must never be conflated with fabricating feature
// values. Exemption is decided once per site and gates every rule.

var (
	// Explicit deterministic seeding: random.seed(42), np.random.seed(0),
	// or an RNG invocation pinning a literal random_state.
	seedCallRe    = regexp.MustCompile(`\bseed\s*\(`)
	randomStateRe = regexp.MustCompile(`\brandom_state\s*=\s*\d+`)

	// Data shuffling: random.shuffle(x), np.random.shuffle(x), df.sample(...).shuffle-ish
	// calls used for partitioning, not for value fabrication.
	shuffleCallRe = regexp.MustCompile(`\bshuffle\s*\(`)
)

// IsTestPath reports whether the file follows a test or mock naming
// convention. Such files fabricate data on purpose.
func IsTestPath(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "test_") || strings.HasPrefix(base, "mock_") {
		return true
	}
	if strings.HasSuffix(base, "_test.py") {
		return true
	}
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == "tests" || seg == "test" {
			return true
		}
	}
	return false
}

// IsExemptLine reports whether a single line is an allowed use of
// randomness regardless of surrounding feature names.
func IsExemptLine(line string) bool {
	return seedCallRe.MatchString(line) ||
		randomStateRe.MatchString(line) ||
		shuffleCallRe.MatchString(line)
}

// Exempt is the single gate evaluated ahead of the rule set.
func Exempt(path, line string) bool {
	return IsTestPath(path) || IsExemptLine(line)
}
