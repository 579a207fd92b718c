// Package detect implements the fake-data detection engine: a set of
// independent line-oriented rules, the exemption classifier that gates
// them, and the per-file scanner that drives both.
package detect

import (
	"github.com/unohee/ci-templates/pkg/config"
	"github.com/unohee/ci-templates/pkg/models"
)

// LineContext is one candidate site handed to each rule: the line itself,
// its comment-stripped form, and a small window of neighbors for checks
// that need to see the enclosing block.
type LineContext struct {
	File   string
	Line   int
	Text   string   // raw source line
	Code   string   // Text with any trailing # comment removed
	Before []string // up to contextWindow preceding lines, nearest last
	After  []string // up to contextWindow following lines, nearest first
}

// Rule is a single pattern check. Rules are pure: they hold no scan state
// and may run in any order. Findings from different rules on the same line
// are all retained.
type Rule interface {
	ID() string
	Check(ctx LineContext) []models.Finding
}

// DefaultRules returns the full rule set wired to the resolved config.
func DefaultRules(cfg config.Config) []Rule {
	return []Rule{
		SyntheticFeatureRule{cfg: cfg},
		ExceptionHidingRule{},
		MagicNumberRule{cfg: cfg},
		FakeSuccessRule{},
		RandomSamplingRule{},
		TodoPassRule{},
	}
}
