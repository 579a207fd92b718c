package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/unohee/ci-templates/pkg/config"
	"github.com/unohee/ci-templates/pkg/models"
)

// -- Pattern Tables --

var (
	// Random-sampling calls that fabricate values: uniform, normal/Gaussian,
	// and the generic rand family from numpy and the stdlib random module.
	randomCallRe = regexp.MustCompile(`(?i)\b(?:np|numpy)\.random\.(?:randn?|random|uniform|normal)\s*\(|\brandom\.(?:random|uniform)\s*\(|\brand\s*\(`)

	// Sampling and faker calls that are suspicious but not outright
	// fabrication of a measured signal.
	samplingCallRe = regexp.MustCompile(`(?i)\bnp\.random\.choice\s*\(|\bfaker\.faker\s*\(`)

	// Simple assignment: identifier-or-subscript target, single "=".
	assignRe = regexp.MustCompile(`^\s*([A-Za-z_][\w.\[\]'"\s,]*?)\s*=(?:[^=]|$)`)

	// Numeric literal used as a coefficient: "= 0.6 * x" or "x * 1.5" / "x + 3".
	leadCoefRe  = regexp.MustCompile(`=\s*-?\d+(?:\.\d+)?\s*[*+]`)
	trailCoefRe = regexp.MustCompile(`[*+]\s*-?\d+(?:\.\d+)?`)

	// Broad exception handler header, optionally typed and aliased.
	exceptRe = regexp.MustCompile(`\bexcept\s*(?:([A-Za-z_][\w.]*)(?:\s+as\s+\w+)?)?\s*:`)

	// Success phrases inside a print or log call (Korean and English).
	successCallRe = regexp.MustCompile(`(?i)\b(?:print|logging\.\w+|logger\.\w+|log\.\w+)\s*\(\s*f?["'][^"']*(?:완료|success|done)`)

	passStmtRe = regexp.MustCompile(`\bpass\b`)
)

// -- Synthetic Feature Generation --

// SyntheticFeatureRule flags a random-sampling call assigned to a variable
// whose name matches the configured feature patterns. Random data fed to a
// model as measured signal only fails after the seed or distribution shifts
// in production.
type SyntheticFeatureRule struct {
	cfg config.Config
}

func (SyntheticFeatureRule) ID() string { return models.RuleSyntheticFeature }

func (r SyntheticFeatureRule) Check(ctx LineContext) []models.Finding {
	target, rhs, ok := splitAssignment(ctx.Code)
	if !ok || !r.cfg.MatchesFeature(target) {
		return nil
	}
	call := randomCallRe.FindString(rhs)
	if call == "" {
		return nil
	}
	return []models.Finding{{
		RuleID:     models.RuleSyntheticFeature,
		Severity:   models.SeverityCritical,
		File:       ctx.File,
		Line:       ctx.Line,
		Matched:    strings.TrimSpace(strings.TrimRight(call, "( \t")),
		Message:    fmt.Sprintf("random data assigned to feature %q", target),
		Suggestion: "use real API data or a validated data source, or drop the feature",
	}}
}

// -- Exception Hiding --

// ExceptionHidingRule flags a broad handler whose body is exactly pass.
// Silently swallowed failures let upstream data-quality problems reach
// training undetected.
type ExceptionHidingRule struct{}

func (ExceptionHidingRule) ID() string { return models.RuleExceptionHiding }

func (ExceptionHidingRule) Check(ctx LineContext) []models.Finding {
	m := exceptRe.FindStringSubmatchIndex(ctx.Code)
	if m == nil {
		return nil
	}
	typ := ""
	if m[2] >= 0 {
		typ = ctx.Code[m[2]:m[3]]
	}
	if typ != "" && typ != "Exception" && typ != "BaseException" {
		// A narrower type is a deliberate handling decision.
		return nil
	}

	rest := strings.TrimSpace(ctx.Code[m[1]:])
	if rest != "" {
		if rest != "pass" {
			return nil
		}
		return exceptionFinding(ctx)
	}
	if bodyIsOnlyPass(indentOf(ctx.Text), ctx.After) {
		return exceptionFinding(ctx)
	}
	return nil
}

func exceptionFinding(ctx LineContext) []models.Finding {
	return []models.Finding{{
		RuleID:     models.RuleExceptionHiding,
		Severity:   models.SeverityCritical,
		File:       ctx.File,
		Line:       ctx.Line,
		Matched:    "except: pass",
		Message:    "broad exception handler swallows all failures",
		Suggestion: "handle or log the error, or narrow the exception type",
	}}
}

// bodyIsOnlyPass checks the lines following an "except:" header: the first
// statement must be pass, and the block must end there.
func bodyIsOnlyPass(headerIndent int, after []string) bool {
	sawPass := false
	passIndent := 0
	for _, line := range after {
		code := strings.TrimSpace(StripComment(line))
		if code == "" {
			continue
		}
		ind := indentOf(line)
		if !sawPass {
			if code != "pass" || ind <= headerIndent {
				return false
			}
			sawPass = true
			passIndent = ind
			continue
		}
		// Any further statement inside the handler body disqualifies it.
		return ind < passIndent
	}
	return sawPass
}

// -- Magic Number Weighting --

// MagicNumberRule flags a feature assignment whose expression uses a bare
// numeric literal as a multiplicative or additive coefficient. Coefficients
// belong in configuration or fitted parameters.
type MagicNumberRule struct {
	cfg config.Config
}

func (MagicNumberRule) ID() string { return models.RuleMagicNumber }

func (r MagicNumberRule) Check(ctx LineContext) []models.Finding {
	target, rhs, ok := splitAssignment(ctx.Code)
	if !ok || !r.cfg.MatchesFeature(target) {
		return nil
	}
	coef := leadCoefRe.FindString(ctx.Code)
	if coef == "" {
		coef = trailCoefRe.FindString(rhs)
	}
	if coef == "" {
		return nil
	}
	return []models.Finding{{
		RuleID:     models.RuleMagicNumber,
		Severity:   models.SeverityWarning,
		File:       ctx.File,
		Line:       ctx.Line,
		Matched:    strings.TrimSpace(coef),
		Message:    fmt.Sprintf("magic number coefficient in feature %q", target),
		Suggestion: "define as a named constant or load from configuration",
	}}
}

// -- Fabricated Success Message --

// FakeSuccessRule flags a print or log call announcing success without a
// preceding check of the operation's result.
type FakeSuccessRule struct{}

func (FakeSuccessRule) ID() string { return models.RuleFakeSuccess }

func (FakeSuccessRule) Check(ctx LineContext) []models.Finding {
	match := successCallRe.FindString(ctx.Code)
	if match == "" || guardedBySuccessCheck(ctx) {
		return nil
	}
	return []models.Finding{{
		RuleID:     models.RuleFakeSuccess,
		Severity:   models.SeverityWarning,
		File:       ctx.File,
		Line:       ctx.Line,
		Matched:    strings.TrimSpace(match),
		Message:    "success message with no preceding result check",
		Suggestion: "derive the message from an actual verification result",
	}}
}

// guardedBySuccessCheck walks backwards through the context window. A
// success message is considered guarded when the enclosing block is a
// conditional, or when an assert/if immediately precedes it at the same
// indentation.
func guardedBySuccessCheck(ctx LineContext) bool {
	cur := indentOf(ctx.Text)
	for i := len(ctx.Before) - 1; i >= 0; i-- {
		code := strings.TrimSpace(StripComment(ctx.Before[i]))
		if code == "" {
			continue
		}
		ind := indentOf(ctx.Before[i])
		if ind < cur {
			return isConditionalHeader(code)
		}
		if strings.HasPrefix(code, "assert ") || strings.HasPrefix(code, "if ") {
			return true
		}
		return false
	}
	return false
}

func isConditionalHeader(code string) bool {
	return strings.HasPrefix(code, "if ") ||
		strings.HasPrefix(code, "elif ") ||
		strings.HasPrefix(code, "else") ||
		strings.HasPrefix(code, "while ")
}

// -- Bare Sampling / Faker --

// RandomSamplingRule flags sampling and faker calls that are not tied to a
// feature assignment. Less damning than outright fabrication, still worth
// a look.
type RandomSamplingRule struct{}

func (RandomSamplingRule) ID() string { return models.RuleRandomSampling }

func (RandomSamplingRule) Check(ctx LineContext) []models.Finding {
	match := samplingCallRe.FindString(ctx.Code)
	if match == "" {
		return nil
	}
	return []models.Finding{{
		RuleID:     models.RuleRandomSampling,
		Severity:   models.SeverityWarning,
		File:       ctx.File,
		Line:       ctx.Line,
		Matched:    strings.TrimSpace(strings.TrimRight(match, "( \t")),
		Message:    "sampling or faker call in non-test code",
		Suggestion: "confirm this randomness is intentional and reproducible",
	}}
}

// -- TODO + pass --

// TodoPassRule flags a TODO marker sitting next to a pass placeholder:
// unfinished code that silently does nothing at runtime.
type TodoPassRule struct{}

func (TodoPassRule) ID() string { return models.RuleTodoPass }

func (TodoPassRule) Check(ctx LineContext) []models.Finding {
	if !strings.Contains(ctx.Text, "TODO") || !passStmtRe.MatchString(ctx.Code) {
		return nil
	}
	return []models.Finding{{
		RuleID:     models.RuleTodoPass,
		Severity:   models.SeverityWarning,
		File:       ctx.File,
		Line:       ctx.Line,
		Matched:    "TODO + pass",
		Message:    "unfinished code: TODO with a pass placeholder",
		Suggestion: "finish the implementation or raise NotImplementedError",
	}}
}

// -- Shared Helpers --

// splitAssignment extracts the assignment target and right-hand side of a
// simple statement. Multi-line assignments are matched only on the physical
// line that carries both the "=" and the call.
func splitAssignment(code string) (target, rhs string, ok bool) {
	m := assignRe.FindStringSubmatch(code)
	if m == nil {
		return "", "", false
	}
	target = strings.TrimSpace(m[1])
	if idx := strings.Index(code, "="); idx >= 0 {
		rhs = code[idx+1:]
	}
	return target, rhs, true
}

// StripComment drops a trailing # comment. Hash characters inside string
// literals are not tracked; the original detector accepts the same blind spot.
func StripComment(line string) string {
	if idx := strings.Index(line, "#"); idx >= 0 {
		return line[:idx]
	}
	return line
}

func indentOf(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}
