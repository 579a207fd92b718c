// Package report aggregates findings into a verdict and renders them for
// humans, CI logs, or machine consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/unohee/ci-templates/pkg/models"
)

// Build partitions findings by severity and derives the verdict. Strict
// mode escalates WARNING-only outcomes to FAIL; nothing else about the
// verdict is configurable.
func Build(targets []string, filesScanned int, findings []models.Finding, diags []models.Diagnostic, strict bool) models.ScanOutput {
	out := models.ScanOutput{
		Targets:      targets,
		FilesScanned: filesScanned,
		Findings:     findings,
		Diagnostics:  diags,
		Verdict:      models.VerdictPass,
	}
	if out.Findings == nil {
		out.Findings = []models.Finding{}
	}

	summary := models.ScanSummary{RuleCounts: map[string]int{}}
	weighted := 0
	for _, f := range findings {
		summary.Total++
		summary.RuleCounts[f.RuleID]++
		weighted += f.Severity.Weight()
		switch f.Severity {
		case models.SeverityCritical:
			summary.Critical++
		case models.SeverityWarning:
			summary.Warning++
		}
	}
	out.Summary = summary

	// BS score: weighted issue volume normalized by files scanned.
	div := filesScanned
	if div < 1 {
		div = 1
	}
	out.BSScore = float64(weighted) / float64(div)

	if summary.Critical > 0 || (strict && summary.Warning > 0) {
		out.Verdict = models.VerdictFail
	}
	return out
}

// ExitCode maps a verdict to the process exit status consumed by the
// pre-commit hook and the CI job.
func ExitCode(out models.ScanOutput) int {
	if out.Verdict == models.VerdictFail {
		return models.ExitFail
	}
	return models.ExitPass
}

// -- Renderers --

// RenderJSON writes the machine-readable report.
func RenderJSON(w io.Writer, out models.ScanOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// RenderCI writes GitHub Actions workflow commands, one per finding, plus
// notices for diagnostics. Formatting only; the verdict is unchanged.
func RenderCI(w io.Writer, out models.ScanOutput) error {
	for _, f := range out.Findings {
		level := "warning"
		if f.Severity == models.SeverityCritical {
			level = "error"
		}
		if _, err := fmt.Fprintf(w, "::%s file=%s,line=%d::%s\n", level, f.File, f.Line, f.Message); err != nil {
			return err
		}
	}
	for _, d := range out.Diagnostics {
		if _, err := fmt.Fprintf(w, "::notice file=%s::%s\n", d.File, d.Message); err != nil {
			return err
		}
	}
	return nil
}

// RenderHuman writes the default terminal report.
func RenderHuman(w io.Writer, out models.ScanOutput) error {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	b.WriteString(rule + "\n")
	b.WriteString("Fake Data Detector Report\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Files scanned: %d\n", out.FilesScanned)
	fmt.Fprintf(&b, "Critical issues: %d\n", out.Summary.Critical)
	fmt.Fprintf(&b, "Warning issues: %d\n", out.Summary.Warning)
	fmt.Fprintf(&b, "BS Score: %.2f\n", out.BSScore)
	fmt.Fprintf(&b, "Status: %s\n", out.Verdict)
	b.WriteString(rule + "\n")

	if len(out.Findings) > 0 {
		b.WriteString("\nIssues found:\n\n")
		for _, f := range out.Findings {
			fmt.Fprintf(&b, "[%s] %s:%d (%s)\n", f.Severity, f.File, f.Line, f.RuleID)
			fmt.Fprintf(&b, "   %s\n", f.Message)
			if f.Suggestion != "" {
				fmt.Fprintf(&b, "   hint: %s\n", f.Suggestion)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("\nNo issues found!\n")
	}

	if len(out.Diagnostics) > 0 {
		b.WriteString("\nSkipped files:\n")
		for _, d := range out.Diagnostics {
			fmt.Fprintf(&b, "   %s: %s\n", d.File, d.Message)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
