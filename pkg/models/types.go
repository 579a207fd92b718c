package models

// -- Severity --

// Severity classifies a finding. Two levels matter for the verdict;
// CRITICAL always outranks WARNING.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// Rank orders severities for report sorting. Lower sorts first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	}
	return 9
}

// Weight returns the BS score contribution of one finding at this severity.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return WeightCritical
	case SeverityWarning:
		return WeightWarning
	}
	return WeightInfo
}

// -- Findings & Diagnostics --

// Finding is one rule hit at one source line. Immutable once created;
// produced by exactly one rule evaluation.
type Finding struct {
	RuleID     string   `json:"rule"`
	Severity   Severity `json:"severity"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Matched    string   `json:"matched,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Diagnostic records a per-file problem (unreadable file, bad encoding).
// Diagnostics are surfaced in the report but never change the verdict.
type Diagnostic struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// -- Scan Output --

// ScanSummary aggregates finding counts for one scan.
type ScanSummary struct {
	Critical   int            `json:"critical"`
	Warning    int            `json:"warning"`
	Total      int            `json:"total_findings"`
	RuleCounts map[string]int `json:"rule_counts,omitempty"`
}

// ScanOutput is the machine-readable result of a full scan.
type ScanOutput struct {
	Targets      []string     `json:"targets"`
	FilesScanned int          `json:"files_scanned"`
	Findings     []Finding    `json:"findings"`
	Diagnostics  []Diagnostic `json:"diagnostics,omitempty"`
	Summary      ScanSummary  `json:"summary"`
	BSScore      float64      `json:"bs_score"`
	Verdict      string       `json:"verdict"`
}
