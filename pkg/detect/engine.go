package detect

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/unohee/ci-templates/pkg/config"
	"github.com/unohee/ci-templates/pkg/models"
	"golang.org/x/sync/errgroup"
)

// contextWindow bounds how many neighboring lines each rule may inspect.
const contextWindow = 5

// Engine runs the rule set over source files. It holds no per-scan state;
// all accumulation happens in the caller.
type Engine struct {
	cfg   config.Config
	rules []Rule
}

func NewEngine(cfg config.Config) *Engine {
	return &Engine{cfg: cfg, rules: DefaultRules(cfg)}
}

// ScanSource scans one file's text. Test files are exempt wholesale; other
// exemptions are evaluated once per line, ahead of every rule.
func (e *Engine) ScanSource(path, src string) []models.Finding {
	if IsTestPath(path) {
		return nil
	}

	lines := strings.Split(src, "\n")
	var findings []models.Finding

	for i, raw := range lines {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if IsExemptLine(raw) {
			continue
		}

		lo := i - contextWindow
		if lo < 0 {
			lo = 0
		}
		hi := i + 1 + contextWindow
		if hi > len(lines) {
			hi = len(lines)
		}

		ctx := LineContext{
			File:   path,
			Line:   i + 1,
			Text:   raw,
			Code:   StripComment(raw),
			Before: lines[lo:i],
			After:  lines[i+1 : hi],
		}
		for _, rule := range e.rules {
			findings = append(findings, rule.Check(ctx)...)
		}
	}
	return findings
}

// ScanFile reads and scans a single file. Oversized or non-UTF-8 files are
// rejected with an error the caller records as a diagnostic.
func (e *Engine) ScanFile(path string) ([]models.Finding, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > models.MaxSourceFileSize {
		return nil, fmt.Errorf("file exceeds maximum scan size of %d bytes", models.MaxSourceFileSize)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("file is not valid UTF-8")
	}
	return e.ScanSource(path, string(src)), nil
}

// ScanAll scans files in parallel. Each worker produces a local finding
// list merged under a mutex; the final sort restores deterministic order,
// so the parallel path is indistinguishable from a sequential scan.
// A failed file becomes a diagnostic, never an aborted scan.
func (e *Engine) ScanAll(files []string) ([]models.Finding, []models.Diagnostic) {
	var (
		findings []models.Finding
		diags    []models.Diagnostic
		mu       sync.Mutex
	)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, file := range files {
		f := file
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			local, err := e.ScanFile(f)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				diags = append(diags, models.Diagnostic{File: f, Message: err.Error()})
				return nil
			}
			findings = append(findings, local...)
			return nil
		})
	}
	// Workers only ever return nil; Wait is for completion, not errors.
	_ = g.Wait()

	SortFindings(findings)
	sort.Slice(diags, func(i, j int) bool { return diags[i].File < diags[j].File })
	return findings, diags
}

// SortFindings orders findings for reporting: severity (CRITICAL first),
// then file path, then line number, then rule ID.
func SortFindings(findings []models.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.RuleID < b.RuleID
	})
}
