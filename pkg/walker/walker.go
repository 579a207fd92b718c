// Package walker enumerates candidate source files under the configured
// targets. Output order is lexicographic so identical inputs always produce
// identical scans.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/unohee/ci-templates/pkg/config"
	"github.com/unohee/ci-templates/pkg/models"
)

// Walk resolves every target into a sorted list of regular source files.
// A missing target becomes a Diagnostic and is skipped; only when no target
// resolves at all is the invocation itself considered broken.
func Walk(cfg config.Config) ([]string, []models.Diagnostic, error) {
	var (
		files    []string
		diags    []models.Diagnostic
		resolved int
	)
	seen := make(map[string]bool)

	for _, target := range cfg.Targets {
		target = filepath.Clean(target)
		info, err := os.Stat(target)
		if err != nil {
			diags = append(diags, models.Diagnostic{
				File:    target,
				Message: fmt.Sprintf("target skipped: %v", err),
			})
			continue
		}
		resolved++

		if !info.IsDir() {
			if cfg.HasSourceExtension(target) && !Excluded(target, cfg.Excludes) && !seen[target] {
				seen[target] = true
				files = append(files, target)
			}
			continue
		}

		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				diags = append(diags, models.Diagnostic{File: path, Message: err.Error()})
				return nil
			}
			if d.IsDir() {
				if path != target && Excluded(path, cfg.Excludes) {
					return filepath.SkipDir
				}
				return nil
			}
			if !cfg.HasSourceExtension(path) || Excluded(path, cfg.Excludes) {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, diags, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	if resolved == 0 && len(cfg.Targets) > 0 {
		return nil, diags, fmt.Errorf("no target path exists: %s", strings.Join(cfg.Targets, ", "))
	}

	sort.Strings(files)
	return files, diags, nil
}

// Excluded matches a path against the exclude set. Each entry is tried as a
// glob against the full path and its base name, and as a plain substring,
// so both "build/*.py" and "archive" behave as users expect.
func Excluded(path string, excludes []string) bool {
	base := filepath.Base(path)
	norm := filepath.ToSlash(path)
	for _, pattern := range excludes {
		if pattern == "" {
			continue
		}
		if ok, err := filepath.Match(pattern, norm); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
		if strings.Contains(norm, pattern) {
			return true
		}
	}
	return false
}
