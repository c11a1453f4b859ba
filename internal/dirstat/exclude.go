package dirstat

import (
	"path/filepath"
	"strings"
)

// MaxExcludes is the maximum number of exclusion patterns honored in a single run.
// Patterns beyond this limit are dropped and reported by NewExcludeFilter.
const MaxExcludes = 100

// ExcludeFilter skips paths containing any of its patterns as a literal substring.
type ExcludeFilter struct {
	patterns []string
}

// NewExcludeFilter builds a filter from the given patterns.
// Empty patterns are ignored, since they would match every path.
// It returns the patterns that were dropped because MaxExcludes was exceeded.
func NewExcludeFilter(patterns []string) (ExcludeFilter, []string) {
	kept := make([]string, 0, min(len(patterns), MaxExcludes))

	var dropped []string

	for _, p := range patterns {
		if p == "" {
			continue
		}

		if len(kept) == MaxExcludes {
			dropped = append(dropped, p)

			continue
		}

		kept = append(kept, p)
	}

	return ExcludeFilter{patterns: kept}, dropped
}

// Patterns returns the patterns in effect.
func (f ExcludeFilter) Patterns() []string {
	return append([]string(nil), f.patterns...)
}

// Match reports the first pattern contained in path, if any.
// Paths are compared in slash form.
func (f ExcludeFilter) Match(path string) (string, bool) {
	if len(f.patterns) == 0 {
		return "", false
	}

	fPath := filepath.ToSlash(path)

	for _, p := range f.patterns {
		if strings.Contains(fPath, p) {
			return p, true
		}
	}

	return "", false
}

// IsExcluded reports whether path contains any of patterns as a substring.
func IsExcluded(path string, patterns []string) bool {
	f, _ := NewExcludeFilter(patterns)
	_, ok := f.Match(path)

	return ok
}
