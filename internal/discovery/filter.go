package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters test files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the paths whose file name matches pattern. A pattern with
// wildcards is matched with filepath.Match, falling back to finding its
// literal parts in order ("*account*card*"); a plain pattern is a substring.
func (f *Filter) FilterByName(paths []string, pattern string) []string {
	if pattern == "" {
		return paths
	}

	var filtered []string
	for _, p := range paths {
		if matchName(filepath.Base(p), pattern) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	rest := name
	found := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
		found = true
	}
	return found
}
