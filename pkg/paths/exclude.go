package paths

import (
	"path/filepath"
	"strings"
)

// ExcludeMatcher matches file names against glob patterns, ignoring case
// the same way manifest names are matched against the directory.
type ExcludeMatcher struct {
	patterns []string
}

func NewExcludeMatcher(patterns []string) *ExcludeMatcher {
	m := &ExcludeMatcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		m.patterns = append(m.patterns, strings.ToLower(p))
	}
	return m
}

func (m *ExcludeMatcher) Match(name string) bool {
	name = strings.ToLower(filepath.Base(name))
	for _, pat := range m.patterns {
		if matched, _ := filepath.Match(pat, name); matched {
			return true
		}
	}
	return false
}

// Filter returns names that no pattern matches, in their original order.
func (m *ExcludeMatcher) Filter(names []string) (kept, dropped []string) {
	for _, n := range names {
		if m.Match(n) {
			dropped = append(dropped, n)
			continue
		}
		kept = append(kept, n)
	}
	return kept, dropped
}
