package watcher

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Matcher filters slash-separated paths relative to a watch root.
type Matcher struct {
	include []string
	exclude []string
}

// NewMatcher creates a Matcher. An empty include list matches every path.
func NewMatcher(include, exclude []string) *Matcher {
	return &Matcher{include: include, exclude: exclude}
}

// Match reports whether a changed file at rel should trigger a run.
func (m *Matcher) Match(rel string) bool {
	if m.excluded(rel) {
		return false
	}

	if len(m.include) == 0 {
		return true
	}

	for _, pattern := range m.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

// SkipDir reports whether the directory at rel must not be watched.
func (m *Matcher) SkipDir(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}

	return m.excluded(rel) || m.excluded(rel+"/")
}

func (m *Matcher) excluded(rel string) bool {
	for _, pattern := range m.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}
