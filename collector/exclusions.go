package collector

import "strings"

// defaultExclusions are path entries that never participate in analysis:
// build output, vendored code and lockfiles add noise without signal.
var defaultExclusions = []string{
	"node_modules",
	"dist",
	"build",
	"vendor",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"go.sum",
}

// ExclusionList is a fixed set of path entries consulted before analysis.
// It is built once at startup and read-only afterwards, so it is safe to
// share across invocations without locking.
type ExclusionList struct {
	entries map[string]struct{}
}

// DefaultExclusions returns the built-in exclusion list.
func DefaultExclusions() *ExclusionList {
	return NewExclusionList(nil)
}

// NewExclusionList returns the built-in entries plus any extra ones,
// typically sourced from the user's config file.
func NewExclusionList(extra []string) *ExclusionList {
	entries := make(map[string]struct{}, len(defaultExclusions)+len(extra))
	for _, e := range defaultExclusions {
		entries[e] = struct{}{}
	}
	for _, e := range extra {
		e = strings.TrimSpace(e)
		if e != "" {
			entries[e] = struct{}{}
		}
	}
	return &ExclusionList{entries: entries}
}

// Excluded reports whether path matches an entry, either exactly or via
// any of its path segments (so "node_modules" drops "a/node_modules/b.js").
func (e *ExclusionList) Excluded(path string) bool {
	if _, ok := e.entries[path]; ok {
		return true
	}
	for _, seg := range strings.Split(path, "/") {
		if _, ok := e.entries[seg]; ok {
			return true
		}
	}
	return false
}

// Entries returns the configured entries; used for debug logging only.
func (e *ExclusionList) Entries() []string {
	out := make([]string, 0, len(e.entries))
	for entry := range e.entries {
		out = append(out, entry)
	}
	return out
}
