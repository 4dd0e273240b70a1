package analyzer

import "strings"

// Analysis is the derived classification of one diff: a conventional-commit
// type, an optional scope and a short description. It is computed fresh from
// the concatenated diff text on every call and carries no identity beyond it.
type Analysis struct {
	Type        string `json:"type"`
	Scope       string `json:"scope,omitempty"`
	Description string `json:"description"`
}

// typeKeywords maps keyword groups to commit types. The table is checked in
// declaration order and the FIRST group with any keyword present in the diff
// wins, regardless of how often or where later keywords appear. Keyword sets
// overlap (a diff touching tests usually also says "update"), so this fixed
// order is the tie-break; do not reorder entries without revisiting every
// overlap.
var typeKeywords = []struct {
	keywords []string
	commit   string
}{
	{[]string{"fix", "bug", "error"}, "fix"},
	{[]string{"test", "spec"}, "test"},
	{[]string{"feature", "add", "new", "update"}, "feat"},
	{[]string{"refactor", "improve"}, "refactor"},
	{[]string{"docs", "readme"}, "docs"},
	{[]string{"chore", "config"}, "chore"},
	{[]string{"build"}, "build"},
}

// scopeMarkers is checked in priority order, first match wins:
// dependency manifests beat source code beat documentation.
var scopeMarkers = []struct {
	markers []string
	scope   string
}{
	{[]string{"package.json", "package-lock.json", "yarn.lock", "go.mod", "go.sum", "requirements.txt", "cargo.toml"}, "deps"},
	{[]string{".go", ".ts", ".js", ".py", ".rs", ".java"}, "code"},
	{[]string{".md", "readme"}, "docs"},
}

type shape int

const (
	shapeMixed shape = iota
	shapeMostlyAdditions
	shapeMostlyDeletions
)

// Analyze derives an Analysis from the concatenation of all per-file diffs.
// Pure function: identical input always yields an identical result.
func Analyze(diff string) Analysis {
	lower := strings.ToLower(diff)
	added, removed := countChangedLines(diff)

	return Analysis{
		Type:        detectType(lower),
		Scope:       detectScope(lower),
		Description: describe(classifyShape(added, removed), hasTestMarkers(lower)),
	}
}

// countChangedLines counts addition and removal lines, skipping the
// +++/--- file header markers.
func countChangedLines(diff string) (added, removed int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

func detectType(lower string) string {
	for _, entry := range typeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.commit
			}
		}
	}
	// no keyword matched; default assumption is new functionality
	return "feat"
}

func detectScope(lower string) string {
	for _, entry := range scopeMarkers {
		for _, m := range entry.markers {
			if strings.Contains(lower, m) {
				return entry.scope
			}
		}
	}
	return ""
}

// classifyShape is strictly threshold-based: a side has to outweigh the
// other by more than a factor of two to count as dominant.
func classifyShape(added, removed int) shape {
	switch {
	case added > removed*2:
		return shapeMostlyAdditions
	case removed > added*2:
		return shapeMostlyDeletions
	default:
		return shapeMixed
	}
}

func hasTestMarkers(lower string) bool {
	return strings.Contains(lower, "test") || strings.Contains(lower, "spec")
}

// describe picks the description from a fixed phrase table conditioned on
// the aggregate shape and the presence of test markers.
func describe(s shape, tests bool) string {
	switch s {
	case shapeMostlyAdditions:
		if tests {
			return "add tests and features"
		}
		return "add new features"
	case shapeMostlyDeletions:
		return "remove unused code"
	default:
		if tests {
			return "update tests and code"
		}
		return "update code"
	}
}
