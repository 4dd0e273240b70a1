package formatter

import (
	"fmt"
	"strings"

	"github.com/penwyp/quickmit/analyzer"
)

// Style selects how the final commit message is rendered.
type Style string

const (
	StyleConventional Style = "conventional"
	StyleSimple       Style = "simple"
	StyleDetailed     Style = "detailed"
)

// DefaultStyle is used when the caller does not request a style.
const DefaultStyle = StyleConventional

// ParseStyle validates a user-supplied style name. The empty string maps
// to the default.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case "":
		return DefaultStyle, nil
	case StyleConventional, StyleSimple, StyleDetailed:
		return Style(s), nil
	default:
		return "", fmt.Errorf("unknown style %q (want conventional, simple or detailed)", s)
	}
}

// Format renders the classified changes and the analysis into the final
// commit message for the requested style.
func Format(style Style, cs analyzer.ChangeSet, a analyzer.Analysis) string {
	switch style {
	case StyleSimple:
		return capitalize(a.Description)
	case StyleDetailed:
		return detailed(cs, a)
	default:
		return conventional(cs, a)
	}
}

// conventional renders `type(scope): description` plus either the single
// changed file path or a summary of bucket counts.
func conventional(cs analyzer.ChangeSet, a analyzer.Analysis) string {
	var b strings.Builder
	b.WriteString(a.Type)
	if a.Scope != "" {
		b.WriteString("(" + a.Scope + ")")
	}
	b.WriteString(": ")
	b.WriteString(a.Description)

	if path, ok := cs.SingleFile(); ok {
		b.WriteString(" in " + path)
		return b.String()
	}

	// Renamed files are counted in Total but deliberately left out of this
	// summary clause; see the notes in DESIGN.md before changing that.
	var parts []string
	if n := len(cs.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s added", n, pluralizeFile(n)))
	}
	if n := len(cs.Modified); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s modified", n, pluralizeFile(n)))
	}
	if n := len(cs.Deleted); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s deleted", n, pluralizeFile(n)))
	}
	if len(parts) > 0 {
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}
	return b.String()
}

// detailed renders the description followed by per-bucket file bullets in
// the fixed Added/Modified/Deleted/Renamed order.
func detailed(cs analyzer.ChangeSet, a analyzer.Analysis) string {
	var b strings.Builder
	b.WriteString(capitalize(a.Description))

	if cs.Total() == 0 {
		return b.String()
	}

	b.WriteString("\n\nFiles changed:")
	buckets := []struct {
		label string
		paths []string
	}{
		{"Added", cs.Added},
		{"Modified", cs.Modified},
		{"Deleted", cs.Deleted},
		{"Renamed", cs.Renamed},
	}
	for _, bucket := range buckets {
		if len(bucket.paths) == 0 {
			continue
		}
		b.WriteString("\n- " + bucket.label + ": " + strings.Join(bucket.paths, ", "))
	}
	return b.String()
}

func pluralizeFile(n int) string {
	if n > 1 {
		return "files"
	}
	return "file"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
