// Package genre turns raw genre labels into normalized tag sets.
//
// Source labels look like "Melodic Death Metal (early), Doom Metal (later)"
// or "Black/Thrash Metal". Era qualifiers are dropped, compound slash
// forms are expanded, and tags are lowercased for overlap comparison.
package genre

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Tags parses a raw genre label into the processed tag set.
// Order follows the label; duplicates are removed.
func Tags(label string) []string {
	label = cleanBase(label)
	if label == "" {
		return nil
	}

	seen := make(map[string]bool)
	var tags []string

	for _, segment := range splitSegments(label) {
		for _, tag := range expandCompound(segment) {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	return tags
}

// CleanLabel returns the cleaned label text used for genre text similarity:
// lowercased, qualifiers stripped, separators replaced by spaces.
func CleanLabel(label string) string {
	label = cleanBase(label)
	label = strings.NewReplacer(",", " ", ";", " ", "/", " ").Replace(label)
	return collapse(label)
}

// cleanBase applies NFC normalization, lowercasing and qualifier removal
func cleanBase(label string) string {
	label = norm.NFC.String(label)
	label = strings.ToLower(label)
	label = parenRe.ReplaceAllString(label, " ")
	return collapse(label)
}

// splitSegments splits a label on list separators
func splitSegments(label string) []string {
	parts := strings.FieldsFunc(label, func(r rune) bool {
		return r == ',' || r == ';'
	})
	for i, p := range parts {
		parts[i] = collapse(p)
	}
	return parts
}

// expandCompound expands slash forms like "black/thrash metal" into
// "black metal" and "thrash metal". Parts that already end with the
// final part's last word are kept as-is.
func expandCompound(segment string) []string {
	if !strings.Contains(segment, "/") {
		return []string{segment}
	}

	parts := strings.Split(segment, "/")
	for i, p := range parts {
		parts[i] = collapse(p)
	}

	last := parts[len(parts)-1]
	words := strings.Fields(last)
	if len(words) < 2 {
		return parts
	}

	suffix := words[len(words)-1]
	for i, p := range parts[:len(parts)-1] {
		if p != "" && !strings.HasSuffix(p, suffix) {
			parts[i] = p + " " + suffix
		}
	}

	return parts
}

// Overlaps reports whether two processed tag sets share at least one tag
func Overlaps(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, tag := range a {
		set[tag] = true
	}
	for _, tag := range b {
		if set[tag] {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
