package skills

import (
	"regexp"
	"sort"
	"strings"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	noisePattern = regexp.MustCompile(`[^\p{L}\p{N}_\s+#\-.]`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// Clean strips markup, punctuation noise and redundant whitespace and
// lowercases the result. It does not consult the taxonomy.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	s := tagPattern.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, "…", " ")
	s = strings.ToLower(s)
	s = noisePattern.ReplaceAllString(s, "")
	s = spacePattern.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// Normalize returns the canonical form of a free-text skill name using the
// default taxonomy. Unknown skills pass through in their cleaned form.
func Normalize(raw string) string {
	return Default.Normalize(raw)
}

// NormalizeBatch normalizes, de-duplicates and sorts skill names using the
// default taxonomy. Entries that clean down to nothing are dropped.
func NormalizeBatch(raw []string) []string {
	return Default.NormalizeBatch(raw)
}

func (t *Taxonomy) Normalize(raw string) string {
	cleaned := Clean(raw)
	if cleaned == "" {
		return ""
	}

	if name, ok := t.canonical[cleaned]; ok {
		return name
	}

	return cleaned
}

func (t *Taxonomy) NormalizeBatch(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))

	for _, r := range raw {
		name := t.Normalize(r)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}

	sort.Strings(result)
	return result
}
