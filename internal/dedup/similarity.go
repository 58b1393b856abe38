package dedup

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/spigell/hh-screener/internal/skills"
)

const containedSimilarity = 0.8

// NameSimilarity compares two usernames case-insensitively. Identical names
// score 1, containment scores 0.8, anything else the sequence ratio. An empty
// name is never similar to anything.
func NameSimilarity(a, b string) float64 {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	switch {
	case a == "" || b == "":
		return 0
	case a == b:
		return 1
	case strings.Contains(a, b) || strings.Contains(b, a):
		return containedSimilarity
	default:
		return SequenceRatio(a, b)
	}
}

// SequenceRatio is the Ratcliff/Obershelp similarity 2*M/T over the runes of
// a and b, as computed by difflib's SequenceMatcher.
func SequenceRatio(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// Jaccard is the overlap of two skill lists after normalization. An empty
// list overlaps with nothing.
func Jaccard(a, b []string) float64 {
	sa, sb := skills.NormalizeBatch(a), skills.NormalizeBatch(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	in := make(map[string]bool, len(sa))
	for _, s := range sa {
		in[s] = true
	}

	shared := 0
	for _, s := range sb {
		if in[s] {
			shared++
		}
	}

	return float64(shared) / float64(len(sa)+len(sb)-shared)
}
