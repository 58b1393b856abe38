package skills

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Seniority levels recognized in role titles and resumes.
const (
	SeniorityUnknown = "unknown"
	SeniorityJunior  = "junior"
	SeniorityMiddle  = "middle"
	SenioritySenior  = "senior"
)

var seniorityTerms = []struct {
	level string
	terms []string
}{
	{SenioritySenior, []string{"senior", "lead", "principal", "architect", "старший"}},
	{SeniorityMiddle, []string{"middle", "средний"}},
	{SeniorityJunior, []string{"junior", "младший", "стажер", "intern"}},
}

// Seniority detects the seniority level mentioned in free text.
func Seniority(text string) string {
	text = strings.ToLower(text)
	for _, s := range seniorityTerms {
		if ContainsAny(text, s.terms...) {
			return s.level
		}
	}
	return SeniorityUnknown
}

// CountTerm counts whole-word occurrences of term in text. Both are expected
// to be lowercase already.
func CountTerm(text, term string) int {
	if term == "" {
		return 0
	}

	return len(termSpans(text, term))
}

// termSpans returns the byte ranges of whole-word occurrences of term.
func termSpans(text, term string) [][2]int {
	var spans [][2]int
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			break
		}
		start := offset + idx
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			spans = append(spans, [2]int{start, end})
			offset = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}

	return spans
}

// countMasked counts whole-word occurrences of term and blanks them out, so
// that a shorter alias inside a longer one is not counted again.
func countMasked(text, term string) (int, string) {
	if term == "" {
		return 0, text
	}

	spans := termSpans(text, term)
	if len(spans) == 0 {
		return 0, text
	}

	masked := []byte(text)
	for _, span := range spans {
		for i := span[0]; i < span[1]; i++ {
			masked[i] = ' '
		}
	}
	return len(spans), string(masked)
}

// ContainsTerm reports whether term occurs in text as a whole word.
func ContainsTerm(text, term string) bool {
	return CountTerm(text, term) > 0
}

// ContainsAny reports whether any of the terms occurs in text as a whole word.
func ContainsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if ContainsTerm(text, term) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:idx])
	return !isWordRune(r)
}

func boundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[idx:])
	return !isWordRune(r)
}

// Mention is a skill detected in free text.
type Mention struct {
	Skill    string  `json:"skill" yaml:"skill"`
	Score    float64 `json:"score" yaml:"score"`
	Mentions int     `json:"mentions" yaml:"mentions"`
}

// ExtractFromText finds taxonomy skills in free text. Aliases are counted
// longest first and each occurrence counts once. Skills listed in boost
// have their mention count doubled. Scores are relative to the most
// mentioned skill.
func (t *Taxonomy) ExtractFromText(text string, boost []string) []Mention {
	if text == "" {
		return nil
	}

	text = strings.ToLower(text)
	counts := make(map[string]int)
	for _, s := range t.skills {
		rest := text
		for _, alias := range t.Aliases(s.Name) {
			var n int
			if n, rest = countMasked(rest, alias); n > 0 {
				counts[s.Name] += n
			}
		}
	}

	for _, b := range t.NormalizeBatch(boost) {
		if _, ok := counts[b]; ok {
			counts[b] *= 2
		}
	}

	maxCount := 1
	for _, n := range counts {
		maxCount = max(maxCount, n)
	}

	mentions := make([]Mention, 0, len(counts))
	for name, n := range counts {
		mentions = append(mentions, Mention{
			Skill:    name,
			Score:    round(math.Min(1, float64(n)/float64(maxCount)), 2),
			Mentions: n,
		})
	}

	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].Score != mentions[j].Score {
			return mentions[i].Score > mentions[j].Score
		}
		return mentions[i].Skill < mentions[j].Skill
	})

	return mentions
}

// KeywordMatch is the share of required skills found in a resume.
type KeywordMatch struct {
	Ratio   float64   `json:"overall_score" yaml:"overall_score"`
	Matched []Mention `json:"matched_skills" yaml:"matched_skills"`
	Missing []string  `json:"missing_skills" yaml:"missing_skills"`
}

// MatchKeywords compares resume text against the required skills.
func (t *Taxonomy) MatchKeywords(text string, required []string) KeywordMatch {
	if text == "" || len(required) == 0 {
		return KeywordMatch{Missing: required}
	}

	found := make(map[string]Mention)
	for _, m := range t.ExtractFromText(text, required) {
		found[m.Skill] = m
	}

	var result KeywordMatch
	for _, req := range required {
		m, ok := found[t.Normalize(req)]
		if !ok {
			result.Missing = append(result.Missing, req)
			continue
		}
		m.Skill = req
		result.Matched = append(result.Matched, m)
	}

	result.Ratio = round(float64(len(result.Matched))/float64(len(required)), 2)
	return result
}

// MatchKeywords compares resume text against the required skills using the
// default taxonomy.
func MatchKeywords(text string, required []string) KeywordMatch {
	return Default.MatchKeywords(text, required)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// MentionsSkill reports whether lowercase text mentions the canonical skill
// or any of its aliases as a whole word.
func (t *Taxonomy) MentionsSkill(text, skill string) bool {
	if ContainsTerm(text, skill) {
		return true
	}
	for _, alias := range t.Aliases(skill) {
		if ContainsTerm(text, alias) {
			return true
		}
	}
	return false
}
