// Package matching compares a candidate's skills with a set of required skills.
package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/hh-screener/internal/skills"
)

const (
	strongCoverage = 70.0
	topListed      = 3
	maxExtra       = 10
)

// Result is the outcome of a skill match. It is derived, never stored.
type Result struct {
	Similarity        float64                 `json:"similarity_score" yaml:"similarity_score"`
	Matched           []string                `json:"matched_skills" yaml:"matched_skills"`
	Missing           []string                `json:"missing_skills" yaml:"missing_skills"`
	Extra             []string                `json:"extra_skills" yaml:"extra_skills"`
	MatchedByCategory map[skills.Category]int `json:"matched_by_category" yaml:"matched_by_category"`
	MissingByCategory map[skills.Category]int `json:"missing_by_category" yaml:"missing_by_category"`
	Reasons           []string                `json:"match_reasons" yaml:"match_reasons"`
	Gaps              []string                `json:"gap_analysis" yaml:"gap_analysis"`
	Coverage          float64                 `json:"coverage_percent" yaml:"coverage_percent"`
}

// Calculate matches candidate skills against required skills. Required
// skills keep their order in the matched and missing lists.
func Calculate(required, candidate []string) Result {
	reqVector := vector(required)
	candVector := vector(candidate)

	reqSet := ordered(required)
	has := make(map[string]bool, len(candVector))
	for name := range candVector {
		has[name] = true
	}

	res := Result{
		Similarity:        round(cosine(reqVector, candVector), 2),
		MatchedByCategory: make(map[skills.Category]int),
		MissingByCategory: make(map[skills.Category]int),
	}

	wanted := make(map[string]bool, len(reqSet))
	for _, name := range reqSet {
		wanted[name] = true
		if has[name] {
			res.Matched = append(res.Matched, name)
			res.MatchedByCategory[skills.CategoryOf(name)]++
		} else {
			res.Missing = append(res.Missing, name)
			res.MissingByCategory[skills.CategoryOf(name)]++
		}
	}

	for _, name := range ordered(candidate) {
		if !wanted[name] {
			res.Extra = append(res.Extra, name)
		}
	}

	if len(reqSet) > 0 {
		res.Coverage = round(float64(len(res.Matched))/float64(len(reqSet))*100, 1)
	}

	res.Reasons = reasons(res, len(reqSet))
	res.Gaps = gaps(res.Missing)

	if len(res.Extra) > maxExtra {
		res.Extra = res.Extra[:maxExtra]
	}

	return res
}

func reasons(res Result, required int) []string {
	var out []string
	if required > 0 && res.Coverage >= strongCoverage {
		out = append(out, fmt.Sprintf("Strong skill match: %d/%d skills", len(res.Matched), required))
	}
	if len(res.Matched) > 0 {
		out = append(out, "Key skills: "+strings.Join(head(res.Matched, topListed), ", "))
	}
	if len(res.Extra) > 0 {
		out = append(out, "Additional skills: "+strings.Join(head(res.Extra, topListed), ", "))
	}
	return out
}

func gaps(missing []string) []string {
	if len(missing) == 0 {
		return nil
	}

	var critical []string
	for _, name := range missing {
		if skills.CategoryOf(name).IsCritical() {
			critical = append(critical, name)
		}
	}

	var out []string
	if len(critical) > 0 {
		out = append(out, "Missing critical: "+strings.Join(head(critical, topListed), ", "))
	}
	if len(missing) > len(critical) {
		out = append(out, fmt.Sprintf("Missing %d skills total", len(missing)))
	}
	return out
}

// vector counts canonical mentions with a weight of 1 each.
func vector(names []string) map[string]float64 {
	v := make(map[string]float64)
	for _, n := range names {
		if name := skills.Normalize(n); name != "" {
			v[name]++
		}
	}
	return v
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for name, va := range a {
		dot += va * b[name]
		magA += va * va
	}
	for _, vb := range b {
		magB += vb * vb
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// ordered normalizes and de-duplicates names keeping first occurrences.
func ordered(names []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, n := range names {
		name := skills.Normalize(n)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

func head(list []string, n int) []string {
	return list[:min(len(list), n)]
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
