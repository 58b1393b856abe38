// Package dedup collapses near-identical candidate records.
package dedup

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/hh-screener/internal/scoring"
)

// Strategy decides what survives from a group of duplicates.
type Strategy string

const (
	KeepBestScore Strategy = "keep_best_score"
	KeepFirst     Strategy = "keep_first"
	Merge         Strategy = "merge"
)

const (
	nameThreshold      = 0.85
	skillThreshold     = 0.8
	looseNameThreshold = 0.5
)

// ParseStrategy accepts the strategy names case-insensitively. An empty name
// selects KeepBestScore.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return KeepBestScore, nil
	case KeepBestScore, KeepFirst, Merge:
		return s, nil
	default:
		return "", fmt.Errorf("unknown dedup strategy %q", name)
	}
}

// Duplicates reports whether two records likely describe the same person.
func Duplicates(a, b *scoring.CandidateScore) bool {
	if a.Username != "" && strings.EqualFold(a.Username, b.Username) {
		return true
	}

	name := NameSimilarity(a.Username, b.Username)
	if name >= nameThreshold {
		return true
	}

	return name >= looseNameThreshold && Jaccard(a.SkillSet(), b.SkillSet()) >= skillThreshold
}

// Deduplicate collapses duplicates until no pair is left, so applying it to
// its own output changes nothing. Input order of survivors is preserved.
func Deduplicate(candidates []scoring.CandidateScore, strategy Strategy) []scoring.CandidateScore {
	result := candidates
	for {
		next := pass(result, strategy)
		if len(next) == len(result) {
			return next
		}
		result = next
	}
}

func pass(candidates []scoring.CandidateScore, strategy Strategy) []scoring.CandidateScore {
	unique := make([]scoring.CandidateScore, 0, len(candidates))
	seen := make([]bool, len(candidates))

	for i := range candidates {
		if seen[i] {
			continue
		}

		group := []scoring.CandidateScore{candidates[i]}
		for j := i + 1; j < len(candidates); j++ {
			if !seen[j] && Duplicates(&candidates[i], &candidates[j]) {
				group = append(group, candidates[j])
				seen[j] = true
			}
		}

		unique = append(unique, resolve(group, strategy))
	}

	return unique
}

func resolve(group []scoring.CandidateScore, strategy Strategy) scoring.CandidateScore {
	switch strategy {
	case KeepFirst:
		return group[0]
	case Merge:
		return MergeRecords(group)
	default:
		return group[best(group)]
	}
}

// best returns the index of the highest score, the first one on ties.
func best(group []scoring.CandidateScore) int {
	idx := 0
	for i, c := range group {
		if c.Score > group[idx].Score {
			idx = i
		}
	}
	return idx
}

// MergeRecords folds duplicates into the first record: skills and risk flags
// are united, score and activity take the maximum, and the sources are listed
// in MergedFrom. A single record is returned unchanged.
func MergeRecords(group []scoring.CandidateScore) scoring.CandidateScore {
	if len(group) == 1 {
		return group[0]
	}

	merged := group[0]
	top := group[best(group)]
	merged.Score = top.Score
	merged.Decision = top.Decision
	merged.Reasons = top.Reasons
	merged.Blocked = top.Blocked

	merged.MatchedSkills = nil
	merged.TopLanguages = nil
	merged.RiskFlags = nil
	merged.MergedFrom = nil
	for _, c := range group {
		merged.ActivityScore = max(merged.ActivityScore, c.ActivityScore)
		merged.MatchedSkills = union(merged.MatchedSkills, c.MatchedSkills)
		merged.TopLanguages = union(merged.TopLanguages, c.TopLanguages)
		merged.RiskFlags = union(merged.RiskFlags, c.RiskFlags)
		merged.MergedFrom = union(merged.MergedFrom, sources(c))
	}

	return merged
}

func sources(c scoring.CandidateScore) []string {
	if len(c.MergedFrom) > 0 {
		return c.MergedFrom
	}
	return []string{c.Username}
}

func union(into, add []string) []string {
	for _, s := range add {
		if !slices.Contains(into, s) {
			into = append(into, s)
		}
	}
	return into
}
