// Package recommend turns a batch of scored candidates into hiring advice.
package recommend

import (
	"fmt"
	"slices"

	"github.com/spigell/hh-screener/internal/market"
	"github.com/spigell/hh-screener/internal/scoring"
)

const (
	ShortlistSize  = 10
	InterviewGo    = 5
	InterviewHold  = 2
	TrainLimit     = 5
	TrainMinCount  = 2
	InactiveDays   = 90
	inactiveShare  = 0.5
	reasonsPerItem = 3
	noReposFlag    = "no_repos"
)

type ShortlistItem struct {
	Username string           `json:"username" yaml:"username"`
	Score    int              `json:"score" yaml:"score"`
	Decision scoring.Decision `json:"decision" yaml:"decision"`
	Reasons  []string         `json:"top_reasons" yaml:"top_reasons"`
}

// Recommendations is the batch level advice attached to a report.
type Recommendations struct {
	Shortlist     []ShortlistItem `json:"shortlist" yaml:"shortlist"`
	InterviewNext []string        `json:"interview_next" yaml:"interview_next"`
	SkillsToTrain []string        `json:"skills_to_train" yaml:"skills_to_train"`
	Risks         []string        `json:"risks" yaml:"risks"`
	Offer         *market.Offer   `json:"competitive_offer_range,omitempty" yaml:"competitive_offer_range,omitempty"`
}

// Build must run after every candidate is scored. Insights may be nil.
func Build(candidates []scoring.CandidateScore, insights *market.Insights) *Recommendations {
	ranked := Rank(candidates)

	return &Recommendations{
		Shortlist:     shortlist(ranked),
		InterviewNext: interviewQueue(ranked),
		SkillsToTrain: skillsToTrain(candidates),
		Risks:         risks(candidates, insights),
		Offer:         offer(insights),
	}
}

// Rank orders candidates by score descending. Equal scores keep input order.
func Rank(candidates []scoring.CandidateScore) []scoring.CandidateScore {
	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b scoring.CandidateScore) int {
		return b.Score - a.Score
	})
	return ranked
}

func shortlist(ranked []scoring.CandidateScore) []ShortlistItem {
	out := make([]ShortlistItem, 0, min(len(ranked), ShortlistSize))
	for _, c := range ranked[:min(len(ranked), ShortlistSize)] {
		out = append(out, ShortlistItem{
			Username: c.Username,
			Score:    c.Score,
			Decision: c.Decision,
			Reasons:  c.Reasons[:min(len(c.Reasons), reasonsPerItem)],
		})
	}
	return out
}

func interviewQueue(ranked []scoring.CandidateScore) []string {
	var goes, holds []string
	for _, c := range ranked {
		switch {
		case c.Decision == scoring.DecisionGo && len(goes) < InterviewGo:
			goes = append(goes, c.Username)
		case c.Decision == scoring.DecisionHold && len(holds) < InterviewHold:
			holds = append(holds, c.Username)
		}
	}
	return append(goes, holds...)
}

func skillsToTrain(candidates []scoring.CandidateScore) []string {
	counts := make(map[string]int)
	var order []string
	for _, c := range candidates {
		for _, gap := range c.SkillGaps {
			if counts[gap] == 0 {
				order = append(order, gap)
			}
			counts[gap]++
		}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})

	out := []string{}
	for _, gap := range order {
		if counts[gap] < TrainMinCount || len(out) == TrainLimit {
			break
		}
		out = append(out, gap)
	}
	return out
}

func risks(candidates []scoring.CandidateScore, insights *market.Insights) []string {
	out := []string{}

	inactive, noRepos := 0, 0
	for i := range candidates {
		if candidates[i].Inactive(InactiveDays) {
			inactive++
		}
		if slices.Contains(candidates[i].RiskFlags, noReposFlag) {
			noRepos++
		}
	}

	if float64(inactive) > float64(len(candidates))*inactiveShare {
		out = append(out, fmt.Sprintf("High inactivity: %d/%d candidates inactive >%d days", inactive, len(candidates), InactiveDays))
	}
	if noRepos > 0 {
		out = append(out, fmt.Sprintf("%d candidates with limited GitHub presence", noRepos))
	}
	if insights != nil && insights.SupplyDemand.HighPressure() {
		out = append(out, "High market demand - expect competitive offers")
	}

	return out
}

func offer(insights *market.Insights) *market.Offer {
	if insights == nil || !insights.SupplyDemand.HighPressure() {
		return nil
	}
	return insights.Offer
}
