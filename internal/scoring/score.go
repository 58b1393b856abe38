// Package scoring combines candidate evidence into a single score and
// hiring decision.
package scoring

import (
	"slices"

	"github.com/spigell/hh-screener/internal/evidence"
	"github.com/spigell/hh-screener/internal/gate"
	"github.com/spigell/hh-screener/internal/matching"
)

// Decision is the hiring recommendation for a candidate.
type Decision string

const (
	DecisionGo   Decision = "go"
	DecisionHold Decision = "hold"
	DecisionNo   Decision = "no"
)

const (
	goScore   = 70
	holdScore = 45
)

// Decide maps a final score to a decision.
func Decide(score int) Decision {
	switch {
	case score >= goScore:
		return DecisionGo
	case score >= holdScore:
		return DecisionHold
	default:
		return DecisionNo
	}
}

// CandidateScore is the evaluation record of one candidate.
type CandidateScore struct {
	Username        string             `json:"username" yaml:"username"`
	Score           int                `json:"score" yaml:"score"`
	Decision        Decision           `json:"decision" yaml:"decision"`
	Reasons         []string           `json:"decision_reasons" yaml:"decision_reasons"`
	MatchScore      int                `json:"match_score" yaml:"match_score"`
	ActivityScore   int                `json:"activity_score" yaml:"activity_score"`
	RiskPenalty     int                `json:"risk_penalty" yaml:"risk_penalty"`
	ResumeBoost     int                `json:"resume_boost" yaml:"resume_boost"`
	SkillGaps       []string           `json:"skill_gaps" yaml:"skill_gaps"`
	MatchedSkills   []string           `json:"matched_skills" yaml:"matched_skills"`
	RiskFlags       []string           `json:"risk_flags" yaml:"risk_flags"`
	ReposAnalyzed   int                `json:"repos_analyzed" yaml:"repos_analyzed"`
	TopLanguages    []string           `json:"top_languages" yaml:"top_languages"`
	Evidence        map[string]string  `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Activity        *evidence.Activity `json:"activity_metrics,omitempty" yaml:"activity_metrics,omitempty"`
	ResumeMatch     *float64           `json:"resume_match_score,omitempty" yaml:"resume_match_score,omitempty"`
	Network         *evidence.Network  `json:"network_profile,omitempty" yaml:"network_profile,omitempty"`
	Requirements    matching.Coverage  `json:"requirement_match" yaml:"requirement_match"`
	Gate            gate.Outcome       `json:"mandatory_gate" yaml:"mandatory_gate"`
	Blocked         bool               `json:"blocked" yaml:"blocked"`
	RejectionReason string             `json:"rejection_reason,omitempty" yaml:"rejection_reason,omitempty"`
	MergedFrom      []string           `json:"merged_from,omitempty" yaml:"merged_from,omitempty"`
}

// SkillSet returns the languages and matched skills of the candidate without
// repeats, the basis for duplicate detection.
func (c *CandidateScore) SkillSet() []string {
	var out []string
	for _, s := range append(slices.Clone(c.TopLanguages), c.MatchedSkills...) {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// Inactive reports whether the candidate has not pushed for more than days.
func (c *CandidateScore) Inactive(days int) bool {
	return c.Activity.InactiveFor(days)
}
