// Package evidence holds the per-candidate signals gathered by external
// analyzers and the helpers to load them.
package evidence

import (
	"strings"

	"github.com/spigell/hh-screener/internal/skills"
)

// SkillScore is the confidence that a candidate has a skill.
type SkillScore struct {
	Skill    string  `json:"skill" yaml:"skill"`
	Score    float64 `json:"score" yaml:"score"`
	Evidence string  `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// Activity holds repository activity metrics.
type Activity struct {
	DaysSinceLastPush *int    `json:"days_since_last_push,omitempty" yaml:"days_since_last_push,omitempty"`
	TotalStars        int     `json:"total_stars" yaml:"total_stars"`
	TotalForks        int     `json:"total_forks" yaml:"total_forks"`
	Diversity         float64 `json:"diversity_score,omitempty" yaml:"diversity_score,omitempty"`
}

// InactiveFor reports whether the last push is older than days.
// Unknown activity is not considered inactive.
func (a *Activity) InactiveFor(days int) bool {
	return a != nil && a.DaysSinceLastPush != nil && *a.DaysSinceLastPush > days
}

// Network is professional network profile data.
type Network struct {
	URL             string   `json:"url,omitempty" yaml:"url,omitempty"`
	ProfileStrength int      `json:"profile_strength,omitempty" yaml:"profile_strength,omitempty"`
	Connections     int      `json:"connections,omitempty" yaml:"connections,omitempty"`
	Endorsements    []string `json:"endorsements,omitempty" yaml:"endorsements,omitempty"`
}

// Candidate is everything known about one candidate before scoring.
type Candidate struct {
	Username      string       `json:"username" yaml:"username"`
	SkillScores   []SkillScore `json:"skill_scores" yaml:"skill_scores"`
	ReposAnalyzed int          `json:"repos_analyzed" yaml:"repos_analyzed"`
	TopLanguages  []string     `json:"top_languages" yaml:"top_languages"`
	RiskFlags     []string     `json:"risk_flags" yaml:"risk_flags"`
	Activity      *Activity    `json:"activity_metrics,omitempty" yaml:"activity_metrics,omitempty"`
	ResumeText    string       `json:"resume_text,omitempty" yaml:"resume_text,omitempty"`
	// ResumeMatch is a precomputed resume keyword match ratio in [0,1].
	// When nil it is derived from ResumeText.
	ResumeMatch *float64 `json:"resume_match_score,omitempty" yaml:"resume_match_score,omitempty"`
	Network     *Network `json:"network_profile,omitempty" yaml:"network_profile,omitempty"`
}

// Scores returns the best evidence score per canonical skill name.
func (c *Candidate) Scores() map[string]float64 {
	scores := make(map[string]float64, len(c.SkillScores))
	for _, s := range c.SkillScores {
		name := skills.Normalize(s.Skill)
		if name == "" {
			continue
		}
		if v, ok := scores[name]; !ok || s.Score > v {
			scores[name] = s.Score
		}
	}
	return scores
}

// SkillsAbove returns the canonical names of skills scored at least min, in
// evidence order.
func (c *Candidate) SkillsAbove(min float64) []string {
	var result []string
	seen := make(map[string]bool)
	for _, s := range c.SkillScores {
		name := skills.Normalize(s.Skill)
		if name == "" || seen[name] || s.Score < min {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

// SkillsBelow returns the canonical names of skills scored under max, in
// evidence order.
func (c *Candidate) SkillsBelow(max float64) []string {
	above := make(map[string]bool)
	for _, name := range c.SkillsAbove(max) {
		above[name] = true
	}

	var result []string
	seen := make(map[string]bool)
	for _, s := range c.SkillScores {
		name := skills.Normalize(s.Skill)
		if name == "" || seen[name] || above[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

// Evidence maps canonical skill names to the evidence text.
func (c *Candidate) Evidence() map[string]string {
	result := make(map[string]string)
	for _, s := range c.SkillScores {
		name := skills.Normalize(s.Skill)
		if name != "" && strings.TrimSpace(s.Evidence) != "" {
			result[name] = s.Evidence
		}
	}
	return result
}
