package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/hh-screener/internal/evidence"
	"github.com/spigell/hh-screener/internal/gate"
	"github.com/spigell/hh-screener/internal/matching"
	"github.com/spigell/hh-screener/internal/requirements"
	"github.com/spigell/hh-screener/internal/skills"
)

const (
	// matchedScore is the evidence score a skill needs to count as matched.
	matchedScore = 0.5

	maxReasons     = 3
	maxRiskPenalty = 60
	riskFlagCost   = 15
	resumeWeight   = 20

	maxRepoScore     = 40
	repoPoints       = 5
	maxLanguageScore = 30
	languagePoints   = 5

	popularStars = 50
)

// Scorer evaluates candidates against one requirement set. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	role         string
	requirements *requirements.Set
	gate         gate.Config
}

func NewScorer(role string, set *requirements.Set, gateCfg gate.Config) *Scorer {
	return &Scorer{role: role, requirements: set, gate: gateCfg}
}

// Score evaluates one candidate.
func (s *Scorer) Score(c *evidence.Candidate) CandidateScore {
	required := s.requirements.All()
	matched := c.SkillsAbove(matchedScore)
	match := matching.Calculate(required, matched)

	result := CandidateScore{
		Username:      c.Username,
		MatchScore:    MatchScore(c.SkillScores),
		ActivityScore: ActivityScore(c.ReposAnalyzed, len(c.TopLanguages), c.Activity),
		RiskPenalty:   RiskPenalty(len(c.RiskFlags)),
		SkillGaps:     c.SkillsBelow(matchedScore),
		MatchedSkills: matched,
		RiskFlags:     append([]string(nil), c.RiskFlags...),
		ReposAnalyzed: c.ReposAnalyzed,
		TopLanguages:  c.TopLanguages,
		Evidence:      c.Evidence(),
		Activity:      c.Activity,
		ResumeMatch:   resumeMatch(c, required),
		Network:       c.Network,
	}
	if result.ResumeMatch != nil {
		result.ResumeBoost = truncate(resumeWeight * *result.ResumeMatch)
	}

	result.Score = clamp(result.MatchScore + result.ActivityScore + result.ResumeBoost - result.RiskPenalty)
	result.Decision = Decide(result.Score)
	result.Reasons = reasons(match, c.Activity)

	result.Gate = s.gate.Check(c.Scores(), s.requirements.Mandatory)
	result.Score, result.Reasons, result.Blocked = s.gate.Apply(result.Gate, result.Score, result.Reasons)
	if result.Blocked {
		result.Decision = DecisionNo
		result.RiskFlags = append(result.RiskFlags, result.Gate.RiskFlag())
		result.RejectionReason = result.Gate.RejectionReason(s.role, matched)
	}

	result.Requirements = matching.RequirementCoverage(matched, s.requirements.Mandatory, s.requirements.Preferred)
	if req := result.Requirements; req.Mandatory < 100 {
		note := fmt.Sprintf("Mandatory skills coverage: %g%% (missing: %s)",
			req.Mandatory, strings.Join(req.MandatoryMissing[:min(2, len(req.MandatoryMissing))], ", "))
		result.Reasons = append([]string{note}, result.Reasons...)
	}
	if len(result.Reasons) > maxReasons {
		result.Reasons = result.Reasons[:maxReasons]
	}

	result.Score = clamp(result.Score)
	return result
}

// MatchScore is the mean evidence score scaled to [0,100].
func MatchScore(scores []evidence.SkillScore) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s.Score
	}
	return clamp(truncate(sum / float64(len(scores)) * 100))
}

// ActivityScore rewards repository count, language diversity, recent pushes
// and popularity. Without analyzed repositories it is 0.
func ActivityScore(repos, languages int, activity *evidence.Activity) int {
	if repos <= 0 {
		return 0
	}

	score := min(maxRepoScore, repoPoints*repos) + min(maxLanguageScore, languagePoints*languages)

	if activity != nil {
		if days := activity.DaysSinceLastPush; days != nil {
			switch {
			case *days <= 30:
				score += 20
			case *days <= 90:
				score += 10
			}
		}

		switch {
		case activity.TotalStars > 100:
			score += 10
		case activity.TotalStars > 20:
			score += 5
		}
	}

	return min(100, score)
}

// RiskPenalty costs every risk flag, up to a limit.
func RiskPenalty(flags int) int {
	return min(maxRiskPenalty, riskFlagCost*flags)
}

func resumeMatch(c *evidence.Candidate, required []string) *float64 {
	if c.ResumeMatch != nil {
		v := math.Min(1, math.Max(0, *c.ResumeMatch))
		return &v
	}
	if strings.TrimSpace(c.ResumeText) == "" {
		return nil
	}
	v := skills.MatchKeywords(c.ResumeText, required).Ratio
	return &v
}

func reasons(match matching.Result, activity *evidence.Activity) []string {
	var out []string

	switch {
	case match.Coverage >= 70:
		out = append(out, fmt.Sprintf("Excellent skill coverage: %g%%", match.Coverage))
	case match.Coverage >= 50:
		out = append(out, fmt.Sprintf("Good skill coverage: %g%%", match.Coverage))
	default:
		out = append(out, fmt.Sprintf("Low skill coverage: %g%%", match.Coverage))
	}

	if activity != nil {
		if days := activity.DaysSinceLastPush; days != nil {
			switch {
			case *days <= 30:
				out = append(out, "Very active: recent commits")
			case *days <= 90:
				out = append(out, "Active: commits within 90 days")
			default:
				out = append(out, "Inactive: no recent commits")
			}
		}
		if activity.TotalStars > popularStars {
			out = append(out, fmt.Sprintf("Popular repos: %d stars", activity.TotalStars))
		}
	}

	if len(match.Gaps) > 0 {
		out = append(out, match.Gaps[0])
	}

	return out
}

// truncate drops the fractional part, tolerating binary float noise such as
// 0.29*100 = 28.999999999999996.
func truncate(v float64) int {
	return int(math.Floor(v + 1e-9))
}

func clamp(v int) int {
	return max(0, min(100, v))
}
