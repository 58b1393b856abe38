package requirements

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

const maxPairedSkills = 2

// Explain describes in one sentence why a skill ended up in its tier.
func (s *Set) Explain(skill string) string {
	tier, ok := s.Tier(skill)
	if !ok {
		tier = TierOptional
	}

	reasons := []string{
		fmt.Sprintf("market importance %.0f%% across %d vacancies", s.Importance[skill]*100, s.Listings),
	}

	switch {
	case slices.Contains(s.EmployerMandatory, skill):
		reasons = append(reasons, "required by the employer")
	case slices.Contains(s.EmployerPreferred, skill) && tier == TierPreferred:
		reasons = append(reasons, "listed by the employer as nice to have")
	}

	if slices.Contains(s.Role.TitleSkills, skill) {
		reasons = append(reasons, fmt.Sprintf("explicitly mentioned in job title (%s role)", s.Role.Focus))
	}

	if paired := s.Clusters[skill]; len(paired) > 0 {
		reasons = append(reasons, "commonly paired with "+strings.Join(paired[:min(len(paired), maxPairedSkills)], ", "))
	}

	return fmt.Sprintf("Classified as %s because: %s", strings.ToUpper(string(tier)), strings.Join(reasons, "; "))
}

type AuditSummary struct {
	Mandatory int `json:"mandatory_count" yaml:"mandatory_count"`
	Preferred int `json:"preferred_count" yaml:"preferred_count"`
	Optional  int `json:"optional_count" yaml:"optional_count"`
	Listings  int `json:"vacancies_analyzed" yaml:"vacancies_analyzed"`
}

type AuditEntry struct {
	Skill       string  `json:"skill" yaml:"skill"`
	Importance  float64 `json:"importance_score" yaml:"importance_score"`
	Explanation string  `json:"explanation" yaml:"explanation"`
}

type Methodology struct {
	Description        string   `json:"description" yaml:"description"`
	MandatoryThreshold string   `json:"mandatory_threshold" yaml:"mandatory_threshold"`
	PreferredThreshold string   `json:"preferred_threshold" yaml:"preferred_threshold"`
	Factors            []string `json:"factors" yaml:"factors"`
}

// Audit is the classification report attached to every evaluation.
type Audit struct {
	Summary         AuditSummary `json:"summary" yaml:"summary"`
	Mandatory       []AuditEntry `json:"mandatory_skills" yaml:"mandatory_skills"`
	Preferred       []AuditEntry `json:"preferred_skills" yaml:"preferred_skills"`
	Optional        []string     `json:"optional_skills" yaml:"optional_skills"`
	OverrideApplied bool         `json:"employer_override_applied" yaml:"employer_override_applied"`
	Methodology     Methodology  `json:"methodology" yaml:"methodology"`
}

// Audit explains the whole classification.
func (s *Set) Audit() Audit {
	entries := func(names []string) []AuditEntry {
		result := make([]AuditEntry, 0, len(names))
		for _, name := range names {
			result = append(result, AuditEntry{
				Skill:       name,
				Importance:  s.Importance[name],
				Explanation: s.Explain(name),
			})
		}
		return result
	}

	return Audit{
		Summary: AuditSummary{
			Mandatory: len(s.Mandatory),
			Preferred: len(s.Preferred),
			Optional:  len(s.Optional),
			Listings:  s.Listings,
		},
		Mandatory:       entries(s.Mandatory),
		Preferred:       entries(s.Preferred),
		Optional:        s.Optional,
		OverrideApplied: s.OverrideApplied,
		Methodology: Methodology{
			Description:        "Skills classified by market importance, role context and employer requirements",
			MandatoryThreshold: fmt.Sprintf(">=%s%% importance", percent(s.Thresholds.Mandatory)),
			PreferredThreshold: fmt.Sprintf("%s-%s%% importance", percent(s.Thresholds.Preferred), percent(s.Thresholds.Mandatory)),
			Factors: []string{
				"Frequency in job postings",
				"Mentions in job titles",
				"Co-occurrence with other skills",
				"Role context analysis",
				"Employer override",
			},
		},
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*1000)/10)
}
