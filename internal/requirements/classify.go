// Package requirements turns requested skills and market signals into a
// tiered requirement model.
package requirements

import (
	"slices"
	"sort"

	"github.com/spigell/hh-screener/internal/market"
	"github.com/spigell/hh-screener/internal/skills"
)

// Tier is the requirement level of a skill.
type Tier string

const (
	TierMandatory Tier = "mandatory"
	TierPreferred Tier = "preferred"
	TierOptional  Tier = "optional"
)

const (
	DefaultMandatoryThreshold = 0.7
	DefaultPreferredThreshold = 0.3
)

// Thresholds are the importance cut-offs for the mandatory and preferred tiers.
type Thresholds struct {
	Mandatory float64 `json:"mandatory" yaml:"mandatory"`
	Preferred float64 `json:"preferred" yaml:"preferred"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{Mandatory: DefaultMandatoryThreshold, Preferred: DefaultPreferredThreshold}
}

// Tiers are three disjoint lists of canonical skill names.
type Tiers struct {
	Mandatory []string `json:"mandatory" yaml:"mandatory"`
	Preferred []string `json:"preferred" yaml:"preferred"`
	Optional  []string `json:"optional" yaml:"optional"`
}

// Input describes what to classify.
type Input struct {
	Role string
	// Skills are classified by market importance alone.
	Skills []string
	// EmployerMandatory, when set, becomes the mandatory tier verbatim.
	EmployerMandatory []string
	// EmployerPreferred skills are always at least preferred.
	EmployerPreferred []string
	// Thresholds default to DefaultThresholds when left zero.
	Thresholds Thresholds
}

// Set is the classified requirement model for one evaluation.
type Set struct {
	Tiers             `yaml:",inline"`
	Importance        map[string]float64  `json:"importance_scores" yaml:"importance_scores"`
	Role              market.RoleContext  `json:"role_context" yaml:"role_context"`
	Clusters          map[string][]string `json:"skill_clusters" yaml:"skill_clusters"`
	Listings          int                 `json:"vacancies_analyzed" yaml:"vacancies_analyzed"`
	Thresholds        Thresholds          `json:"thresholds" yaml:"thresholds"`
	OverrideApplied   bool                `json:"employer_override_applied" yaml:"employer_override_applied"`
	EmployerMandatory []string            `json:"-" yaml:"-"`
	EmployerPreferred []string            `json:"-" yaml:"-"`
}

// Classify builds the requirement set. Every skill of the input ends up in
// exactly one tier.
func Classify(snapshot *market.Snapshot, in Input) *Set {
	mandatory := normalizeOrdered(in.EmployerMandatory)
	preferred := normalizeOrdered(in.EmployerPreferred)
	all := skills.NormalizeBatch(append(append(append([]string{}, in.Skills...), mandatory...), preferred...))
	th := clampThresholds(in.Thresholds)

	role := market.AnalyzeRole(in.Role, all)
	importance := market.AdjustByContext(market.Importance(snapshot, all), role)

	tiers := ByThreshold(importance, th)
	tiers, applied := Override(tiers, mandatory, preferred)

	return &Set{
		Tiers:             tiers,
		Importance:        importance,
		Role:              role,
		Clusters:          market.CoOccurrence(snapshot, all),
		Listings:          snapshot.Len(),
		Thresholds:        th,
		OverrideApplied:   applied,
		EmployerMandatory: mandatory,
		EmployerPreferred: preferred,
	}
}

// ByThreshold buckets skills by importance. Each tier is ordered by
// importance, most important first.
func ByThreshold(importance map[string]float64, th Thresholds) Tiers {
	names := make([]string, 0, len(importance))
	for name := range importance {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := importance[names[i]], importance[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})

	var tiers Tiers
	for _, name := range names {
		switch v := importance[name]; {
		case v >= th.Mandatory:
			tiers.Mandatory = append(tiers.Mandatory, name)
		case v >= th.Preferred:
			tiers.Preferred = append(tiers.Preferred, name)
		default:
			tiers.Optional = append(tiers.Optional, name)
		}
	}

	return tiers
}

// Override merges employer lists into market-derived tiers in three ordered
// steps: replace the mandatory tier, subtract it from the other tiers, add
// employer-preferred skills. Market-mandatory skills displaced by the
// employer list are kept as preferred. The second value reports whether any
// employer list was applied.
func Override(t Tiers, mandatory, preferred []string) (Tiers, bool) {
	if len(mandatory) == 0 && len(preferred) == 0 {
		return t, false
	}

	if len(mandatory) > 0 {
		displaced := subtract(t.Mandatory, mandatory)
		t.Mandatory = append([]string(nil), mandatory...)
		t.Preferred = append(displaced, t.Preferred...)
	}

	t.Preferred = subtract(t.Preferred, t.Mandatory)
	t.Optional = subtract(t.Optional, t.Mandatory)

	for _, name := range preferred {
		if slices.Contains(t.Mandatory, name) || slices.Contains(t.Preferred, name) {
			continue
		}
		t.Preferred = append(t.Preferred, name)
		t.Optional = subtract(t.Optional, []string{name})
	}

	return t, true
}

// Tier returns the tier of a skill and false when the skill is unknown.
func (s *Set) Tier(skill string) (Tier, bool) {
	switch {
	case slices.Contains(s.Mandatory, skill):
		return TierMandatory, true
	case slices.Contains(s.Preferred, skill):
		return TierPreferred, true
	case slices.Contains(s.Optional, skill):
		return TierOptional, true
	default:
		return "", false
	}
}

// All returns every classified skill, mandatory first.
func (s *Set) All() []string {
	all := make([]string, 0, len(s.Mandatory)+len(s.Preferred)+len(s.Optional))
	all = append(all, s.Mandatory...)
	all = append(all, s.Preferred...)
	return append(all, s.Optional...)
}

func clampThresholds(th Thresholds) Thresholds {
	if th == (Thresholds{}) {
		return DefaultThresholds()
	}
	th.Mandatory = min(1, max(0, th.Mandatory))
	th.Preferred = min(1, max(0, th.Preferred))
	return th
}

// normalizeOrdered canonicalizes names keeping the first occurrence order.
func normalizeOrdered(names []string) []string {
	var result []string
	for _, n := range names {
		name := skills.Normalize(n)
		if name != "" && !slices.Contains(result, name) {
			result = append(result, name)
		}
	}
	return result
}

func subtract(list, remove []string) []string {
	var result []string
	for _, name := range list {
		if !slices.Contains(remove, name) {
			result = append(result, name)
		}
	}
	return result
}
