// Package gate enforces the mandatory-skill rule on candidate evidence.
package gate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/hh-screener/internal/skills"
)

// Policy selects whether a failed gate overrides the candidate decision.
type Policy string

const (
	// PolicyStrict blocks failing candidates: decision no, score capped.
	PolicyStrict Policy = "strict"
	// PolicyOff reports the gate outcome without touching score or decision.
	PolicyOff Policy = "off"
)

const (
	DefaultMinScore    = 0.5
	DefaultMinCoverage = 0.8
	// MaxBlockedScore caps the score of a blocked candidate.
	MaxBlockedScore = 30
)

// Config holds the gate settings. Nil thresholds mean the defaults, so an
// explicit zero stays configurable.
type Config struct {
	Policy      Policy   `mapstructure:"policy" json:"policy" yaml:"policy" validate:"omitempty,oneof=strict off"`
	MinScore    *float64 `mapstructure:"min-score" json:"min_score" yaml:"min_score" validate:"omitempty,gte=0,lte=1"`
	MinCoverage *float64 `mapstructure:"min-coverage" json:"min_coverage" yaml:"min_coverage" validate:"omitempty,gte=0,lte=1"`
}

func DefaultConfig() Config {
	minScore, minCoverage := DefaultMinScore, DefaultMinCoverage
	return Config{
		Policy:      PolicyStrict,
		MinScore:    &minScore,
		MinCoverage: &minCoverage,
	}
}

// Validate checks the configuration and fills unset values with defaults.
func (c *Config) Validate() error {
	c.Policy = Policy(strings.ToLower(strings.TrimSpace(string(c.Policy))))

	err := validator.New().Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ve := verrs[0]
		return fmt.Errorf("gate %s: failed on %q rule with value %v", ve.Field(), ve.Tag(), ve.Value())
	}
	if err != nil {
		return err
	}

	if c.Policy == "" {
		c.Policy = PolicyStrict
	}
	if c.MinScore == nil {
		v := DefaultMinScore
		c.MinScore = &v
	}
	if c.MinCoverage == nil {
		v := DefaultMinCoverage
		c.MinCoverage = &v
	}

	return nil
}

func (c Config) minScore() float64 {
	if c.MinScore == nil {
		return DefaultMinScore
	}
	return *c.MinScore
}

func (c Config) minCoverage() float64 {
	if c.MinCoverage == nil {
		return DefaultMinCoverage
	}
	return *c.MinCoverage
}

// Outcome is the result of checking one candidate.
type Outcome struct {
	Passed  bool     `json:"passed" yaml:"passed"`
	Covered []string `json:"covered" yaml:"covered"`
	Missing []string `json:"missing" yaml:"missing"`
	Total   int      `json:"total" yaml:"total"`
	// Coverage is the covered share of mandatory skills in [0,1].
	Coverage float64 `json:"coverage" yaml:"coverage"`
}

// Check counts a mandatory skill as covered only when its evidence score
// reaches the minimal score. An empty mandatory list always passes.
func (c Config) Check(scores map[string]float64, mandatory []string) Outcome {
	var o Outcome
	seen := make(map[string]bool)
	for _, raw := range mandatory {
		name := skills.Normalize(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		o.Total++

		if scores[name] >= c.minScore() {
			o.Covered = append(o.Covered, name)
		} else {
			o.Missing = append(o.Missing, name)
		}
	}

	if o.Total == 0 {
		o.Coverage = 1
		o.Passed = true
		return o
	}

	o.Coverage = float64(len(o.Covered)) / float64(o.Total)
	o.Passed = o.Coverage >= c.minCoverage()
	return o
}

// Apply enforces a failed outcome under the strict policy: the score is
// capped and blocking reasons replace the given ones. The last value reports
// whether the candidate was blocked.
func (c Config) Apply(o Outcome, score int, reasons []string) (int, []string, bool) {
	if o.Passed || c.Policy == PolicyOff {
		return score, reasons, false
	}
	return min(score, MaxBlockedScore), o.BlockingReasons(c.minCoverage()), true
}

// BlockingReasons explains why a candidate failed the gate.
func (o Outcome) BlockingReasons(minCoverage float64) []string {
	return []string{
		fmt.Sprintf("BLOCKING: Missing mandatory skills (%d/%d): %s", len(o.Missing), o.Total, list(o.Missing, 3)),
		fmt.Sprintf("Mandatory coverage only %.0f%% (required %.0f%%+)", o.Coverage*100, minCoverage*100),
		fmt.Sprintf("Cannot proceed without: %s", list(o.Missing, 2)),
	}
}

// RiskFlag is attached to blocked candidates.
func (o Outcome) RiskFlag() string {
	return "mandatory_skills_missing: " + list(o.Missing, 2)
}

// RejectionReason is a short note for the hiring manager.
func (o Outcome) RejectionReason(role string, has []string) string {
	if len(o.Missing) == 0 {
		return ""
	}

	experience := "limited experience"
	if len(has) > 0 {
		experience = list(has, 3)
	}

	return fmt.Sprintf(
		"Candidate shows experience in %s, but lacks required expertise in %s which are mandatory for the %s role. "+
			"Recommend screening for roles that match their skill set better.",
		experience, list(o.Missing, 3), role,
	)
}

func list(names []string, n int) string {
	return strings.Join(names[:min(len(names), n)], ", ")
}
