package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	tests := []struct {
		name      string
		scores    map[string]float64
		mandatory []string
		passed    bool
		coverage  float64
		missing   []string
	}{
		{
			name:      "half covered fails",
			scores:    map[string]float64{"python": 0.9, "docker": 0.3},
			mandatory: []string{"python", "docker"},
			passed:    false,
			coverage:  0.5,
			missing:   []string{"docker"},
		},
		{
			name:      "exact threshold passes",
			scores:    map[string]float64{"go": 0.5, "docker": 0.5, "postgresql": 0.6, "redis": 0.7, "git": 0.1},
			mandatory: []string{"go", "docker", "postgres", "redis", "git"},
			passed:    true,
			coverage:  0.8,
			missing:   []string{"git"},
		},
		{
			name:      "empty mandatory passes",
			scores:    nil,
			mandatory: nil,
			passed:    true,
			coverage:  1,
		},
		{
			name:      "no evidence fails",
			scores:    nil,
			mandatory: []string{"go"},
			passed:    false,
			coverage:  0,
			missing:   []string{"go"},
		},
		{
			name:      "aliases count once",
			scores:    map[string]float64{"go": 0.8},
			mandatory: []string{"go", "golang"},
			passed:    true,
			coverage:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := cfg.Check(tt.scores, tt.mandatory)
			assert.Equal(t, tt.passed, o.Passed)
			assert.InDelta(t, tt.coverage, o.Coverage, 1e-9)
			assert.Equal(t, tt.missing, o.Missing)
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	failed := DefaultConfig().Check(map[string]float64{"python": 0.9, "docker": 0.3}, []string{"python", "docker"})

	score, reasons, blocked := DefaultConfig().Apply(failed, 85, []string{"Excellent skill coverage"})
	assert.True(t, blocked)
	assert.Equal(t, 30, score)
	assert.Equal(t, []string{
		"BLOCKING: Missing mandatory skills (1/2): docker",
		"Mandatory coverage only 50% (required 80%+)",
		"Cannot proceed without: docker",
	}, reasons)

	score, _, blocked = DefaultConfig().Apply(failed, 12, nil)
	assert.True(t, blocked)
	assert.Equal(t, 12, score)

	minScore, minCoverage := 0.5, 0.8
	off := Config{Policy: PolicyOff, MinScore: &minScore, MinCoverage: &minCoverage}
	score, reasons, blocked = off.Apply(failed, 85, []string{"kept"})
	assert.False(t, blocked)
	assert.Equal(t, 85, score)
	assert.Equal(t, []string{"kept"}, reasons)
}

func TestOutcomeTexts(t *testing.T) {
	t.Parallel()

	o := Outcome{Missing: []string{"go", "docker", "redis"}, Total: 4}
	assert.Equal(t, "mandatory_skills_missing: go, docker", o.RiskFlag())
	assert.Equal(t,
		"Candidate shows experience in python, but lacks required expertise in go, docker, redis which are mandatory for the Backend role. "+
			"Recommend screening for roles that match their skill set better.",
		o.RejectionReason("Backend", []string{"python"}),
	)
	assert.Contains(t, o.RejectionReason("Backend", nil), "limited experience")
	assert.Empty(t, Outcome{}.RejectionReason("Backend", nil))
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := Config{Policy: "STRICT"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultConfig(), cfg)

	cfg = Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, PolicyStrict, cfg.Policy)

	cfg = Config{Policy: "soft"}
	require.Error(t, cfg.Validate())

	tooHigh := 1.5
	cfg = Config{MinCoverage: &tooHigh}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MinCoverage")
}

func TestConfigExplicitZeroMinScore(t *testing.T) {
	t.Parallel()

	zero := 0.0
	cfg := Config{MinScore: &zero}
	require.NoError(t, cfg.Validate())
	require.NotNil(t, cfg.MinScore)
	assert.Zero(t, *cfg.MinScore)
	assert.Equal(t, DefaultMinCoverage, *cfg.MinCoverage)

	o := cfg.Check(map[string]float64{"python": 0.9}, []string{"python", "docker"})
	assert.Equal(t, []string{"python", "docker"}, o.Covered)
	assert.True(t, o.Passed)
}
