package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/hh-screener/internal/evaluation"
	"github.com/spigell/hh-screener/internal/evidence"
	"github.com/spigell/hh-screener/internal/scoring"
)

func TestExcludeRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")

	excluded, err := loadExcluded(path)
	require.NoError(t, err)
	excluded.Add("old", "manual")

	r := &evaluation.Report{Candidates: []scoring.CandidateScore{
		{Username: "good", Score: 80, Decision: scoring.DecisionGo},
		{Username: "blocked", Score: 30, Decision: scoring.DecisionNo, RejectionReason: "Missing go"},
		{Username: "low", Score: 12, Decision: scoring.DecisionNo, MergedFrom: []string{"low", "low2"}},
	}}

	require.NoError(t, excludeRejected(zap.NewNop(), path, r, excluded))

	reloaded, err := evidence.LoadExcluded(path)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.Len())
	assert.True(t, reloaded.Contains("blocked"))
	assert.True(t, reloaded.Contains("low2"))
	assert.False(t, reloaded.Contains("good"))
	assert.Equal(t, "Missing go", reloaded.Items[1].Reason)
	assert.Equal(t, "score 12", reloaded.Items[2].Reason)

	require.Error(t, excludeRejected(zap.NewNop(), "", r, excluded))
}

func TestActions(t *testing.T) {
	items := actions(&Config{})
	assert.NotContains(t, items, PromptExcludeRejected)
	assert.Equal(t, PromptExit, items[len(items)-1])

	items = actions(&Config{ExcludeFile: "exclude.json"})
	assert.Contains(t, items, PromptExcludeRejected)
}

func TestHandleActionExit(t *testing.T) {
	err := handleAction(PromptExit, zap.NewNop(), &Config{}, &evaluation.Report{}, "json", nil)
	require.ErrorIs(t, err, errExit)

	err = handleAction("unknown", zap.NewNop(), &Config{}, &evaluation.Report{}, "json", nil)
	require.Error(t, err)
}
