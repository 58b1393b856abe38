package evidence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateSkills(t *testing.T) {
	t.Parallel()

	c := &Candidate{SkillScores: []SkillScore{
		{Skill: "Golang", Score: 0.9, Evidence: "5 repos"},
		{Skill: "go", Score: 0.4},
		{Skill: "Docker", Score: 0.3},
		{Skill: "!!", Score: 1},
		{Skill: "postgres", Score: 0.5},
	}}

	assert.Equal(t, map[string]float64{"go": 0.9, "docker": 0.3, "postgresql": 0.5}, c.Scores())
	assert.Equal(t, []string{"go", "postgresql"}, c.SkillsAbove(0.5))
	assert.Equal(t, []string{"docker"}, c.SkillsBelow(0.5))
	assert.Equal(t, map[string]string{"go": "5 repos"}, c.Evidence())
}

func TestActivityInactiveFor(t *testing.T) {
	t.Parallel()

	days := 120
	assert.True(t, (&Activity{DaysSinceLastPush: &days}).InactiveFor(90))
	assert.False(t, (&Activity{}).InactiveFor(90))

	var missing *Activity
	assert.False(t, missing.InactiveFor(90))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	c, err := Decode(map[string]any{
		"username":       " jdoe ",
		"repos_analyzed": 12.0,
		"skill_scores":   []any{map[string]any{"skill": "python", "score": "0.8"}},
		"top_languages":  []any{"Python", "Go"},
		"activity_metrics": map[string]any{
			"days_since_last_push": 10.0,
			"total_stars":          150.0,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "jdoe", c.Username)
	assert.Equal(t, 12, c.ReposAnalyzed)
	assert.Equal(t, 0.8, c.SkillScores[0].Score)
	require.NotNil(t, c.Activity)
	require.NotNil(t, c.Activity.DaysSinceLastPush)
	assert.Equal(t, 10, *c.Activity.DaysSinceLastPush)
	assert.Equal(t, 150, c.Activity.TotalStars)
	assert.Nil(t, c.ResumeMatch)
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alice.json"), []byte(`{"repos_analyzed": 3}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "batch.json"), []byte(`[{"username":"bob"},{}]`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0o600))

	candidates, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "alice", candidates[0].Username)
	assert.Equal(t, 3, candidates[0].ReposAnalyzed)
	assert.Equal(t, "bob", candidates[1].Username)
	assert.Equal(t, "batch-2", candidates[2].Username)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`"text"`), 0o600))
	_, err = LoadDir(dir)
	require.Error(t, err)
}

func TestExcludedCandidates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exclude.json")

	excluded, err := LoadExcluded(path)
	require.NoError(t, err)
	assert.Zero(t, excluded.Len())

	assert.True(t, excluded.Add("jdoe", "rejected"))
	assert.False(t, excluded.Add("JDoe", "again"))
	require.NoError(t, excluded.ToFile(path))

	loaded, err := LoadExcluded(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.True(t, loaded.Contains("JDOE"))
	assert.Equal(t, "rejected", loaded.Items[0].Reason)
}
