package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/hh-screener/internal/scoring"
)

func TestNameSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b   string
		expect float64
	}{
		{a: "JDoe", b: "jdoe", expect: 1},
		{a: "jdoe", b: "jdoe99", expect: 0.8},
		{a: "abcd", b: "bcde", expect: 0.75},
		{a: "alice", b: "bob", expect: 0},
		{a: "", b: "", expect: 0},
		{a: "", b: "bob", expect: 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expect, NameSimilarity(tt.a, tt.b), 1e-9, "%q vs %q", tt.a, tt.b)
	}
}

func TestSequenceRatio(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, SequenceRatio("", ""), 1e-9)
	assert.InDelta(t, 0.0, SequenceRatio("abc", "xyz"), 1e-9)
	// difflib.SequenceMatcher(None, "ivanov", "ivanova").ratio()
	assert.InDelta(t, 12.0/13.0, SequenceRatio("ivanov", "ivanova"), 1e-9)
	// matches "ab" and "d"
	assert.InDelta(t, 6.0/8.0, SequenceRatio("abxd", "abyd"), 1e-9)
	// "ив" is one block of two runes
	assert.InDelta(t, 4.0/6.0, SequenceRatio("прив", "ив"), 1e-9)
	assert.InDelta(t, 8.0/11.0, SequenceRatio("jdoe", "johndoe"), 1e-9)
	assert.InDelta(t, 10.0/18.0, SequenceRatio("alexsmith", "smithalex"), 1e-9)
}

func TestJaccard(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0/3.0, Jaccard([]string{"go", "docker"}, []string{"golang", "redis", "docker"}), 1e-9)
	assert.Zero(t, Jaccard(nil, []string{"go"}))
}

var sharedSkills = []string{"python", "go", "docker", "redis", "postgresql", "kubernetes", "git", "linux", "rest"}

func record(username string, score int, matched ...string) scoring.CandidateScore {
	return scoring.CandidateScore{
		Username:      username,
		Score:         score,
		Decision:      scoring.Decide(score),
		MatchedSkills: matched,
	}
}

func TestDeduplicateKeepBestScore(t *testing.T) {
	t.Parallel()

	jdoe := record("jdoe", 55, append(append([]string{}, sharedSkills...), "graphql")...)
	jdoe99 := record("jdoe99", 80, sharedSkills...)
	other := record("alice", 60, "react")

	require.InDelta(t, 0.9, Jaccard(jdoe.MatchedSkills, jdoe99.MatchedSkills), 1e-9)
	require.True(t, Duplicates(&jdoe, &jdoe99))

	out := Deduplicate([]scoring.CandidateScore{jdoe, other, jdoe99}, KeepBestScore)
	require.Len(t, out, 2)
	assert.Equal(t, "jdoe99", out[0].Username)
	assert.Equal(t, 80, out[0].Score)
	assert.Equal(t, "alice", out[1].Username)
}

func TestDeduplicateStrategies(t *testing.T) {
	t.Parallel()

	a := record("jdoe", 40, "go", "docker")
	a.TopLanguages = []string{"go"}
	a.RiskFlags = []string{"no_tests"}
	a.ActivityScore = 70
	b := record("JDOE", 75, "go", "redis")
	b.RiskFlags = []string{"no_tests", "forks_only"}
	b.ActivityScore = 20

	first := Deduplicate([]scoring.CandidateScore{a, b}, KeepFirst)
	require.Len(t, first, 1)
	assert.Equal(t, 40, first[0].Score)

	merged := Deduplicate([]scoring.CandidateScore{a, b}, Merge)
	require.Len(t, merged, 1)
	m := merged[0]
	assert.Equal(t, "jdoe", m.Username)
	assert.Equal(t, 75, m.Score)
	assert.Equal(t, scoring.DecisionGo, m.Decision)
	assert.Equal(t, 70, m.ActivityScore)
	assert.Equal(t, []string{"go", "docker", "redis"}, m.MatchedSkills)
	assert.Equal(t, []string{"no_tests", "forks_only"}, m.RiskFlags)
	assert.Equal(t, []string{"jdoe", "JDOE"}, m.MergedFrom)

	assert.Equal(t, []string{"go", "docker"}, a.MatchedSkills, "inputs must not change")
}

func TestDeduplicateIsIdempotent(t *testing.T) {
	t.Parallel()

	input := []scoring.CandidateScore{
		record("anna", 50, "go"),
		record("annak", 60, "go"),
		record("nnak", 70, "go"),
		record("bob", 20, "java"),
		record("", 10),
		record("", 15),
	}

	for _, strategy := range []Strategy{KeepBestScore, KeepFirst, Merge} {
		once := Deduplicate(input, strategy)
		twice := Deduplicate(once, strategy)
		assert.Equal(t, once, twice, string(strategy))

		for i := range once {
			for j := i + 1; j < len(once); j++ {
				assert.False(t, Duplicates(&once[i], &once[j]), "%s: %q and %q", strategy, once[i].Username, once[j].Username)
			}
		}
	}

	assert.Empty(t, Deduplicate(nil, KeepBestScore))
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, KeepBestScore, s)

	s, err = ParseStrategy(" MERGE ")
	require.NoError(t, err)
	assert.Equal(t, Merge, s)

	_, err = ParseStrategy("random")
	require.Error(t, err)
}
