package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountTerm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		term   string
		expect int
	}{
		{name: "whole word", text: "go developer", term: "go", expect: 1},
		{name: "inside word", text: "google cloud", term: "go", expect: 0},
		{name: "repeated", text: "go, go and go", term: "go", expect: 3},
		{name: "symbols", text: "c++ and c#", term: "c++", expect: 1},
		{name: "cyrillic boundary", text: "старший разработчик", term: "старший", expect: 1},
		{name: "cyrillic inside", text: "гофер", term: "го", expect: 0},
		{name: "empty term", text: "anything", term: "", expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, CountTerm(tt.text, tt.term))
		})
	}
}

func TestSeniority(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SenioritySenior, Seniority("Senior Go Developer"))
	assert.Equal(t, SenioritySenior, Seniority("Tech Lead"))
	assert.Equal(t, SeniorityMiddle, Seniority("Middle Python"))
	assert.Equal(t, SeniorityJunior, Seniority("Младший разработчик"))
	assert.Equal(t, SeniorityUnknown, Seniority("Backend Developer"))
	assert.Equal(t, SeniorityUnknown, Seniority("leading edge"))
}

func TestExtractFromText(t *testing.T) {
	t.Parallel()

	mentions := Default.ExtractFromText("Python, Django and more python. Some Docker.", []string{"docker"})
	require.Len(t, mentions, 3)

	byName := map[string]Mention{}
	for _, m := range mentions {
		byName[m.Skill] = m
	}

	assert.Equal(t, 2, byName["python"].Mentions)
	assert.Equal(t, 2, byName["docker"].Mentions)
	assert.Equal(t, 1.0, byName["python"].Score)
	assert.Equal(t, 0.5, byName["django"].Score)
	assert.Nil(t, Default.ExtractFromText("", nil))
}

func TestExtractFromTextCountsLongestAliasOnce(t *testing.T) {
	t.Parallel()

	mentions := Default.ExtractFromText("Spring Boot services, plain spring for the rest api", nil)

	byName := map[string]Mention{}
	for _, m := range mentions {
		byName[m.Skill] = m
	}

	assert.Equal(t, 2, byName["spring"].Mentions)
	assert.Equal(t, 1, byName["rest"].Mentions)
	assert.Equal(t, []string{"spring boot", "springboot", "spring"}, Default.Aliases("spring"))
}

func TestMatchKeywords(t *testing.T) {
	t.Parallel()

	res := MatchKeywords("Backend on Golang and PostgreSQL", []string{"go", "postgres", "kafka"})
	assert.Equal(t, 0.67, res.Ratio)
	assert.Equal(t, []string{"kafka"}, res.Missing)
	require.Len(t, res.Matched, 2)
	assert.Equal(t, "go", res.Matched[0].Skill)

	empty := MatchKeywords("", []string{"go"})
	assert.Zero(t, empty.Ratio)
	assert.Equal(t, []string{"go"}, empty.Missing)
}
