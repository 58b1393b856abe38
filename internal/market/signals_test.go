package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reactSnapshot() *Snapshot {
	s := &Snapshot{TotalFound: 10}
	for i := 0; i < 10; i++ {
		item := Listing{Title: "Frontend Developer", Skills: []string{"JavaScript"}}
		if i < 8 {
			item.Title = "React Developer"
			item.Skills = []string{"React", "JavaScript"}
		}
		s.Items = append(s.Items, item)
	}
	return s
}

func TestImportance(t *testing.T) {
	t.Parallel()

	scores := Importance(reactSnapshot(), []string{"ReactJS", "javascript", "docker"})

	assert.Equal(t, 1.0, scores["react"])
	assert.Equal(t, 1.0, scores["javascript"])
	assert.Equal(t, 0.0, scores["docker"])
}

func TestImportanceWithoutMarketData(t *testing.T) {
	t.Parallel()

	for _, snapshot := range []*Snapshot{nil, {}} {
		scores := Importance(snapshot, []string{"go", "docker"})
		assert.Equal(t, map[string]float64{"go": 0, "docker": 0}, scores)
	}
}

func TestImportanceTitleUsesWholeWords(t *testing.T) {
	t.Parallel()

	snapshot := &Snapshot{Items: []Listing{
		{Title: "Google Cloud engineer", Skills: []string{"gcp"}},
		{Title: "Golang developer", Skills: []string{"go"}},
	}}

	scores := Importance(snapshot, []string{"go"})
	// one of two listings lists go, one title names it through an alias
	assert.Equal(t, 1.0, scores["go"])

	snapshot.Items[1].Title = "Backend developer"
	scores = Importance(snapshot, []string{"go"})
	assert.Equal(t, 0.5, scores["go"])
}

func TestAnalyzeRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role      string
		seniority string
		focus     string
		title     []string
	}{
		{role: "Senior Python Backend Developer", seniority: "senior", focus: FocusBackend, title: []string{"python"}},
		{role: "Junior Frontend (React)", seniority: "junior", focus: FocusFrontend, title: []string{"react"}},
		{role: "ML Engineer", seniority: "unknown", focus: FocusML},
		{role: "Старший инженер инфраструктура", seniority: "senior", focus: FocusDevOps},
		{role: "Maintainer", seniority: "unknown", focus: FocusGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			t.Parallel()
			ctx := AnalyzeRole(tt.role, []string{"python", "react", "docker"})
			assert.Equal(t, tt.seniority, ctx.Seniority)
			assert.Equal(t, tt.focus, ctx.Focus)
			assert.Equal(t, tt.title, ctx.TitleSkills)
		})
	}
}

func TestAdjustByContext(t *testing.T) {
	t.Parallel()

	scores := map[string]float64{"python": 0.5, "docker": 0.5, "sql": 0.95}
	ctx := RoleContext{Seniority: "senior", TitleSkills: []string{"python"}}

	adjusted := AdjustByContext(scores, ctx)

	assert.Equal(t, 0.88, adjusted["python"])
	assert.Equal(t, 0.55, adjusted["docker"])
	assert.Equal(t, 1.0, adjusted["sql"])
	assert.Equal(t, 0.5, scores["python"], "input must not be modified")
}

func TestCoOccurrence(t *testing.T) {
	t.Parallel()

	snapshot := &Snapshot{Items: []Listing{
		{Skills: []string{"fastapi", "docker", "python"}},
		{Skills: []string{"fastapi", "docker"}},
		{Skills: []string{"python"}},
	}}

	clusters := CoOccurrence(snapshot, []string{"python", "docker", "FastAPI"})
	require.Len(t, clusters, 2)
	assert.Equal(t, []string{"fastapi"}, clusters["docker"])
	assert.Equal(t, []string{"docker"}, clusters["fastapi"])

	assert.Empty(t, CoOccurrence(nil, []string{"python"}))
}
