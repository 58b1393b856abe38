package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestSummarize(t *testing.T) {
	t.Parallel()

	snapshot := &Snapshot{
		TotalFound: 120,
		Items: []Listing{
			{Skills: []string{"Go", "Docker"}, SalaryFrom: f(100000), SalaryTo: f(200000), Currency: "RUR"},
			{Skills: []string{"golang"}, SalaryFrom: f(2000), Currency: "USD"},
			{Skills: []string{"go", "k8s"}, SalaryTo: f(300000)},
			{Skills: []string{"python"}},
		},
	}

	summary := Summarize(snapshot)
	require.NotNil(t, summary)
	assert.Equal(t, 120, summary.TotalFound)
	assert.Equal(t, "hh.ru", summary.Source)

	require.NotNil(t, summary.Salary)
	assert.Equal(t, 3, summary.Salary.Count)
	assert.Equal(t, 150000.0, summary.Salary.Min)
	assert.Equal(t, 300000.0, summary.Salary.Max)
	assert.Equal(t, 190000.0, summary.Salary.Median)
	assert.Equal(t, 170000.0, summary.Salary.P25)
	assert.Equal(t, 245000.0, summary.Salary.P75)

	require.NotEmpty(t, summary.TopSkills)
	assert.Equal(t, NameCount{Name: "go", Count: 3}, summary.TopSkills[0])

	assert.Nil(t, Summarize(nil))
}

func TestToRUB(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 9500.0, ToRUB(100, "usd"))
	assert.Equal(t, 100.0, ToRUB(100, ""))
	assert.Equal(t, 100.0, ToRUB(100, "XYZ"))
}

func TestPressure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		vacancies, candidates int
		expect                string
	}{
		{vacancies: 10, candidates: 0, expect: DemandVeryHigh},
		{vacancies: 0, candidates: 5, expect: DemandNone},
		{vacancies: 30, candidates: 10, expect: DemandHigh},
		{vacancies: 15, candidates: 10, expect: DemandModerate},
		{vacancies: 6, candidates: 10, expect: DemandBalanced},
		{vacancies: 5, candidates: 10, expect: DemandLow},
	}

	for _, tt := range tests {
		sd := Pressure(tt.vacancies, tt.candidates)
		assert.Equal(t, tt.expect, sd.Interpretation, "%d/%d", tt.vacancies, tt.candidates)
	}

	assert.Nil(t, Pressure(1, 0).Ratio)
	assert.True(t, Pressure(1, 0).HighPressure())
	assert.False(t, Pressure(5, 10).HighPressure())
}

func TestBuildInsights(t *testing.T) {
	t.Parallel()

	snapshot := &Snapshot{TotalFound: 50}
	for i, salary := range []float64{100000, 200000, 300000} {
		snapshot.Items = append(snapshot.Items, Listing{
			Skills:     []string{"go"},
			SalaryFrom: f(salary),
			Company:    "Acme",
			Location:   []string{"Moscow", "Moscow", "Kazan"}[i],
		})
	}

	insights := BuildInsights(snapshot, []string{"Golang", "rust"}, 10)
	require.NotNil(t, insights)

	assert.Equal(t, []NameCount{{Name: "Acme", Count: 3}}, insights.TopCompanies)
	assert.Equal(t, "Moscow", insights.TopLocations[0].Name)
	assert.Equal(t, DemandHigh, insights.SupplyDemand.Interpretation)
	assert.Equal(t, SalaryRange{Min: 100000, Max: 300000, Median: 200000, Samples: 3}, insights.SalaryBySkill["go"])

	require.NotNil(t, insights.Offer)
	assert.Equal(t, 180000.0, insights.Offer.Min)
	assert.Equal(t, 200000.0, insights.Offer.Median)
	assert.Equal(t, 220000.0, insights.Offer.Max)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"total_found": "42",
		"items": []any{
			map[string]any{"title": "Go dev", "skills": []any{"go"}, "salary_from": 1000.0, "salary_to": nil, "currency": "USD"},
		},
	}

	snapshot, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 42, snapshot.TotalFound)
	require.Len(t, snapshot.Items, 1)
	require.NotNil(t, snapshot.Items[0].SalaryFrom)
	assert.Equal(t, 1000.0, *snapshot.Items[0].SalaryFrom)
	assert.Nil(t, snapshot.Items[0].SalaryTo)

	snapshot, err = Decode(map[string]any{"items": []any{map[string]any{"title": "x"}}})
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.TotalFound)
}
