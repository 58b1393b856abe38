package market

import (
	"math"
	"sort"
	"strings"

	"github.com/spigell/hh-screener/internal/skills"
)

const (
	baseCurrency   = "RUB"
	topSkillsLimit = 15
	topNamesLimit  = 5
	minSamples     = 3
)

// rates converts listing currencies to rubles.
var rates = map[string]float64{
	"RUR": 1,
	"RUB": 1,
	"₽":   1,
	"USD": 95,
	"EUR": 103,
	"KZT": 0.21,
	"BYR": 29.5,
	"UAH": 2.6,
	"AZN": 56,
	"GEL": 35,
	"UZS": 0.0075,
}

// ToRUB converts an amount to rubles. Unknown currencies are taken as rubles.
func ToRUB(amount float64, currency string) float64 {
	rate, ok := rates[strings.ToUpper(strings.TrimSpace(currency))]
	if !ok {
		return amount
	}
	return amount * rate
}

type SalaryStats struct {
	Count    int     `json:"count" yaml:"count"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Median   float64 `json:"median" yaml:"median"`
	P25      float64 `json:"p25" yaml:"p25"`
	P75      float64 `json:"p75" yaml:"p75"`
	Currency string  `json:"currency" yaml:"currency"`
}

type NameCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Summary is an overview of a market snapshot.
type Summary struct {
	TotalFound int          `json:"total_found" yaml:"total_found"`
	Salary     *SalaryStats `json:"salary_stats,omitempty" yaml:"salary_stats,omitempty"`
	TopSkills  []NameCount  `json:"top_skills" yaml:"top_skills"`
	Source     string       `json:"source" yaml:"source"`
}

// Summarize computes salary statistics in rubles and the most demanded skills.
// It returns nil for a nil snapshot.
func Summarize(snapshot *Snapshot) *Summary {
	if snapshot == nil {
		return nil
	}

	var salaries []float64
	counts := make(map[string]int)
	for _, item := range snapshot.Items {
		if s, ok := item.Salary(); ok {
			salaries = append(salaries, ToRUB(s, item.Currency))
		}
		for _, name := range skills.NormalizeBatch(item.Skills) {
			counts[name]++
		}
	}

	summary := &Summary{
		TotalFound: snapshot.TotalFound,
		TopSkills:  topCounts(counts, topSkillsLimit),
		Source:     snapshot.Source,
	}
	if summary.TotalFound == 0 {
		summary.TotalFound = len(snapshot.Items)
	}
	if summary.Source == "" {
		summary.Source = "hh.ru"
	}

	if len(salaries) > 0 {
		sort.Float64s(salaries)
		summary.Salary = &SalaryStats{
			Count:    len(salaries),
			Min:      salaries[0],
			Max:      salaries[len(salaries)-1],
			Median:   percentile(salaries, 0.5),
			P25:      percentile(salaries, 0.25),
			P75:      percentile(salaries, 0.75),
			Currency: baseCurrency,
		}
	}

	return summary
}

// percentile interpolates linearly between closest ranks of sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	k := float64(len(sorted)-1) * p
	f := math.Floor(k)
	c := math.Ceil(k)
	if f == c {
		return sorted[int(k)]
	}
	return sorted[int(f)]*(c-k) + sorted[int(c)]*(k-f)
}

// topCounts orders names by count, then by name, and keeps the first limit.
func topCounts(counts map[string]int, limit int) []NameCount {
	result := make([]NameCount, 0, len(counts))
	for name, n := range counts {
		result = append(result, NameCount{Name: name, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
