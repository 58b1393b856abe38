package market

import (
	"math"
	"sort"

	"github.com/spigell/hh-screener/internal/skills"
)

// Demand interpretations of the vacancies to candidates ratio.
const (
	DemandVeryHigh = "very_high_demand"
	DemandHigh     = "high_demand"
	DemandModerate = "moderate_demand"
	DemandBalanced = "balanced"
	DemandLow      = "low_demand"
	DemandNone     = "no_demand"
)

type SalaryRange struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Median  float64 `json:"median" yaml:"median"`
	Samples int     `json:"samples" yaml:"samples"`
}

type SupplyDemand struct {
	// Ratio is nil when there are no candidates.
	Ratio          *float64 `json:"ratio" yaml:"ratio"`
	Interpretation string   `json:"interpretation" yaml:"interpretation"`
	Vacancies      int      `json:"vacancies" yaml:"vacancies"`
	Candidates     int      `json:"candidates" yaml:"candidates"`
}

// HighPressure reports whether hiring is expected to be competitive.
func (s SupplyDemand) HighPressure() bool {
	return s.Interpretation == DemandHigh || s.Interpretation == DemandVeryHigh
}

type Offer struct {
	Min      float64 `json:"min" yaml:"min"`
	Median   float64 `json:"median" yaml:"median"`
	Max      float64 `json:"max" yaml:"max"`
	Currency string  `json:"currency" yaml:"currency"`
}

// Insights describes the market around the requested skills.
type Insights struct {
	TotalVacancies int                    `json:"total_vacancies" yaml:"total_vacancies"`
	TopCompanies   []NameCount            `json:"top_companies" yaml:"top_companies"`
	TopLocations   []NameCount            `json:"top_locations" yaml:"top_locations"`
	SupplyDemand   SupplyDemand           `json:"supply_demand" yaml:"supply_demand"`
	SalaryBySkill  map[string]SalaryRange `json:"salary_ranges_by_skill" yaml:"salary_ranges_by_skill"`
	Offer          *Offer                 `json:"competitive_offer_estimate,omitempty" yaml:"competitive_offer_estimate,omitempty"`
}

// BuildInsights analyses the snapshot for the required skills and the number
// of candidates under evaluation. It returns nil for a nil snapshot.
func BuildInsights(snapshot *Snapshot, required []string, candidates int) *Insights {
	if snapshot == nil {
		return nil
	}

	companies := make(map[string]int)
	locations := make(map[string]int)
	for _, item := range snapshot.Items {
		if item.Company != "" {
			companies[item.Company]++
		}
		if item.Location != "" {
			locations[item.Location]++
		}
	}

	insights := &Insights{
		TotalVacancies: snapshot.TotalFound,
		TopCompanies:   topCounts(companies, topNamesLimit),
		TopLocations:   topCounts(locations, topNamesLimit),
		SupplyDemand:   Pressure(snapshot.TotalFound, candidates),
		SalaryBySkill:  make(map[string]SalaryRange),
	}

	ranges := salaryRanges(snapshot)
	var medians []float64
	for _, name := range skills.NormalizeBatch(required) {
		if r, ok := ranges[name]; ok {
			insights.SalaryBySkill[name] = r
			medians = append(medians, r.Median)
		}
	}

	if len(medians) > 0 {
		sort.Float64s(medians)
		sum := 0.0
		for _, m := range medians {
			sum += m
		}
		insights.Offer = &Offer{
			Min:      math.Round(medians[0] * 0.9),
			Median:   math.Round(sum / float64(len(medians))),
			Max:      math.Round(medians[len(medians)-1] * 1.1),
			Currency: baseCurrency,
		}
	}

	return insights
}

// Pressure interprets the ratio of open vacancies to available candidates.
func Pressure(vacancies, candidates int) SupplyDemand {
	sd := SupplyDemand{Vacancies: vacancies, Candidates: candidates}

	switch {
	case candidates == 0:
		sd.Interpretation = DemandVeryHigh
		return sd
	case vacancies == 0:
		sd.Interpretation = DemandNone
	}

	ratio := math.Round(float64(vacancies)/float64(candidates)*100) / 100
	sd.Ratio = &ratio

	if vacancies == 0 {
		return sd
	}

	raw := float64(vacancies) / float64(candidates)
	switch {
	case raw > 2:
		sd.Interpretation = DemandHigh
	case raw > 1:
		sd.Interpretation = DemandModerate
	case raw > 0.5:
		sd.Interpretation = DemandBalanced
	default:
		sd.Interpretation = DemandLow
	}

	return sd
}

func salaryRanges(snapshot *Snapshot) map[string]SalaryRange {
	bySkill := make(map[string][]float64)
	for _, item := range snapshot.Items {
		salary, ok := item.Salary()
		if !ok || len(item.Skills) == 0 {
			continue
		}
		rub := ToRUB(salary, item.Currency)
		for _, name := range skills.NormalizeBatch(item.Skills) {
			bySkill[name] = append(bySkill[name], rub)
		}
	}

	ranges := make(map[string]SalaryRange)
	for name, values := range bySkill {
		if len(values) < minSamples {
			continue
		}
		sort.Float64s(values)
		ranges[name] = SalaryRange{
			Min:     math.Round(values[0]),
			Max:     math.Round(values[len(values)-1]),
			Median:  math.Round(values[len(values)/2]),
			Samples: len(values),
		}
	}

	return ranges
}
