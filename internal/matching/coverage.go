package matching

import "slices"

const (
	mandatoryWeight = 0.7
	preferredWeight = 0.3
)

// Coverage is the requirement-level breakdown of a match.
type Coverage struct {
	Mandatory        float64  `json:"mandatory_coverage" yaml:"mandatory_coverage"`
	Preferred        float64  `json:"preferred_coverage" yaml:"preferred_coverage"`
	Overall          float64  `json:"overall_coverage" yaml:"overall_coverage"`
	MandatoryMatched []string `json:"mandatory_matched" yaml:"mandatory_matched"`
	MandatoryMissing []string `json:"mandatory_missing" yaml:"mandatory_missing"`
	PreferredMatched []string `json:"preferred_matched" yaml:"preferred_matched"`
	PreferredMissing []string `json:"preferred_missing" yaml:"preferred_missing"`
}

// RequirementCoverage measures how many mandatory and preferred skills are
// among the matched skills. An empty group counts as fully covered.
func RequirementCoverage(matched, mandatory, preferred []string) Coverage {
	have := ordered(matched)

	var c Coverage
	c.Mandatory, c.MandatoryMatched, c.MandatoryMissing = group(have, ordered(mandatory))
	c.Preferred, c.PreferredMatched, c.PreferredMissing = group(have, ordered(preferred))
	c.Overall = round(c.Mandatory*mandatoryWeight+c.Preferred*preferredWeight, 1)

	return c
}

func group(have, want []string) (float64, []string, []string) {
	if len(want) == 0 {
		return 100, nil, nil
	}

	var matched, missing []string
	for _, name := range want {
		if slices.Contains(have, name) {
			matched = append(matched, name)
		} else {
			missing = append(missing, name)
		}
	}

	return round(float64(len(matched))/float64(len(want))*100, 1), matched, missing
}
