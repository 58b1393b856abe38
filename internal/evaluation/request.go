package evaluation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/hh-screener/internal/requirements"
)

// Request is what the employer asks for.
type Request struct {
	Role       string   `mapstructure:"role" json:"role" yaml:"role" validate:"required"`
	Skills     []string `mapstructure:"skills" json:"skills" yaml:"skills"`
	NiceToHave []string `mapstructure:"nice-to-have-skills" json:"nice_to_have_skills" yaml:"nice_to_have_skills"`
	// Thresholds fall back to the classifier defaults when unset.
	MandatoryThreshold *float64 `mapstructure:"mandatory-threshold" json:"mandatory_threshold,omitempty" yaml:"mandatory_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	PreferredThreshold *float64 `mapstructure:"preferred-threshold" json:"preferred_threshold,omitempty" yaml:"preferred_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	// ClassifyByMarket lets market signal decide the tier of the requested
	// skills instead of treating them as the employer mandatory list.
	ClassifyByMarket bool `mapstructure:"classify-by-market" json:"classify_by_market,omitempty" yaml:"classify_by_market,omitempty"`
}

// Validate checks the request shape. The engine itself accepts anything.
func (r *Request) Validate() error {
	if r == nil {
		return errors.New("request is not set")
	}

	r.Role = strings.TrimSpace(r.Role)

	err := validator.New().Struct(r)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ve := verrs[0]
		return fmt.Errorf("request %s: failed on %q rule", ve.Field(), ve.Tag())
	}

	return err
}

// Input converts the request into classifier input.
func (r *Request) Input() requirements.Input {
	th := requirements.DefaultThresholds()
	if r.MandatoryThreshold != nil {
		th.Mandatory = *r.MandatoryThreshold
	}
	if r.PreferredThreshold != nil {
		th.Preferred = *r.PreferredThreshold
	}

	in := requirements.Input{
		Role:              r.Role,
		EmployerPreferred: r.NiceToHave,
		Thresholds:        th,
	}

	if r.ClassifyByMarket {
		in.Skills = r.Skills
	} else {
		in.EmployerMandatory = r.Skills
	}

	return in
}
