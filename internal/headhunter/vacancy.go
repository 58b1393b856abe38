package headhunter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hh-screener/internal/market"
	"github.com/spigell/hh-screener/internal/skills"
	"github.com/spigell/hh-screener/internal/utils"
)

const snapshotSource = "hh.ru"

type Vacancies struct {
	Items []*Vacancy
	// Found is the total number of vacancies matching the search.
	Found int
}

type Vacancy struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Area struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"area,omitempty"`
	Salary *struct {
		From     *float64 `json:"from,omitempty"`
		To       *float64 `json:"to,omitempty"`
		Currency string   `json:"currency,omitempty"`
	} `json:"salary,omitempty"`
	Employer struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"employer,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	KeySkills    []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
	Snipet struct {
		Requirement    string `json:"requirement,omitempty"`
		Responsibility string `json:"responsibility,omitempty"`
	} `json:"snippet,omitempty"`
}

// SnapshotOptions controls how much detail is fetched for a market snapshot.
type SnapshotOptions struct {
	// DetailLimit is the number of vacancies whose key skills are fetched.
	DetailLimit int
	// Delay is the pause between detail requests.
	Delay time.Duration
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}

// Skills returns the key skill names of the vacancy.
func (va *Vacancy) Skills() []string {
	names := make([]string, 0, len(va.KeySkills))
	for _, s := range va.KeySkills {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	return names
}

// snippetSkills finds known skills in the requirement snippet returned by
// the search endpoint.
func (va *Vacancy) snippetSkills() []string {
	mentions := skills.Default.ExtractFromText(va.Snipet.Requirement, nil)
	names := make([]string, 0, len(mentions))
	for _, m := range mentions {
		names = append(names, m.Skill)
	}
	return names
}

// Listing converts the vacancy into the market snapshot shape. Without key
// skills the requirement snippet is used.
func (va *Vacancy) Listing() market.Listing {
	names := va.Skills()
	if len(names) == 0 {
		names = va.snippetSkills()
	}

	l := market.Listing{
		ID:       va.ID,
		Title:    va.Name,
		Skills:   names,
		Company:  va.Employer.Name,
		Location: va.Area.Name,
	}
	if va.Salary != nil {
		l.SalaryFrom = va.Salary.From
		l.SalaryTo = va.Salary.To
		l.Currency = va.Salary.Currency
	}
	return l
}

// ToSnapshot converts the search results into a market snapshot. Listings
// without any skill are left out, since skill frequencies are shares of the
// listings in the snapshot. TotalFound still counts every search hit.
func (v *Vacancies) ToSnapshot() *market.Snapshot {
	snapshot := &market.Snapshot{
		TotalFound: v.Found,
		Items:      make([]market.Listing, 0, v.Len()),
		Source:     snapshotSource,
	}
	for _, vacancy := range v.Items {
		if listing := vacancy.Listing(); len(listing.Skills) > 0 {
			snapshot.Items = append(snapshot.Items, listing)
		}
	}
	if snapshot.TotalFound == 0 {
		snapshot.TotalFound = v.Len()
	}
	return snapshot
}

// MarketSnapshot searches vacancies and fills key skills from vacancy details,
// which the search endpoint does not return. A failed detail request is logged
// and the vacancy is kept without skills.
func (c *Client) MarketSnapshot(params *SearchParams, opts SnapshotOptions) (*market.Snapshot, error) {
	vacancies, err := c.Search(params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	c.logger.Info("getting vacancies", zap.Int("count", vacancies.Len()), zap.Int("found", vacancies.Found))

	if err := c.fillDetails(c.ctx, vacancies, opts); err != nil {
		return nil, err
	}

	snapshot := vacancies.ToSnapshot()
	if skipped := vacancies.Len() - snapshot.Len(); skipped > 0 {
		c.logger.Info("vacancies without skills left out of the snapshot",
			zap.Int("skipped", skipped),
			zap.Int("listings", snapshot.Len()),
		)
	}

	return snapshot, nil
}

func (c *Client) fillDetails(ctx context.Context, vacancies *Vacancies, opts SnapshotOptions) error {
	fetched := 0
	for _, vacancy := range vacancies.Items {
		if fetched >= opts.DetailLimit {
			break
		}
		if len(vacancy.KeySkills) > 0 {
			continue
		}

		if fetched > 0 {
			if err := utils.WaitFor(ctx, opts.Delay); err != nil {
				return err
			}
		}
		fetched++

		details, err := c.GetVacancy(vacancy.ID)
		if err != nil {
			c.logger.Warn("skipping vacancy details", zap.String("vacancy_id", vacancy.ID), zap.Error(err))
			continue
		}
		vacancy.KeySkills = details.KeySkills
	}

	c.logger.Debug("vacancy details fetched", zap.Int("count", fetched))
	return nil
}
