// Package market derives skill demand signals from a snapshot of job listings.
package market

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Listing is a single job listing as delivered by a market data provider.
type Listing struct {
	ID         string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title      string   `json:"title" yaml:"title"`
	Skills     []string `json:"skills" yaml:"skills"`
	SalaryFrom *float64 `json:"salary_from,omitempty" yaml:"salary_from,omitempty"`
	SalaryTo   *float64 `json:"salary_to,omitempty" yaml:"salary_to,omitempty"`
	Currency   string   `json:"currency,omitempty" yaml:"currency,omitempty"`
	Company    string   `json:"company,omitempty" yaml:"company,omitempty"`
	Location   string   `json:"location,omitempty" yaml:"location,omitempty"`
}

// Snapshot is a point-in-time sample of the job market for a role.
type Snapshot struct {
	TotalFound int       `json:"total_found" yaml:"total_found"`
	Items      []Listing `json:"items" yaml:"items"`
	Source     string    `json:"source,omitempty" yaml:"source,omitempty"`
}

// Len returns the number of listings in the snapshot. A nil snapshot is empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}

// Salary returns the midpoint of the listing salary range, or whichever bound
// is present. The second value is false when the listing has no salary.
func (l Listing) Salary() (float64, bool) {
	from := l.SalaryFrom != nil && *l.SalaryFrom > 0
	to := l.SalaryTo != nil && *l.SalaryTo > 0

	switch {
	case from && to:
		return (*l.SalaryFrom + *l.SalaryTo) / 2, true
	case from:
		return *l.SalaryFrom, true
	case to:
		return *l.SalaryTo, true
	default:
		return 0, false
	}
}

// Decode converts a generic provider payload into a Snapshot.
func Decode(raw any) (*Snapshot, error) {
	var snapshot Snapshot

	cfg := &mapstructure.DecoderConfig{
		Result:           &snapshot,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding market snapshot: %w", err)
	}

	if snapshot.TotalFound == 0 {
		snapshot.TotalFound = len(snapshot.Items)
	}

	return &snapshot, nil
}

// LoadFile reads a JSON market snapshot from disk.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return Decode(raw)
}
