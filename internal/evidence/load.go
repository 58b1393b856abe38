package evidence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Decode converts a generic provider payload into a Candidate.
func Decode(raw any) (*Candidate, error) {
	var candidate Candidate

	cfg := &mapstructure.DecoderConfig{
		Result:           &candidate,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding candidate evidence: %w", err)
	}

	candidate.Username = strings.TrimSpace(candidate.Username)
	return &candidate, nil
}

// LoadFile reads candidates from a JSON file holding either a single object
// or an array of objects. Candidates without a username get one derived from
// the file name.
func LoadFile(path string) ([]*Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil, fmt.Errorf("%s: expected an object or an array of objects", path)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	candidates := make([]*Candidate, 0, len(items))
	for idx, item := range items {
		c, err := Decode(item)
		if err != nil {
			return nil, fmt.Errorf("%s item %d: %w", path, idx, err)
		}
		if c.Username == "" {
			c.Username = base
			if len(items) > 1 {
				c.Username = fmt.Sprintf("%s-%d", base, idx+1)
			}
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// LoadDir reads every *.json file in dir, in name order.
func LoadDir(dir string) ([]*Candidate, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var candidates []*Candidate
	for _, p := range paths {
		loaded, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, loaded...)
	}

	return candidates, nil
}
