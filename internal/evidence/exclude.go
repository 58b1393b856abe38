package evidence

import (
	"encoding/json"
	"os"
	"strings"
	"time"
)

// ExcludedCandidates is the content of an exclude file.
type ExcludedCandidates struct {
	Items []*ExcludedCandidate
}

type ExcludedCandidate struct {
	Username   string
	Reason     string
	ExcludedAt time.Time
}

// LoadExcluded reads an exclude file. A missing or empty file yields an empty list.
func LoadExcluded(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ExcludedCandidates{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Add appends a candidate unless it is already excluded.
func (e *ExcludedCandidates) Add(username, reason string) bool {
	if e.Contains(username) {
		return false
	}
	e.Items = append(e.Items, &ExcludedCandidate{
		Username:   username,
		Reason:     reason,
		ExcludedAt: time.Now().UTC(),
	})
	return true
}

// Contains matches usernames case-insensitively.
func (e *ExcludedCandidates) Contains(username string) bool {
	for _, item := range e.Items {
		if strings.EqualFold(item.Username, username) {
			return true
		}
	}
	return false
}

// Len is safe on a nil list.
func (e *ExcludedCandidates) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Items)
}

// ToFile overwrites path with the list.
func (e *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
