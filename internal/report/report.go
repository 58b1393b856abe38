// Package report renders evaluation reports for people and files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/hh-screener/internal/evaluation"
	"github.com/spigell/hh-screener/internal/scoring"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml and yml. Empty means json.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", name)
	}
}

// Render writes v in the given format.
func Render(w io.Writer, v any, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// ToFile overwrites path with the rendered report.
func ToFile(path string, r *evaluation.Report, format Format) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return Render(file, r, format)
}

// DumpToTmpFile writes the report to a new temporary file and returns its name.
func DumpToTmpFile(r *evaluation.Report, format Format) (string, error) {
	file, err := os.CreateTemp("", fmt.Sprintf("hh-screener_*.%s", format))
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := Render(file, r, format); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ByDecision groups candidates under their decision for a quick look.
func ByDecision(candidates []scoring.CandidateScore) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, c := range candidates {
		key := strings.ToUpper(string(c.Decision))
		entry := map[string]string{
			"username":    c.Username,
			"score":       fmt.Sprintf("%d", c.Score),
			"reasons":     strings.Join(c.Reasons, "; "),
			"matched":     strings.Join(c.MatchedSkills, ", "),
			"skill gaps":  strings.Join(c.SkillGaps, ", "),
			"requirement": fmt.Sprintf("mandatory %g%%, preferred %g%%", c.Requirements.Mandatory, c.Requirements.Preferred),
		}
		if c.RejectionReason != "" {
			entry["rejection"] = c.RejectionReason
		}
		if len(c.MergedFrom) > 0 {
			entry["merged from"] = strings.Join(c.MergedFrom, ", ")
		}
		report[key] = append(report[key], entry)
	}
	return report
}
