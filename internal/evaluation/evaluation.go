// Package evaluation runs one screening batch: it classifies the requested
// skills against the market and pushes the candidates through the stages.
package evaluation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/hh-screener/internal/dedup"
	"github.com/spigell/hh-screener/internal/evidence"
	"github.com/spigell/hh-screener/internal/gate"
	"github.com/spigell/hh-screener/internal/logger"
	"github.com/spigell/hh-screener/internal/market"
	"github.com/spigell/hh-screener/internal/recommend"
	"github.com/spigell/hh-screener/internal/requirements"
	"github.com/spigell/hh-screener/internal/scoring"
)

// Stage represents a single step of the evaluation pipeline.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, b *Batch) (Step, error)
}

// Deps aggregates dependencies shared across all stages.
type Deps struct {
	Logger   *zap.Logger
	Excluded *evidence.ExcludedCandidates
}

// Step describes the result of executing a stage.
type Step struct {
	Initial int `json:"initial" yaml:"initial"`
	Dropped int `json:"dropped" yaml:"dropped"`
	Left    int `json:"left" yaml:"left"`
}

// Config contains batch settings consumed by the stages.
type Config struct {
	Gate  gate.Config
	Dedup dedup.Strategy
	// Workers bounds parallel scoring. Zero means no limit.
	Workers int
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string            `json:"name" yaml:"name"`
	Enabled bool              `json:"enabled" yaml:"enabled"`
	Reason  string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

type statusProvider interface {
	Status() Status
}

// Batch is the state passed from stage to stage.
type Batch struct {
	Scorer          *scoring.Scorer
	Insights        *market.Insights
	Candidates      []*evidence.Candidate
	Scores          []scoring.CandidateScore
	Recommendations *recommend.Recommendations
}

// StageResult is the record of one executed stage.
type StageResult struct {
	Name string `json:"name" yaml:"name"`
	Step `yaml:",inline"`
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Run validates all enabled stages first and then executes them in order.
func Run(ctx context.Context, cfg *Config, deps Deps, stages []Stage, b *Batch) ([]StageResult, error) {
	deps.Logger = logger.WithFields(deps.Logger)

	for _, stage := range stages {
		if !stage.IsEnabled() {
			continue
		}
		if err := stage.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}
	}

	results := make([]StageResult, 0, len(stages))
	for _, stage := range stages {
		if !stage.IsEnabled() {
			deps.Logger.Info("stage disabled", zap.String("name", stage.Name()))
			continue
		}

		info, err := stage.Apply(ctx, deps, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}

		deps.Logger.Info("stage step",
			zap.String("name", stage.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		results = append(results, StageResult{Name: stage.Name(), Step: info})
	}

	return results, nil
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		if reporter, ok := stage.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    stage.Name(),
			Enabled: stage.IsEnabled(),
		})
	}
	return statuses
}

// Job is the input of one evaluation.
type Job struct {
	Request    *Request
	Snapshot   *market.Snapshot
	Candidates []*evidence.Candidate
}

// Report is the outcome of one evaluation.
type Report struct {
	RunID           string                     `json:"run_id" yaml:"run_id"`
	GeneratedAt     time.Time                  `json:"generated_at" yaml:"generated_at"`
	Role            string                     `json:"role" yaml:"role"`
	Skills          []string                   `json:"skills" yaml:"skills"`
	Market          *market.Summary            `json:"market_summary,omitempty" yaml:"market_summary,omitempty"`
	Insights        *market.Insights           `json:"market_insights,omitempty" yaml:"market_insights,omitempty"`
	Requirements    *requirements.Set          `json:"requirements" yaml:"requirements"`
	Classification  requirements.Audit         `json:"skill_classification_report" yaml:"skill_classification_report"`
	Candidates      []scoring.CandidateScore   `json:"candidate_scores" yaml:"candidate_scores"`
	Recommendations *recommend.Recommendations `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Stages          []StageResult              `json:"stages" yaml:"stages"`
	Summary         string                     `json:"summary" yaml:"summary"`
}

// Evaluate classifies the request against the market snapshot and runs the
// candidates through the stages. Nil stages mean DefaultStages.
func Evaluate(ctx context.Context, cfg *Config, deps Deps, stages []Stage, job Job) (*Report, error) {
	if err := job.Request.Validate(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{Gate: gate.DefaultConfig()}
	}
	if stages == nil {
		stages = DefaultStages()
	}
	if err := cfg.Gate.Validate(); err != nil {
		return nil, fmt.Errorf("gate: %w", err)
	}

	runID := uuid.NewString()
	deps.Logger = logger.WithFields(deps.Logger, logger.RunFields(runID, job.Request.Role)...)

	set := requirements.Classify(job.Snapshot, job.Request.Input())
	deps.Logger.Info("skills classified",
		zap.Strings("mandatory", set.Mandatory),
		zap.Strings("preferred", set.Preferred),
		zap.Int("optional", len(set.Optional)),
		zap.Int("vacancies_analyzed", set.Listings),
		zap.Bool("employer_override", set.OverrideApplied),
	)

	batch := &Batch{
		Scorer:     scoring.NewScorer(job.Request.Role, set, cfg.Gate),
		Insights:   market.BuildInsights(job.Snapshot, set.All(), len(job.Candidates)),
		Candidates: job.Candidates,
	}

	results, err := Run(ctx, cfg, deps, stages, batch)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:           runID,
		GeneratedAt:     time.Now().UTC(),
		Role:            job.Request.Role,
		Skills:          set.All(),
		Market:          market.Summarize(job.Snapshot),
		Insights:        batch.Insights,
		Requirements:    set,
		Classification:  set.Audit(),
		Candidates:      recommend.Rank(batch.Scores),
		Recommendations: batch.Recommendations,
		Stages:          results,
	}
	report.Summary = report.Summarize()

	return report, nil
}

// Summarize renders a one line overview of the report.
func (r *Report) Summarize() string {
	var parts []string

	if r.Market != nil && r.Market.Salary != nil {
		parts = append(parts, fmt.Sprintf("Market: %d vacancies, median ~%d RUB", r.Market.TotalFound, int(r.Market.Salary.Median)))
	}

	if len(r.Candidates) > 0 {
		goes, holds := 0, 0
		for _, c := range r.Candidates {
			switch c.Decision {
			case scoring.DecisionGo:
				goes++
			case scoring.DecisionHold:
				holds++
			}
		}
		parts = append(parts, fmt.Sprintf("Candidates: %d GO, %d HOLD of %d", goes, holds, len(r.Candidates)))
	}

	if r.Recommendations != nil && len(r.Recommendations.Risks) > 0 {
		parts = append(parts, fmt.Sprintf("Risks: %d", len(r.Recommendations.Risks)))
	}

	if len(parts) == 0 {
		return "No data"
	}
	return strings.Join(parts, " | ")
}
