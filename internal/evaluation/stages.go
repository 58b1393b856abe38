package evaluation

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/hh-screener/internal/dedup"
	"github.com/spigell/hh-screener/internal/evidence"
	"github.com/spigell/hh-screener/internal/recommend"
	"github.com/spigell/hh-screener/internal/scoring"
)

const (
	StageExclude   = "exclude"
	StageScore     = "score"
	StageDedup     = "dedup"
	StageRecommend = "recommend"
)

// toggle implements the enable switch shared by all stages.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) status(name string, details map[string]string) Status {
	return Status{Name: name, Enabled: !t.disabled, Reason: t.reason, Details: details}
}

type excludeStage struct {
	toggle
}

// NewExclude creates a stage that drops candidates found in the exclude list.
func NewExclude() Stage {
	return &excludeStage{}
}

func (s *excludeStage) Name() string { return StageExclude }

func (s *excludeStage) Validate(*Config) error { return nil }

func (s *excludeStage) Apply(_ context.Context, deps Deps, b *Batch) (Step, error) {
	initial := len(b.Candidates)
	if deps.Excluded.Len() == 0 {
		return Step{Initial: initial, Left: initial}, nil
	}

	left := make([]*evidence.Candidate, 0, initial)
	var dropped []string
	for _, c := range b.Candidates {
		if deps.Excluded.Contains(c.Username) {
			dropped = append(dropped, c.Username)
			continue
		}
		left = append(left, c)
	}
	b.Candidates = left

	if len(dropped) > 0 {
		deps.Logger.Info("excluding candidates based on exclude file",
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", len(left)),
		)
	}

	return Step{Initial: initial, Dropped: len(dropped), Left: len(left)}, nil
}

func (s *excludeStage) Status() Status {
	return s.status(s.Name(), nil)
}

type scoreStage struct {
	toggle
	workers int
}

// NewScore creates the stage that scores every candidate. Candidates are
// independent, so they are scored in parallel.
func NewScore() Stage {
	return &scoreStage{}
}

func (s *scoreStage) Name() string { return StageScore }

func (s *scoreStage) Validate(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	s.workers = cfg.Workers
	return cfg.Gate.Validate()
}

func (s *scoreStage) Apply(ctx context.Context, deps Deps, b *Batch) (Step, error) {
	if b.Scorer == nil {
		return Step{}, fmt.Errorf("scorer is not set")
	}

	scores := make([]scoring.CandidateScore, len(b.Candidates))

	g, gCtx := errgroup.WithContext(ctx)
	if s.workers > 0 {
		g.SetLimit(s.workers)
	}

	for i, c := range b.Candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			scores[i] = b.Scorer.Score(c)
			deps.Logger.Debug("candidate scored",
				zap.String("username", c.Username),
				zap.Int("score", scores[i].Score),
				zap.String("decision", string(scores[i].Decision)),
				zap.Bool("blocked", scores[i].Blocked),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Step{}, fmt.Errorf("scoring candidates: %w", err)
	}

	b.Scores = scores

	return Step{Initial: len(b.Candidates), Left: len(scores)}, nil
}

func (s *scoreStage) Status() Status {
	return s.status(s.Name(), map[string]string{"workers": strconv.Itoa(s.workers)})
}

type dedupStage struct {
	toggle
	strategy dedup.Strategy
}

// NewDedup creates the stage that collapses duplicate candidate records.
func NewDedup() Stage {
	return &dedupStage{}
}

func (s *dedupStage) Name() string { return StageDedup }

func (s *dedupStage) Validate(cfg *Config) error {
	strategy, err := dedup.ParseStrategy(string(cfg.Dedup))
	if err != nil {
		return err
	}
	s.strategy = strategy
	return nil
}

func (s *dedupStage) Apply(_ context.Context, deps Deps, b *Batch) (Step, error) {
	initial := len(b.Scores)
	b.Scores = dedup.Deduplicate(b.Scores, s.strategy)

	if dropped := initial - len(b.Scores); dropped > 0 {
		deps.Logger.Info("duplicate candidates collapsed",
			zap.String("strategy", string(s.strategy)),
			zap.Int("dropped", dropped),
		)
	}

	return Step{Initial: initial, Dropped: initial - len(b.Scores), Left: len(b.Scores)}, nil
}

func (s *dedupStage) Status() Status {
	return s.status(s.Name(), map[string]string{"strategy": string(s.strategy)})
}

type recommendStage struct {
	toggle
}

// NewRecommend creates the stage that builds the batch recommendations.
func NewRecommend() Stage {
	return &recommendStage{}
}

func (s *recommendStage) Name() string { return StageRecommend }

func (s *recommendStage) Validate(*Config) error { return nil }

func (s *recommendStage) Apply(_ context.Context, _ Deps, b *Batch) (Step, error) {
	b.Recommendations = recommend.Build(b.Scores, b.Insights)
	return Step{Initial: len(b.Scores), Left: len(b.Scores)}, nil
}

func (s *recommendStage) Status() Status {
	return s.status(s.Name(), nil)
}

// DefaultStages returns the full pipeline in execution order.
func DefaultStages() []Stage {
	return []Stage{NewExclude(), NewScore(), NewDedup(), NewRecommend()}
}
