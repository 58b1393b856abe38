package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-screener/internal/evidence"
	"github.com/spigell/hh-screener/internal/headhunter"
	"github.com/spigell/hh-screener/internal/market"
	"github.com/spigell/hh-screener/internal/secrets"
)

const defaultDetailLimit = 50

// loadSnapshot returns the configured market snapshot. Without market
// configuration it returns nil and classification relies on the role and the
// employer lists only.
func loadSnapshot(ctx context.Context, config *MarketConfig, logger *zap.Logger) (*market.Snapshot, error) {
	switch {
	case config.File != "":
		snapshot, err := market.LoadFile(config.File)
		if err != nil {
			return nil, fmt.Errorf("loading market snapshot: %w", err)
		}
		logger.Info("market snapshot loaded", zap.String("file", config.File), zap.Int("listings", snapshot.Len()))
		return snapshot, nil

	case config.Search != nil:
		token, err := resolveToken(config)
		if err != nil {
			return nil, err
		}

		hh := headhunter.New(ctx, logger, token)
		if config.UserAgent != "" {
			hh.UserAgent = config.UserAgent
		}

		detailLimit := config.DetailLimit
		if detailLimit == 0 {
			detailLimit = defaultDetailLimit
		}

		logger.Info("starting the search", zap.String("search", config.Search.Text))

		return hh.MarketSnapshot(config.Search, headhunter.SnapshotOptions{
			DetailLimit: detailLimit,
			Delay:       config.RequestDelay,
		})

	default:
		logger.Warn("no market data configured", zap.String("hint", "set market.file or market.search"))
		return nil, nil
	}
}

// resolveToken returns an empty token when none is configured, since the
// search API works anonymously with lower limits.
func resolveToken(config *MarketConfig) (string, error) {
	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("market.token-file"))
	}

	token, err := secrets.Load(secrets.Source{
		Name: "headhunter token",
		File: tokenFile,
		Env:  "HH_TOKEN",
	})
	if errors.Is(err, secrets.ErrNotConfigured) {
		return "", nil
	}

	return token, err
}

func loadCandidates(config *CandidatesConfig) ([]*evidence.Candidate, error) {
	var candidates []*evidence.Candidate

	for _, file := range config.Files {
		loaded, err := evidence.LoadFile(file)
		if err != nil {
			return nil, fmt.Errorf("loading candidates from %s: %w", file, err)
		}
		candidates = append(candidates, loaded...)
	}

	if config.Dir != "" {
		loaded, err := evidence.LoadDir(config.Dir)
		if err != nil {
			return nil, fmt.Errorf("loading candidates from %s: %w", config.Dir, err)
		}
		candidates = append(candidates, loaded...)
	}

	return candidates, nil
}

func loadExcluded(path string) (*evidence.ExcludedCandidates, error) {
	if path == "" {
		return &evidence.ExcludedCandidates{}, nil
	}

	excluded, err := evidence.LoadExcluded(path)
	if err != nil {
		return nil, fmt.Errorf("getting excluded candidates from file: %w", err)
	}
	return excluded, nil
}
