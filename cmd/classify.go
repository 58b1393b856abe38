package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-screener/internal/logger"
	"github.com/spigell/hh-screener/internal/market"
	"github.com/spigell/hh-screener/internal/report"
	"github.com/spigell/hh-screener/internal/requirements"
)

// classification is the output of the classify command.
type classification struct {
	Market       *market.Summary    `json:"market_summary,omitempty" yaml:"market_summary,omitempty"`
	Requirements *requirements.Set  `json:"requirements" yaml:"requirements"`
	Audit        requirements.Audit `json:"skill_classification_report" yaml:"skill_classification_report"`
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify the requested skills into mandatory, preferred and optional",
	Run: func(_ *cobra.Command, _ []string) {
		classify()
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func classify() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if err := config.Request.Validate(); err != nil {
		logger.Fatal("validating request", zap.Error(err))
	}

	format, err := report.ParseFormat(config.Output.Format)
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	snapshot, err := loadSnapshot(ctx, config.Market, logger)
	if err != nil {
		logger.Fatal("getting market data", zap.Error(err))
	}

	set := requirements.Classify(snapshot, config.Request.Input())

	out := classification{
		Market:       market.Summarize(snapshot),
		Requirements: set,
		Audit:        set.Audit(),
	}

	if err := report.Render(os.Stdout, out, format); err != nil {
		logger.Fatal("rendering classification", zap.Error(err))
	}
}
