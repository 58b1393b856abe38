package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-screener/internal/dedup"
	"github.com/spigell/hh-screener/internal/evaluation"
	"github.com/spigell/hh-screener/internal/evidence"
	"github.com/spigell/hh-screener/internal/logger"
	"github.com/spigell/hh-screener/internal/report"
	"github.com/spigell/hh-screener/internal/scoring"
)

const (
	PromptReport           = "Print the full report"
	PromptReportByDecision = "Report by decision"
	PromptShortlist        = "Show shortlist and interview queue"
	PromptClassification   = "Show skill classification"
	PromptReportToFile     = "Dump report to file"
	PromptExcludeRejected  = "Append rejected candidates to exclude file"
	PromptExit             = "Exit"
)

var errExit = errors.New("exit requested")

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score candidates against the requested skills and the market",
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without asking")
	evaluateCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	evaluateCmd.Flags().StringP("output", "o", "", "write the report to this file")
	evaluateCmd.Flags().Bool("no-dedup", false, "keep duplicate candidate records")

	viper.BindPFlag("exclude-file", evaluateCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("output.file", evaluateCmd.Flags().Lookup("output"))
}

// evaluate is the main command for the cli.
func evaluate(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hh-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config.Request == nil {
		logger.Fatal("request section is required to evaluate candidates")
	}

	format, err := report.ParseFormat(config.Output.Format)
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	snapshot, err := loadSnapshot(ctx, config.Market, logger)
	if err != nil {
		logger.Fatal("getting market data", zap.Error(err))
	}

	candidates, err := loadCandidates(config.Candidates)
	if err != nil {
		logger.Fatal("getting candidates", zap.Error(err))
	}

	if len(candidates) == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates found"))
		return
	}

	excluded, err := loadExcluded(config.ExcludeFile)
	if err != nil {
		logger.Fatal("loading exclude file", zap.Error(err))
	}

	stages := evaluation.DefaultStages()
	if noDedup, _ := cmd.Flags().GetBool("no-dedup"); noDedup {
		evaluation.DisableByName(stages, evaluation.StageDedup, "disabled by --no-dedup flag")
	}

	r, err := evaluation.Evaluate(ctx, &evaluation.Config{
		Gate:    config.Gate,
		Dedup:   dedup.Strategy(config.Dedup.Strategy),
		Workers: config.Workers,
	}, evaluation.Deps{Logger: logger, Excluded: excluded}, stages, evaluation.Job{
		Request:    config.Request,
		Snapshot:   snapshot,
		Candidates: candidates,
	})
	if err != nil {
		logger.Fatal("evaluation failed", zap.Error(err))
	}

	for _, status := range evaluation.Describe(stages) {
		logger.Debug("stage status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	logger.Info("evaluation finished", zap.String("run_id", r.RunID), zap.String("summary", r.Summary))

	if config.Output.File != "" {
		if err := report.ToFile(config.Output.File, r, format); err != nil {
			logger.Fatal("writing report", zap.Error(err))
		}
		logger.Info("report written", zap.String("filename", config.Output.File))
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := handleAction(PromptReport, logger, config, r, format, excluded); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		prompt := promptui.Select{
			Label: "What next?",
			Items: actions(config),
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, r, format, excluded); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func actions(config *Config) []string {
	items := []string{PromptReport, PromptReportByDecision, PromptShortlist, PromptClassification, PromptReportToFile}
	if config.ExcludeFile != "" {
		items = append(items, PromptExcludeRejected)
	}
	return append(items, PromptExit)
}

func handleAction(action string, logger *zap.Logger, config *Config, r *evaluation.Report, format report.Format, excluded *evidence.ExcludedCandidates) error {
	switch action {
	case PromptReport:
		return report.Render(os.Stdout, r, format)
	case PromptReportByDecision:
		pretty, _ := json.MarshalIndent(report.ByDecision(r.Candidates), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", len(r.Candidates)))
		return nil
	case PromptShortlist:
		return report.Render(os.Stdout, r.Recommendations, format)
	case PromptClassification:
		return report.Render(os.Stdout, r.Classification, format)
	case PromptReportToFile:
		filename, err := report.DumpToTmpFile(r, format)
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExcludeRejected:
		return excludeRejected(logger, config.ExcludeFile, r, excluded)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// excludeRejected appends every candidate with a no decision to the exclude
// file, so that later runs skip them.
func excludeRejected(logger *zap.Logger, path string, r *evaluation.Report, excluded *evidence.ExcludedCandidates) error {
	if path == "" {
		return errors.New("exclude file is not configured")
	}

	added := 0
	for _, c := range r.Candidates {
		if c.Decision != scoring.DecisionNo {
			continue
		}

		reason := c.RejectionReason
		if reason == "" {
			reason = fmt.Sprintf("score %d", c.Score)
		}
		for _, name := range append([]string{c.Username}, c.MergedFrom...) {
			if name != "" && excluded.Add(name, reason) {
				added++
			}
		}
	}

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("added", added))
	return nil
}
