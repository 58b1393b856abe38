package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/hh-screener/internal/evaluation"
	"github.com/spigell/hh-screener/internal/gate"
	"github.com/spigell/hh-screener/internal/headhunter"
)

const (
	app = "hh-screener"
)

type Config struct {
	Request     *evaluation.Request `mapstructure:"request"`
	Market      *MarketConfig       `mapstructure:"market"`
	Candidates  *CandidatesConfig   `mapstructure:"candidates"`
	ExcludeFile string              `mapstructure:"exclude-file"`
	Gate        gate.Config         `mapstructure:"gate"`
	Dedup       *DedupConfig        `mapstructure:"dedup"`
	Workers     int                 `mapstructure:"workers"`
	Output      *OutputConfig       `mapstructure:"output"`
}

// MarketConfig points either to a snapshot file or to a hh.ru search.
type MarketConfig struct {
	File         string                   `mapstructure:"file"`
	Search       *headhunter.SearchParams `mapstructure:"search"`
	TokenFile    string                   `mapstructure:"token-file"`
	UserAgent    string                   `mapstructure:"user-agent"`
	DetailLimit  int                      `mapstructure:"detail-limit"`
	RequestDelay time.Duration            `mapstructure:"request-delay"`
}

type CandidatesConfig struct {
	Files []string `mapstructure:"files"`
	Dir   string   `mapstructure:"dir"`
}

type DedupConfig struct {
	Strategy string `mapstructure:"strategy"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hh-screener classifies required skills against the hh.ru market and scores candidates",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("market.token-file", "HH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HH_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("format", "f", "", "report format: json or yaml (default json)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
}

func initConfig() {
	// Only evaluate and classify read the config. Other commands work without it.
	if evaluateCmd.CalledAs() == "" && classifyCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Market == nil {
		config.Market = &MarketConfig{}
	}
	if config.Candidates == nil {
		config.Candidates = &CandidatesConfig{}
	}
	if config.Dedup == nil {
		config.Dedup = &DedupConfig{}
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}

	return config, nil
}
