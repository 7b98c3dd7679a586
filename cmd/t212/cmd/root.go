package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/architg25/t212-to-yahoo/cache"
	"github.com/architg25/t212-to-yahoo/config"
	"github.com/architg25/t212-to-yahoo/store"
	"github.com/architg25/t212-to-yahoo/t212"
	"github.com/architg25/t212-to-yahoo/yahoo"
)

var rootCmd = &cobra.Command{
	Use:   "t212",
	Short: "Trading 212 account explorer and Yahoo Finance exporter",
	Long: `t212 talks to the Trading 212 equity REST API.

It provides tools for:
  - Viewing account balance and info
  - Viewing portfolio positions with instrument metadata
  - Caching the instrument catalog to disk once per day
  - Exporting holdings to Yahoo Finance portfolio CSV
  - Saving raw API snapshots under a date-partitioned data tree

Credentials come from T212_API_KEY and T212_API_SECRET (a .env file in the
working directory is honored). T212_ENV selects the live or demo API.`,
	SilenceUsage: true,
}

var (
	cfgFile     string
	envFlag     string
	accountFlag string
	dataDirFlag string
	verbose     bool

	logger = zap.NewNop()
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default is environment only)")
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "", "API environment: live or demo (default from T212_ENV)")
	rootCmd.PersistentFlags().StringVar(&accountFlag, "account", "", "account label used to nest the data tree")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data tree root (default from T212_DATA_DIR or \"data\")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cobra.OnInitialize(initLogger)
}

func initLogger() {
	if verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
		}
	}
	yahoo.SetLogger(logger)
}

// loadConfig builds the effective configuration: file or environment, then
// command-line flag overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if envFlag != "" {
		cfg.Environment = envFlag
	}
	if accountFlag != "" {
		cfg.Account = accountFlag
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newClient(cfg *config.Config) (*t212.Client, error) {
	return t212.NewClient(cfg.APIKey, cfg.APISecret, cfg.Environment,
		t212.WithTimeout(cfg.Timeout),
		t212.WithLogger(logger),
	)
}

func newCache(cfg *config.Config, client *t212.Client) *cache.Store {
	return cache.New(cfg.Root(), client.Instruments,
		cache.WithExchangeFetch(client.Exchanges),
		cache.WithLogger(logger),
	)
}

func newStore(cfg *config.Config) *store.Writer {
	return store.New(cfg.Root())
}

func newExporter(cfg *config.Config) *yahoo.Exporter {
	return yahoo.NewExporter(cfg.Root(), yahoo.WithLogger(logger))
}
