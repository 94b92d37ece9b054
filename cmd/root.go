package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/company-scraper/internal/config"
)

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:          "company-scraper",
	Short:        "Heuristic company website extraction",
	Long:         "Fetches company websites, extracts descriptions, offices, clients and news with layered heuristics, grades each profile, and exports the results.",
	SilenceUsage: true,

	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml if present)")
}

// loadConfig reads settings from --config or the working directory and
// installs the global logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return eris.Wrap(err, "load config")
	}
	cfg = c

	if err := config.InitLogger(cfg.Log); err != nil {
		return eris.Wrap(err, "init logger")
	}

	zap.L().Debug("config loaded",
		zap.String("command", cmd.Name()),
		zap.String("config", configPath),
		zap.Strings("engines", cfg.Scrape.Engines),
		zap.String("store", cfg.Store.Driver),
	)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
