package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/company-intake/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "company-intake",
	Short: "Company record intake and normalization",
	Long:  "Parses CSV/XLSX company lists, normalizes employee sizes, countries, cities, and domains, optionally fills gaps via Claude, and upserts the results into the store.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
